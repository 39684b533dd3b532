package model

import (
	"time"
)

type Product struct {
	ID          string    `db:"id" json:"id"`
	SKU         string    `db:"sku" json:"sku"`
	Name        string    `db:"name" json:"name"`
	Description *string   `db:"description" json:"description,omitempty"`
	CategoryID  *string   `db:"category_id" json:"categoryId,omitempty"`
	PriceCents  int64     `db:"price_cents" json:"priceCents"`
	Stock       int       `db:"stock" json:"stock"`
	Active      bool      `db:"active" json:"active"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

type CreateProductParams struct {
	SKU         string
	Name        string
	Description *string
	CategoryID  *string
	PriceCents  int64
	Stock       int
	Active      bool
}

type UpdateProductParams struct {
	Name        *string
	Description *string
	CategoryID  *string
	PriceCents  *int64
	Active      *bool
}
