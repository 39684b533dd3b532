package model

import (
	"time"
)

type Customer struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	Phone     *string   `db:"phone" json:"phone,omitempty"`
	Address   *string   `db:"address" json:"address,omitempty"`
	Notes     *string   `db:"notes" json:"notes,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

type CreateCustomerParams struct {
	Name    string
	Email   string
	Phone   *string
	Address *string
	Notes   *string
}

type UpdateCustomerParams struct {
	Name    *string
	Phone   *string
	Address *string
	Notes   *string
}
