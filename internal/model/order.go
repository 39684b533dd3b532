package model

import (
	"time"
)

type Order struct {
	ID         string      `db:"id" json:"id"`
	OrderNo    string      `db:"order_no" json:"orderNo"`
	CustomerID string      `db:"customer_id" json:"customerId"`
	Status     OrderStatus `db:"status" json:"status"`
	TotalCents int64       `db:"total_cents" json:"totalCents"`
	CreatedAt  time.Time   `db:"created_at" json:"createdAt"`
	UpdatedAt  time.Time   `db:"updated_at" json:"updatedAt"`

	Items []OrderItem `db:"-" json:"items,omitempty"`
}

type OrderItem struct {
	ID             string `db:"id" json:"id"`
	OrderID        string `db:"order_id" json:"orderId"`
	ProductID      string `db:"product_id" json:"productId"`
	Quantity       int    `db:"quantity" json:"quantity"`
	UnitPriceCents int64  `db:"unit_price_cents" json:"unitPriceCents"`
}

type CreateOrderParams struct {
	CustomerID string
	Items      []CreateOrderItemParams
}

type CreateOrderItemParams struct {
	ProductID string
	Quantity  int
}

type ListOrdersFilter struct {
	CustomerID string
	Status     OrderStatus
	Limit      int
	Offset     int
}
