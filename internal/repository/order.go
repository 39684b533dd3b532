package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/TicketXOS/CRM-sub001/internal/model"
)

type OrderRepository interface {
	FindByID(ctx context.Context, id string) (*model.Order, error)
	FindItems(ctx context.Context, orderID string) ([]model.OrderItem, error)
	List(ctx context.Context, filter model.ListOrdersFilter) ([]model.Order, error)
	Count(ctx context.Context, filter model.ListOrdersFilter) (int, error)
	Insert(ctx context.Context, order *model.Order) error
	InsertItem(ctx context.Context, item *model.OrderItem) error
	UpdateStatus(ctx context.Context, id string, from, to model.OrderStatus) (bool, error)
	// WithTx returns a new repository that uses the given transaction
	WithTx(tx *sqlx.Tx) OrderRepository
}

// orderDB is an interface satisfied by both *sqlx.DB and *sqlx.Tx
type orderDB interface {
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

type orderRepo struct {
	db orderDB
}

func NewOrderRepository(db *sqlx.DB) OrderRepository {
	return &orderRepo{db: db}
}

func (r *orderRepo) WithTx(tx *sqlx.Tx) OrderRepository {
	return &orderRepo{db: tx}
}

func (r *orderRepo) FindByID(ctx context.Context, id string) (*model.Order, error) {
	var order model.Order
	err := r.db.GetContext(ctx, &order, `
		SELECT * FROM orders WHERE id = ?
	`, id)
	return HandleNotFound(&order, err)
}

func (r *orderRepo) FindItems(ctx context.Context, orderID string) ([]model.OrderItem, error) {
	var items []model.OrderItem
	err := r.db.SelectContext(ctx, &items, `
		SELECT * FROM order_items WHERE order_id = ?
	`, orderID)
	return items, err
}

func (r *orderRepo) List(ctx context.Context, filter model.ListOrdersFilter) ([]model.Order, error) {
	query := `SELECT * FROM orders WHERE 1=1`
	args := []interface{}{}

	if filter.CustomerID != "" {
		query += ` AND customer_id = ?`
		args = append(args, filter.CustomerID)
	}
	if filter.Status != "" {
		query += ` AND status = ?`
		args = append(args, filter.Status)
	}

	query += ` ORDER BY created_at DESC LIMIT ? OFFSET ?`
	args = append(args, filter.Limit, filter.Offset)

	var orders []model.Order
	err := r.db.SelectContext(ctx, &orders, query, args...)
	return orders, err
}

func (r *orderRepo) Count(ctx context.Context, filter model.ListOrdersFilter) (int, error) {
	query := `SELECT COUNT(*) FROM orders WHERE 1=1`
	args := []interface{}{}

	if filter.CustomerID != "" {
		query += ` AND customer_id = ?`
		args = append(args, filter.CustomerID)
	}
	if filter.Status != "" {
		query += ` AND status = ?`
		args = append(args, filter.Status)
	}

	var count int
	err := r.db.GetContext(ctx, &count, query, args...)
	return count, err
}

func (r *orderRepo) Insert(ctx context.Context, order *model.Order) error {
	if order.ID == "" {
		order.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	order.CreatedAt = now
	order.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO orders (id, order_no, customer_id, status, total_cents, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, order.ID, order.OrderNo, order.CustomerID, order.Status, order.TotalCents,
		order.CreatedAt, order.UpdatedAt)
	return err
}

func (r *orderRepo) InsertItem(ctx context.Context, item *model.OrderItem) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO order_items (id, order_id, product_id, quantity, unit_price_cents)
		VALUES (?, ?, ?, ?, ?)
	`, item.ID, item.OrderID, item.ProductID, item.Quantity, item.UnitPriceCents)
	return err
}

// UpdateStatus moves the order from one status to another. The previous
// status is part of the WHERE clause so a concurrent writer cannot apply
// the same transition twice; false means the order was not in `from`.
func (r *orderRepo) UpdateStatus(ctx context.Context, id string, from, to model.OrderStatus) (bool, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE orders SET
			status = ?,
			updated_at = ?
		WHERE id = ? AND status = ?
	`, to, time.Now().UTC(), id, from)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
