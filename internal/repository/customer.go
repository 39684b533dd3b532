package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/TicketXOS/CRM-sub001/internal/model"
)

type CustomerRepository interface {
	FindByID(ctx context.Context, id string) (*model.Customer, error)
	FindByEmail(ctx context.Context, email string) (*model.Customer, error)
	List(ctx context.Context, search string, limit, offset int) ([]model.Customer, error)
	Count(ctx context.Context, search string) (int, error)
	Create(ctx context.Context, params model.CreateCustomerParams) (*model.Customer, error)
	Update(ctx context.Context, id string, params model.UpdateCustomerParams) error
	Delete(ctx context.Context, id string) error
	CountOrders(ctx context.Context, customerID string) (int, error)
}

type customerRepo struct {
	db *sqlx.DB
}

func NewCustomerRepository(db *sqlx.DB) CustomerRepository {
	return &customerRepo{db: db}
}

func (r *customerRepo) FindByID(ctx context.Context, id string) (*model.Customer, error) {
	var customer model.Customer
	err := r.db.GetContext(ctx, &customer, `
		SELECT * FROM customers WHERE id = ?
	`, id)
	return HandleNotFound(&customer, err)
}

func (r *customerRepo) FindByEmail(ctx context.Context, email string) (*model.Customer, error) {
	var customer model.Customer
	err := r.db.GetContext(ctx, &customer, `
		SELECT * FROM customers WHERE email = ?
	`, email)
	return HandleNotFound(&customer, err)
}

func (r *customerRepo) List(ctx context.Context, search string, limit, offset int) ([]model.Customer, error) {
	var customers []model.Customer
	if search != "" {
		pattern := "%" + search + "%"
		err := r.db.SelectContext(ctx, &customers, `
			SELECT * FROM customers
			WHERE name LIKE ? OR email LIKE ?
			ORDER BY created_at DESC
			LIMIT ? OFFSET ?
		`, pattern, pattern, limit, offset)
		return customers, err
	}

	err := r.db.SelectContext(ctx, &customers, `
		SELECT * FROM customers
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?
	`, limit, offset)
	return customers, err
}

func (r *customerRepo) Count(ctx context.Context, search string) (int, error) {
	var count int
	if search != "" {
		pattern := "%" + search + "%"
		err := r.db.GetContext(ctx, &count, `
			SELECT COUNT(*) FROM customers WHERE name LIKE ? OR email LIKE ?
		`, pattern, pattern)
		return count, err
	}

	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM customers`)
	return count, err
}

func (r *customerRepo) Create(ctx context.Context, params model.CreateCustomerParams) (*model.Customer, error) {
	id := uuid.NewString()
	now := time.Now().UTC()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO customers (id, name, email, phone, address, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, id, params.Name, params.Email, params.Phone, params.Address, params.Notes, now, now)
	if err != nil {
		return nil, err
	}

	return r.FindByID(ctx, id)
}

func (r *customerRepo) Update(ctx context.Context, id string, params model.UpdateCustomerParams) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE customers SET
			name = COALESCE(?, name),
			phone = COALESCE(?, phone),
			address = COALESCE(?, address),
			notes = COALESCE(?, notes),
			updated_at = ?
		WHERE id = ?
	`, params.Name, params.Phone, params.Address, params.Notes, time.Now().UTC(), id)
	return err
}

func (r *customerRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM customers WHERE id = ?`, id)
	return err
}

func (r *customerRepo) CountOrders(ctx context.Context, customerID string) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `
		SELECT COUNT(*) FROM orders WHERE customer_id = ?
	`, customerID)
	return count, err
}
