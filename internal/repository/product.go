package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/TicketXOS/CRM-sub001/internal/model"
)

type ProductRepository interface {
	FindByID(ctx context.Context, id string) (*model.Product, error)
	FindBySKU(ctx context.Context, sku string) (*model.Product, error)
	List(ctx context.Context, search string, limit, offset int) ([]model.Product, error)
	Count(ctx context.Context, search string) (int, error)
	Create(ctx context.Context, params model.CreateProductParams) (*model.Product, error)
	Update(ctx context.Context, id string, params model.UpdateProductParams) error
	Delete(ctx context.Context, id string) error
	// AdjustStock applies delta to the product's stock. It refuses to take
	// stock below zero; the second return reports whether a row changed.
	AdjustStock(ctx context.Context, id string, delta int) (bool, error)
	CountByCategoryID(ctx context.Context, categoryID string) (int, error)
	// WithTx returns a new repository that uses the given transaction
	WithTx(tx *sqlx.Tx) ProductRepository
}

// productDB is an interface satisfied by both *sqlx.DB and *sqlx.Tx
type productDB interface {
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

type productRepo struct {
	db productDB
}

func NewProductRepository(db *sqlx.DB) ProductRepository {
	return &productRepo{db: db}
}

func (r *productRepo) WithTx(tx *sqlx.Tx) ProductRepository {
	return &productRepo{db: tx}
}

func (r *productRepo) FindByID(ctx context.Context, id string) (*model.Product, error) {
	var product model.Product
	err := r.db.GetContext(ctx, &product, `
		SELECT * FROM products WHERE id = ?
	`, id)
	return HandleNotFound(&product, err)
}

func (r *productRepo) FindBySKU(ctx context.Context, sku string) (*model.Product, error) {
	var product model.Product
	err := r.db.GetContext(ctx, &product, `
		SELECT * FROM products WHERE sku = ?
	`, sku)
	return HandleNotFound(&product, err)
}

func (r *productRepo) List(ctx context.Context, search string, limit, offset int) ([]model.Product, error) {
	var products []model.Product
	if search != "" {
		pattern := "%" + search + "%"
		err := r.db.SelectContext(ctx, &products, `
			SELECT * FROM products
			WHERE name LIKE ? OR sku LIKE ?
			ORDER BY created_at DESC
			LIMIT ? OFFSET ?
		`, pattern, pattern, limit, offset)
		return products, err
	}

	err := r.db.SelectContext(ctx, &products, `
		SELECT * FROM products
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?
	`, limit, offset)
	return products, err
}

func (r *productRepo) Count(ctx context.Context, search string) (int, error) {
	var count int
	if search != "" {
		pattern := "%" + search + "%"
		err := r.db.GetContext(ctx, &count, `
			SELECT COUNT(*) FROM products WHERE name LIKE ? OR sku LIKE ?
		`, pattern, pattern)
		return count, err
	}

	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM products`)
	return count, err
}

func (r *productRepo) Create(ctx context.Context, params model.CreateProductParams) (*model.Product, error) {
	id := uuid.NewString()
	now := time.Now().UTC()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO products (id, sku, name, description, category_id, price_cents, stock, active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, id, params.SKU, params.Name, params.Description, params.CategoryID,
		params.PriceCents, params.Stock, params.Active, now, now)
	if err != nil {
		return nil, err
	}

	return r.FindByID(ctx, id)
}

func (r *productRepo) Update(ctx context.Context, id string, params model.UpdateProductParams) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE products SET
			name = COALESCE(?, name),
			description = COALESCE(?, description),
			category_id = COALESCE(?, category_id),
			price_cents = COALESCE(?, price_cents),
			active = COALESCE(?, active),
			updated_at = ?
		WHERE id = ?
	`, params.Name, params.Description, params.CategoryID, params.PriceCents,
		params.Active, time.Now().UTC(), id)
	return err
}

func (r *productRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	return err
}

func (r *productRepo) AdjustStock(ctx context.Context, id string, delta int) (bool, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE products SET
			stock = stock + ?,
			updated_at = ?
		WHERE id = ? AND stock + ? >= 0
	`, delta, time.Now().UTC(), id, delta)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *productRepo) CountByCategoryID(ctx context.Context, categoryID string) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `
		SELECT COUNT(*) FROM products WHERE category_id = ?
	`, categoryID)
	return count, err
}
