package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/TicketXOS/CRM-sub001/internal/model"
)

type CategoryRepository interface {
	FindByID(ctx context.Context, id string) (*model.Category, error)
	ListAll(ctx context.Context) ([]model.Category, error)
	Create(ctx context.Context, params model.CreateCategoryParams) (*model.Category, error)
	Update(ctx context.Context, id string, params model.UpdateCategoryParams) error
	Delete(ctx context.Context, id string) error
	CountChildren(ctx context.Context, parentID string) (int, error)
}

type categoryRepo struct {
	db *sqlx.DB
}

func NewCategoryRepository(db *sqlx.DB) CategoryRepository {
	return &categoryRepo{db: db}
}

func (r *categoryRepo) FindByID(ctx context.Context, id string) (*model.Category, error) {
	var category model.Category
	err := r.db.GetContext(ctx, &category, `
		SELECT * FROM categories WHERE id = ?
	`, id)
	return HandleNotFound(&category, err)
}

func (r *categoryRepo) ListAll(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	err := r.db.SelectContext(ctx, &categories, `
		SELECT * FROM categories
		ORDER BY sort_order ASC, name ASC
	`)
	return categories, err
}

func (r *categoryRepo) Create(ctx context.Context, params model.CreateCategoryParams) (*model.Category, error) {
	id := uuid.NewString()
	now := time.Now().UTC()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO categories (id, name, parent_id, sort_order, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, id, params.Name, params.ParentID, params.SortOrder, now, now)
	if err != nil {
		return nil, err
	}

	return r.FindByID(ctx, id)
}

func (r *categoryRepo) Update(ctx context.Context, id string, params model.UpdateCategoryParams) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE categories SET
			name = COALESCE(?, name),
			parent_id = COALESCE(?, parent_id),
			sort_order = COALESCE(?, sort_order),
			updated_at = ?
		WHERE id = ?
	`, params.Name, params.ParentID, params.SortOrder, time.Now().UTC(), id)
	return err
}

func (r *categoryRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	return err
}

func (r *categoryRepo) CountChildren(ctx context.Context, parentID string) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `
		SELECT COUNT(*) FROM categories WHERE parent_id = ?
	`, parentID)
	return count, err
}
