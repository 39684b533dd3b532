package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/TicketXOS/CRM-sub001/internal/errors"
	"github.com/TicketXOS/CRM-sub001/internal/model"
)

func strptr(s string) *string { return &s }

func TestBuildCategoryTree(t *testing.T) {
	t.Run("nests children under parents", func(t *testing.T) {
		categories := []model.Category{
			{ID: "root", Name: "Electronics"},
			{ID: "phones", Name: "Phones", ParentID: strptr("root")},
			{ID: "android", Name: "Android", ParentID: strptr("phones")},
			{ID: "laptops", Name: "Laptops", ParentID: strptr("root")},
		}

		tree := BuildCategoryTree(categories)

		require.Len(t, tree, 1)
		assert.Equal(t, "Electronics", tree[0].Name)
		require.Len(t, tree[0].Children, 2)
		assert.Equal(t, "Phones", tree[0].Children[0].Name)
		require.Len(t, tree[0].Children[0].Children, 1)
		assert.Equal(t, "Android", tree[0].Children[0].Children[0].Name)
	})

	t.Run("dangling parent becomes a root", func(t *testing.T) {
		categories := []model.Category{
			{ID: "a", Name: "A"},
			{ID: "b", Name: "B", ParentID: strptr("deleted-parent")},
		}

		tree := BuildCategoryTree(categories)

		require.Len(t, tree, 2)
		assert.Equal(t, "A", tree[0].Name)
		assert.Equal(t, "B", tree[1].Name)
	})

	t.Run("empty input yields empty tree", func(t *testing.T) {
		tree := BuildCategoryTree(nil)
		assert.Empty(t, tree)
		assert.NotNil(t, tree)
	})
}

func TestCategoryService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects blank name", func(t *testing.T) {
		svc := NewCategoryService(new(mockCategoryRepo), new(mockProductRepo))

		_, err := svc.Create(ctx, model.CreateCategoryParams{Name: "   "})

		assert.Equal(t, apperrors.ErrCodeMissingRequired, apperrors.GetCode(err))
	})

	t.Run("rejects unknown parent", func(t *testing.T) {
		categoryRepo := new(mockCategoryRepo)
		categoryRepo.On("FindByID", ctx, "ghost").Return(nil, nil)
		svc := NewCategoryService(categoryRepo, new(mockProductRepo))

		_, err := svc.Create(ctx, model.CreateCategoryParams{Name: "Phones", ParentID: strptr("ghost")})

		assert.Equal(t, apperrors.ErrCodeNotFound, apperrors.GetCode(err))
	})
}

func TestCategoryService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("refuses when children exist", func(t *testing.T) {
		categoryRepo := new(mockCategoryRepo)
		categoryRepo.On("FindByID", ctx, "c1").Return(&model.Category{ID: "c1"}, nil)
		categoryRepo.On("CountChildren", ctx, "c1").Return(2, nil)
		svc := NewCategoryService(categoryRepo, new(mockProductRepo))

		err := svc.Delete(ctx, "c1")

		assert.Equal(t, apperrors.ErrCodeConflict, apperrors.GetCode(err))
	})

	t.Run("refuses when products assigned", func(t *testing.T) {
		categoryRepo := new(mockCategoryRepo)
		categoryRepo.On("FindByID", ctx, "c1").Return(&model.Category{ID: "c1"}, nil)
		categoryRepo.On("CountChildren", ctx, "c1").Return(0, nil)
		productRepo := new(mockProductRepo)
		productRepo.On("CountByCategoryID", ctx, "c1").Return(3, nil)
		svc := NewCategoryService(categoryRepo, productRepo)

		err := svc.Delete(ctx, "c1")

		assert.Equal(t, apperrors.ErrCodeConflict, apperrors.GetCode(err))
	})

	t.Run("deletes an empty category", func(t *testing.T) {
		categoryRepo := new(mockCategoryRepo)
		categoryRepo.On("FindByID", ctx, "c1").Return(&model.Category{ID: "c1"}, nil)
		categoryRepo.On("CountChildren", ctx, "c1").Return(0, nil)
		categoryRepo.On("Delete", ctx, "c1").Return(nil)
		productRepo := new(mockProductRepo)
		productRepo.On("CountByCategoryID", ctx, "c1").Return(0, nil)
		svc := NewCategoryService(categoryRepo, productRepo)

		err := svc.Delete(ctx, "c1")

		assert.NoError(t, err)
		categoryRepo.AssertExpectations(t)
	})
}

func TestCategoryService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("category cannot be its own parent", func(t *testing.T) {
		categoryRepo := new(mockCategoryRepo)
		categoryRepo.On("FindByID", ctx, "c1").Return(&model.Category{ID: "c1"}, nil)
		svc := NewCategoryService(categoryRepo, new(mockProductRepo))

		_, err := svc.Update(ctx, "c1", model.UpdateCategoryParams{ParentID: strptr("c1")})

		assert.Equal(t, apperrors.ErrCodeInvalidInput, apperrors.GetCode(err))
	})
}
