package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/TicketXOS/CRM-sub001/internal/errors"
	"github.com/TicketXOS/CRM-sub001/internal/model"
)

func TestProductService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects missing sku", func(t *testing.T) {
		svc := NewProductService(new(mockProductRepo), new(mockCategoryRepo))

		_, err := svc.Create(ctx, model.CreateProductParams{Name: "Widget"})

		assert.Equal(t, apperrors.ErrCodeMissingRequired, apperrors.GetCode(err))
	})

	t.Run("rejects negative price", func(t *testing.T) {
		svc := NewProductService(new(mockProductRepo), new(mockCategoryRepo))

		_, err := svc.Create(ctx, model.CreateProductParams{SKU: "W-1", Name: "Widget", PriceCents: -1})

		assert.Equal(t, apperrors.ErrCodeInvalidInput, apperrors.GetCode(err))
	})

	t.Run("rejects duplicate sku", func(t *testing.T) {
		productRepo := new(mockProductRepo)
		productRepo.On("FindBySKU", ctx, "W-1").Return(&model.Product{ID: "p1", SKU: "W-1"}, nil)
		svc := NewProductService(productRepo, new(mockCategoryRepo))

		_, err := svc.Create(ctx, model.CreateProductParams{SKU: "W-1", Name: "Widget"})

		assert.Equal(t, apperrors.ErrCodeAlreadyExists, apperrors.GetCode(err))
		productRepo.AssertExpectations(t)
	})

	t.Run("rejects unknown category", func(t *testing.T) {
		productRepo := new(mockProductRepo)
		productRepo.On("FindBySKU", ctx, "W-1").Return(nil, nil)
		categoryRepo := new(mockCategoryRepo)
		categoryRepo.On("FindByID", ctx, "missing-cat").Return(nil, nil)
		svc := NewProductService(productRepo, categoryRepo)

		catID := "missing-cat"
		_, err := svc.Create(ctx, model.CreateProductParams{SKU: "W-1", Name: "Widget", CategoryID: &catID})

		assert.Equal(t, apperrors.ErrCodeNotFound, apperrors.GetCode(err))
	})

	t.Run("creates product", func(t *testing.T) {
		productRepo := new(mockProductRepo)
		productRepo.On("FindBySKU", ctx, "W-1").Return(nil, nil)
		productRepo.On("Create", ctx, mock.AnythingOfType("model.CreateProductParams")).
			Return(&model.Product{ID: "p1", SKU: "W-1", Name: "Widget"}, nil)
		svc := NewProductService(productRepo, new(mockCategoryRepo))

		product, err := svc.Create(ctx, model.CreateProductParams{SKU: "W-1", Name: "Widget", Stock: 5})

		require.NoError(t, err)
		assert.Equal(t, "p1", product.ID)
		productRepo.AssertExpectations(t)
	})
}

func TestProductService_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown id is not found", func(t *testing.T) {
		productRepo := new(mockProductRepo)
		productRepo.On("FindByID", ctx, "nope").Return(nil, nil)
		svc := NewProductService(productRepo, new(mockCategoryRepo))

		_, err := svc.Get(ctx, "nope")

		assert.Equal(t, apperrors.ErrCodeNotFound, apperrors.GetCode(err))
	})
}

func TestProductService_AdjustStock(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects zero delta", func(t *testing.T) {
		svc := NewProductService(new(mockProductRepo), new(mockCategoryRepo))

		_, err := svc.AdjustStock(ctx, "p1", 0)

		assert.Equal(t, apperrors.ErrCodeInvalidInput, apperrors.GetCode(err))
	})

	t.Run("insufficient stock is invalid state", func(t *testing.T) {
		productRepo := new(mockProductRepo)
		productRepo.On("FindByID", ctx, "p1").Return(&model.Product{ID: "p1", Stock: 2}, nil)
		productRepo.On("AdjustStock", ctx, "p1", -5).Return(false, nil)
		svc := NewProductService(productRepo, new(mockCategoryRepo))

		_, err := svc.AdjustStock(ctx, "p1", -5)

		assert.Equal(t, apperrors.ErrCodeInvalidState, apperrors.GetCode(err))
		productRepo.AssertExpectations(t)
	})

	t.Run("applies delta and returns fresh product", func(t *testing.T) {
		productRepo := new(mockProductRepo)
		productRepo.On("FindByID", ctx, "p1").Return(&model.Product{ID: "p1", Stock: 2}, nil).Once()
		productRepo.On("AdjustStock", ctx, "p1", 3).Return(true, nil)
		productRepo.On("FindByID", ctx, "p1").Return(&model.Product{ID: "p1", Stock: 5}, nil).Once()
		svc := NewProductService(productRepo, new(mockCategoryRepo))

		product, err := svc.AdjustStock(ctx, "p1", 3)

		require.NoError(t, err)
		assert.Equal(t, 5, product.Stock)
	})
}
