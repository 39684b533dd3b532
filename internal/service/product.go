package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	apperrors "github.com/TicketXOS/CRM-sub001/internal/errors"
	"github.com/TicketXOS/CRM-sub001/internal/model"
	"github.com/TicketXOS/CRM-sub001/internal/repository"
)

type ProductService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

func NewProductService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

type ProductListResult struct {
	Products []model.Product `json:"products"`
	Total    int             `json:"total"`
}

func (s *ProductService) Create(ctx context.Context, params model.CreateProductParams) (*model.Product, error) {
	params.SKU = strings.TrimSpace(params.SKU)
	if params.SKU == "" {
		return nil, apperrors.MissingRequired("sku")
	}
	if strings.TrimSpace(params.Name) == "" {
		return nil, apperrors.MissingRequired("name")
	}
	if params.PriceCents < 0 {
		return nil, apperrors.InvalidInput("priceCents", "must not be negative")
	}
	if params.Stock < 0 {
		return nil, apperrors.InvalidInput("stock", "must not be negative")
	}

	existing, err := s.productRepo.FindBySKU(ctx, params.SKU)
	if err != nil {
		return nil, fmt.Errorf("find product by sku: %w", err)
	}
	if existing != nil {
		return nil, apperrors.AlreadyExists("Product with this SKU")
	}

	if params.CategoryID != nil {
		category, err := s.categoryRepo.FindByID(ctx, *params.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("find category: %w", err)
		}
		if category == nil {
			return nil, apperrors.NotFound("Category")
		}
	}

	product, err := s.productRepo.Create(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	log.Info().Str("productId", product.ID).Str("sku", product.SKU).Msg("product created")
	return product, nil
}

func (s *ProductService) Get(ctx context.Context, id string) (*model.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find product: %w", err)
	}
	if product == nil {
		return nil, apperrors.NotFound("Product")
	}
	return product, nil
}

func (s *ProductService) List(ctx context.Context, search string, limit, offset int) (*ProductListResult, error) {
	products, err := s.productRepo.List(ctx, search, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	total, err := s.productRepo.Count(ctx, search)
	if err != nil {
		return nil, fmt.Errorf("count products: %w", err)
	}

	if products == nil {
		products = []model.Product{}
	}
	return &ProductListResult{Products: products, Total: total}, nil
}

func (s *ProductService) Update(ctx context.Context, id string, params model.UpdateProductParams) (*model.Product, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	if params.PriceCents != nil && *params.PriceCents < 0 {
		return nil, apperrors.InvalidInput("priceCents", "must not be negative")
	}

	if params.CategoryID != nil && *params.CategoryID != "" {
		category, err := s.categoryRepo.FindByID(ctx, *params.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("find category: %w", err)
		}
		if category == nil {
			return nil, apperrors.NotFound("Category")
		}
	}

	if err := s.productRepo.Update(ctx, id, params); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}

	return s.Get(ctx, id)
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	log.Info().Str("productId", id).Msg("product deleted")
	return nil
}

// AdjustStock applies a signed delta to a product's stock. A delta that
// would take stock below zero is rejected as an invalid state.
func (s *ProductService) AdjustStock(ctx context.Context, id string, delta int) (*model.Product, error) {
	if delta == 0 {
		return nil, apperrors.InvalidInput("delta", "must not be zero")
	}

	product, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	applied, err := s.productRepo.AdjustStock(ctx, id, delta)
	if err != nil {
		return nil, fmt.Errorf("adjust stock: %w", err)
	}
	if !applied {
		return nil, apperrors.InvalidState(
			fmt.Sprintf("insufficient stock: have %d, requested %d", product.Stock, -delta))
	}

	log.Info().Str("productId", id).Int("delta", delta).Msg("stock adjusted")
	return s.Get(ctx, id)
}
