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

type CategoryService struct {
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
}

func NewCategoryService(
	categoryRepo repository.CategoryRepository,
	productRepo repository.ProductRepository,
) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
	}
}

func (s *CategoryService) Create(ctx context.Context, params model.CreateCategoryParams) (*model.Category, error) {
	if strings.TrimSpace(params.Name) == "" {
		return nil, apperrors.MissingRequired("name")
	}

	if params.ParentID != nil {
		parent, err := s.categoryRepo.FindByID(ctx, *params.ParentID)
		if err != nil {
			return nil, fmt.Errorf("find parent category: %w", err)
		}
		if parent == nil {
			return nil, apperrors.NotFound("Parent category")
		}
	}

	category, err := s.categoryRepo.Create(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}

	log.Info().Str("categoryId", category.ID).Str("name", category.Name).Msg("category created")
	return category, nil
}

func (s *CategoryService) Get(ctx context.Context, id string) (*model.Category, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find category: %w", err)
	}
	if category == nil {
		return nil, apperrors.NotFound("Category")
	}
	return category, nil
}

func (s *CategoryService) List(ctx context.Context) ([]model.Category, error) {
	categories, err := s.categoryRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	if categories == nil {
		categories = []model.Category{}
	}
	return categories, nil
}

// Tree nests categories under their parents. Categories whose parent is
// missing are treated as roots so a dangling parent_id cannot hide a
// subtree.
func (s *CategoryService) Tree(ctx context.Context) ([]*model.CategoryNode, error) {
	categories, err := s.categoryRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	return BuildCategoryTree(categories), nil
}

func BuildCategoryTree(categories []model.Category) []*model.CategoryNode {
	nodes := make(map[string]*model.CategoryNode, len(categories))
	for i := range categories {
		nodes[categories[i].ID] = &model.CategoryNode{
			Category: categories[i],
			Children: []*model.CategoryNode{},
		}
	}

	roots := []*model.CategoryNode{}
	for i := range categories {
		node := nodes[categories[i].ID]
		if categories[i].ParentID != nil {
			if parent, ok := nodes[*categories[i].ParentID]; ok {
				parent.Children = append(parent.Children, node)
				continue
			}
		}
		roots = append(roots, node)
	}
	return roots
}

func (s *CategoryService) Update(ctx context.Context, id string, params model.UpdateCategoryParams) (*model.Category, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	if params.ParentID != nil && *params.ParentID != "" {
		if *params.ParentID == id {
			return nil, apperrors.InvalidInput("parentId", "category cannot be its own parent")
		}
		parent, err := s.categoryRepo.FindByID(ctx, *params.ParentID)
		if err != nil {
			return nil, fmt.Errorf("find parent category: %w", err)
		}
		if parent == nil {
			return nil, apperrors.NotFound("Parent category")
		}
	}

	if err := s.categoryRepo.Update(ctx, id, params); err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}

	return s.Get(ctx, id)
}

// Delete refuses to remove a category that still has child categories or
// products assigned to it.
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	children, err := s.categoryRepo.CountChildren(ctx, id)
	if err != nil {
		return fmt.Errorf("count child categories: %w", err)
	}
	if children > 0 {
		return apperrors.Conflict("category still has child categories")
	}

	products, err := s.productRepo.CountByCategoryID(ctx, id)
	if err != nil {
		return fmt.Errorf("count category products: %w", err)
	}
	if products > 0 {
		return apperrors.Conflict("category still has products assigned")
	}

	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}

	log.Info().Str("categoryId", id).Msg("category deleted")
	return nil
}
