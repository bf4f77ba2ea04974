package service

import (
	"context"
	"errors"
	"strings"

	"jdih-api/internal/domain"
	"jdih-api/internal/repository"
)

const categoriesTable = "categories"

type CategoryService interface {
	List(ctx context.Context) ([]domain.Category, error)
	Get(ctx context.Context, id int64) (*domain.Category, error)
	Create(ctx context.Context, actor Actor, category domain.Category) (*domain.Category, error)
}

type categoryService struct {
	categories repository.CategoryRepository
	audit      AuditService
}

func NewCategoryService(categories repository.CategoryRepository, audit AuditService) CategoryService {
	return &categoryService{categories: categories, audit: audit}
}

func (s *categoryService) List(ctx context.Context) ([]domain.Category, error) {
	return s.categories.FindAll(ctx)
}

func (s *categoryService) Get(ctx context.Context, id int64) (*domain.Category, error) {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

func (s *categoryService) Create(ctx context.Context, actor Actor, category domain.Category) (*domain.Category, error) {
	category.Name = strings.TrimSpace(category.Name)
	if _, err := s.categories.Create(ctx, &category); err != nil {
		return nil, err
	}

	entry := actor.Entry(domain.AuditActionCreate, categoriesTable, category.ID)
	entry.NewValues = snapshot(map[string]any{
		"name":        category.Name,
		"description": category.Description,
	})
	s.audit.Record(ctx, entry)
	return &category, nil
}
