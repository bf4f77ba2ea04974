package repository

import (
	"context"

	"jdih-api/internal/domain"
)

// CategoryRepository exposes persistence operations for categories.
type CategoryRepository interface {
	FindAll(ctx context.Context) ([]domain.Category, error)
	FindByID(ctx context.Context, id int64) (*domain.Category, error)
	Create(ctx context.Context, category *domain.Category) (WriteResult, error)
}
