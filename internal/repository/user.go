package repository

import (
	"context"

	"jdih-api/internal/domain"
)

// UserRepository defines persistence operations for User entities.
type UserRepository interface {
	// FindByEmail returns the user including its password hash.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindByID returns the user without its password hash.
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (WriteResult, error)
}
