package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"jdih-api/internal/domain"
	"jdih-api/internal/repository"
)

type UserRepository struct {
	exec *Executor
}

func NewUserRepository(exec *Executor) repository.UserRepository {
	return &UserRepository{exec: exec}
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.exec.QueryRow(ctx, `
SELECT id, name, email, role, password, created_at
FROM users
WHERE email = ?`,
		email,
	)

	var (
		user domain.User
		role string
	)
	if err := row.Scan(&user.ID, &user.Name, &user.Email, &role, &user.PasswordHash, &user.CreatedAt); err != nil {
		return nil, userScanError(err)
	}
	user.Role = domain.Role(role)
	return &user, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	row := r.exec.QueryRow(ctx, `
SELECT id, name, email, role, created_at
FROM users
WHERE id = ?`,
		id,
	)

	var (
		user domain.User
		role string
	)
	if err := row.Scan(&user.ID, &user.Name, &user.Email, &role, &user.CreatedAt); err != nil {
		return nil, userScanError(err)
	}
	user.Role = domain.Role(role)
	return &user, nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (repository.WriteResult, error) {
	if user.Role == "" {
		user.Role = domain.RoleUser
	}
	user.CreatedAt = time.Now().UTC()

	res, err := r.exec.Exec(ctx, `
INSERT INTO users (name, email, password, role, created_at)
VALUES (?, ?, ?, ?, ?)`,
		user.Name,
		user.Email,
		user.PasswordHash,
		string(user.Role),
		user.CreatedAt,
	)
	if err != nil {
		return repository.WriteResult{}, fmt.Errorf("insert user: %w", err)
	}
	user.ID = res.LastInsertID
	return res, nil
}

func userScanError(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return repository.ErrNotFound
	}
	return fmt.Errorf("scan user: %w", err)
}
