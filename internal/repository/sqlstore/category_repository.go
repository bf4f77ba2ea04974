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

type CategoryRepository struct {
	exec *Executor
}

func NewCategoryRepository(exec *Executor) repository.CategoryRepository {
	return &CategoryRepository{exec: exec}
}

func (r *CategoryRepository) FindAll(ctx context.Context) ([]domain.Category, error) {
	rows, err := r.exec.Query(ctx, `
SELECT id, name, description, created_at
FROM categories
ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	categories := []domain.Category{}
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, *category)
	}
	return categories, rows.Err()
}

func (r *CategoryRepository) FindByID(ctx context.Context, id int64) (*domain.Category, error) {
	row := r.exec.QueryRow(ctx, `
SELECT id, name, description, created_at
FROM categories
WHERE id = ?`,
		id,
	)
	return scanCategory(row)
}

func (r *CategoryRepository) Create(ctx context.Context, category *domain.Category) (repository.WriteResult, error) {
	category.CreatedAt = time.Now().UTC()
	res, err := r.exec.Exec(ctx, `
INSERT INTO categories (name, description, created_at)
VALUES (?, ?, ?)`,
		category.Name,
		category.Description,
		category.CreatedAt,
	)
	if err != nil {
		return repository.WriteResult{}, fmt.Errorf("insert category: %w", err)
	}
	category.ID = res.LastInsertID
	return res, nil
}

func scanCategory(row rowScanner) (*domain.Category, error) {
	var (
		category    domain.Category
		description sql.NullString
	)
	if err := row.Scan(&category.ID, &category.Name, &description, &category.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan category: %w", err)
	}
	category.Description = nullString(description)
	return &category, nil
}
