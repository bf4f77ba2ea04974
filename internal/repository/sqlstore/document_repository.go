package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"jdih-api/internal/domain"
	"jdih-api/internal/repository"
)

const (
	defaultListLimit   = 50
	defaultSearchLimit = 20
)

const selectDocuments = `
SELECT d.id, d.title, d.description, d.content, d.file_path, d.file_name, d.file_size,
	d.category_id, c.name, d.document_number, d.document_type, d.status,
	d.published_at, d.created_at, d.updated_at
FROM documents d
LEFT JOIN categories c ON d.category_id = c.id`

var documentOrderings = map[repository.DocumentSort]string{
	repository.SortNewest:    "COALESCE(d.published_at, d.created_at) DESC, d.id DESC",
	repository.SortOldest:    "COALESCE(d.published_at, d.created_at) ASC, d.id ASC",
	repository.SortTitleAsc:  "d.title ASC, d.id ASC",
	repository.SortTitleDesc: "d.title DESC, d.id DESC",
}

type DocumentRepository struct {
	exec *Executor
}

func NewDocumentRepository(exec *Executor) repository.DocumentRepository {
	return &DocumentRepository{exec: exec}
}

func (r *DocumentRepository) FindAll(ctx context.Context, filter repository.DocumentFilter) ([]domain.Document, error) {
	var (
		where []string
		args  []any
	)
	if filter.Status != nil {
		where = append(where, "d.status = ?")
		args = append(args, string(*filter.Status))
	}
	if filter.CategoryID != nil {
		where = append(where, "d.category_id = ?")
		args = append(args, *filter.CategoryID)
	}
	if filter.DocumentType != nil {
		where = append(where, "d.document_type = ?")
		args = append(args, string(*filter.DocumentType))
	}

	orderBy, ok := documentOrderings[filter.Sort]
	if !ok {
		orderBy = documentOrderings[repository.SortNewest]
	}

	query := selectDocuments
	if len(where) > 0 {
		query += "\nWHERE " + strings.Join(where, " AND ")
	}
	query += "\nORDER BY " + orderBy + "\nLIMIT ? OFFSET ?"
	args = append(args, limitOrDefault(filter.Limit, defaultListLimit), max(filter.Offset, 0))

	return r.queryDocuments(ctx, query, args...)
}

func (r *DocumentRepository) FindByID(ctx context.Context, id int64) (*domain.Document, error) {
	row := r.exec.QueryRow(ctx, selectDocuments+"\nWHERE d.id = ?", id)
	return scanDocument(row)
}

// Search matches the term as a substring of title, description or content of
// published documents, newest publication first.
func (r *DocumentRepository) Search(ctx context.Context, params repository.DocumentSearch) ([]domain.Document, error) {
	pattern := "%" + escapeLike(params.Term) + "%"
	query := selectDocuments + `
WHERE d.status = ?
AND (d.title LIKE ? ESCAPE '!' OR d.description LIKE ? ESCAPE '!' OR d.content LIKE ? ESCAPE '!')`
	args := []any{string(domain.DocumentStatusPublished), pattern, pattern, pattern}

	if params.CategoryID != nil {
		query += "\nAND d.category_id = ?"
		args = append(args, *params.CategoryID)
	}
	if params.DocumentType != nil {
		query += "\nAND d.document_type = ?"
		args = append(args, string(*params.DocumentType))
	}
	query += "\nORDER BY d.published_at DESC, d.id DESC\nLIMIT ? OFFSET ?"
	args = append(args, limitOrDefault(params.Limit, defaultSearchLimit), max(params.Offset, 0))

	return r.queryDocuments(ctx, query, args...)
}

func (r *DocumentRepository) Create(ctx context.Context, doc *domain.Document) (repository.WriteResult, error) {
	now := time.Now().UTC()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	res, err := r.exec.Exec(ctx, `
INSERT INTO documents (title, description, content, file_path, file_name, file_size, category_id, document_number, document_type, status, published_at, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		doc.Title,
		doc.Description,
		doc.Content,
		doc.FilePath,
		doc.FileName,
		doc.FileSize,
		doc.CategoryID,
		doc.DocumentNumber,
		string(doc.DocumentType),
		string(doc.Status),
		nullTime(doc.PublishedAt),
		doc.CreatedAt,
		doc.UpdatedAt,
	)
	if err != nil {
		return repository.WriteResult{}, fmt.Errorf("insert document: %w", err)
	}
	doc.ID = res.LastInsertID
	return res, nil
}

func (r *DocumentRepository) Update(ctx context.Context, id int64, doc *domain.Document) (repository.WriteResult, error) {
	doc.UpdatedAt = time.Now().UTC()
	res, err := r.exec.Exec(ctx, `
UPDATE documents
SET title = ?, description = ?, content = ?, category_id = ?, document_number = ?, document_type = ?, status = ?, published_at = ?, updated_at = ?
WHERE id = ?`,
		doc.Title,
		doc.Description,
		doc.Content,
		doc.CategoryID,
		doc.DocumentNumber,
		string(doc.DocumentType),
		string(doc.Status),
		nullTime(doc.PublishedAt),
		doc.UpdatedAt,
		id,
	)
	if err != nil {
		return repository.WriteResult{}, fmt.Errorf("update document: %w", err)
	}
	return res, nil
}

func (r *DocumentRepository) UpdateFile(ctx context.Context, id int64, file repository.DocumentFile) (repository.WriteResult, error) {
	res, err := r.exec.Exec(ctx, `
UPDATE documents
SET file_path = ?, file_name = ?, file_size = ?, updated_at = ?
WHERE id = ?`,
		file.Path,
		file.Name,
		file.Size,
		time.Now().UTC(),
		id,
	)
	if err != nil {
		return repository.WriteResult{}, fmt.Errorf("update document file: %w", err)
	}
	return res, nil
}

func (r *DocumentRepository) Delete(ctx context.Context, id int64) (repository.WriteResult, error) {
	res, err := r.exec.Exec(ctx, `DELETE FROM documents WHERE id = ?`, id)
	if err != nil {
		return repository.WriteResult{}, fmt.Errorf("delete document: %w", err)
	}
	return res, nil
}

func (r *DocumentRepository) queryDocuments(ctx context.Context, query string, args ...any) ([]domain.Document, error) {
	rows, err := r.exec.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}
	defer rows.Close()

	docs := []domain.Document{}
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *doc)
	}
	return docs, rows.Err()
}

func scanDocument(row rowScanner) (*domain.Document, error) {
	var (
		doc            domain.Document
		description    sql.NullString
		content        sql.NullString
		filePath       sql.NullString
		fileName       sql.NullString
		fileSize       sql.NullInt64
		categoryName   sql.NullString
		documentNumber sql.NullString
		documentType   string
		status         string
		publishedAt    sql.NullTime
	)

	if err := row.Scan(
		&doc.ID,
		&doc.Title,
		&description,
		&content,
		&filePath,
		&fileName,
		&fileSize,
		&doc.CategoryID,
		&categoryName,
		&documentNumber,
		&documentType,
		&status,
		&publishedAt,
		&doc.CreatedAt,
		&doc.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan document: %w", err)
	}

	doc.Description = nullString(description)
	doc.Content = nullString(content)
	doc.FilePath = nullString(filePath)
	doc.FileName = nullString(fileName)
	doc.FileSize = nullInt64(fileSize)
	doc.CategoryName = nullString(categoryName)
	doc.DocumentNumber = nullString(documentNumber)
	doc.DocumentType = domain.DocumentType(documentType)
	doc.Status = domain.DocumentStatus(status)
	doc.PublishedAt = nullTimePtr(publishedAt)
	doc.CreatedAt = doc.CreatedAt.UTC()
	doc.UpdatedAt = doc.UpdatedAt.UTC()
	return &doc, nil
}

func escapeLike(term string) string {
	return strings.NewReplacer("!", "!!", "%", "!%", "_", "!_").Replace(term)
}

func limitOrDefault(limit, fallback int) int {
	if limit <= 0 {
		return fallback
	}
	return limit
}
