package repository

import (
	"context"

	"jdih-api/internal/domain"
)

// DocumentSort selects one of the supported list orderings.
type DocumentSort string

const (
	SortNewest    DocumentSort = "newest"
	SortOldest    DocumentSort = "oldest"
	SortTitleAsc  DocumentSort = "title_asc"
	SortTitleDesc DocumentSort = "title_desc"
)

// DocumentFilter narrows a document listing. A nil Status lists every status.
type DocumentFilter struct {
	Status       *domain.DocumentStatus
	CategoryID   *int64
	DocumentType *domain.DocumentType
	Sort         DocumentSort
	Limit        int
	Offset       int
}

// DocumentSearch is a substring search over published documents.
type DocumentSearch struct {
	Term         string
	CategoryID   *int64
	DocumentType *domain.DocumentType
	Limit        int
	Offset       int
}

// DocumentFile describes the stored file attached to a document.
type DocumentFile struct {
	Path string
	Name string
	Size int64
}

// DocumentRepository exposes persistence operations for documents.
type DocumentRepository interface {
	FindAll(ctx context.Context, filter DocumentFilter) ([]domain.Document, error)
	FindByID(ctx context.Context, id int64) (*domain.Document, error)
	Search(ctx context.Context, params DocumentSearch) ([]domain.Document, error)
	Create(ctx context.Context, doc *domain.Document) (WriteResult, error)
	Update(ctx context.Context, id int64, doc *domain.Document) (WriteResult, error)
	UpdateFile(ctx context.Context, id int64, file DocumentFile) (WriteResult, error)
	Delete(ctx context.Context, id int64) (WriteResult, error)
}
