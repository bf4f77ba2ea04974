package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"jdih-api/internal/domain"
	"jdih-api/internal/repository"
	"jdih-api/internal/storage"
)

const (
	documentsTable    = "documents"
	defaultPresignTTL = 15 * time.Minute
)

var (
	ErrDocumentNotFound = errors.New("document not found")
	ErrCategoryNotFound = errors.New("category not found")
	// ErrStorageUnavailable is returned by file operations when no object
	// storage is configured.
	ErrStorageUnavailable = errors.New("file storage unavailable")
	// ErrNoFile is returned when a document has no attached file.
	ErrNoFile = errors.New("document has no file")
)

// FileUpload is a document file received from a client.
type FileUpload struct {
	Name        string
	Size        int64
	ContentType string
	Body        io.Reader
}

// DocumentService coordinates document reads, admin mutations and file storage.
type DocumentService interface {
	List(ctx context.Context, filter repository.DocumentFilter) ([]domain.Document, error)
	Search(ctx context.Context, params repository.DocumentSearch) ([]domain.Document, error)
	Get(ctx context.Context, id int64) (*domain.Document, error)
	Create(ctx context.Context, actor Actor, doc domain.Document) (*domain.Document, error)
	Update(ctx context.Context, actor Actor, id int64, patch domain.DocumentPatch) (*domain.Document, error)
	Delete(ctx context.Context, actor Actor, id int64) error
	AttachFile(ctx context.Context, actor Actor, id int64, file FileUpload) (*domain.Document, error)
	FileURL(ctx context.Context, doc *domain.Document) (string, error)
}

type DocumentServiceConfig struct {
	// Storage may be nil, in which case file operations fail with ErrStorageUnavailable.
	Storage    storage.Service
	KeyPrefix  string
	PresignTTL time.Duration
	Logger     logrus.FieldLogger
	Now        func() time.Time
}

type documentService struct {
	docs       repository.DocumentRepository
	categories repository.CategoryRepository
	audit      AuditService
	cfg        DocumentServiceConfig
}

func NewDocumentService(docs repository.DocumentRepository, categories repository.CategoryRepository, audit AuditService, cfg DocumentServiceConfig) DocumentService {
	if cfg.PresignTTL <= 0 {
		cfg.PresignTTL = defaultPresignTTL
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.StandardLogger()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &documentService{
		docs:       docs,
		categories: categories,
		audit:      audit,
		cfg:        cfg,
	}
}

func (s *documentService) List(ctx context.Context, filter repository.DocumentFilter) ([]domain.Document, error) {
	return s.docs.FindAll(ctx, filter)
}

func (s *documentService) Search(ctx context.Context, params repository.DocumentSearch) ([]domain.Document, error) {
	return s.docs.Search(ctx, params)
}

func (s *documentService) Get(ctx context.Context, id int64) (*domain.Document, error) {
	doc, err := s.docs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}
	return doc, nil
}

func (s *documentService) Create(ctx context.Context, actor Actor, doc domain.Document) (*domain.Document, error) {
	if err := s.ensureCategory(ctx, doc.CategoryID); err != nil {
		return nil, err
	}
	s.stampPublished(&doc)

	if _, err := s.docs.Create(ctx, &doc); err != nil {
		return nil, err
	}

	created, err := s.Get(ctx, doc.ID)
	if err != nil {
		return nil, fmt.Errorf("reload document: %w", err)
	}

	entry := actor.Entry(domain.AuditActionCreate, documentsTable, created.ID)
	entry.NewValues = snapshot(documentValuesOf(created))
	s.audit.Record(ctx, entry)
	return created, nil
}

func (s *documentService) Update(ctx context.Context, actor Actor, id int64, patch domain.DocumentPatch) (*domain.Document, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.CategoryID != nil && *patch.CategoryID != current.CategoryID {
		if err := s.ensureCategory(ctx, *patch.CategoryID); err != nil {
			return nil, err
		}
	}

	next := patch.Apply(*current)
	s.stampPublished(&next)

	res, err := s.docs.Update(ctx, id, &next)
	if err != nil {
		return nil, err
	}
	if res.RowsAffected == 0 {
		return nil, ErrDocumentNotFound
	}

	updated, err := s.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reload document: %w", err)
	}

	entry := actor.Entry(domain.AuditActionUpdate, documentsTable, id)
	entry.OldValues = snapshot(documentValuesOf(current))
	entry.NewValues = snapshot(documentValuesOf(updated))
	s.audit.Record(ctx, entry)
	return updated, nil
}

func (s *documentService) Delete(ctx context.Context, actor Actor, id int64) error {
	current, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	res, err := s.docs.Delete(ctx, id)
	if err != nil {
		return err
	}
	if res.RowsAffected == 0 {
		return ErrDocumentNotFound
	}

	if current.FilePath != nil {
		s.removeObject(ctx, *current.FilePath)
	}

	entry := actor.Entry(domain.AuditActionDelete, documentsTable, id)
	entry.OldValues = snapshot(documentValuesOf(current))
	s.audit.Record(ctx, entry)
	return nil
}

// AttachFile uploads the file and points the document at it. A previously
// attached file is removed from storage afterwards.
func (s *documentService) AttachFile(ctx context.Context, actor Actor, id int64, file FileUpload) (*domain.Document, error) {
	if s.cfg.Storage == nil {
		return nil, ErrStorageUnavailable
	}
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	key := storage.ObjectKey(s.cfg.KeyPrefix, id, file.Name)
	if err := s.cfg.Storage.Upload(ctx, key, file.Body, file.Size, file.ContentType); err != nil {
		return nil, err
	}

	res, err := s.docs.UpdateFile(ctx, id, repository.DocumentFile{
		Path: key,
		Name: storage.SanitizeFilename(file.Name),
		Size: file.Size,
	})
	if err != nil || res.RowsAffected == 0 {
		s.removeObject(ctx, key)
		if err != nil {
			return nil, err
		}
		return nil, ErrDocumentNotFound
	}

	if current.FilePath != nil && *current.FilePath != key {
		s.removeObject(ctx, *current.FilePath)
	}

	updated, err := s.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reload document: %w", err)
	}

	entry := actor.Entry(domain.AuditActionUpload, documentsTable, id)
	entry.OldValues = snapshot(fileValuesOf(current))
	entry.NewValues = snapshot(fileValuesOf(updated))
	s.audit.Record(ctx, entry)
	return updated, nil
}

func (s *documentService) FileURL(ctx context.Context, doc *domain.Document) (string, error) {
	if s.cfg.Storage == nil {
		return "", ErrStorageUnavailable
	}
	if doc == nil || doc.FilePath == nil || *doc.FilePath == "" {
		return "", ErrNoFile
	}

	var filename string
	if doc.FileName != nil {
		filename = *doc.FileName
	}
	return s.cfg.Storage.PresignGet(ctx, *doc.FilePath, filename, s.cfg.PresignTTL)
}

func (s *documentService) ensureCategory(ctx context.Context, id int64) error {
	if _, err := s.categories.FindByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}
	return nil
}

// stampPublished sets the publication time of published documents that lack one.
func (s *documentService) stampPublished(doc *domain.Document) {
	if doc.IsPublished() && doc.PublishedAt == nil {
		now := s.cfg.Now().UTC()
		doc.PublishedAt = &now
	}
}

func (s *documentService) removeObject(ctx context.Context, key string) {
	if s.cfg.Storage == nil {
		return
	}
	if err := s.cfg.Storage.Delete(ctx, key); err != nil {
		s.cfg.Logger.WithError(err).WithField("key", key).Warn("remove stored document file")
	}
}

type documentValues struct {
	Title          string                `json:"title"`
	Description    *string               `json:"description,omitempty"`
	CategoryID     int64                 `json:"category_id"`
	DocumentNumber *string               `json:"document_number,omitempty"`
	DocumentType   domain.DocumentType   `json:"document_type"`
	Status         domain.DocumentStatus `json:"status"`
	PublishedAt    *time.Time            `json:"published_at,omitempty"`
	FilePath       *string               `json:"file_path,omitempty"`
}

func documentValuesOf(doc *domain.Document) documentValues {
	return documentValues{
		Title:          doc.Title,
		Description:    doc.Description,
		CategoryID:     doc.CategoryID,
		DocumentNumber: doc.DocumentNumber,
		DocumentType:   doc.DocumentType,
		Status:         doc.Status,
		PublishedAt:    doc.PublishedAt,
		FilePath:       doc.FilePath,
	}
}

type fileValues struct {
	FilePath *string `json:"file_path"`
	FileName *string `json:"file_name"`
	FileSize *int64  `json:"file_size"`
}

func fileValuesOf(doc *domain.Document) fileValues {
	return fileValues{FilePath: doc.FilePath, FileName: doc.FileName, FileSize: doc.FileSize}
}
