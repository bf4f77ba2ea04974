package service

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"jdih-api/internal/domain"
	"jdih-api/internal/repository"
)

var errDatabaseDown = errors.New("database down")

type fakeUserRepo struct {
	findByEmailFn func(ctx context.Context, email string) (*domain.User, error)
	findByIDFn    func(ctx context.Context, id int64) (*domain.User, error)
	createFn      func(ctx context.Context, user *domain.User) (repository.WriteResult, error)
}

func (f fakeUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if f.findByEmailFn == nil {
		return nil, repository.ErrNotFound
	}
	return f.findByEmailFn(ctx, email)
}

func (f fakeUserRepo) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	if f.findByIDFn == nil {
		return nil, repository.ErrNotFound
	}
	return f.findByIDFn(ctx, id)
}

func (f fakeUserRepo) Create(ctx context.Context, user *domain.User) (repository.WriteResult, error) {
	if f.createFn == nil {
		user.ID = 1
		return repository.WriteResult{LastInsertID: 1, RowsAffected: 1}, nil
	}
	return f.createFn(ctx, user)
}

type fakeAuditRepo struct {
	mu      sync.Mutex
	entries []domain.AuditEntry
	err     error
	limit   int
}

func (f *fakeAuditRepo) Log(_ context.Context, entry *domain.AuditEntry) (repository.WriteResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return repository.WriteResult{}, f.err
	}
	entry.ID = int64(len(f.entries) + 1)
	f.entries = append(f.entries, *entry)
	return repository.WriteResult{LastInsertID: entry.ID, RowsAffected: 1}, nil
}

func (f *fakeAuditRepo) ListByRecord(_ context.Context, table string, recordID int64, limit int) ([]domain.AuditEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.limit = limit
	var out []domain.AuditEntry
	for _, e := range f.entries {
		if e.TableName == table && e.RecordID != nil && *e.RecordID == recordID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeAuditRepo) recorded() []domain.AuditEntry {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.AuditEntry(nil), f.entries...)
}

type memCategories struct {
	items map[int64]domain.Category
}

func newMemCategories(cats ...domain.Category) *memCategories {
	m := &memCategories{items: map[int64]domain.Category{}}
	for _, c := range cats {
		m.items[c.ID] = c
	}
	return m
}

func (m *memCategories) FindAll(context.Context) ([]domain.Category, error) {
	out := []domain.Category{}
	for _, c := range m.items {
		out = append(out, c)
	}
	return out, nil
}

func (m *memCategories) FindByID(_ context.Context, id int64) (*domain.Category, error) {
	c, ok := m.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

func (m *memCategories) Create(_ context.Context, c *domain.Category) (repository.WriteResult, error) {
	c.ID = int64(len(m.items) + 1)
	m.items[c.ID] = *c
	return repository.WriteResult{LastInsertID: c.ID, RowsAffected: 1}, nil
}

// memDocuments is a map backed DocumentRepository.
type memDocuments struct {
	categories *memCategories
	items      map[int64]domain.Document
	nextID     int64

	lastFilter repository.DocumentFilter
	lastSearch repository.DocumentSearch
	updateErr  error
}

func newMemDocuments(categories *memCategories) *memDocuments {
	return &memDocuments{categories: categories, items: map[int64]domain.Document{}}
}

func (m *memDocuments) FindAll(_ context.Context, filter repository.DocumentFilter) ([]domain.Document, error) {
	m.lastFilter = filter
	out := []domain.Document{}
	for _, d := range m.items {
		out = append(out, d)
	}
	return out, nil
}

func (m *memDocuments) FindByID(_ context.Context, id int64) (*domain.Document, error) {
	d, ok := m.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if c, ok := m.categories.items[d.CategoryID]; ok {
		name := c.Name
		d.CategoryName = &name
	}
	return &d, nil
}

func (m *memDocuments) Search(_ context.Context, params repository.DocumentSearch) ([]domain.Document, error) {
	m.lastSearch = params
	return []domain.Document{}, nil
}

func (m *memDocuments) Create(_ context.Context, doc *domain.Document) (repository.WriteResult, error) {
	m.nextID++
	doc.ID = m.nextID
	doc.CreatedAt = time.Now().UTC()
	doc.UpdatedAt = doc.CreatedAt
	m.items[doc.ID] = *doc
	return repository.WriteResult{LastInsertID: doc.ID, RowsAffected: 1}, nil
}

func (m *memDocuments) Update(_ context.Context, id int64, doc *domain.Document) (repository.WriteResult, error) {
	if m.updateErr != nil {
		return repository.WriteResult{}, m.updateErr
	}
	if _, ok := m.items[id]; !ok {
		return repository.WriteResult{}, nil
	}
	m.items[id] = *doc
	return repository.WriteResult{RowsAffected: 1}, nil
}

func (m *memDocuments) UpdateFile(_ context.Context, id int64, file repository.DocumentFile) (repository.WriteResult, error) {
	d, ok := m.items[id]
	if !ok {
		return repository.WriteResult{}, nil
	}
	d.FilePath = &file.Path
	d.FileName = &file.Name
	d.FileSize = &file.Size
	m.items[id] = d
	return repository.WriteResult{RowsAffected: 1}, nil
}

func (m *memDocuments) Delete(_ context.Context, id int64) (repository.WriteResult, error) {
	if _, ok := m.items[id]; !ok {
		return repository.WriteResult{}, nil
	}
	delete(m.items, id)
	return repository.WriteResult{RowsAffected: 1}, nil
}

type fakeStorage struct {
	uploads   map[string][]byte
	deleted   []string
	uploadErr error
	deleteErr error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{uploads: map[string][]byte{}}
}

func (f *fakeStorage) Upload(_ context.Context, key string, body io.Reader, _ int64, _ string) error {
	if f.uploadErr != nil {
		return f.uploadErr
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	f.uploads[key] = data
	return nil
}

func (f *fakeStorage) Delete(_ context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	return f.deleteErr
}

func (f *fakeStorage) PresignGet(_ context.Context, key, filename string, expires time.Duration) (string, error) {
	return "https://files.example/" + key + "?name=" + filename + "&ttl=" + expires.String(), nil
}

func ptr[T any](v T) *T {
	return &v
}
