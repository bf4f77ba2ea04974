package http

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"jdih-api/internal/auth"
	"jdih-api/internal/domain"
	"jdih-api/internal/repository"
	"jdih-api/internal/service"
)

const (
	adminToken = "admin-token"
	userToken  = "user-token"
)

var errStoreDown = errors.New("store unavailable")

var (
	adminUser   = &domain.User{ID: 1, Name: "Admin JDIH", Email: "admin@jdih.go.id", Role: domain.RoleAdmin}
	regularUser = &domain.User{ID: 2, Name: "Warga", Email: "warga@jdih.go.id", Role: domain.RoleUser}
)

type fakeUsers struct {
	authenticateFn func(ctx context.Context, email, password string) (*domain.User, error)
	resolveFn      func(ctx context.Context, token string) (*domain.User, error)

	mu       sync.Mutex
	resolved []string
	authN    int
}

func (f *fakeUsers) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	f.mu.Lock()
	f.authN++
	f.mu.Unlock()
	if f.authenticateFn == nil {
		return nil, service.ErrInvalidCredentials
	}
	return f.authenticateFn(ctx, email, password)
}

func (f *fakeUsers) ResolveToken(ctx context.Context, token string) (*domain.User, error) {
	f.mu.Lock()
	f.resolved = append(f.resolved, token)
	f.mu.Unlock()
	if f.resolveFn != nil {
		return f.resolveFn(ctx, token)
	}
	switch token {
	case adminToken:
		return adminUser, nil
	case userToken:
		return regularUser, nil
	}
	return nil, auth.ErrInvalidToken
}

func (f *fakeUsers) Create(context.Context, service.CreateUserInput) (*domain.User, error) {
	return nil, nil
}

func (f *fakeUsers) GetByID(context.Context, int64) (*domain.User, error) {
	return nil, service.ErrUserNotFound
}

type fakeAudit struct {
	mu      sync.Mutex
	entries []domain.AuditEntry
	listFn  func(ctx context.Context, table string, recordID int64, limit int) ([]domain.AuditEntry, error)
}

func (f *fakeAudit) Record(_ context.Context, entry domain.AuditEntry) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, entry)
}

func (f *fakeAudit) ListByRecord(ctx context.Context, table string, recordID int64, limit int) ([]domain.AuditEntry, error) {
	if f.listFn == nil {
		return nil, nil
	}
	return f.listFn(ctx, table, recordID, limit)
}

func (f *fakeAudit) recorded() []domain.AuditEntry {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.AuditEntry(nil), f.entries...)
}

type failingAuditRepo struct{}

func (failingAuditRepo) Log(context.Context, *domain.AuditEntry) (repository.WriteResult, error) {
	return repository.WriteResult{}, errStoreDown
}

func (failingAuditRepo) ListByRecord(context.Context, string, int64, int) ([]domain.AuditEntry, error) {
	return nil, errStoreDown
}

type fakeDocuments struct {
	listFn       func(ctx context.Context, filter repository.DocumentFilter) ([]domain.Document, error)
	searchFn     func(ctx context.Context, params repository.DocumentSearch) ([]domain.Document, error)
	getFn        func(ctx context.Context, id int64) (*domain.Document, error)
	createFn     func(ctx context.Context, actor service.Actor, doc domain.Document) (*domain.Document, error)
	updateFn     func(ctx context.Context, actor service.Actor, id int64, patch domain.DocumentPatch) (*domain.Document, error)
	deleteFn     func(ctx context.Context, actor service.Actor, id int64) error
	attachFileFn func(ctx context.Context, actor service.Actor, id int64, file service.FileUpload) (*domain.Document, error)
	fileURLFn    func(ctx context.Context, doc *domain.Document) (string, error)
}

func (f fakeDocuments) List(ctx context.Context, filter repository.DocumentFilter) ([]domain.Document, error) {
	if f.listFn == nil {
		return []domain.Document{}, nil
	}
	return f.listFn(ctx, filter)
}

func (f fakeDocuments) Search(ctx context.Context, params repository.DocumentSearch) ([]domain.Document, error) {
	if f.searchFn == nil {
		return []domain.Document{}, nil
	}
	return f.searchFn(ctx, params)
}

func (f fakeDocuments) Get(ctx context.Context, id int64) (*domain.Document, error) {
	if f.getFn == nil {
		return nil, service.ErrDocumentNotFound
	}
	return f.getFn(ctx, id)
}

func (f fakeDocuments) Create(ctx context.Context, actor service.Actor, doc domain.Document) (*domain.Document, error) {
	if f.createFn == nil {
		doc.ID = 1
		return &doc, nil
	}
	return f.createFn(ctx, actor, doc)
}

func (f fakeDocuments) Update(ctx context.Context, actor service.Actor, id int64, patch domain.DocumentPatch) (*domain.Document, error) {
	if f.updateFn == nil {
		return nil, service.ErrDocumentNotFound
	}
	return f.updateFn(ctx, actor, id, patch)
}

func (f fakeDocuments) Delete(ctx context.Context, actor service.Actor, id int64) error {
	if f.deleteFn == nil {
		return service.ErrDocumentNotFound
	}
	return f.deleteFn(ctx, actor, id)
}

func (f fakeDocuments) AttachFile(ctx context.Context, actor service.Actor, id int64, file service.FileUpload) (*domain.Document, error) {
	if f.attachFileFn == nil {
		return nil, service.ErrStorageUnavailable
	}
	return f.attachFileFn(ctx, actor, id, file)
}

func (f fakeDocuments) FileURL(ctx context.Context, doc *domain.Document) (string, error) {
	if f.fileURLFn == nil {
		return "", service.ErrStorageUnavailable
	}
	return f.fileURLFn(ctx, doc)
}

type fakeCategories struct {
	listFn   func(ctx context.Context) ([]domain.Category, error)
	getFn    func(ctx context.Context, id int64) (*domain.Category, error)
	createFn func(ctx context.Context, actor service.Actor, category domain.Category) (*domain.Category, error)
}

func (f fakeCategories) List(ctx context.Context) ([]domain.Category, error) {
	if f.listFn == nil {
		return []domain.Category{}, nil
	}
	return f.listFn(ctx)
}

func (f fakeCategories) Get(ctx context.Context, id int64) (*domain.Category, error) {
	if f.getFn == nil {
		return nil, service.ErrCategoryNotFound
	}
	return f.getFn(ctx, id)
}

func (f fakeCategories) Create(ctx context.Context, actor service.Actor, category domain.Category) (*domain.Category, error) {
	if f.createFn == nil {
		category.ID = 1
		return &category, nil
	}
	return f.createFn(ctx, actor, category)
}

type testServer struct {
	router *gin.Engine
	users  *fakeUsers
	audit  *fakeAudit
	hook   *logtest.Hook
	tokens *auth.TokenManager
}

// newTestServer builds a router around opts, filling unset collaborators
// with fakes.
func newTestServer(t *testing.T, opts Options) testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger, hook := logtest.NewNullLogger()
	if opts.Logger == nil {
		opts.Logger = logger
	}

	users, _ := opts.Users.(*fakeUsers)
	if opts.Users == nil {
		users = &fakeUsers{}
		opts.Users = users
	}
	audit, _ := opts.Audit.(*fakeAudit)
	if opts.Audit == nil {
		audit = &fakeAudit{}
		opts.Audit = audit
	}
	if opts.Documents == nil {
		opts.Documents = fakeDocuments{}
	}
	if opts.Categories == nil {
		opts.Categories = fakeCategories{}
	}

	tokens, _ := opts.Tokens.(*auth.TokenManager)
	if opts.Tokens == nil {
		var err error
		tokens, err = auth.NewTokenManager("handler-test-secret", auth.DefaultTokenTTL)
		require.NoError(t, err)
		opts.Tokens = tokens
	}

	router := gin.New()
	NewHandler(opts).RegisterRoutes(router)
	return testServer{router: router, users: users, audit: audit, hook: hook, tokens: tokens}
}

func publishedDoc(id int64) *domain.Document {
	published := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	return &domain.Document{
		ID:           id,
		Title:        "Perda Nomor 1",
		CategoryID:   1,
		DocumentType: domain.DocumentTypeLainnya,
		Status:       domain.DocumentStatusPublished,
		PublishedAt:  &published,
		CreatedAt:    published,
		UpdatedAt:    published,
	}
}
