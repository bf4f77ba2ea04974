package http

import (
	"context"
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"jdih-api/internal/auth"
	"jdih-api/internal/domain"
	"jdih-api/internal/service"
	"jdih-api/internal/validation"
)

// TokenIssuer mints session tokens at login.
type TokenIssuer interface {
	Issue(user *domain.User) (string, *auth.Claims, error)
	TTL() time.Duration
}

type Options struct {
	Users      service.UserService
	Documents  service.DocumentService
	Categories service.CategoryService
	Audit      service.AuditService
	Tokens     TokenIssuer
	Logger     logrus.FieldLogger

	// SecureCookies marks the session cookie Secure. Enabled in production.
	SecureCookies bool
	AllowOrigins  []string
	MaxUploadSize int64
	// Health reports readiness of backing services. Optional.
	Health func(ctx context.Context) error
}

// Handler wires HTTP routes to domain services.
type Handler struct {
	users      service.UserService
	documents  service.DocumentService
	categories service.CategoryService
	audit      service.AuditService
	tokens     TokenIssuer
	logger     logrus.FieldLogger

	secureCookies bool
	allowOrigins  []string
	maxUploadSize int64
	health        func(ctx context.Context) error
}

func NewHandler(opts Options) *Handler {
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}
	if opts.MaxUploadSize <= 0 {
		opts.MaxUploadSize = validation.DefaultMaxUploadSize
	}
	return &Handler{
		users:         opts.Users,
		documents:     opts.Documents,
		categories:    opts.Categories,
		audit:         opts.Audit,
		tokens:        opts.Tokens,
		logger:        opts.Logger,
		secureCookies: opts.SecureCookies,
		allowOrigins:  opts.AllowOrigins,
		maxUploadSize: opts.MaxUploadSize,
		health:        opts.Health,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(h.requestLogger(), corsMiddleware(h.allowOrigins))

	api := router.Group("/api")
	{
		api.GET("/health", h.healthCheck)

		authRoutes := api.Group("/auth")
		authRoutes.POST("/login", h.login)
		authRoutes.POST("/logout", h.logout)
		authRoutes.GET("/me", h.identify, h.requireAuth, h.me)

		documents := api.Group("/documents", h.identify)
		documents.GET("", h.listDocuments)
		documents.GET("/search", h.searchDocuments)
		documents.GET("/:id", h.getDocument)
		documents.GET("/:id/file", h.downloadDocumentFile)

		adminDocuments := documents.Group("", h.requireAuth, h.requireAdmin)
		adminDocuments.POST("", h.createDocument)
		adminDocuments.PUT("/:id", h.updateDocument)
		adminDocuments.DELETE("/:id", h.deleteDocument)
		adminDocuments.POST("/:id/file", h.uploadDocumentFile)

		categories := api.Group("/categories", h.identify)
		categories.GET("", h.listCategories)
		categories.GET("/:id", h.getCategory)
		categories.POST("", h.requireAuth, h.requireAdmin, h.createCategory)

		api.GET("/audit-logs", h.identify, h.requireAuth, h.requireAdmin, h.listAuditLogs)
	}
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{"Content-Disposition"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}
	return cors.New(cfg)
}

func (h *Handler) healthCheck(c *gin.Context) {
	if h.health != nil {
		if err := h.health(c.Request.Context()); err != nil {
			h.logger.WithError(err).Warn("health check failed")
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
