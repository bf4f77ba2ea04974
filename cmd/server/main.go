package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"jdih-api/internal/auth"
	"jdih-api/internal/config"
	apphttp "jdih-api/internal/http"
	"jdih-api/internal/repository/sqlstore"
	"jdih-api/internal/service"
	"jdih-api/internal/storage"
	"jdih-api/internal/telemetry"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}
	configureLogger(logger, cfg)

	if err := cfg.Validate(); err != nil {
		logger.Fatalf("invalid config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, telemetry.Options{
		ServiceName: cfg.Telemetry.ServiceName,
		Environment: cfg.App.Env,
		Endpoint:    cfg.Telemetry.Endpoint,
		Insecure:    cfg.Telemetry.Insecure,
	}, logger)
	if err != nil {
		logger.Warnf("setup tracing: %v", err)
	}

	db, err := sqlstore.Open(ctx, sqlstore.Options{
		Driver:       cfg.Database.Driver,
		Path:         cfg.Database.Path,
		Host:         cfg.Database.Host,
		Port:         cfg.Database.Port,
		User:         cfg.Database.User,
		Password:     cfg.Database.Password,
		Name:         cfg.Database.Name,
		MaxOpenConns: cfg.Database.MaxOpenConns,
	})
	if err != nil {
		logger.Fatalf("open database: %v", err)
	}
	defer db.Close()

	if err := sqlstore.Migrate(ctx, db, cfg.Database.Driver, logger); err != nil {
		logger.Fatalf("migrate database: %v", err)
	}

	exec := sqlstore.NewExecutor(db, logger)
	userRepo := sqlstore.NewUserRepository(exec)
	documentRepo := sqlstore.NewDocumentRepository(exec)
	categoryRepo := sqlstore.NewCategoryRepository(exec)
	auditRepo := sqlstore.NewAuditRepository(exec)

	tokens, err := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		logger.Fatalf("setup tokens: %v", err)
	}

	storageSvc, err := buildStorage(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("setup storage: %v", err)
	}

	auditService := service.NewAuditService(auditRepo, logger)
	userService := service.NewUserService(userRepo, auth.NewPasswordHasher(cfg.Auth.BcryptCost), tokens)
	documentService := service.NewDocumentService(documentRepo, categoryRepo, auditService, service.DocumentServiceConfig{
		Storage:    storageSvc,
		KeyPrefix:  cfg.Storage.KeyPrefix,
		PresignTTL: cfg.Storage.PresignTTL,
		Logger:     logger,
	})
	categoryService := service.NewCategoryService(categoryRepo, auditService)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	handler := apphttp.NewHandler(apphttp.Options{
		Users:         userService,
		Documents:     documentService,
		Categories:    categoryService,
		Audit:         auditService,
		Tokens:        tokens,
		Logger:        logger,
		SecureCookies: cfg.IsProduction(),
		AllowOrigins:  cfg.CORS.AllowOrigins,
		MaxUploadSize: cfg.Upload.MaxSize,
		Health:        db.PingContext,
	})
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           otelhttp.NewHandler(router, cfg.Telemetry.ServiceName),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Infof("listening on %s (%s)", cfg.Server.Addr, cfg.App.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("http shutdown: %v", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Warnf("tracing shutdown: %v", err)
	}

	logger.Info("bye")
}

func configureLogger(logger *logrus.Logger, cfg config.Config) {
	if cfg.Log.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		logger.Warnf("unknown log level %q, using info", cfg.Log.Level)
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
}

// buildStorage returns a nil Service when no bucket is configured. File
// endpoints then answer 503.
func buildStorage(ctx context.Context, cfg config.Config, logger *logrus.Logger) (storage.Service, error) {
	if cfg.Storage.Bucket == "" {
		logger.Warn("no storage bucket configured, document files are disabled")
		return nil, nil
	}

	loadOpts := []func(*awscfg.LoadOptions) error{
		awscfg.WithRegion(cfg.Storage.Region),
	}
	if cfg.AWS.Profile != "" {
		loadOpts = append(loadOpts, awscfg.WithSharedConfigProfile(cfg.AWS.Profile))
	}

	awsCfg, err := awscfg.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Storage.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Storage.Endpoint)
			o.UsePathStyle = true
		}
	})
	svc, err := storage.NewS3Service(client, cfg.Storage.Bucket)
	if err != nil {
		return nil, err
	}
	logger.Infof("using s3 bucket %s (region %s)", cfg.Storage.Bucket, cfg.Storage.Region)
	return svc, nil
}
