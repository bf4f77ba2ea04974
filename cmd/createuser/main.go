// Command createuser adds an account to the JDIH database. Registration is
// not exposed over HTTP, so operators bootstrap admins with this tool.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"jdih-api/internal/auth"
	"jdih-api/internal/config"
	"jdih-api/internal/domain"
	"jdih-api/internal/repository/sqlstore"
	"jdih-api/internal/service"
	"jdih-api/internal/validation"
)

func main() {
	var req validation.RegisterRequest
	var role string
	flag.StringVar(&req.Name, "name", "", "display name")
	flag.StringVar(&req.Email, "email", "", "login email")
	flag.StringVar(&req.Password, "password", os.Getenv("JDIH_CREATEUSER_PASSWORD"), "plaintext password (defaults to $JDIH_CREATEUSER_PASSWORD)")
	flag.StringVar(&role, "role", string(domain.RoleUser), "admin or user")
	flag.Parse()
	req.Role = domain.Role(role)

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if err := validation.Struct(req); err != nil {
		var vErr *validation.Error
		if errors.As(err, &vErr) {
			for _, f := range vErr.Fields {
				fmt.Fprintf(os.Stderr, "%s: %s\n", f.Field, f.Message)
			}
			os.Exit(2)
		}
		logger.Fatalf("validate input: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	user, err := createUser(ctx, cfg, req, logger)
	if err != nil {
		if errors.Is(err, service.ErrUserAlreadyExists) {
			logger.Fatalf("user %s already exists", req.Email)
		}
		logger.Fatalf("create user: %v", err)
	}
	logger.WithFields(logrus.Fields{
		"id":    user.ID,
		"email": user.Email,
		"role":  user.Role,
	}).Info("user created")
}

func createUser(ctx context.Context, cfg config.Config, req validation.RegisterRequest, logger *logrus.Logger) (*domain.User, error) {
	db, err := sqlstore.Open(ctx, sqlstore.Options{
		Driver:       cfg.Database.Driver,
		Path:         cfg.Database.Path,
		Host:         cfg.Database.Host,
		Port:         cfg.Database.Port,
		User:         cfg.Database.User,
		Password:     cfg.Database.Password,
		Name:         cfg.Database.Name,
		MaxOpenConns: 1,
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if err := sqlstore.Migrate(ctx, db, cfg.Database.Driver, logger); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	users := service.NewUserService(
		sqlstore.NewUserRepository(sqlstore.NewExecutor(db, logger)),
		auth.NewPasswordHasher(cfg.Auth.BcryptCost),
		nil,
	)
	return users.Create(ctx, service.CreateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
}
