package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"jdih-api/internal/auth"
	"jdih-api/internal/domain"
	"jdih-api/internal/repository"
)

var (
	// ErrInvalidCredentials indicates that provided login credentials are incorrect.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserNotFound is returned when a token refers to a user that no longer exists.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserAlreadyExists is returned when attempting to create a user with an existing email.
	ErrUserAlreadyExists = errors.New("user already exists")
)

// PasswordHasher hashes and checks user passwords.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}

// TokenVerifier decodes session tokens.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
}

// UserService describes user lifecycle operations.
type UserService interface {
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
	ResolveToken(ctx context.Context, token string) (*domain.User, error)
	Create(ctx context.Context, input CreateUserInput) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type userService struct {
	users  repository.UserRepository
	hasher PasswordHasher
	tokens TokenVerifier

	dummyOnce sync.Once
	dummyHash string
}

func NewUserService(users repository.UserRepository, hasher PasswordHasher, tokens TokenVerifier) UserService {
	return &userService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
	}
}

// Authenticate looks the user up by email exactly as stored. Unknown emails
// and wrong passwords both yield ErrInvalidCredentials.
func (s *userService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// keep the response time close to a real mismatch
			s.hasher.Verify(password, s.fallbackHash())
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return user.Public(), nil
}

// ResolveToken verifies token and loads the current user record it names.
func (s *userService) ResolveToken(ctx context.Context, token string) (*domain.User, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user.Public(), nil
}

func (s *userService) Create(ctx context.Context, input CreateUserInput) (*domain.User, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)
	if input.Role == "" {
		input.Role = domain.RoleUser
	}
	if !input.Role.Valid() {
		return nil, fmt.Errorf("unknown role %q", input.Role)
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		Role:         input.Role,
		PasswordHash: hash,
	}
	if _, err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserAlreadyExists
		}
		return nil, err
	}
	return user.Public(), nil
}

func (s *userService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user.Public(), nil
}

func (s *userService) fallbackHash() string {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = s.hasher.Hash("jdih-unknown-user")
	})
	return s.dummyHash
}
