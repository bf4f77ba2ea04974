package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost keeps a single verification in the tens of milliseconds.
const DefaultBcryptCost = 12

// PasswordHasher hashes and verifies passwords with bcrypt. A fresh salt is
// drawn for every hash, so hashing the same password twice never yields the
// same output.
type PasswordHasher struct {
	Cost int
}

func NewPasswordHasher(cost int) PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	return PasswordHasher{Cost: cost}
}

func (h PasswordHasher) Hash(plaintext string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = DefaultBcryptCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Verify reports whether plaintext matches hash. Malformed hashes never match.
func (h PasswordHasher) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

// HashPassword hashes with DefaultBcryptCost.
func HashPassword(plaintext string) (string, error) {
	return PasswordHasher{Cost: DefaultBcryptCost}.Hash(plaintext)
}

func VerifyPassword(plaintext, hash string) bool {
	return PasswordHasher{}.Verify(plaintext, hash)
}
