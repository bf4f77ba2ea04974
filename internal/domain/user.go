package domain

import "time"

// Role is the access level granted to a user.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// User represents an account that can sign in to the repository.
// PasswordHash is only populated on lookups used for credential checks.
type User struct {
	ID           int64
	Name         string
	Email        string
	Role         Role
	PasswordHash string
	CreatedAt    time.Time
}

// IsAdmin reports whether the user may manage documents.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// Public returns a copy of the user without credential material.
func (u *User) Public() *User {
	if u == nil {
		return nil
	}
	return &User{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
