package repository

import "errors"

var (
	// ErrNotFound is returned by single-row lookups that match nothing.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a write violates a unique constraint.
	ErrDuplicate = errors.New("record already exists")
)

// WriteResult carries the metadata reported by the database for a write.
// Callers decide what a zero RowsAffected means for them.
type WriteResult struct {
	LastInsertID int64
	RowsAffected int64
}
