package domain

import "time"

// Category groups documents by legal subject.
type Category struct {
	ID          int64
	Name        string
	Description *string
	CreatedAt   time.Time
}
