package repository

import (
	"context"

	"jdih-api/internal/domain"
)

// AuditRepository appends to and reads the audit log.
type AuditRepository interface {
	Log(ctx context.Context, entry *domain.AuditEntry) (WriteResult, error)
	ListByRecord(ctx context.Context, tableName string, recordID int64, limit int) ([]domain.AuditEntry, error)
}
