package service

import (
	"context"
	"encoding/json"

	"github.com/sirupsen/logrus"

	"jdih-api/internal/domain"
	"jdih-api/internal/repository"
)

const defaultAuditListLimit = 100

// Actor identifies who performed a request and from where.
type Actor struct {
	UserID    int64
	IP        string
	UserAgent string
}

// Entry builds an audit entry attributed to the actor.
func (a Actor) Entry(action domain.AuditAction, table string, recordID int64) domain.AuditEntry {
	entry := domain.AuditEntry{
		UserID:    a.UserID,
		Action:    action,
		TableName: table,
		RecordID:  &recordID,
	}
	if a.IP != "" {
		entry.IPAddress = &a.IP
	}
	if a.UserAgent != "" {
		entry.UserAgent = &a.UserAgent
	}
	return entry
}

// AuditService appends to the audit log without ever failing the caller.
type AuditService interface {
	Record(ctx context.Context, entry domain.AuditEntry)
	ListByRecord(ctx context.Context, table string, recordID int64, limit int) ([]domain.AuditEntry, error)
}

type auditService struct {
	logs   repository.AuditRepository
	logger logrus.FieldLogger
}

func NewAuditService(logs repository.AuditRepository, logger logrus.FieldLogger) AuditService {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &auditService{logs: logs, logger: logger}
}

// Record writes entry and waits for the result. Failures are logged only.
func (s *auditService) Record(ctx context.Context, entry domain.AuditEntry) {
	if _, err := s.logs.Log(ctx, &entry); err != nil {
		fields := logrus.Fields{
			"action":  entry.Action,
			"table":   entry.TableName,
			"user_id": entry.UserID,
		}
		if entry.RecordID != nil {
			fields["record_id"] = *entry.RecordID
		}
		s.logger.WithError(err).WithFields(fields).Error("audit log write failed")
	}
}

func (s *auditService) ListByRecord(ctx context.Context, table string, recordID int64, limit int) ([]domain.AuditEntry, error) {
	if limit <= 0 || limit > defaultAuditListLimit {
		limit = defaultAuditListLimit
	}
	return s.logs.ListByRecord(ctx, table, recordID, limit)
}

// snapshot encodes v for the old/new value columns. Encoding failures
// produce an empty value rather than an error.
func snapshot(v any) json.RawMessage {
	if v == nil {
		return nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return raw
}
