package domain

import (
	"encoding/json"
	"time"
)

// AuditAction names a security relevant event.
type AuditAction string

const (
	AuditActionLogin  AuditAction = "LOGIN"
	AuditActionLogout AuditAction = "LOGOUT"
	AuditActionCreate AuditAction = "CREATE"
	AuditActionUpdate AuditAction = "UPDATE"
	AuditActionDelete AuditAction = "DELETE"
	AuditActionUpload AuditAction = "UPLOAD"
)

// AuditEntry is an append-only record of an action taken by a user.
type AuditEntry struct {
	ID        int64
	UserID    int64
	Action    AuditAction
	TableName string
	RecordID  *int64
	OldValues json.RawMessage
	NewValues json.RawMessage
	IPAddress *string
	UserAgent *string
	CreatedAt time.Time
}
