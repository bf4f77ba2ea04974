package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"jdih-api/internal/domain"
	"jdih-api/internal/repository"
)

type AuditRepository struct {
	exec *Executor
}

func NewAuditRepository(exec *Executor) repository.AuditRepository {
	return &AuditRepository{exec: exec}
}

func (r *AuditRepository) Log(ctx context.Context, entry *domain.AuditEntry) (repository.WriteResult, error) {
	entry.CreatedAt = time.Now().UTC()
	res, err := r.exec.Exec(ctx, `
INSERT INTO audit_logs (user_id, action, table_name, record_id, old_values, new_values, ip_address, user_agent, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.UserID,
		string(entry.Action),
		entry.TableName,
		entry.RecordID,
		rawJSON(entry.OldValues),
		rawJSON(entry.NewValues),
		entry.IPAddress,
		entry.UserAgent,
		entry.CreatedAt,
	)
	if err != nil {
		return repository.WriteResult{}, fmt.Errorf("insert audit log: %w", err)
	}
	entry.ID = res.LastInsertID
	return res, nil
}

func (r *AuditRepository) ListByRecord(ctx context.Context, tableName string, recordID int64, limit int) ([]domain.AuditEntry, error) {
	rows, err := r.exec.Query(ctx, `
SELECT id, user_id, action, table_name, record_id, old_values, new_values, ip_address, user_agent, created_at
FROM audit_logs
WHERE table_name = ? AND record_id = ?
ORDER BY id DESC
LIMIT ?`,
		tableName,
		recordID,
		limitOrDefault(limit, defaultListLimit),
	)
	if err != nil {
		return nil, fmt.Errorf("query audit logs: %w", err)
	}
	defer rows.Close()

	entries := []domain.AuditEntry{}
	for rows.Next() {
		var (
			entry     domain.AuditEntry
			action    string
			record    sql.NullInt64
			oldValues sql.NullString
			newValues sql.NullString
			ip        sql.NullString
			agent     sql.NullString
		)
		if err := rows.Scan(&entry.ID, &entry.UserID, &action, &entry.TableName, &record, &oldValues, &newValues, &ip, &agent, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit log: %w", err)
		}
		entry.Action = domain.AuditAction(action)
		entry.RecordID = nullInt64(record)
		if oldValues.Valid {
			entry.OldValues = json.RawMessage(oldValues.String)
		}
		if newValues.Valid {
			entry.NewValues = json.RawMessage(newValues.String)
		}
		entry.IPAddress = nullString(ip)
		entry.UserAgent = nullString(agent)
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func rawJSON(v json.RawMessage) any {
	if len(v) == 0 {
		return nil
	}
	return string(v)
}
