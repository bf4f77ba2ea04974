package service

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jdih-api/internal/domain"
)

func TestAuditService_Record(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	repo := &fakeAuditRepo{}
	svc := NewAuditService(repo, logger)

	actor := Actor{UserID: 3, IP: "10.0.0.9", UserAgent: "Mozilla/5.0"}
	svc.Record(context.Background(), actor.Entry(domain.AuditActionLogin, "users", 3))

	entries := repo.recorded()
	require.Len(t, entries, 1)
	assert.Equal(t, domain.AuditActionLogin, entries[0].Action)
	assert.Equal(t, "users", entries[0].TableName)
	assert.Equal(t, int64(3), *entries[0].RecordID)
	assert.Equal(t, "10.0.0.9", *entries[0].IPAddress)
	assert.Equal(t, "Mozilla/5.0", *entries[0].UserAgent)
	assert.Empty(t, hook.AllEntries())
}

func TestAuditService_RecordFailureIsLoggedOnly(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	svc := NewAuditService(&fakeAuditRepo{err: errDatabaseDown}, logger)

	assert.NotPanics(t, func() {
		svc.Record(context.Background(), Actor{UserID: 5}.Entry(domain.AuditActionLogout, "users", 5))
	})

	require.Len(t, hook.AllEntries(), 1)
	last := hook.LastEntry()
	assert.Equal(t, logrus.ErrorLevel, last.Level)
	assert.Equal(t, domain.AuditActionLogout, last.Data["action"])
	assert.Equal(t, int64(5), last.Data["record_id"])
	assert.ErrorIs(t, last.Data[logrus.ErrorKey].(error), errDatabaseDown)
}

func TestAuditService_ListByRecordCapsLimit(t *testing.T) {
	repo := &fakeAuditRepo{}
	svc := NewAuditService(repo, nil)

	svc.Record(context.Background(), Actor{UserID: 1}.Entry(domain.AuditActionUpdate, "documents", 8))
	svc.Record(context.Background(), Actor{UserID: 1}.Entry(domain.AuditActionUpdate, "documents", 9))

	entries, err := svc.ListByRecord(context.Background(), "documents", 8, 0)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, defaultAuditListLimit, repo.limit)

	_, err = svc.ListByRecord(context.Background(), "documents", 8, 10)
	require.NoError(t, err)
	assert.Equal(t, 10, repo.limit)
}

func TestActorEntryOmitsEmptyFields(t *testing.T) {
	entry := Actor{UserID: 2}.Entry(domain.AuditActionDelete, "documents", 4)
	assert.Nil(t, entry.IPAddress)
	assert.Nil(t, entry.UserAgent)
	assert.Equal(t, int64(4), *entry.RecordID)
}
