package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/sirupsen/logrus"

	"jdih-api/internal/repository"
)

// Executor runs parameterized statements against the pool. Connections are
// checked out per call and always handed back, including on error.
type Executor struct {
	db     *sql.DB
	logger logrus.FieldLogger
}

func NewExecutor(db *sql.DB, logger logrus.FieldLogger) *Executor {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Executor{db: db, logger: logger}
}

// DB exposes the underlying pool, mostly for migrations and shutdown.
func (e *Executor) DB() *sql.DB {
	return e.db
}

func (e *Executor) Query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	rows, err := e.db.QueryContext(ctx, query, args...)
	if err != nil {
		e.logFailure(query, err)
		return nil, err
	}
	return rows, nil
}

func (e *Executor) QueryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return e.db.QueryRowContext(ctx, query, args...)
}

// Exec runs a write and reports the affected-row metadata as-is.
func (e *Executor) Exec(ctx context.Context, query string, args ...any) (repository.WriteResult, error) {
	res, err := e.db.ExecContext(ctx, query, args...)
	if err != nil {
		e.logFailure(query, err)
		if isUniqueViolation(err) {
			return repository.WriteResult{}, fmt.Errorf("%w: %v", repository.ErrDuplicate, err)
		}
		return repository.WriteResult{}, err
	}

	var out repository.WriteResult
	if out.LastInsertID, err = res.LastInsertId(); err != nil {
		return repository.WriteResult{}, fmt.Errorf("last insert id: %w", err)
	}
	if out.RowsAffected, err = res.RowsAffected(); err != nil {
		return repository.WriteResult{}, fmt.Errorf("rows affected: %w", err)
	}
	return out, nil
}

func (e *Executor) logFailure(query string, err error) {
	e.logger.WithError(err).WithField("query", compactQuery(query)).Error("query execution failed")
}

func compactQuery(query string) string {
	return strings.Join(strings.Fields(query), " ")
}

func isUniqueViolation(err error) bool {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == 1062
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint")
}

type rowScanner interface {
	Scan(dest ...any) error
}
