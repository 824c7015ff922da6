package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/passway/passway/internal/logger"
	"github.com/passway/passway/migrations"
)

// Transient failures (connection loss, deadlock rollback) get a few
// constant-interval attempts before the error reaches the caller.
const (
	dbRetryAttempts = 3
	dbRetryInterval = 200 * time.Millisecond
)

type DB struct {
	*sql.DB
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB)
}

// ExecRetryContext is ExecContext with retries for failures the classifier
// marks [Retryable]. Non-retryable errors and context cancellation are
// surfaced immediately.
func (db *DB) ExecRetryContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	var result sql.Result

	err := retry.Do(ctx, db.retryBackoff(), func(ctx context.Context) error {
		var execErr error
		result, execErr = db.ExecContext(ctx, query, args...)
		if execErr == nil {
			return nil
		}

		if db.errorClassificator.Classify(execErr) == Retryable {
			db.logger.Warn().Err(execErr).Msg("transient database error, retrying")
			return retry.RetryableError(execErr)
		}

		return execErr
	})

	return result, err
}

// QueryRowRetryContext is QueryRowContext with the same retry policy. The
// error of the last attempt stays on the returned row, so callers check
// row.Err() and Scan exactly as with the plain method.
func (db *DB) QueryRowRetryContext(ctx context.Context, query string, args ...any) *sql.Row {
	var row *sql.Row

	_ = retry.Do(ctx, db.retryBackoff(), func(ctx context.Context) error {
		row = db.QueryRowContext(ctx, query, args...)

		if err := row.Err(); err != nil && db.errorClassificator.Classify(err) == Retryable {
			db.logger.Warn().Err(err).Msg("transient database error, retrying")
			return retry.RetryableError(err)
		}

		return nil
	})

	return row
}

func (db *DB) retryBackoff() retry.Backoff {
	return retry.WithMaxRetries(dbRetryAttempts, retry.NewConstant(dbRetryInterval))
}
