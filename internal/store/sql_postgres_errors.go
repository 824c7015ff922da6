package store

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrorClassification says whether a failed database operation is worth
// another attempt. [DB.ExecRetryContext] and [DB.QueryRowRetryContext]
// consult it before retrying.
type ErrorClassification int

const (
	// NonRetryable marks failures that will not go away on their own:
	// constraint violations, data exceptions, bad SQL, and any code the
	// classifier does not recognise.
	NonRetryable ErrorClassification = iota

	// Retryable marks transient failures such as a dropped connection or a
	// deadlock rollback.
	Retryable
)

// PostgresErrorClassifier maps pgx driver errors to an
// [ErrorClassification] by their PostgreSQL error code.
type PostgresErrorClassifier struct{}

func NewPostgresErrorClassifier() *PostgresErrorClassifier {
	return &PostgresErrorClassifier{}
}

// Classify implements [ErrorClassificator]. Anything that is not a
// *pgconn.PgError, including nil, is [NonRetryable]: only the driver can
// tell us a failure was transient.
func (c *PostgresErrorClassifier) Classify(err error) ErrorClassification {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return ClassifyPgError(pgErr)
	}

	return NonRetryable
}

// ClassifyPgError classifies by PostgreSQL error code
// (https://www.postgresql.org/docs/current/errcodes-appendix.html).
// Connection exceptions (class 08), transaction rollbacks including
// serialization failures and deadlocks (class 40), and "cannot connect now"
// (57P03) are [Retryable]; every other code is [NonRetryable].
func ClassifyPgError(pgErr *pgconn.PgError) ErrorClassification {
	switch pgErr.Code {
	case pgerrcode.ConnectionException,
		pgerrcode.ConnectionDoesNotExist,
		pgerrcode.ConnectionFailure,
		pgerrcode.TransactionRollback,
		pgerrcode.SerializationFailure,
		pgerrcode.DeadlockDetected,
		pgerrcode.CannotConnectNow:
		return Retryable
	}

	return NonRetryable
}
