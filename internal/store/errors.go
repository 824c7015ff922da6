package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrCredentialAlreadyExists is returned when an INSERT into the users
	// table fails because a record with the same credential id already
	// exists. The service layer treats this as the update path of an upsert.
	ErrCredentialAlreadyExists = errors.New("credential id already exists")

	// ErrCredentialNotFound is returned when no credential record matches
	// the requested credential id.
	ErrCredentialNotFound = errors.New("credential not found")

	// ErrSessionNotFound is returned when a lookup or delete targets a
	// session id with no corresponding row, including sessions already
	// removed by logout.
	ErrSessionNotFound = errors.New("session not found")

	// ErrContentNotFound is returned when a content blob with the requested
	// name does not exist for the subject.
	ErrContentNotFound = errors.New("content not found")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a query against the
	// database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrScanningRow is returned when scanning column values from a result
	// row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan result row")
)
