package store

import (
	"context"
	"time"

	"github.com/passway/passway/models"
)

// UserRepository persists credential records: one sealed envelope plus the
// verification public key per credential id.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByCredentialID(ctx context.Context, credentialID string) (models.User, error)
	UpdateUserKeys(ctx context.Context, user models.User) (models.User, error)
}

// SessionRepository persists authenticated-session rows. The presence of a
// row is the source of truth for session validity; deleting it revokes the
// session regardless of any outstanding token.
type SessionRepository interface {
	CreateSession(ctx context.Context, session models.Session) (models.Session, error)
	GetSession(ctx context.Context, sessionID string) (models.Session, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// DeleteExpiredSessions removes sessions created before olderThan and
	// reports how many rows were removed. Used by the background purge
	// worker; token validation rejects expired tokens on its own, this only
	// keeps the table from growing without bound.
	DeleteExpiredSessions(ctx context.Context, olderThan time.Time) (int64, error)
}

// ContentStorage persists opaque client-encrypted blobs per subject. The
// server never inspects payloads; it only tracks names and sizes.
type ContentStorage interface {
	SaveContent(ctx context.Context, userID int64, name string, data []byte) error
	LoadContent(ctx context.Context, userID int64, name string) ([]byte, error)
	ListContent(ctx context.Context, userID int64) ([]models.ContentItem, error)
}

// ErrorClassificator decides whether a failed database operation is worth
// retrying.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
