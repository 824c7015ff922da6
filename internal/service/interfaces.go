package service

import (
	"context"

	"github.com/passway/passway/models"
)

// CredentialService manages server-side credential records: the sealed
// envelopes clients store at registration and re-fetch at login.
type CredentialService interface {
	// UpsertUser creates or replaces the credential record for user.ID.
	// callerSubject is the subject id of the caller's authenticated session,
	// or zero when the request carries no session. Reports created=true on
	// the create path and created=false on the update path.
	UpsertUser(ctx context.Context, user models.User, callerSubject int64) (saved models.User, created bool, err error)

	// GetUser returns the credential record for the given credential id.
	GetUser(ctx context.Context, credentialID string) (models.User, error)
}

// SessionService owns the server half of the challenge-response protocol and
// the session lifecycle built on top of it.
type SessionService interface {
	// Login verifies signature over the deployment's fixed message against
	// the public key stored for credentialID and, on success, persists an
	// authenticated session and mints its token.
	Login(ctx context.Context, credentialID string, signature []byte) (models.Session, models.Token, error)

	// Authenticate validates a session token and confirms the referenced
	// session row still exists. A deleted row fails authentication even if
	// the token itself is still valid.
	Authenticate(ctx context.Context, tokenString string) (models.Session, error)

	// Logout revokes the session referenced by the token. Revoking an
	// unknown session reports store.ErrSessionNotFound.
	Logout(ctx context.Context, tokenString string) error
}

// ContentService stores and serves per-subject opaque content blobs.
type ContentService interface {
	Upload(ctx context.Context, userID int64, name string, data []byte) error
	Download(ctx context.Context, userID int64, name string) ([]byte, error)
	List(ctx context.Context, userID int64) ([]models.ContentItem, error)
}
