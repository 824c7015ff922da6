package service

import (
	"context"

	"github.com/passway/passway/models"
)

// ClientSession is the explicit identity state of one login. It is created
// by ClientAuthService.Login, owned by the caller, and passed into every
// session-bound operation; nothing in the client layer caches a "current"
// identity behind the caller's back.
type ClientSession struct {
	// CredentialID is the credential that produced this session.
	CredentialID string

	// Envelope is the unsealed key bundle recovered during login. Its
	// content key encrypts content blobs; its private key never leaves the
	// process.
	Envelope models.EnvelopePlain
}

// ClientAuthService is the client half of the registration and
// challenge-response protocols.
type ClientAuthService interface {
	// Register creates a fresh passkey, generates and seals a new key
	// envelope, and submits the credential record to the server. Any
	// failure is reported as ErrRegistration with the cause in the chain;
	// partially created authenticator credentials are left behind, since a
	// credential without a stored envelope is inert.
	Register(ctx context.Context, userName, userDisplayName string) error

	// Login obtains a fresh assertion, fetches and unseals the stored
	// envelope, signs the fixed message, and exchanges the signature for a
	// server session. Any failure is reported as ErrLogin with the cause in
	// the chain.
	Login(ctx context.Context) (*ClientSession, error)

	// Logout revokes the current server session. A session the server no
	// longer knows is treated as already logged out, not as a failure.
	Logout(ctx context.Context) error
}

// ClientContentService stores and retrieves content blobs, sealing them with
// the session's content key before they leave the client.
type ClientContentService interface {
	Upload(ctx context.Context, session *ClientSession, name string, plaintext []byte) error
	Download(ctx context.Context, session *ClientSession, name string) ([]byte, error)
	List(ctx context.Context) ([]models.ContentItem, error)
}
