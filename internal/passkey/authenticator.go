// Package passkey models the platform authenticator as a capability
// interface. The envelope protocol never talks to real WebAuthn plumbing
// directly: it only needs something that can mint a credential bound to a
// user handle and later prove presence of that credential. Real,
// hardware-backed, and software authenticators are interchangeable behind
// [Authenticator].
package passkey

import (
	"context"

	"github.com/passway/passway/models"
)

// CreateRequest asks the authenticator to mint a new passkey.
type CreateRequest struct {
	// RelyingParty is the application name the credential is scoped to.
	RelyingParty string

	// UserName is the account name shown in the platform's credential UI.
	UserName string

	// UserDisplayName is the human-readable name shown alongside UserName.
	UserDisplayName string

	// Challenge is a fresh random value of at least 32 bytes.
	Challenge []byte

	// UserHandle is the locally generated handle (at least 32 bytes) the
	// caller proposes to bind to the credential. The authenticator may
	// substitute its own; the handle echoed on assertions is authoritative.
	UserHandle []byte
}

// GetRequest asks the authenticator for an assertion from an existing
// passkey.
type GetRequest struct {
	// RelyingParty is the application name the wanted credential is scoped to.
	RelyingParty string

	// Challenge is a fresh random value the authenticator signs over.
	Challenge []byte
}

// Authenticator is the dynamic-dispatch boundary to the platform
// authenticator. Both operations are user-paced: they may block until the
// person approves or cancels the platform prompt, so callers bound them
// with a context deadline (60 seconds is the recommended prompt timeout).
//
// The two methods return the two arms of the authenticator result union:
// Create yields an attestation, Get yields an assertion; failures surface
// as errors matching the package sentinels.
type Authenticator interface {
	// Create mints a new passkey for the relying party and returns its
	// attestation. Returns [ErrCreationRefused] (possibly wrapped) when the
	// authenticator rejects the registration: user cancellation,
	// unsupported device, or a duplicate registration.
	Create(ctx context.Context, req CreateRequest) (*models.Attestation, error)

	// Get produces a login-type assertion over the supplied challenge.
	// Returns [ErrNoCredential] when the authenticator holds no passkey for
	// the relying party.
	Get(ctx context.Context, req GetRequest) (*models.Assertion, error)
}
