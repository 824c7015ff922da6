package passkey

import "errors"

// Sentinel errors returned by [Authenticator] implementations. Callers
// should match with [errors.Is].
var (
	// ErrCreationRefused is returned by Create when the authenticator
	// declines to mint a credential (user cancelled the prompt, device not
	// supported, duplicate registration). Authenticator interaction is
	// user-driven, so callers report this verbatim and never retry.
	ErrCreationRefused = errors.New("authenticator refused credential creation")

	// ErrNoCredential is returned by Get when no passkey exists for the
	// requested relying party.
	ErrNoCredential = errors.New("no credential for relying party")
)
