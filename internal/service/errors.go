package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrInvalidSignature is returned when a login signature does not verify
	// against the stored public key. A stored key that cannot be parsed maps
	// here too, so callers cannot distinguish corrupt storage from forgery.
	ErrInvalidSignature = errors.New("invalid signature")

	// ErrPermissionDenied is returned when a credential update is attempted
	// by a session authenticated as a different subject.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrNoUserHandle is returned when an assertion lacks the user handle
	// required for wrap-key derivation.
	ErrNoUserHandle = errors.New("assertion carries no user handle")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
)

// Orchestration-boundary errors. Lower-level crypto, authenticator, and
// transport causes are wrapped into these two before reaching the external
// caller; the original cause stays in the chain for logs.
var (
	ErrRegistration = errors.New("registration failed")
	ErrLogin        = errors.New("login failed")
)
