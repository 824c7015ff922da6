package adapter

import "errors"

// Transport-agnostic sentinel errors produced by mapHTTPError. The adapter
// deliberately keeps its own error set instead of importing server-side
// sentinels; client services translate these into their coarse outcomes.
var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrPermissionDenied    = errors.New("permission denied")
	ErrNotFound            = errors.New("resource not found")
	ErrInternalServerError = errors.New("internal server error")

	// ErrInvalidSignature is reported by GetSession when the server rejects
	// the login signature.
	ErrInvalidSignature = errors.New("signature rejected by server")

	// ErrNoSession is reported by session-bound calls made before a
	// successful login.
	ErrNoSession = errors.New("no active session")
)
