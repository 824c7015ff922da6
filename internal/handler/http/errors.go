// SPDX-License-Identifier: Apache-2.0

package http

import "errors"

// Sentinel errors used by the session middleware and the login handler when
// inspecting request credentials. Callers can match against them with
// [errors.Is].
var (
	// ErrNoSessionCookie is returned by the session middleware when the
	// incoming request carries no session cookie at all.
	ErrNoSessionCookie = errors.New("no session cookie")

	// ErrEmptyCredentialIDHeader is returned when the credential id header
	// is absent or empty on a route that requires it.
	ErrEmptyCredentialIDHeader = errors.New("empty `x-passway-id` header")

	// ErrEmptySignatureHeader is returned by the login handler when the
	// signature header is absent or empty.
	ErrEmptySignatureHeader = errors.New("empty `x-passway-signature` header")

	// ErrBadSignatureEncoding is returned when the signature header is
	// present but is not valid base64.
	ErrBadSignatureEncoding = errors.New("signature header is not valid base64")
)
