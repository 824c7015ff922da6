// SPDX-License-Identifier: Apache-2.0

// Package app contains shared application-layer constants used across the
// passway server handlers and middleware.
//
// All Msg* constants are human-readable message strings that are written into
// HTTP response bodies or log entries to describe the outcome of an operation.
// Keeping them in one place ensures consistent wording throughout the API.
package app

const (
	// MsgInvalidJSON is returned when the request body cannot be decoded.
	MsgInvalidJSON = "Invalid JSON was passed"

	// MsgInvalidDataProvided is returned when a request fails basic
	// validation (e.g. missing required envelope fields).
	MsgInvalidDataProvided = "invalid data provided"

	// MsgInvalidSignature is returned when a login signature does not verify
	// against the stored public key. A malformed signature header produces
	// the same message; the distinction is never leaked.
	MsgInvalidSignature = "Invalid signature"

	// MsgPermissionDenied is returned when a request lacks a valid session,
	// or holds a session for a different subject than the one it targets.
	MsgPermissionDenied = "Permission denied"

	// MsgCredentialNotFoundFmt is the format for the 404 body on an unknown
	// credential id. The id is included so clients can tell which of their
	// stored credentials is stale.
	MsgCredentialNotFoundFmt = "credential %q not found"

	// MsgContentNotFound is returned when a download targets a blob name the
	// subject has never stored.
	MsgContentNotFound = "content not found"

	// MsgCreated confirms that a credential record was created.
	MsgCreated = "created"

	// MsgUpdated confirms that an existing credential record was replaced.
	MsgUpdated = "updated"

	// MsgSessionIssued confirms a successful login; the session itself
	// travels in the cookie.
	MsgSessionIssued = "session issued"

	// MsgLoggedOut confirms that the session was revoked.
	MsgLoggedOut = "logged out"

	// MsgStored confirms a content blob upload.
	MsgStored = "stored"
)
