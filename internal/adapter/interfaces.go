// SPDX-License-Identifier: Apache-2.0

// Package adapter provides transport-layer abstractions for communicating
// with the passway server.
//
// The primary abstraction is [ServerAdapter], which decouples the client
// service layer from the underlying protocol. The package ships an HTTP/REST
// implementation ([NewHTTPServerAdapter]).
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling (e.g. [ErrNotFound] for 404, [ErrPermissionDenied] for 403).
package adapter

import (
	"context"

	"github.com/passway/passway/models"
)

// ServerAdapter defines transport-agnostic communication with the passway
// server. Implementations are responsible for serialisation, session cookie
// management, and mapping transport-level errors to the sentinel values
// defined in this package.
type ServerAdapter interface {
	// PutUser submits a credential record for storage. Reports created=true
	// when the server created a new record (201) and created=false when it
	// replaced an existing one (200). Returns [ErrPermissionDenied] when the
	// server refuses to update another subject's record.
	PutUser(ctx context.Context, user models.User) (created bool, err error)

	// GetUser fetches the public portion of a credential record (sealed
	// envelope, salt, iv) by credential id. Returns [ErrNotFound] for an
	// unknown id.
	GetUser(ctx context.Context, credentialID string) (models.UserKeys, error)

	// GetSession performs the login round-trip: it submits the credential id
	// and the base64 signature and, on success, captures the session cookie
	// issued by the server for replay on later requests. Returns
	// [ErrNotFound] for an unknown credential and [ErrInvalidSignature] when
	// verification fails.
	GetSession(ctx context.Context, credentialID string, signature []byte) error

	// DeleteSession revokes the current session on the server and drops the
	// stored cookie. Returns [ErrPermissionDenied] when the server no longer
	// knows the session.
	DeleteSession(ctx context.Context) error

	// SessionToken returns the value of the session cookie captured by the
	// last successful GetSession, or an empty string when not logged in.
	SessionToken() string

	// UploadContent stores an opaque blob under name for the authenticated
	// subject.
	UploadContent(ctx context.Context, name string, data []byte) error

	// DownloadContent fetches the blob stored under name. Returns
	// [ErrNotFound] for an unknown name.
	DownloadContent(ctx context.Context, name string) ([]byte, error)

	// ListContent lists the authenticated subject's stored blobs.
	ListContent(ctx context.Context) ([]models.ContentItem, error)
}
