// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys,
// HTTP response writing, session token generation and validation,
// and other common operations.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// SubjectIDCtxKey is the key used to store the authenticated subject's
// internal identifier in the context. Populated by the session middleware
// after a successful cookie check.
var SubjectIDCtxKey = contextKey("subjectID")

// SessionIDCtxKey is the key used to store the opaque session identifier in
// the context alongside the subject id.
var SessionIDCtxKey = contextKey("sessionID")

// GetSubjectIDFromContext retrieves the authenticated subject's identifier
// from the context.
//
// Returns the subject ID of type int64 and an ok flag:
//   - ok == true  — value is found and has the correct int64 type
//   - ok == false — value is missing or has an unexpected type
func GetSubjectIDFromContext(ctx context.Context) (int64, bool) {
	subjectID, ok := ctx.Value(SubjectIDCtxKey).(int64)
	return subjectID, ok
}

// GetSessionIDFromContext retrieves the opaque session identifier from the
// context. The ok flag follows the same convention as
// [GetSubjectIDFromContext].
func GetSessionIDFromContext(ctx context.Context) (string, bool) {
	sessionID, ok := ctx.Value(SessionIDCtxKey).(string)
	return sessionID, ok
}
