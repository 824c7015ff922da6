package models

import "time"

// Session is a server-held authenticated-state record, keyed by an opaque
// session identifier. A row exists only after a successful challenge-response
// verification and disappears on logout; its presence is the source of truth
// for "is this session still valid", independent of any token expiry.
type Session struct {
	// SessionID is the opaque identifier of the session (UUID).
	SessionID string `json:"session_id"`

	// UserID is the internal identifier of the authenticated subject.
	UserID int64 `json:"user_id"`

	// Authenticated reports whether the challenge-response verification
	// succeeded for this session. Always true for persisted rows.
	Authenticated bool `json:"authenticated"`

	// CreatedAt is the timestamp when the session was issued.
	CreatedAt time.Time `json:"created_at,omitzero"`
}

// TableName returns the name of the database table
// associated with the Session model.
func (s Session) TableName() string {
	return "sessions"
}
