package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// Token wraps the signed session token handed to clients after a successful
// challenge-response login.
//
// The compact JWS string travels in the "passway" session cookie. Its "jti"
// claim carries the opaque session identifier and "sub" the subject id; the
// server always re-checks the referenced session row, so the token alone
// never grants access after logout.
type Token struct {
	// Token is the underlying JWT used for signing and claim inspection.
	// Excluded from JSON serialization because only the compact string form
	// is meaningful outside the server process.
	*jwt.Token `json:"-"`

	// RegisteredClaims provides access to the standard JWT claim set
	// (sub, exp, iat, nbf, iss, aud, jti) as defined by RFC 7519.
	jwt.RegisteredClaims

	// SignedString is the compact JWS representation of the token
	// (base64url-encoded header.payload.signature).
	SignedString string `json:"-"`

	// SessionID is the opaque session identifier extracted from the "jti"
	// claim. Internal server-side cache.
	SessionID string `json:"-"`

	// UserID is the subject identifier extracted from the "sub" claim.
	// Internal server-side cache.
	UserID int64 `json:"-"`
}

// String returns the compact JWS serialization of the token
// (the signed, base64url-encoded header.payload.signature string).
// It implements the [fmt.Stringer] interface.
func (t *Token) String() string {
	return t.SignedString
}
