package models

import "time"

// User represents a registered credential record: the sealed key envelope a
// subject stored at registration, addressed by the authenticator-assigned
// credential id. The server can verify signatures against PublicKey but can
// never open EncryptedKeys — the wrap key exists only on the client, derived
// from the passkey user handle.
type User struct {
	// UserID is the internal unique identifier of the subject.
	// It is not exposed via JSON and is used only at the persistence layer.
	UserID int64 `json:"-"`

	// ID is the credential id chosen by the authenticator at registration.
	// Opaque, stable per registration, unique across all subjects.
	ID string `json:"id"`

	// EncryptedKeys is the sealed envelope: base64 AES-256-GCM ciphertext of
	// the JSON-encoded key bundle (content key + signing keypair).
	EncryptedKeys string `json:"encryptedKeys"`

	// PublicKey is the base64 SPKI (PKIX DER) encoding of the subject's
	// ECDSA P-256 signing public key. Used by the server to verify login
	// signatures; never secret.
	PublicKey string `json:"publicKey"`

	// IV is the base64 12-byte AES-GCM nonce the envelope was sealed with.
	// Stored in the clear; must be unique per envelope.
	IV string `json:"iv"`

	// Salt is the base64 16-byte KDF salt used to derive the wrap key from
	// the passkey user handle. Stored in the clear.
	Salt string `json:"salt"`

	// CreatedAt is the timestamp when the credential record was created.
	CreatedAt time.Time `json:"created_at,omitzero"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}
