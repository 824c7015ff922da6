package crypto

import "github.com/passway/passway/models"

// KeychainService owns every cryptographic primitive of the envelope scheme.
// It knows nothing about the network, storage, or authenticators; its only
// job is to generate, wrap, and use keys.
//
// Scheme:
//
//	salt, iv    = GenerateSalt() + GenerateIV()            (fresh per envelope)
//	wrapKey     = DeriveWrapKey(base64(userHandle), salt)  (PBKDF2-SHA256)
//	sealed      = Seal(bundle, wrapKey, iv)                (AES-256-GCM)
//	bundle      = Unseal(sealed, wrapKey, iv)
//	sig         = Sign(privateKey, message)                (ECDSA P-256)
//	ok          = Verify(publicKey, message, sig)
type KeychainService interface {
	// GenerateSalt returns a random 16-byte KDF salt. The salt is not a
	// secret — it is stored on the server in the clear — but it must be
	// fresh for every sealed envelope.
	GenerateSalt() ([]byte, error)

	// GenerateIV returns a random 12-byte AES-GCM nonce. Like the salt it
	// travels in the clear and must never be reused under the same wrap key.
	GenerateIV() ([]byte, error)

	// GenerateContentKey returns a random 256-bit symmetric content key.
	GenerateContentKey() ([]byte, error)

	// GenerateChallenge returns a random 32-byte authenticator challenge.
	GenerateChallenge() ([]byte, error)

	// GenerateUserHandle returns a random 32-byte passkey user handle. The
	// handle becomes the root secret of the derivation chain once bound to
	// a credential.
	GenerateUserHandle() ([]byte, error)

	// DeriveWrapKey derives the 256-bit envelope wrapping key from the
	// base64-rendered user handle and a salt. Deterministic: same inputs
	// always yield the same key. The secret must come from a genuine
	// assertion's user handle, never from user input.
	DeriveWrapKey(secret string, salt []byte) []byte

	// Seal encrypts the JSON-encoded bundle under wrapKey with iv as the
	// GCM nonce and returns the base64 ciphertext.
	Seal(bundle models.EnvelopePlain, wrapKey, iv []byte) (string, error)

	// Unseal decrypts and parses a sealed envelope. Returns
	// [ErrEnvelopeIntegrity] if tag verification fails (wrong key, tampered
	// ciphertext, wrong iv) and [ErrEnvelopeFormat] if the plaintext does
	// not parse into the expected bundle shape. Both are terminal for the
	// current protocol run.
	Unseal(encryptedKeys string, wrapKey, iv []byte) (models.EnvelopePlain, error)

	// EncryptBlob encrypts an opaque content payload under the content key
	// with AES-GCM and a fresh nonce prepended to the ciphertext.
	EncryptBlob(contentKey, plaintext []byte) ([]byte, error)

	// DecryptBlob reverses [EncryptBlob]. Returns [ErrBlobIntegrity] on a
	// truncated blob or tag mismatch.
	DecryptBlob(contentKey, blob []byte) ([]byte, error)

	// GenerateSigningKeyPair creates a fresh ECDSA P-256 keypair and
	// returns (base64 SPKI public key, base64 PKCS#8 private key).
	GenerateSigningKeyPair() (publicKey string, privateKey string, err error)

	// Sign produces an ASN.1 DER ECDSA signature over SHA-256(message)
	// using a base64 PKCS#8 private key.
	Sign(privateKey string, message []byte) ([]byte, error)

	// Verify checks signature over SHA-256(message) against a base64 SPKI
	// public key. Returns [ErrSignatureInvalid] on mismatch and
	// [ErrBadPublicKey] if the key cannot be parsed.
	Verify(publicKey string, message, signature []byte) error
}
