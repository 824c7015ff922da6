// SPDX-License-Identifier: Apache-2.0

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"

	"github.com/passway/passway/models"
	"golang.org/x/crypto/pbkdf2"
)

const (
	// saltLength is the KDF salt size in bytes.
	saltLength = 16

	// ivLength is the AES-GCM nonce size in bytes.
	ivLength = 12

	// contentKeyLength is the symmetric content key size in bytes (256 bits).
	contentKeyLength = 32

	// challengeLength is the authenticator challenge size in bytes.
	challengeLength = 32

	// userHandleLength is the passkey user handle size in bytes.
	userHandleLength = 32

	// kdfIterations is the PBKDF2 iteration count. Deliberately expensive to
	// slow brute-force if a user handle leaks without the authenticator.
	kdfIterations = 100_000

	// wrapKeyLength is the derived wrap key size in bytes (256 bits).
	wrapKeyLength = 32
)

// keychainService is the private implementation of [KeychainService].
type keychainService struct{}

// NewKeychainService constructs a [KeychainService] with the deployment's
// fixed parameters: PBKDF2-SHA256 at 100,000 iterations for wrap-key
// derivation, AES-256-GCM for envelope sealing, and ECDSA P-256 / SHA-256
// for the signature scheme. Both protocol halves share this one
// implementation, so client signing and server verification can never
// diverge on curve or hash.
func NewKeychainService() KeychainService {
	return &keychainService{}
}

// GenerateSalt implements [KeychainService]. It reads 16 random bytes from
// the OS CSPRNG. Returns an error if the random read fails.
func (k *keychainService) GenerateSalt() ([]byte, error) {
	return randomBytes(saltLength)
}

// GenerateIV implements [KeychainService]. It reads 12 random bytes from the
// OS CSPRNG. Returns an error if the random read fails.
func (k *keychainService) GenerateIV() ([]byte, error) {
	return randomBytes(ivLength)
}

// GenerateContentKey implements [KeychainService]. It reads 32 random bytes
// from the OS CSPRNG and returns them as the content key.
func (k *keychainService) GenerateContentKey() ([]byte, error) {
	return randomBytes(contentKeyLength)
}

// GenerateChallenge implements [KeychainService].
func (k *keychainService) GenerateChallenge() ([]byte, error) {
	return randomBytes(challengeLength)
}

// GenerateUserHandle implements [KeychainService].
func (k *keychainService) GenerateUserHandle() ([]byte, error) {
	return randomBytes(userHandleLength)
}

// DeriveWrapKey implements [KeychainService]. It derives a 256-bit wrapping
// key from the base64-rendered user handle and salt using PBKDF2-SHA256 with
// the fixed iteration count. The result exists only in client memory and is
// never transmitted or stored.
func (k *keychainService) DeriveWrapKey(secret string, salt []byte) []byte {
	return pbkdf2.Key([]byte(secret), salt, kdfIterations, wrapKeyLength, sha256.New)
}

// Seal implements [KeychainService]. It marshals the bundle to JSON and
// encrypts it with AES-256-GCM under wrapKey, using iv as the nonce. Unlike
// the usual nonce-prefixed blob layout, the iv is NOT prepended to the
// ciphertext: it is stored alongside the envelope in the clear, so the
// output is ciphertext only, base64 (standard encoding).
//
// The caller must supply a fresh iv for every seal; reusing an iv under the
// same wrap key breaks GCM.
func (k *keychainService) Seal(bundle models.EnvelopePlain, wrapKey, iv []byte) (string, error) {
	plaintext, err := json.Marshal(bundle)
	if err != nil {
		return "", fmt.Errorf("marshal bundle: %w", err)
	}

	gcm, err := newGCM(wrapKey)
	if err != nil {
		return "", err
	}
	if len(iv) != gcm.NonceSize() {
		return "", fmt.Errorf("iv length = %d, want %d", len(iv), gcm.NonceSize())
	}

	ciphertext := gcm.Seal(nil, iv, plaintext, nil)
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// Unseal implements [KeychainService]. It base64-decodes encryptedKeys,
// decrypts it with wrapKey and iv, and unmarshals the plaintext into the
// bundle shape.
//
// Error classification:
//   - undecodable base64 or broken/incomplete bundle JSON → [ErrEnvelopeFormat]
//   - GCM authentication tag mismatch → [ErrEnvelopeIntegrity]
//
// Both are terminal for the current protocol run; there is no retry and no
// partial recovery.
func (k *keychainService) Unseal(encryptedKeys string, wrapKey, iv []byte) (models.EnvelopePlain, error) {
	ciphertext, err := base64.StdEncoding.DecodeString(encryptedKeys)
	if err != nil {
		return models.EnvelopePlain{}, fmt.Errorf("%w: decode base64: %w", ErrEnvelopeFormat, err)
	}

	gcm, err := newGCM(wrapKey)
	if err != nil {
		return models.EnvelopePlain{}, err
	}
	if len(iv) != gcm.NonceSize() {
		return models.EnvelopePlain{}, fmt.Errorf("%w: iv length = %d, want %d", ErrEnvelopeFormat, len(iv), gcm.NonceSize())
	}

	// An open failure almost always means the wrap key was derived from the
	// wrong user handle.
	plaintext, err := gcm.Open(nil, iv, ciphertext, nil)
	if err != nil {
		return models.EnvelopePlain{}, fmt.Errorf("%w: %w", ErrEnvelopeIntegrity, err)
	}

	var bundle models.EnvelopePlain
	if err := json.Unmarshal(plaintext, &bundle); err != nil {
		return models.EnvelopePlain{}, fmt.Errorf("%w: unmarshal bundle: %w", ErrEnvelopeFormat, err)
	}

	if bundle.ContentKey == "" || bundle.PrivateKey == "" || bundle.PublicKey == "" {
		return models.EnvelopePlain{}, fmt.Errorf("%w: bundle is missing key material", ErrEnvelopeFormat)
	}

	return bundle, nil
}

// EncryptBlob implements [KeychainService]. It encrypts an opaque content
// payload under the 256-bit content key with AES-GCM and a fresh random
// nonce. The nonce is prepended to the ciphertext, so the output is
// self-contained; nothing besides the content key is needed to decrypt.
func (k *keychainService) EncryptBlob(contentKey, plaintext []byte) ([]byte, error) {
	gcm, err := newGCM(contentKey)
	if err != nil {
		return nil, err
	}

	nonce, err := randomBytes(gcm.NonceSize())
	if err != nil {
		return nil, err
	}

	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

// DecryptBlob implements [KeychainService]. It splits the nonce off a blob
// produced by [EncryptBlob] and decrypts the remainder. Returns
// [ErrBlobIntegrity] on a truncated blob or an authentication tag mismatch.
func (k *keychainService) DecryptBlob(contentKey, blob []byte) ([]byte, error) {
	gcm, err := newGCM(contentKey)
	if err != nil {
		return nil, err
	}

	if len(blob) < gcm.NonceSize() {
		return nil, fmt.Errorf("%w: blob shorter than nonce", ErrBlobIntegrity)
	}

	nonce, ciphertext := blob[:gcm.NonceSize()], blob[gcm.NonceSize():]
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBlobIntegrity, err)
	}

	return plaintext, nil
}

// newGCM builds an AES-GCM AEAD from a 256-bit key.
func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}

	return gcm, nil
}

func randomBytes(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, buf); err != nil {
		return nil, err
	}
	return buf, nil
}
