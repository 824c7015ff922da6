// SPDX-License-Identifier: Apache-2.0

package crypto

import "errors"

// Sentinel errors surfaced by envelope and signature operations. Callers
// should match against these values with [errors.Is]; the distinction
// between integrity and format failures lets them tell "wrong credentials"
// from "corrupted storage".
var (
	// ErrEnvelopeIntegrity is returned by Unseal when the AES-GCM
	// authentication tag does not verify: the wrap key is wrong, the
	// ciphertext was tampered with, or the iv does not match.
	ErrEnvelopeIntegrity = errors.New("envelope integrity check failed")

	// ErrEnvelopeFormat is returned by Unseal when decryption succeeds but
	// the plaintext does not parse into the expected bundle shape (broken
	// JSON, missing content key, malformed key encodings).
	ErrEnvelopeFormat = errors.New("envelope has unexpected format")

	// ErrBlobIntegrity is returned by DecryptBlob when a content blob is
	// truncated or its authentication tag does not verify.
	ErrBlobIntegrity = errors.New("content blob integrity check failed")

	// ErrSignatureInvalid is returned by Verify when the signature does not
	// match the message under the given public key.
	ErrSignatureInvalid = errors.New("signature verification failed")

	// ErrBadPublicKey is returned by Verify when the stored public key
	// cannot be decoded or is not an ECDSA key.
	ErrBadPublicKey = errors.New("public key cannot be parsed")

	// ErrBadPrivateKey is returned by Sign when the private key cannot be
	// decoded or is not an ECDSA key.
	ErrBadPrivateKey = errors.New("private key cannot be parsed")
)
