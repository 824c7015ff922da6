// SPDX-License-Identifier: Apache-2.0

package crypto

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"fmt"
)

// The signature scheme is fixed for the deployment: ECDSA over P-256 with
// SHA-256 digests and ASN.1 DER signature encoding. Client signing and
// server verification both go through this file, so the two halves cannot
// disagree on curve parameters.

// GenerateSigningKeyPair implements [KeychainService]. The public key is
// returned as base64 SPKI (PKIX DER), the private key as base64 PKCS#8 DER.
func (k *keychainService) GenerateSigningKeyPair() (string, string, error) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return "", "", fmt.Errorf("generate ecdsa key: %w", err)
	}

	publicDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		return "", "", fmt.Errorf("marshal public key: %w", err)
	}

	privateDER, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		return "", "", fmt.Errorf("marshal private key: %w", err)
	}

	return base64.StdEncoding.EncodeToString(publicDER),
		base64.StdEncoding.EncodeToString(privateDER),
		nil
}

// Sign implements [KeychainService]. It hashes message with SHA-256 and
// signs the digest with the decoded private key, returning the ASN.1 DER
// signature bytes.
func (k *keychainService) Sign(privateKey string, message []byte) ([]byte, error) {
	key, err := parsePrivateKey(privateKey)
	if err != nil {
		return nil, err
	}

	digest := sha256.Sum256(message)
	signature, err := ecdsa.SignASN1(rand.Reader, key, digest[:])
	if err != nil {
		return nil, fmt.Errorf("sign message: %w", err)
	}

	return signature, nil
}

// Verify implements [KeychainService]. The digest parameters must match
// Sign exactly; a mismatch surfaces as [ErrSignatureInvalid], the same as a
// forged signature.
func (k *keychainService) Verify(publicKey string, message, signature []byte) error {
	key, err := parsePublicKey(publicKey)
	if err != nil {
		return err
	}

	digest := sha256.Sum256(message)
	if !ecdsa.VerifyASN1(key, digest[:], signature) {
		return ErrSignatureInvalid
	}

	return nil
}

func parsePrivateKey(encoded string) (*ecdsa.PrivateKey, error) {
	der, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: decode base64: %w", ErrBadPrivateKey, err)
	}

	parsed, err := x509.ParsePKCS8PrivateKey(der)
	if err != nil {
		return nil, fmt.Errorf("%w: parse pkcs8: %w", ErrBadPrivateKey, err)
	}

	key, ok := parsed.(*ecdsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("%w: not an ecdsa key", ErrBadPrivateKey)
	}

	return key, nil
}

func parsePublicKey(encoded string) (*ecdsa.PublicKey, error) {
	der, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: decode base64: %w", ErrBadPublicKey, err)
	}

	parsed, err := x509.ParsePKIXPublicKey(der)
	if err != nil {
		return nil, fmt.Errorf("%w: parse spki: %w", ErrBadPublicKey, err)
	}

	key, ok := parsed.(*ecdsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("%w: not an ecdsa key", ErrBadPublicKey)
	}

	return key, nil
}
