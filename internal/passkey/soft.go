package passkey

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/passway/passway/models"
)

// softCredential is one resident credential held by the software
// authenticator. The device key never leaves the authenticator; assertions
// expose only signatures made with it.
type softCredential struct {
	credentialID string
	userHandle   []byte
	deviceKey    *ecdsa.PrivateKey
}

// SoftAuthenticator is an in-memory, software-only [Authenticator]. It keeps
// one resident credential per relying party, echoes the user handle bound at
// creation on every assertion, and signs login challenges with a
// per-credential ECDSA device key. It stands in for a platform authenticator
// in the CLI and in tests; it offers none of a real authenticator's
// isolation guarantees.
//
// Safe for concurrent use.
type SoftAuthenticator struct {
	mu          sync.Mutex
	credentials map[string]*softCredential // keyed by relying party
}

// NewSoftAuthenticator constructs an empty software authenticator.
func NewSoftAuthenticator() *SoftAuthenticator {
	return &SoftAuthenticator{
		credentials: make(map[string]*softCredential),
	}
}

// Create implements [Authenticator]. A second registration for the same
// relying party is refused, mirroring a platform authenticator rejecting a
// duplicate resident credential.
func (s *SoftAuthenticator) Create(ctx context.Context, req CreateRequest) (*models.Attestation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if req.RelyingParty == "" || len(req.Challenge) == 0 || len(req.UserHandle) == 0 {
		return nil, fmt.Errorf("%w: incomplete create request", ErrCreationRefused)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.credentials[req.RelyingParty]; exists {
		return nil, fmt.Errorf("%w: credential already registered for %q", ErrCreationRefused, req.RelyingParty)
	}

	deviceKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("%w: generate device key: %w", ErrCreationRefused, err)
	}

	rawID := make([]byte, 16)
	if _, err := io.ReadFull(rand.Reader, rawID); err != nil {
		return nil, fmt.Errorf("%w: generate credential id: %w", ErrCreationRefused, err)
	}

	handle := make([]byte, len(req.UserHandle))
	copy(handle, req.UserHandle)

	cred := &softCredential{
		credentialID: base64.RawURLEncoding.EncodeToString(rawID),
		userHandle:   handle,
		deviceKey:    deviceKey,
	}
	s.credentials[req.RelyingParty] = cred

	clientData, err := clientDataJSON("webauthn.create", req.Challenge)
	if err != nil {
		return nil, err
	}

	return &models.Attestation{
		CredentialID: cred.credentialID,
		UserHandle:   append([]byte(nil), cred.userHandle...),
		ClientData:   clientData,
	}, nil
}

// Get implements [Authenticator]. The returned assertion carries the handle
// bound at creation and a device-key signature over the client data; the
// signature is present because this is a login-type assertion.
func (s *SoftAuthenticator) Get(ctx context.Context, req GetRequest) (*models.Assertion, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	cred, exists := s.credentials[req.RelyingParty]
	s.mu.Unlock()

	if !exists {
		return nil, fmt.Errorf("%w: %q", ErrNoCredential, req.RelyingParty)
	}

	clientData, err := clientDataJSON("webauthn.get", req.Challenge)
	if err != nil {
		return nil, err
	}

	digest := sha256.Sum256(clientData)
	signature, err := ecdsa.SignASN1(rand.Reader, cred.deviceKey, digest[:])
	if err != nil {
		return nil, fmt.Errorf("sign client data: %w", err)
	}

	return &models.Assertion{
		CredentialID: cred.credentialID,
		UserHandle:   append([]byte(nil), cred.userHandle...),
		Signature:    signature,
		ClientData:   clientData,
	}, nil
}

func clientDataJSON(ceremony string, challenge []byte) ([]byte, error) {
	data, err := json.Marshal(map[string]string{
		"type":      ceremony,
		"challenge": base64.RawURLEncoding.EncodeToString(challenge),
	})
	if err != nil {
		return nil, fmt.Errorf("marshal client data: %w", err)
	}
	return data, nil
}
