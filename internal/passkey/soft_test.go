package passkey

import (
	"bytes"
	"context"
	"errors"
	"testing"
)

func createRequest() CreateRequest {
	return CreateRequest{
		RelyingParty:    "appName",
		UserName:        "user-name",
		UserDisplayName: "User",
		Challenge:       bytes.Repeat([]byte{0x01}, 32),
		UserHandle:      bytes.Repeat([]byte{0x02}, 32),
	}
}

func TestSoftAuthenticator_CreateThenGet(t *testing.T) {
	ctx := context.Background()
	auth := NewSoftAuthenticator()

	att, err := auth.Create(ctx, createRequest())
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if att.CredentialID == "" {
		t.Fatalf("expected non-empty credential id")
	}

	asrt, err := auth.Get(ctx, GetRequest{RelyingParty: "appName", Challenge: bytes.Repeat([]byte{0x03}, 32)})
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}

	if asrt.CredentialID != att.CredentialID {
		t.Fatalf("credential id changed between create and get: %q vs %q", att.CredentialID, asrt.CredentialID)
	}
	if !bytes.Equal(asrt.UserHandle, att.UserHandle) {
		t.Fatalf("user handle not echoed: %x vs %x", asrt.UserHandle, att.UserHandle)
	}
	if len(asrt.Signature) == 0 {
		t.Fatalf("login-type assertion must carry a signature")
	}
}

func TestSoftAuthenticator_DuplicateRegistrationRefused(t *testing.T) {
	ctx := context.Background()
	auth := NewSoftAuthenticator()

	if _, err := auth.Create(ctx, createRequest()); err != nil {
		t.Fatalf("Create error: %v", err)
	}

	_, err := auth.Create(ctx, createRequest())
	if !errors.Is(err, ErrCreationRefused) {
		t.Fatalf("error = %v, want ErrCreationRefused", err)
	}
}

func TestSoftAuthenticator_GetUnknownRelyingParty(t *testing.T) {
	auth := NewSoftAuthenticator()

	_, err := auth.Get(context.Background(), GetRequest{RelyingParty: "nobody", Challenge: []byte{0x01}})
	if !errors.Is(err, ErrNoCredential) {
		t.Fatalf("error = %v, want ErrNoCredential", err)
	}
}

func TestSoftAuthenticator_IncompleteCreateRefused(t *testing.T) {
	auth := NewSoftAuthenticator()

	req := createRequest()
	req.UserHandle = nil

	_, err := auth.Create(context.Background(), req)
	if !errors.Is(err, ErrCreationRefused) {
		t.Fatalf("error = %v, want ErrCreationRefused", err)
	}
}

// A cancelled prompt surfaces as the context error, same as a user dismissing
// the platform dialog.
func TestSoftAuthenticator_CancelledContext(t *testing.T) {
	auth := NewSoftAuthenticator()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := auth.Create(ctx, createRequest()); !errors.Is(err, context.Canceled) {
		t.Fatalf("Create error = %v, want context.Canceled", err)
	}
	if _, err := auth.Get(ctx, GetRequest{RelyingParty: "appName"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("Get error = %v, want context.Canceled", err)
	}
}
