// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/passway/passway/internal/adapter"
	"github.com/passway/passway/internal/config"
	"github.com/passway/passway/internal/crypto"
	"github.com/passway/passway/internal/logger"
	"github.com/passway/passway/internal/passkey"
	"github.com/passway/passway/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClientConfig() *config.ClientConfig {
	cfg := &config.ClientConfig{}
	cfg.App.AppName = "appName"
	cfg.App.SignatureMessage = "passway"
	cfg.Adapter.ServerURL = "http://localhost:8080"
	cfg.Adapter.RequestTimeout = 5 * time.Second
	cfg.Authenticator.PromptTimeout = 5 * time.Second
	return cfg
}

// fakeCredentialServer backs a mockServerAdapter with real server-side
// semantics: it stores the submitted record and verifies login signatures
// with the same keychain the client signs with.
type fakeCredentialServer struct {
	keychain crypto.KeychainService
	message  string

	stored   map[string]models.User
	sessions int
}

func newFakeCredentialServer() *fakeCredentialServer {
	return &fakeCredentialServer{
		keychain: crypto.NewKeychainService(),
		message:  "passway",
		stored:   map[string]models.User{},
	}
}

func (f *fakeCredentialServer) adapter() *mockServerAdapter {
	return &mockServerAdapter{
		putUserFn: func(ctx context.Context, user models.User) (bool, error) {
			_, exists := f.stored[user.ID]
			f.stored[user.ID] = user
			return !exists, nil
		},
		getUserFn: func(ctx context.Context, credentialID string) (models.UserKeys, error) {
			user, ok := f.stored[credentialID]
			if !ok {
				return models.UserKeys{}, adapter.ErrNotFound
			}
			return models.UserKeys{Keys: user.EncryptedKeys, Salt: user.Salt, IV: user.IV}, nil
		},
		getSessionFn: func(ctx context.Context, credentialID string, signature []byte) error {
			user, ok := f.stored[credentialID]
			if !ok {
				return adapter.ErrNotFound
			}
			if err := f.keychain.Verify(user.PublicKey, []byte(f.message), signature); err != nil {
				return adapter.ErrInvalidSignature
			}
			f.sessions++
			return nil
		},
	}
}

func newClientAuthForTest(t *testing.T, srv *fakeCredentialServer) ClientAuthService {
	t.Helper()
	return NewClientAuthService(
		passkey.NewSoftAuthenticator(),
		srv.adapter(),
		crypto.NewKeychainService(),
		testClientConfig(),
		logger.Nop(),
	)
}

func TestClientRegisterThenLogin(t *testing.T) {
	srv := newFakeCredentialServer()
	svc := newClientAuthForTest(t, srv)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, "user-name", "User"))
	require.Len(t, srv.stored, 1)

	session, err := svc.Login(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, srv.sessions)
	assert.NotEmpty(t, session.CredentialID)
	assert.NotEmpty(t, session.Envelope.ContentKey)
	assert.NotEmpty(t, session.Envelope.PrivateKey)

	// the stored public key equals the one recovered from the envelope
	stored := srv.stored[session.CredentialID]
	assert.Equal(t, stored.PublicKey, session.Envelope.PublicKey)
}

func TestClientRegister_DuplicateRefused(t *testing.T) {
	srv := newFakeCredentialServer()
	svc := newClientAuthForTest(t, srv)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, "user-name", "User"))

	// the soft authenticator refuses a second resident credential per
	// relying party
	err := svc.Register(ctx, "user-name", "User")

	assert.ErrorIs(t, err, ErrRegistration)
	assert.ErrorIs(t, err, passkey.ErrCreationRefused)
}

func TestClientLogin_NoCredential(t *testing.T) {
	srv := newFakeCredentialServer()
	svc := newClientAuthForTest(t, srv)

	_, err := svc.Login(context.Background())

	assert.ErrorIs(t, err, ErrLogin)
	assert.ErrorIs(t, err, passkey.ErrNoCredential)
}

func TestClientLogin_UnknownOnServer(t *testing.T) {
	// credential exists on the authenticator but was never submitted
	authenticator := passkey.NewSoftAuthenticator()
	keychain := crypto.NewKeychainService()

	handle, err := keychain.GenerateUserHandle()
	require.NoError(t, err)
	challenge, err := keychain.GenerateChallenge()
	require.NoError(t, err)

	_, err = authenticator.Create(context.Background(), passkey.CreateRequest{
		RelyingParty:    "appName",
		UserName:        "user-name",
		UserDisplayName: "User",
		Challenge:       challenge,
		UserHandle:      handle,
	})
	require.NoError(t, err)

	srv := newFakeCredentialServer()
	svc := NewClientAuthService(authenticator, srv.adapter(), keychain, testClientConfig(), logger.Nop())

	_, err = svc.Login(context.Background())

	assert.ErrorIs(t, err, ErrLogin)
	assert.ErrorIs(t, err, adapter.ErrNotFound)
}

func TestClientRegister_SubmissionFailure(t *testing.T) {
	putErr := errors.New("server unreachable")
	srvAdapter := &mockServerAdapter{
		putUserFn: func(ctx context.Context, user models.User) (bool, error) {
			return false, putErr
		},
	}
	svc := NewClientAuthService(
		passkey.NewSoftAuthenticator(),
		srvAdapter,
		crypto.NewKeychainService(),
		testClientConfig(),
		logger.Nop(),
	)

	err := svc.Register(context.Background(), "user-name", "User")

	assert.ErrorIs(t, err, ErrRegistration)
	assert.ErrorIs(t, err, putErr)
}

func TestClientLogout_AlreadyLoggedOut(t *testing.T) {
	srvAdapter := &mockServerAdapter{
		deleteSessionFn: func(ctx context.Context) error {
			return adapter.ErrPermissionDenied
		},
	}
	svc := NewClientAuthService(
		passkey.NewSoftAuthenticator(),
		srvAdapter,
		crypto.NewKeychainService(),
		testClientConfig(),
		logger.Nop(),
	)

	// an unknown session on the server means "already logged out"
	assert.NoError(t, svc.Logout(context.Background()))
}

func TestClientLogout_TransportFailure(t *testing.T) {
	netErr := errors.New("connection refused")
	srvAdapter := &mockServerAdapter{
		deleteSessionFn: func(ctx context.Context) error {
			return netErr
		},
	}
	svc := NewClientAuthService(
		passkey.NewSoftAuthenticator(),
		srvAdapter,
		crypto.NewKeychainService(),
		testClientConfig(),
		logger.Nop(),
	)

	assert.ErrorIs(t, svc.Logout(context.Background()), netErr)
}
