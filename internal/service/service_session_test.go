// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"testing"
	"time"

	"github.com/passway/passway/internal/config"
	"github.com/passway/passway/internal/crypto"
	"github.com/passway/passway/internal/logger"
	"github.com/passway/passway/internal/store"
	"github.com/passway/passway/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testAppConfig = config.App{
	TokenSignKey:     "test-sign-key",
	TokenIssuer:      "passway",
	TokenDuration:    time.Hour,
	SignatureMessage: "passway",
}

// signedCredential generates a real keypair and a valid signature over the
// configured message, so verification exercises the real crypto chain.
func signedCredential(t *testing.T) (publicKey string, signature []byte) {
	t.Helper()

	keychain := crypto.NewKeychainService()
	publicKey, privateKey, err := keychain.GenerateSigningKeyPair()
	require.NoError(t, err)

	signature, err = keychain.Sign(privateKey, []byte(testAppConfig.SignatureMessage))
	require.NoError(t, err)

	return publicKey, signature
}

func newSessionServiceForTest(users *mockUserRepository, sessions *mockSessionRepository) SessionService {
	return NewSessionService(users, sessions, crypto.NewKeychainService(), testAppConfig, logger.Nop())
}

func TestSessionLogin_Success(t *testing.T) {
	publicKey, signature := signedCredential(t)

	users := &mockUserRepository{
		findFn: func(ctx context.Context, credentialID string) (models.User, error) {
			return models.User{UserID: 7, ID: credentialID, PublicKey: publicKey}, nil
		},
	}
	sessions := &mockSessionRepository{
		createFn: func(ctx context.Context, session models.Session) (models.Session, error) {
			session.CreatedAt = time.Now()
			return session, nil
		},
	}
	svc := newSessionServiceForTest(users, sessions)

	session, token, err := svc.Login(context.Background(), "cred-abc", signature)

	require.NoError(t, err)
	assert.True(t, session.Authenticated)
	assert.Equal(t, int64(7), session.UserID)
	assert.NotEmpty(t, session.SessionID)
	assert.NotEmpty(t, token.SignedString)
	assert.Equal(t, session.SessionID, token.SessionID)
	assert.Equal(t, int64(7), token.UserID)
}

func TestSessionLogin_UnknownCredential(t *testing.T) {
	users := &mockUserRepository{
		findFn: func(ctx context.Context, credentialID string) (models.User, error) {
			return models.User{}, store.ErrCredentialNotFound
		},
	}
	svc := newSessionServiceForTest(users, &mockSessionRepository{})

	_, _, err := svc.Login(context.Background(), "does-not-exist", []byte{0x01})

	assert.ErrorIs(t, err, store.ErrCredentialNotFound)
}

func TestSessionLogin_TamperedSignature(t *testing.T) {
	publicKey, signature := signedCredential(t)
	signature[0] ^= 0xFF

	users := &mockUserRepository{
		findFn: func(ctx context.Context, credentialID string) (models.User, error) {
			return models.User{UserID: 7, ID: credentialID, PublicKey: publicKey}, nil
		},
	}
	svc := newSessionServiceForTest(users, &mockSessionRepository{})

	_, _, err := svc.Login(context.Background(), "cred-abc", signature)

	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestSessionLogin_WrongKeypair(t *testing.T) {
	publicKey, _ := signedCredential(t)
	_, signature := signedCredential(t) // signature from an unrelated keypair

	users := &mockUserRepository{
		findFn: func(ctx context.Context, credentialID string) (models.User, error) {
			return models.User{UserID: 7, ID: credentialID, PublicKey: publicKey}, nil
		},
	}
	svc := newSessionServiceForTest(users, &mockSessionRepository{})

	_, _, err := svc.Login(context.Background(), "cred-abc", signature)

	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestSessionLogin_CorruptStoredKey(t *testing.T) {
	_, signature := signedCredential(t)

	users := &mockUserRepository{
		findFn: func(ctx context.Context, credentialID string) (models.User, error) {
			return models.User{UserID: 7, ID: credentialID, PublicKey: "not a key"}, nil
		},
	}
	svc := newSessionServiceForTest(users, &mockSessionRepository{})

	// a stored key that cannot be imported must look exactly like a forgery
	_, _, err := svc.Login(context.Background(), "cred-abc", signature)

	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestSessionLogin_InvalidData(t *testing.T) {
	svc := newSessionServiceForTest(&mockUserRepository{}, &mockSessionRepository{})

	_, _, err := svc.Login(context.Background(), "", []byte{0x01})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	_, _, err = svc.Login(context.Background(), "cred-abc", nil)
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func loginForTest(t *testing.T, sessions *mockSessionRepository) (SessionService, models.Session, models.Token) {
	t.Helper()

	publicKey, signature := signedCredential(t)
	users := &mockUserRepository{
		findFn: func(ctx context.Context, credentialID string) (models.User, error) {
			return models.User{UserID: 7, ID: credentialID, PublicKey: publicKey}, nil
		},
	}
	svc := newSessionServiceForTest(users, sessions)

	session, token, err := svc.Login(context.Background(), "cred-abc", signature)
	require.NoError(t, err)

	return svc, session, token
}

func TestSessionAuthenticate_Success(t *testing.T) {
	var stored models.Session
	sessions := &mockSessionRepository{
		createFn: func(ctx context.Context, session models.Session) (models.Session, error) {
			stored = session
			return session, nil
		},
		getFn: func(ctx context.Context, sessionID string) (models.Session, error) {
			if sessionID == stored.SessionID {
				return stored, nil
			}
			return models.Session{}, store.ErrSessionNotFound
		},
	}

	svc, session, token := loginForTest(t, sessions)

	authenticated, err := svc.Authenticate(context.Background(), token.SignedString)

	require.NoError(t, err)
	assert.Equal(t, session.SessionID, authenticated.SessionID)
	assert.Equal(t, int64(7), authenticated.UserID)
}

func TestSessionAuthenticate_RevokedSession(t *testing.T) {
	sessions := &mockSessionRepository{
		getFn: func(ctx context.Context, sessionID string) (models.Session, error) {
			return models.Session{}, store.ErrSessionNotFound
		},
	}

	svc, _, token := loginForTest(t, sessions)

	// valid token, deleted row: the row is authoritative
	_, err := svc.Authenticate(context.Background(), token.SignedString)

	assert.ErrorIs(t, err, store.ErrSessionNotFound)
}

func TestSessionAuthenticate_GarbageToken(t *testing.T) {
	svc := newSessionServiceForTest(&mockUserRepository{}, &mockSessionRepository{})

	_, err := svc.Authenticate(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

func TestSessionAuthenticate_SubjectMismatch(t *testing.T) {
	sessions := &mockSessionRepository{
		getFn: func(ctx context.Context, sessionID string) (models.Session, error) {
			return models.Session{SessionID: sessionID, UserID: 99, Authenticated: true}, nil
		},
	}

	svc, _, token := loginForTest(t, sessions)

	_, err := svc.Authenticate(context.Background(), token.SignedString)
	assert.ErrorIs(t, err, store.ErrSessionNotFound)
}

func TestSessionLogout_Success(t *testing.T) {
	deleted := ""
	sessions := &mockSessionRepository{
		deleteFn: func(ctx context.Context, sessionID string) error {
			deleted = sessionID
			return nil
		},
	}

	svc, session, token := loginForTest(t, sessions)

	require.NoError(t, svc.Logout(context.Background(), token.SignedString))
	assert.Equal(t, session.SessionID, deleted)
}

func TestSessionLogout_UnknownSession(t *testing.T) {
	sessions := &mockSessionRepository{
		deleteFn: func(ctx context.Context, sessionID string) error {
			return store.ErrSessionNotFound
		},
	}

	svc, _, token := loginForTest(t, sessions)

	err := svc.Logout(context.Background(), token.SignedString)
	assert.ErrorIs(t, err, store.ErrSessionNotFound)
}

func TestSessionLogout_GarbageToken(t *testing.T) {
	svc := newSessionServiceForTest(&mockUserRepository{}, &mockSessionRepository{})

	err := svc.Logout(context.Background(), "garbage")
	assert.ErrorIs(t, err, store.ErrSessionNotFound)
}
