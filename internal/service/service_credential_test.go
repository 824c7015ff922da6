// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/passway/passway/internal/logger"
	"github.com/passway/passway/internal/store"
	"github.com/passway/passway/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validUser() models.User {
	return models.User{
		ID:            "cred-abc",
		EncryptedKeys: "sealed",
		PublicKey:     "spki",
		IV:            "iv",
		Salt:          "salt",
	}
}

func newCredentialServiceForTest(repo *mockUserRepository) CredentialService {
	return NewCredentialService(repo, logger.Nop())
}

func TestUpsertUser_CreatePath(t *testing.T) {
	repo := &mockUserRepository{
		findFn: func(ctx context.Context, credentialID string) (models.User, error) {
			return models.User{}, store.ErrCredentialNotFound
		},
		createFn: func(ctx context.Context, user models.User) (models.User, error) {
			user.UserID = 1
			return user, nil
		},
	}
	svc := newCredentialServiceForTest(repo)

	saved, created, err := svc.UpsertUser(context.Background(), validUser(), 0)

	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, int64(1), saved.UserID)
}

func TestUpsertUser_UpdatePath_SameSubject(t *testing.T) {
	updateCalled := false
	repo := &mockUserRepository{
		findFn: func(ctx context.Context, credentialID string) (models.User, error) {
			existing := validUser()
			existing.UserID = 7
			return existing, nil
		},
		updateFn: func(ctx context.Context, user models.User) (models.User, error) {
			updateCalled = true
			user.UserID = 7
			return user, nil
		},
	}
	svc := newCredentialServiceForTest(repo)

	submitted := validUser()
	submitted.EncryptedKeys = "resealed"

	saved, created, err := svc.UpsertUser(context.Background(), submitted, 7)

	require.NoError(t, err)
	assert.False(t, created)
	assert.True(t, updateCalled)
	assert.Equal(t, "resealed", saved.EncryptedKeys)
}

func TestUpsertUser_UpdatePath_DifferentSubject(t *testing.T) {
	repo := &mockUserRepository{
		findFn: func(ctx context.Context, credentialID string) (models.User, error) {
			existing := validUser()
			existing.UserID = 7
			return existing, nil
		},
	}
	svc := newCredentialServiceForTest(repo)

	_, _, err := svc.UpsertUser(context.Background(), validUser(), 8)

	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestUpsertUser_UpdatePath_NoSession(t *testing.T) {
	repo := &mockUserRepository{
		findFn: func(ctx context.Context, credentialID string) (models.User, error) {
			existing := validUser()
			existing.UserID = 7
			return existing, nil
		},
	}
	svc := newCredentialServiceForTest(repo)

	_, _, err := svc.UpsertUser(context.Background(), validUser(), 0)

	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestUpsertUser_InsertRace_RereadAsUpdate(t *testing.T) {
	findCalls := 0
	repo := &mockUserRepository{
		findFn: func(ctx context.Context, credentialID string) (models.User, error) {
			findCalls++
			if findCalls == 1 {
				return models.User{}, store.ErrCredentialNotFound
			}
			existing := validUser()
			existing.UserID = 7
			return existing, nil
		},
		createFn: func(ctx context.Context, user models.User) (models.User, error) {
			return models.User{}, store.ErrCredentialAlreadyExists
		},
	}
	svc := newCredentialServiceForTest(repo)

	// racing registration without a session loses to the earlier insert
	_, _, err := svc.UpsertUser(context.Background(), validUser(), 0)

	assert.ErrorIs(t, err, ErrPermissionDenied)
	assert.Equal(t, 2, findCalls)
}

func TestUpsertUser_InvalidData(t *testing.T) {
	svc := newCredentialServiceForTest(&mockUserRepository{})

	tests := []struct {
		name   string
		mutate func(u *models.User)
	}{
		{name: "empty credential id", mutate: func(u *models.User) { u.ID = "" }},
		{name: "empty envelope", mutate: func(u *models.User) { u.EncryptedKeys = "" }},
		{name: "empty public key", mutate: func(u *models.User) { u.PublicKey = "" }},
		{name: "empty iv", mutate: func(u *models.User) { u.IV = "" }},
		{name: "empty salt", mutate: func(u *models.User) { u.Salt = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := validUser()
			tt.mutate(&user)

			_, _, err := svc.UpsertUser(context.Background(), user, 0)
			assert.ErrorIs(t, err, ErrInvalidDataProvided)
		})
	}
}

func TestGetUser_Success(t *testing.T) {
	repo := &mockUserRepository{
		findFn: func(ctx context.Context, credentialID string) (models.User, error) {
			found := validUser()
			found.UserID = 7
			return found, nil
		},
	}
	svc := newCredentialServiceForTest(repo)

	found, err := svc.GetUser(context.Background(), "cred-abc")

	require.NoError(t, err)
	assert.Equal(t, int64(7), found.UserID)
}

func TestGetUser_NotFound(t *testing.T) {
	repo := &mockUserRepository{
		findFn: func(ctx context.Context, credentialID string) (models.User, error) {
			return models.User{}, store.ErrCredentialNotFound
		},
	}
	svc := newCredentialServiceForTest(repo)

	_, err := svc.GetUser(context.Background(), "does-not-exist")

	assert.ErrorIs(t, err, store.ErrCredentialNotFound)
}

func TestGetUser_EmptyID(t *testing.T) {
	svc := newCredentialServiceForTest(&mockUserRepository{})

	_, err := svc.GetUser(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestGetUser_RepositoryError(t *testing.T) {
	dbErr := errors.New("db down")
	repo := &mockUserRepository{
		findFn: func(ctx context.Context, credentialID string) (models.User, error) {
			return models.User{}, dbErr
		},
	}
	svc := newCredentialServiceForTest(repo)

	_, err := svc.GetUser(context.Background(), "cred-abc")
	assert.ErrorIs(t, err, dbErr)
}
