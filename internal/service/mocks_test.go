// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"time"

	"github.com/passway/passway/models"
)

// ─────────────────────────────────────────────
// Mock: store.UserRepository
// ─────────────────────────────────────────────

type mockUserRepository struct {
	createFn func(ctx context.Context, user models.User) (models.User, error)
	findFn   func(ctx context.Context, credentialID string) (models.User, error)
	updateFn func(ctx context.Context, user models.User) (models.User, error)
}

func (m *mockUserRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return user, nil
}

func (m *mockUserRepository) FindUserByCredentialID(ctx context.Context, credentialID string) (models.User, error) {
	if m.findFn != nil {
		return m.findFn(ctx, credentialID)
	}
	return models.User{}, nil
}

func (m *mockUserRepository) UpdateUserKeys(ctx context.Context, user models.User) (models.User, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, user)
	}
	return user, nil
}

// ─────────────────────────────────────────────
// Mock: store.SessionRepository
// ─────────────────────────────────────────────

type mockSessionRepository struct {
	createFn        func(ctx context.Context, session models.Session) (models.Session, error)
	getFn           func(ctx context.Context, sessionID string) (models.Session, error)
	deleteFn        func(ctx context.Context, sessionID string) error
	deleteExpiredFn func(ctx context.Context, olderThan time.Time) (int64, error)
}

func (m *mockSessionRepository) CreateSession(ctx context.Context, session models.Session) (models.Session, error) {
	if m.createFn != nil {
		return m.createFn(ctx, session)
	}
	return session, nil
}

func (m *mockSessionRepository) GetSession(ctx context.Context, sessionID string) (models.Session, error) {
	if m.getFn != nil {
		return m.getFn(ctx, sessionID)
	}
	return models.Session{}, nil
}

func (m *mockSessionRepository) DeleteSession(ctx context.Context, sessionID string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, sessionID)
	}
	return nil
}

func (m *mockSessionRepository) DeleteExpiredSessions(ctx context.Context, olderThan time.Time) (int64, error) {
	if m.deleteExpiredFn != nil {
		return m.deleteExpiredFn(ctx, olderThan)
	}
	return 0, nil
}

// ─────────────────────────────────────────────
// Mock: adapter.ServerAdapter
// ─────────────────────────────────────────────

type mockServerAdapter struct {
	putUserFn         func(ctx context.Context, user models.User) (bool, error)
	getUserFn         func(ctx context.Context, credentialID string) (models.UserKeys, error)
	getSessionFn      func(ctx context.Context, credentialID string, signature []byte) error
	deleteSessionFn   func(ctx context.Context) error
	sessionTokenFn    func() string
	uploadContentFn   func(ctx context.Context, name string, data []byte) error
	downloadContentFn func(ctx context.Context, name string) ([]byte, error)
	listContentFn     func(ctx context.Context) ([]models.ContentItem, error)
}

func (m *mockServerAdapter) PutUser(ctx context.Context, user models.User) (bool, error) {
	if m.putUserFn != nil {
		return m.putUserFn(ctx, user)
	}
	return true, nil
}

func (m *mockServerAdapter) GetUser(ctx context.Context, credentialID string) (models.UserKeys, error) {
	if m.getUserFn != nil {
		return m.getUserFn(ctx, credentialID)
	}
	return models.UserKeys{}, nil
}

func (m *mockServerAdapter) GetSession(ctx context.Context, credentialID string, signature []byte) error {
	if m.getSessionFn != nil {
		return m.getSessionFn(ctx, credentialID, signature)
	}
	return nil
}

func (m *mockServerAdapter) DeleteSession(ctx context.Context) error {
	if m.deleteSessionFn != nil {
		return m.deleteSessionFn(ctx)
	}
	return nil
}

func (m *mockServerAdapter) SessionToken() string {
	if m.sessionTokenFn != nil {
		return m.sessionTokenFn()
	}
	return ""
}

func (m *mockServerAdapter) UploadContent(ctx context.Context, name string, data []byte) error {
	if m.uploadContentFn != nil {
		return m.uploadContentFn(ctx, name, data)
	}
	return nil
}

func (m *mockServerAdapter) DownloadContent(ctx context.Context, name string) ([]byte, error) {
	if m.downloadContentFn != nil {
		return m.downloadContentFn(ctx, name)
	}
	return nil, nil
}

func (m *mockServerAdapter) ListContent(ctx context.Context) ([]models.ContentItem, error) {
	if m.listContentFn != nil {
		return m.listContentFn(ctx)
	}
	return nil, nil
}
