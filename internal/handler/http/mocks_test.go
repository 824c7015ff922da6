package http

import (
	"context"

	"github.com/passway/passway/models"
)

// ─────────────────────────────────────────────
// Mock: service.CredentialService
// ─────────────────────────────────────────────

type mockCredentialService struct {
	upsertUserFn func(ctx context.Context, user models.User, callerSubject int64) (models.User, bool, error)
	getUserFn    func(ctx context.Context, credentialID string) (models.User, error)
}

func (m *mockCredentialService) UpsertUser(ctx context.Context, user models.User, callerSubject int64) (models.User, bool, error) {
	if m.upsertUserFn != nil {
		return m.upsertUserFn(ctx, user, callerSubject)
	}
	return user, true, nil
}

func (m *mockCredentialService) GetUser(ctx context.Context, credentialID string) (models.User, error) {
	if m.getUserFn != nil {
		return m.getUserFn(ctx, credentialID)
	}
	return models.User{}, nil
}

// ─────────────────────────────────────────────
// Mock: service.SessionService
// ─────────────────────────────────────────────

type mockSessionService struct {
	loginFn        func(ctx context.Context, credentialID string, signature []byte) (models.Session, models.Token, error)
	authenticateFn func(ctx context.Context, tokenString string) (models.Session, error)
	logoutFn       func(ctx context.Context, tokenString string) error
}

func (m *mockSessionService) Login(ctx context.Context, credentialID string, signature []byte) (models.Session, models.Token, error) {
	if m.loginFn != nil {
		return m.loginFn(ctx, credentialID, signature)
	}
	return models.Session{}, models.Token{}, nil
}

func (m *mockSessionService) Authenticate(ctx context.Context, tokenString string) (models.Session, error) {
	if m.authenticateFn != nil {
		return m.authenticateFn(ctx, tokenString)
	}
	return models.Session{}, nil
}

func (m *mockSessionService) Logout(ctx context.Context, tokenString string) error {
	if m.logoutFn != nil {
		return m.logoutFn(ctx, tokenString)
	}
	return nil
}

// ─────────────────────────────────────────────
// Mock: service.ContentService
// ─────────────────────────────────────────────

type mockContentService struct {
	uploadFn   func(ctx context.Context, userID int64, name string, data []byte) error
	downloadFn func(ctx context.Context, userID int64, name string) ([]byte, error)
	listFn     func(ctx context.Context, userID int64) ([]models.ContentItem, error)
}

func (m *mockContentService) Upload(ctx context.Context, userID int64, name string, data []byte) error {
	if m.uploadFn != nil {
		return m.uploadFn(ctx, userID, name, data)
	}
	return nil
}

func (m *mockContentService) Download(ctx context.Context, userID int64, name string) ([]byte, error) {
	if m.downloadFn != nil {
		return m.downloadFn(ctx, userID, name)
	}
	return nil, nil
}

func (m *mockContentService) List(ctx context.Context, userID int64) ([]models.ContentItem, error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID)
	}
	return nil, nil
}
