package service

import (
	"github.com/passway/passway/internal/config"
	"github.com/passway/passway/internal/crypto"
	"github.com/passway/passway/internal/logger"
	"github.com/passway/passway/internal/store"
)

type Services struct {
	CredentialService CredentialService
	SessionService    SessionService
	ContentService    ContentService
}

func NewServices(storages *store.Storages, cfg *config.StructuredConfig, logger *logger.Logger) *Services {
	keychain := crypto.NewKeychainService()

	return &Services{
		CredentialService: NewCredentialService(storages.UserRepository, logger),
		SessionService:    NewSessionService(storages.UserRepository, storages.SessionRepository, keychain, cfg.App, logger),
		ContentService:    NewContentService(storages.ContentStorage, logger),
	}
}
