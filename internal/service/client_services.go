package service

import (
	"github.com/passway/passway/internal/adapter"
	"github.com/passway/passway/internal/config"
	"github.com/passway/passway/internal/crypto"
	"github.com/passway/passway/internal/logger"
	"github.com/passway/passway/internal/passkey"
)

type ClientServices struct {
	AuthService    ClientAuthService
	ContentService ClientContentService
}

func NewClientServices(authenticator passkey.Authenticator, serverAdapter adapter.ServerAdapter, cfg *config.ClientConfig, logger *logger.Logger) *ClientServices {
	keychain := crypto.NewKeychainService()

	return &ClientServices{
		AuthService:    NewClientAuthService(authenticator, serverAdapter, keychain, cfg, logger),
		ContentService: NewClientContentService(serverAdapter, keychain, logger),
	}
}
