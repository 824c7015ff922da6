package http

import (
	"github.com/passway/passway/internal/logger"
	"github.com/passway/passway/internal/service"
)

const (
	// credentialIDHeader carries the credential id on GET /v1/user and
	// GET /v1/session.
	credentialIDHeader = "x-passway-id"

	// signatureHeader carries the base64 login signature on GET /v1/session.
	signatureHeader = "x-passway-signature"

	// sessionCookieName is the cookie a successful login sets. Its value is
	// the signed session token.
	sessionCookieName = "passway"
)

type Handler struct {
	services *service.Services

	version string

	logger *logger.Logger
}

func NewHandler(services *service.Services, version string, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		version:  version,
		logger:   logger,
	}
}
