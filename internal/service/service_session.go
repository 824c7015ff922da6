package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/passway/passway/internal/config"
	"github.com/passway/passway/internal/crypto"
	"github.com/passway/passway/internal/logger"
	"github.com/passway/passway/internal/store"
	"github.com/passway/passway/internal/utils"
	"github.com/passway/passway/models"
)

// sessionService is the concrete implementation of SessionService. It
// verifies login signatures against stored public keys, persists session
// rows, and mints/validates the session tokens referencing them.
type sessionService struct {
	userRepository    store.UserRepository
	sessionRepository store.SessionRepository
	keychain          crypto.KeychainService
	uuidGenerator     *utils.UUIDGenerator

	// signatureMessage is the fixed deployment-wide constant every client
	// signs and this service verifies. Both halves must agree on it.
	signatureMessage string

	// tokenSignKey is the HMAC secret used to sign and verify session tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued token.
	tokenIssuer string

	// tokenDuration controls how long a newly issued token remains valid.
	tokenDuration time.Duration

	logger *logger.Logger
}

// NewSessionService constructs a SessionService wired to the given
// repositories and populated with token parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewSessionService(userRepository store.UserRepository, sessionRepository store.SessionRepository, keychain crypto.KeychainService, cfg config.App, logger *logger.Logger) SessionService {
	return &sessionService{
		userRepository:    userRepository,
		sessionRepository: sessionRepository,
		keychain:          keychain,
		uuidGenerator:     utils.NewUUIDGenerator(),
		signatureMessage:  cfg.SignatureMessage,
		tokenSignKey:      cfg.TokenSignKey,
		tokenIssuer:       cfg.TokenIssuer,
		tokenDuration:     cfg.TokenDuration,
		logger:            logger,
	}
}

// Login runs the server half of the challenge-response protocol: fetch the
// stored public key for credentialID, verify signature over the fixed
// message, and on success persist an authenticated session and mint its
// token.
//
// Returns the session and token or:
//   - ErrInvalidDataProvided if credentialID or signature is empty.
//   - store.ErrCredentialNotFound if the credential id is unknown.
//   - ErrInvalidSignature if verification fails. A stored public key that
//     cannot be parsed reports the same error, so a forged signature and
//     corrupt storage are indistinguishable to the caller.
func (s *sessionService) Login(ctx context.Context, credentialID string, signature []byte) (models.Session, models.Token, error) {
	log := logger.FromContext(ctx)

	if credentialID == "" || len(signature) == 0 {
		log.Error().Str("credential_id", credentialID).Msg("invalid login data provided")
		return models.Session{}, models.Token{}, ErrInvalidDataProvided
	}

	user, err := s.userRepository.FindUserByCredentialID(ctx, credentialID)
	if err != nil {
		log.Err(err).Str("credential_id", credentialID).Msg("credential search failed during login")
		return models.Session{}, models.Token{}, err
	}

	if err := s.keychain.Verify(user.PublicKey, []byte(s.signatureMessage), signature); err != nil {
		log.Err(err).
			Str("credential_id", credentialID).
			Int64("subject", user.UserID).
			Msg("login signature verification failed")
		return models.Session{}, models.Token{}, ErrInvalidSignature
	}

	session, err := s.sessionRepository.CreateSession(ctx, models.Session{
		SessionID:     s.uuidGenerator.Generate(),
		UserID:        user.UserID,
		Authenticated: true,
	})
	if err != nil {
		log.Err(err).Int64("subject", user.UserID).Msg("session creation failed")
		return models.Session{}, models.Token{}, fmt.Errorf("session creation failed: %w", err)
	}

	token, err := utils.GenerateSessionToken(s.tokenIssuer, session.SessionID, session.UserID, s.tokenDuration, s.tokenSignKey)
	if err != nil {
		log.Err(err).Str("session_id", session.SessionID).Msg("session token creation failed")
		return models.Session{}, models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return session, token, nil
}

// Authenticate validates tokenString and loads the session row it
// references. The row is authoritative: a valid token whose session was
// revoked by logout fails with store.ErrSessionNotFound.
func (s *sessionService) Authenticate(ctx context.Context, tokenString string) (models.Session, error) {
	log := logger.FromContext(ctx)

	token, err := utils.ValidateAndParseSessionToken(tokenString, s.tokenSignKey, s.tokenIssuer)
	if err != nil {
		return models.Session{}, ErrTokenIsExpiredOrInvalid
	}

	session, err := s.sessionRepository.GetSession(ctx, token.SessionID)
	if err != nil {
		log.Err(err).Str("session_id", token.SessionID).Msg("session lookup failed")
		return models.Session{}, err
	}

	if !session.Authenticated || session.UserID != token.UserID {
		log.Error().
			Str("session_id", session.SessionID).
			Int64("session_subject", session.UserID).
			Int64("token_subject", token.UserID).
			Msg("session row does not match token claims")
		return models.Session{}, store.ErrSessionNotFound
	}

	return session, nil
}

// Logout revokes the session referenced by tokenString. An invalid token and
// an already-deleted row both surface as store.ErrSessionNotFound, which
// clients treat as "already logged out".
func (s *sessionService) Logout(ctx context.Context, tokenString string) error {
	log := logger.FromContext(ctx)

	token, err := utils.ValidateAndParseSessionToken(tokenString, s.tokenSignKey, s.tokenIssuer)
	if err != nil {
		return store.ErrSessionNotFound
	}

	if err := s.sessionRepository.DeleteSession(ctx, token.SessionID); err != nil {
		if !errors.Is(err, store.ErrSessionNotFound) {
			log.Err(err).Str("session_id", token.SessionID).Msg("session deletion failed")
		}
		return err
	}

	return nil
}
