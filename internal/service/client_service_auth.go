// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/passway/passway/internal/adapter"
	"github.com/passway/passway/internal/config"
	"github.com/passway/passway/internal/crypto"
	"github.com/passway/passway/internal/logger"
	"github.com/passway/passway/internal/passkey"
	"github.com/passway/passway/models"
)

type clientAuthService struct {
	authenticator passkey.Authenticator
	adapter       adapter.ServerAdapter
	keychain      crypto.KeychainService

	// appName is the relying-party name passkeys are scoped to.
	appName string

	// signatureMessage is the fixed constant signed at login. Must match
	// the server's configured value exactly.
	signatureMessage string

	// promptTimeout bounds a single authenticator interaction.
	promptTimeout time.Duration

	logger *logger.Logger
}

// NewClientAuthService constructs a ClientAuthService driving the given
// authenticator and server adapter.
func NewClientAuthService(authenticator passkey.Authenticator, serverAdapter adapter.ServerAdapter, keychain crypto.KeychainService, cfg *config.ClientConfig, logger *logger.Logger) ClientAuthService {
	return &clientAuthService{
		authenticator:    authenticator,
		adapter:          serverAdapter,
		keychain:         keychain,
		appName:          cfg.App.AppName,
		signatureMessage: cfg.App.SignatureMessage,
		promptTimeout:    cfg.Authenticator.PromptTimeout,
		logger:           logger,
	}
}

// Register runs the registration protocol. Steps, each a hard dependency on
// the previous succeeding:
//
//  1. Create a passkey for (appName, userName, userDisplayName) with a fresh
//     challenge and a locally generated user handle.
//  2. Obtain a fresh assertion to learn the authenticator-chosen credential
//     id and the handle actually bound to the credential. The echoed handle
//     is authoritative for derivation.
//  3. Generate a signing keypair and a content key.
//  4. Generate iv and salt, derive the wrap key from the handle, seal the
//     bundle.
//  5. Submit {credentialId, encryptedKeys, publicKey, iv, salt}.
//
// No compensating rollback on failure: an authenticator credential without a
// stored envelope is inert.
func (a *clientAuthService) Register(ctx context.Context, userName, userDisplayName string) error {
	log := logger.FromContext(ctx)

	createChallenge, err := a.keychain.GenerateChallenge()
	if err != nil {
		return fmt.Errorf("%w: generating challenge: %w", ErrRegistration, err)
	}

	handle, err := a.keychain.GenerateUserHandle()
	if err != nil {
		return fmt.Errorf("%w: generating user handle: %w", ErrRegistration, err)
	}

	promptCtx, cancel := context.WithTimeout(ctx, a.promptTimeout)
	defer cancel()

	_, err = a.authenticator.Create(promptCtx, passkey.CreateRequest{
		RelyingParty:    a.appName,
		UserName:        userName,
		UserDisplayName: userDisplayName,
		Challenge:       createChallenge,
		UserHandle:      handle,
	})
	if err != nil {
		log.Err(err).Str("user_name", userName).Msg("passkey creation refused")
		return fmt.Errorf("%w: %w", ErrRegistration, err)
	}

	assertion, err := a.freshAssertion(ctx)
	if err != nil {
		log.Err(err).Msg("post-creation assertion failed")
		return fmt.Errorf("%w: %w", ErrRegistration, err)
	}

	publicKey, privateKey, err := a.keychain.GenerateSigningKeyPair()
	if err != nil {
		return fmt.Errorf("%w: generating signing keypair: %w", ErrRegistration, err)
	}

	contentKey, err := a.keychain.GenerateContentKey()
	if err != nil {
		return fmt.Errorf("%w: generating content key: %w", ErrRegistration, err)
	}

	iv, err := a.keychain.GenerateIV()
	if err != nil {
		return fmt.Errorf("%w: generating iv: %w", ErrRegistration, err)
	}

	salt, err := a.keychain.GenerateSalt()
	if err != nil {
		return fmt.Errorf("%w: generating salt: %w", ErrRegistration, err)
	}

	// the assertion's echoed handle is the root secret, not the handle we
	// supplied at creation
	wrapKey := a.keychain.DeriveWrapKey(base64.StdEncoding.EncodeToString(assertion.UserHandle), salt)

	bundle := models.EnvelopePlain{
		ContentKey: base64.StdEncoding.EncodeToString(contentKey),
		PublicKey:  publicKey,
		PrivateKey: privateKey,
		IV:         base64.StdEncoding.EncodeToString(iv),
		Salt:       base64.StdEncoding.EncodeToString(salt),
	}

	encryptedKeys, err := a.keychain.Seal(bundle, wrapKey, iv)
	if err != nil {
		return fmt.Errorf("%w: sealing envelope: %w", ErrRegistration, err)
	}

	_, err = a.adapter.PutUser(ctx, models.User{
		ID:            assertion.CredentialID,
		EncryptedKeys: encryptedKeys,
		PublicKey:     publicKey,
		IV:            bundle.IV,
		Salt:          bundle.Salt,
	})
	if err != nil {
		log.Err(err).Str("credential_id", assertion.CredentialID).Msg("credential record submission failed")
		return fmt.Errorf("%w: %w", ErrRegistration, err)
	}

	return nil
}

// Login runs the challenge-response protocol:
// assertion → envelope unseal → signature → server verification.
func (a *clientAuthService) Login(ctx context.Context) (*ClientSession, error) {
	log := logger.FromContext(ctx)

	assertion, err := a.freshAssertion(ctx)
	if err != nil {
		log.Err(err).Msg("login assertion failed")
		return nil, fmt.Errorf("%w: %w", ErrLogin, err)
	}

	keys, err := a.adapter.GetUser(ctx, assertion.CredentialID)
	if err != nil {
		log.Err(err).Str("credential_id", assertion.CredentialID).Msg("credential record fetch failed")
		return nil, fmt.Errorf("%w: %w", ErrLogin, err)
	}

	salt, err := base64.StdEncoding.DecodeString(keys.Salt)
	if err != nil {
		return nil, fmt.Errorf("%w: decode stored salt: %w", ErrLogin, err)
	}

	iv, err := base64.StdEncoding.DecodeString(keys.IV)
	if err != nil {
		return nil, fmt.Errorf("%w: decode stored iv: %w", ErrLogin, err)
	}

	wrapKey := a.keychain.DeriveWrapKey(base64.StdEncoding.EncodeToString(assertion.UserHandle), salt)

	bundle, err := a.keychain.Unseal(keys.Keys, wrapKey, iv)
	if err != nil {
		log.Err(err).Str("credential_id", assertion.CredentialID).Msg("envelope unseal failed")
		return nil, fmt.Errorf("%w: %w", ErrLogin, err)
	}

	signature, err := a.keychain.Sign(bundle.PrivateKey, []byte(a.signatureMessage))
	if err != nil {
		return nil, fmt.Errorf("%w: signing challenge message: %w", ErrLogin, err)
	}

	if err := a.adapter.GetSession(ctx, assertion.CredentialID, signature); err != nil {
		log.Err(err).Str("credential_id", assertion.CredentialID).Msg("server rejected login")
		return nil, fmt.Errorf("%w: %w", ErrLogin, err)
	}

	return &ClientSession{
		CredentialID: assertion.CredentialID,
		Envelope:     bundle,
	}, nil
}

// Logout revokes the server session. The server reports an unknown session
// as a refusal, which is mapped to "already logged out" here.
func (a *clientAuthService) Logout(ctx context.Context) error {
	log := logger.FromContext(ctx)

	err := a.adapter.DeleteSession(ctx)
	if err == nil {
		return nil
	}

	if errors.Is(err, adapter.ErrPermissionDenied) || errors.Is(err, adapter.ErrNoSession) {
		log.Info().Msg("session already logged out")
		return nil
	}

	log.Err(err).Msg("logout failed")
	return err
}

// freshAssertion asks the authenticator for an assertion over a fresh
// challenge and validates that it is usable for derivation.
func (a *clientAuthService) freshAssertion(ctx context.Context) (*models.Assertion, error) {
	challenge, err := a.keychain.GenerateChallenge()
	if err != nil {
		return nil, fmt.Errorf("generating challenge: %w", err)
	}

	promptCtx, cancel := context.WithTimeout(ctx, a.promptTimeout)
	defer cancel()

	assertion, err := a.authenticator.Get(promptCtx, passkey.GetRequest{
		RelyingParty: a.appName,
		Challenge:    challenge,
	})
	if err != nil {
		return nil, err
	}

	if assertion == nil || assertion.CredentialID == "" {
		return nil, errors.New("authenticator returned no usable assertion")
	}
	if len(assertion.UserHandle) == 0 {
		return nil, ErrNoUserHandle
	}

	return assertion, nil
}
