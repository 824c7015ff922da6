package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/passway/passway/internal/logger"
	"github.com/passway/passway/internal/store"
	"github.com/passway/passway/models"
)

// credentialService is the concrete implementation of CredentialService. It
// treats the stored envelope as fully opaque: no field of EncryptedKeys is
// ever inspected, only moved between the wire and the repository.
type credentialService struct {
	userRepository store.UserRepository
	logger         *logger.Logger
}

// NewCredentialService constructs a CredentialService wired to the given
// UserRepository.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewCredentialService(userRepository store.UserRepository, logger *logger.Logger) CredentialService {
	return &credentialService{
		userRepository: userRepository,
		logger:         logger,
	}
}

// UpsertUser creates the credential record when the credential id is unseen,
// or replaces its envelope columns when it already exists.
//
// The update path is guarded: an existing record may only be replaced when
// callerSubject matches the record's subject. A concurrent create racing on
// the same credential id loses the INSERT and is re-routed through the same
// guarded update path.
//
// Returns the persisted record and created=true/false, or:
//   - ErrInvalidDataProvided if any envelope field is empty.
//   - ErrPermissionDenied on a subject mismatch during update.
//   - A wrapped storage error if the repository call fails.
func (c *credentialService) UpsertUser(ctx context.Context, user models.User, callerSubject int64) (models.User, bool, error) {
	log := logger.FromContext(ctx)

	if user.ID == "" || user.EncryptedKeys == "" || user.PublicKey == "" || user.IV == "" || user.Salt == "" {
		log.Error().Str("credential_id", user.ID).Msg("invalid credential record provided")
		return models.User{}, false, ErrInvalidDataProvided
	}

	existing, err := c.userRepository.FindUserByCredentialID(ctx, user.ID)
	switch {
	case err == nil:
		updated, updateErr := c.update(ctx, existing, user, callerSubject)
		return updated, false, updateErr

	case errors.Is(err, store.ErrCredentialNotFound):
		created, createErr := c.userRepository.CreateUser(ctx, user)
		if createErr == nil {
			return created, true, nil
		}

		if !errors.Is(createErr, store.ErrCredentialAlreadyExists) {
			log.Err(createErr).Str("credential_id", user.ID).Msg("credential record creation failed")
			return models.User{}, false, fmt.Errorf("credential record creation failed: %w", createErr)
		}

		// lost the insert race: another registration landed first, so this
		// submission becomes an update and must pass the subject check
		raced, findErr := c.userRepository.FindUserByCredentialID(ctx, user.ID)
		if findErr != nil {
			log.Err(findErr).Str("credential_id", user.ID).Msg("credential lookup after insert race failed")
			return models.User{}, false, fmt.Errorf("credential lookup after insert race failed: %w", findErr)
		}

		updated, updateErr := c.update(ctx, raced, user, callerSubject)
		return updated, false, updateErr

	default:
		log.Err(err).Str("credential_id", user.ID).Msg("credential lookup failed")
		return models.User{}, false, fmt.Errorf("credential lookup failed: %w", err)
	}
}

// GetUser returns the credential record for credentialID.
//
// Returns ErrInvalidDataProvided for an empty id; an unknown id surfaces as
// store.ErrCredentialNotFound from the repository.
func (c *credentialService) GetUser(ctx context.Context, credentialID string) (models.User, error) {
	log := logger.FromContext(ctx)

	if credentialID == "" {
		log.Error().Msg("empty credential id provided")
		return models.User{}, ErrInvalidDataProvided
	}

	found, err := c.userRepository.FindUserByCredentialID(ctx, credentialID)
	if err != nil {
		log.Err(err).Str("credential_id", credentialID).Msg("credential search failed")
		return models.User{}, err
	}

	return found, nil
}

func (c *credentialService) update(ctx context.Context, existing, submitted models.User, callerSubject int64) (models.User, error) {
	log := logger.FromContext(ctx)

	if callerSubject == 0 || callerSubject != existing.UserID {
		log.Error().
			Str("credential_id", existing.ID).
			Int64("record_subject", existing.UserID).
			Int64("caller_subject", callerSubject).
			Msg("credential update refused: subject mismatch")
		return models.User{}, ErrPermissionDenied
	}

	updated, err := c.userRepository.UpdateUserKeys(ctx, submitted)
	if err != nil {
		log.Err(err).Str("credential_id", submitted.ID).Msg("credential record update failed")
		return models.User{}, fmt.Errorf("credential record update failed: %w", err)
	}

	return updated, nil
}
