package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/passway/passway/internal/logger"
	"github.com/passway/passway/models"
)

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
// It handles credential record creation and lookup against the "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
//
// A debug-level log message is emitted at construction time to aid
// application startup diagnostics.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUser persists a new credential record and returns the fully populated
// [models.User] with server-assigned fields (UserID, CreatedAt).
//
// The INSERT uses the [createUser] prepared query which returns all columns
// via a RETURNING clause, so the caller receives the canonical database
// representation of the newly created record.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrCredentialAlreadyExists].
//   - Any other driver-level error → wrapped as "unexpected DB error".
//   - Scan failure → returned directly.
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowRetryContext(ctx, createUser, user.ID, user.EncryptedKeys, user.PublicKey, user.IV, user.Salt)

	// create credential record in db
	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error: row is nil")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.User{}, ErrCredentialAlreadyExists
		default:
			return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	// scan saved record from db
	if err := row.Scan(&user.UserID, &user.ID, &user.EncryptedKeys, &user.PublicKey, &user.IV, &user.Salt, &user.CreatedAt); err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error: scanning error")

		if postgresError(err) == pgerrcode.UniqueViolation {
			return models.User{}, ErrCredentialAlreadyExists
		}

		return models.User{}, err
	}

	return user, nil
}

// FindUserByCredentialID retrieves the credential record matching the given
// credential id.
//
// Error handling:
//   - No matching row → [ErrCredentialNotFound].
//   - Query build or driver-level failure → wrapped error.
func (r *userRepository) FindUserByCredentialID(ctx context.Context, credentialID string) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectUserByCredentialIDQuery(credentialID)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.FindUserByCredentialID").Msg("failed to build query")
		return models.User{}, err
	}

	var foundUser models.User
	row := r.db.QueryRowRetryContext(ctx, query, args...)

	if err := row.Err(); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrCredentialNotFound
		}

		log.Err(err).Str("func", "*userRepository.FindUserByCredentialID").Msg("error: row is nil")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if err := row.Scan(&foundUser.UserID, &foundUser.ID, &foundUser.EncryptedKeys, &foundUser.PublicKey, &foundUser.IV, &foundUser.Salt, &foundUser.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrCredentialNotFound
		}

		log.Err(err).Str("func", "*userRepository.FindUserByCredentialID").Msg("error: scanning error")
		return models.User{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return foundUser, nil
}

// UpdateUserKeys replaces the sealed envelope columns (encrypted_keys,
// public_key, iv, salt) of the record matching user.ID and returns the
// updated row. credential_id and user_id never change.
//
// Error handling:
//   - No matching row → [ErrCredentialNotFound].
//   - Query build or driver-level failure → wrapped error.
func (r *userRepository) UpdateUserKeys(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateUserKeysQuery(user)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdateUserKeys").Msg("failed to build query")
		return models.User{}, err
	}

	var updated models.User
	row := r.db.QueryRowRetryContext(ctx, query, args...)

	if err := row.Err(); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrCredentialNotFound
		}

		log.Err(err).Str("func", "*userRepository.UpdateUserKeys").Msg("error: row is nil")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if err := row.Scan(&updated.UserID, &updated.ID, &updated.EncryptedKeys, &updated.PublicKey, &updated.IV, &updated.Salt, &updated.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrCredentialNotFound
		}

		log.Err(err).Str("func", "*userRepository.UpdateUserKeys").Msg("error: scanning error")
		return models.User{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return updated, nil
}
