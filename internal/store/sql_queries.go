package store

import (
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/passway/passway/models"
)

const (
	createUser = `INSERT INTO users (credential_id, encrypted_keys, public_key, iv, salt)
    VALUES ($1, $2, $3, $4, $5)
    RETURNING user_id, credential_id, encrypted_keys, public_key, iv, salt, created_at;`

	createSession = `INSERT INTO sessions (session_id, user_id, authenticated)
    VALUES ($1, $2, $3)
    RETURNING session_id, user_id, authenticated, created_at;`
)

// psql is the shared statement builder configured for PostgreSQL positional
// placeholders ($1, $2, ...).
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var userColumns = []string{
	"user_id",
	"credential_id",
	"encrypted_keys",
	"public_key",
	"iv",
	"salt",
	"created_at",
}

func buildSelectUserByCredentialIDQuery(credentialID string) (string, []any, error) {
	query, args, err := psql.
		Select(userColumns...).
		From(models.User{}.TableName()).
		Where(sq.Eq{"credential_id": credentialID}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildUpdateUserKeysQuery builds the UPDATE that replaces the sealed
// envelope of an existing credential record. Only the envelope columns
// change; credential_id and user_id are immutable.
func buildUpdateUserKeysQuery(user models.User) (string, []any, error) {
	query, args, err := psql.
		Update(user.TableName()).
		Set("encrypted_keys", user.EncryptedKeys).
		Set("public_key", user.PublicKey).
		Set("iv", user.IV).
		Set("salt", user.Salt).
		Where(sq.Eq{"credential_id": user.ID}).
		Suffix("RETURNING user_id, credential_id, encrypted_keys, public_key, iv, salt, created_at").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

func buildSelectSessionQuery(sessionID string) (string, []any, error) {
	query, args, err := psql.
		Select("session_id", "user_id", "authenticated", "created_at").
		From(models.Session{}.TableName()).
		Where(sq.Eq{"session_id": sessionID}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

func buildDeleteSessionQuery(sessionID string) (string, []any, error) {
	query, args, err := psql.
		Delete(models.Session{}.TableName()).
		Where(sq.Eq{"session_id": sessionID}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

func buildDeleteExpiredSessionsQuery(olderThan time.Time) (string, []any, error) {
	query, args, err := psql.
		Delete(models.Session{}.TableName()).
		Where(sq.Lt{"created_at": olderThan}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}
