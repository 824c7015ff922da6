package store

import (
	"context"

	"github.com/passway/passway/internal/config"
	"github.com/passway/passway/internal/logger"
)

// Storages aggregates every persistence backend the server services depend
// on: the relational credential and session repositories plus the filesystem
// content store.
type Storages struct {
	UserRepository    UserRepository
	SessionRepository SessionRepository
	ContentStorage    ContentStorage
}

// NewStorages connects to PostgreSQL, runs pending migrations, prepares the
// content directory, and returns the assembled [Storages].
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	db, err := NewConnectPostgres(ctx, cfg.DB, log)
	if err != nil {
		return nil, err
	}

	if err := db.Migrate(); err != nil {
		log.Err(err).Str("func", "NewStorages").Msg("database migration failed")
		return nil, err
	}

	contentStorage, err := NewContentFileStorage(cfg.Content.Dir, log)
	if err != nil {
		return nil, err
	}

	return &Storages{
		UserRepository:    NewUserRepository(db, log),
		SessionRepository: NewSessionRepository(db, log),
		ContentStorage:    contentStorage,
	}, nil
}
