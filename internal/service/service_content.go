package service

import (
	"context"
	"fmt"

	"github.com/passway/passway/internal/logger"
	"github.com/passway/passway/internal/store"
	"github.com/passway/passway/models"
)

// contentService is the concrete implementation of ContentService. Payloads
// are client-encrypted with the envelope content key before they ever reach
// this service, so it handles them as opaque bytes.
type contentService struct {
	contentStorage store.ContentStorage
	logger         *logger.Logger
}

// NewContentService constructs a ContentService backed by the given storage.
func NewContentService(contentStorage store.ContentStorage, logger *logger.Logger) ContentService {
	return &contentService{
		contentStorage: contentStorage,
		logger:         logger,
	}
}

func (c *contentService) Upload(ctx context.Context, userID int64, name string, data []byte) error {
	log := logger.FromContext(ctx)

	if userID == 0 || name == "" || len(data) == 0 {
		log.Error().Int64("subject", userID).Str("name", name).Msg("invalid content upload provided")
		return ErrInvalidDataProvided
	}

	if err := c.contentStorage.SaveContent(ctx, userID, name, data); err != nil {
		log.Err(err).Int64("subject", userID).Str("name", name).Msg("content upload failed")
		return fmt.Errorf("content upload failed: %w", err)
	}

	return nil
}

func (c *contentService) Download(ctx context.Context, userID int64, name string) ([]byte, error) {
	log := logger.FromContext(ctx)

	if userID == 0 || name == "" {
		log.Error().Int64("subject", userID).Str("name", name).Msg("invalid content download request")
		return nil, ErrInvalidDataProvided
	}

	data, err := c.contentStorage.LoadContent(ctx, userID, name)
	if err != nil {
		log.Err(err).Int64("subject", userID).Str("name", name).Msg("content download failed")
		return nil, err
	}

	return data, nil
}

func (c *contentService) List(ctx context.Context, userID int64) ([]models.ContentItem, error) {
	log := logger.FromContext(ctx)

	if userID == 0 {
		log.Error().Msg("invalid content list request: no subject")
		return nil, ErrInvalidDataProvided
	}

	items, err := c.contentStorage.ListContent(ctx, userID)
	if err != nil {
		log.Err(err).Int64("subject", userID).Msg("content listing failed")
		return nil, err
	}

	return items, nil
}
