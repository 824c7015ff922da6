package service

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/passway/passway/internal/adapter"
	"github.com/passway/passway/internal/crypto"
	"github.com/passway/passway/internal/logger"
	"github.com/passway/passway/models"
)

// clientContentService seals content blobs with the session's content key
// before upload. The server only ever sees ciphertext.
type clientContentService struct {
	adapter  adapter.ServerAdapter
	keychain crypto.KeychainService
	logger   *logger.Logger
}

// NewClientContentService constructs a ClientContentService over the given
// server adapter.
func NewClientContentService(serverAdapter adapter.ServerAdapter, keychain crypto.KeychainService, logger *logger.Logger) ClientContentService {
	return &clientContentService{
		adapter:  serverAdapter,
		keychain: keychain,
		logger:   logger,
	}
}

func (c *clientContentService) Upload(ctx context.Context, session *ClientSession, name string, plaintext []byte) error {
	log := logger.FromContext(ctx)

	contentKey, err := c.contentKey(session)
	if err != nil {
		return err
	}

	blob, err := c.keychain.EncryptBlob(contentKey, plaintext)
	if err != nil {
		log.Err(err).Str("name", name).Msg("content encryption failed")
		return fmt.Errorf("content encryption failed: %w", err)
	}

	if err := c.adapter.UploadContent(ctx, name, blob); err != nil {
		log.Err(err).Str("name", name).Msg("content upload failed")
		return err
	}

	return nil
}

func (c *clientContentService) Download(ctx context.Context, session *ClientSession, name string) ([]byte, error) {
	log := logger.FromContext(ctx)

	contentKey, err := c.contentKey(session)
	if err != nil {
		return nil, err
	}

	blob, err := c.adapter.DownloadContent(ctx, name)
	if err != nil {
		log.Err(err).Str("name", name).Msg("content download failed")
		return nil, err
	}

	plaintext, err := c.keychain.DecryptBlob(contentKey, blob)
	if err != nil {
		log.Err(err).Str("name", name).Msg("content decryption failed")
		return nil, fmt.Errorf("content decryption failed: %w", err)
	}

	return plaintext, nil
}

func (c *clientContentService) List(ctx context.Context) ([]models.ContentItem, error) {
	return c.adapter.ListContent(ctx)
}

func (c *clientContentService) contentKey(session *ClientSession) ([]byte, error) {
	if session == nil || session.Envelope.ContentKey == "" {
		return nil, ErrInvalidDataProvided
	}

	contentKey, err := base64.StdEncoding.DecodeString(session.Envelope.ContentKey)
	if err != nil {
		return nil, fmt.Errorf("decode content key: %w", err)
	}

	return contentKey, nil
}
