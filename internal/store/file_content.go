package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/passway/passway/internal/logger"
	"github.com/passway/passway/models"
)

// contentFileStorage is the filesystem implementation of [ContentStorage].
// Blobs land under <root>/<user_id>/<name>; payloads are opaque ciphertext
// sealed client-side with the envelope content key, so the files need no
// server-side protection beyond regular filesystem permissions.
type contentFileStorage struct {
	root   string
	logger *logger.Logger
}

// NewContentFileStorage constructs a [ContentStorage] rooted at dir,
// creating the directory if it does not exist.
func NewContentFileStorage(dir string, logger *logger.Logger) (ContentStorage, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		logger.Err(err).Str("func", "NewContentFileStorage").Msg("failed to create content root directory")
		return nil, fmt.Errorf("failed to create content root directory: %w", err)
	}

	return &contentFileStorage{
		root:   dir,
		logger: logger,
	}, nil
}

// SaveContent writes the blob for (userID, name), replacing any previous
// payload under the same name. The payload goes through a temp file in the
// same directory and is renamed into place, so an interrupted write never
// leaves a truncated blob under a stored name.
func (s *contentFileStorage) SaveContent(ctx context.Context, userID int64, name string, data []byte) error {
	log := logger.FromContext(ctx)

	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := s.contentPath(userID, name)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		log.Err(err).Str("func", "*contentFileStorage.SaveContent").Msg("failed to create subject directory")
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		log.Err(err).Str("func", "*contentFileStorage.SaveContent").Str("name", name).Msg("failed to create temp file")
		return err
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		log.Err(err).Str("func", "*contentFileStorage.SaveContent").Str("name", name).Msg("failed to write content blob")
		return err
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		log.Err(err).Str("func", "*contentFileStorage.SaveContent").Str("name", name).Msg("failed to close temp file")
		return err
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		log.Err(err).Str("func", "*contentFileStorage.SaveContent").Str("name", name).Msg("failed to move content blob into place")
		return err
	}

	return nil
}

// LoadContent reads the blob stored for (userID, name). Returns
// [ErrContentNotFound] when no blob with that name exists.
func (s *contentFileStorage) LoadContent(ctx context.Context, userID int64, name string) ([]byte, error) {
	log := logger.FromContext(ctx)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, err := s.contentPath(userID, name)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrContentNotFound
		}

		log.Err(err).Str("func", "*contentFileStorage.LoadContent").Str("name", name).Msg("failed to read content blob")
		return nil, err
	}

	return data, nil
}

// ListContent returns metadata for every blob the subject has stored,
// sorted by name. A subject with no stored blobs gets an empty list.
func (s *contentFileStorage) ListContent(ctx context.Context, userID int64) ([]models.ContentItem, error) {
	log := logger.FromContext(ctx)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dir := filepath.Join(s.root, strconv.FormatInt(userID, 10))
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []models.ContentItem{}, nil
		}

		log.Err(err).Str("func", "*contentFileStorage.ListContent").Msg("failed to read subject directory")
		return nil, err
	}

	items := make([]models.ContentItem, 0, len(entries))
	for _, entry := range entries {
		// contentPath rejects dot-prefixed names, so any dot file here is an
		// in-flight temp file, not a stored blob.
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		info, infoErr := entry.Info()
		if infoErr != nil {
			log.Err(infoErr).Str("func", "*contentFileStorage.ListContent").Str("name", entry.Name()).Msg("failed to stat content blob")
			continue
		}

		items = append(items, models.ContentItem{
			Name:       entry.Name(),
			Size:       info.Size(),
			ModifiedAt: info.ModTime(),
		})
	}

	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })

	return items, nil
}

// contentPath resolves the on-disk path for (userID, name) and rejects names
// that could escape the subject directory.
func (s *contentFileStorage) contentPath(userID int64, name string) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", fmt.Errorf("invalid content name %q", name)
	}

	return filepath.Join(s.root, strconv.FormatInt(userID, 10), name), nil
}
