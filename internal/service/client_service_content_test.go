// SPDX-License-Identifier: Apache-2.0

package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"testing"

	"github.com/passway/passway/internal/crypto"
	"github.com/passway/passway/internal/logger"
	"github.com/passway/passway/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClientSession(t *testing.T) *ClientSession {
	t.Helper()

	keychain := crypto.NewKeychainService()
	contentKey, err := keychain.GenerateContentKey()
	require.NoError(t, err)

	return &ClientSession{
		CredentialID: "test-credential",
		Envelope: models.EnvelopePlain{
			ContentKey: base64.StdEncoding.EncodeToString(contentKey),
		},
	}
}

func TestClientContentUpload_ServerSeesCiphertext(t *testing.T) {
	session := testClientSession(t)

	var uploaded []byte
	srvAdapter := &mockServerAdapter{
		uploadContentFn: func(ctx context.Context, name string, data []byte) error {
			uploaded = data
			return nil
		},
	}
	keychain := crypto.NewKeychainService()
	svc := NewClientContentService(srvAdapter, keychain, logger.Nop())

	plaintext := []byte("vault entry: hunter2")
	require.NoError(t, svc.Upload(context.Background(), session, "vault.txt", plaintext))

	require.NotEmpty(t, uploaded)
	assert.False(t, bytes.Contains(uploaded, plaintext))

	// the blob round-trips under the session content key
	contentKey, err := base64.StdEncoding.DecodeString(session.Envelope.ContentKey)
	require.NoError(t, err)
	got, err := keychain.DecryptBlob(contentKey, uploaded)
	require.NoError(t, err)
	assert.Equal(t, plaintext, got)
}

func TestClientContentDownload_RoundTrip(t *testing.T) {
	session := testClientSession(t)
	keychain := crypto.NewKeychainService()

	contentKey, err := base64.StdEncoding.DecodeString(session.Envelope.ContentKey)
	require.NoError(t, err)
	blob, err := keychain.EncryptBlob(contentKey, []byte("remote blob"))
	require.NoError(t, err)

	srvAdapter := &mockServerAdapter{
		downloadContentFn: func(ctx context.Context, name string) ([]byte, error) {
			return blob, nil
		},
	}
	svc := NewClientContentService(srvAdapter, keychain, logger.Nop())

	got, err := svc.Download(context.Background(), session, "vault.txt")

	require.NoError(t, err)
	assert.Equal(t, []byte("remote blob"), got)
}

func TestClientContentDownload_TamperedBlob(t *testing.T) {
	session := testClientSession(t)
	keychain := crypto.NewKeychainService()

	contentKey, err := base64.StdEncoding.DecodeString(session.Envelope.ContentKey)
	require.NoError(t, err)
	blob, err := keychain.EncryptBlob(contentKey, []byte("remote blob"))
	require.NoError(t, err)
	blob[len(blob)-1] ^= 0xff

	srvAdapter := &mockServerAdapter{
		downloadContentFn: func(ctx context.Context, name string) ([]byte, error) {
			return blob, nil
		},
	}
	svc := NewClientContentService(srvAdapter, keychain, logger.Nop())

	_, err = svc.Download(context.Background(), session, "vault.txt")

	assert.ErrorIs(t, err, crypto.ErrBlobIntegrity)
}

func TestClientContentUpload_NoSession(t *testing.T) {
	svc := NewClientContentService(&mockServerAdapter{}, crypto.NewKeychainService(), logger.Nop())

	err := svc.Upload(context.Background(), nil, "vault.txt", []byte("data"))

	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestClientContentList(t *testing.T) {
	want := []models.ContentItem{
		{Name: "a.txt", Size: 10},
		{Name: "b.txt", Size: 20},
	}
	srvAdapter := &mockServerAdapter{
		listContentFn: func(ctx context.Context) ([]models.ContentItem, error) {
			return want, nil
		},
	}
	svc := NewClientContentService(srvAdapter, crypto.NewKeychainService(), logger.Nop())

	got, err := svc.List(context.Background())

	require.NoError(t, err)
	assert.Equal(t, want, got)
}
