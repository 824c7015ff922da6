package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_PopulatesNestedFields(t *testing.T) {
	t.Setenv("APP_TOKEN_SIGN_KEY", "env-sign-key")
	t.Setenv("APP_TOKEN_DURATION", "2h")
	t.Setenv("STORAGE_DB_DATABASE_URI", "postgres://env/passway")
	t.Setenv("SERVER_ADDRESS", "127.0.0.1:9999")
	t.Setenv("CLIENT_SERVER_URL", "http://env:8080")

	cfg := &StructuredConfig{}
	require.NoError(t, parseEnv(cfg))

	assert.Equal(t, "env-sign-key", cfg.App.TokenSignKey)
	assert.Equal(t, 2*time.Hour, cfg.App.TokenDuration)
	assert.Equal(t, "postgres://env/passway", cfg.Storage.DB.DSN)
	assert.Equal(t, "127.0.0.1:9999", cfg.Server.HTTPAddress)
	assert.Equal(t, "http://env:8080", cfg.Client.ServerURL)
}

func TestParseJSON_FullFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{
		"app": {
			"token_sign_key": "json-sign-key",
			"token_issuer": "passway-json",
			"token_duration": "45m",
			"signature_message": "sign-me"
		},
		"storage": {
			"db": {"dsn": "postgres://json/passway"},
			"content": {"dir": "/var/lib/passway"}
		},
		"server": {"http_address": "0.0.0.0:8081", "request_timeout": "20s"},
		"client": {"server_url": "http://json:8081", "app_name": "jsonApp"}
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := parseJSON(path)
	require.NoError(t, err)

	assert.Equal(t, "json-sign-key", cfg.App.TokenSignKey)
	assert.Equal(t, "passway-json", cfg.App.TokenIssuer)
	assert.Equal(t, 45*time.Minute, cfg.App.TokenDuration)
	assert.Equal(t, "sign-me", cfg.App.SignatureMessage)
	assert.Equal(t, "postgres://json/passway", cfg.Storage.DB.DSN)
	assert.Equal(t, "/var/lib/passway", cfg.Storage.Content.Dir)
	assert.Equal(t, "0.0.0.0:8081", cfg.Server.HTTPAddress)
	assert.Equal(t, 20*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, "http://json:8081", cfg.Client.ServerURL)
	assert.Equal(t, "jsonApp", cfg.Client.AppName)
}

func TestParseJSON_MissingFile(t *testing.T) {
	_, err := parseJSON("/does/not/exist.json")
	assert.Error(t, err)
}

func TestApplyDefaults_FillsOnlyZeroValues(t *testing.T) {
	cfg := &StructuredConfig{}
	cfg.App.TokenIssuer = "custom"

	cfg.applyDefaults()

	assert.Equal(t, "custom", cfg.App.TokenIssuer)
	assert.Equal(t, defaultTokenDuration, cfg.App.TokenDuration)
	assert.Equal(t, defaultSignatureMessage, cfg.App.SignatureMessage)
	assert.Equal(t, defaultPromptTimeout, cfg.Client.PromptTimeout)
	assert.Equal(t, defaultAppName, cfg.Client.AppName)
}

func TestNetAddress_SetValid(t *testing.T) {
	var addr NetAddress

	require.NoError(t, addr.Set("localhost:8080"))
	assert.Equal(t, "localhost", addr.Host)
	assert.Equal(t, 8080, addr.Port)
	assert.Equal(t, "localhost:8080", addr.String())
}

func TestNetAddress_SetInvalid(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{name: "no port", value: "localhost"},
		{name: "bad port", value: "localhost:abc"},
		{name: "negative port", value: "localhost:-1"},
		{name: "bad ip", value: "not-an-ip:8080"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var addr NetAddress
			assert.Error(t, addr.Set(tt.value))
		})
	}
}

func TestNetAddress_StringEmpty(t *testing.T) {
	var addr NetAddress
	assert.Equal(t, "", addr.String())
}

func TestClientConfigValidate(t *testing.T) {
	valid := &ClientConfig{
		App:     ClientApp{AppName: "appName", SignatureMessage: "passway"},
		Adapter: ClientAdapter{ServerURL: "http://localhost:8080", RequestTimeout: time.Second},
	}
	require.NoError(t, valid.validate())

	noURL := *valid
	noURL.Adapter.ServerURL = ""
	assert.ErrorIs(t, noURL.validate(), ErrInvalidAdapterConfigs)

	noApp := *valid
	noApp.App.AppName = ""
	assert.ErrorIs(t, noApp.validate(), ErrInvalidAppConfigs)
}
