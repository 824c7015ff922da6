package config

import (
	"fmt"
	"time"
)

// ClientApp holds client-side application settings derived from the shared
// structured config.
type ClientApp struct {
	// AppName is the relying-party name passkeys are scoped to.
	AppName string
	// SignatureMessage is the fixed message signed at login. Must match the
	// server's value exactly.
	SignatureMessage string
}

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// ServerURL is the base URL of the passway server.
	ServerURL string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
}

// ClientAuthenticator holds settings for the authenticator interaction.
type ClientAuthenticator struct {
	// PromptTimeout bounds a single authenticator prompt.
	PromptTimeout time.Duration
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	// App contains application-level client settings.
	App ClientApp
	// Adapter contains client transport addresses and timeouts.
	Adapter ClientAdapter
	// Authenticator contains authenticator prompt settings.
	Authenticator ClientAuthenticator
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration.
//
// It loads the base config via [GetStructuredConfig], maps only the fields
// relevant to the client runtime, and validates the resulting [ClientConfig].
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		App: ClientApp{
			AppName:          cfg.Client.AppName,
			SignatureMessage: cfg.App.SignatureMessage,
		},
		Adapter: ClientAdapter{
			ServerURL:      cfg.Client.ServerURL,
			RequestTimeout: cfg.Client.RequestTimeout,
		},
		Authenticator: ClientAuthenticator{
			PromptTimeout: cfg.Client.PromptTimeout,
		},
	}

	return clientCfg, clientCfg.validate()
}
