// SPDX-License-Identifier: Apache-2.0

package config

import "time"

// Defaults applied after all configuration sources are merged. Only values
// the protocol can safely assume are defaulted; secrets never are.
const (
	defaultTokenIssuer      = "passway"
	defaultTokenDuration    = 12 * time.Hour
	defaultSignatureMessage = "passway"
	defaultRequestTimeout   = 30 * time.Second
	defaultClientTimeout    = 15 * time.Second
	defaultPromptTimeout    = 60 * time.Second
	defaultAppName          = "appName"
)

func (cfg *StructuredConfig) applyDefaults() {
	if cfg.App.TokenIssuer == "" {
		cfg.App.TokenIssuer = defaultTokenIssuer
	}
	if cfg.App.TokenDuration == 0 {
		cfg.App.TokenDuration = defaultTokenDuration
	}
	if cfg.App.SignatureMessage == "" {
		cfg.App.SignatureMessage = defaultSignatureMessage
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = defaultRequestTimeout
	}
	if cfg.Client.RequestTimeout == 0 {
		cfg.Client.RequestTimeout = defaultClientTimeout
	}
	if cfg.Client.PromptTimeout == 0 {
		cfg.Client.PromptTimeout = defaultPromptTimeout
	}
	if cfg.Client.AppName == "" {
		cfg.Client.AppName = defaultAppName
	}
}

// validate checks that the final merged [StructuredConfig] satisfies the
// application invariants the server cannot default its way around.
//
// Returns nil if the configuration is valid, or a sentinel error otherwise.
func (cfg *StructuredConfig) validate() error {
	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Adapter.ServerURL == "" || cfg.Adapter.RequestTimeout == 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.App.AppName == "" || cfg.App.SignatureMessage == "" {
		return ErrInvalidAppConfigs
	}

	return nil
}
