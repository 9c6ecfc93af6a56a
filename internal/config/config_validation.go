package config

import (
	"fmt"

	"github.com/cookievault/go-cookie-vault/models"
)

// validate checks that the final merged [StructuredConfig] satisfies the
// invariants the rest of the module relies on.
//
// Missing endpoint, credentials, or passphrase are NOT validation errors:
// an unconfigured client is a legitimate steady state (the sync engine
// reports it as not_configured). Only values that are present but
// self-contradictory fail here.
func (cfg *StructuredConfig) validate() error {
	if _, err := models.ParseInclusionMode(cfg.Sync.Mode); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSyncConfigs, err)
	}

	if cfg.Sync.Interval < 0 || cfg.Sync.DebounceWindow < 0 || cfg.Sync.AuthDebounceWindow < 0 {
		return fmt.Errorf("%w: negative interval", ErrInvalidSyncConfigs)
	}

	if cfg.Remote.RequestTimeout <= 0 {
		return fmt.Errorf("%w: request timeout must be finite and positive", ErrInvalidRemoteConfigs)
	}

	return nil
}

// Configured reports whether the engine has everything it needs to talk to
// the remote: endpoint, API key, passphrase, and account credentials.
func (cfg *StructuredConfig) Configured() bool {
	return cfg.Remote.URL != "" &&
		cfg.Remote.APIKey != "" &&
		cfg.Passphrase != "" &&
		cfg.Account.Email != "" &&
		cfg.Account.Password != ""
}
