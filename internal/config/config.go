package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// cookie-vault client. It aggregates all sub-configurations and is
// populated by merging values from environment variables, command-line
// overrides, an optional JSON file, and built-in defaults (in that
// priority order, first non-zero value wins).
//
// All environment variables share the COOKIE_VAULT_ prefix; the env tags
// below name the suffix (e.g. Remote.URL ← COOKIE_VAULT_SUPABASE_URL).
type StructuredConfig struct {
	// Remote holds the endpoint settings of the remote vault datastore.
	Remote Remote

	// Account holds the credentials used for the password grant.
	Account Account

	// Sync holds the sync engine policy and scheduling settings.
	Sync Sync

	// Status holds the local status store and status endpoint settings.
	Status Status

	// Passphrase is the user-held secret every envelope is encrypted
	// under. Never logged, never sent to the remote.
	// Env: COOKIE_VAULT_KEY
	Passphrase string `env:"KEY" json:"-"`

	// JSONFilePath is the optional path to a JSON configuration file,
	// merged on top of env and overrides.
	// Env: COOKIE_VAULT_CONFIG
	JSONFilePath string `env:"CONFIG" json:"-"`
}

// Remote holds the endpoint settings of the remote vault datastore.
type Remote struct {
	// URL is the base URL of the remote endpoint
	// (e.g. "https://xyz.supabase.co").
	// Env: COOKIE_VAULT_SUPABASE_URL
	URL string `env:"SUPABASE_URL" json:"supabase_url"`

	// APIKey is the static service identifier sent as the apikey header
	// on every request. It is not a user secret but is still kept out of
	// logs.
	// Env: COOKIE_VAULT_SUPABASE_KEY
	APIKey string `env:"SUPABASE_KEY" json:"supabase_key"`

	// RequestTimeout bounds every remote call. Must be finite; a hung
	// remote call must not wedge the sync scheduler.
	// Env: COOKIE_VAULT_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" json:"request_timeout"`
}

// Account holds the password-grant credentials.
type Account struct {
	// Email is the account email.
	// Env: COOKIE_VAULT_EMAIL
	Email string `env:"EMAIL" json:"email"`

	// Password is the account password. Never logged.
	// Env: COOKIE_VAULT_PASSWORD
	Password string `env:"PASSWORD" json:"-"`
}

// Sync holds the sync engine policy and scheduling settings.
type Sync struct {
	// Enabled gates the whole engine. When false, SyncNow returns a
	// not-configured result immediately.
	// Env: COOKIE_VAULT_ENABLED
	Enabled *bool `env:"ENABLED" json:"enabled"`

	// VaultName names the target vault; created lazily on first sync.
	// Env: COOKIE_VAULT_VAULT_NAME
	VaultName string `env:"VAULT_NAME" json:"vault_name"`

	// Mode is the domain-inclusion mode: authOnlyDomains,
	// explicitDomainList, or allDomains.
	// Env: COOKIE_VAULT_MODE
	Mode string `env:"MODE" json:"mode"`

	// Domains is the explicit domain list used by explicitDomainList.
	// Env: COOKIE_VAULT_DOMAINS (comma-separated)
	Domains []string `env:"DOMAINS" json:"domains"`

	// Interval is the periodic sync backstop interval.
	// Env: COOKIE_VAULT_SYNC_INTERVAL
	Interval time.Duration `env:"SYNC_INTERVAL" json:"sync_interval"`

	// DebounceWindow coalesces general change signals.
	// Env: COOKIE_VAULT_DEBOUNCE_WINDOW
	DebounceWindow time.Duration `env:"DEBOUNCE_WINDOW" json:"debounce_window"`

	// AuthDebounceWindow coalesces auth-class change signals on its own
	// independent timer.
	// Env: COOKIE_VAULT_AUTH_DEBOUNCE_WINDOW
	AuthDebounceWindow time.Duration `env:"AUTH_DEBOUNCE_WINDOW" json:"auth_debounce_window"`

	// ObservationsFile is the JSON file the external cookie collector
	// writes observation batches to; read by sync/watch.
	// Env: COOKIE_VAULT_OBSERVATIONS_FILE
	ObservationsFile string `env:"OBSERVATIONS_FILE" json:"observations_file"`
}

// Status holds local status persistence and reporting settings.
type Status struct {
	// Address is the listen address of the local status endpoint,
	// empty to disable it.
	// Env: COOKIE_VAULT_STATUS_ADDRESS
	Address string `env:"STATUS_ADDRESS" json:"status_address"`

	// DBPath is the sqlite file holding sync-run history. Empty selects
	// an in-memory database (history lost on exit).
	// Env: COOKIE_VAULT_STATUS_DB_PATH
	DBPath string `env:"STATUS_DB_PATH" json:"status_db_path"`
}

// SyncEnabled resolves the Enabled flag, defaulting to true when unset.
func (c *StructuredConfig) SyncEnabled() bool {
	return c.Sync.Enabled == nil || *c.Sync.Enabled
}

// GetStructuredConfig loads, merges, and validates the configuration from
// all sources in priority order (first non-zero value wins):
//  1. Environment variables
//  2. overrides (typically CLI flags)
//  3. JSON file (path resolved from sources 1 and 2)
//  4. Built-in defaults
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig(overrides *StructuredConfig) (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withOverrides(overrides).
		withJSON().
		withDefaults().
		build()
}
