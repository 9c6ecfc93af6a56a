package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cookievault/go-cookie-vault/models"
)

func TestGetStructuredConfig_DefaultsOnly(t *testing.T) {
	cfg, err := GetStructuredConfig(nil)
	require.NoError(t, err)

	assert.Equal(t, models.DefaultVaultName, cfg.Sync.VaultName)
	assert.Equal(t, string(models.ModeAuthOnlyDomains), cfg.Sync.Mode)
	assert.Equal(t, 5*time.Minute, cfg.Sync.Interval)
	assert.Equal(t, 2*time.Second, cfg.Sync.DebounceWindow)
	assert.Equal(t, 5*time.Second, cfg.Sync.AuthDebounceWindow)
	assert.Equal(t, 30*time.Second, cfg.Remote.RequestTimeout)
	assert.True(t, cfg.SyncEnabled())
	assert.False(t, cfg.Configured())
}

func TestGetStructuredConfig_EnvWins(t *testing.T) {
	t.Setenv("COOKIE_VAULT_SUPABASE_URL", "https://env.example.co")
	t.Setenv("COOKIE_VAULT_KEY", "env-passphrase")
	t.Setenv("COOKIE_VAULT_MODE", "allDomains")
	t.Setenv("COOKIE_VAULT_DOMAINS", "linkedin.com,github.com")
	t.Setenv("COOKIE_VAULT_SYNC_INTERVAL", "90s")

	overrides := &StructuredConfig{
		Remote: Remote{URL: "https://flag.example.co"},
	}

	cfg, err := GetStructuredConfig(overrides)
	require.NoError(t, err)

	assert.Equal(t, "https://env.example.co", cfg.Remote.URL, "env has priority over overrides")
	assert.Equal(t, "env-passphrase", cfg.Passphrase)
	assert.Equal(t, "allDomains", cfg.Sync.Mode)
	assert.Equal(t, []string{"linkedin.com", "github.com"}, cfg.Sync.Domains)
	assert.Equal(t, 90*time.Second, cfg.Sync.Interval)
}

func TestGetStructuredConfig_OverridesFillGaps(t *testing.T) {
	overrides := &StructuredConfig{
		Remote:  Remote{URL: "https://flag.example.co", APIKey: "anon"},
		Account: Account{Email: "me@example.com", Password: "pw"},
	}

	cfg, err := GetStructuredConfig(overrides)
	require.NoError(t, err)

	assert.Equal(t, "https://flag.example.co", cfg.Remote.URL)
	assert.Equal(t, "anon", cfg.Remote.APIKey)
	// Defaults still fill whatever the overrides left empty.
	assert.Equal(t, 5*time.Minute, cfg.Sync.Interval)
}

func TestGetStructuredConfig_JSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	body := `{
		"remote": {"supabase_url": "https://json.example.co", "request_timeout": "10s"},
		"sync": {"mode": "explicitDomainList", "domains": ["linkedin.com"], "enabled": false}
	}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	cfg, err := GetStructuredConfig(&StructuredConfig{JSONFilePath: path})
	require.NoError(t, err)

	assert.Equal(t, "https://json.example.co", cfg.Remote.URL)
	assert.Equal(t, 10*time.Second, cfg.Remote.RequestTimeout)
	assert.Equal(t, "explicitDomainList", cfg.Sync.Mode)
	assert.Equal(t, []string{"linkedin.com"}, cfg.Sync.Domains)
	assert.False(t, cfg.SyncEnabled())
}

func TestGetStructuredConfig_InvalidMode(t *testing.T) {
	t.Setenv("COOKIE_VAULT_MODE", "everything")

	_, err := GetStructuredConfig(nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidSyncConfigs)
}

func TestConfigured_RequiresAllSecrets(t *testing.T) {
	cfg := &StructuredConfig{
		Remote:     Remote{URL: "https://x.supabase.co", APIKey: "anon"},
		Account:    Account{Email: "me@example.com", Password: "pw"},
		Passphrase: "k",
	}
	assert.True(t, cfg.Configured())

	cfg.Passphrase = ""
	assert.False(t, cfg.Configured())
}
