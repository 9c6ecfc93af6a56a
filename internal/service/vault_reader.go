package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cookievault/go-cookie-vault/internal/adapter"
	"github.com/cookievault/go-cookie-vault/internal/crypto"
	"github.com/cookievault/go-cookie-vault/internal/logger"
	"github.com/cookievault/go-cookie-vault/models"
)

// vaultReader is the private implementation of [VaultReader]. It holds the
// passphrase but performs no cryptography itself; the envelope service
// does, which keeps the reader testable against a mock.
type vaultReader struct {
	remote     adapter.RemoteStore
	envelope   crypto.EnvelopeService
	passphrase string

	now    func() time.Time
	logger *logger.Logger
}

// NewVaultReader constructs the read-side client. It is independent of the
/// sync engine: a process that only consumes cookies needs just the remote
// store, the envelope service, and the shared passphrase.
func NewVaultReader(remote adapter.RemoteStore, envelope crypto.EnvelopeService, passphrase string, log *logger.Logger) VaultReader {
	return &vaultReader{
		remote:     remote,
		envelope:   envelope,
		passphrase: passphrase,
		now:        time.Now,
		logger:     log,
	}
}

// GetCookies implements [VaultReader]. Entries synced longer than maxAge
// ago are skipped when maxAge is positive; a decryption failure on any
// surviving entry fails the whole call (wrong passphrase is not a
// per-entry condition).
func (r *vaultReader) GetCookies(ctx context.Context, domain string, maxAge time.Duration) ([]models.Cookie, error) {
	entries, err := r.remote.QueryEntries(ctx, domain)
	if err != nil {
		return nil, err
	}

	cookies := make([]models.Cookie, 0, len(entries)*4)
	now := r.now()

	for _, entry := range entries {
		if maxAge > 0 && now.Sub(entry.SyncedAt) > maxAge {
			r.logger.Debug().
				Str("domain", entry.Domain).
				Time("synced_at", entry.SyncedAt).
				Msg("entry discarded as stale")
			continue
		}

		var batch []models.Cookie
		if err = r.envelope.Decrypt(entry.Envelope(), r.passphrase, &batch); err != nil {
			return nil, fmt.Errorf("decrypt entry for %s: %w", entry.Domain, err)
		}
		cookies = append(cookies, batch...)
	}

	return cookies, nil
}

// CookieHeader implements [VaultReader].
func (r *vaultReader) CookieHeader(ctx context.Context, domain string, maxAge time.Duration) (string, error) {
	cookies, err := r.GetCookies(ctx, domain, maxAge)
	if err != nil {
		return "", err
	}

	pairs := make([]string, 0, len(cookies))
	for _, c := range cookies {
		pairs = append(pairs, c.Name+"="+c.Value)
	}

	return strings.Join(pairs, "; "), nil
}

// AutomationCookies implements [VaultReader]. Same-site policies are
// normalized to the automation-API vocabulary and missing domain/path
// fall back to the queried domain and "/".
func (r *vaultReader) AutomationCookies(ctx context.Context, domain string, maxAge time.Duration) ([]models.AutomationCookie, error) {
	cookies, err := r.GetCookies(ctx, domain, maxAge)
	if err != nil {
		return nil, err
	}

	out := make([]models.AutomationCookie, 0, len(cookies))
	for _, c := range cookies {
		ac := models.AutomationCookie{
			Name:     c.Name,
			Value:    c.Value,
			Domain:   c.Domain,
			Path:     c.Path,
			Secure:   c.Secure,
			HTTPOnly: c.HTTPOnly,
			Expires:  c.ExpirationDate,
		}
		if ac.Domain == "" {
			ac.Domain = domain
		}
		if ac.Path == "" {
			ac.Path = "/"
		}
		if c.SameSite != "" {
			ac.SameSite = NormalizeSameSite(c.SameSite)
		}
		out = append(out, ac)
	}

	return out, nil
}

// ListDomains implements [VaultReader].
func (r *vaultReader) ListDomains(ctx context.Context) ([]models.EntrySummary, error) {
	return r.remote.ListEntrySummaries(ctx)
}

// NormalizeSameSite maps browser-reported same-site policy strings to the
// automation-API vocabulary. Unknown values normalize to "Lax", the
// browsers' own default.
func NormalizeSameSite(s string) string {
	switch strings.ToLower(s) {
	case "no_restriction", "none":
		return "None"
	case "strict":
		return "Strict"
	default:
		return "Lax"
	}
}
