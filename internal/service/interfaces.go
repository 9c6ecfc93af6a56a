package service

import (
	"context"
	"time"

	"github.com/cookievault/go-cookie-vault/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// AuthSession owns the bearer-token lifecycle: acquire via password grant,
// refresh while a refresh token is held, re-authenticate from scratch when
// the refresh is rejected. It is the only writer of the token state, and
// only one grant call is ever in flight (concurrent callers wait on it).
type AuthSession interface {
	// EnsureValid returns a bearer token with at least the safety margin
	// of lifetime left, performing whatever grant is needed first.
	// Fails with [*AuthError] when both refresh and password grant fail.
	EnsureValid(ctx context.Context) (string, error)

	// UserID returns the authenticated account id, authenticating first
	// if needed.
	UserID(ctx context.Context) (string, error)

	// State reports the session's current lifecycle state.
	State() SessionState
}

// SyncEngine turns per-domain cookie observations into encrypted upserts
// against the remote vault. SyncNow is non-reentrant per process: a second
// caller blocks until the first run finishes.
type SyncEngine interface {
	// SyncNow filters observations through the inclusion policy, encrypts
	// each included domain's batch, and upserts it remotely. Per-domain
	// failures are isolated and reported in the result; SyncNow itself
	// never escalates them into a panic or process failure.
	SyncNow(ctx context.Context, observations map[string][]models.Cookie) models.SyncResult
}

// VaultReader is the read-side client: it fetches entries for a domain,
// decrypts them, and normalizes the plaintext cookies for downstream
// consumers. Usable from a runtime that never wrote the entries, as long
// as it holds the same passphrase.
type VaultReader interface {
	// GetCookies returns the decrypted cookies of every entry matching
	// domain, skipping entries synced longer than maxAge ago when maxAge
	// is positive. An empty result is a valid outcome, not an error.
	GetCookies(ctx context.Context, domain string, maxAge time.Duration) ([]models.Cookie, error)

	// CookieHeader renders the matching cookies as a Cookie header value:
	// "name1=value1; name2=value2".
	CookieHeader(ctx context.Context, domain string, maxAge time.Duration) (string, error)

	// AutomationCookies normalizes the matching cookies for
	// browser-automation injection APIs.
	AutomationCookies(ctx context.Context, domain string, maxAge time.Duration) ([]models.AutomationCookie, error)

	// ListDomains returns the plaintext per-domain summaries stored in
	// the vault, decrypting nothing.
	ListDomains(ctx context.Context) ([]models.EntrySummary, error)
}

// ObservationSource supplies the engine with the current per-domain cookie
// observations. The actual collection mechanism (browser extension,
// exporter script) lives outside this module and communicates through an
// implementation of this interface.
type ObservationSource interface {
	// Load returns the current observations keyed by domain.
	Load(ctx context.Context) (map[string][]models.Cookie, error)
}

// SyncJob owns the scheduling contract around a SyncEngine: a debounced
// trigger for change signals and a fixed-interval backstop timer. Both
// coalesce into serialized SyncNow runs with run-once-more semantics.
type SyncJob interface {
	// Start launches the background scheduler. interval <= 0 falls back
	// to 5 minutes. A prior running job is stopped first.
	Start(ctx context.Context, interval time.Duration)

	// Signal notes that cookies changed. Signals inside the debounce
	// window coalesce; the window restarts with each signal and the sync
	// runs once after quiescence. authClass selects the independent
	// window for authentication-class cookie changes.
	Signal(authClass bool)

	// Stop cancels the scheduler and waits for in-flight work to finish.
	Stop()
}

// AuthCookiePredicate decides whether a cookie is authentication-class.
// The heuristic is inherently fuzzy, so it stays pluggable: tests and
// deployments can swap it without touching the sync algorithm.
type AuthCookiePredicate func(c models.Cookie) bool
