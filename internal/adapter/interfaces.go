package adapter

import (
	"context"

	"github.com/cookievault/go-cookie-vault/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// TokenSource supplies a valid bearer token to the data-plane calls. The
// auth session implements it; the adapter never refreshes tokens itself.
type TokenSource interface {
	// EnsureValid returns a bearer token with a safe remaining lifetime,
	// performing a refresh or password grant first if needed.
	EnsureValid(ctx context.Context) (string, error)
}

// AuthTransport is the token-endpoint side of the remote: the two grant
// calls. These carry only the static apikey header, never a bearer token.
type AuthTransport interface {
	// PasswordGrant exchanges account credentials for a token pair.
	PasswordGrant(ctx context.Context, email, password string) (models.TokenPair, error)

	// RefreshGrant exchanges a refresh token for a fresh token pair. A
	// non-2xx response means the refresh token is spent or revoked; the
	// caller is expected to clear it and fall back to PasswordGrant.
	RefreshGrant(ctx context.Context, refreshToken string) (models.TokenPair, error)
}

// RemoteStore is the typed data-plane client over the remote REST
// resources (vaults, entries, sync log). Every call first obtains a token
// from the configured [TokenSource].
//
// Failures are not retried here: transport failures come back wrapping
// [ErrTransport], remote rejections as [*HTTPError], and token failures
// propagate from the TokenSource. Retrying is the caller's policy.
type RemoteStore interface {
	// SetTokenSource wires the auth session in after construction. Must
	// be called before any data call.
	SetTokenSource(ts TokenSource)

	// FindVault looks a vault up by name. The remote scopes results to
	// the authenticated owner, so the name alone identifies the row.
	// Returns found=false (not an error) when no vault exists.
	FindVault(ctx context.Context, name string) (vault models.Vault, found bool, err error)

	// CreateVault creates a vault owned by userID.
	CreateVault(ctx context.Context, userID, name string) (models.Vault, error)

	// UpsertEntry inserts or replaces the entry for its (vault, domain)
	// pair. Safe to call repeatedly with the same domain: the natural
	// uniqueness key merges duplicates instead of appending.
	UpsertEntry(ctx context.Context, entry models.CookieEntry) error

	// QueryEntries returns entries whose stored domain matches domain as
	// a case-insensitive substring (the remote ilike.*domain* filter).
	QueryEntries(ctx context.Context, domain string) ([]models.CookieEntry, error)

	// ListEntrySummaries returns the plaintext per-domain summaries of
	// all entries, without any ciphertext.
	ListEntrySummaries(ctx context.Context) ([]models.EntrySummary, error)

	// AppendSyncLog appends one audit record. Callers treat a failure
	// here as non-fatal.
	AppendSyncLog(ctx context.Context, rec models.SyncLogRecord) error
}
