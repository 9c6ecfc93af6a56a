package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/cookievault/go-cookie-vault/internal/config"
	"github.com/cookievault/go-cookie-vault/internal/logger"
	"github.com/cookievault/go-cookie-vault/internal/utils"
	"github.com/cookievault/go-cookie-vault/models"
)

// supabaseAdapter talks to a Supabase-style remote: the token endpoints
// under /auth/v1/ and the PostgREST resources under /rest/v1/. It
// implements both [AuthTransport] and [RemoteStore].
type supabaseAdapter struct {
	client *utils.HTTPClient

	tokens TokenSource

	logger *logger.Logger
}

// NewSupabaseAdapter constructs the REST adapter from the remote endpoint
// configuration. It normalises and validates the base URL, installs the
// static apikey header on every request, and bounds each call with the
// configured request timeout.
//
// Returns an error if remoteCfg.URL is empty or cannot be parsed as a
// valid URL.
func NewSupabaseAdapter(remoteCfg config.Remote, log *logger.Logger) (*supabaseAdapter, error) {
	baseURL, err := normalizeBaseURL(remoteCfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid remote url: %w", err)
	}

	client := utils.NewHTTPClient()
	client.
		SetBaseURL(baseURL).
		SetTimeout(remoteCfg.RequestTimeout).
		SetHeader("apikey", remoteCfg.APIKey).
		SetHeader("Content-Type", "application/json")

	return &supabaseAdapter{client: client, logger: log}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetTokenSource implements [RemoteStore].
func (s *supabaseAdapter) SetTokenSource(ts TokenSource) {
	s.tokens = ts
}

// PasswordGrant implements [AuthTransport]. It POSTs the credentials to
// POST /auth/v1/token?grant_type=password and returns the token pair.
func (s *supabaseAdapter) PasswordGrant(ctx context.Context, email, password string) (models.TokenPair, error) {
	var pair models.TokenPair

	// Credentials never reach the log; only the grant kind does.
	s.logger.Debug().Str("grant", "password").Msg("requesting token")

	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParam("grant_type", "password").
		SetBody(map[string]string{"email": email, "password": password}).
		SetResult(&pair).
		Post("/auth/v1/token")
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("%w: password grant: %v", ErrTransport, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.TokenPair{}, err
	}

	return pair, nil
}

// RefreshGrant implements [AuthTransport]. It POSTs the refresh token to
// POST /auth/v1/token?grant_type=refresh_token and returns the new pair.
func (s *supabaseAdapter) RefreshGrant(ctx context.Context, refreshToken string) (models.TokenPair, error) {
	var pair models.TokenPair

	s.logger.Debug().Str("grant", "refresh_token").Msg("requesting token")

	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParam("grant_type", "refresh_token").
		SetBody(map[string]string{"refresh_token": refreshToken}).
		SetResult(&pair).
		Post("/auth/v1/token")
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("%w: refresh grant: %v", ErrTransport, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.TokenPair{}, err
	}

	return pair, nil
}

// authedRequest builds a request carrying a fresh bearer token from the
// token source.
func (s *supabaseAdapter) authedRequest(ctx context.Context) (*resty.Request, error) {
	token, err := s.tokens.EnsureValid(ctx)
	if err != nil {
		return nil, err
	}
	return s.client.R().
		SetContext(ctx).
		SetAuthToken(token), nil
}

// FindVault implements [RemoteStore]. It GETs
// GET /rest/v1/cookie_vaults?vault_name=eq.<name>&select=id and reports
// whether the owner already has a vault of that name.
func (s *supabaseAdapter) FindVault(ctx context.Context, name string) (models.Vault, bool, error) {
	req, err := s.authedRequest(ctx)
	if err != nil {
		return models.Vault{}, false, err
	}

	resp, err := req.
		SetQueryParam("vault_name", "eq."+name).
		SetQueryParam("select", "id").
		Get("/rest/v1/" + models.Vault{}.TableName())
	if err != nil {
		return models.Vault{}, false, fmt.Errorf("%w: find vault: %v", ErrTransport, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Vault{}, false, err
	}

	var vaults []models.Vault
	if err = json.Unmarshal(resp.Body(), &vaults); err != nil {
		return models.Vault{}, false, fmt.Errorf("decode vault response: %w", err)
	}
	if len(vaults) == 0 {
		return models.Vault{}, false, nil
	}

	return vaults[0], true, nil
}

// CreateVault implements [RemoteStore]. It POSTs the new vault row with a
// Prefer: return=representation header so the created record (with id)
// comes back in the response body.
func (s *supabaseAdapter) CreateVault(ctx context.Context, userID, name string) (models.Vault, error) {
	req, err := s.authedRequest(ctx)
	if err != nil {
		return models.Vault{}, err
	}

	resp, err := req.
		SetHeader("Prefer", "return=representation").
		SetBody(map[string]string{"user_id": userID, "vault_name": name}).
		Post("/rest/v1/" + models.Vault{}.TableName())
	if err != nil {
		return models.Vault{}, fmt.Errorf("%w: create vault: %v", ErrTransport, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Vault{}, err
	}

	var vaults []models.Vault
	if err = json.Unmarshal(resp.Body(), &vaults); err != nil {
		return models.Vault{}, fmt.Errorf("decode created vault: %w", err)
	}
	if len(vaults) == 0 {
		return models.Vault{}, fmt.Errorf("create vault: empty representation")
	}

	return vaults[0], nil
}

// UpsertEntry implements [RemoteStore]. The on_conflict key plus the
// merge-duplicates preference turn the POST into an idempotent upsert on
// the (vault_id, domain) natural key: re-syncing a domain replaces its
// entry instead of appending a second one.
func (s *supabaseAdapter) UpsertEntry(ctx context.Context, entry models.CookieEntry) error {
	req, err := s.authedRequest(ctx)
	if err != nil {
		return err
	}

	resp, err := req.
		SetHeader("Prefer", "resolution=merge-duplicates").
		SetQueryParam("on_conflict", "vault_id,domain").
		SetBody(entry).
		Post("/rest/v1/" + entry.TableName())
	if err != nil {
		return fmt.Errorf("%w: upsert entry: %v", ErrTransport, err)
	}

	return mapHTTPError(resp)
}

// QueryEntries implements [RemoteStore]. It GETs
// /rest/v1/cookie_entries?domain=ilike.*<domain>*&select=...; the ilike
// wildcard gives the same bidirectional-substring semantics the write
// side uses for its explicit domain list.
func (s *supabaseAdapter) QueryEntries(ctx context.Context, domain string) ([]models.CookieEntry, error) {
	req, err := s.authedRequest(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := req.
		SetQueryParam("domain", "ilike.*"+domain+"*").
		SetQueryParam("select", "encrypted_data,iv,salt,synced_at,domain").
		Get("/rest/v1/" + models.CookieEntry{}.TableName())
	if err != nil {
		return nil, fmt.Errorf("%w: query entries: %v", ErrTransport, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var entries []models.CookieEntry
	if err = json.Unmarshal(resp.Body(), &entries); err != nil {
		return nil, fmt.Errorf("decode entries response: %w", err)
	}

	return entries, nil
}

// ListEntrySummaries implements [RemoteStore].
func (s *supabaseAdapter) ListEntrySummaries(ctx context.Context) ([]models.EntrySummary, error) {
	req, err := s.authedRequest(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := req.
		SetQueryParam("select", "domain,cookie_count,has_auth_cookies,synced_at").
		Get("/rest/v1/" + models.CookieEntry{}.TableName())
	if err != nil {
		return nil, fmt.Errorf("%w: list entries: %v", ErrTransport, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var summaries []models.EntrySummary
	if err = json.Unmarshal(resp.Body(), &summaries); err != nil {
		return nil, fmt.Errorf("decode entry summaries: %w", err)
	}

	return summaries, nil
}

// AppendSyncLog implements [RemoteStore].
func (s *supabaseAdapter) AppendSyncLog(ctx context.Context, rec models.SyncLogRecord) error {
	req, err := s.authedRequest(ctx)
	if err != nil {
		return err
	}

	resp, err := req.
		SetBody(rec).
		Post("/rest/v1/" + rec.TableName())
	if err != nil {
		return fmt.Errorf("%w: append sync log: %v", ErrTransport, err)
	}

	return mapHTTPError(resp)
}
