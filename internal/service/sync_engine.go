package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cookievault/go-cookie-vault/internal/adapter"
	"github.com/cookievault/go-cookie-vault/internal/config"
	"github.com/cookievault/go-cookie-vault/internal/crypto"
	"github.com/cookievault/go-cookie-vault/internal/logger"
	"github.com/cookievault/go-cookie-vault/internal/store"
	"github.com/cookievault/go-cookie-vault/models"
)

// syncEngine is the private implementation of [SyncEngine].
type syncEngine struct {
	cfg      *config.StructuredConfig
	envelope crypto.EnvelopeService
	remote   adapter.RemoteStore
	session  AuthSession
	status   store.StatusStore // nil disables local status persistence
	policy   InclusionPolicy

	// mu makes SyncNow non-reentrant: overlapping triggers run
	// sequentially, never concurrently against shared counters.
	mu      sync.Mutex
	vaultID string // cached after first successful resolution

	now    func() time.Time
	logger *logger.Logger
}

// NewSyncEngine wires the engine from its collaborators. statusStore may
// be nil when local status persistence is not wanted (one-shot CLI runs).
func NewSyncEngine(
	cfg *config.StructuredConfig,
	envelope crypto.EnvelopeService,
	remote adapter.RemoteStore,
	session AuthSession,
	statusStore store.StatusStore,
	log *logger.Logger,
) SyncEngine {
	mode, _ := models.ParseInclusionMode(cfg.Sync.Mode)
	return &syncEngine{
		cfg:      cfg,
		envelope: envelope,
		remote:   remote,
		session:  session,
		status:   statusStore,
		policy: InclusionPolicy{
			Mode:    mode,
			Domains: cfg.Sync.Domains,
		},
		now:    time.Now,
		logger: log,
	}
}

// SyncNow implements [SyncEngine]. See the interface for the contract;
// the step numbering below follows the sync algorithm:
// policy load, vault resolution, per-domain inclusion, per-domain
// encrypt+upsert with isolated failures, best-effort audit log,
// best-effort status persistence.
func (e *syncEngine) SyncNow(ctx context.Context, observations map[string][]models.Cookie) models.SyncResult {
	e.mu.Lock()
	defer e.mu.Unlock()

	result := models.SyncResult{StartedAt: e.now().UTC()}

	// Disabled or unconfigured is a legitimate steady state.
	if !e.cfg.SyncEnabled() || !e.cfg.Configured() {
		result.Status = models.SyncStatusNotConfigured
		result.FinishedAt = e.now().UTC()
		e.logger.Debug().Msg("sync skipped: not configured")
		return result
	}

	userID, err := e.session.UserID(ctx)
	if err != nil {
		return e.finish(ctx, e.fail(result, err))
	}

	vaultID, err := e.resolveVault(ctx, userID)
	if err != nil {
		return e.finish(ctx, e.fail(result, err))
	}

	included := e.includedDomains(observations)

	result.PerDomainErrors = make(map[string]string)
	for _, domain := range included {
		cookies := observations[domain]
		if err := e.syncDomain(ctx, vaultID, userID, domain, cookies); err != nil {
			// One bad domain must not block the rest.
			result.PerDomainErrors[domain] = err.Error()
			e.logger.Error().Err(err).Str("domain", domain).Msg("domain sync failed")
			continue
		}
		result.SyncedDomains++
		result.SyncedCookies += len(cookies)
	}

	switch {
	case len(result.PerDomainErrors) == 0:
		result.Status = models.SyncStatusSuccess
	case result.SyncedDomains > 0:
		result.Status = models.SyncStatusPartial
	default:
		result.Status = models.SyncStatusFailed
	}
	if len(result.PerDomainErrors) == 0 {
		result.PerDomainErrors = nil
	}

	// Best-effort audit record; its failure never fails the run.
	if result.SyncedDomains > 0 {
		logRec := models.SyncLogRecord{
			UserID:      userID,
			VaultID:     vaultID,
			Action:      models.SyncActionSync,
			DomainCount: result.SyncedDomains,
			CookieCount: result.SyncedCookies,
			ClientType:  models.ClientType,
		}
		if err := e.remote.AppendSyncLog(ctx, logRec); err != nil {
			e.logger.Warn().Err(err).Msg("sync log append failed")
		}
	}

	e.logger.Info().
		Str("status", string(result.Status)).
		Int("domains", result.SyncedDomains).
		Int("cookies", result.SyncedCookies).
		Int("errors", len(result.PerDomainErrors)).
		Msg("sync finished")

	return e.finish(ctx, result)
}

// fail closes a result that could not get past setup (auth or vault
// resolution). Subsequent triggers retry from scratch.
func (e *syncEngine) fail(result models.SyncResult, err error) models.SyncResult {
	result.Status = models.SyncStatusFailed
	result.Err = err.Error()
	e.logger.Error().Err(err).Msg("sync failed before processing domains")
	return result
}

// finish stamps the result and persists it for status reporting.
func (e *syncEngine) finish(ctx context.Context, result models.SyncResult) models.SyncResult {
	result.FinishedAt = e.now().UTC()

	if e.status != nil {
		run := models.SyncRun{
			ID:              uuid.NewString(),
			Status:          result.Status,
			SyncedDomains:   result.SyncedDomains,
			SyncedCookies:   result.SyncedCookies,
			PerDomainErrors: result.PerDomainErrors,
			Err:             result.Err,
			StartedAt:       result.StartedAt,
			FinishedAt:      result.FinishedAt,
		}
		if err := e.status.RecordRun(ctx, run); err != nil {
			e.logger.Warn().Err(err).Msg("status record failed")
		}
	}

	return result
}

// resolveVault returns the target vault id, creating the vault on first
// use. The id is cached for the process lifetime after the first hit.
func (e *syncEngine) resolveVault(ctx context.Context, userID string) (string, error) {
	if e.vaultID != "" {
		return e.vaultID, nil
	}

	name := e.cfg.Sync.VaultName
	if name == "" {
		name = models.DefaultVaultName
	}

	vault, found, err := e.remote.FindVault(ctx, name)
	if err != nil {
		return "", err
	}
	if !found {
		vault, err = e.remote.CreateVault(ctx, userID, name)
		if err != nil {
			return "", err
		}
		e.logger.Info().Str("vault", name).Msg("vault created")
	}

	e.vaultID = vault.ID
	return e.vaultID, nil
}

// includedDomains applies the inclusion policy and returns the surviving
// domains sorted, so runs are deterministic and logs are stable.
func (e *syncEngine) includedDomains(observations map[string][]models.Cookie) []string {
	included := make([]string, 0, len(observations))
	for domain, cookies := range observations {
		if e.policy.Include(domain, cookies) {
			included = append(included, domain)
		}
	}
	sort.Strings(included)
	return included
}

// syncDomain envelopes one domain's cookies and upserts its entry.
func (e *syncEngine) syncDomain(ctx context.Context, vaultID, userID, domain string, cookies []models.Cookie) error {
	env, err := e.envelope.Encrypt(cookies, e.cfg.Passphrase)
	if err != nil {
		return err
	}

	entry := models.CookieEntry{
		VaultID:       vaultID,
		UserID:        userID,
		Domain:        domain,
		EncryptedData: env.Ciphertext,
		IV:            env.IV,
		Salt:          env.Salt,
		CookieCount:   len(cookies),
		HasAuth:       e.policy.HasAuthCookie(cookies),
		ExpiresAt:     earliestExpiry(cookies),
		SyncedAt:      e.now().UTC(),
	}

	return e.remote.UpsertEntry(ctx, entry)
}

// earliestExpiry returns the soonest expiration among the batch, or nil
// when every cookie is a session cookie.
func earliestExpiry(cookies []models.Cookie) *time.Time {
	var earliest *time.Time
	for _, c := range cookies {
		exp, ok := c.Expiry()
		if !ok {
			continue
		}
		if earliest == nil || exp.Before(*earliest) {
			e := exp
			earliest = &e
		}
	}
	return earliest
}
