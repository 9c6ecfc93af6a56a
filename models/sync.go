package models

import "time"

// SyncAction is the action kind recorded in the remote sync log.
type SyncAction string

const (
	SyncActionSync SyncAction = "sync"
)

// ClientType identifies the runtime that originated a sync run.
const ClientType = "go-cookie-vault"

// SyncLogRecord is one append-only audit row describing a completed sync
// run. Writes of this record are best-effort: a failure never fails the
// sync itself.
type SyncLogRecord struct {
	UserID      string     `json:"user_id"`
	VaultID     string     `json:"vault_id"`
	Action      SyncAction `json:"action"`
	DomainCount int        `json:"domain_count"`
	CookieCount int        `json:"cookie_count"`
	ClientType  string     `json:"client_type"`
}

// TableName returns the remote REST resource backing the SyncLogRecord model.
func (r SyncLogRecord) TableName() string {
	return "sync_log"
}

// SyncStatus classifies the outcome of one sync run.
type SyncStatus string

const (
	// SyncStatusNotConfigured means the engine is disabled or missing
	// required configuration. A legitimate steady state, not an error.
	SyncStatusNotConfigured SyncStatus = "not_configured"

	// SyncStatusSuccess means every included domain was synced.
	SyncStatusSuccess SyncStatus = "success"

	// SyncStatusPartial means some domains synced and some failed.
	SyncStatusPartial SyncStatus = "partial"

	// SyncStatusFailed means no domain synced, or the run could not start
	// (auth failure, vault resolution failure).
	SyncStatusFailed SyncStatus = "failed"
)

// SyncResult is the structured outcome of a single SyncNow run. The engine
// always resolves to one of these; it never panics out of a run.
type SyncResult struct {
	Status          SyncStatus        `json:"status"`
	SyncedDomains   int               `json:"synced_domains"`
	SyncedCookies   int               `json:"synced_cookies"`
	PerDomainErrors map[string]string `json:"per_domain_errors,omitempty"`
	Err             string            `json:"error,omitempty"`
	StartedAt       time.Time         `json:"started_at"`
	FinishedAt      time.Time         `json:"finished_at"`
}

// OK reports whether the run completed without any failure.
func (r SyncResult) OK() bool {
	return r.Status == SyncStatusSuccess || r.Status == SyncStatusNotConfigured
}

// SyncRun is one locally persisted sync-run record backing external status
// display. Stored in the local status database, never sent anywhere.
type SyncRun struct {
	ID              string            `json:"id"`
	Status          SyncStatus        `json:"status"`
	SyncedDomains   int               `json:"synced_domains"`
	SyncedCookies   int               `json:"synced_cookies"`
	PerDomainErrors map[string]string `json:"per_domain_errors,omitempty"`
	Err             string            `json:"error,omitempty"`
	StartedAt       time.Time         `json:"started_at"`
	FinishedAt      time.Time         `json:"finished_at"`
}
