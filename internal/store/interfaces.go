package store

import (
	"context"

	"github.com/cookievault/go-cookie-vault/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/status_store_mock.go -package=mock

// StatusStore persists the outcome of sync runs locally so external
// tooling (status endpoint, CLI) can report the last-sync state without
// touching the remote. Writes are best-effort from the engine's point of
// view: a status write failure never fails a sync.
type StatusStore interface {
	// RecordRun appends one finished run.
	RecordRun(ctx context.Context, run models.SyncRun) error

	// LastRun returns the most recent run, or found=false when the
	// history is empty.
	LastRun(ctx context.Context) (run models.SyncRun, found bool, err error)

	// ListRuns returns up to limit runs, newest first.
	ListRuns(ctx context.Context, limit int) ([]models.SyncRun, error)

	// Close releases the underlying database handle.
	Close() error
}
