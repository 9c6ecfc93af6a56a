package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"

	"github.com/cookievault/go-cookie-vault/internal/logger"
	"github.com/cookievault/go-cookie-vault/migrations"
	"github.com/cookievault/go-cookie-vault/models"
)

// statusStore is the sqlite-backed implementation of [StatusStore].
type statusStore struct {
	db     *sql.DB
	logger *logger.Logger
}

// NewStatusStore opens (or creates) the sqlite status database at dbPath
// and applies pending migrations. An empty dbPath selects an in-memory
// database whose history is lost on exit.
func NewStatusStore(dbPath string, log *logger.Logger) (StatusStore, error) {
	if dbPath == "" {
		dbPath = ":memory:"
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open status db: %w", err)
	}

	if err = migrations.Migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate status db: %w", err)
	}

	return &statusStore{db: db, logger: log}, nil
}

// newStatusStoreWithDB is the test seam for sqlmock.
func newStatusStoreWithDB(db *sql.DB, log *logger.Logger) *statusStore {
	return &statusStore{db: db, logger: log}
}

// RecordRun implements [StatusStore].
func (s *statusStore) RecordRun(ctx context.Context, run models.SyncRun) error {
	errorsJSON, err := json.Marshal(run.PerDomainErrors)
	if err != nil {
		return fmt.Errorf("marshal per-domain errors: %w", err)
	}

	query, args, err := sq.Insert("sync_runs").
		Columns("id", "status", "synced_domains", "synced_cookies", "per_domain_errors", "error", "started_at", "finished_at").
		Values(run.ID, string(run.Status), run.SyncedDomains, run.SyncedCookies, string(errorsJSON), run.Err,
			run.StartedAt.UTC().Format(time.RFC3339Nano), run.FinishedAt.UTC().Format(time.RFC3339Nano)).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert query: %w", err)
	}

	if _, err = s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

// LastRun implements [StatusStore].
func (s *statusStore) LastRun(ctx context.Context) (models.SyncRun, bool, error) {
	runs, err := s.ListRuns(ctx, 1)
	if err != nil {
		return models.SyncRun{}, false, err
	}
	if len(runs) == 0 {
		return models.SyncRun{}, false, nil
	}
	return runs[0], true, nil
}

// ListRuns implements [StatusStore].
func (s *statusStore) ListRuns(ctx context.Context, limit int) ([]models.SyncRun, error) {
	if limit <= 0 {
		limit = 50
	}

	query, args, err := sq.Select("id", "status", "synced_domains", "synced_cookies", "per_domain_errors", "error", "started_at", "finished_at").
		From("sync_runs").
		OrderBy("started_at DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	runs := make([]models.SyncRun, 0, limit)
	for rows.Next() {
		run, scanErr := scanRun(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		runs = append(runs, run)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, rowsErr)
	}

	return runs, nil
}

// Close implements [StatusStore].
func (s *statusStore) Close() error {
	return s.db.Close()
}

func scanRun(rows *sql.Rows) (models.SyncRun, error) {
	var (
		run         models.SyncRun
		status      string
		errorsJSON  string
		startedRaw  string
		finishedRaw string
	)

	if err := rows.Scan(&run.ID, &status, &run.SyncedDomains, &run.SyncedCookies, &errorsJSON, &run.Err, &startedRaw, &finishedRaw); err != nil {
		return models.SyncRun{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	run.Status = models.SyncStatus(status)

	if errorsJSON != "" && errorsJSON != "null" {
		if err := json.Unmarshal([]byte(errorsJSON), &run.PerDomainErrors); err != nil {
			return models.SyncRun{}, fmt.Errorf("decode per-domain errors: %w", err)
		}
	}

	started, err := time.Parse(time.RFC3339Nano, startedRaw)
	if err != nil {
		return models.SyncRun{}, fmt.Errorf("parse started_at: %w", err)
	}
	finished, err := time.Parse(time.RFC3339Nano, finishedRaw)
	if err != nil {
		return models.SyncRun{}, fmt.Errorf("parse finished_at: %w", err)
	}
	run.StartedAt = started
	run.FinishedAt = finished

	return run, nil
}
