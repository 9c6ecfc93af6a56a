package service

import (
	"context"
	"sync"
	"time"

	"github.com/cookievault/go-cookie-vault/internal/logger"
)

// syncJob schedules SyncNow runs: a debounced trigger fed by Signal and a
// fixed-interval ticker as the durability backstop. Both paths funnel into
// a one-slot kick channel, which gives the required overlap semantics for
// free: a kick arriving while a run is in flight is queued (run once
// more), and further kicks while one is already queued are dropped.
type syncJob struct {
	engine       SyncEngine
	observations ObservationSource
	logger       *logger.Logger

	mu       sync.Mutex
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	debounce *Debouncer
	kicks    chan struct{}

	window     time.Duration
	authWindow time.Duration
}

// NewSyncJob creates a syncJob around the engine and observation source.
// The job is idle until Start is called.
func NewSyncJob(engine SyncEngine, observations ObservationSource, window, authWindow time.Duration, log *logger.Logger) SyncJob {
	return &syncJob{
		engine:       engine,
		observations: observations,
		logger:       log,
		window:       window,
		authWindow:   authWindow,
	}
}

// Start implements [SyncJob]. It stops any previously running job, then
// launches a background goroutine that runs a sync on every kick and every
// interval tick. If interval is zero or negative it defaults to 5 minutes.
// The goroutine exits when ctx is cancelled or Stop is called.
func (j *syncJob) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.kicks = make(chan struct{}, 1)
	kicks := j.kicks
	j.debounce = NewDebouncer(j.window, j.authWindow, func() {
		// Queue at most one pending run.
		select {
		case kicks <- struct{}{}:
		default:
		}
	})
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-kicks:
				j.runOnce(jobCtx)
			case <-t.C:
				j.runOnce(jobCtx)
			}
		}
	}()
}

// Signal implements [SyncJob].
func (j *syncJob) Signal(authClass bool) {
	j.mu.Lock()
	debounce := j.debounce
	j.mu.Unlock()

	if debounce != nil {
		debounce.Signal(authClass)
	}
}

// Stop implements [SyncJob]. It cancels the background goroutine's context
// and blocks until the goroutine has fully exited. Safe to call when the
// job is not running.
func (j *syncJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	debounce := j.debounce
	j.cancel = nil
	j.debounce = nil
	j.mu.Unlock()

	if debounce != nil {
		debounce.Stop()
	}
	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}

func (j *syncJob) runOnce(ctx context.Context) {
	observations, err := j.observations.Load(ctx)
	if err != nil {
		j.logger.Error().Err(err).Msg("load observations failed")
		return
	}

	_ = j.engine.SyncNow(ctx, observations)
}
