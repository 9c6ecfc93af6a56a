package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/cookievault/go-cookie-vault/internal/server"
	"github.com/cookievault/go-cookie-vault/internal/service"
	"github.com/cookievault/go-cookie-vault/internal/store"
)

var watchPollInterval time.Duration

// watchCmd runs the long-lived sync daemon: the observations file is
// polled for changes, change signals feed the debouncer, a periodic
// ticker backstops everything, and (when configured) the local status
// endpoint serves run history.
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the observations file and sync continuously",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := buildApp()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
		defer stop()

		statusStore, err := store.NewStatusStore(a.cfg.Status.DBPath, a.log)
		if err != nil {
			return err
		}
		defer statusStore.Close()

		source := service.NewFileObservationSource(a.cfg.Sync.ObservationsFile)
		engine := service.NewSyncEngine(a.cfg, a.envelope, a.remote, a.session, statusStore, a.log)
		job := service.NewSyncJob(engine, source,
			a.cfg.Sync.DebounceWindow, a.cfg.Sync.AuthDebounceWindow, a.log)

		job.Start(ctx, a.cfg.Sync.Interval)
		defer job.Stop()

		if a.cfg.Status.Address != "" {
			statusServer := server.NewStatusServer(a.cfg.Status.Address, statusStore, a.log)
			go statusServer.RunServer()
			defer statusServer.Shutdown()
		}

		a.log.Info().
			Str("file", a.cfg.Sync.ObservationsFile).
			Dur("interval", a.cfg.Sync.Interval).
			Msg("watching for cookie changes")

		watchFile(ctx, source, job)

		a.log.Info().Msg("shutting down")
		return nil
	},
}

func init() {
	watchCmd.Flags().DurationVar(&watchPollInterval, "poll", time.Second, "observations file poll interval")
}

// watchFile polls the observation file's mtime and feeds change signals
// into the job until ctx is cancelled. The collector gives no change
// notification of its own, so polling is the contract.
func watchFile(ctx context.Context, source *service.FileObservationSource, job service.SyncJob) {
	t := time.NewTicker(watchPollInterval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if source.Changed() {
				job.Signal(false)
			}
		}
	}
}
