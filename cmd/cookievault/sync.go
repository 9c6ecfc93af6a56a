package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cookievault/go-cookie-vault/internal/service"
	"github.com/cookievault/go-cookie-vault/models"
)

var syncJSON bool

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run one sync of the observations file to the remote vault",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := buildApp()
		if err != nil {
			return err
		}

		source := service.NewFileObservationSource(a.cfg.Sync.ObservationsFile)
		observations, err := source.Load(cmd.Context())
		if err != nil {
			return err
		}
		if len(observations) == 0 {
			a.log.Warn().Str("file", a.cfg.Sync.ObservationsFile).Msg("no observations to sync")
		}

		engine := service.NewSyncEngine(a.cfg, a.envelope, a.remote, a.session, nil, a.log)
		result := engine.SyncNow(cmd.Context(), observations)

		if err := printResult(result); err != nil {
			return err
		}
		if result.Status == models.SyncStatusFailed {
			os.Exit(1)
		}
		return nil
	},
}

func init() {
	syncCmd.Flags().BoolVar(&syncJSON, "json", false, "print the result as JSON")
}

func printResult(result models.SyncResult) error {
	if syncJSON {
		return json.NewEncoder(os.Stdout).Encode(result)
	}

	fmt.Printf("status: %s\n", result.Status)
	fmt.Printf("domains synced: %d\n", result.SyncedDomains)
	fmt.Printf("cookies synced: %d\n", result.SyncedCookies)
	for domain, msg := range result.PerDomainErrors {
		fmt.Printf("failed %s: %s\n", domain, msg)
	}
	if result.Err != "" {
		fmt.Printf("error: %s\n", result.Err)
	}
	return nil
}
