package main

import (
	"github.com/spf13/cobra"

	"github.com/cookievault/go-cookie-vault/internal/adapter"
	"github.com/cookievault/go-cookie-vault/internal/config"
	"github.com/cookievault/go-cookie-vault/internal/crypto"
	"github.com/cookievault/go-cookie-vault/internal/logger"
	"github.com/cookievault/go-cookie-vault/internal/service"
)

var (
	flagConfig       string
	flagVerbose      bool
	flagVault        string
	flagMode         string
	flagObservations string
	flagVersion      bool

	rootCmd = &cobra.Command{
		Use:   "cookievault",
		Short: "Encrypted cookie sync between browsing runtimes",
		Long: `cookievault syncs browser cookies to a remote vault, encrypted
client-side under a user-held passphrase, and reads them back for
automation runtimes. The remote never sees plaintext.`,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if flagVersion {
				printBuildInfo()
				return nil
			}
			return cmd.Help()
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to JSON config file")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flagVault, "vault", "", "vault name (default \"default\")")
	rootCmd.PersistentFlags().StringVar(&flagMode, "mode", "", "domain inclusion mode: authOnlyDomains, explicitDomainList, allDomains")
	rootCmd.PersistentFlags().StringVar(&flagObservations, "observations", "", "path to the collector's observations JSON file")
	rootCmd.Flags().BoolVar(&flagVersion, "version", false, "print build info and exit")

	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(headerCmd)
	rootCmd.AddCommand(domainsCmd)
	rootCmd.AddCommand(loginCmd)
}

// flagOverrides maps the CLI flags onto a config override set; env
// variables still win over these per the merge order.
func flagOverrides() *config.StructuredConfig {
	overrides := &config.StructuredConfig{JSONFilePath: flagConfig}
	overrides.Sync.VaultName = flagVault
	overrides.Sync.Mode = flagMode
	overrides.Sync.ObservationsFile = flagObservations
	return overrides
}

// app bundles the wired collaborators behind every subcommand.
type app struct {
	cfg      *config.StructuredConfig
	log      *logger.Logger
	remote   adapter.RemoteStore
	session  service.AuthSession
	envelope crypto.EnvelopeService
}

// buildApp loads configuration and wires the remote-facing collaborators.
// Commands that talk to the remote require full configuration.
func buildApp() (*app, error) {
	cfg, err := config.GetStructuredConfig(flagOverrides())
	if err != nil {
		return nil, err
	}

	log := logger.NewConsoleLogger("cookievault", flagVerbose)

	if !cfg.Configured() {
		return nil, service.ErrNotConfigured
	}

	supabase, err := adapter.NewSupabaseAdapter(cfg.Remote, log)
	if err != nil {
		return nil, err
	}

	session := service.NewAuthSession(supabase, cfg.Account, log)
	supabase.SetTokenSource(session)

	return &app{
		cfg:      cfg,
		log:      log,
		remote:   supabase,
		session:  session,
		envelope: crypto.NewEnvelopeService(),
	}, nil
}

func (a *app) reader() service.VaultReader {
	return service.NewVaultReader(a.remote, a.envelope, a.cfg.Passphrase, a.log)
}
