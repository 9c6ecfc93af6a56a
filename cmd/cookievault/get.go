package main

import (
	"encoding/json"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	getMaxAge     time.Duration
	getAutomation bool
)

var getCmd = &cobra.Command{
	Use:   "get <domain>",
	Short: "Fetch and decrypt the stored cookies for a domain",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := buildApp()
		if err != nil {
			return err
		}

		reader := a.reader()
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")

		if getAutomation {
			cookies, err := reader.AutomationCookies(cmd.Context(), args[0], getMaxAge)
			if err != nil {
				return err
			}
			return enc.Encode(cookies)
		}

		cookies, err := reader.GetCookies(cmd.Context(), args[0], getMaxAge)
		if err != nil {
			return err
		}
		return enc.Encode(cookies)
	},
}

func init() {
	getCmd.Flags().DurationVar(&getMaxAge, "max-age", 0, "skip entries synced longer ago than this (0 = no limit)")
	getCmd.Flags().BoolVar(&getAutomation, "automation", false, "emit in browser-automation format (normalized sameSite, expires)")
}
