package main

import (
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
)

var (
	headerMaxAge time.Duration
	headerCopy   bool
)

var headerCmd = &cobra.Command{
	Use:   "header <domain>",
	Short: "Print the Cookie header value for a domain",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := buildApp()
		if err != nil {
			return err
		}

		header, err := a.reader().CookieHeader(cmd.Context(), args[0], headerMaxAge)
		if err != nil {
			return err
		}
		if header == "" {
			return fmt.Errorf("no cookies stored for %q", args[0])
		}

		if headerCopy {
			if err := clipboard.WriteAll(header); err != nil {
				return fmt.Errorf("copy to clipboard: %w", err)
			}
			fmt.Println("Cookie header copied to clipboard")
			return nil
		}

		fmt.Println(header)
		return nil
	},
}

func init() {
	headerCmd.Flags().DurationVar(&headerMaxAge, "max-age", 0, "skip entries synced longer ago than this (0 = no limit)")
	headerCmd.Flags().BoolVarP(&headerCopy, "copy", "c", false, "copy to clipboard instead of printing")
}
