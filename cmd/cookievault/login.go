package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// loginCmd verifies that the configured credentials and endpoint work by
// performing a full grant. Useful after first configuration; the daemon
// itself authenticates lazily.
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Verify the configured account against the remote",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := buildApp()
		if err != nil {
			return err
		}

		userID, err := a.session.UserID(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Printf("authenticated as %s (user %s)\n", a.cfg.Account.Email, userID)
		return nil
	},
}
