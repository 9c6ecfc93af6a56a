package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true)
	faintStyle   = lipgloss.NewStyle().Faint(true)
)

var domainsCmd = &cobra.Command{
	Use:   "domains",
	Short: "List the domains stored in the vault",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := buildApp()
		if err != nil {
			return err
		}

		summaries, err := a.reader().ListDomains(cmd.Context())
		if err != nil {
			return err
		}
		if len(summaries) == 0 {
			fmt.Println(faintStyle.Render("vault is empty"))
			return nil
		}

		fmt.Printf("%-40s %8s %6s  %s\n",
			headingStyle.Render("DOMAIN"), headingStyle.Render("COOKIES"),
			headingStyle.Render("AUTH"), headingStyle.Render("SYNCED"))

		for _, s := range summaries {
			auth := ""
			if s.HasAuth {
				auth = "yes"
			}
			fmt.Printf("%-40s %8d %6s  %s\n",
				s.Domain, s.CookieCount, auth,
				faintStyle.Render(s.SyncedAt.Local().Format("2006-01-02 15:04")))
		}
		return nil
	},
}
