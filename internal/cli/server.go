package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// NewStatusCmd creates the 'status' command.
func NewStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check the playground server's health",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()

			health, err := app.API.Health(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Printf("Status:   %s\n", health.Status)
			if len(health.Features) > 0 {
				fmt.Printf("Features: %s\n", strings.Join(health.Features, ", "))
			}
			return nil
		},
	}
}

// NewAnalyticsCmd creates the 'analytics' command.
func NewAnalyticsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analytics",
		Short: "Show server-wide usage analytics",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()

			analytics, err := app.API.Analytics(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Printf("Users:       %d\n", analytics.TotalUsers)
			fmt.Printf("Generations: %d\n", analytics.TotalGenerations)
			if len(analytics.PopularModels) > 0 {
				fmt.Println("Popular models:")
				for _, m := range analytics.PopularModels {
					fmt.Printf("  %-24s %d\n", m.Model, m.Count)
				}
			}
			if len(analytics.RecentActivity) > 0 {
				fmt.Println("Recent activity:")
				for _, d := range analytics.RecentActivity {
					fmt.Printf("  %s  %d\n", d.Date, d.Count)
				}
			}
			return nil
		},
	}
}
