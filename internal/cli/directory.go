package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"playground-client/internal/playground"
)

// NewCommunityCmd creates the 'community' command group.
func NewCommunityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "community",
		Short: "Browse and contribute to the community prompt directory",
	}

	cmd.AddCommand(newCommunityListCmd(), newCommunityShareCmd())

	return cmd
}

func newCommunityListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List shared community prompts",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()

			app.Hydrator.RefreshCommunity(cmd.Context())
			prompts := app.Hydrator.Community()
			if len(prompts) == 0 {
				fmt.Println("No community prompts available.")
				return nil
			}

			for _, p := range prompts {
				marker := " "
				if p.IsFeatured {
					marker = "*"
				}
				fmt.Printf("%s %s  (%d likes)\n", marker, p.Title, p.Likes)
				fmt.Printf("  %s\n", p.Prompt)
				if len(p.Tags) > 0 {
					fmt.Printf("  tags: %s\n", strings.Join(p.Tags, ", "))
				}
				fmt.Println()
			}
			return nil
		},
	}
}

func newCommunityShareCmd() *cobra.Command {
	var (
		title       string
		description string
		tags        string
	)

	cmd := &cobra.Command{
		Use:   "share <prompt>",
		Short: "Share a prompt with the community",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if title == "" {
				return fmt.Errorf("--title is required")
			}

			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()

			err = app.API.SharePrompt(cmd.Context(), playground.SharePromptRequest{
				UserID:      app.Session.UserID(),
				Title:       title,
				Prompt:      strings.Join(args, " "),
				Description: description,
				Tags:        tags,
			})
			if err != nil {
				return err
			}

			fmt.Println("Prompt shared successfully!")
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Title for the shared prompt")
	cmd.Flags().StringVar(&description, "description", "", "Optional description")
	cmd.Flags().StringVar(&tags, "tags", "", "Comma-separated tags")

	return cmd
}

// NewSponsorsCmd creates the 'sponsors' command.
func NewSponsorsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sponsors",
		Short: "Show the project's sponsors",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()

			app.Hydrator.RefreshSponsors(cmd.Context())
			sponsors := app.Hydrator.Sponsors()
			if len(sponsors) == 0 {
				fmt.Println("No sponsors listed.")
				return nil
			}

			for _, s := range sponsors {
				fmt.Printf("[%s] %s — %s\n", s.Tier, s.Name, s.Message)
				if s.WebsiteURL != "" {
					fmt.Printf("  %s\n", s.WebsiteURL)
				}
			}
			return nil
		},
	}
}

// NewStatsCmd creates the 'stats' command.
func NewStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show your usage counters",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()

			app.Hydrator.RefreshStats(cmd.Context())
			usage := app.Session.Usage()

			fmt.Printf("Daily:   %s\n", formatUsage(usage.DailyUsage, usage.DailyLimit))
			fmt.Printf("Monthly: %s\n", formatUsage(usage.MonthlyUsage, usage.MonthlyLimit))
			fmt.Printf("Total:   %d\n", usage.TotalUsage)
			return nil
		},
	}
}

func formatUsage(used, limit int) string {
	if limit == playground.Unlimited {
		return fmt.Sprintf("%d (unlimited)", used)
	}
	return fmt.Sprintf("%d / %d", used, limit)
}
