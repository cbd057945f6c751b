package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"playground-client/internal/session"
)

// NewFavoritesCmd creates the 'favorites' command group.
func NewFavoritesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "favorites",
		Aliases: []string{"fav"},
		Short:   "Manage your local favorites (capacity 50, oldest evicted)",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List favorites, newest first",
			RunE: func(cmd *cobra.Command, args []string) error {
				app, err := newApp()
				if err != nil {
					return err
				}
				defer app.Close()

				favorites := app.Session.Favorites()
				if len(favorites) == 0 {
					fmt.Println("No favorites yet. Use 'generate --favorite' to save one.")
					return nil
				}

				for _, entry := range favorites {
					fmt.Printf("#%d  %s\n", entry.ID, entry.Timestamp.Format("2006-01-02 15:04"))
					fmt.Printf("  Prompt: %s\n", entry.Prompt)
					fmt.Printf("  Output: %s\n", entry.Output)
					fmt.Printf("  DNA:    %s\n\n", entry.Fingerprint)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "show <id>",
			Short: "Restore a favorite as the current generation and print it",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := strconv.ParseInt(args[0], 10, 64)
				if err != nil {
					return fmt.Errorf("invalid favorite id %q: %w", args[0], err)
				}

				app, err := newApp()
				if err != nil {
					return err
				}
				defer app.Close()

				for _, entry := range app.Session.Favorites() {
					if entry.ID != id {
						continue
					}
					app.Session.Restore(session.GenerationResult{
						Prompt:      entry.Prompt,
						Output:      entry.Output,
						Fingerprint: entry.Fingerprint,
						Parameters:  app.Session.Parameters(),
						Timestamp:   entry.Timestamp,
					})
					fmt.Printf("Prompt: %s\n", entry.Prompt)
					fmt.Println(entry.Output)
					fmt.Printf("DNA: %s\n", entry.Fingerprint)
					return nil
				}
				return fmt.Errorf("no favorite with id %d", id)
			},
		},
		&cobra.Command{
			Use:   "remove <id>",
			Short: "Remove a favorite by id",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := strconv.ParseInt(args[0], 10, 64)
				if err != nil {
					return fmt.Errorf("invalid favorite id %q: %w", args[0], err)
				}

				app, err := newApp()
				if err != nil {
					return err
				}
				defer app.Close()

				if !app.Session.RemoveFavorite(id) {
					return fmt.Errorf("no favorite with id %d", id)
				}
				fmt.Printf("Removed favorite #%d\n", id)
				return nil
			},
		},
	)

	return cmd
}

// NewHistoryCmd creates the 'history' command.
func NewHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show your generation history from the server",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()

			app.Hydrator.RefreshHistory(cmd.Context())
			history := app.Hydrator.History()
			if len(history) == 0 {
				fmt.Println("No history yet.")
				return nil
			}

			if limit > 0 && len(history) > limit {
				history = history[:limit]
			}
			for i, entry := range history {
				fmt.Printf("[%d] %s  (%s, %.1fs)\n", i+1, entry.Prompt, entry.ModelUsed, entry.GenerationTimeSeconds)
				fmt.Printf("    DNA: %s\n", entry.Fingerprint)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "Maximum entries to show (0 = all)")

	return cmd
}
