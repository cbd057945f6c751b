package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"playground-client/internal/share"
)

// NewShareCmd creates the 'share' command: a shareable link for the
// most recent generation.
func NewShareCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "share",
		Short: "Print a shareable link for the most recent generation",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()

			// The current view is per-process; the newest history
			// entry is the durable notion of "latest"
			result := app.Session.LatestResult()
			if result == nil {
				app.Hydrator.RefreshHistory(cmd.Context())
				if history := app.Hydrator.History(); len(history) > 0 {
					result = &history[0]
				}
			}
			if result == nil {
				return fmt.Errorf("nothing to share: generate something first")
			}

			query := share.Encode(share.Link{
				DNA:    result.Fingerprint,
				Prompt: result.Prompt,
				Temp:   result.Parameters.Temperature,
				TopP:   result.Parameters.TopP,
			})
			fmt.Printf("%s/?%s\n", app.Config.Server.BaseURL, query)
			return nil
		},
	}
}
