// Package cli wires the playground subsystem into cobra commands. The
// presentation here is deliberately thin; the interesting logic lives
// in the services it calls.
package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCmd builds the playground command tree.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "playground",
		Short: "Client for the AI Hallucination Playground",
		Long: `Interactive client for the AI Hallucination Playground: submit
generation requests, remix DNA fingerprints, and manage your local
library of favorite generations.`,
		SilenceUsage: true,
	}

	cmd.AddCommand(
		NewGenerateCmd(),
		NewBatchCmd(),
		NewVoiceCmd(),
		NewRemixCmd(),
		NewMutateCmd(),
		NewCompatCmd(),
		NewRecreateCmd(),
		NewFavoritesCmd(),
		NewHistoryCmd(),
		NewCommunityCmd(),
		NewSponsorsCmd(),
		NewStatsCmd(),
		NewShareCmd(),
		NewAnalyticsCmd(),
		NewStatusCmd(),
	)

	return cmd
}
