package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"playground-client/internal/dna"
)

// NewRemixCmd creates the 'remix' command.
func NewRemixCmd() *cobra.Command {
	var point int

	cmd := &cobra.Command{
		Use:   "remix <dna-a> <dna-b>",
		Short: "Cross two DNA fingerprints into a new one",
		Long: `Deterministic crossover: the first half of dna-a joined with the
second half of dna-b. Same inputs always give the same result.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			remixed, err := dna.RemixAt(args[0], args[1], point)
			if err != nil {
				return err
			}
			fmt.Println(remixed)
			return nil
		},
	}

	cmd.Flags().IntVar(&point, "point", dna.DefaultCrossover, "Crossover point [1,63]")

	return cmd
}

// NewMutateCmd creates the 'mutate' command.
func NewMutateCmd() *cobra.Command {
	var rate float64

	cmd := &cobra.Command{
		Use:   "mutate <dna>",
		Short: "Apply random mutations to a DNA fingerprint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mutated, err := dna.Mutate(args[0], rate)
			if err != nil {
				return err
			}
			fmt.Println(mutated)
			return nil
		},
	}

	cmd.Flags().Float64Var(&rate, "rate", 0.1, "Per-character mutation probability [0,1]")

	return cmd
}

// NewCompatCmd creates the 'compat' command.
func NewCompatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compat <dna-a> <dna-b>",
		Short: "Analyze how well two fingerprints combine",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			compat, err := dna.Compatibility(args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Printf("Similarity:  %.2f%% (%d differing characters)\n", compat.Similarity, compat.Differences)
			fmt.Printf("Crossover:   %d\n", compat.RecommendedCrossover)
			fmt.Printf("Rating:      %s\n", compat.Rating)
			return nil
		},
	}
}

// NewRecreateCmd creates the 'recreate' command.
func NewRecreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "recreate <dna>",
		Short: "Ask the server to estimate parameters from a fingerprint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !dna.Validate(args[0]) {
				return fmt.Errorf("invalid DNA: want %d characters, got %d", dna.Length, len(args[0]))
			}

			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()

			decoded, err := app.API.Recreate(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Printf("Model: %s\n", decoded.Model)
			fmt.Printf("Temp:  %.1f  TopP: %.1f\n", decoded.Temp, decoded.TopP)
			if decoded.Prompt != "" {
				fmt.Printf("Prompt: %s\n", strings.TrimSpace(decoded.Prompt))
			}
			return nil
		},
	}
}
