package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// NewGenerateCmd creates the 'generate' command.
func NewGenerateCmd() *cobra.Command {
	var (
		temp     float64
		topP     float64
		model    string
		persona  string
		favorite bool
	)

	cmd := &cobra.Command{
		Use:   "generate <prompt>",
		Short: "Submit a generation request",
		Example: `  playground generate "Cosmic cats phasing between dimensions"
  playground generate --temp 1.8 --model mistral:latest "Neon forests"
  playground generate --favorite "Quantum poetry"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()

			applyParams(app, temp, topP,
				cmd.Flags().Changed("temp"), cmd.Flags().Changed("top-p"),
				model, persona)

			prompt := strings.Join(args, " ")
			result, err := app.Generator.Generate(cmd.Context(), prompt)
			if err != nil {
				return err
			}

			fmt.Println(result.Output)
			fmt.Println()
			fmt.Printf("DNA:   %s\n", result.Fingerprint)
			fmt.Printf("Model: %s  (%.1fs)\n", result.ModelUsed, result.GenerationTimeSeconds)

			if len(result.Audio) > 0 {
				if err := os.WriteFile("generation.mp3", result.Audio, 0o644); err != nil {
					return fmt.Errorf("writing generation.mp3: %w", err)
				}
				fmt.Println("Wrote voice audio to generation.mp3")
			}

			if favorite {
				if entry := app.Session.FavoriteCurrent(); entry != nil {
					fmt.Printf("Saved favorite #%d\n", entry.ID)
				}
			}

			return nil
		},
	}

	cmd.Flags().Float64Var(&temp, "temp", 1.3, "Sampling temperature [0,2]")
	cmd.Flags().Float64Var(&topP, "top-p", 0.9, "Nucleus sampling [0,1]")
	cmd.Flags().StringVar(&model, "model", "", "Model id (default from catalog)")
	cmd.Flags().StringVar(&persona, "persona", "", "Persona label")
	cmd.Flags().BoolVar(&favorite, "favorite", false, "Save the result as a favorite")

	return cmd
}

// NewBatchCmd creates the 'batch' command.
func NewBatchCmd() *cobra.Command {
	var (
		temp    float64
		topP    float64
		model   string
		persona string
	)

	cmd := &cobra.Command{
		Use:   "batch <prompt>...",
		Short: "Run several prompts sequentially with the same parameters",
		Long: `Each prompt is generated independently: one failure never loses
the rest of the batch. Results print in submission order.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()

			applyParams(app, temp, topP,
				cmd.Flags().Changed("temp"), cmd.Flags().Changed("top-p"),
				model, persona)

			results := app.Generator.GenerateBatch(cmd.Context(), args)
			for i, item := range results {
				fmt.Printf("--- [%d/%d] %s\n", i+1, len(results), item.Prompt)
				fmt.Println(item.Output)
				if item.Fingerprint != "" {
					fmt.Printf("DNA: %s\n", item.Fingerprint)
				}
				fmt.Println()
			}

			return nil
		},
	}

	cmd.Flags().Float64Var(&temp, "temp", 1.3, "Sampling temperature [0,2]")
	cmd.Flags().Float64Var(&topP, "top-p", 0.9, "Nucleus sampling [0,1]")
	cmd.Flags().StringVar(&model, "model", "", "Model id (default from catalog)")
	cmd.Flags().StringVar(&persona, "persona", "", "Persona label")

	return cmd
}
