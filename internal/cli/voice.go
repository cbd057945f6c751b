package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// NewVoiceCmd creates the 'voice' command.
func NewVoiceCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:     "voice <text>",
		Short:   "Synthesize speech for a piece of text",
		Example: `  playground voice "Ola, mundo" --out greeting.mp3`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()

			audio, err := app.Generator.SynthesizeVoice(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}

			if err := os.WriteFile(out, audio, 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", out, err)
			}
			fmt.Printf("Wrote %d bytes to %s\n", len(audio), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "voice.mp3", "Output mp3 path")

	return cmd
}
