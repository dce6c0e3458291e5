package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/textprep/internal/core/domain"
	"github.com/custodia-labs/textprep/internal/extract"
)

var (
	normalisePlaceholders bool
	normaliseKeepEmojis   bool
	normaliseKeepWords    bool
)

var normaliseCmd = &cobra.Command{
	Use:     "normalise [file|-]",
	Aliases: []string{"normalize"},
	Short:   "Normalise text to its canonical form",
	Long: `Reads text from a file or stdin and prints its normalised form.

Normalisation strips markup, repairs encoding, lower-cases, expands
contractions and slang, collapses currency symbols and converts number
words such as "five lakh" into digits.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runNormalise,
}

var chunkJSON bool

var chunkCmd = &cobra.Command{
	Use:   "chunk [file|-]",
	Short: "Split normalised text into token windows",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runChunk,
}

func init() {
	for _, c := range []*cobra.Command{normaliseCmd, chunkCmd} {
		c.Flags().BoolVar(&normalisePlaceholders, "placeholders", false, "mask PII with placeholder tokens")
		c.Flags().BoolVar(&normaliseKeepEmojis, "keep-emojis", false, "replace emojis with <EMOJI> instead of deleting them")
		c.Flags().BoolVar(&normaliseKeepWords, "no-convert-words", false, "leave number words unconverted")
	}
	chunkCmd.Flags().BoolVar(&chunkJSON, "json", false, "output chunks as JSON")

	rootCmd.AddCommand(normaliseCmd)
	rootCmd.AddCommand(chunkCmd)
}

func runNormalise(cmd *cobra.Command, args []string) error {
	if err := requirePipeline(); err != nil {
		return err
	}

	text, _, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	out, err := pipelineService.Normalise(context.Background(), text, normaliseOptions(cmd))
	if err != nil {
		return fmt.Errorf("normalise failed: %w", err)
	}
	cmd.Println(out)
	return nil
}

func runChunk(cmd *cobra.Command, args []string) error {
	if err := requirePipeline(); err != nil {
		return err
	}

	text, _, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	chunks, err := pipelineService.Chunk(context.Background(), text, normaliseOptions(cmd))
	if err != nil {
		return fmt.Errorf("chunk failed: %w", err)
	}

	if chunkJSON {
		data, err := json.MarshalIndent(chunks, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal chunks: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(chunks) == 0 {
		cmd.Println("No chunks produced.")
		return nil
	}
	for i := range chunks {
		c := &chunks[i]
		cmd.Println(style.Section.Render(fmt.Sprintf("[%d] tokens %d-%d", c.ID, c.TokenSpan.Start, c.TokenSpan.End)))
		cmd.Println(c.Text)
		cmd.Println()
	}
	return nil
}

// normaliseOptions starts from the configured defaults and applies any
// flags the user set explicitly.
func normaliseOptions(cmd *cobra.Command) domain.NormaliseOptions {
	opts := normaliseDefaults()
	flags := cmd.Flags()
	if flags.Changed("placeholders") {
		opts.ReplaceWithPlaceholders = normalisePlaceholders
	}
	if flags.Changed("keep-emojis") {
		opts.RemoveEmojis = !normaliseKeepEmojis
	}
	if flags.Changed("no-convert-words") {
		opts.ConvertWords = !normaliseKeepWords
	}
	return opts
}

// readInput reads the file named by args[0], or stdin when it is absent or "-".
// Files in a known document format are reduced to their text first.
// The second return value is the source name.
func readInput(cmd *cobra.Command, args []string) (string, string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), "stdin", nil
	}

	res, err := extract.Default().ExtractFile(args[0])
	if err != nil {
		return "", "", err
	}
	return res.Text, args[0], nil
}
