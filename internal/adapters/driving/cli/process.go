package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/textprep/internal/core/domain"
	"github.com/custodia-labs/textprep/internal/extract"
)

var (
	processDocumentID   string
	processBusinessID   string
	processRegion       string
	processSubscription string
	processDataType     string
	processJSON         bool
)

var processCmd = &cobra.Command{
	Use:   "process [file|-]",
	Short: "Run a document through the full pipeline",
	Long: `Normalises a document, splits it into chunks, extracts ranked keywords
and sentiment for each chunk, attaches embeddings when a provider is
configured, and stores the result.

With --business-id the tenant's noise profile is updated as well.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runProcess,
}

func init() {
	processCmd.Flags().StringVar(&processDocumentID, "document-id", "", "document identifier (generated when empty)")
	processCmd.Flags().StringVarP(&processBusinessID, "business-id", "b", "", "tenant identifier")
	processCmd.Flags().StringVar(&processRegion, "region", "", "tenant region")
	processCmd.Flags().StringVar(&processSubscription, "subscription", "", "tenant subscription type")
	processCmd.Flags().StringVar(&processDataType, "data-type", "unstructured", "content classification")
	processCmd.Flags().BoolVar(&processJSON, "json", false, "output the result as JSON")
	processCmd.Flags().BoolVar(&normalisePlaceholders, "placeholders", false, "mask PII with placeholder tokens")
	processCmd.Flags().BoolVar(&normaliseKeepEmojis, "keep-emojis", false, "replace emojis with <EMOJI> instead of deleting them")
	processCmd.Flags().BoolVar(&normaliseKeepWords, "no-convert-words", false, "leave number words unconverted")
	rootCmd.AddCommand(processCmd)
}

func runProcess(cmd *cobra.Command, args []string) error {
	if err := requirePipeline(); err != nil {
		return err
	}

	text, source, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	req := domain.ProcessRequest{
		DocumentID: processDocumentID,
		Text:       text,
		Options:    normaliseOptions(cmd),
		Context: domain.ProcessingContext{
			BusinessID:       processBusinessID,
			BusinessRegion:   processRegion,
			SubscriptionType: processSubscription,
			DataType:         processDataType,
			FileFormat:       extract.Format(source),
			Source:           source,
		},
	}

	res, err := pipelineService.Process(context.Background(), req)
	if err != nil {
		return fmt.Errorf("process failed: %w", err)
	}

	if processJSON {
		data, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal result: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	outputProcessResult(cmd, res)
	return nil
}

func outputProcessResult(cmd *cobra.Command, res *domain.ProcessResult) {
	cmd.Println(title("Document " + res.DocumentID))
	cmd.Println(field("Run", res.RunID))
	cmd.Println(field("Chunks", len(res.Chunks)))
	cmd.Println(field("Duration", res.Duration.Round(time.Millisecond)))
	cmd.Println()

	for i := range res.Chunks {
		c := &res.Chunks[i]
		cmd.Println(style.Section.Render(fmt.Sprintf("[%d] %s", c.ID, c.Sentiment.Label)))
		cmd.Println(style.Muted.Render(truncate(c.Text, 120)))
		if kws := topKeywords(c.Metadata.RankedKeywords, 8); kws != "" {
			cmd.Println(field("Keywords", kws))
		}
		if len(c.Embedding) > 0 {
			cmd.Println(field("Embedding", fmt.Sprintf("%d dims", len(c.Embedding))))
		}
		cmd.Println()
	}
}

func topKeywords(ranked []domain.RankedKeyword, n int) string {
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	parts := make([]string, len(ranked))
	for i, rk := range ranked {
		parts[i] = fmt.Sprintf("%s (%.2f)", rk.Keyword, rk.Score)
	}
	return strings.Join(parts, ", ")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
