package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/textprep/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure normalisation, chunking, annotation, embedding and
storage settings.

Settings live in config.toml under the config directory. Any key can be
overridden with a TEXTPREP_<KEY> environment variable, for example
TEXTPREP_EMBEDDING_API_KEY.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var (
	embeddingProvider string
	embeddingModel    string
	embeddingAPIKey   string
)

var settingsEmbeddingCmd = &cobra.Command{
	Use:   "embedding",
	Short: "Configure embedding provider",
	Long: `Configure the provider used to attach embedding vectors to chunks.

Providers:
  none    - no embeddings
  ollama  - local Ollama instance
  openai  - OpenAI API (requires an API key)

Without --provider the command prompts for one.`,
	RunE: runSettingsEmbedding,
}

var settingsWindowCmd = &cobra.Command{
	Use:   "window [chunk-size] [overlap]",
	Short: "Set the chunker token window",
	Args:  cobra.ExactArgs(2),
	RunE:  runSettingsWindow,
}

func init() {
	settingsEmbeddingCmd.Flags().StringVar(&embeddingProvider, "provider", "", "embedding provider (none, ollama, openai)")
	settingsEmbeddingCmd.Flags().StringVar(&embeddingModel, "model", "", "embedding model (default per provider)")
	settingsEmbeddingCmd.Flags().StringVar(&embeddingAPIKey, "api-key", "", "API key (prompted when required and not given)")

	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsEmbeddingCmd)
	settingsCmd.AddCommand(settingsWindowCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println(title("Current Settings"))
	cmd.Println()

	cmd.Println(style.Section.Render("[Normalise]"))
	cmd.Println(field("Words", yesNo(settings.Normalise.ConvertWords)))
	cmd.Println(field("Emojis", removeKeep(settings.Normalise.RemoveEmojis)))
	cmd.Println(field("PII masking", yesNo(settings.Normalise.ReplaceWithPlaceholders)))
	cmd.Println()

	cmd.Println(style.Section.Render("[Chunker]"))
	cmd.Println(field("Chunk size", settings.Chunker.ChunkSize))
	cmd.Println(field("Overlap", settings.Chunker.Overlap))
	cmd.Println(field("Encoding", settings.Chunker.Encoding))
	cmd.Println()

	cmd.Println(style.Section.Render("[Annotation]"))
	cmd.Println(field("Annotator", settings.Annotator.Backend))
	cmd.Println(field("Sentiment", settings.Sentiment.Backend))
	cmd.Println(field("Noise words", settings.Metadata.MaxNoiseWords))
	cmd.Println()

	cmd.Println(style.Section.Render("[Embedding]"))
	cmd.Println(field("Provider", settings.Embedding.Provider.Description()))
	if settings.Embedding.Provider != domain.AIProviderNone {
		cmd.Println(field("Model", settings.Embedding.Model))
	}
	if settings.Embedding.Provider == domain.AIProviderOllama {
		cmd.Println(field("Base URL", settings.Embedding.BaseURL))
	}
	if settings.Embedding.Provider.RequiresAPIKey() {
		key := "(not set)"
		if settings.Embedding.APIKey != "" {
			key = maskAPIKey(settings.Embedding.APIKey)
		}
		cmd.Println(field("API Key", key))
	}
	cmd.Println()

	cmd.Println(style.Section.Render("[Storage]"))
	cmd.Println(field("Backend", settings.Storage.Backend))
	cmd.Println(field("Profiles", settings.Storage.ProfileBackend))
	if settings.Storage.DataDir != "" {
		cmd.Println(field("Data dir", settings.Storage.DataDir))
	}
	cmd.Println(field("Retries", settings.Retry.MaxAttempts))
	cmd.Println()

	if err := settingsService.Validate(); err != nil {
		cmd.Println(style.Warning.Render(fmt.Sprintf("Warning: %v", err)))
		cmd.Println("Run 'textprep settings embedding' or 'textprep settings window' to fix it.")
	} else {
		cmd.Println(style.Success.Render("Configuration is valid."))
	}

	return nil
}

func runSettingsEmbedding(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	reader := bufio.NewReader(cmd.InOrStdin())

	provider := domain.AIProvider(embeddingProvider)
	if embeddingProvider == "" {
		providers := []domain.AIProvider{domain.AIProviderNone, domain.AIProviderOllama, domain.AIProviderOpenAI}
		cmd.Println("Select embedding provider:")
		for i, p := range providers {
			cmd.Printf("  %d. %s\n", i+1, p.Description())
		}
		cmd.Print("\nEnter choice [1]: ")
		provider = providers[parseChoice(readLine(reader), len(providers), 1)-1]
	}
	if !provider.IsValid() {
		return fmt.Errorf("unknown provider %q", embeddingProvider)
	}

	apiKey := embeddingAPIKey
	if provider.RequiresAPIKey() && apiKey == "" {
		cmd.Print("API key: ")
		apiKey = readPassword(cmd.InOrStdin(), reader)
		cmd.Println()
	}

	if err := settingsService.SetEmbeddingProvider(provider, embeddingModel, apiKey); err != nil {
		return fmt.Errorf("failed to set embedding provider: %w", err)
	}

	cmd.Print("Validating configuration... ")
	if err := settingsService.Validate(); err != nil {
		cmd.Println(style.Error.Render("FAILED"))
		return fmt.Errorf("embedding configuration validation failed: %w", err)
	}
	cmd.Println(style.Success.Render("OK"))

	cmd.Printf("Embedding provider configured: %s\n", provider.Description())
	return nil
}

func runSettingsWindow(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	size, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid chunk size %q", args[0])
	}
	overlap, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid overlap %q", args[1])
	}

	if err := settingsService.SetChunkWindow(size, overlap); err != nil {
		return fmt.Errorf("failed to set chunk window: %w", err)
	}
	cmd.Printf("Chunk window set to %d tokens with %d overlap\n", size, overlap)
	return nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

// readPassword reads without echo when in is a terminal, otherwise it
// reads a line from reader.
func readPassword(in io.Reader, reader *bufio.Reader) string {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		password, err := term.ReadPassword(int(f.Fd()))
		if err == nil {
			return string(password)
		}
	}
	return readLine(reader)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func removeKeep(remove bool) string {
	if remove {
		return "remove"
	}
	return "placeholder"
}
