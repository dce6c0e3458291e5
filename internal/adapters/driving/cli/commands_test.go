package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/textprep/internal/core/domain"
)

// execute runs the root command with args and stdin, returning its output.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		resetFlags(rootCmd)
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}

// resetFlags restores every flag to its default between runs.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func TestRootCmd_Use(t *testing.T) {
	assert.Equal(t, "textprep", rootCmd.Use)
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("verbose"))
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("config-dir"))
}

func TestRootCmd_Bootstrap(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	servicesSet = false
	pipelineService = nil
	var gotDir string
	SetBootstrap(func(dir string) (*Services, error) {
		gotDir = dir
		return &Services{Pipeline: &mockPipelineService{}}, nil
	})

	out, err := execute(t, "Hello", "--config-dir", "/tmp/conf", "normalise")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/conf", gotDir)
	assert.Contains(t, out, "hello")
}

func TestRootCmd_BootstrapError(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	servicesSet = false
	SetBootstrap(func(string) (*Services, error) {
		return nil, errors.New("bad config")
	})

	_, err := execute(t, "", "status", "doc-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad config")
}

func TestNormaliseCmd(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()

	t.Run("stdin with defaults", func(t *testing.T) {
		out, err := execute(t, "  HELLO World ", "normalise")
		require.NoError(t, err)
		assert.Equal(t, "hello world\n", out)
		assert.Equal(t, domain.DefaultNormaliseOptions(), ts.pipeline.lastOpts)
	})

	t.Run("flags override settings", func(t *testing.T) {
		_, err := execute(t, "x", "normalise", "-", "--placeholders", "--keep-emojis", "--no-convert-words")
		require.NoError(t, err)
		assert.Equal(t, domain.NormaliseOptions{
			ConvertWords:            false,
			RemoveEmojis:            false,
			ReplaceWithPlaceholders: true,
		}, ts.pipeline.lastOpts)
	})

	t.Run("settings supply defaults", func(t *testing.T) {
		ts.settings.settings.Normalise.ReplaceWithPlaceholders = true
		defer func() { ts.settings.settings.Normalise.ReplaceWithPlaceholders = false }()

		_, err := execute(t, "x", "normalise")
		require.NoError(t, err)
		assert.True(t, ts.pipeline.lastOpts.ReplaceWithPlaceholders)
	})

	t.Run("file argument", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "in.txt")
		require.NoError(t, os.WriteFile(path, []byte("FROM FILE"), 0o644))

		out, err := execute(t, "", "normalise", path)
		require.NoError(t, err)
		assert.Contains(t, out, "from file")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := execute(t, "", "normalise", filepath.Join(t.TempDir(), "none.txt"))
		assert.Error(t, err)
	})

	t.Run("service error", func(t *testing.T) {
		ts.pipeline.err = domain.ErrNormalisation
		defer func() { ts.pipeline.err = nil }()

		_, err := execute(t, "x", "normalise")
		assert.ErrorIs(t, err, domain.ErrNormalisation)
	})
}

func TestNormaliseCmd_NoService(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()
	pipelineService = nil

	_, err := execute(t, "x", "normalise")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pipeline service not configured")
}

func TestChunkCmd(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "one two", "chunk")
	require.NoError(t, err)
	assert.Contains(t, out, "[1] tokens 0-1")
	assert.Contains(t, out, "two")

	out, err = execute(t, "one two", "chunk", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"token_span"`)

	out, err = execute(t, "", "chunk")
	require.NoError(t, err)
	assert.Contains(t, out, "No chunks produced.")
}

func TestProcessCmd(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()

	path := filepath.Join(t.TempDir(), "mail.EML")
	msg := "Subject: Invoice\r\nContent-Type: text/plain\r\n\r\nInvoice Paid\r\n"
	require.NoError(t, os.WriteFile(path, []byte(msg), 0o644))

	out, err := execute(t, "", "process", path, "--business-id", "biz", "--region", "IN")
	require.NoError(t, err)

	assert.Contains(t, out, "Document doc-1")
	assert.Contains(t, out, "Positive")
	assert.Contains(t, out, "invoice (0.60)")
	assert.Contains(t, out, "3 dims")

	req := ts.pipeline.lastReq
	assert.Equal(t, "biz", req.Context.BusinessID)
	assert.Equal(t, "IN", req.Context.BusinessRegion)
	assert.Equal(t, "eml", req.Context.FileFormat)
	assert.Equal(t, path, req.Context.Source)
	assert.Equal(t, "unstructured", req.Context.DataType)
	assert.Equal(t, "Subject: Invoice\n\nInvoice Paid", req.Text)
}

func TestProcessCmd_JSON(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "hello", "process", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"document_id": "doc-1"`)
	assert.Contains(t, out, `"sentiment": "Positive"`)
}

func TestProfileShowCmd(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "", "profile", "show", "biz")
	require.NoError(t, err)
	assert.Contains(t, out, "Noise profile biz")
	assert.Contains(t, out, "invoice, order")

	out, err = execute(t, "", "profile", "show", "other")
	require.NoError(t, err)
	assert.Contains(t, out, "No noise profile for other yet.")

	out, err = execute(t, "", "profile", "show", "biz", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"noise_words"`)

	_, err = execute(t, "", "profile", "show")
	assert.Error(t, err)
}

func TestStatusCmd(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "", "status", "doc-1")
	require.NoError(t, err)
	assert.Contains(t, out, "failed")
	assert.Contains(t, out, "embedding service unavailable")

	_, err = execute(t, "", "status", "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSettingsCmd_Show(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "", "settings")
	require.NoError(t, err)
	assert.Contains(t, out, "Current Settings")
	assert.Contains(t, out, "512")
	assert.Contains(t, out, "cl100k_base")
	assert.Contains(t, out, "Configuration is valid.")

	ts.settings.validateErr = errors.New("overlap too large")
	out, err = execute(t, "", "settings", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Warning: overlap too large")
}

func TestSettingsCmd_Embedding(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()

	t.Run("flags", func(t *testing.T) {
		out, err := execute(t, "", "settings", "embedding", "--provider", "openai", "--api-key", "sk-test")
		require.NoError(t, err)
		assert.Contains(t, out, "OpenAI (cloud)")
		assert.Equal(t, domain.AIProviderOpenAI, ts.settings.provider)
		assert.Equal(t, "sk-test", ts.settings.apiKey)
	})

	t.Run("interactive", func(t *testing.T) {
		_, err := execute(t, "3\nsk-piped\n", "settings", "embedding")
		require.NoError(t, err)
		assert.Equal(t, domain.AIProviderOpenAI, ts.settings.provider)
		assert.Equal(t, "sk-piped", ts.settings.apiKey)
	})

	t.Run("unknown provider", func(t *testing.T) {
		_, err := execute(t, "", "settings", "embedding", "--provider", "cohere")
		assert.Error(t, err)
	})

	t.Run("validation failure", func(t *testing.T) {
		ts.settings.validateErr = domain.ErrEmbeddingUnavailable
		defer func() { ts.settings.validateErr = nil }()

		_, err := execute(t, "", "settings", "embedding", "--provider", "ollama")
		assert.ErrorIs(t, err, domain.ErrEmbeddingUnavailable)
	})
}

func TestSettingsCmd_Window(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "", "settings", "window", "256", "32")
	require.NoError(t, err)
	assert.Contains(t, out, "256 tokens with 32 overlap")
	assert.Equal(t, 256, ts.settings.settings.Chunker.ChunkSize)

	_, err = execute(t, "", "settings", "window", "100", "100")
	assert.ErrorIs(t, err, domain.ErrInvalidWindow)

	_, err = execute(t, "", "settings", "window", "big", "1")
	assert.Error(t, err)
}

func TestWatchCmd_BadDirectory(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	_, err := execute(t, "", "watch", filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestMCPServeCmd_RequiresPipeline(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()
	pipelineService = nil

	_, err := execute(t, "", "mcp", "serve")
	assert.Error(t, err)
}
