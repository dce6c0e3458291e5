package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/textprep/internal/adapters/driven/config/file"
	"github.com/custodia-labs/textprep/internal/core/domain"
)

func TestOpenStores(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		cfg     domain.StorageSettings
		closers int
		wantErr error
	}{
		{"memory", domain.StorageSettings{Backend: domain.StorageMemory, ProfileBackend: domain.StorageMemory}, 0, nil},
		{"sqlite", domain.StorageSettings{Backend: domain.StorageSQLite, ProfileBackend: domain.StorageSQLite, DataDir: dir}, 1, nil},
		{"memory with file profiles", domain.StorageSettings{Backend: domain.StorageMemory, ProfileBackend: domain.StorageFile, DataDir: dir}, 0, nil},
		{"memory with sqlite profiles", domain.StorageSettings{Backend: domain.StorageMemory, ProfileBackend: domain.StorageSQLite, DataDir: dir}, 1, nil},
		{"unknown backend", domain.StorageSettings{Backend: "redis"}, 0, domain.ErrUnsupportedType},
		{"file chunks", domain.StorageSettings{Backend: domain.StorageFile}, 0, domain.ErrUnsupportedType},
		{"unknown profile backend", domain.StorageSettings{Backend: domain.StorageMemory, ProfileBackend: "s3"}, 0, domain.ErrUnsupportedType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, err := openStores(tt.cfg)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, st.chunks)
			assert.NotNil(t, st.statuses)
			assert.NotNil(t, st.profiles)
			assert.Len(t, st.closers, tt.closers)
			for _, c := range st.closers {
				assert.NoError(t, c())
			}
		})
	}
}

func TestBuild_EndToEnd(t *testing.T) {
	configDir := t.TempDir()
	dataDir := filepath.Join(t.TempDir(), "data")

	cfg, err := file.NewConfigStore(configDir)
	require.NoError(t, err)
	require.NoError(t, cfg.Set("storage.data_dir", dataDir))
	require.NoError(t, cfg.Set("chunker.chunk_size", 16))
	require.NoError(t, cfg.Set("chunker.overlap", 4))
	require.NoError(t, cfg.Save())
	t.Setenv(file.EnvName("retry.max_attempts"), "1")

	svc, err := Build(context.Background(), configDir)
	require.NoError(t, err)
	defer func() { assert.NoError(t, svc.Close()) }()

	settings, err := svc.Settings.Get()
	require.NoError(t, err)
	assert.Equal(t, 16, settings.Chunker.ChunkSize)
	assert.Equal(t, 1, settings.Retry.MaxAttempts)

	ctx := context.Background()
	res, err := svc.Pipeline.Process(ctx, domain.ProcessRequest{
		DocumentID: "doc-1",
		Text:       "Infosys shipped the invoices to Mumbai warehouse on Monday. The delivery was great and the customer paid five lakh rupees.",
		Options:    domain.DefaultNormaliseOptions(),
		Context:    domain.ProcessingContext{BusinessID: "biz-1", FileFormat: "txt"},
	})
	require.NoError(t, err)
	require.NotEmpty(t, res.Chunks)
	for i, c := range res.Chunks {
		assert.Equal(t, i+1, c.ID)
		assert.Equal(t, "biz-1", c.BusinessID)
		assert.Nil(t, c.Embedding)
	}

	status, err := svc.Pipeline.Status(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, domain.StateCompleted, status.State)
	assert.Equal(t, len(res.Chunks), status.ChunkCount)

	profile, err := svc.Profile.Get(ctx, "biz-1")
	require.NoError(t, err)
	assert.Equal(t, "biz-1", profile.BusinessID)

	chunks, err := svc.Pipeline.Chunk(ctx, "a short text", domain.DefaultNormaliseOptions())
	require.NoError(t, err)
	assert.Len(t, chunks, 1)
}

func TestBuild_InvalidWindow(t *testing.T) {
	configDir := t.TempDir()
	t.Setenv(file.EnvName("storage.backend"), "memory")
	t.Setenv(file.EnvName("storage.profile_backend"), "memory")
	t.Setenv(file.EnvName("chunker.chunk_size"), "10")
	t.Setenv(file.EnvName("chunker.overlap"), "10")

	_, err := Build(context.Background(), configDir)
	assert.ErrorIs(t, err, domain.ErrInvalidWindow)
}
