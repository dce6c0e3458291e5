// Package app assembles the driven adapters, post-processors and services
// from configuration.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/custodia-labs/textprep/internal/adapters/driven/ai"
	"github.com/custodia-labs/textprep/internal/adapters/driven/config/file"
	"github.com/custodia-labs/textprep/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/textprep/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/textprep/internal/adapters/driving/cli"
	"github.com/custodia-labs/textprep/internal/core/domain"
	"github.com/custodia-labs/textprep/internal/core/ports/driven"
	"github.com/custodia-labs/textprep/internal/core/services"
	"github.com/custodia-labs/textprep/internal/logger"
	"github.com/custodia-labs/textprep/internal/normaliser"
	"github.com/custodia-labs/textprep/internal/postprocessors"
)

// stores groups the persistence ports.
type stores struct {
	chunks   driven.ChunkStore
	statuses driven.StatusStore
	profiles driven.ProfileStore
	closers  []func() error
}

// Build reads configuration from configDir and returns ready services.
func Build(ctx context.Context, configDir string) (*cli.Services, error) {
	configStore, err := file.NewConfigStore(configDir)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}

	settingsService := services.NewSettingsService(configStore, ai.NewConfigValidator())
	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	logger.Debug("settings loaded from %s", configStore.Path())

	st, err := openStores(settings.Storage)
	if err != nil {
		return nil, err
	}
	closeAll := func() error {
		var errs []error
		for _, c := range st.closers {
			errs = append(errs, c())
		}
		return errors.Join(errs...)
	}

	pipelineService, err := buildPipeline(ctx, settings, st)
	if err != nil {
		closeAll() //nolint:errcheck
		return nil, err
	}

	return &cli.Services{
		Pipeline: pipelineService,
		Profile:  services.NewProfileService(st.profiles),
		Settings: settingsService,
		Close:    closeAll,
	}, nil
}

func openStores(cfg domain.StorageSettings) (*stores, error) {
	st := &stores{}

	var db *sqlite.Store
	openDB := func() (*sqlite.Store, error) {
		if db != nil {
			return db, nil
		}
		s, err := sqlite.NewStore(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		logger.Debug("sqlite store at %s", s.Path())
		db = s
		st.closers = append(st.closers, s.Close)
		return s, nil
	}

	switch cfg.Backend {
	case domain.StorageMemory:
		st.chunks = memory.NewChunkStore()
		st.statuses = memory.NewStatusStore()
	case domain.StorageSQLite, "":
		s, err := openDB()
		if err != nil {
			return nil, err
		}
		st.chunks = s.ChunkStore()
		st.statuses = s.StatusStore()
	default:
		return nil, fmt.Errorf("%w: storage backend %s", domain.ErrUnsupportedType, cfg.Backend)
	}

	switch cfg.ProfileBackend {
	case domain.StorageFile:
		dir := cfg.DataDir
		if dir == "" {
			dir = defaultDataDir()
		}
		ps, err := file.NewProfileStore(dir)
		if err != nil {
			return nil, fmt.Errorf("open profile store: %w", err)
		}
		st.profiles = ps
	case domain.StorageMemory:
		st.profiles = memory.NewProfileStore()
	case domain.StorageSQLite, "":
		s, err := openDB()
		if err != nil {
			return nil, err
		}
		st.profiles = s.ProfileStore()
	default:
		return nil, fmt.Errorf("%w: profile backend %s", domain.ErrUnsupportedType, cfg.ProfileBackend)
	}

	return st, nil
}

func buildPipeline(ctx context.Context, settings *domain.AppSettings, st *stores) (*services.PipelineService, error) {
	tokenizer, err := ai.CreateTokenizer(settings.Chunker.Encoding)
	if err != nil {
		return nil, fmt.Errorf("load tokenizer: %w", err)
	}
	annotator, err := ai.CreateAnnotator(ctx, settings.Annotator)
	if err != nil {
		return nil, fmt.Errorf("load annotator: %w", err)
	}
	scorer, err := ai.CreateSentimentScorer(ctx, settings.Sentiment, settings.Annotator)
	if err != nil {
		return nil, fmt.Errorf("load sentiment scorer: %w", err)
	}
	embedder, err := ai.CreateEmbeddingService(&settings.Embedding)
	if err != nil {
		return nil, fmt.Errorf("create embedding service: %w", err)
	}
	if embedder != nil {
		st.closers = append(st.closers, embedder.Close)
	}

	registry := postprocessors.NewRegistry()
	postprocessors.RegisterDefaults(registry, postprocessors.Deps{
		Tokenizer: tokenizer,
		Annotator: annotator,
		Scorer:    scorer,
		Profiles:  st.profiles,
		Embedder:  embedder,
	})

	cfg := domain.PipelineConfigFrom(*settings)
	pipeline, err := registry.BuildPipeline(cfg)
	if err != nil {
		return nil, err
	}
	chunker, err := registry.Build("chunker", cfg.GetProcessorConfig("chunker"))
	if err != nil {
		return nil, err
	}
	logger.Debug("pipeline: %v", pipeline.Names())

	return services.NewPipelineService(normaliser.New(), pipeline, st.chunks, st.statuses,
		services.WithRetry(settings.Retry),
		services.WithChunker(chunker),
	), nil
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".textprep", "data")
	}
	return filepath.Join(home, ".textprep", "data")
}
