package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/ziadkadry99/codevec/internal/config"
	"github.com/ziadkadry99/codevec/internal/embeddings"
	"github.com/ziadkadry99/codevec/internal/indexer"
	"github.com/ziadkadry99/codevec/internal/logging"
	"github.com/ziadkadry99/codevec/internal/vectordb"
)

// loadConfig loads and validates the config, applying persistent flag
// overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `codevec init` to create a config file", err)
	}
	if verbose {
		cfg.Log.Level = "debug"
	}
	if logFormat != "" {
		cfg.Log.Format = logFormat
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	return logging.New(cfg.Log.Level, cfg.Log.Format)
}

// createEmbedderFromConfig creates the embeddings.Embedder named by cfg.
func createEmbedderFromConfig(cfg *config.Config) (embeddings.Embedder, error) {
	embedder, err := embeddings.New(string(cfg.EmbeddingProvider), cfg.Model(), cfg.OllamaURL)
	if err != nil {
		return nil, fmt.Errorf("creating embedder: %w", err)
	}
	return embedder, nil
}

// closeEmbedder releases embedders that hold native resources.
func closeEmbedder(e embeddings.Embedder) {
	if c, ok := e.(io.Closer); ok {
		_ = c.Close()
	}
}

// openStore loads the index persisted under cfg.OutputDir.
func openStore(ctx context.Context, cfg *config.Config, embedder embeddings.Embedder) (vectordb.VectorStore, error) {
	store, err := vectordb.New(string(cfg.Store), embedder.Dimensions(), embedder)
	if err != nil {
		return nil, fmt.Errorf("creating vector store: %w", err)
	}

	indexDir := filepath.Join(cfg.OutputDir, indexer.IndexDirName)
	if err := store.Load(ctx, indexDir); err != nil {
		if errors.Is(err, vectordb.ErrNoIndex) {
			return nil, fmt.Errorf("no index in %s\nRun `codevec index` first to build it", cfg.OutputDir)
		}
		return nil, fmt.Errorf("loading vector store from %s: %w", indexDir, err)
	}
	return store, nil
}
