package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ziadkadry99/codevec/internal/config"
	"github.com/ziadkadry99/codevec/internal/indexer"
	"github.com/ziadkadry99/codevec/internal/progress"
	"github.com/ziadkadry99/codevec/internal/vectordb"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Crawl a repository and build its vector index",
	Long: `Walks the repository, parses every indexable file, embeds the normalized
text and writes the vector index plus a JSON dump of every parsed file to
the output directory. An existing index in that directory is replaced.`,
	Args: cobra.NoArgs,
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().StringP("repo-path", "r", ".", "repository to index")
	indexCmd.Flags().StringP("output-dir", "o", "", "directory for the index (overrides config)")
	indexCmd.Flags().StringP("model-name", "m", "", "embedding model (overrides config)")
	indexCmd.Flags().String("provider", "", "embedding provider: fastembed, openai, ollama, google (overrides config)")
	indexCmd.Flags().String("store", "", "vector store backend: flat or chromem (overrides config)")
	indexCmd.Flags().Int("concurrency", 0, "parallel parse workers (overrides config)")
	indexCmd.Flags().Int("batch-size", 0, "texts per embedding call (overrides config)")
	indexCmd.Flags().BoolP("quiet", "q", false, "disable progress output")
	rootCmd.AddCommand(indexCmd)
}

// applyIndexFlags overlays explicitly set flags onto cfg.
func applyIndexFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if v, _ := flags.GetString("output-dir"); v != "" {
		cfg.OutputDir = v
	}
	if v, _ := flags.GetString("provider"); v != "" {
		cfg.EmbeddingProvider = config.ProviderType(v)
		if !flags.Changed("model-name") {
			// The configured model belongs to the configured provider.
			cfg.EmbeddingModel = ""
		}
	}
	if v, _ := flags.GetString("model-name"); v != "" {
		cfg.EmbeddingModel = v
	}
	if v, _ := flags.GetString("store"); v != "" {
		cfg.Store = config.StoreType(v)
	}
	if v, _ := flags.GetInt("concurrency"); v > 0 {
		cfg.MaxConcurrency = v
	}
	if v, _ := flags.GetInt("batch-size"); v > 0 {
		cfg.BatchSize = v
	}
	return cfg.Validate()
}

func runIndex(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := applyIndexFlags(cmd, cfg); err != nil {
		return err
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	repoPath, _ := cmd.Flags().GetString("repo-path")
	rootDir, err := filepath.Abs(repoPath)
	if err != nil {
		return fmt.Errorf("resolving repository path: %w", err)
	}

	embedder, err := createEmbedderFromConfig(cfg)
	if err != nil {
		return err
	}
	defer closeEmbedder(embedder)

	store, err := vectordb.New(string(cfg.Store), embedder.Dimensions(), embedder)
	if err != nil {
		return fmt.Errorf("creating vector store: %w", err)
	}

	pipeline := indexer.NewPipeline(embedder, store, indexer.Options{
		RootDir:     rootDir,
		Exclude:     cfg.Exclude,
		MaxFileSize: cfg.MaxFileSize,
		Concurrency: cfg.MaxConcurrency,
		BatchSize:   cfg.BatchSize,
	}, logger)

	quiet, _ := cmd.Flags().GetBool("quiet")
	var tracker *progress.Tracker
	if !quiet {
		tracker = progress.NewTracker(progress.NewReporter())
		pipeline.SetProgressFunc(tracker.Func())
	}

	logger.Info("indexing repository",
		zap.String("root", rootDir),
		zap.String("embedder", embedder.Name()),
		zap.String("store", string(cfg.Store)))

	result, err := pipeline.Run(ctx)
	if tracker != nil {
		tracker.Finish()
	}
	if err != nil {
		return fmt.Errorf("indexing failed: %w", err)
	}

	if err := pipeline.Persist(ctx, cfg.OutputDir, result); err != nil {
		return fmt.Errorf("saving index: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Indexing complete!")
	fmt.Fprintf(out, "  Files indexed:   %d\n", result.FilesIndexed)
	fmt.Fprintf(out, "  Embedding model: %s (%d dims)\n", embedder.Name(), result.Dimensions)
	fmt.Fprintf(out, "  Vector store:    %s\n", storeName(cfg.Store))
	fmt.Fprintf(out, "  Duration:        %s\n", result.Duration.Round(time.Millisecond))
	fmt.Fprintf(out, "  Index:           %s\n", filepath.Join(cfg.OutputDir, indexer.IndexDirName))
	fmt.Fprintf(out, "  Blocks:          %s\n", filepath.Join(cfg.OutputDir, indexer.BlocksFileName))
	return nil
}

func storeName(s config.StoreType) string {
	if s == "" {
		return string(config.StoreFlat)
	}
	return string(s)
}
