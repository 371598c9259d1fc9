package indexer

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ziadkadry99/codevec/internal/embeddings"
	"github.com/ziadkadry99/codevec/internal/logging"
	"github.com/ziadkadry99/codevec/internal/parser"
	"github.com/ziadkadry99/codevec/internal/vectordb"
	"github.com/ziadkadry99/codevec/internal/walker"
)

const (
	defaultConcurrency = 4
	defaultBatchSize   = 64

	// IndexDirName is the subdirectory of the output dir holding the saved store.
	IndexDirName = "index"
	// BlocksFileName is the JSON dump of every parsed block.
	BlocksFileName = "blocks.json"
)

var (
	// ErrEmbedding marks a failed or malformed embedding call. The store is
	// left untouched when a run fails with it.
	ErrEmbedding = errors.New("embedding failed")

	// ErrStore marks a vector store failure.
	ErrStore = errors.New("vector store failed")
)

// Pipeline orchestrates the indexing workflow: walk -> parse -> normalize -> embed -> store.
type Pipeline struct {
	embedder   embeddings.Embedder
	store      vectordb.VectorStore
	opts       Options
	log        *zap.Logger
	onProgress ProgressFunc
}

// NewPipeline creates a new Pipeline. A nil logger discards output.
func NewPipeline(embedder embeddings.Embedder, store vectordb.VectorStore, opts Options, logger *zap.Logger) *Pipeline {
	if opts.Concurrency < 1 {
		opts.Concurrency = defaultConcurrency
	}
	if opts.BatchSize < 1 {
		opts.BatchSize = defaultBatchSize
	}
	return &Pipeline{
		embedder: embedder,
		store:    store,
		opts:     opts,
		log:      logging.OrNop(logger),
	}
}

// SetProgressFunc sets the progress callback.
func (p *Pipeline) SetProgressFunc(fn ProgressFunc) {
	p.onProgress = fn
}

func (p *Pipeline) progress(stage Stage, processed, total int, current string) {
	if p.onProgress != nil {
		p.onProgress(stage, processed, total, current)
	}
}

// Run crawls the repository, embeds every file and replaces the store's
// contents with the result. Nothing is added to the store unless every
// file was embedded.
func (p *Pipeline) Run(ctx context.Context) (*PipelineResult, error) {
	start := time.Now()

	records, err := walker.Walk(walker.WalkerConfig{
		RootDir:     p.opts.RootDir,
		Exclude:     p.opts.Exclude,
		MaxFileSize: p.opts.MaxFileSize,
		Logger:      p.log,
	})
	if err != nil {
		return nil, fmt.Errorf("crawl %s: %w", p.opts.RootDir, err)
	}
	p.log.Info("crawl complete", zap.String("root", p.opts.RootDir), zap.Int("files", len(records)))

	blocks, err := p.parse(ctx, records)
	if err != nil {
		return nil, err
	}

	texts := make([]string, len(blocks))
	for i, b := range blocks {
		texts[i] = ToText(b)
	}

	vectors, err := p.embed(ctx, texts)
	if err != nil {
		return nil, err
	}

	entries := make([]vectordb.Entry, len(blocks))
	for i, b := range blocks {
		entries[i] = vectordb.Entry{
			Vector: vectors[i],
			Metadata: vectordb.Metadata{
				Path:     b.RelPath,
				Language: string(b.Language),
			},
		}
	}

	p.progress(StageStore, 0, len(entries), "")
	if err := p.store.Clear(ctx); err != nil {
		return nil, fmt.Errorf("%w: clear: %w", ErrStore, err)
	}
	if len(entries) > 0 {
		if err := p.store.Add(ctx, entries); err != nil {
			return nil, fmt.Errorf("%w: add: %w", ErrStore, err)
		}
	}
	p.progress(StageStore, len(entries), len(entries), "")

	result := &PipelineResult{
		Blocks:       blocks,
		Texts:        texts,
		FilesIndexed: len(entries),
		Dimensions:   p.embedder.Dimensions(),
		Duration:     time.Since(start),
	}
	p.log.Info("index built",
		zap.Int("files", result.FilesIndexed),
		zap.Int("dimensions", result.Dimensions),
		zap.Duration("duration", result.Duration))
	return result, nil
}

// parse runs the content parser over every record. Blocks keep crawl order.
func (p *Pipeline) parse(ctx context.Context, records []walker.FileRecord) ([]Block, error) {
	blocks := make([]Block, len(records))
	total := len(records)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.opts.Concurrency)

	var mu sync.Mutex // serializes progress callbacks
	done := 0

	for i, rec := range records {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			blocks[i] = Block{
				FileRecord: rec,
				Parsed:     parser.Parse(rec.Content, rec.Type, rec.Language),
			}

			mu.Lock()
			done++
			p.progress(StageParse, done, total, rec.RelPath)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	return blocks, nil
}

// embed calls the embedder in batches and validates every response.
func (p *Pipeline) embed(ctx context.Context, texts []string) ([][]float32, error) {
	dims := p.embedder.Dimensions()
	if dims <= 0 {
		return nil, fmt.Errorf("%w: %s reports dimension %d", ErrEmbedding, p.embedder.Name(), dims)
	}

	vectors := make([][]float32, 0, len(texts))
	for i := 0; i < len(texts); i += p.opts.BatchSize {
		end := min(i+p.opts.BatchSize, len(texts))

		batch, err := p.embedder.Embed(ctx, texts[i:end])
		if err != nil {
			return nil, fmt.Errorf("%w: texts %d-%d: %w", ErrEmbedding, i, end-1, err)
		}
		if len(batch) != end-i {
			return nil, fmt.Errorf("%w: got %d vectors for %d texts", ErrEmbedding, len(batch), end-i)
		}
		for j, v := range batch {
			if len(v) != dims {
				return nil, fmt.Errorf("%w: vector %d has %d dimensions, want %d", ErrEmbedding, i+j, len(v), dims)
			}
		}
		vectors = append(vectors, batch...)

		p.progress(StageEmbed, end, len(texts), "")
		p.log.Debug("embedded batch", zap.Int("from", i), zap.Int("to", end))
	}
	return vectors, nil
}

// Persist saves the store under outputDir/index and then writes
// outputDir/blocks.json. The dump is skipped if the store save fails.
func (p *Pipeline) Persist(ctx context.Context, outputDir string, result *PipelineResult) error {
	indexDir := filepath.Join(outputDir, IndexDirName)
	if err := p.store.Save(ctx, indexDir); err != nil {
		return fmt.Errorf("%w: save %s: %w", ErrStore, indexDir, err)
	}

	blocksPath := filepath.Join(outputDir, BlocksFileName)
	if err := WriteBlocks(blocksPath, result.Blocks); err != nil {
		return err
	}
	p.log.Info("index persisted", zap.String("index", indexDir), zap.String("blocks", blocksPath))
	return nil
}
