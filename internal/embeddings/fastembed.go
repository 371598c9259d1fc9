//go:build cgo

package embeddings

import (
	"context"
	"fmt"
	"sync"

	fastembed "github.com/anush008/fastembed-go"
)

const fastEmbedBatchSize = 256

// FastEmbedder runs a local ONNX embedding model through fastembed.
type FastEmbedder struct {
	mu    sync.Mutex
	model *fastembed.FlagEmbedding
	name  string
	dims  int
}

// NewFastEmbedder loads (downloading on first use) the named model.
func NewFastEmbedder(name string) (*FastEmbedder, error) {
	m, err := resolveFastEmbedModel(name)
	if err != nil {
		return nil, err
	}
	if name == "" {
		name = DefaultFastEmbedModel
	}

	showProgress := false
	flag, err := fastembed.NewFlagEmbedding(&fastembed.InitOptions{
		Model:                fastembed.EmbeddingModel(m.id),
		CacheDir:             fastEmbedCacheDir(),
		MaxLength:            512,
		ShowDownloadProgress: &showProgress,
	})
	if err != nil {
		return nil, fmt.Errorf("initializing fastembed: %w", err)
	}

	return &FastEmbedder{model: flag, name: name, dims: m.dims}, nil
}

func (e *FastEmbedder) Name() string {
	return "fastembed/" + e.name
}

func (e *FastEmbedder) Dimensions() int {
	return e.dims
}

func (e *FastEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	vecs, err := e.model.Embed(texts, fastEmbedBatchSize)
	if err != nil {
		return nil, fmt.Errorf("fastembed: %w", err)
	}
	if err := checkVectors("fastembed", vecs, len(texts), e.dims); err != nil {
		return nil, err
	}
	return vecs, nil
}

// Close releases the ONNX runtime session.
func (e *FastEmbedder) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.model == nil {
		return nil
	}
	err := e.model.Destroy()
	e.model = nil
	return err
}
