//go:build !cgo

package embeddings

import (
	"context"
	"errors"
)

// ErrFastEmbedNotAvailable is returned when the binary was built without cgo.
var ErrFastEmbedNotAvailable = errors.New("fastembed: not available (binary built without cgo, use the openai or ollama provider)")

// FastEmbedder is a stub for non-cgo builds.
type FastEmbedder struct{}

func NewFastEmbedder(name string) (*FastEmbedder, error) {
	if _, err := resolveFastEmbedModel(name); err != nil {
		return nil, err
	}
	return nil, ErrFastEmbedNotAvailable
}

func (e *FastEmbedder) Name() string    { return "fastembed" }
func (e *FastEmbedder) Dimensions() int { return 0 }
func (e *FastEmbedder) Close() error    { return nil }

func (e *FastEmbedder) Embed(_ context.Context, _ []string) ([][]float32, error) {
	return nil, ErrFastEmbedNotAvailable
}
