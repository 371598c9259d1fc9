// Package embeddings turns normalized file text into fixed-length vectors.
package embeddings

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrDimensionMismatch is returned when a provider yields a vector whose
	// length differs from the model's declared dimension.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrUnsupportedModel is returned for model names a provider does not know.
	ErrUnsupportedModel = errors.New("unsupported embedding model")
)

// Embedder defines the interface for generating text embeddings.
type Embedder interface {
	// Embed returns one vector per input text, in input order.
	Embed(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the number of dimensions in the embedding vectors.
	Dimensions() int

	// Name returns the name/identifier of the embedding model.
	Name() string
}

// checkVectors verifies a provider response: one vector per input and every
// vector of length dims.
func checkVectors(provider string, vecs [][]float32, inputs, dims int) error {
	if len(vecs) != inputs {
		return fmt.Errorf("%s returned %d embeddings, expected %d", provider, len(vecs), inputs)
	}
	for i, v := range vecs {
		if len(v) != dims {
			return fmt.Errorf("%s embedding %d: %w: got %d, want %d", provider, i, ErrDimensionMismatch, len(v), dims)
		}
	}
	return nil
}
