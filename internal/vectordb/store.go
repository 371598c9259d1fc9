// Package vectordb stores embedding vectors with file metadata and answers
// nearest-neighbour queries over them.
package vectordb

import (
	"context"
	"errors"
	"fmt"

	"github.com/ziadkadry99/codevec/internal/embeddings"
)

var (
	// ErrDimensionMismatch is returned when a vector's length differs from the
	// store's fixed dimension.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")

	// ErrUnknownBackend is returned by New for an unrecognized backend name.
	ErrUnknownBackend = errors.New("unknown vector store backend")

	// ErrNoIndex is returned by Load when the directory holds no saved index.
	ErrNoIndex = errors.New("no saved index")
)

// Backend names accepted by New.
const (
	BackendFlat    = "flat"
	BackendChromem = "chromem"
)

// VectorStore defines the interface for storing and searching vectors.
type VectorStore interface {
	// Add appends entries. Either all entries are added or none are.
	Add(ctx context.Context, entries []Entry) error

	// Search returns at most k entries nearest to query, nearest first.
	Search(ctx context.Context, query []float32, k int) ([]SearchResult, error)

	// Save writes the store's contents under dir.
	Save(ctx context.Context, dir string) error

	// Load replaces the store's contents with the index saved under dir.
	Load(ctx context.Context, dir string) error

	// Clear removes every entry.
	Clear(ctx context.Context) error

	// Count returns the number of entries in the store.
	Count() int
}

// New creates an empty store of the given backend. An empty kind means flat.
// The chromem backend uses embedder as its collection's embedding function.
func New(kind string, dims int, embedder embeddings.Embedder) (VectorStore, error) {
	switch kind {
	case BackendFlat, "":
		return NewFlatStore(dims)
	case BackendChromem:
		return NewChromemStore(embedder)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, kind)
	}
}

func checkDims(got, want int) error {
	if got != want {
		return fmt.Errorf("%w: got %d, want %d", ErrDimensionMismatch, got, want)
	}
	return nil
}
