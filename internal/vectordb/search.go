package vectordb

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ziadkadry99/codevec/internal/embeddings"
)

// ErrEmptyQuery is returned by Query for a blank query string.
var ErrEmptyQuery = errors.New("empty query")

// Query embeds text with embedder and returns the k nearest entries in store.
func Query(ctx context.Context, store VectorStore, embedder embeddings.Embedder, text string, k int) ([]SearchResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyQuery
	}

	vecs, err := embedder.Embed(ctx, []string{text})
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}
	if len(vecs) != 1 {
		return nil, fmt.Errorf("embedding query: got %d vectors, want 1", len(vecs))
	}

	return store.Search(ctx, vecs[0], k)
}

// FormatResults renders search results as human-readable text, one ranked
// line per result.
func FormatResults(results []SearchResult) string {
	if len(results) == 0 {
		return "No results found.\n"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d result(s):\n\n", len(results))

	for i, r := range results {
		lang := r.Metadata.Language
		if lang == "" {
			lang = "unknown"
		}
		fmt.Fprintf(&sb, "%2d. %s (%s) distance=%.4f\n", i+1, r.Metadata.Path, lang, r.Distance)
	}

	return sb.String()
}
