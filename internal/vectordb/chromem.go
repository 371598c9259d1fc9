package vectordb

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"

	"github.com/google/uuid"
	chromem "github.com/philippgille/chromem-go"

	"github.com/ziadkadry99/codevec/internal/embeddings"
)

const (
	collectionName    = "code_embeddings"
	chromemExportFile = "chromem.gob.gz"
)

// ChromemStore implements VectorStore using a chromem-go collection of
// precomputed embeddings. Distances are 1 - cosine similarity.
type ChromemStore struct {
	db         *chromem.DB
	collection *chromem.Collection
	embedFunc  chromem.EmbeddingFunc
	dims       int
}

// NewChromemStore creates a new in-memory ChromemStore.
func NewChromemStore(embedder embeddings.Embedder) (*ChromemStore, error) {
	if embedder == nil {
		return nil, errors.New("chromem store: embedder is required")
	}
	s := &ChromemStore{
		db:        chromem.NewDB(),
		embedFunc: embeddings.ToChromemFunc(embedder),
		dims:      embedder.Dimensions(),
	}
	if err := s.openCollection(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *ChromemStore) openCollection() error {
	col, err := s.db.GetOrCreateCollection(collectionName, nil, s.embedFunc)
	if err != nil {
		return fmt.Errorf("create collection: %w", err)
	}
	s.collection = col
	return nil
}

// documentID derives a stable ID from the entry's path.
func documentID(path string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(path)).String()
}

func (s *ChromemStore) Add(ctx context.Context, entries []Entry) error {
	if len(entries) == 0 {
		return nil
	}

	docs := make([]chromem.Document, len(entries))
	for i, e := range entries {
		if err := checkDims(len(e.Vector), s.dims); err != nil {
			return fmt.Errorf("add %s: %w", e.Metadata.Path, err)
		}
		docs[i] = chromem.Document{
			ID:        documentID(e.Metadata.Path),
			Content:   e.Metadata.Path,
			Embedding: e.Vector,
			Metadata: map[string]string{
				"path":     e.Metadata.Path,
				"language": e.Metadata.Language,
			},
		}
	}

	if err := s.collection.AddDocuments(ctx, docs, runtime.NumCPU()); err != nil {
		return fmt.Errorf("chromem add: %w", err)
	}
	return nil
}

func (s *ChromemStore) Search(ctx context.Context, query []float32, k int) ([]SearchResult, error) {
	if err := checkDims(len(query), s.dims); err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	// chromem-go requires nResults <= collection size.
	count := s.collection.Count()
	if k <= 0 || count == 0 {
		return []SearchResult{}, nil
	}
	k = min(k, count)

	res, err := s.collection.QueryEmbedding(ctx, query, k, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("chromem query: %w", err)
	}

	results := make([]SearchResult, len(res))
	for i, r := range res {
		results[i] = SearchResult{
			Metadata: Metadata{Path: r.Metadata["path"], Language: r.Metadata["language"]},
			Distance: 1 - r.Similarity,
		}
	}
	return results, nil
}

// Save exports the collection to <dir>/chromem.gob.gz.
func (s *ChromemStore) Save(_ context.Context, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create index dir: %w", err)
	}
	final := filepath.Join(dir, chromemExportFile)
	tmp := final + ".tmp"
	if err := s.db.ExportToFile(tmp, true, ""); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("export to file: %w", err)
	}
	if err := os.Rename(tmp, final); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename export: %w", err)
	}
	return nil
}

func (s *ChromemStore) Load(_ context.Context, dir string) error {
	path := filepath.Join(dir, chromemExportFile)
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w in %s", ErrNoIndex, dir)
	}

	fresh := chromem.NewDB()
	if err := fresh.ImportFromFile(path, ""); err != nil {
		return fmt.Errorf("import from file: %w", err)
	}

	// Re-acquire collection reference after import.
	col := fresh.GetCollection(collectionName, s.embedFunc)
	if col == nil {
		return fmt.Errorf("collection %q not found after import", collectionName)
	}
	s.db = fresh
	s.collection = col
	return nil
}

func (s *ChromemStore) Clear(_ context.Context) error {
	if err := s.db.DeleteCollection(collectionName); err != nil {
		return fmt.Errorf("delete collection: %w", err)
	}
	return s.openCollection()
}

func (s *ChromemStore) Count() int {
	return s.collection.Count()
}
