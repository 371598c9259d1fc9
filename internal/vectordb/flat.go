package vectordb

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/ziadkadry99/codevec/internal/db"
)

const flatFileName = "flat.db"

// FlatStore is an exact in-process index ranked by squared Euclidean
// distance. Every vector has the dimension fixed at construction.
type FlatStore struct {
	mu      sync.RWMutex
	dims    int
	entries []Entry
}

// NewFlatStore creates an empty store for vectors of length dims.
func NewFlatStore(dims int) (*FlatStore, error) {
	if dims <= 0 {
		return nil, fmt.Errorf("flat store: dimension must be positive, got %d", dims)
	}
	return &FlatStore{dims: dims}, nil
}

// Dimensions returns the fixed vector length.
func (s *FlatStore) Dimensions() int { return s.dims }

func (s *FlatStore) Add(_ context.Context, entries []Entry) error {
	for _, e := range entries {
		if err := checkDims(len(e.Vector), s.dims); err != nil {
			return fmt.Errorf("add %s: %w", e.Metadata.Path, err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range entries {
		s.entries = append(s.entries, Entry{
			Vector:   slices.Clone(e.Vector),
			Metadata: e.Metadata,
		})
	}
	return nil
}

func (s *FlatStore) Search(_ context.Context, query []float32, k int) ([]SearchResult, error) {
	if err := checkDims(len(query), s.dims); err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	if k <= 0 {
		return []SearchResult{}, nil
	}

	s.mu.RLock()
	results := make([]SearchResult, len(s.entries))
	for i, e := range s.entries {
		results[i] = SearchResult{Metadata: e.Metadata, Distance: squaredL2(query, e.Vector)}
	}
	s.mu.RUnlock()

	// Stable, so equal distances keep insertion order.
	slices.SortStableFunc(results, func(a, b SearchResult) int {
		return cmp.Compare(a.Distance, b.Distance)
	})
	if len(results) > k {
		results = results[:k]
	}
	return results, nil
}

func squaredL2(a, b []float32) float32 {
	var sum float32
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

// Save writes <dir>/flat.db. The file is built next to its final name and
// renamed into place, so a failed save leaves any previous index intact.
func (s *FlatStore) Save(ctx context.Context, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create index dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, flatFileName+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp index: %w", err)
	}
	tmpPath := tmp.Name()
	tmp.Close()
	defer os.Remove(tmpPath)

	s.mu.RLock()
	rows := make([]db.Row, len(s.entries))
	for i, e := range s.entries {
		rows[i] = db.Row{Path: e.Metadata.Path, Language: e.Metadata.Language, Vector: e.Vector}
	}
	s.mu.RUnlock()

	d, err := db.Open(tmpPath)
	if err != nil {
		return err
	}
	if err := d.WriteIndex(ctx, s.dims, rows); err != nil {
		d.Close()
		return fmt.Errorf("write index: %w", err)
	}
	if err := d.Close(); err != nil {
		return fmt.Errorf("close index: %w", err)
	}

	if err := os.Rename(tmpPath, filepath.Join(dir, flatFileName)); err != nil {
		return fmt.Errorf("rename index: %w", err)
	}
	return nil
}

// Load replaces the store's contents with <dir>/flat.db. The saved dimension
// must match the store's.
func (s *FlatStore) Load(ctx context.Context, dir string) error {
	path := filepath.Join(dir, flatFileName)
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w in %s", ErrNoIndex, dir)
	}

	d, err := db.Open(path)
	if err != nil {
		return err
	}
	defer d.Close()

	dims, rows, err := d.ReadIndex(ctx)
	if err != nil {
		return fmt.Errorf("read index: %w", err)
	}
	if err := checkDims(dims, s.dims); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}

	entries := make([]Entry, len(rows))
	for i, r := range rows {
		entries[i] = Entry{Vector: r.Vector, Metadata: Metadata{Path: r.Path, Language: r.Language}}
	}

	s.mu.Lock()
	s.entries = entries
	s.mu.Unlock()
	return nil
}

func (s *FlatStore) Clear(_ context.Context) error {
	s.mu.Lock()
	s.entries = nil
	s.mu.Unlock()
	return nil
}

func (s *FlatStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
