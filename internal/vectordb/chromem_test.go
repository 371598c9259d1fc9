package vectordb

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockEmbedder returns deterministic embeddings based on text content.
// Similar texts produce similar vectors because shared characters contribute
// to the same positions.
type mockEmbedder struct {
	dims int
}

func newMockEmbedder(dims int) *mockEmbedder {
	return &mockEmbedder{dims: dims}
}

func (m *mockEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	results := make([][]float32, len(texts))
	for i, text := range texts {
		results[i] = m.deterministicVector(text)
	}
	return results, nil
}

func (m *mockEmbedder) Dimensions() int { return m.dims }
func (m *mockEmbedder) Name() string    { return "mock" }

func (m *mockEmbedder) deterministicVector(text string) []float32 {
	vec := make([]float32, m.dims)
	for i, ch := range text {
		idx := (int(ch) + i) % m.dims
		vec[idx] += 1.0
	}
	var norm float64
	for _, v := range vec {
		norm += float64(v * v)
	}
	norm = math.Sqrt(norm)
	if norm > 0 {
		for i := range vec {
			vec[i] = float32(float64(vec[i]) / norm)
		}
	}
	return vec
}

func entriesFor(m *mockEmbedder, texts map[string]string) []Entry {
	var out []Entry
	for _, path := range []string{"internal/auth/login.go", "internal/db/pool.go", "web/router.ts"} {
		text, ok := texts[path]
		if !ok {
			continue
		}
		out = append(out, Entry{
			Vector:   m.deterministicVector(text),
			Metadata: Metadata{Path: path, Language: filepath.Ext(path)[1:]},
		})
	}
	return out
}

var sampleTexts = map[string]string{
	"internal/auth/login.go": "The authentication module handles user login and session management",
	"internal/db/pool.go":    "Database connection pool configuration and initialization",
	"web/router.ts":          "HTTP router setup and middleware chain for the REST API",
}

func TestChromemStore_AddAndSearch(t *testing.T) {
	ctx := context.Background()
	embedder := newMockEmbedder(64)

	store, err := NewChromemStore(embedder)
	require.NoError(t, err)

	require.NoError(t, store.Add(ctx, entriesFor(embedder, sampleTexts)))
	assert.Equal(t, 3, store.Count())

	query := embedder.deterministicVector(sampleTexts["internal/db/pool.go"])
	results, err := store.Search(ctx, query, 2)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "internal/db/pool.go", results[0].Metadata.Path)
	assert.Equal(t, "go", results[0].Metadata.Language)
	assert.InDelta(t, 0, results[0].Distance, 1e-5, "identical vectors have distance 0")
	assert.LessOrEqual(t, results[0].Distance, results[1].Distance)
}

func TestChromemStore_SearchClampsK(t *testing.T) {
	ctx := context.Background()
	embedder := newMockEmbedder(32)
	store, err := NewChromemStore(embedder)
	require.NoError(t, err)

	results, err := store.Search(ctx, embedder.deterministicVector("x"), 5)
	require.NoError(t, err)
	assert.Empty(t, results, "empty collection")

	require.NoError(t, store.Add(ctx, entriesFor(embedder, sampleTexts)))
	results, err = store.Search(ctx, embedder.deterministicVector("x"), 50)
	require.NoError(t, err)
	assert.Len(t, results, 3)

	results, err = store.Search(ctx, embedder.deterministicVector("x"), 0)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestChromemStore_DimensionMismatch(t *testing.T) {
	ctx := context.Background()
	store, err := NewChromemStore(newMockEmbedder(8))
	require.NoError(t, err)

	err = store.Add(ctx, []Entry{{Vector: make([]float32, 4), Metadata: Metadata{Path: "a"}}})
	assert.ErrorIs(t, err, ErrDimensionMismatch)
	assert.Zero(t, store.Count())

	_, err = store.Search(ctx, make([]float32, 3), 1)
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestChromemStore_Clear(t *testing.T) {
	ctx := context.Background()
	embedder := newMockEmbedder(16)
	store, err := NewChromemStore(embedder)
	require.NoError(t, err)

	require.NoError(t, store.Add(ctx, entriesFor(embedder, sampleTexts)))
	require.NoError(t, store.Clear(ctx))
	assert.Zero(t, store.Count())

	require.NoError(t, store.Add(ctx, entriesFor(embedder, sampleTexts)))
	assert.Equal(t, 3, store.Count())
}

func TestChromemStore_SaveAndLoad(t *testing.T) {
	ctx := context.Background()
	embedder := newMockEmbedder(64)
	dir := filepath.Join(t.TempDir(), "index")

	store, err := NewChromemStore(embedder)
	require.NoError(t, err)
	require.NoError(t, store.Add(ctx, entriesFor(embedder, sampleTexts)))
	require.NoError(t, store.Save(ctx, dir))

	_, err = os.Stat(filepath.Join(dir, "chromem.gob.gz"))
	require.NoError(t, err)

	loaded, err := NewChromemStore(embedder)
	require.NoError(t, err)
	require.NoError(t, loaded.Load(ctx, dir))
	assert.Equal(t, 3, loaded.Count())

	query := embedder.deterministicVector(sampleTexts["web/router.ts"])
	results, err := loaded.Search(ctx, query, 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "web/router.ts", results[0].Metadata.Path)
}

func TestChromemStore_LoadMissing(t *testing.T) {
	store, err := NewChromemStore(newMockEmbedder(8))
	require.NoError(t, err)

	err = store.Load(context.Background(), t.TempDir())
	assert.ErrorIs(t, err, ErrNoIndex)
}

func TestDocumentID_Stable(t *testing.T) {
	assert.Equal(t, documentID("src/lib.rs"), documentID("src/lib.rs"))
	assert.NotEqual(t, documentID("src/lib.rs"), documentID("src/main.rs"))
}
