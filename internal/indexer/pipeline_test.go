package indexer

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ziadkadry99/codevec/internal/vectordb"
)

// --- Mock Embedder ---

type mockEmbedder struct {
	dims      int
	err       error
	short     bool // return one vector fewer than asked
	badLength bool // return vectors of the wrong length

	mu    sync.Mutex
	calls [][]string
}

func (m *mockEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	m.mu.Lock()
	m.calls = append(m.calls, append([]string(nil), texts...))
	m.mu.Unlock()

	if m.err != nil {
		return nil, m.err
	}
	n := len(texts)
	if m.short {
		n--
	}
	dims := m.dims
	if m.badLength {
		dims++
	}
	out := make([][]float32, n)
	for i := range out {
		out[i] = make([]float32, dims)
		out[i][0] = float32(len(texts[i]))
	}
	return out, nil
}

func (m *mockEmbedder) Dimensions() int { return m.dims }
func (m *mockEmbedder) Name() string    { return "mock" }

// --- Recording Vector Store ---

type recordingStore struct {
	ops     []string
	added   [][]vectordb.Entry
	addErr  error
	saveErr error
	saved   []string
}

func (s *recordingStore) Add(_ context.Context, entries []vectordb.Entry) error {
	s.ops = append(s.ops, "add")
	if s.addErr != nil {
		return s.addErr
	}
	s.added = append(s.added, entries)
	return nil
}

func (s *recordingStore) Search(_ context.Context, _ []float32, _ int) ([]vectordb.SearchResult, error) {
	return nil, nil
}

func (s *recordingStore) Save(_ context.Context, dir string) error {
	s.ops = append(s.ops, "save")
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saved = append(s.saved, dir)
	return nil
}

func (s *recordingStore) Load(_ context.Context, _ string) error { return nil }

func (s *recordingStore) Clear(_ context.Context) error {
	s.ops = append(s.ops, "clear")
	s.added = nil
	return nil
}

func (s *recordingStore) Count() int {
	n := 0
	for _, a := range s.added {
		n += len(a)
	}
	return n
}

// --- Helpers ---

func toyRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.py"),
		[]byte("import os\ndef foo():\n    pass\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"),
		[]byte("# Toy\nA toy repository.\n"), 0o644))
	return dir
}

func sampleRepo(t *testing.T) string {
	t.Helper()
	_, filename, _, ok := runtime.Caller(0)
	require.True(t, ok)
	return filepath.Join(filepath.Dir(filename), "..", "..", "testdata", "sample_repo")
}

// --- Tests ---

func TestPipeline_TwoFileRepo(t *testing.T) {
	embedder := &mockEmbedder{dims: 8}
	store := &recordingStore{}
	p := NewPipeline(embedder, store, Options{RootDir: toyRepo(t)}, nil)

	result, err := p.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, result.Texts, 2)
	require.Len(t, result.Blocks, 2)
	assert.Equal(t, 2, result.FilesIndexed)
	assert.Equal(t, 8, result.Dimensions)

	headers := map[string]string{
		"app.py":    "File: app.py\nType: python\nLanguage: python\n",
		"README.md": "File: README.md\nType: readme\nLanguage: unknown\n",
	}
	for i, b := range result.Blocks {
		want, ok := headers[b.RelPath]
		require.True(t, ok, "unexpected block %s", b.RelPath)
		assert.True(t, strings.HasPrefix(result.Texts[i], want), "text %q", result.Texts[i])
		assert.NotNil(t, b.Parsed)
	}

	assert.Equal(t, []string{"clear", "add"}, store.ops)
	require.Len(t, store.added, 1, "one add call")
	got := map[string]string{}
	for _, e := range store.added[0] {
		got[e.Metadata.Path] = e.Metadata.Language
		assert.Len(t, e.Vector, 8)
	}
	assert.Equal(t, map[string]string{"app.py": "python", "README.md": "unknown"}, got)
}

func TestPipeline_EntriesFollowBlockOrder(t *testing.T) {
	store := &recordingStore{}
	p := NewPipeline(&mockEmbedder{dims: 4}, store, Options{RootDir: sampleRepo(t), Concurrency: 3}, nil)

	result, err := p.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, result.Blocks, 8)

	entries := store.added[0]
	require.Len(t, entries, len(result.Blocks))
	for i, b := range result.Blocks {
		assert.Equal(t, b.RelPath, entries[i].Metadata.Path)
		assert.True(t, strings.HasPrefix(result.Texts[i], "File: "+b.RelPath+"\n"))
		// The mock encodes the text length in the first component.
		assert.Equal(t, float32(len(result.Texts[i])), entries[i].Vector[0])
	}
}

func TestPipeline_Batches(t *testing.T) {
	embedder := &mockEmbedder{dims: 2}
	p := NewPipeline(embedder, &recordingStore{}, Options{RootDir: sampleRepo(t), BatchSize: 3}, nil)

	_, err := p.Run(context.Background())
	require.NoError(t, err)

	var sizes []int
	for _, c := range embedder.calls {
		sizes = append(sizes, len(c))
	}
	assert.Equal(t, []int{3, 3, 2}, sizes)
}

func TestPipeline_EmbeddingFailureAddsNothing(t *testing.T) {
	boom := errors.New("model exploded")
	tests := []struct {
		name     string
		embedder *mockEmbedder
	}{
		{"error", &mockEmbedder{dims: 4, err: boom}},
		{"short batch", &mockEmbedder{dims: 4, short: true}},
		{"wrong dimension", &mockEmbedder{dims: 4, badLength: true}},
		{"no dimension", &mockEmbedder{dims: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &recordingStore{}
			p := NewPipeline(tt.embedder, store, Options{RootDir: toyRepo(t)}, nil)

			result, err := p.Run(context.Background())
			assert.Nil(t, result)
			assert.ErrorIs(t, err, ErrEmbedding)
			assert.Empty(t, store.ops, "store must not be touched")
		})
	}

	store := &recordingStore{}
	_, err := NewPipeline(&mockEmbedder{dims: 4, err: boom}, store, Options{RootDir: toyRepo(t)}, nil).
		Run(context.Background())
	assert.ErrorIs(t, err, boom, "the embedder's error stays in the chain")
}

func TestPipeline_StoreFailure(t *testing.T) {
	store := &recordingStore{addErr: errors.New("disk full")}
	p := NewPipeline(&mockEmbedder{dims: 4}, store, Options{RootDir: toyRepo(t)}, nil)

	_, err := p.Run(context.Background())
	assert.ErrorIs(t, err, ErrStore)
}

func TestPipeline_MissingRoot(t *testing.T) {
	p := NewPipeline(&mockEmbedder{dims: 4}, &recordingStore{}, Options{RootDir: filepath.Join(t.TempDir(), "nope")}, nil)

	_, err := p.Run(context.Background())
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrEmbedding)
}

func TestPipeline_EmptyRepo(t *testing.T) {
	store := &recordingStore{}
	embedder := &mockEmbedder{dims: 4}
	p := NewPipeline(embedder, store, Options{RootDir: t.TempDir()}, nil)

	result, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Zero(t, result.FilesIndexed)
	assert.Empty(t, embedder.calls)
	assert.Equal(t, []string{"clear"}, store.ops)
}

func TestPipeline_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := &recordingStore{}
	p := NewPipeline(&mockEmbedder{dims: 4}, store, Options{RootDir: toyRepo(t)}, nil)

	_, err := p.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, store.ops)
}

func TestPipeline_Progress(t *testing.T) {
	p := NewPipeline(&mockEmbedder{dims: 4}, &recordingStore{}, Options{RootDir: sampleRepo(t), BatchSize: 5}, nil)

	var mu sync.Mutex
	last := map[Stage][2]int{}
	parsed := map[string]bool{}
	p.SetProgressFunc(func(stage Stage, processed, total int, current string) {
		mu.Lock()
		defer mu.Unlock()
		last[stage] = [2]int{processed, total}
		if stage == StageParse {
			parsed[current] = true
		}
	})

	_, err := p.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, [2]int{8, 8}, last[StageParse])
	assert.Equal(t, [2]int{8, 8}, last[StageEmbed])
	assert.Equal(t, [2]int{8, 8}, last[StageStore])
	assert.Len(t, parsed, 8)
}

func TestPipeline_Logs(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	p := NewPipeline(&mockEmbedder{dims: 4}, &recordingStore{}, Options{RootDir: toyRepo(t)}, zap.New(core))

	_, err := p.Run(context.Background())
	require.NoError(t, err)

	crawl := logs.FilterMessage("crawl complete").All()
	require.Len(t, crawl, 1)
	assert.EqualValues(t, 2, crawl[0].ContextMap()["files"])
	assert.Equal(t, 1, logs.FilterMessage("index built").Len())
}

func TestPipeline_PersistWithFlatStore(t *testing.T) {
	ctx := context.Background()
	out := filepath.Join(t.TempDir(), "out")

	store, err := vectordb.NewFlatStore(8)
	require.NoError(t, err)
	p := NewPipeline(&mockEmbedder{dims: 8}, store, Options{RootDir: toyRepo(t)}, nil)

	result, err := p.Run(ctx)
	require.NoError(t, err)
	require.NoError(t, p.Persist(ctx, out, result))

	assert.FileExists(t, filepath.Join(out, "index", "flat.db"))

	data, err := os.ReadFile(filepath.Join(out, "blocks.json"))
	require.NoError(t, err)
	var dumped []map[string]any
	require.NoError(t, json.Unmarshal(data, &dumped))
	require.Len(t, dumped, 2)
	kinds := map[string]any{}
	for _, d := range dumped {
		kinds[d["relative_path"].(string)] = d["parsed_kind"]
	}
	assert.Equal(t, map[string]any{"app.py": "code", "README.md": "documentation"}, kinds)

	reloaded, err := vectordb.NewFlatStore(8)
	require.NoError(t, err)
	require.NoError(t, reloaded.Load(ctx, filepath.Join(out, "index")))
	assert.Equal(t, 2, reloaded.Count())
}

func TestPipeline_PersistSaveFailureSkipsDump(t *testing.T) {
	ctx := context.Background()
	out := t.TempDir()
	store := &recordingStore{saveErr: errors.New("read-only")}
	p := NewPipeline(&mockEmbedder{dims: 4}, store, Options{RootDir: toyRepo(t)}, nil)

	result, err := p.Run(ctx)
	require.NoError(t, err)

	err = p.Persist(ctx, out, result)
	assert.ErrorIs(t, err, ErrStore)
	assert.NoFileExists(t, filepath.Join(out, "blocks.json"))
}

func TestWriteBlocks_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "blocks.json")
	require.NoError(t, WriteBlocks(path, nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))
}
