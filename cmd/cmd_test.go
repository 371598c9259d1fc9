package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziadkadry99/codevec/internal/indexer"
	"github.com/ziadkadry99/codevec/internal/vectordb"
)

// fakeOllama answers /api/embed with 384-dim one-hot vectors keyed on text length.
func fakeOllama(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/embed" {
			http.NotFound(w, r)
			return
		}
		var req struct {
			Input []string `json:"input"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		vecs := make([][]float32, len(req.Input))
		for i, text := range req.Input {
			v := make([]float32, 384)
			v[len(text)%384] = 1
			vecs[i] = v
		}
		json.NewEncoder(w).Encode(map[string]any{"embeddings": vecs})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func writeConfig(t *testing.T, dir, ollamaURL string) string {
	t.Helper()
	path := filepath.Join(dir, "codevec.yml")
	content := "embedding_provider: ollama\n" +
		"embedding_model: all-minilm\n" +
		"ollama_url: " + ollamaURL + "\n" +
		"output_dir: " + filepath.Join(dir, "out") + "\n" +
		"log:\n  level: error\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestIndexThenQuery(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeConfig(t, dir, fakeOllama(t).URL)

	out, err := runCLI(t, "index", "--config", cfgPath, "--repo-path", "../testdata/sample_repo", "--quiet")
	require.NoError(t, err)
	assert.Contains(t, out, "Indexing complete!")
	assert.Contains(t, out, "Files indexed:   8")
	assert.Contains(t, out, "ollama/all-minilm (384 dims)")

	assert.FileExists(t, filepath.Join(dir, "out", indexer.IndexDirName, "flat.db"))
	data, err := os.ReadFile(filepath.Join(dir, "out", indexer.BlocksFileName))
	require.NoError(t, err)
	var blocks []map[string]any
	require.NoError(t, json.Unmarshal(data, &blocks))
	assert.Len(t, blocks, 8)

	out, err = runCLI(t, "query", "--config", cfgPath, "--json", "-k", "3", "where is the handler")
	require.NoError(t, err)
	var results []vectordb.SearchResult
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 3)
	for i := 1; i < len(results); i++ {
		assert.LessOrEqual(t, results[i-1].Distance, results[i].Distance)
	}

	out, err = runCLI(t, "query", "--config", cfgPath, "--json=false", "-k", "2", "anything")
	require.NoError(t, err)
	assert.Contains(t, out, "Found 2 result(s):")
}

func TestQuery_NoIndex(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeConfig(t, dir, fakeOllama(t).URL)

	_, err := runCLI(t, "query", "--config", cfgPath, "--json=false", "-k", "10", "anything")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "codevec index")
}

func TestIndex_InvalidStoreFlag(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeConfig(t, dir, fakeOllama(t).URL)

	_, err := runCLI(t, "index", "--config", cfgPath, "--repo-path", "../testdata/sample_repo", "--quiet", "--store", "faiss")
	assert.Error(t, err)
	indexCmd.Flags().Set("store", "")
}

func TestVersion(t *testing.T) {
	out, err := runCLI(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "codevec dev\n", out)
}
