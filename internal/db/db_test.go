package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenMemory(t *testing.T) {
	d, err := OpenMemory()
	require.NoError(t, err)
	defer d.Close()

	for _, table := range []string{"meta", "entries"} {
		var count int
		err := d.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&count)
		assert.NoError(t, err, "table %s", table)
	}
}

func TestMigrateIdempotent(t *testing.T) {
	d, err := OpenMemory()
	require.NoError(t, err)
	defer d.Close()

	require.NoError(t, d.migrate())
}

func TestWriteReadIndex(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "flat.db")

	d, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, path, d.Path())

	rows := []Row{
		{Path: "b.py", Language: "python", Vector: []float32{1, -2.5, 0}},
		{Path: "a.rs", Language: "rust", Vector: []float32{0.125, 3, 1e-7}},
	}
	require.NoError(t, d.WriteIndex(ctx, 3, rows))
	require.NoError(t, d.Close())

	d, err = Open(path)
	require.NoError(t, err)
	defer d.Close()

	dims, got, err := d.ReadIndex(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, dims)
	assert.Equal(t, rows, got, "order and values survive a round trip")
}

func TestWriteIndexReplaces(t *testing.T) {
	ctx := context.Background()
	d, err := OpenMemory()
	require.NoError(t, err)
	defer d.Close()

	require.NoError(t, d.WriteIndex(ctx, 2, []Row{{Path: "old", Language: "go", Vector: []float32{1, 1}}}))
	require.NoError(t, d.WriteIndex(ctx, 1, []Row{{Path: "new", Language: "c", Vector: []float32{9}}}))

	dims, got, err := d.ReadIndex(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, dims)
	require.Len(t, got, 1)
	assert.Equal(t, "new", got[0].Path)
}

func TestReadIndex_Empty(t *testing.T) {
	d, err := OpenMemory()
	require.NoError(t, err)
	defer d.Close()

	_, _, err = d.ReadIndex(context.Background())
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestReadIndex_WrongLength(t *testing.T) {
	ctx := context.Background()
	d, err := OpenMemory()
	require.NoError(t, err)
	defer d.Close()

	require.NoError(t, d.WriteIndex(ctx, 2, []Row{{Path: "x", Language: "go", Vector: []float32{1, 2, 3}}}))

	_, _, err = d.ReadIndex(ctx)
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestDecodeVector_BadLength(t *testing.T) {
	_, err := DecodeVector([]byte{1, 2, 3})
	assert.ErrorIs(t, err, ErrCorrupt)

	v, err := DecodeVector(EncodeVector([]float32{-1, 2}))
	require.NoError(t, err)
	assert.Equal(t, []float32{-1, 2}, v)
}
