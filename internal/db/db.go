// Package db persists the flat vector index in a SQLite file.
package db

import (
	"context"
	"database/sql"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"

	_ "modernc.org/sqlite"
)

// ErrCorrupt is returned when a stored index cannot be decoded.
var ErrCorrupt = errors.New("corrupt index database")

// DB wraps a sql.DB holding one saved index.
type DB struct {
	*sql.DB
	path string
}

// Row is one stored vector with its metadata.
type Row struct {
	Path     string
	Language string
	Vector   []float32
}

// Open creates or opens a SQLite database at the given path.
func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	sqlDB, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	d := &DB{DB: sqlDB, path: path}
	if err := d.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return d, nil
}

// OpenMemory creates an in-memory SQLite database (useful for testing).
func OpenMemory() (*DB, error) {
	sqlDB, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening in-memory database: %w", err)
	}
	// Every connection to :memory: is a separate database.
	sqlDB.SetMaxOpenConns(1)

	d := &DB{DB: sqlDB, path: ":memory:"}
	if err := d.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return d, nil
}

// Path returns the file the database was opened from.
func (d *DB) Path() string { return d.path }

func (d *DB) migrate() error {
	_, err := d.Exec(schema)
	return err
}

const schema = `
CREATE TABLE IF NOT EXISTS meta (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS entries (
    id INTEGER PRIMARY KEY,
    path TEXT NOT NULL,
    language TEXT NOT NULL,
    vector BLOB NOT NULL
);
`

// WriteIndex replaces the stored index with rows, all of length dims, in one
// transaction. Row order is kept.
func (d *DB) WriteIndex(ctx context.Context, dims int, rows []Row) error {
	tx, err := d.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM entries`); err != nil {
		return fmt.Errorf("clear entries: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO meta (key, value) VALUES ('dimensions', ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		strconv.Itoa(dims)); err != nil {
		return fmt.Errorf("write dimensions: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO entries (id, path, language, vector) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range rows {
		if _, err := stmt.ExecContext(ctx, i, r.Path, r.Language, EncodeVector(r.Vector)); err != nil {
			return fmt.Errorf("insert %s: %w", r.Path, err)
		}
	}

	return tx.Commit()
}

// ReadIndex returns the stored dimension and rows in insertion order.
func (d *DB) ReadIndex(ctx context.Context) (int, []Row, error) {
	var raw string
	err := d.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = 'dimensions'`).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil, fmt.Errorf("%w: missing dimensions", ErrCorrupt)
	}
	if err != nil {
		return 0, nil, fmt.Errorf("read dimensions: %w", err)
	}
	dims, err := strconv.Atoi(raw)
	if err != nil || dims <= 0 {
		return 0, nil, fmt.Errorf("%w: bad dimensions %q", ErrCorrupt, raw)
	}

	rows, err := d.QueryContext(ctx, `SELECT path, language, vector FROM entries ORDER BY id`)
	if err != nil {
		return 0, nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var r Row
		var blob []byte
		if err := rows.Scan(&r.Path, &r.Language, &blob); err != nil {
			return 0, nil, fmt.Errorf("scan entry: %w", err)
		}
		if r.Vector, err = DecodeVector(blob); err != nil {
			return 0, nil, fmt.Errorf("entry %s: %w", r.Path, err)
		}
		if len(r.Vector) != dims {
			return 0, nil, fmt.Errorf("%w: entry %s has %d dimensions, want %d", ErrCorrupt, r.Path, len(r.Vector), dims)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return 0, nil, fmt.Errorf("iterate entries: %w", err)
	}
	return dims, out, nil
}

// EncodeVector packs v as little-endian float32s.
func EncodeVector(v []float32) []byte {
	buf := make([]byte, 4*len(v))
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[4*i:], math.Float32bits(f))
	}
	return buf
}

// DecodeVector is the inverse of EncodeVector.
func DecodeVector(b []byte) ([]float32, error) {
	if len(b)%4 != 0 {
		return nil, fmt.Errorf("%w: vector blob of %d bytes", ErrCorrupt, len(b))
	}
	v := make([]float32, len(b)/4)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[4*i:]))
	}
	return v, nil
}
