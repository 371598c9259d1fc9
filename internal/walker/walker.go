package walker

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"unicode/utf8"

	"go.uber.org/zap"
)

// WalkerConfig controls the behaviour of the Walk function.
type WalkerConfig struct {
	RootDir     string      // Root directory to walk.
	Exclude     []string    // Extra glob patterns; matching files are skipped.
	MaxFileSize int64       // Files larger than this are skipped (0 = use default).
	Logger      *zap.Logger // Receives per-file skip reasons (nil = discard).
}

// Walk traverses the directory tree rooted at config.RootDir and returns a
// FileRecord for every text file that passes filtering.
//
// Ignored directories are pruned before descent. A file that cannot be
// stat'ed, read or decoded as UTF-8 is logged and skipped; it never aborts
// the walk. The order of the result follows filesystem traversal and callers
// must not rely on it.
func Walk(config WalkerConfig) ([]FileRecord, error) {
	root, err := filepath.Abs(config.RootDir)
	if err != nil {
		return nil, fmt.Errorf("walker: resolve root: %w", err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("walker: stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("walker: root %s is not a directory", root)
	}

	maxSize := config.MaxFileSize
	if maxSize <= 0 {
		maxSize = DefaultMaxFileSize
	}
	log := config.Logger
	if log == nil {
		log = zap.NewNop()
	}

	var records []FileRecord

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			log.Warn("skipping unreadable entry", zap.String("path", path), zap.Error(walkErr))
			if d != nil && d.IsDir() && path != root {
				return filepath.SkipDir
			}
			return nil
		}

		name := d.Name()

		if d.IsDir() {
			if path != root && IsIgnoredDir(name) {
				return filepath.SkipDir
			}
			return nil
		}

		// Only process regular files.
		if !d.Type().IsRegular() {
			return nil
		}

		if isIgnoredFile(name) {
			return nil
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		relPath = filepath.ToSlash(relPath)

		if MatchesExclude(relPath, config.Exclude) {
			return nil
		}

		fi, err := d.Info()
		if err != nil {
			log.Warn("skipping file", zap.String("path", relPath), zap.Error(err))
			return nil
		}
		if fi.Size() > maxSize {
			log.Debug("skipping large file", zap.String("path", relPath), zap.Int64("size", fi.Size()))
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			log.Warn("error reading file", zap.String("path", relPath), zap.Error(err))
			return nil
		}
		if !utf8.Valid(data) {
			log.Debug("skipping non-UTF-8 file", zap.String("path", relPath))
			return nil
		}

		fileType, lang := Classify(name)
		records = append(records, FileRecord{
			Path:     path,
			RelPath:  relPath,
			Content:  string(data),
			Type:     fileType,
			Language: lang,
			Size:     fi.Size(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walker: traversal: %w", err)
	}

	return records, nil
}
