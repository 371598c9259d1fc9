package walker

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultMaxFileSize is the largest file the crawler will read (10 MiB).
const DefaultMaxFileSize int64 = 10 << 20

// ignoredDirs are pruned before descent; nothing beneath them is visited.
var ignoredDirs = map[string]bool{
	".git":         true,
	"target":       true,
	"build":        true,
	"node_modules": true,
	"__pycache__":  true,
}

// ignoredNames are skipped by exact file name.
var ignoredNames = map[string]bool{
	".DS_Store": true,
}

// ignoredSuffixes cover compiled Python bytecode.
var ignoredSuffixes = []string{".pyc", ".pyo", ".pyd"}

// binaryExtensions are never read.
var binaryExtensions = map[string]bool{
	".wasm":  true,
	".bin":   true,
	".exe":   true,
	".dll":   true,
	".so":    true,
	".dylib": true,
}

// IsIgnoredDir reports whether a directory with this name is pruned.
func IsIgnoredDir(name string) bool {
	return ignoredDirs[name]
}

// isIgnoredFile reports whether a file name matches an ignored-file pattern
// or carries a binary extension.
func isIgnoredFile(name string) bool {
	if ignoredNames[name] {
		return true
	}
	for _, suffix := range ignoredSuffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return binaryExtensions[filepath.Ext(name)]
}

// MatchesExclude returns true if the given relative path matches any of the
// exclude patterns. If patterns is empty, nothing is excluded.
func MatchesExclude(relPath string, patterns []string) bool {
	if len(patterns) == 0 {
		return false
	}

	normalized := filepath.ToSlash(relPath)
	base := filepath.Base(normalized)
	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)
		if matched, err := doublestar.Match(pattern, normalized); err == nil && matched {
			return true
		}
		if matched, err := doublestar.Match(pattern, base); err == nil && matched {
			return true
		}
	}
	return false
}
