package indexer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// WriteBlocks writes blocks as an indented JSON array to path, creating
// parent directories as needed. An empty slice is written as [].
func WriteBlocks(path string, blocks []Block) error {
	if blocks == nil {
		blocks = []Block{}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(blocks); err != nil {
		f.Close()
		return fmt.Errorf("encode blocks: %w", err)
	}
	return f.Close()
}
