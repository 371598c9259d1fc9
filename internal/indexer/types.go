package indexer

import (
	"encoding/json"
	"time"

	"github.com/ziadkadry99/codevec/internal/parser"
	"github.com/ziadkadry99/codevec/internal/walker"
)

// Block is a crawled file together with the structure parsed from it.
type Block struct {
	walker.FileRecord
	Parsed parser.Structure
}

// MarshalJSON flattens the file record and tags the parsed structure with
// its variant name.
func (b Block) MarshalJSON() ([]byte, error) {
	var kind string
	if b.Parsed != nil {
		kind = b.Parsed.Kind()
	}
	return json.Marshal(struct {
		walker.FileRecord
		ParsedKind string           `json:"parsed_kind"`
		Parsed     parser.Structure `json:"parsed"`
	}{b.FileRecord, kind, b.Parsed})
}

// Options configures a Pipeline run.
type Options struct {
	RootDir     string
	Exclude     []string // Extra doublestar globs on top of the fixed ignore rules.
	MaxFileSize int64    // 0 means walker.DefaultMaxFileSize.
	Concurrency int      // Parse workers; < 1 means 4.
	BatchSize   int      // Texts per Embed call; < 1 means 64.
}

// PipelineResult summarizes the outcome of a full indexing run.
type PipelineResult struct {
	Blocks       []Block
	Texts        []string // Texts[i] is the normalized form of Blocks[i].
	FilesIndexed int
	Dimensions   int
	Duration     time.Duration
}

// Stage names a phase of the pipeline in progress callbacks.
type Stage string

const (
	StageParse Stage = "parse"
	StageEmbed Stage = "embed"
	StageStore Stage = "store"
)

// ProgressFunc is called as work completes within a stage. current is the
// file just handled, or empty for batch-level updates.
type ProgressFunc func(stage Stage, processed, total int, current string)
