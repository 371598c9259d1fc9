package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"github.com/ziadkadry99/codevec/internal/indexer"
	"github.com/ziadkadry99/codevec/internal/vectordb"
)

const defaultLimit = 10

// handleSearchCode performs semantic search over the vector store.
func (s *Server) handleSearchCode(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil || strings.TrimSpace(query) == "" {
		return mcp.NewToolResultError("missing required parameter: query"), nil
	}

	limit := request.GetInt("limit", defaultLimit)
	if limit <= 0 {
		limit = defaultLimit
	}
	language := request.GetString("language", "")

	// A language filter is applied after ranking, so rank everything.
	k := limit
	if language != "" {
		k = s.store.Count()
	}

	results, err := vectordb.Query(ctx, s.store, s.embedder, query, k)
	if err != nil {
		s.log.Error("search failed", zap.String("query", query), zap.Error(err))
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}

	if language != "" {
		filtered := results[:0]
		for _, r := range results {
			if strings.EqualFold(r.Metadata.Language, language) {
				filtered = append(filtered, r)
			}
		}
		results = filtered
		if len(results) > limit {
			results = results[:limit]
		}
	}

	if len(results) == 0 {
		return mcp.NewToolResultText("No results found. The repository may not be indexed yet. Run `codevec index` to index it."), nil
	}

	return mcp.NewToolResultText(formatSearchResults(results)), nil
}

// handleGetFileStructure returns the dumped block for one file.
func (s *Server) handleGetFileStructure(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	filePath, err := request.RequireString("file_path")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: file_path"), nil
	}
	filePath = filepath.ToSlash(filepath.Clean(filePath))

	block, err := s.findBlock(filePath)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return mcp.NewToolResultError("No index dump found. Run `codevec index` to build the index."), nil
	case err != nil:
		return mcp.NewToolResultError(fmt.Sprintf("failed to read index dump: %v", err)), nil
	case block == nil:
		return mcp.NewToolResultError(fmt.Sprintf("%q is not in the index", filePath)), nil
	}

	var out bytes.Buffer
	if err := json.Indent(&out, block, "", "  "); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("malformed index dump: %v", err)), nil
	}
	return mcp.NewToolResultText(out.String()), nil
}

// findBlock scans the blocks dump for relPath. It returns nil, nil when the
// dump exists but holds no such file.
func (s *Server) findBlock(relPath string) (json.RawMessage, error) {
	data, err := os.ReadFile(filepath.Join(s.outputDir, indexer.BlocksFileName))
	if err != nil {
		return nil, err
	}

	var blocks []json.RawMessage
	if err := json.Unmarshal(data, &blocks); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", indexer.BlocksFileName, err)
	}
	for _, raw := range blocks {
		var head struct {
			RelPath string `json:"relative_path"`
		}
		if err := json.Unmarshal(raw, &head); err != nil {
			return nil, fmt.Errorf("decoding %s: %w", indexer.BlocksFileName, err)
		}
		if head.RelPath == relPath {
			return raw, nil
		}
	}
	return nil, nil
}

func (s *Server) handleIndexStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(fmt.Sprintf(
		"Indexed files: %d\nEmbedding model: %s\nDimensions: %d\n",
		s.store.Count(), s.embedder.Name(), s.embedder.Dimensions(),
	)), nil
}

// formatSearchResults converts search results into a text format suited to
// AI agent consumption.
func formatSearchResults(results []vectordb.SearchResult) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d result(s):\n", len(results))

	for i, r := range results {
		fmt.Fprintf(&sb, "\n--- Result %d ---\n", i+1)
		fmt.Fprintf(&sb, "File: %s\n", r.Metadata.Path)
		if r.Metadata.Language != "" && r.Metadata.Language != "unknown" {
			fmt.Fprintf(&sb, "Language: %s\n", r.Metadata.Language)
		}
		fmt.Fprintf(&sb, "Distance: %.4f\n", r.Distance)
	}

	return sb.String()
}
