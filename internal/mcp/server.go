// Package mcp exposes the code index to AI agents over the Model Context
// Protocol on stdio.
package mcp

import (
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/ziadkadry99/codevec/internal/embeddings"
	"github.com/ziadkadry99/codevec/internal/logging"
	"github.com/ziadkadry99/codevec/internal/vectordb"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes codebase search tools.
type Server struct {
	store     vectordb.VectorStore
	embedder  embeddings.Embedder
	outputDir string
	log       *zap.Logger
	mcp       *server.MCPServer
}

// NewServer creates a new MCP server over a loaded store. outputDir is the
// directory the index was persisted to; file structure lookups read its
// blocks dump.
func NewServer(store vectordb.VectorStore, embedder embeddings.Embedder, outputDir string, logger *zap.Logger) *Server {
	s := &Server{
		store:     store,
		embedder:  embedder,
		outputDir: outputDir,
		log:       logging.OrNop(logger),
	}

	s.mcp = server.NewMCPServer(
		"codevec",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

func (s *Server) registerTools() {
	s.mcp.AddTool(searchCodeTool, s.handleSearchCode)
	s.mcp.AddTool(getFileStructureTool, s.handleGetFileStructure)
	s.mcp.AddTool(indexStatsTool, s.handleIndexStats)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	s.log.Info("mcp server started on stdio", zap.Int("documents", s.store.Count()))
	return server.ServeStdio(s.mcp)
}
