package cmd

import (
	"context"

	"github.com/spf13/cobra"

	mcpserver "github.com/ziadkadry99/codevec/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for AI agent integration",
	Long:  `Starts a Model Context Protocol (MCP) server on stdio, exposing code search tools to AI agents.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		// Stdout carries the protocol, so logs must stay on stderr.
		logger, err := newLogger(cfg)
		if err != nil {
			return err
		}
		defer logger.Sync()

		embedder, err := createEmbedderFromConfig(cfg)
		if err != nil {
			return err
		}
		defer closeEmbedder(embedder)

		store, err := openStore(context.Background(), cfg, embedder)
		if err != nil {
			return err
		}

		mcpserver.Version = Version
		return mcpserver.NewServer(store, embedder, cfg.OutputDir, logger).Serve()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
