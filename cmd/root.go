package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/codevec/internal/config"
)

var (
	cfgFile   string
	verbose   bool
	logFormat string
)

var rootCmd = &cobra.Command{
	Use:   "codevec",
	Short: "Semantic vector index for code repositories",
	Long: `codevec crawls a repository, extracts the structure of every source,
documentation and config file, embeds it and stores the vectors in a
searchable index. The index can be queried from the command line, over
HTTP, or by AI agents via MCP.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultConfigFile, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logging)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format: console or json (overrides config)")
}
