package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/codevec/internal/vectordb"
)

var queryCmd = &cobra.Command{
	Use:   "query [question]",
	Short: "Semantically search the indexed repository",
	Long:  `Embeds a natural language query with the index's model and prints the nearest files, closest first.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runQuery,
}

func init() {
	queryCmd.Flags().IntP("limit", "k", 10, "maximum number of results")
	queryCmd.Flags().String("output-dir", "", "directory holding the index (overrides config)")
	queryCmd.Flags().Bool("json", false, "output results as JSON")
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	queryText := args[0]

	limit, _ := cmd.Flags().GetInt("limit")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if v, _ := cmd.Flags().GetString("output-dir"); v != "" {
		cfg.OutputDir = v
	}

	embedder, err := createEmbedderFromConfig(cfg)
	if err != nil {
		return err
	}
	defer closeEmbedder(embedder)

	store, err := openStore(ctx, cfg, embedder)
	if err != nil {
		return err
	}

	results, err := vectordb.Query(ctx, store, embedder, queryText, limit)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		if results == nil {
			results = []vectordb.SearchResult{}
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	fmt.Fprint(out, vectordb.FormatResults(results))
	return nil
}
