package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"notebook-ai/internal/rag"
)

var (
	searchK       int
	searchSources []string
)

var searchCmd = &cobra.Command{
	Use:   "search [notebook-id] [query]",
	Short: "Search a notebook's sources",
	Long: `Ranks the chunks of a notebook's sources by semantic similarity to the query
and prints the best matches.`,
	Args: cobra.ExactArgs(2),
	RunE: runSearch,
}

var statsCmd = &cobra.Command{
	Use:   "stats [notebook-id]",
	Short: "Show index coverage for a notebook",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations",
	Long:  `Opens the configured database and applies any pending migrations.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cmd.Println("Database is up to date.")
		return nil
	},
}

func init() {
	searchCmd.Flags().IntVarP(&searchK, "limit", "n", rag.DefaultK, "maximum number of chunks to return")
	searchCmd.Flags().StringSliceVarP(&searchSources, "source", "s", nil, "restrict to these source IDs")
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(migrateCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	notebookID, query := args[0], args[1]

	ids, err := notebookService.SourceIDs(ctx, userID, notebookID)
	if err != nil {
		return fmt.Errorf("failed to list sources: %w", err)
	}
	if len(searchSources) > 0 {
		ids = slices.DeleteFunc(ids, func(id string) bool {
			return !slices.Contains(searchSources, id)
		})
	}

	results, err := engine.Search(ctx, rag.SearchRequest{Query: query, SourceIDs: ids, K: searchK})
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if outputJSON {
		return printJSON(cmd, results)
	}
	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i, r := range results {
		cmd.Printf("  [%d] %s (%.2f)\n", i+1, displayTitle(r.SourceTitle), r.Similarity)
		if r.SourceURL != "" {
			cmd.Printf("      Source: %s\n", r.SourceURL)
		}
		cmd.Printf("      %s\n", preview(r.Text, 200))
		cmd.Println()
	}
	return nil
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	if _, err := notebookService.Get(ctx, userID, args[0]); err != nil {
		return fmt.Errorf("failed to get notebook: %w", err)
	}

	stats, err := ingester.Stats(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to compute stats: %w", err)
	}
	if outputJSON {
		return printJSON(cmd, stats)
	}

	cmd.Printf("Sources:\n")
	for status, n := range stats.Sources {
		cmd.Printf("  %-9s %d\n", status, n)
	}
	cmd.Printf("Sources without chunks: %d\n", stats.SourcesWithoutChunks)
	cmd.Printf("Chunks: %d\n", stats.Chunks)
	if stats.Chunks > 0 {
		l := stats.ChunkLength
		cmd.Printf("Chunk length: min %d, max %d, mean %.1f, p95 %d\n", l.Min, l.Max, l.Mean, l.P95)
	}
	cmd.Printf("Chunker: %s\n", stats.ChunkerVersion)
	cmd.Printf("Index version: %s\n", stats.IndexVersion)
	return nil
}

func preview(text string, n int) string {
	text = strings.Join(strings.Fields(text), " ")
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n]) + "…"
}
