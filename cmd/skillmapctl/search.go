package main

import (
	"strings"

	"github.com/spf13/cobra"

	"skillmap/portfolio-api/internal/models"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search indexed portfolio chunks",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSearch,
}

var searchLimit int

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 5, "Maximum number of matches")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	p, err := newPipeline(ctx, false, true)
	if err != nil {
		return err
	}
	defer p.Close()

	query := strings.Join(args, " ")
	matches, err := p.portfolio.Search(ctx, query, searchLimit)
	if err != nil {
		return err
	}

	return writeJSON(cmd.OutOrStdout(), models.SearchResponse{Query: query, Results: matches})
}
