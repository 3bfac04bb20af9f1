package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"skillmap/portfolio-api/internal/models"
)

var importCmd = &cobra.Command{
	Use:   "import <file.pdf>...",
	Short: "Run the full import pipeline over one or more PDFs",
	Long:  "Extracts and classifies each PDF, and indexes it into Qdrant when --index is set. Files are processed in order and failures do not stop the batch.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runImport,
}

var (
	importPrompt string
	importIndex  bool
)

func init() {
	importCmd.Flags().StringVarP(&importPrompt, "prompt", "p", "", "Instruction that replaces the default classification prompt")
	importCmd.Flags().BoolVar(&importIndex, "index", false, "Index imported documents into Qdrant (needs QDRANT_URL and GEMINI_API_KEY)")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	p, err := newPipeline(ctx, true, importIndex)
	if err != nil {
		return err
	}
	defer p.Close()

	out := cmd.OutOrStdout()
	failed := 0

	for _, path := range args {
		doc, err := readDocument(path)
		if err != nil {
			failed++
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", path, err)
			continue
		}

		result, err := p.portfolio.Import(ctx, doc, importPrompt)
		if err != nil {
			failed++
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", path, err)
			continue
		}

		if err := writeJSON(out, models.ImportResponse{
			Success:        true,
			Metadata:       result.Metadata,
			Classification: result.Classification,
			Indexed:        result.Indexed,
		}); err != nil {
			return err
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d documents failed", failed, len(args))
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
