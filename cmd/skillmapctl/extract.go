package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var extractCmd = &cobra.Command{
	Use:   "extract <file.pdf>",
	Short: "Print the text extracted from a PDF",
	Long:  "Extracts text from a PDF using its embedded text layer, falling back to OCR when that layer is too thin.",
	Args:  cobra.ExactArgs(1),
	RunE:  runExtract,
}

var extractShowMeta bool

func init() {
	extractCmd.Flags().BoolVar(&extractShowMeta, "meta", false, "Print extraction metadata as JSON instead of the text")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	p, err := newPipeline(ctx, false, false)
	if err != nil {
		return err
	}
	defer p.Close()

	doc, err := readDocument(args[0])
	if err != nil {
		return err
	}

	result, err := p.extractor.Extract(ctx, doc)
	if err != nil {
		return fmt.Errorf("failed to extract %s: %w", doc.Filename, err)
	}

	if extractShowMeta {
		return writeJSON(cmd.OutOrStdout(), result.Metadata)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), result.Text)
	return err
}
