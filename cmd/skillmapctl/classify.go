package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var classifyCmd = &cobra.Command{
	Use:   "classify [file.txt]",
	Short: "Classify plain text into skills, categories and a summary",
	Long:  "Classifies text read from a file, or from stdin when no file is given, and prints the merged result as JSON.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runClassify,
}

var classifyPrompt string

func init() {
	classifyCmd.Flags().StringVarP(&classifyPrompt, "prompt", "p", "", "Instruction that replaces the default classification prompt")
	rootCmd.AddCommand(classifyCmd)
}

func runClassify(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	var (
		text []byte
		err  error
	)
	if len(args) == 1 {
		text, err = os.ReadFile(args[0])
	} else {
		text, err = io.ReadAll(cmd.InOrStdin())
	}
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	p, err := newPipeline(ctx, true, false)
	if err != nil {
		return err
	}
	defer p.Close()

	result, err := p.classifier.Classify(ctx, string(text), classifyPrompt)
	if err != nil {
		return err
	}

	return writeJSON(cmd.OutOrStdout(), result)
}
