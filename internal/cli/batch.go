package cli

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wsekete/PDFParseV2/internal/batch"
	"github.com/wsekete/PDFParseV2/internal/pdf"
)

var batchCmd = &cobra.Command{
	Use:   "batch DIR",
	Short: "Extract field models from every PDF in a directory",
	Long: `Walk DIR recursively, extract the field model from every PDF with a
worker pool, and write one report file per document plus
batch_processing_summary.json. Backups and outputs of earlier runs are
skipped. Interrupting the run cancels cooperatively: documents already
being processed are finished, queued ones are not started.

Examples:
  pdfparse batch ./forms
  pdfparse batch ./forms --format json --workers 4
  pdfparse batch ./forms --output-dir ./reports`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := args[0]
		workers, _ := cmd.Flags().GetInt("workers")
		format, _ := cmd.Flags().GetString("format")
		outputDir, _ := cmd.Flags().GetString("output-dir")
		verbose, _ := cmd.Flags().GetBool("verbose")

		absDir, err := filepath.Abs(dir)
		if err != nil {
			return err
		}
		service, err := pdf.NewService(maxFileSize, absDir, contextRadius)
		if err != nil {
			return err
		}

		level := slog.LevelWarn
		if verbose {
			level = slog.LevelInfo
		}
		log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		runner := batch.NewRunner(service, log, workers, format)
		summary, err := runner.Run(ctx, absDir, outputDir)
		if summary != nil {
			fmt.Printf("processed %d/%d documents (%d failed, %d canceled) in %dms\n",
				summary.Succeeded, summary.Discovered, summary.Failed,
				summary.Canceled, summary.DurationMS)
		}
		return err
	},
}

func init() {
	batchCmd.Flags().Int("workers", 0, "Worker count (0 = one per CPU)")
	batchCmd.Flags().StringP("format", "f", "csv", "Per-file output format: csv or json")
	batchCmd.Flags().String("output-dir", "", "Directory for report files (default: DIR itself)")
	batchCmd.Flags().BoolP("verbose", "v", false, "Log every processed document")
	rootCmd.AddCommand(batchCmd)
}
