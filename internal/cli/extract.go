package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wsekete/PDFParseV2/internal/export"
	"github.com/wsekete/PDFParseV2/internal/pdf"
)

var extractCmd = &cobra.Command{
	Use:   "extract FILE",
	Short: "Extract the form field model from a PDF",
	Long: `Extract every form field from a PDF: hierarchy, kind, page geometry,
flags, export values and the label text found near each widget.

Examples:
  pdfparse extract form.pdf                        # CSV to stdout
  pdfparse extract form.pdf --format json          # JSON to stdout
  pdfparse extract form.pdf -o fields.csv          # CSV to a file
  pdfparse extract form.pdf --context-radius 75    # wider label search`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		format, _ := cmd.Flags().GetString("format")
		outPath, _ := cmd.Flags().GetString("output")

		service, err := serviceFor(path)
		if err != nil {
			return err
		}

		result, err := service.ExtractFields(pdf.ExtractFieldsRequest{
			Path:          path,
			ContextRadius: contextRadius,
		})
		if err != nil {
			return err
		}

		out := os.Stdout
		if outPath != "" {
			f, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("creating %s: %w", outPath, err)
			}
			defer f.Close()
			out = f
		}

		switch format {
		case "csv":
			return export.WriteCSV(out, result.Fields)
		case "json":
			return export.WriteJSON(out, result)
		default:
			return fmt.Errorf("unknown format %q (want csv or json)", format)
		}
	},
}

func init() {
	extractCmd.Flags().StringP("format", "f", "csv", "Output format: csv or json")
	extractCmd.Flags().StringP("output", "o", "", "Write to file instead of stdout")
	rootCmd.AddCommand(extractCmd)
}
