// Package cli implements the pdfparse command-line interface.
package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/wsekete/PDFParseV2/internal/config"
	"github.com/wsekete/PDFParseV2/internal/pdf"
)

var (
	// Global flags
	maxFileSize   int64
	contextRadius float64

	// Build metadata, set by main
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "pdfparse",
	Short: "PDF form field extraction and renaming",
	Long: `pdfparse extracts the complete form field model from interactive PDFs
(hierarchy, types, geometry, on-page labels) and applies renaming maps to
field identifiers transactionally: the whole batch is validated first, and
a failed rename never touches the source document.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion injects build metadata from main.
func SetVersion(v, c, d string) {
	version, commit, date = v, c, d
}

func init() {
	rootCmd.PersistentFlags().Int64Var(&maxFileSize, "maxfilesize", config.DefaultMaxFileSize,
		"Maximum PDF file size in bytes")
	rootCmd.PersistentFlags().Float64Var(&contextRadius, "context-radius", config.DefaultContextRadius,
		"Label search distance around form widgets, in points")
}

// serviceFor builds a service whose working directory is the parent of the
// given file or directory, so path validation holds for exactly that tree.
func serviceFor(path string) (*pdf.Service, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	return pdf.NewService(maxFileSize, filepath.Dir(abs), contextRadius)
}
