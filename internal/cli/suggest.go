package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wsekete/PDFParseV2/internal/pdf"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest FILE",
	Short: "Propose BEM names for a PDF's form fields",
	Long: `Derive a BEM name proposal for every field from its on-page label,
tooltip or existing name. Proposals are deterministic and unique within
the document; radio groups get the --group suffix.

With --json the output is a rename map suitable for 'pdfparse rename --map'
after review.

Examples:
  pdfparse suggest form.pdf
  pdfparse suggest form.pdf --json > plan.json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		asJSON, _ := cmd.Flags().GetBool("json")

		service, err := serviceFor(path)
		if err != nil {
			return err
		}

		result, err := service.SuggestNames(pdf.SuggestNamesRequest{Path: path})
		if err != nil {
			return err
		}

		if asJSON {
			plan := make(map[string]string, len(result.Suggestions))
			for _, s := range result.Suggestions {
				plan[s.FQN] = s.Name
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(plan)
		}

		for _, s := range result.Suggestions {
			fmt.Printf("%-40s %-40s %.1f\n", s.FQN, s.Name, s.Confidence)
		}
		return nil
	},
}

func init() {
	suggestCmd.Flags().Bool("json", false, "Emit a rename map as JSON")
	rootCmd.AddCommand(suggestCmd)
}
