package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/wsekete/PDFParseV2/internal/pdf"
)

var infoCmd = &cobra.Command{
	Use:   "info FILE",
	Short: "Summarize the form structure of a PDF",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		service, err := serviceFor(path)
		if err != nil {
			return err
		}

		result, err := service.AnalyzeFile(pdf.AnalyzeFileRequest{Path: path})
		if err != nil {
			return err
		}

		fmt.Printf("file:       %s\n", result.Path)
		fmt.Printf("size:       %d bytes\n", result.Size)
		fmt.Printf("pages:      %d\n", result.PageCount)
		fmt.Printf("fields:     %d (%d terminal)\n", result.FieldCount, result.LeafCount)
		fmt.Printf("depth:      %d\n", result.MaxDepth)

		kinds := make([]string, 0, len(result.KindCounts))
		for kind := range result.KindCounts {
			kinds = append(kinds, kind)
		}
		sort.Strings(kinds)
		for _, kind := range kinds {
			fmt.Printf("  %-14s %d\n", kind, result.KindCounts[kind])
		}

		if result.SyntheticCount > 0 {
			fmt.Printf("synthetic:  %d\n", result.SyntheticCount)
		}
		if result.UnnamedCount > 0 {
			fmt.Printf("unnamed:    %d\n", result.UnnamedCount)
		}
		for _, v := range result.Violations {
			fmt.Printf("violation:  %s\n", v)
		}
		for _, d := range result.Diagnostics {
			fmt.Printf("diagnostic: %s\n", d)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
