package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wsekete/PDFParseV2/internal/pdf"
)

var renameCmd = &cobra.Command{
	Use:   "rename FILE",
	Short: "Rename form fields transactionally",
	Long: `Apply a renaming map to a PDF's form fields. The whole batch is
validated first: unknown fields, malformed names, reserved words and name
collisions reject the batch with every problem listed, and the source
document is never modified in place. The renamed document is written next
to the original as <stem>_BEM_named.pdf unless --output is given.

The map comes from a JSON file (--map, an object of old fully qualified
name to new name) or from repeated --set old=new flags; both may be
combined, --set wins on conflict.

Examples:
  pdfparse rename form.pdf --map plan.json
  pdfparse rename form.pdf --set FirstName=owner-name_first --dry-run
  pdfparse rename form.pdf --map plan.json --no-backup -o out/form_v2.pdf`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		mapPath, _ := cmd.Flags().GetString("map")
		sets, _ := cmd.Flags().GetStringArray("set")
		dryRun, _ := cmd.Flags().GetBool("dry-run")
		noBackup, _ := cmd.Flags().GetBool("no-backup")
		outPath, _ := cmd.Flags().GetString("output")

		renames, err := loadRenameMap(mapPath, sets)
		if err != nil {
			return err
		}
		if len(renames) == 0 {
			return fmt.Errorf("no renames given: use --map or --set")
		}

		service, err := serviceFor(path)
		if err != nil {
			return err
		}

		result, runErr := service.RenameFields(pdf.RenameFieldsRequest{
			Path:         path,
			Renames:      renames,
			DryRun:       dryRun,
			CreateBackup: !noBackup,
			OutputPath:   outPath,
		})
		if result != nil {
			printRenameResult(result)
		}
		return runErr
	},
}

// loadRenameMap merges the JSON map file and --set pairs.
func loadRenameMap(mapPath string, sets []string) (map[string]string, error) {
	renames := make(map[string]string)

	if mapPath != "" {
		data, err := os.ReadFile(mapPath)
		if err != nil {
			return nil, fmt.Errorf("reading rename map: %w", err)
		}
		if err := json.Unmarshal(data, &renames); err != nil {
			return nil, fmt.Errorf("parsing rename map %s: %w", mapPath, err)
		}
	}

	for _, pair := range sets {
		oldName, newName, ok := strings.Cut(pair, "=")
		if !ok || oldName == "" {
			return nil, fmt.Errorf("bad --set value %q (want old=new)", pair)
		}
		renames[oldName] = newName
	}
	return renames, nil
}

func printRenameResult(result *pdf.RenameFieldsResult) {
	if len(result.Problems) > 0 {
		fmt.Fprintf(os.Stderr, "rename batch rejected (%d problems):\n", len(result.Problems))
		for _, p := range result.Problems {
			fmt.Fprintf(os.Stderr, "  [%s] %s\n", p.Rule, p.Message)
		}
		return
	}

	for _, a := range result.Applied {
		fmt.Printf("renamed  %s -> %s\n", a.OldFQN, a.NewFQN)
	}
	for _, s := range result.Skipped {
		fmt.Printf("skipped  %s (%s)\n", s.FQN, s.Reason)
	}
	if result.DryRun {
		fmt.Println("dry run: no files written")
		return
	}
	if result.BackupPath != "" {
		fmt.Printf("backup   %s\n", result.BackupPath)
	}
	if result.OutputPath != "" {
		fmt.Printf("output   %s\n", result.OutputPath)
	}
}

func init() {
	renameCmd.Flags().String("map", "", "JSON file mapping old fully qualified names to new names")
	renameCmd.Flags().StringArray("set", nil, "Single rename as old=new (repeatable)")
	renameCmd.Flags().Bool("dry-run", false, "Validate and report without writing anything")
	renameCmd.Flags().Bool("no-backup", false, "Skip the timestamped backup copy")
	renameCmd.Flags().StringP("output", "o", "", "Output path for the renamed document")
	rootCmd.AddCommand(renameCmd)
}
