package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/andy/journal/internal/log"
	"github.com/andy/journal/internal/service"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export all entries to JSON or XLSX",
	Long: `Export every journal entry. Without a file argument, JSON is written to stdout.
The format is taken from --format, or from the file extension.

Examples:
  journal export > backup.json
  journal export backup.xlsx
  journal export --format json notes.txt`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		formatName, _ := cmd.Flags().GetString("format")
		if formatName == "" {
			formatName = string(service.FormatJSON)
			if len(args) == 1 {
				formatName = args[0]
			}
		}
		format, err := service.ParseFormat(formatName)
		if err != nil {
			return err
		}

		if len(args) == 0 || args[0] == "-" {
			if format == service.FormatXLSX {
				return fmt.Errorf("xlsx export needs an output file")
			}
			_, err := appInstance.Journal.Export(ctx, cmd.OutOrStdout(), format)
			return err
		}

		n, err := exportToFile(ctx, args[0], format)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Exported %d entries to %s\n", n, args[0])
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import entries from a JSON export",
	Long: `Import entries from a JSON array of {"content", "date"} objects.
Either every record is imported or, if any record is malformed, none is.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		yes, _ := cmd.Flags().GetBool("yes")
		if !yes && !confirmPrompt(cmd.InOrStdin(), cmd.OutOrStdout(), fmt.Sprintf("Import entries from %s?", args[0])) {
			fmt.Fprintln(cmd.OutOrStdout(), "Cancelled")
			return nil
		}

		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open import file: %w", err)
		}
		defer f.Close()

		n, err := appInstance.Journal.Import(ctx, f)
		if err != nil {
			cliLog().Error("import failed", "file", args[0], "error", err)
			return fmt.Errorf("import failed: %w", err)
		}
		cliLog().Info("import finished", "file", args[0], "count", n)

		fmt.Fprintf(cmd.OutOrStdout(), "✓ Imported %d entries\n", n)
		return nil
	},
}

// exportToFile writes the export to path, removing the partial file on failure
func exportToFile(ctx context.Context, path string, format service.Format) (int, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create export file: %w", err)
	}

	n, err := appInstance.Journal.Export(ctx, f, format)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		cliLog().Error("export failed", "file", path, "error", err)
		return 0, fmt.Errorf("export failed: %w", err)
	}
	return n, nil
}

func cliLog() *log.Logger {
	return appInstance.Log.WithComponent(log.ComponentCLI)
}

func init() {
	exportCmd.Flags().StringP("format", "f", "", "Export format: json or xlsx")
	importCmd.Flags().BoolP("yes", "y", false, "Skip confirmation prompt")
}
