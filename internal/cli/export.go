package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the PDF of the saved invoice",
	Long: `Compose and print the saved invoice immediately, without the quiet period
the editors wait for.

Examples:
  quotepad export                  # Write to export.output_dir
  quotepad export -o ~/quote.pdf   # Write to a specific file`,
	RunE: func(cmd *cobra.Command, args []string) error {
		inv, err := appInstance.LoadInvoice(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to load invoice: %w", err)
		}

		art, err := appInstance.Pipeline.Build(inv)
		if err != nil {
			return fmt.Errorf("failed to build pdf: %w", err)
		}

		output, _ := cmd.Flags().GetString("output")
		var path string
		if output == "" {
			path, err = art.Save(appInstance.Config.Export.OutputDir)
		} else {
			path = output
			if err = os.MkdirAll(filepath.Dir(path), 0755); err == nil {
				err = os.WriteFile(path, art.Data, 0644)
			}
		}
		if err != nil {
			return fmt.Errorf("failed to write pdf: %w", err)
		}

		fmt.Printf("✓ PDF written: %s\n", path)
		fmt.Printf("  Size: %d bytes\n", len(art.Data))
		return nil
	},
}

func init() {
	exportCmd.Flags().StringP("output", "o", "", "Output file (defaults to export.output_dir/<heading><number>.pdf)")
}
