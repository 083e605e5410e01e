package cli

import (
	"github.com/andy/quotepad/internal/tui"
	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Launch the terminal editor",
	Long:  `Launch the interactive terminal editor for the saved invoice.`,
	RunE:  launchEditor,
}

func launchEditor(cmd *cobra.Command, args []string) error {
	return tui.Run(cmd.Context(), appInstance)
}
