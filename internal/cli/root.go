package cli

import (
	"strings"

	"github.com/andy/quotepad/internal/app"
	"github.com/spf13/cobra"
)

var appInstance *app.App

var rootCmd = &cobra.Command{
	Use:   "quotepad",
	Short: "An invoice and quotation editor",
	Long: `Quotepad edits a single invoice or quotation and keeps a print-ready PDF
of it up to date while you type.

By default, running quotepad without arguments launches the terminal editor.
Use subcommands for the browser editor and one-shot operations.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: launch the terminal editor
		return launchEditor(cmd, args)
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetApp sets the app instance for commands to use
func SetApp(a *app.App) {
	appInstance = a
}

// NeedsApp reports whether the command line runs a command that uses the
// store. Help and config commands must work before a database key exists.
func NeedsApp(args []string) bool {
	command := ""
	for _, a := range args {
		switch {
		case a == "-h" || a == "--help":
			return false
		case command == "" && !strings.HasPrefix(a, "-"):
			command = a
		}
	}
	switch command {
	case "help", "config", "completion":
		return false
	}
	return true
}

func init() {
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(lineCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(configCmd)
}
