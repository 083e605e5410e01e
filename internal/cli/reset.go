package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the saved invoice",
	Long: `Delete the saved invoice. The next editor session starts from the built-in
template.

Examples:
  quotepad reset          # Ask before deleting
  quotepad reset --yes    # Delete without asking`,
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes && !confirmPrompt("This will delete the saved invoice. Continue?") {
			fmt.Println("Cancelled.")
			return nil
		}

		if err := appInstance.Store.Delete(cmd.Context()); err != nil {
			return fmt.Errorf("failed to delete invoice: %w", err)
		}

		fmt.Println("The saved invoice has been deleted.")
		return nil
	},
}

func confirmPrompt(message string) bool {
	fmt.Printf("%s [y/N] ", message)
	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

func init() {
	resetCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}
