package cli

import (
	"fmt"
	"strconv"

	"github.com/andy/quotepad/internal/domain"
	"github.com/spf13/cobra"
)

var lineCmd = &cobra.Command{
	Use:   "line",
	Short: "Manage line items",
	Long:  `Add, update, and remove line items of the saved invoice.`,
}

var lineAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Append an empty line item",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		inv, err := applyOp(cmd.Context(), domain.AddLineItem{}, nil)
		if err != nil {
			return err
		}
		fmt.Printf("✓ Line %d added\n", len(inv.ProductLines)-1)
		return nil
	},
}

var lineUpdateCmd = &cobra.Command{
	Use:   "update [index] [description|quantity|rate] [value]",
	Short: "Update one column of a line item",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid line index: %w", err)
		}
		field, err := parseLineField(args[1])
		if err != nil {
			return err
		}

		inv, err := applyOp(cmd.Context(), domain.UpdateLineItem{Index: index, Field: field, Value: args[2]}, hasLine(index))
		if err != nil {
			return err
		}

		l := inv.ProductLines[index]
		fmt.Printf("✓ Line %d updated\n", index)
		fmt.Printf("  %s × %s = %s\n", l.Quantity, l.Rate, domain.Money(domain.LineAmount(l)))
		return nil
	},
}

var lineRemoveCmd = &cobra.Command{
	Use:   "remove [index]",
	Short: "Remove a line item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid line index: %w", err)
		}

		inv, err := applyOp(cmd.Context(), domain.RemoveLineItem{Index: index}, hasLine(index))
		if err != nil {
			return err
		}
		fmt.Printf("✓ Line %d removed (%d left)\n", index, len(inv.ProductLines))
		return nil
	},
}

func hasLine(index int) func(domain.Invoice) error {
	return func(inv domain.Invoice) error {
		if index < 0 || index >= len(inv.ProductLines) {
			return fmt.Errorf("no line %d (invoice has %d)", index, len(inv.ProductLines))
		}
		return nil
	}
}

func parseLineField(s string) (domain.LineField, error) {
	switch f := domain.LineField(s); f {
	case domain.LineDescription, domain.LineQuantity, domain.LineRate:
		return f, nil
	}
	return "", fmt.Errorf("unknown line field %q (use description, quantity or rate)", s)
}

func init() {
	lineCmd.AddCommand(lineAddCmd)
	lineCmd.AddCommand(lineUpdateCmd)
	lineCmd.AddCommand(lineRemoveCmd)
}
