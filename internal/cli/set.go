package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/andy/quotepad/internal/domain"
	"github.com/spf13/cobra"
)

var setCmd = &cobra.Command{
	Use:   "set [field] [value]",
	Short: "Set a field of the saved invoice",
	Long: `Set one scalar field of the saved invoice by its name.

Examples:
  quotepad set clientName 陳大文
  quotepad set discountLabel "Discount (10%)"
  quotepad set --list`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if list, _ := cmd.Flags().GetBool("list"); list {
			for _, name := range domain.FieldNames() {
				kind := "text"
				if domain.IsNumericField(name) {
					kind = "number"
				}
				fmt.Printf("%-28s %s\n", name, kind)
			}
			return nil
		}
		if len(args) != 2 {
			return fmt.Errorf("expected a field name and a value")
		}

		value, err := fieldValue(args[0], args[1])
		if err != nil {
			return err
		}
		inv, err := applyOp(cmd.Context(), domain.SetField{Name: args[0], Value: value}, nil)
		if err != nil {
			return err
		}

		fmt.Printf("✓ %s updated\n", args[0])
		fmt.Printf("  Total: %s %s\n", inv.Currency, domain.Money(domain.ComputeTotals(inv).GrandTotal))
		return nil
	},
}

// fieldValue parses raw for the named field: numbers for numeric fields,
// the text unchanged otherwise.
func fieldValue(name, raw string) (any, error) {
	if !knownField(name) {
		return nil, fmt.Errorf("unknown field %q (see quotepad set --list)", name)
	}
	if !domain.IsNumericField(name) {
		return raw, nil
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return nil, fmt.Errorf("%s expects a number: %w", name, err)
	}
	return n, nil
}

func knownField(name string) bool {
	for _, f := range domain.FieldNames() {
		if f == name {
			return true
		}
	}
	return false
}

// applyOp runs op against the saved invoice and stores the result. check,
// when set, vets the loaded invoice first.
func applyOp(ctx context.Context, op domain.Op, check func(domain.Invoice) error) (domain.Invoice, error) {
	inv, err := appInstance.LoadInvoice(ctx)
	if err != nil {
		return domain.Invoice{}, fmt.Errorf("failed to load invoice: %w", err)
	}
	if check != nil {
		if err := check(inv); err != nil {
			return inv, err
		}
	}
	inv = domain.Reduce(inv, op)
	if err := appInstance.Store.Save(ctx, &inv); err != nil {
		return inv, fmt.Errorf("failed to save invoice: %w", err)
	}
	return inv, nil
}

func init() {
	setCmd.Flags().Bool("list", false, "List the field names")
}
