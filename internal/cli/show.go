package cli

import (
	"fmt"
	"strings"

	"github.com/andy/quotepad/internal/domain"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the saved invoice and its totals",
	RunE: func(cmd *cobra.Command, args []string) error {
		inv, err := appInstance.LoadInvoice(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to load invoice: %w", err)
		}
		printInvoice(inv, appInstance.Profile)
		return nil
	},
}

func printInvoice(inv domain.Invoice, p domain.Profile) {
	totals := domain.ComputeTotals(inv)

	fmt.Println(strings.Repeat("=", 80))
	fmt.Printf("%s: %s\n", p.Heading(inv), inv.InvoiceNumber)
	fmt.Println(strings.Repeat("=", 80))
	fmt.Printf("Client:   %s\n", inv.ClientName)
	fmt.Printf("Phone:    %s\n", inv.ClientPhone)
	fmt.Printf("Project:  %s\n", projectText(inv, p))
	fmt.Printf("Date:     %s\n", inv.InvoiceDate)
	fmt.Printf("Delivery: %s\n", inv.InvoiceDueDate)
	fmt.Printf("From:     %s\n", inv.InvoiceFrom)
	fmt.Println()

	if len(inv.ProductLines) > 0 {
		fmt.Println("Line Items:")
		fmt.Println(strings.Repeat("-", 80))
		fmt.Printf("%-4s %s %10s %12s %12s\n", "#", pad("Description", 44), "Quantity", "Rate", "Amount")
		fmt.Println(strings.Repeat("-", 80))
		for i, l := range inv.ProductLines {
			fmt.Printf("%-4d %s %10s %12s %12s\n",
				i,
				pad(l.Description, 44),
				l.Quantity,
				l.Rate,
				domain.Money(totals.Lines[i]),
			)
		}
		fmt.Println(strings.Repeat("-", 80))
	}

	fmt.Println()
	fmt.Printf("Subtotal: %s\n", domain.Money(totals.SubTotal))
	fmt.Printf("%s: %s\n", inv.DiscountLabel, domain.Money(totals.SaleTax))
	fmt.Printf("%s: %s %s\n", inv.TotalLabel, inv.Currency, domain.Money(totals.GrandTotal))
	fmt.Println(strings.Repeat("=", 80))
}

func projectText(inv domain.Invoice, p domain.Profile) string {
	project := p.Project(inv)
	if project == p.OtherToken && inv.OtherProject != "" {
		return project + ". " + inv.OtherProject
	}
	return project
}

// pad truncates or fills s to width terminal cells. Multi line descriptions
// show their first line.
func pad(s string, width int) string {
	s, _, _ = strings.Cut(s, "\n")
	return runewidth.FillRight(runewidth.Truncate(s, width, "…"), width)
}
