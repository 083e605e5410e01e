package view

import (
	"strconv"
	"time"

	"github.com/andy/quotepad/internal/domain"
)

// Options controls one composition.
type Options struct {
	Mode    Mode
	Profile domain.Profile
	Now     time.Time
}

// Widget IDs of the controls.
const (
	DownloadID = "download"
	AddLineID  = "line.add"
)

// LineID names the widget editing column f of row i.
func LineID(i int, f domain.LineField) string {
	return "line." + strconv.Itoa(i) + "." + string(f)
}

// RemoveLineID names the remove control of row i.
func RemoveLineID(i int) string {
	return "line." + strconv.Itoa(i) + ".remove"
}

func set(name string) Binding {
	return func(v string) domain.Op { return domain.SetField{Name: name, Value: v} }
}

func setLine(i int, f domain.LineField) Binding {
	return func(v string) domain.Op { return domain.UpdateLineItem{Index: i, Field: f, Value: v} }
}

func options(values []string) []Option {
	out := make([]Option, len(values))
	for i, v := range values {
		out[i] = Option{Value: v, Text: v}
	}
	return out
}

// Compose builds the full document for inv. The tree has the same shape in
// both modes apart from interactive-only controls and, in print, empty rows
// and a zero discount block.
func Compose(inv domain.Invoice, opts Options) *Node {
	m := opts.Mode
	p := opts.Profile
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	totals := domain.ComputeTotals(inv)
	issued, due := domain.Dates(inv, now, p.DueDays)
	heading := p.Heading(inv)

	field := func(f Field) *Node { return FieldNode(m, f) }
	label := func(class, text string) *Node {
		return field(TextInput{Class: class, Value: text, ReadOnly: true})
	}
	input := func(name, class, prefix, placeholder, value string) *Node {
		return field(TextInput{ID: name, Class: class, Prefix: prefix, Placeholder: placeholder, Value: value, OnChange: set(name)})
	}
	calendar := func(name string, day time.Time) *Node {
		return field(Calendar{ID: name, Value: domain.FormatDate(day), Selected: day, OnChange: set(name)})
	}
	pair := func(class string, left, right *Node) *Node {
		return View(m, class, View(m, "w-40", left), View(m, "w-60", right))
	}

	logoWidth := inv.LogoWidth
	if logoWidth <= 0 {
		logoWidth = p.LogoWidth
	}
	logo := inv.Logo
	if logo == "" {
		logo = p.Logo
	}

	header := View(m, "flex",
		View(m, "w-55",
			field(Picture{Class: "logo", Src: logo, Width: logoWidth}),
			label("bold", p.CompanyName),
			label("", p.CompanyPhone),
			label("", p.CompanyAddress),
			label("", p.CompanyEmail),
		),
		View(m, "w-45 pl-4",
			pair("flex mb-5 mt-100", label("bold", p.DateLabel), calendar("invoiceDate", issued)),
			pair("flex mb-5", label("bold", heading+p.NumberSuffix), input("invoiceNumber", "", "", "", inv.InvoiceNumber)),
		),
	)

	client := View(m, "flex mt-20",
		View(m, "w-55",
			label("bold dark mb-5", p.BillToLabel),
			input("clientName", "", "聯絡人: ", "輸入聯絡人姓名", inv.ClientName),
			input("clientPhone", "", "電話: ", "輸入電話", inv.ClientPhone),
			input("clientMail", "", "電郵: ", "輸入電郵", inv.ClientMail),
			field(Select{
				ID:            "clientProject",
				OtherID:       "otherProject",
				Prefix:        "項目: ",
				Value:         p.Project(inv),
				Options:       options(p.Projects),
				OtherToken:    p.OtherToken,
				OtherValue:    inv.OtherProject,
				OnChange:      set("clientProject"),
				OnOtherChange: set("otherProject"),
			}),
			input("clientContactName", "", "場地聯絡人: ", "輸入場地聯絡人", inv.ClientContactName),
			input("clientContactPhone", "", "場地聯絡人電話: ", "輸入場地聯絡人電話", inv.ClientContactPhone),
			input("clientAddress", "", "送貨地點: ", "輸入送貨地點", inv.ClientAddress),
			input("clientRemarks", "", "備註: ", "輸入備註", inv.ClientRemarks),
		),
		View(m, "w-45 pl-4",
			pair("flex mb-5", label("bold", p.DueDateLabel), calendar("invoiceDueDate", due)),
			pair("flex mb-5", label("bold", p.QuoteFromLabel), field(TextInput{
				ID:          "invoiceFrom",
				Placeholder: p.QuoteFromHint,
				Value:       inv.InvoiceFrom,
				ListID:      "invoiceFromList",
				Suggestions: p.InvoiceFrom,
				OnChange:    set("invoiceFrom"),
			})),
		),
	)

	columns := View(m, "mt-30 bg-dark flex",
		View(m, "w-48 p-4-8", input("productLineDescription", "white bold", "", "", inv.ProductLineDescription)),
		View(m, "w-17 p-4-8", input("productLineQuantity", "white bold right", "", "", inv.ProductLineQuantity)),
		View(m, "w-17 p-4-8", input("productLineQuantityRate", "white bold right", "", "", inv.ProductLineQuantityRate)),
		View(m, "w-18 p-4-8", input("productLineQuantityAmount", "white bold right", "", "", inv.ProductLineQuantityAmount)),
	)

	body := []*Node{
		ControlNode(m, &Control{ID: DownloadID, Action: ActionDownload, Label: "Save PDF"}),
		View(m, "heading", field(Select{
			ID:       "heading",
			Class:    "fs-45 center red",
			Value:    heading,
			Options:  options(p.Headings),
			OnChange: set("heading"),
		})),
		header,
		client,
		columns,
	}

	for i, l := range inv.ProductLines {
		if m == Print && l.Description == "" {
			continue
		}
		body = append(body, View(m, "row flex",
			View(m, "w-48 p-4-8 pb-10", field(Textarea{
				ID:          LineID(i, domain.LineDescription),
				Class:       "dark",
				Rows:        2,
				Placeholder: "Enter item name/description",
				Value:       l.Description,
				OnChange:    setLine(i, domain.LineDescription),
			})),
			View(m, "w-17 p-4-8 pb-10", field(TextInput{
				ID: LineID(i, domain.LineQuantity), Class: "dark right", Value: l.Quantity, OnChange: setLine(i, domain.LineQuantity),
			})),
			View(m, "w-17 p-4-8 pb-10", field(TextInput{
				ID: LineID(i, domain.LineRate), Class: "dark right", Value: l.Rate, OnChange: setLine(i, domain.LineRate),
			})),
			View(m, "w-18 p-4-8 pb-10", label("dark right", domain.Money(totals.Lines[i]))),
			ControlNode(m, &Control{ID: RemoveLineID(i), Action: ActionRemoveLine, Index: i, Label: "×"}),
		))
	}

	discountLabel := inv.DiscountLabel
	if discountLabel == "" {
		discountLabel = p.DiscountDefault
	}
	var summary []*Node
	if !totals.SaleTax.IsZero() || m != Print {
		summary = append(summary,
			View(m, "flex alignItemsCenter",
				View(m, "w-50 p-5", input("subTotalLabel", "", "", "", inv.SubTotalLabel)),
				View(m, "w-50 p-5", Text(m, "right bold dark", domain.Money(totals.SubTotal))),
			),
			View(m, "flex alignItemsCenter",
				View(m, "w-50 p-5", input("discountLabel", "", "", "", discountLabel)),
				View(m, "w-50 p-5", Text(m, "right bold dark", domain.Money(totals.SaleTax))),
			),
		)
	}
	summary = append(summary, View(m, "flex bg-gray p-5 alignItemsCenter",
		View(m, "w-50 p-5", input("totalLabel", "bold", "", "", inv.TotalLabel)),
		View(m, "w-50 p-5 flex alignItemsCenter",
			input("currency", "dark bold right ml-30", "", "", inv.Currency),
			Text(m, "right bold dark w-auto", domain.Money(totals.GrandTotal)),
		),
	))

	body = append(body,
		View(m, "flex",
			View(m, "w-50 mt-10", ControlNode(m, &Control{ID: AddLineID, Action: ActionAddLine, Label: "Add Line Item"})),
			View(m, "w-50 mt-20", summary...),
		),
		View(m, "mt-20",
			label("bold w-100", p.TermsLabel),
			field(Textarea{Class: "w-100 fs-10", Rows: 2, Value: p.Terms, ReadOnly: true}),
		),
	)

	return Document(m, Page(m, "invoice-wrapper", body...))
}
