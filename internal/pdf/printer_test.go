package pdf

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/andy/quotepad/internal/domain"
	"github.com/andy/quotepad/internal/view"
)

func asciiProfile() domain.Profile {
	p := domain.DefaultProfile()
	p.CompanyName = "Giftery Ltd"
	p.CompanyPhone = "(+853)68852522"
	p.CompanyAddress = "35-49 Rua do Padre"
	p.CompanyEmail = "giftery.mo@gmail.com"
	p.Headings = []string{"Invoice", "Receipt", "Quote"}
	p.Projects = []string{"Choose", "Wedding", "Other"}
	p.OtherToken = "Other"
	p.DateLabel = "Date"
	p.NumberSuffix = " No."
	p.BillToLabel = "Quote for"
	p.DueDateLabel = "Delivery"
	p.QuoteFromLabel = "Quoted by"
	p.Terms = "* line one\n* line two"
	return p
}

func printTree(inv domain.Invoice) *view.Node {
	return view.Compose(inv, view.Options{
		Mode:    view.Print,
		Profile: asciiProfile(),
		Now:     time.Date(2024, time.January, 5, 0, 0, 0, 0, time.Local),
	})
}

func TestWrap(t *testing.T) {
	size := 10.0
	cell := cellMM(size)

	got := wrap("hello world again", cell*11.5, size)
	if strings.Join(got, "|") != "hello world|again" {
		t.Fatalf("unexpected latin wrap %q", got)
	}

	// Wide runes take two cells and break anywhere.
	got = wrap("禮意店有限公司", cell*6.5, size)
	if strings.Join(got, "|") != "禮意店|有限公|司" {
		t.Fatalf("unexpected cjk wrap %q", got)
	}

	if got := wrap("", cell*5.5, size); len(got) != 1 || got[0] != "" {
		t.Fatalf("expected one empty line, got %q", got)
	}
}

func TestColumnWidths(t *testing.T) {
	row := view.View(view.Print, "flex",
		view.View(view.Print, "w-48"),
		view.View(view.Print, "w-17"),
		view.Text(view.Print, "w-auto", "x"),
		view.Text(view.Print, "ml-30", "y"),
	)
	got := columnWidths(row.Children, 100)
	want := []float64{48, 17, 17.5, 17.5}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("column %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestBandsFollowPageChildren(t *testing.T) {
	inv := domain.DefaultInvoice()
	inv.ProductLines = []domain.LineItem{
		{Description: "Flowers", Quantity: "2", Rate: "50"},
		{Description: "", Quantity: "1", Rate: "10"},
		{Description: "Ribbon", Quantity: "1", Rate: "5"},
	}
	tree := printTree(inv)
	page := findPage(tree)

	l := layout{}
	bands := l.bands(page, 180)
	// heading, header, client, columns, two rows, totals, terms
	if len(bands) != 8 {
		t.Fatalf("expected 8 bands, got %d", len(bands))
	}

	columns := bands[3]
	if columns.Background != "#666" {
		t.Fatalf("expected dark column header, got %q", columns.Background)
	}
	if columns.MarginTop <= 0 {
		t.Fatal("expected the column header margin to become spacing")
	}
	if bands[4].Border == "" {
		t.Fatal("expected line rows to carry a bottom border")
	}
	for _, b := range bands {
		if b.Height <= 0 {
			t.Fatalf("band with no height: %+v", b)
		}
		for _, tb := range b.Texts {
			if tb.Y < 0 || tb.Y > b.Height+0.01 {
				t.Fatalf("text %q placed outside its band: y=%v h=%v", tb.Text, tb.Y, b.Height)
			}
		}
	}
}

func TestBandsHonourKeep(t *testing.T) {
	loose := view.View(view.Print, "mt-10",
		view.Text(view.Print, "", "a"),
		view.Text(view.Print, "", "b"),
	)
	loose.Keep = false
	kept := view.View(view.Print, "",
		view.Text(view.Print, "", "c"),
		view.Text(view.Print, "", "d"),
	)
	page := view.Page(view.Print, "", loose, kept)

	bands := (&layout{}).bands(page, 180)
	if len(bands) != 3 {
		t.Fatalf("expected 3 bands, got %d", len(bands))
	}
	if len(bands[0].Texts) != 1 || bands[0].Texts[0].Text != "a" {
		t.Fatalf("expected the loose column to split, got %+v", bands[0].Texts)
	}
	if bands[0].MarginTop <= 0 {
		t.Fatal("expected the loose column margin on its first band")
	}
	if len(bands[2].Texts) != 2 {
		t.Fatalf("expected the kept column to stay whole, got %d texts", len(bands[2].Texts))
	}
}

func TestTermsKeepLineBreaks(t *testing.T) {
	page := findPage(printTree(domain.DefaultInvoice()))
	bands := (&layout{}).bands(page, 180)
	terms := bands[len(bands)-1]

	var lines []string
	for _, tb := range terms.Texts {
		if strings.HasPrefix(tb.Text, "* line") {
			lines = append(lines, tb.Text)
		}
	}
	if len(lines) != 2 {
		t.Fatalf("expected two terms lines, got %q", lines)
	}
}

func TestPrintProducesPDF(t *testing.T) {
	inv := domain.DefaultInvoice()
	inv.Heading = "Quote"
	inv.InvoiceNumber = "G20240105000000"
	inv.ProductLineDescription = "Item"
	inv.ProductLineQuantity = "Qty"
	inv.ProductLineQuantityRate = "Rate"
	inv.ProductLineQuantityAmount = "Amount"
	inv.SubTotalLabel = "Subtotal"
	inv.DiscountLabel = "Discount (10%)"
	inv.TotalLabel = "Total"
	inv.ProductLines = []domain.LineItem{{Description: "Flowers", Quantity: "2", Rate: "50.00"}}

	p, err := New(Font{}, Margins{})
	if err != nil {
		t.Fatalf("failed to create printer: %v", err)
	}
	out, err := p.Print(printTree(inv))
	if err != nil {
		t.Fatalf("failed to print: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Fatalf("expected PDF output, got %q", out[:min(len(out), 8)])
	}
}

func TestNewDefaultsToUTF8Font(t *testing.T) {
	p, err := New(Font{}, Margins{})
	if err != nil {
		t.Fatalf("failed to create printer: %v", err)
	}
	if p.Family() != DefaultFamily {
		t.Fatalf("expected family %q, got %q", DefaultFamily, p.Family())
	}
	if len(p.fonts) != 2 {
		t.Fatalf("expected regular and bold faces, got %d", len(p.fonts))
	}
	for _, f := range p.fonts {
		if f.Family != DefaultFamily || len(f.Bytes) == 0 {
			t.Fatalf("expected embedded %s face, got %q with %d bytes", DefaultFamily, f.Family, len(f.Bytes))
		}
	}
}

func TestPrintChineseUsesUTF8Font(t *testing.T) {
	inv := domain.DefaultInvoice()
	inv.InvoiceNumber = "G20240105000000"
	inv.ProductLines = []domain.LineItem{{Description: "手工禮盒", Quantity: "2", Rate: "50.00"}}
	tree := view.Compose(inv, view.Options{
		Mode:    view.Print,
		Profile: domain.DefaultProfile(),
		Now:     time.Date(2024, time.January, 5, 0, 0, 0, 0, time.Local),
	})

	p, err := New(Font{}, Margins{})
	if err != nil {
		t.Fatalf("failed to create printer: %v", err)
	}
	out, err := p.Print(tree)
	if err != nil {
		t.Fatalf("failed to print: %v", err)
	}
	if !bytes.Contains(out, []byte("/Encoding /Identity-H")) {
		t.Fatal("expected text to be written with a UTF-8 (Identity-H) font")
	}
}

func TestNewMissingFontFile(t *testing.T) {
	_, err := New(Font{Family: "noto", Regular: t.TempDir() + "/missing.ttf"}, Margins{})
	if err == nil {
		t.Fatal("expected an error for a missing font file")
	}
}

func TestPrintWithoutPage(t *testing.T) {
	p, _ := New(Font{}, Margins{})
	if _, err := p.Print(view.Document(view.Print)); err != ErrEmptyDocument {
		t.Fatalf("expected ErrEmptyDocument, got %v", err)
	}
}
