package export

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/andy/quotepad/internal/domain"
	"github.com/andy/quotepad/internal/view"
)

func TestFileName(t *testing.T) {
	tests := []struct {
		heading, number, want string
	}{
		{"", "", "發票.pdf"},
		{"報價單", "G20240105150405", "報價單G20240105150405.pdf"},
		{"收據", "", "收據.pdf"},
		{"", "A/B", "發票A_B.pdf"},
	}
	for _, tt := range tests {
		got := FileName(domain.Invoice{Heading: tt.heading, InvoiceNumber: tt.number})
		if got != tt.want {
			t.Errorf("FileName(%q, %q) = %q, want %q", tt.heading, tt.number, got, tt.want)
		}
	}
}

type mockPrinter struct {
	tree *view.Node
}

func (m *mockPrinter) Print(doc *view.Node) ([]byte, error) {
	m.tree = doc
	return []byte("%PDF-mock"), nil
}

type simplifiedToTraditional struct{}

func (simplifiedToTraditional) Convert(s string) string {
	if s == "发票" {
		return "發票"
	}
	return s
}

func TestPipelineBuild(t *testing.T) {
	printer := &mockPrinter{}
	p := &Pipeline{
		Printer:  printer,
		Translit: simplifiedToTraditional{},
		Profile:  domain.DefaultProfile(),
		Now:      func() time.Time { return time.Date(2024, time.January, 5, 0, 0, 0, 0, time.Local) },
	}

	inv := domain.DefaultInvoice()
	inv.Heading = "发票"
	inv.InvoiceNumber = "G1"
	inv.ProductLines = []domain.LineItem{{Description: "发票", Quantity: "1", Rate: "1"}}

	a, err := p.Build(inv)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if a.FileName != "发票G1.pdf" {
		t.Fatalf("expected file name from the untransliterated snapshot, got %s", a.FileName)
	}
	if a.ID == "" || !bytes.Equal(a.Data, []byte("%PDF-mock")) {
		t.Fatalf("unexpected artifact %+v", a)
	}

	var printed []string
	view.Walk(printer.tree, func(n *view.Node) {
		if n.Mode != view.Print {
			t.Fatalf("expected a print tree, found %v node", n.Mode)
		}
		if n.Kind == view.KindField && n.Out.Static != nil {
			printed = append(printed, n.Out.Static.Text())
		}
	})
	found := 0
	for _, s := range printed {
		if s == "發票" {
			found++
		}
	}
	if found != 2 {
		t.Fatalf("expected heading and description transliterated, got %v", printed)
	}
	if inv.Heading != "发票" {
		t.Fatal("pipeline modified the live invoice")
	}
}

func TestArtifactSave(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	a := &Artifact{FileName: "發票G1.pdf", Data: []byte("%PDF")}
	path, err := a.Save(dir)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "%PDF" {
		t.Fatalf("unexpected file content %q %v", data, err)
	}
}
