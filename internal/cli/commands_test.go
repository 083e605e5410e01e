package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/andy/quotepad/internal/app"
	"github.com/andy/quotepad/internal/config"
	"github.com/andy/quotepad/internal/domain"
	"github.com/andy/quotepad/internal/export"
	"github.com/andy/quotepad/internal/repository"
	"github.com/andy/quotepad/internal/translit"
	"github.com/andy/quotepad/internal/view"
)

var fakePDF = []byte("%PDF-1.3 fake")

type fakePrinter struct{}

func (fakePrinter) Print(doc *view.Node) ([]byte, error) {
	return fakePDF, nil
}

// newTestApp installs an app backed by the memory store for the duration of
// the test.
func newTestApp(t *testing.T) *app.App {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Storage.Driver = "memory"
	cfg.Export.OutputDir = t.TempDir()

	profile := domain.DefaultProfile()
	a := &app.App{
		Config:  cfg,
		Profile: profile,
		Store:   repository.NewMemoryStore(),
		Pipeline: &export.Pipeline{
			Printer:  fakePrinter{},
			Translit: translit.Identity{},
			Profile:  profile,
		},
	}

	prev := appInstance
	SetApp(a)
	t.Cleanup(func() { SetApp(prev) })
	return a
}

// run executes the root command with args and returns what it printed.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	stdout := os.Stdout
	os.Stdout = w

	out := make(chan string)
	go func() {
		var buf bytes.Buffer
		io.Copy(&buf, r)
		out <- buf.String()
	}()

	rootCmd.SetArgs(args)
	rootCmd.SetOut(io.Discard)
	rootCmd.SetErr(io.Discard)
	runErr := rootCmd.ExecuteContext(context.Background())

	w.Close()
	os.Stdout = stdout
	return <-out, runErr
}

func saved(t *testing.T, a *app.App) *domain.Invoice {
	t.Helper()
	inv, err := a.Store.Load(context.Background())
	if err != nil {
		t.Fatalf("expected a saved invoice, got %v", err)
	}
	return inv
}

func TestLineUpdateCommand(t *testing.T) {
	a := newTestApp(t)

	out, err := run(t, "line", "update", "0", "quantity", "3.")
	if err != nil {
		t.Fatalf("line update failed: %v", err)
	}
	if !strings.Contains(out, "Line 0 updated") {
		t.Fatalf("expected confirmation, got %q", out)
	}

	inv := saved(t, a)
	if inv.ProductLines[0].Quantity != "3." {
		t.Fatalf("expected quantity 3. kept as typed, got %q", inv.ProductLines[0].Quantity)
	}
	if inv.ProductLines[1].Quantity != "1" {
		t.Fatalf("expected line 1 untouched, got %q", inv.ProductLines[1].Quantity)
	}
}

func TestLineUpdateMissingLine(t *testing.T) {
	a := newTestApp(t)

	if _, err := run(t, "line", "update", "5", "rate", "10"); err == nil {
		t.Fatal("expected error for a missing line")
	}
	if _, err := a.Store.Load(context.Background()); !errors.Is(err, repository.ErrNoSnapshot) {
		t.Fatalf("expected nothing saved, got %v", err)
	}

	if _, err := run(t, "line", "update", "0", "colour", "red"); err == nil {
		t.Fatal("expected error for an unknown column")
	}
}

func TestLineAddAndRemoveCommands(t *testing.T) {
	a := newTestApp(t)

	if _, err := run(t, "line", "add"); err != nil {
		t.Fatalf("line add failed: %v", err)
	}
	if _, err := run(t, "line", "update", "2", "description", "花束"); err != nil {
		t.Fatalf("line update failed: %v", err)
	}
	if n := len(saved(t, a).ProductLines); n != 3 {
		t.Fatalf("expected 3 lines, got %d", n)
	}

	if _, err := run(t, "line", "remove", "0"); err != nil {
		t.Fatalf("line remove failed: %v", err)
	}
	inv := saved(t, a)
	if len(inv.ProductLines) != 2 || inv.ProductLines[1].Description != "花束" {
		t.Fatalf("expected line 0 removed, got %+v", inv.ProductLines)
	}
}

func TestSetCommand(t *testing.T) {
	a := newTestApp(t)

	if _, err := run(t, "set", "clientName", "陳大文"); err != nil {
		t.Fatalf("set text failed: %v", err)
	}
	if _, err := run(t, "set", "logoWidth", "150"); err != nil {
		t.Fatalf("set number failed: %v", err)
	}
	inv := saved(t, a)
	if inv.ClientName != "陳大文" || inv.LogoWidth != 150 {
		t.Fatalf("expected both fields set, got %q %v", inv.ClientName, inv.LogoWidth)
	}

	if _, err := run(t, "set", "logoWidth", "wide"); err == nil {
		t.Fatal("expected error for a non-numeric width")
	}
	if _, err := run(t, "set", "nope", "x"); err == nil {
		t.Fatal("expected error for an unknown field")
	}
}

func TestShowCommand(t *testing.T) {
	newTestApp(t)

	if _, err := run(t, "line", "update", "0", "quantity", "3."); err != nil {
		t.Fatalf("line update failed: %v", err)
	}
	if _, err := run(t, "line", "update", "0", "rate", "2"); err != nil {
		t.Fatalf("line update failed: %v", err)
	}
	if _, err := run(t, "set", "clientName", "陳大文"); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	out, err := run(t, "show")
	if err != nil {
		t.Fatalf("show failed: %v", err)
	}
	for _, want := range []string{"陳大文", "3.", "6.00"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output, got:\n%s", want, out)
		}
	}
}

func TestExportCommand(t *testing.T) {
	a := newTestApp(t)

	target := filepath.Join(t.TempDir(), "sub", "quote.pdf")
	if _, err := run(t, "export", "-o", target); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("expected pdf at %s: %v", target, err)
	}
	if !bytes.Equal(data, fakePDF) {
		t.Fatalf("expected printer output, got %q", data)
	}

	if _, err := run(t, "export", "-o", ""); err != nil {
		t.Fatalf("export to output dir failed: %v", err)
	}
	name := export.FileName(domain.DefaultInvoice())
	if _, err := os.Stat(filepath.Join(a.Config.Export.OutputDir, name)); err != nil {
		t.Fatalf("expected %s in output dir: %v", name, err)
	}
}
