package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/andy/quotepad/internal/domain"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("expected defaults, got error %v", err)
	}
	if cfg.Storage.Driver != "sqlite" || cfg.Storage.Key != "invoiceData" {
		t.Fatalf("unexpected storage defaults %+v", cfg.Storage)
	}
	if cfg.Export.Delay != 500*time.Millisecond {
		t.Fatalf("expected 500ms delay, got %v", cfg.Export.Delay)
	}
	if cfg.Invoice.NumberPrefix != "G" || !cfg.Invoice.RenumberOnOpen || cfg.Invoice.DueDays != 30 {
		t.Fatalf("unexpected invoice defaults %+v", cfg.Invoice)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
storage:
  driver: redis
  redis:
    addr: "redis:6379"
export:
  delay: 2s
  output_dir: ~/out
company:
  name: Acme
template:
  headings: [Invoice, Quote]
  terms: |
    line one
    line two
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Storage.Driver != "redis" || cfg.Storage.Redis.Addr != "redis:6379" {
		t.Fatalf("storage not overridden: %+v", cfg.Storage)
	}
	if cfg.Storage.Key != "invoiceData" {
		t.Fatalf("expected unset keys to keep defaults, got %q", cfg.Storage.Key)
	}
	if cfg.Export.Delay != 2*time.Second {
		t.Fatalf("expected 2s, got %v", cfg.Export.Delay)
	}
	if cfg.Export.OutputDir != filepath.Join(homeDir(), "out") {
		t.Fatalf("expected ~ expansion, got %s", cfg.Export.OutputDir)
	}

	p := cfg.Profile()
	if p.CompanyName != "Acme" || p.Heading(domain.Invoice{}) != "Invoice" {
		t.Fatalf("unexpected profile %+v", p)
	}
	if p.Terms != "line one\nline two" {
		t.Fatalf("unexpected terms %q", p.Terms)
	}
	if len(p.Projects) == 0 || p.OtherToken != "其他" {
		t.Fatalf("expected template defaults to survive, got %+v", p)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("storage: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")
	cfg := DefaultConfig()
	cfg.Web.Listen = ":9999"
	if err := cfg.Save(path); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if got.Web.Listen != ":9999" || got.Export.Delay != cfg.Export.Delay {
		t.Fatalf("round trip lost values: %+v", got)
	}
	if got.Template.Terms != cfg.Template.Terms {
		t.Fatal("terms changed on round trip")
	}
}
