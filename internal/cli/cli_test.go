package cli

import (
	"testing"

	"github.com/andy/quotepad/internal/domain"
	"github.com/mattn/go-runewidth"
)

func TestFieldValue(t *testing.T) {
	tests := []struct {
		name    string
		field   string
		raw     string
		want    any
		wantErr bool
	}{
		{"text", "clientName", "陳大文", "陳大文", false},
		{"number", "logoWidth", "120", float64(120), false},
		{"number with spaces", "logoWidth", " 80.5 ", 80.5, false},
		{"bad number", "logoWidth", "wide", nil, true},
		{"unknown", "nope", "x", nil, true},
		{"line items are not scalar", "productLines", "x", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := fieldValue(tt.field, tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestParseLineField(t *testing.T) {
	if f, err := parseLineField("rate"); err != nil || f != domain.LineRate {
		t.Fatalf("expected rate, got %q (%v)", f, err)
	}
	if _, err := parseLineField("amount"); err == nil {
		t.Fatal("expected amount to be rejected; it is derived")
	}
}

func TestHasLine(t *testing.T) {
	inv := domain.Invoice{ProductLines: []domain.LineItem{{}, {}}}

	if err := hasLine(1)(inv); err != nil {
		t.Fatalf("expected line 1 to exist, got %v", err)
	}
	for _, i := range []int{-1, 2} {
		if err := hasLine(i)(inv); err == nil {
			t.Fatalf("expected line %d to be rejected", i)
		}
	}
}

func TestPad(t *testing.T) {
	got := pad("手工禮盒\n第二行", 10)
	if w := runewidth.StringWidth(got); w != 10 {
		t.Fatalf("expected width 10, got %d (%q)", w, got)
	}
	if got[:len("手工禮盒")] != "手工禮盒" {
		t.Fatalf("expected first line kept, got %q", got)
	}

	long := pad("abcdefghijklmnop", 8)
	if runewidth.StringWidth(long) != 8 {
		t.Fatalf("expected truncation to 8 cells, got %q", long)
	}
}

func TestNeedsApp(t *testing.T) {
	tests := []struct {
		args []string
		want bool
	}{
		{nil, true},
		{[]string{"show"}, true},
		{[]string{"--help"}, false},
		{[]string{"config", "path"}, false},
		{[]string{"line", "add"}, true},
		{[]string{"set", "notes", "config"}, true},
		{[]string{"help", "show"}, false},
	}

	for _, tt := range tests {
		if got := NeedsApp(tt.args); got != tt.want {
			t.Fatalf("NeedsApp(%v): expected %v, got %v", tt.args, tt.want, got)
		}
	}
}
