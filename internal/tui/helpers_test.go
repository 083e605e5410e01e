package tui

import "testing"

func TestTruncateStr(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"hello", 10, "hello"},
		{"hello world", 6, "hello…"},
		{"禮意店有限公司", 7, "禮意店…"},
		{"abc", 1, "a"},
	}
	for _, tt := range tests {
		if got := truncateStr(tt.in, tt.width); got != tt.want {
			t.Errorf("truncateStr(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

func TestLineIndex(t *testing.T) {
	tests := []struct {
		id   string
		want int
		ok   bool
	}{
		{"line.3.rate", 3, true},
		{"line.0.remove", 0, true},
		{"line.add", 0, false},
		{"clientName", 0, false},
		{"line.x.rate", 0, false},
	}
	for _, tt := range tests {
		got, ok := lineIndex(tt.id)
		if got != tt.want || ok != tt.ok {
			t.Errorf("lineIndex(%q) = %d, %v; want %d, %v", tt.id, got, ok, tt.want, tt.ok)
		}
	}
}
