package domain

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// numberPrefix matches the leading numeric part of a typed amount, so "12abc"
// reads as 12 and "3." reads as 3.
var numberPrefix = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// leadingNumber returns the numeric prefix of s after leading whitespace.
func leadingNumber(s string) (string, bool) {
	m := numberPrefix.FindString(strings.TrimLeft(s, " \t\r\n"))
	return m, m != ""
}

// ParseAmount reads a typed quantity or rate. It reports false when s has no
// numeric prefix.
func ParseAmount(s string) (float64, bool) {
	m, ok := leadingNumber(s)
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseFloat(m, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

// DecimalAmount is ParseAmount without float rounding, for money arithmetic.
func DecimalAmount(s string) (decimal.Decimal, bool) {
	m, ok := leadingNumber(s)
	if !ok {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(m)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// InProgress reports whether a typed amount is still being typed: it ends in a
// decimal point, or ends in a zero after a decimal point ("2.", "2.50").
func InProgress(s string) bool {
	if s == "" {
		return false
	}
	last := s[len(s)-1]
	return last == '.' || (last == '0' && strings.Contains(s, "."))
}

// CommitAmount applies the input commit rule to a typed quantity or rate.
// In-progress text is kept verbatim; anything else is canonicalized, and
// unparsable, zero or negative input becomes "0".
func CommitAmount(s string) string {
	if InProgress(s) {
		return s
	}
	n, ok := ParseAmount(s)
	if !ok || n <= 0 {
		return "0"
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}
