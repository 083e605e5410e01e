package domain

import (
	"strings"
	"time"
)

// DateLayout is the display and persisted form of invoice dates.
const DateLayout = "Jan 02, 2006"

// DefaultDueDays is how far the delivery date trails the invoice date when it
// has not been chosen.
const DefaultDueDays = 30

var parseLayouts = []string{
	DateLayout,
	"Jan 2, 2006",
	"January 2, 2006",
	"2006-01-02",
}

// FormatDate renders t in DateLayout.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate reads a persisted date string back into a day.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range parseLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Dates resolves the invoice and delivery dates shown on the document. An
// empty or unreadable invoice date means today; an empty delivery date trails
// the invoice date by dueDays.
func Dates(inv Invoice, now time.Time, dueDays int) (issued, due time.Time) {
	issued, ok := ParseDate(inv.InvoiceDate)
	if !ok {
		issued = now
	}
	if dueDays <= 0 {
		dueDays = DefaultDueDays
	}
	due, ok = ParseDate(inv.InvoiceDueDate)
	if !ok {
		due = issued.AddDate(0, 0, dueDays)
	}
	return issued, due
}

// NewInvoiceNumber builds the number assigned when the editor opens:
// prefix followed by the local timestamp.
func NewInvoiceNumber(prefix string, now time.Time) string {
	return prefix + now.Format("20060102150405")
}
