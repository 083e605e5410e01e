package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/andy/quotepad/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// calendarView draws the month around cursor with cursor highlighted.
// selected is the committed day.
func calendarView(cursor, selected, today time.Time) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%-20s\n", cursor.Format("January 2006")))
	b.WriteString("Su Mo Tu We Th Fr Sa\n")

	first := time.Date(cursor.Year(), cursor.Month(), 1, 0, 0, 0, 0, cursor.Location())
	b.WriteString(strings.Repeat("   ", int(first.Weekday())))
	for d := first; d.Month() == first.Month(); d = d.AddDate(0, 0, 1) {
		cell := fmt.Sprintf("%2d", d.Day())
		switch {
		case sameDay(d, cursor):
			cell = selectedStyle.UnsetPadding().Render(cell)
		case sameDay(d, selected):
			cell = focusStyle.Render(cell)
		case sameDay(d, today):
			cell = todayStyle.Render(cell)
		}
		b.WriteString(cell)
		if d.Weekday() == time.Saturday {
			b.WriteString("\n")
		} else {
			b.WriteString(" ")
		}
	}
	return calendarStyle.Render(strings.TrimRight(b.String(), " \n"))
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// dateEditor shows the formatted cursor day above its month grid.
func dateEditor(cursor, selected, today time.Time) string {
	head := focusStyle.Render(domain.FormatDate(cursor))
	return lipgloss.JoinVertical(lipgloss.Left, head, calendarView(cursor, selected, today))
}
