package tui

import (
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

// cellWidth measures in terminal cells, treating ambiguous runes as narrow
// whatever the locale.
var cellWidth = func() *runewidth.Condition {
	c := runewidth.NewCondition()
	c.EastAsianWidth = false
	return c
}()

// truncateStr truncates s to maxWidth terminal cells with an ellipsis
func truncateStr(s string, maxWidth int) string {
	if cellWidth.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= 1 {
		return cellWidth.Truncate(s, maxWidth, "")
	}
	return cellWidth.Truncate(s, maxWidth, "…")
}

// lineIndex extracts the row index from a line widget ID ("line.3.rate").
func lineIndex(id string) (int, bool) {
	parts := strings.Split(id, ".")
	if len(parts) != 3 || parts[0] != "line" {
		return 0, false
	}
	i, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, false
	}
	return i, true
}
