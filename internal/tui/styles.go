package tui

import (
	"github.com/andy/quotepad/internal/style"
	"github.com/charmbracelet/lipgloss"
)

var (
	// Colors
	primaryColor = lipgloss.Color("39")  // Blue
	mutedColor   = lipgloss.Color("241") // Gray
	successColor = lipgloss.Color("76")  // Green
	warningColor = lipgloss.Color("214") // Orange
	errorColor   = lipgloss.Color("196") // Red

	// Widgets
	placeholderStyle = lipgloss.NewStyle().Foreground(mutedColor).Italic(true)
	focusStyle       = lipgloss.NewStyle().Underline(true).Foreground(primaryColor)
	choiceStyle      = lipgloss.NewStyle().Foreground(mutedColor)
	buttonStyle      = lipgloss.NewStyle().Foreground(primaryColor).Padding(0, 1)
	selectedStyle    = lipgloss.NewStyle().Bold(true).Background(primaryColor).Foreground(lipgloss.Color("0")).Padding(0, 1)
	imageStyle       = lipgloss.NewStyle().Foreground(mutedColor).Border(lipgloss.NormalBorder()).BorderForeground(mutedColor)

	// Calendar
	calendarStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(primaryColor).Padding(0, 1)
	todayStyle    = lipgloss.NewStyle().Foreground(warningColor)

	// Layout
	borderColor = lipgloss.Color("63") // Soft purple

	// Header/Footer
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(primaryColor).Padding(0, 1)
	footerStyle = lipgloss.NewStyle().Foreground(mutedColor)
)

// terminal cell and line sizes of one CSS pixel
const (
	pxPerCell = 8.0
	pxPerLine = 20.0
	maxGap    = 2
)

// termStyle maps a resolved document style onto the terminal. Grays are
// dropped from foregrounds so text stays readable on dark and light
// terminals; a background picks a contrasting foreground.
func termStyle(st style.Style) lipgloss.Style {
	ls := lipgloss.NewStyle()
	if st.Bold() {
		ls = ls.Bold(true)
	}
	switch st.TextAlign {
	case "right":
		ls = ls.Align(lipgloss.Right)
	case "center":
		ls = ls.Align(lipgloss.Center)
	}
	if r, g, b, ok := style.RGB(st.Color); ok && !(r == g && g == b) {
		ls = ls.Foreground(lipgloss.Color(style.LongHex(st.Color)))
	}
	if r, g, b, ok := style.RGB(st.BackgroundColor); ok {
		ls = ls.Background(lipgloss.Color(style.LongHex(st.BackgroundColor)))
		if r+g+b > 3*128 {
			ls = ls.Foreground(lipgloss.Color(style.LongHex(style.ColorDark)))
		} else {
			ls = ls.Foreground(lipgloss.Color(style.LongHex(style.ColorWhite)))
		}
	}
	pad := st.PaddingEdges()
	ls = ls.PaddingLeft(cells(pad.Left)).PaddingRight(cells(pad.Right))
	return ls
}

func cells(px float64) int {
	return int(px / pxPerCell)
}

// gap converts a vertical margin to blank lines.
func gap(px float64) int {
	return min(int(px/pxPerLine), maxGap)
}
