package tui

import (
	"strings"

	"github.com/andy/quotepad/internal/style"
	"github.com/andy/quotepad/internal/view"
	"github.com/charmbracelet/lipgloss"
)

// renderer draws a view tree as terminal text. The focused widget is drawn
// by the host's live editor instead of its value.
type renderer struct {
	focusID string
	editor  func(w *view.Widget, width int) string
	label   func(c *view.Control) string

	hit bool // set once the focused target has been drawn
}

// textStyle carries the character attributes of st, without box properties.
func textStyle(st style.Style) lipgloss.Style {
	ts := termStyle(st)
	return ts.UnsetPadding().UnsetAlign()
}

func (r *renderer) render(n *view.Node, inh style.Style, width int) string {
	width = max(width, 1)
	st := n.Style.Inherit(inh)
	if st.BackgroundColor == "" {
		st.BackgroundColor = inh.BackgroundColor
	}

	switch n.Kind {
	case view.KindText:
		return termStyle(st).Width(width).Render(n.Text)
	case view.KindField:
		return r.field(n, st, width)
	case view.KindControl:
		return r.control(n.Control)
	}

	pad := n.Style.PaddingEdges()
	inner := width - cells(pad.Left) - cells(pad.Right)

	var body string
	if n.Style.Row() {
		body = r.row(n.Children, st, inner)
	} else {
		parts := make([]string, 0, len(n.Children))
		for _, c := range n.Children {
			parts = append(parts, r.render(c, st, inner))
		}
		body = lipgloss.JoinVertical(lipgloss.Left, parts...)
	}

	box := lipgloss.NewStyle().PaddingLeft(cells(pad.Left)).PaddingRight(cells(pad.Right))
	if n.Style.BackgroundColor != "" {
		box = box.Background(lipgloss.Color(style.LongHex(n.Style.BackgroundColor)))
	}
	body = box.Render(body)

	margin := n.Style.MarginEdges()
	if g := gap(margin.Top); g > 0 {
		body = strings.Repeat("\n", g) + body
	}
	if g := gap(margin.Bottom); g > 0 {
		body += strings.Repeat("\n", g)
	}
	return body
}

// row lays children side by side. Percent widths share what the controls
// leave; children without a width split the remainder.
func (r *renderer) row(children []*view.Node, st style.Style, width int) string {
	widths := make([]int, len(children))
	rest := width
	for i, c := range children {
		if c.Kind == view.KindControl {
			widths[i] = lipgloss.Width(r.label(c.Control)) + 2
			rest -= widths[i]
		}
	}
	rest = max(rest, 0)
	used, flexible := 0, 0
	for i, c := range children {
		if c.Kind == view.KindControl {
			continue
		}
		if pct, ok := c.Style.WidthPercent(); ok {
			widths[i] = int(float64(rest) * pct / 100)
			used += widths[i]
		} else {
			flexible++
		}
	}
	if flexible > 0 {
		share := max(rest-used, 0) / flexible
		for i, c := range children {
			if _, ok := c.Style.WidthPercent(); !ok && c.Kind != view.KindControl {
				widths[i] = share
			}
		}
	}

	parts := make([]string, 0, len(children))
	for i, c := range children {
		if widths[i] <= 0 {
			continue
		}
		cell := r.render(c, st, widths[i])
		parts = append(parts, lipgloss.NewStyle().Width(widths[i]).Render(cell))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (r *renderer) field(n *view.Node, st style.Style, width int) string {
	if w := n.Out.Widget; w != nil {
		return r.widget(w, st, width)
	}
	s := n.Out.Static
	if s == nil {
		return ""
	}
	if s.Image != nil {
		return imageStyle.Width(min(max(int(s.Image.Width/pxPerCell), 6), width-2)).Render("logo")
	}
	lines := s.Lines()
	out := make([]string, len(lines))
	for i, line := range lines {
		var b strings.Builder
		for _, run := range line {
			b.WriteString(textStyle(run.Style.Inherit(st)).Render(run.Text))
		}
		out[i] = b.String()
	}
	return termStyle(st).Width(width).Render(strings.Join(out, "\n"))
}

func (r *renderer) widget(w *view.Widget, st style.Style, width int) string {
	wst := w.Style.Inherit(st)
	if wst.BackgroundColor == "" {
		wst.BackgroundColor = st.BackgroundColor
	}
	focused := w.ID == r.focusID
	if focused {
		r.hit = true
	}

	var label string
	if w.Label != "" {
		label = textStyle(wst.Merge(style.Resolve("bold"))).Render(w.Label)
	}
	avail := max(width-lipgloss.Width(label), 1)

	var value string
	switch {
	case focused && r.editor != nil && w.Kind != view.Choice:
		value = r.editor(w, avail)
	case w.Kind == view.Choice:
		value = w.Value
		if w.Selected >= 0 {
			value = w.Options[w.Selected].Text
		}
		if focused {
			value = focusStyle.Render("‹ " + value + " ›")
		} else {
			value = textStyle(wst).Render(value) + choiceStyle.Render(" ▾")
		}
	case w.Value == "":
		value = placeholderStyle.Render(truncateStr(w.Placeholder, avail))
	default:
		value = textStyle(wst).Render(w.Value)
	}

	out := termStyle(wst).Width(width).Render(label + value)
	if w.Other != nil {
		out = lipgloss.JoinVertical(lipgloss.Left, out, r.widget(w.Other, st, width))
	}
	return out
}

func (r *renderer) control(c *view.Control) string {
	label := r.label(c)
	if c.ID == r.focusID {
		r.hit = true
		return selectedStyle.Render(label)
	}
	return buttonStyle.Render(label)
}
