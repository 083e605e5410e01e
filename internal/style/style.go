// Package style resolves class token strings into style records shared by
// every render target.
package style

import (
	"sort"
	"strconv"
	"strings"
)

// Style is a set of declared presentation properties. Empty means "not
// declared"; values use CSS syntax.
type Style struct {
	Color           string
	BackgroundColor string
	Display         string
	FlexDirection   string
	FlexWrap        string
	Flex            string
	AlignItems      string
	Width           string
	MarginTop       string
	MarginBottom    string
	MarginRight     string
	Padding         string
	PaddingRight    string
	PaddingBottom   string
	BorderBottom    string
	TextAlign       string
	FontWeight      string
	FontSize        string
	FontFamily      string
	LineHeight      string
}

// Merge returns s with every property declared in o laid over it.
func (s Style) Merge(o Style) Style {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&s.Color, o.Color)
	set(&s.BackgroundColor, o.BackgroundColor)
	set(&s.Display, o.Display)
	set(&s.FlexDirection, o.FlexDirection)
	set(&s.FlexWrap, o.FlexWrap)
	set(&s.Flex, o.Flex)
	set(&s.AlignItems, o.AlignItems)
	set(&s.Width, o.Width)
	set(&s.MarginTop, o.MarginTop)
	set(&s.MarginBottom, o.MarginBottom)
	set(&s.MarginRight, o.MarginRight)
	set(&s.Padding, o.Padding)
	set(&s.PaddingRight, o.PaddingRight)
	set(&s.PaddingBottom, o.PaddingBottom)
	set(&s.BorderBottom, o.BorderBottom)
	set(&s.TextAlign, o.TextAlign)
	set(&s.FontWeight, o.FontWeight)
	set(&s.FontSize, o.FontSize)
	set(&s.FontFamily, o.FontFamily)
	set(&s.LineHeight, o.LineHeight)
	return s
}

// Inherit returns s laid over the text properties of parent: color, font
// and alignment flow down the tree, box properties do not.
func (s Style) Inherit(parent Style) Style {
	base := Style{
		Color:      parent.Color,
		TextAlign:  parent.TextAlign,
		FontWeight: parent.FontWeight,
		FontSize:   parent.FontSize,
		FontFamily: parent.FontFamily,
		LineHeight: parent.LineHeight,
	}
	return base.Merge(s)
}

// LineHeightFactor returns the declared line height multiplier, default 1.2.
func (s Style) LineHeightFactor() float64 {
	n, err := strconv.ParseFloat(strings.TrimSpace(s.LineHeight), 64)
	if err != nil || n <= 0 {
		return 1.2
	}
	return n
}

// Resolve merges the tokens of a whitespace separated class string using the
// default sheet.
func Resolve(class string) Style {
	return DefaultSheet.Resolve(class)
}

// Resolve merges the styles named by class in order; later tokens win and
// unknown tokens are skipped.
func (sh Sheet) Resolve(class string) Style {
	var out Style
	for _, tok := range strings.Fields(class) {
		if st, ok := sh[tok]; ok {
			out = out.Merge(st)
		}
	}
	return out
}

// Row reports whether children are laid out horizontally.
func (s Style) Row() bool {
	return s.Display == "flex" && (s.FlexDirection == "" || s.FlexDirection == "row")
}

// Grow reports whether the box takes the remaining width of its row.
func (s Style) Grow() bool {
	return s.Flex != "" && s.Flex != "0"
}

// WidthPercent returns the declared width as a percentage.
func (s Style) WidthPercent() (float64, bool) {
	v, ok := strings.CutSuffix(strings.TrimSpace(s.Width), "%")
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Bold reports a bold font weight.
func (s Style) Bold() bool {
	return s.FontWeight == "bold" || s.FontWeight == "600" || s.FontWeight == "700"
}

// FontPx returns the declared font size in px, or 0 when inherited.
func (s Style) FontPx() float64 {
	return px(s.FontSize)
}

// Edges is a box side quadruple in px.
type Edges struct {
	Top, Right, Bottom, Left float64
}

// Horizontal is Left + Right.
func (e Edges) Horizontal() float64 { return e.Left + e.Right }

// Vertical is Top + Bottom.
func (e Edges) Vertical() float64 { return e.Top + e.Bottom }

// PaddingEdges expands the padding shorthand and applies the per-side
// overrides.
func (s Style) PaddingEdges() Edges {
	e := shorthand(s.Padding)
	if s.PaddingRight != "" {
		e.Right = px(s.PaddingRight)
	}
	if s.PaddingBottom != "" {
		e.Bottom = px(s.PaddingBottom)
	}
	return e
}

// MarginEdges returns the declared margins.
func (s Style) MarginEdges() Edges {
	return Edges{Top: px(s.MarginTop), Right: px(s.MarginRight), Bottom: px(s.MarginBottom)}
}

// BorderBottomColor returns the color of a bottom border, if any.
func (s Style) BorderBottomColor() (string, bool) {
	for _, f := range strings.Fields(s.BorderBottom) {
		if strings.HasPrefix(f, "#") {
			return f, true
		}
	}
	return "", false
}

// CSS renders the declared properties as an inline style attribute value.
func (s Style) CSS() string {
	props := map[string]string{
		"color":            s.Color,
		"background-color": s.BackgroundColor,
		"display":          s.Display,
		"flex-direction":   s.FlexDirection,
		"flex-wrap":        s.FlexWrap,
		"flex":             s.Flex,
		"align-items":      s.AlignItems,
		"width":            s.Width,
		"margin-top":       s.MarginTop,
		"margin-bottom":    s.MarginBottom,
		"margin-right":     s.MarginRight,
		"padding":          s.Padding,
		"padding-right":    s.PaddingRight,
		"padding-bottom":   s.PaddingBottom,
		"border-bottom":    s.BorderBottom,
		"text-align":       s.TextAlign,
		"font-weight":      s.FontWeight,
		"font-size":        s.FontSize,
		"font-family":      s.FontFamily,
		"line-height":      s.LineHeight,
	}
	keys := make([]string, 0, len(props))
	for k, v := range props {
		if v != "" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+props[k])
	}
	return strings.Join(parts, "; ")
}

func px(v string) float64 {
	v = strings.TrimSuffix(strings.TrimSpace(v), "px")
	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0
	}
	return n
}

// shorthand expands a 1 to 4 value CSS box shorthand.
func shorthand(v string) Edges {
	f := strings.Fields(v)
	n := make([]float64, len(f))
	for i := range f {
		n[i] = px(f[i])
	}
	switch len(n) {
	case 1:
		return Edges{n[0], n[0], n[0], n[0]}
	case 2:
		return Edges{n[0], n[1], n[0], n[1]}
	case 3:
		return Edges{n[0], n[1], n[2], n[1]}
	case 4:
		return Edges{n[0], n[1], n[2], n[3]}
	}
	return Edges{}
}
