package pdf

import (
	"math"

	"github.com/andy/quotepad/internal/style"
	"github.com/andy/quotepad/internal/view"
	"github.com/mattn/go-runewidth"
)

// ptToMM converts style units (px, read as points) to millimetres.
const ptToMM = 0.3528

const defaultFontPt = 10

// A half em per terminal cell approximates proportional glyph widths; wide
// (CJK) runes take a full em.
const emPerCell = 0.5

// textBox is one wrapped line of text positioned inside a band, in mm.
type textBox struct {
	X, Y, W float64
	Text    string
	Style   style.Style
	Size    float64
}

type imageBox struct {
	X, Y, W, H float64
	Src        string
}

// band is a direct child of the page. Bands become PDF rows, which the
// renderer never splits across pages.
type band struct {
	Height       float64
	MarginTop    float64
	MarginBottom float64
	Background   string
	Border       string
	Texts        []textBox
	Images       []imageBox
}

// imageSizer reports the pixel size of an image file.
type imageSizer func(src string) (w, h int, ok bool)

type layout struct {
	size imageSizer
}

func fontPt(st style.Style) float64 {
	if f := st.FontPx(); f > 0 {
		return f
	}
	return defaultFontPt
}

func cellMM(size float64) float64 {
	return size * emPerCell * ptToMM
}

// textWidth estimates the printed width of s in mm.
func textWidth(s string, size float64) float64 {
	return float64(runewidth.StringWidth(s)) * cellMM(size)
}

// wrap breaks s into lines no wider than width mm. Latin text breaks at the
// last space; wide runes break anywhere.
func wrap(s string, width, size float64) []string {
	maxCells := int(math.Floor(width / cellMM(size)))
	if maxCells < 1 {
		maxCells = 1
	}
	var out []string
	var line []rune
	cells := 0
	for _, r := range s {
		rw := runewidth.RuneWidth(r)
		if cells+rw > maxCells && len(line) > 0 {
			cut := -1
			if rw == 1 && r != ' ' {
				for i := len(line) - 1; i > 0; i-- {
					if line[i] == ' ' {
						cut = i
						break
					}
				}
			}
			if cut > 0 {
				out = append(out, string(line[:cut]))
				line = append([]rune(nil), line[cut+1:]...)
			} else {
				out = append(out, string(line))
				line = nil
			}
			cells = runewidth.StringWidth(string(line))
			if r == ' ' {
				continue
			}
		}
		line = append(line, r)
		cells += rw
	}
	return append(out, string(line))
}

// bands lays out the children of page inside width mm. A child marked Keep
// becomes one unbreakable band; an unmarked plain column is split into one
// band per child so the page can break between them.
func (l *layout) bands(page *view.Node, width float64) []band {
	return l.appendBands(make([]band, 0, len(page.Children)), page.Children, page.Style, width)
}

func (l *layout) appendBands(out []band, children []*view.Node, inherited style.Style, width float64) []band {
	for _, c := range children {
		if splittable(c) {
			first := len(out)
			out = l.appendBands(out, c.Children, c.Style.Inherit(inherited), width)
			if len(out) > first {
				m := c.Style.MarginEdges()
				out[first].MarginTop += m.Top * ptToMM
				out[len(out)-1].MarginBottom += m.Bottom * ptToMM
			}
			continue
		}
		if b, ok := l.band(c, inherited, width); ok {
			out = append(out, b)
		}
	}
	return out
}

// splittable reports whether c may break across pages: an unkept column
// container that paints nothing of its own.
func splittable(c *view.Node) bool {
	if c.Keep || len(c.Children) == 0 || c.Style.Row() {
		return false
	}
	switch c.Kind {
	case view.KindView, view.KindPage:
	default:
		return false
	}
	pad := c.Style.PaddingEdges()
	_, border := c.Style.BorderBottomColor()
	return c.Style.BackgroundColor == "" && !border && pad.Horizontal() == 0 && pad.Vertical() == 0
}

func (l *layout) band(c *view.Node, inherited style.Style, width float64) (band, bool) {
	var b band
	total := l.place(c, inherited, 0, 0, width, &b)
	m := c.Style.MarginEdges()
	b.MarginTop = m.Top * ptToMM
	b.MarginBottom = m.Bottom * ptToMM
	b.Height = total - b.MarginTop - b.MarginBottom
	for i := range b.Texts {
		b.Texts[i].Y -= b.MarginTop
	}
	for i := range b.Images {
		b.Images[i].Y -= b.MarginTop
	}
	b.Background = c.Style.BackgroundColor
	b.Border, _ = c.Style.BorderBottomColor()
	if b.Height <= 0 && len(b.Texts) == 0 && len(b.Images) == 0 {
		return b, false
	}
	return b, true
}

// place positions n at (x, y) with width w and returns the height it used,
// margins included.
func (l *layout) place(n *view.Node, inherited style.Style, x, y, w float64, b *band) float64 {
	st := n.Style.Inherit(inherited)
	m := n.Style.MarginEdges()
	pad := n.Style.PaddingEdges()

	top := y + (m.Top+pad.Top)*ptToMM
	innerX := x + pad.Left*ptToMM
	innerW := w - pad.Horizontal()*ptToMM
	if innerW < 0 {
		innerW = 0
	}

	var h float64
	switch n.Kind {
	case view.KindControl:
		return 0
	case view.KindText:
		h = l.placeLines([][]view.Run{{{Text: n.Text}}}, st, innerX, top, innerW, b)
	case view.KindField:
		if s := n.Out.Static; s != nil {
			if s.Image != nil {
				h = l.placeImage(s.Image, innerX, top, innerW, b)
			} else {
				h = l.placeLines(s.Lines(), st, innerX, top, innerW, b)
			}
		}
	default:
		if n.Style.Row() {
			cx := innerX
			for i, cw := range columnWidths(n.Children, innerW) {
				ch := l.place(n.Children[i], st, cx, top, cw, b)
				h = math.Max(h, ch)
				cx += cw
			}
		} else {
			cy := top
			for _, c := range n.Children {
				cy += l.place(c, st, innerX, cy, innerW, b)
			}
			h = cy - top
		}
	}
	return (m.Top+pad.Top+pad.Bottom+m.Bottom)*ptToMM + h
}

// columnWidths splits width among the children of a row: declared
// percentages first, the remainder shared by the rest.
func columnWidths(children []*view.Node, width float64) []float64 {
	out := make([]float64, len(children))
	used := 0.0
	flexible := 0
	for i, c := range children {
		if pct, ok := c.Style.WidthPercent(); ok {
			out[i] = width * pct / 100
			used += out[i]
		} else if c.Kind != view.KindControl {
			flexible++
		}
	}
	if flexible > 0 {
		share := math.Max(width-used, 0) / float64(flexible)
		for i, c := range children {
			if _, ok := c.Style.WidthPercent(); !ok && c.Kind != view.KindControl {
				out[i] = share
			}
		}
	}
	return out
}

// placeLines emits wrapped text. A line made of several runs keeps the style
// of its first run for the first segment (the bold prefix) and of the last
// run for the rest.
func (l *layout) placeLines(lines [][]view.Run, st style.Style, x, y, w float64, b *band) float64 {
	size := fontPt(st)
	lineH := size * st.LineHeightFactor() * ptToMM
	offset := 0.0
	for _, runs := range lines {
		if len(runs) == 0 {
			offset += lineH
			continue
		}
		cx := x
		cw := w
		if len(runs) > 1 {
			head := runs[0]
			hs := head.Style.Inherit(st)
			b.Texts = append(b.Texts, textBox{X: cx, Y: y + offset, W: cw, Text: head.Text, Style: hs, Size: size})
			adv := textWidth(head.Text, size)
			cx += adv
			cw = math.Max(cw-adv, cellMM(size))
			runs = runs[1:]
		}
		var text string
		for _, r := range runs {
			text += r.Text
		}
		rs := runs[len(runs)-1].Style.Inherit(st)
		for i, seg := range wrap(text, cw, size) {
			if i > 0 {
				cx, cw = x, w
			}
			if seg != "" {
				b.Texts = append(b.Texts, textBox{X: cx, Y: y + offset, W: cw, Text: seg, Style: rs, Size: size})
			}
			offset += lineH
		}
	}
	if offset == 0 {
		offset = lineH
	}
	return offset
}

func (l *layout) placeImage(img *view.Image, x, y, w float64, b *band) float64 {
	iw := img.Width * ptToMM
	if iw <= 0 || iw > w {
		iw = w
	}
	ih := iw / 2
	if l.size != nil {
		if pw, ph, ok := l.size(img.Src); ok && pw > 0 {
			ih = iw * float64(ph) / float64(pw)
		}
	}
	b.Images = append(b.Images, imageBox{X: x, Y: y, W: iw, H: ih, Src: img.Src})
	return ih
}
