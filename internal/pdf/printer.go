// Package pdf prints a composed document to PDF with maroto.
package pdf

import (
	_ "embed"
	"errors"
	"fmt"
	stdimage "image"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"os"

	"github.com/andy/quotepad/internal/style"
	"github.com/andy/quotepad/internal/view"
	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/border"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/core/entity"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/johnfercher/maroto/v2/pkg/repository"
)

// A4 width in mm.
const pageWidth = 210.0

// ErrEmptyDocument is returned for a tree without a page.
var ErrEmptyDocument = errors.New("document has no page")

// DefaultFamily is the embedded UTF-8 font used when no font is configured.
// It covers the Basic Multilingual Plane, CJK ideographs included.
const DefaultFamily = "unifont"

//go:embed fonts/unifont.ttf
var defaultFont []byte

// Font names a TrueType family with CJK glyphs.
type Font struct {
	Family  string
	Regular string
	Bold    string
}

// Margins override the page padding, in mm. Zero keeps the page style.
type Margins struct {
	Left, Top, Right float64
}

// Printer turns print-mode trees into PDF bytes.
type Printer struct {
	family  string
	fonts   []*entity.CustomFont
	margins Margins
	layout  layout
}

// New loads the configured font, or the embedded default when none is set.
// maroto's built-in families only cover cp1252 and would print CJK text as
// dots, so every printer carries a UTF-8 font.
func New(font Font, margins Margins) (*Printer, error) {
	p := &Printer{margins: margins, layout: layout{size: imageSize}}

	var (
		fonts []*entity.CustomFont
		err   error
	)
	if font.Family == "" || font.Regular == "" {
		font.Family = DefaultFamily
		fonts, err = repository.New().
			AddUTF8FontFromBytes(DefaultFamily, fontstyle.Normal, defaultFont).
			AddUTF8FontFromBytes(DefaultFamily, fontstyle.Bold, defaultFont).
			Load()
	} else {
		bold := font.Bold
		if bold == "" {
			bold = font.Regular
		}
		fonts, err = repository.New().
			AddUTF8Font(font.Family, fontstyle.Normal, font.Regular).
			AddUTF8Font(font.Family, fontstyle.Bold, bold).
			Load()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load font %s: %w", font.Family, err)
	}
	p.family = font.Family
	p.fonts = fonts
	return p, nil
}

// Family reports the font family text is printed with.
func (p *Printer) Family() string {
	return p.family
}

// Print renders doc, which must be a print-mode tree.
func (p *Printer) Print(doc *view.Node) ([]byte, error) {
	page := findPage(doc)
	if page == nil {
		return nil, ErrEmptyDocument
	}

	pad := page.Style.PaddingEdges()
	left := pick(p.margins.Left, pad.Left*ptToMM)
	top := pick(p.margins.Top, pad.Top*ptToMM)
	right := pick(p.margins.Right, pad.Right*ptToMM)

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(left).
		WithTopMargin(top).
		WithRightMargin(right).
		WithCustomFonts(p.fonts).
		WithDefaultFont(&props.Font{Family: p.family}).
		Build()
	m := maroto.New(cfg)

	width := pageWidth - left - right
	for _, bd := range p.layout.bands(page, width) {
		if bd.MarginTop > 0 {
			m.AddRow(bd.MarginTop)
		}
		r := m.AddRow(bd.Height, p.column(bd, width))
		if cell := bandCell(bd); cell != nil {
			r.WithStyle(cell)
		}
		if bd.MarginBottom > 0 {
			m.AddRow(bd.MarginBottom)
		}
	}

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return out.GetBytes(), nil
}

// column places every box of a band in one full width column.
func (p *Printer) column(bd band, width float64) core.Col {
	c := col.New(12)
	for _, img := range bd.Images {
		if _, err := os.Stat(img.Src); err != nil {
			slog.Warn("skip image", "src", img.Src, "err", err)
			continue
		}
		c.Add(image.NewFromFile(img.Src, props.Rect{
			Left:               img.X,
			Top:                img.Y,
			Percent:            img.W / width * 100,
			JustReferenceWidth: true,
		}))
	}
	for _, t := range bd.Texts {
		c.Add(text.New(t.Text, textProps(t, width)))
	}
	return c
}

func textProps(t textBox, width float64) props.Text {
	tp := props.Text{
		Top:   t.Y,
		Left:  t.X,
		Right: max(width-t.X-t.W, 0),
		Size:  t.Size,
		Style: fontstyle.Normal,
		Align: align.Left,
		Color: color(t.Style.Color),
	}
	if t.Style.Bold() {
		tp.Style = fontstyle.Bold
	}
	switch t.Style.TextAlign {
	case "right":
		tp.Align = align.Right
	case "center":
		tp.Align = align.Center
	}
	return tp
}

func bandCell(bd band) *props.Cell {
	if bd.Background == "" && bd.Border == "" {
		return nil
	}
	cell := &props.Cell{BackgroundColor: color(bd.Background)}
	if bd.Border != "" {
		cell.BorderType = border.Bottom
		cell.BorderColor = color(bd.Border)
		cell.BorderThickness = 0.3
	}
	return cell
}

func color(hex string) *props.Color {
	r, g, b, ok := style.RGB(hex)
	if !ok {
		return nil
	}
	return &props.Color{Red: r, Green: g, Blue: b}
}

func pick(override, fallback float64) float64 {
	if override > 0 {
		return override
	}
	return fallback
}

func findPage(n *view.Node) *view.Node {
	var page *view.Node
	view.Walk(n, func(x *view.Node) {
		if page == nil && x.Kind == view.KindPage {
			page = x
		}
	})
	return page
}

func imageSize(src string) (int, int, bool) {
	f, err := os.Open(src)
	if err != nil {
		return 0, 0, false
	}
	defer f.Close()
	cfg, _, err := stdimage.DecodeConfig(f)
	if err != nil {
		return 0, 0, false
	}
	return cfg.Width, cfg.Height, true
}
