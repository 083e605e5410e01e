package view

import (
	"strings"
	"time"

	"github.com/andy/quotepad/internal/domain"
	"github.com/andy/quotepad/internal/style"
)

// Field is a primitive document field. Each field knows its three
// renderings; Render picks one.
type Field interface {
	RenderEditable() Rendering
	RenderReadOnly() Rendering
	RenderPrint() Rendering
	IsReadOnly() bool
	ClassName() string
}

// Render is the single place where mode flags select a rendering.
func Render(f Field, m Mode) Rendering {
	switch {
	case m == Print:
		return f.RenderPrint()
	case f.IsReadOnly():
		return f.RenderReadOnly()
	default:
		return f.RenderEditable()
	}
}

// Binding turns a new widget value into a reducer operation.
type Binding func(value string) domain.Op

// Rendering is either static output or an editable widget.
type Rendering struct {
	Static *Static
	Widget *Widget
}

// Style returns the resolved style of whichever side is set.
func (r Rendering) Style() style.Style {
	if r.Widget != nil {
		return r.Widget.Style
	}
	if r.Static != nil {
		return r.Static.Style
	}
	return style.Style{}
}

// Run is a span of text with its own style.
type Run struct {
	Text  string
	Style style.Style
}

// Image is a fixed width picture from a static asset.
type Image struct {
	Src   string
	Width float64
}

// Static is read-only output: styled runs, optionally an image.
type Static struct {
	Style style.Style
	Runs  []Run
	Image *Image
}

// Text joins the text of every run.
func (s *Static) Text() string {
	var b strings.Builder
	for _, r := range s.Runs {
		b.WriteString(r.Text)
	}
	return b.String()
}

// Lines splits the runs at embedded line breaks. Each line keeps the styles
// of the runs it spans and whitespace is preserved.
func (s *Static) Lines() [][]Run {
	lines := [][]Run{nil}
	for _, r := range s.Runs {
		parts := strings.Split(r.Text, "\n")
		for i, p := range parts {
			if i > 0 {
				lines = append(lines, nil)
			}
			if p != "" {
				lines[len(lines)-1] = append(lines[len(lines)-1], Run{Text: p, Style: r.Style})
			}
		}
	}
	return lines
}

// WidgetKind is the kind of editing control.
type WidgetKind int

const (
	TextBox WidgetKind = iota
	Choice
	TextArea
	DatePicker
)

// Option is one entry of a select.
type Option struct {
	Value string
	Text  string
}

// Widget describes an editable control. Hosts draw it with their own toolkit
// and report edits through Change.
type Widget struct {
	Kind        WidgetKind
	ID          string
	Label       string
	Value       string
	Placeholder string
	Options     []Option
	Selected    int
	ListID      string
	Suggestions []string
	Date        time.Time
	Rows        int
	Style       style.Style
	Other       *Widget
	Change      Binding
}

// Commit reports the operation for a new value, or nil when the widget is
// not bound.
func (w *Widget) Commit(value string) domain.Op {
	if w.Change == nil {
		return nil
	}
	return w.Change(value)
}

func textRuns(class, prefix, value string) *Static {
	st := style.Resolve("span " + class)
	s := &Static{Style: st}
	if prefix != "" {
		s.Runs = append(s.Runs, Run{Text: prefix, Style: st.Merge(style.Resolve("bold"))})
	}
	s.Runs = append(s.Runs, Run{Text: value, Style: st})
	return s
}

// TextInput is a single line field. With ReadOnly set it is a fixed label.
type TextInput struct {
	ID          string
	Class       string
	Placeholder string
	Prefix      string
	Value       string
	ReadOnly    bool
	ListID      string
	Suggestions []string
	OnChange    Binding
}

func (f TextInput) IsReadOnly() bool  { return f.ReadOnly }
func (f TextInput) ClassName() string { return f.Class }

func (f TextInput) RenderEditable() Rendering {
	return Rendering{Widget: &Widget{
		Kind:        TextBox,
		ID:          f.ID,
		Label:       f.Prefix,
		Value:       f.Value,
		Placeholder: f.Placeholder,
		ListID:      f.ListID,
		Suggestions: f.Suggestions,
		Style:       style.Resolve(f.Class),
		Change:      f.OnChange,
	}}
}

func (f TextInput) RenderReadOnly() Rendering {
	return Rendering{Static: textRuns(f.Class, f.Prefix, f.Value)}
}

func (f TextInput) RenderPrint() Rendering {
	return Rendering{Static: textRuns(f.Class, f.Prefix, f.Value)}
}

// Select chooses one of a fixed option set. When the value equals
// OtherToken a free text companion carries the detail.
type Select struct {
	ID            string
	OtherID       string
	Class         string
	Prefix        string
	Value         string
	Options       []Option
	OtherToken    string
	OtherValue    string
	OnChange      Binding
	OnOtherChange Binding
}

func (f Select) IsReadOnly() bool  { return false }
func (f Select) ClassName() string { return f.Class }

// selected returns the index of the option matching Value, or -1.
func (f Select) selected() int {
	for i, o := range f.Options {
		if o.Value == f.Value {
			return i
		}
	}
	return -1
}

func (f Select) isOther() bool {
	return f.OtherToken != "" && f.Value == f.OtherToken
}

func (f Select) RenderEditable() Rendering {
	w := &Widget{
		Kind:     Choice,
		ID:       f.ID,
		Label:    f.Prefix,
		Value:    f.Value,
		Options:  f.Options,
		Selected: f.selected(),
		Style:    style.Resolve(f.Class),
		Change:   f.OnChange,
	}
	if f.isOther() {
		w.Other = &Widget{
			Kind:   TextBox,
			ID:     f.OtherID,
			Value:  f.OtherValue,
			Style:  style.Resolve(f.Class),
			Change: f.OnOtherChange,
		}
	}
	return Rendering{Widget: w}
}

// display is the option text for the value, the raw value when nothing
// matches, and the Other detail appended when it applies.
func (f Select) display() string {
	text := f.Value
	if i := f.selected(); i >= 0 {
		text = f.Options[i].Text
	}
	if f.isOther() && f.OtherValue != "" {
		text += ". " + f.OtherValue
	}
	return text
}

func (f Select) RenderReadOnly() Rendering {
	return Rendering{Static: textRuns(f.Class, f.Prefix, f.display())}
}

func (f Select) RenderPrint() Rendering {
	return Rendering{Static: textRuns(f.Class, f.Prefix, f.display())}
}

// Textarea is a multi line field. Line breaks survive every rendering.
type Textarea struct {
	ID          string
	Class       string
	Placeholder string
	Value       string
	Rows        int
	ReadOnly    bool
	OnChange    Binding
}

func (f Textarea) IsReadOnly() bool  { return f.ReadOnly }
func (f Textarea) ClassName() string { return f.Class }

func (f Textarea) RenderEditable() Rendering {
	return Rendering{Widget: &Widget{
		Kind:        TextArea,
		ID:          f.ID,
		Value:       f.Value,
		Placeholder: f.Placeholder,
		Rows:        f.Rows,
		Style:       style.Resolve(f.Class),
		Change:      f.OnChange,
	}}
}

func (f Textarea) RenderReadOnly() Rendering {
	return Rendering{Static: textRuns(f.Class, "", f.Value)}
}

func (f Textarea) RenderPrint() Rendering {
	return Rendering{Static: textRuns(f.Class, "", f.Value)}
}

// Calendar is a date field. Value is the formatted display string; Selected
// is the day it was parsed to.
type Calendar struct {
	ID       string
	Class    string
	Value    string
	Selected time.Time
	OnChange Binding
}

func (f Calendar) IsReadOnly() bool  { return false }
func (f Calendar) ClassName() string { return f.Class }

func (f Calendar) RenderEditable() Rendering {
	return Rendering{Widget: &Widget{
		Kind:   DatePicker,
		ID:     f.ID,
		Value:  f.Value,
		Date:   f.Selected,
		Style:  style.Resolve(f.Class),
		Change: f.OnChange,
	}}
}

func (f Calendar) RenderReadOnly() Rendering {
	return Rendering{Static: textRuns(f.Class, "", f.Value)}
}

func (f Calendar) RenderPrint() Rendering {
	return Rendering{Static: textRuns(f.Class, "", f.Value)}
}

// Picture shows a static image asset. It is never editable.
type Picture struct {
	Class string
	Src   string
	Width float64
}

func (f Picture) IsReadOnly() bool  { return true }
func (f Picture) ClassName() string { return f.Class }

func (f Picture) static() *Static {
	s := &Static{Style: style.Resolve(f.Class)}
	if f.Src != "" {
		s.Image = &Image{Src: f.Src, Width: f.Width}
	}
	return s
}

func (f Picture) RenderEditable() Rendering { return Rendering{Static: f.static()} }
func (f Picture) RenderReadOnly() Rendering { return Rendering{Static: f.static()} }
func (f Picture) RenderPrint() Rendering    { return Rendering{Static: f.static()} }
