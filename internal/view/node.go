// Package view builds the invoice document as a tree of layout nodes and
// rendered fields. The same tree feeds the terminal editor, the browser page
// and the PDF printer.
package view

import (
	"github.com/andy/quotepad/internal/domain"
	"github.com/andy/quotepad/internal/style"
)

// Mode selects the render target.
type Mode int

const (
	Interactive Mode = iota
	Print
)

func (m Mode) String() string {
	if m == Print {
		return "print"
	}
	return "interactive"
}

// Kind identifies a node type.
type Kind int

const (
	KindDocument Kind = iota
	KindPage
	KindView
	KindText
	KindField
	KindControl
)

// Node is one element of the document tree. Layout nodes carry no state
// beyond their resolved style.
type Node struct {
	Kind     Kind
	Class    string
	Style    style.Style
	Mode     Mode
	Keep     bool // print: do not split across pages
	Text     string
	Out      Rendering
	Control  *Control
	Children []*Node
}

// Action is what a control does when activated.
type Action int

const (
	ActionDownload Action = iota
	ActionAddLine
	ActionRemoveLine
)

// Control is an interactive-only affordance: buttons that never print.
type Control struct {
	ID     string
	Action Action
	Index  int
	Label  string
}

// Op returns the reducer operation the control requests, or nil for actions
// handled by the host (download).
func (c *Control) Op() domain.Op {
	switch c.Action {
	case ActionAddLine:
		return domain.AddLineItem{}
	case ActionRemoveLine:
		return domain.RemoveLineItem{Index: c.Index}
	}
	return nil
}

// Document is the tree root.
func Document(m Mode, children ...*Node) *Node {
	return container(KindDocument, m, "", children)
}

// Page holds the document body.
func Page(m Mode, class string, children ...*Node) *Node {
	return container(KindPage, m, "page "+class, children)
}

// View is a flow container; "flex" in its class lays children out in a row.
func View(m Mode, class string, children ...*Node) *Node {
	n := container(KindView, m, class, children)
	n.Keep = m == Print
	return n
}

// Text is a static run of computed text.
func Text(m Mode, class, text string) *Node {
	return &Node{Kind: KindText, Mode: m, Class: class, Style: style.Resolve(class), Text: text}
}

// FieldNode renders f for m and wraps the result.
func FieldNode(m Mode, f Field) *Node {
	out := Render(f, m)
	return &Node{Kind: KindField, Mode: m, Class: f.ClassName(), Style: out.Style(), Out: out}
}

// ControlNode wraps an interactive-only control. In print mode it yields nil,
// which containers drop.
func ControlNode(m Mode, c *Control) *Node {
	if m == Print {
		return nil
	}
	return &Node{Kind: KindControl, Mode: m, Control: c}
}

func container(k Kind, m Mode, class string, children []*Node) *Node {
	n := &Node{Kind: k, Mode: m, Class: class, Style: style.Resolve(class)}
	for _, c := range children {
		if c != nil {
			n.Children = append(n.Children, c)
		}
	}
	return n
}

// Walk visits n and its descendants depth first, in document order.
func Walk(n *Node, fn func(*Node)) {
	if n == nil {
		return
	}
	fn(n)
	for _, c := range n.Children {
		Walk(c, fn)
	}
}

// Target is something the user can focus in an interactive tree: an editable
// widget or a control.
type Target struct {
	ID      string
	Widget  *Widget
	Control *Control
}

// Targets lists focusable elements in document order. A select's Other
// companion directly follows its select.
func Targets(root *Node) []Target {
	var out []Target
	Walk(root, func(n *Node) {
		switch {
		case n.Kind == KindControl:
			out = append(out, Target{ID: n.Control.ID, Control: n.Control})
		case n.Kind == KindField && n.Out.Widget != nil:
			w := n.Out.Widget
			out = append(out, Target{ID: w.ID, Widget: w})
			if w.Other != nil {
				out = append(out, Target{ID: w.Other.ID, Widget: w.Other})
			}
		}
	})
	return out
}
