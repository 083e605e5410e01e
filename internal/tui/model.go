package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/andy/quotepad/internal/app"
	"github.com/andy/quotepad/internal/domain"
	"github.com/andy/quotepad/internal/export"
	"github.com/andy/quotepad/internal/service"
	"github.com/andy/quotepad/internal/view"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Model is the invoice editor. It is the only writer of the live invoice:
// every edit goes through the editor service on the event loop.
type Model struct {
	editor    service.EditorService
	profile   domain.Profile
	outputDir string
	now       func() time.Time
	keys      KeyMap
	help      help.Model

	inv     domain.Invoice
	doc     *view.Node
	targets []view.Target
	focus   int

	// Live editors for the focused widget
	input    textinput.Model
	area     textarea.Model
	calendar time.Time

	viewport viewport.Model
	width    int
	height   int

	export    export.Status
	statusMsg string
	err       error
}

// New creates the editor over an opened editor service
func New(editor service.EditorService, profile domain.Profile, outputDir string) *Model {
	m := &Model{
		editor:    editor,
		profile:   profile,
		outputDir: outputDir,
		now:       time.Now,
		keys:      DefaultKeyMap,
		help:      help.New(),
		inv:       editor.Current(),
		export:    editor.ExportStatus(),
		viewport:  viewport.New(80, 20),
	}
	m.recompose()
	m.focusAt(0)
	return m
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) recompose() {
	m.doc = view.Compose(m.inv, view.Options{Mode: view.Interactive, Profile: m.profile, Now: m.now()})
	m.targets = view.Targets(m.doc)
}

func (m *Model) current() *view.Target {
	if m.focus < 0 || m.focus >= len(m.targets) {
		return nil
	}
	return &m.targets[m.focus]
}

func (m *Model) focusedID() string {
	if t := m.current(); t != nil {
		return t.ID
	}
	return ""
}

// focusAt moves focus to target i, wrapping around, and prepares its editor
func (m *Model) focusAt(i int) tea.Cmd {
	n := len(m.targets)
	if n == 0 {
		return nil
	}
	m.focus = (i%n + n) % n
	m.input.Blur()
	m.area.Blur()

	w := m.targets[m.focus].Widget
	if w == nil {
		return nil
	}
	switch w.Kind {
	case view.TextBox:
		m.input = newInput(w)
		return m.input.Focus()
	case view.TextArea:
		m.area = newArea(w)
		return m.area.Focus()
	case view.DatePicker:
		m.calendar = w.Date
	}
	return nil
}

// focusByID focuses the target named id, if present
func (m *Model) focusByID(id string) tea.Cmd {
	for i, t := range m.targets {
		if t.ID == id {
			return m.focusAt(i)
		}
	}
	return nil
}

// refocus restores focus after a recompose without resetting the editor.
// When the target is gone (removed row, hidden Other field) the nearest one
// takes over.
func (m *Model) refocus(id string) tea.Cmd {
	for i, t := range m.targets {
		if t.ID != id {
			continue
		}
		m.focus = i
		if w := t.Widget; w != nil {
			switch w.Kind {
			case view.TextBox:
				if m.input.Value() != w.Value {
					m.input.SetValue(w.Value)
				}
			case view.TextArea:
				if m.area.Value() != w.Value {
					m.area.SetValue(w.Value)
				}
			}
		}
		return nil
	}
	return m.focusAt(min(m.focus, len(m.targets)-1))
}

// apply runs op through the editor service and redraws from the result
func (m *Model) apply(op domain.Op) tea.Cmd {
	if op == nil {
		return nil
	}
	id := m.focusedID()
	inv, err := m.editor.Apply(context.Background(), op)
	m.inv = inv
	m.err = err
	m.export = m.editor.ExportStatus()
	m.recompose()
	return m.refocus(id)
}

func newInput(w *view.Widget) textinput.Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = w.Placeholder
	ti.SetValue(w.Value)
	if len(w.Suggestions) > 0 {
		ti.ShowSuggestions = true
		ti.SetSuggestions(w.Suggestions)
		ti.KeyMap.AcceptSuggestion = key.NewBinding(key.WithKeys("ctrl+f"))
	}
	return ti
}

func newArea(w *view.Widget) textarea.Model {
	ta := textarea.New()
	ta.Prompt = ""
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.Placeholder = w.Placeholder
	ta.SetHeight(max(w.Rows, 2))
	ta.SetValue(w.Value)
	return ta
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.viewport.Width = msg.Width

	case tea.KeyMsg:
		m.statusMsg = ""
		var quit bool
		cmd, quit = m.handleKey(msg)
		if quit {
			return m, tea.Quit
		}

	case exportReadyMsg:
		m.export = m.editor.ExportStatus()
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("PDF failed: %v", msg.err)
		}

	case pdfSavedMsg:
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.statusMsg = "✓ Saved " + msg.path
		}

	default:
		cmd = m.forward(msg)
	}

	m.refresh()
	return m, cmd
}

// forward passes non-key messages (cursor blink) to the live editor
func (m *Model) forward(msg tea.Msg) tea.Cmd {
	t := m.current()
	if t == nil || t.Widget == nil {
		return nil
	}
	var cmd tea.Cmd
	switch t.Widget.Kind {
	case view.TextBox:
		m.input, cmd = m.input.Update(msg)
	case view.TextArea:
		m.area, cmd = m.area.Update(msg)
	}
	return cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return nil, true
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return nil, false
	case key.Matches(msg, m.keys.Next):
		return m.focusAt(m.focus + 1), false
	case key.Matches(msg, m.keys.Prev):
		return m.focusAt(m.focus - 1), false
	case key.Matches(msg, m.keys.AddLine):
		return m.addLine(), false
	case key.Matches(msg, m.keys.RemoveLine):
		if i, ok := lineIndex(m.focusedID()); ok {
			return m.apply(domain.RemoveLineItem{Index: i}), false
		}
		return nil, false
	case key.Matches(msg, m.keys.Save):
		return m.savePDF(), false
	}

	t := m.current()
	if t == nil {
		return nil, false
	}
	if c := t.Control; c != nil {
		if !key.Matches(msg, m.keys.Select) {
			return nil, false
		}
		switch c.Action {
		case view.ActionDownload:
			return m.savePDF(), false
		case view.ActionAddLine:
			return m.addLine(), false
		}
		return m.apply(c.Op()), false
	}

	w := t.Widget
	var cmd tea.Cmd
	switch w.Kind {
	case view.TextBox:
		m.input, cmd = m.input.Update(msg)
		if v := m.input.Value(); v != w.Value {
			cmd = tea.Batch(cmd, m.apply(w.Commit(v)))
		}
	case view.TextArea:
		m.area, cmd = m.area.Update(msg)
		if v := m.area.Value(); v != w.Value {
			cmd = tea.Batch(cmd, m.apply(w.Commit(v)))
		}
	case view.Choice:
		switch {
		case key.Matches(msg, m.keys.Left):
			cmd = m.apply(w.Commit(cycle(w, -1)))
		case key.Matches(msg, m.keys.Right):
			cmd = m.apply(w.Commit(cycle(w, 1)))
		}
	case view.DatePicker:
		switch {
		case key.Matches(msg, m.keys.Left):
			m.calendar = m.calendar.AddDate(0, 0, -1)
		case key.Matches(msg, m.keys.Right):
			m.calendar = m.calendar.AddDate(0, 0, 1)
		case key.Matches(msg, m.keys.Up):
			m.calendar = m.calendar.AddDate(0, 0, -7)
		case key.Matches(msg, m.keys.Down):
			m.calendar = m.calendar.AddDate(0, 0, 7)
		case key.Matches(msg, m.keys.PrevMonth):
			m.calendar = m.calendar.AddDate(0, -1, 0)
		case key.Matches(msg, m.keys.NextMonth):
			m.calendar = m.calendar.AddDate(0, 1, 0)
		case key.Matches(msg, m.keys.Select):
			cmd = m.apply(w.Commit(domain.FormatDate(m.calendar)))
		}
	}
	return cmd, false
}

// cycle returns the option value delta steps from the current one. An
// unmatched value starts from either end.
func cycle(w *view.Widget, delta int) string {
	n := len(w.Options)
	if n == 0 {
		return w.Value
	}
	i := w.Selected
	switch {
	case i < 0 && delta > 0:
		i = 0
	case i < 0:
		i = n - 1
	default:
		i = ((i+delta)%n + n) % n
	}
	return w.Options[i].Value
}

func (m *Model) addLine() tea.Cmd {
	cmd := m.apply(domain.AddLineItem{})
	if last := len(m.inv.ProductLines) - 1; last >= 0 {
		return tea.Batch(cmd, m.focusByID(view.LineID(last, domain.LineDescription)))
	}
	return cmd
}

// savePDF writes the ready artifact to the output directory
func (m *Model) savePDF() tea.Cmd {
	m.export = m.editor.ExportStatus()
	if m.export.State != export.StateReady || m.export.Artifact == nil {
		m.statusMsg = "PDF is still being prepared"
		return nil
	}
	art := m.export.Artifact
	dir := m.outputDir
	return func() tea.Msg {
		path, err := art.Save(dir)
		return pdfSavedMsg{path: path, err: err}
	}
}

// refresh redraws the document into the viewport and scrolls the focused
// target into view
func (m *Model) refresh() {
	if m.width == 0 {
		return
	}
	footer := m.footerView()
	m.viewport.Height = max(m.height-1-lipgloss.Height(footer), 3)

	content, top, bottom := m.renderDocument(m.viewport.Width)
	m.viewport.SetContent(content)
	switch {
	case top < m.viewport.YOffset:
		m.viewport.SetYOffset(top)
	case bottom > m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(bottom - m.viewport.Height)
	}
}

// renderDocument draws the page children one block at a time and returns
// the line span of the block holding the focused target
func (m *Model) renderDocument(width int) (string, int, int) {
	r := &renderer{
		focusID: m.focusedID(),
		editor:  m.editorView,
		label:   m.controlLabel,
	}
	var page *view.Node
	view.Walk(m.doc, func(n *view.Node) {
		if page == nil && n.Kind == view.KindPage {
			page = n
		}
	})
	if page == nil {
		return "", 0, 0
	}

	var blocks []string
	line, top, bottom := 0, 0, 0
	for _, c := range page.Children {
		block := r.render(c, page.Style, width-2)
		h := lipgloss.Height(block)
		if r.hit && bottom == 0 {
			top, bottom = line, line+h
		}
		blocks = append(blocks, block)
		line += h
	}
	return strings.Join(blocks, "\n"), top, bottom
}

// editorView draws the live editor of the focused widget
func (m *Model) editorView(w *view.Widget, width int) string {
	switch w.Kind {
	case view.TextBox:
		m.input.Width = max(width-1, 1)
		return m.input.View()
	case view.TextArea:
		m.area.SetWidth(max(width, 4))
		return m.area.View()
	case view.DatePicker:
		return dateEditor(m.calendar, w.Date, m.now())
	}
	return w.Value
}

func (m *Model) controlLabel(c *view.Control) string {
	if c.Action == view.ActionDownload && m.export.State != export.StateReady {
		return c.Label + " (preparing…)"
	}
	return c.Label
}

func (m *Model) exportLabel() string {
	switch m.export.State {
	case export.StatePending:
		return lipgloss.NewStyle().Foreground(warningColor).Render("PDF: preparing…")
	case export.StateReady:
		return lipgloss.NewStyle().Foreground(successColor).Render("PDF: ready")
	case export.StateFailed:
		return lipgloss.NewStyle().Foreground(errorColor).Render("PDF: failed")
	}
	return footerStyle.Render("PDF: idle")
}

func (m *Model) footerView() string {
	status := m.exportLabel()
	switch {
	case m.err != nil:
		status += "  " + lipgloss.NewStyle().Foreground(errorColor).Render("Error: "+m.err.Error())
	case m.statusMsg != "":
		status += "  " + m.statusMsg
	}
	return lipgloss.JoinVertical(lipgloss.Left, status, m.help.View(m.keys))
}

// View implements tea.Model
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}
	title := m.profile.Heading(m.inv) + " " + m.inv.InvoiceNumber
	header := headerStyle.Render(truncateStr("quotepad - "+title, max(m.width-2, 1)))
	return lipgloss.JoinVertical(lipgloss.Left, header, m.viewport.View(), m.footerView())
}

// Run opens the saved invoice and starts the editor
func Run(ctx context.Context, a *app.App) error {
	if _, err := a.Editor.Open(ctx); err != nil {
		return err
	}
	m := New(a.Editor, a.Profile, a.Config.Export.OutputDir)
	p := tea.NewProgram(m, tea.WithAltScreen())
	a.Trigger.OnReady(func(art *export.Artifact, err error) {
		p.Send(exportReadyMsg{artifact: art, err: err})
	})
	_, err := p.Run()
	return err
}
