package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/figlayout/pkg/diagram"
	"github.com/matzehuels/figlayout/pkg/edit"
	"github.com/matzehuels/figlayout/pkg/editor"
	"github.com/matzehuels/figlayout/pkg/errors"
	"github.com/matzehuels/figlayout/pkg/figure"
	"github.com/matzehuels/figlayout/pkg/layout"
)

// List styles
var (
	listDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
	listLockedStyle = lipgloss.NewStyle().Foreground(colorYellow)
	listHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	listCursorStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
)

// layoutKeys maps session keys to layout algorithms.
var layoutKeys = map[string]string{
	"g": layout.AlgorithmGrid,
	"l": layout.AlgorithmLayered,
	"f": layout.AlgorithmForce,
}

// =============================================================================
// EditModel - Interactive layout session
// =============================================================================

// EditModel is the bubbletea model for the interactive edit session.
type EditModel struct {
	ctx    context.Context
	editor *editor.Editor
	layout layout.Config
	path   string

	Cursor int
	Offset int
	Height int

	Status    string
	StatusErr bool
	Dirty     bool
	Saved     bool
}

// NewEditModel creates a session over ed. Saving writes the document to path.
func NewEditModel(ctx context.Context, ed *editor.Editor, cfg layout.Config, path string) EditModel {
	return EditModel{
		ctx:    ctx,
		editor: ed,
		layout: cfg,
		path:   path,
		Height: 15,
	}
}

func (m EditModel) Init() tea.Cmd {
	return nil
}

func (m EditModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		key := msg.String()
		if algorithm, ok := layoutKeys[key]; ok {
			m.applyLayout(algorithm)
			return m, nil
		}
		switch key {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < m.figureCount()-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "u":
			ed, err := m.editor.Undo(m.ctx)
			m.report(err, "Undid %s", editName(ed))
		case "r":
			ed, err := m.editor.Redo(m.ctx)
			m.report(err, "Redid %s", editName(ed))
		case "x":
			m.removeSelected()
		case "s":
			m.save()
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-10, 5)
	}
	return m, nil
}

func (m *EditModel) applyLayout(algorithm string) {
	l, err := layout.New(algorithm, m.editor.Document(), m.layout)
	if err != nil {
		m.report(err, "")
		return
	}
	ed, err := m.editor.ApplyLayout(m.ctx, l)
	if err != nil {
		m.report(err, "")
		return
	}
	if ed.IsNoop() {
		m.report(nil, "%s: nothing moved", algorithm)
		return
	}
	m.report(nil, "%s: moved %d figure(s)", algorithm, ed.Len())
}

func (m *EditModel) removeSelected() {
	f, ok := m.selected()
	if !ok {
		return
	}
	if err := m.editor.RemoveFigure(f.ID); err != nil {
		m.report(err, "")
		return
	}
	m.report(nil, "Removed %s", f.ID)
	if m.Cursor >= m.figureCount() && m.Cursor > 0 {
		m.Cursor--
	}
	if m.Offset > m.Cursor {
		m.Offset = m.Cursor
	}
}

func (m *EditModel) save() {
	if err := diagram.WriteFile(m.editor.Document(), m.path); err != nil {
		m.report(err, "")
		return
	}
	m.Status, m.StatusErr = "Saved "+m.path, false
	m.Dirty, m.Saved = false, true
}

// report sets the status line. Any successful action marks the document dirty.
func (m *EditModel) report(err error, format string, args ...any) {
	if err != nil {
		m.Status, m.StatusErr = errors.UserMessage(err), true
		return
	}
	m.Status, m.StatusErr = fmt.Sprintf(format, args...), false
	m.Dirty = true
}

func (m EditModel) figureCount() int {
	return m.editor.Document().Len()
}

func (m EditModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Edit " + m.path))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("g grid  l layered  f force  u undo  r redo  x delete  s save  q quit"))
	b.WriteString("\n\n")

	figs := m.editor.Document().Figures()
	end := min(m.Offset+m.Height, len(figs))

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		f := figs[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		locked := ""
		if f.Locked {
			locked = "locked"
		}
		g := f.Geometry
		rows = append(rows, []string{
			cursor,
			f.DisplayLabel(),
			string(f.Kind),
			fmt.Sprintf("%.0f", g.X),
			fmt.Sprintf("%.0f", g.Y),
			fmt.Sprintf("%.0f×%.0f", g.Width, g.Height),
			locked,
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Figure", "Kind", "X", "Y", "Size", "").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return listHeaderStyle
			}
			idx := m.Offset + row
			if idx >= len(figs) {
				return lipgloss.NewStyle()
			}
			switch {
			case idx == m.Cursor:
				return listCursorStyle
			case figs[idx].Locked:
				return listLockedStyle
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")

	applied, total := m.editor.HistoryStats()
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d] history %d/%d", min(m.Cursor+1, len(figs)), len(figs), applied, total)))
	if m.Dirty {
		b.WriteString(StyleWarning.Render("  modified"))
	}
	b.WriteString("\n")

	if m.Status != "" {
		if m.StatusErr {
			b.WriteString(styleIconError.Render(iconError) + " " + m.Status)
		} else {
			b.WriteString(styleIconSuccess.Render(iconSuccess) + " " + m.Status)
		}
		b.WriteString("\n")
	}

	return b.String()
}

func editName(ed *edit.Edit) string {
	if ed == nil {
		return "nothing"
	}
	return ed.Name()
}

// selected returns the figure under the cursor.
func (m EditModel) selected() (*figure.Figure, bool) {
	figs := m.editor.Document().Figures()
	if m.Cursor >= len(figs) {
		return nil, false
	}
	return figs[m.Cursor], true
}
