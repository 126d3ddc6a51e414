// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Item is one pickable row.
type Item struct {
	ID    string
	Label string
}

// ErrCanceled is returned when the picker is quit without a selection.
var ErrCanceled = errors.New("selection canceled")

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#623CE4"))
	helpStyle  = lipgloss.NewStyle().Faint(true)
)

// Pick lets the user choose two items on the terminal.
func Pick(title string, items []Item, opts ...tea.ProgramOption) ([]Item, error) {
	if len(items) < 2 {
		return nil, fmt.Errorf("need at least two items to compare, found %d", len(items))
	}

	final, err := tea.NewProgram(newModel(title, items), opts...).Run()
	if err != nil {
		return nil, fmt.Errorf("picker failed: %w", err)
	}
	m := final.(model)
	if len(m.selected) != 2 {
		return nil, ErrCanceled
	}
	return m.selected, nil
}

type model struct {
	title     string
	items     []Item
	cursor    int
	selected  []Item
	filter    textinput.Model
	filtering bool
}

func newModel(title string, items []Item) model {
	ti := textinput.New()
	ti.Prompt = "/"
	ti.CharLimit = 256
	ti.Cursor.SetMode(cursor.CursorBlink)
	return model{title: title, items: items, filter: ti}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.filtering {
			var cmd tea.Cmd
			m.filter, cmd = m.filter.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	if m.filtering {
		return m.updateFilter(key)
	}

	switch key.String() {
	case "q", "esc", "ctrl+c":
		m.selected = nil
		return m, tea.Quit
	case "/":
		m.filtering = true
		return m, tea.Batch(m.filter.Focus(), textinput.Blink)
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.visible())-1 {
			m.cursor++
		}
	case " ":
		m.toggle()
	case "enter":
		if len(m.selected) == 2 {
			return m, tea.Quit
		}
	}
	return m, nil
}

// updateFilter edits the filter line. Enter keeps the filter and esc clears it.
func (m model) updateFilter(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "ctrl+c":
		m.selected = nil
		return m, tea.Quit
	case "esc":
		m.filter.SetValue("")
		fallthrough
	case "enter":
		m.filtering = false
		m.filter.Blur()
		m.clampCursor()
		return m, nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(key)
	m.clampCursor()
	return m, cmd
}

// visible returns the items whose label contains the filter text.
func (m model) visible() []Item {
	needle := strings.ToLower(strings.TrimSpace(m.filter.Value()))
	if needle == "" {
		return m.items
	}
	var out []Item
	for _, item := range m.items {
		if strings.Contains(strings.ToLower(item.Label), needle) {
			out = append(out, item)
		}
	}
	return out
}

func (m *model) clampCursor() {
	if n := len(m.visible()); m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
}

func (m *model) toggle() {
	rows := m.visible()
	if len(rows) == 0 {
		return
	}
	cur := rows[m.cursor]
	for i, v := range m.selected {
		if v.ID == cur.ID {
			m.selected = append(m.selected[:i:i], m.selected[i+1:]...)
			return
		}
	}
	if len(m.selected) < 2 {
		m.selected = append(m.selected, cur)
	}
}

func (m model) isSelected(item Item) bool {
	for _, v := range m.selected {
		if v.ID == item.ID {
			return true
		}
	}
	return false
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title) + "\n\n")
	rows := m.visible()
	for i, item := range rows {
		cursor := " "
		if m.cursor == i {
			cursor = ">"
		}
		mark := " "
		if m.isSelected(item) {
			mark = "x"
		}
		fmt.Fprintf(&b, "%s [%s] %s\n", cursor, mark, item.Label)
	}
	if len(rows) == 0 {
		b.WriteString("  (no matches)\n")
	}

	b.WriteString("\n")
	if m.filtering || m.filter.Value() != "" {
		b.WriteString(m.filter.View() + "\n")
	}
	b.WriteString(helpStyle.Render("SPACE: toggle, /: filter, ENTER: compare, Q/ESCAPE: quit") + "\n")
	return b.String()
}
