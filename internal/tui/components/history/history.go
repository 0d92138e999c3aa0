// Package history renders the searchable entry list and the entry detail.
package history

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/daybook/internal/models"
)

var (
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	titleStyle = lipgloss.NewStyle().Bold(true)

	contentStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#BAA68E")).
			Padding(0, 1)
)

type Model struct {
	input  textinput.Model
	cursor int
	width  int
	height int
}

func New() Model {
	ti := textinput.New()
	ti.Placeholder = "Search entries..."
	ti.Prompt = "🔍 "
	ti.CharLimit = 200
	return Model{input: ti}
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = width - 6
}

func (m *Model) Focus() tea.Cmd {
	return m.input.Focus()
}

func (m *Model) Blur() {
	m.input.Blur()
}

func (m Model) Focused() bool {
	return m.input.Focused()
}

func (m Model) Query() string {
	return m.input.Value()
}

// Update feeds a key to the search box and reports whether the query changed
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd, bool) {
	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	changed := m.input.Value() != before
	if changed {
		m.cursor = 0
	}
	return m, cmd, changed
}

func (m Model) Cursor() int {
	return m.cursor
}

// Move shifts the selection by delta, clamped to n rows
func (m *Model) Move(delta, n int) {
	m.cursor += delta
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// Selected returns the highlighted entry
func (m Model) Selected(entries []models.HistoryEntry) (models.HistoryEntry, bool) {
	if m.cursor < 0 || m.cursor >= len(entries) {
		return models.HistoryEntry{}, false
	}
	return entries[m.cursor], true
}

func (m Model) View(entries []models.HistoryEntry, searching bool, emptyText string) string {
	var b strings.Builder
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	if searching {
		b.WriteString(mutedStyle.Render("Searching..."))
		return b.String()
	}
	if len(entries) == 0 {
		b.WriteString(mutedStyle.Render(emptyText))
		return b.String()
	}

	for i, e := range entries {
		title := e.Prompt.Title()
		if title == "" {
			title = "Untitled prompt"
		}
		pointer := "  "
		header := fmt.Sprintf("%s  %s", e.EntryDate, title)
		if i == m.cursor {
			pointer = "> "
			header = selectedStyle.Render(header)
		}
		mood := "  "
		if e.Mood.IsSet() {
			mood = e.Mood.Emoji()
		}
		fmt.Fprintf(&b, "%s%s %s\n", pointer, mood, header)
		fmt.Fprintf(&b, "     %s\n", mutedStyle.Render(preview(e.Content, m.width-8)))
	}
	return b.String()
}

// DetailView renders one entry in full
func DetailView(e models.HistoryEntry, width int) string {
	var b strings.Builder
	title := e.Prompt.Title()
	if title == "" {
		title = "Untitled prompt"
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("  ")
	b.WriteString(mutedStyle.Render(e.EntryDate))
	b.WriteString("\n")
	if d := e.Prompt.Description(); d != "" {
		b.WriteString(mutedStyle.Render(d))
		b.WriteString("\n")
	}
	if e.Mood.IsSet() {
		fmt.Fprintf(&b, "\nMood: %s %s\n", e.Mood.Emoji(), e.Mood.Label())
	}
	b.WriteString("\n")

	style := contentStyle
	if width > 8 {
		style = style.Width(width - 8)
	}
	b.WriteString(style.Render(e.Content))
	return b.String()
}

func preview(content string, width int) string {
	line := strings.Join(strings.Fields(content), " ")
	r := []rune(line)
	if width <= 1 || len(r) <= width {
		return line
	}
	return string(r[:width-1]) + "…"
}
