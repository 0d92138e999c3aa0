// Package today renders the journal tab: the daily quote, the streak and
// today's prompts with their entries.
package today

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/daybook/internal/models"
)

var (
	quoteStyle = lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color("#5E503F")).
			BorderLeft(true).
			BorderStyle(lipgloss.ThickBorder()).
			BorderForeground(lipgloss.Color("#BAA68E")).
			PaddingLeft(1)

	streakStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#834D4D"))

	titleStyle = lipgloss.NewStyle().Bold(true)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// Data is everything the journal tab shows
type Data struct {
	Today     string
	Quote     models.Quote
	Prompts   []models.Prompt
	Entries   map[string]models.JournalEntry
	Streak    models.StreakInfo
	Anonymous bool
}

type Model struct {
	cursor int
	width  int
}

func New() Model {
	return Model{}
}

func (m *Model) SetSize(width int) {
	m.width = width
}

// Cursor returns the selected prompt index
func (m Model) Cursor() int {
	return m.cursor
}

// Move shifts the selection by delta, clamped to n prompts
func (m *Model) Move(delta, n int) {
	m.cursor += delta
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) View(d Data) string {
	var b strings.Builder

	b.WriteString(quoteStyle.Render(fmt.Sprintf("%q\n— %s", d.Quote.Text, d.Quote.Author)))
	b.WriteString("\n\n")

	switch {
	case d.Anonymous:
		b.WriteString(mutedStyle.Render("Sign in with 'daybook auth login' to save entries and track your streak."))
	case d.Streak.CurrentStreak > 0:
		b.WriteString(streakStyle.Render(fmt.Sprintf("🔥 %d day streak", d.Streak.CurrentStreak)))
	default:
		b.WriteString(mutedStyle.Render("Write today to start a streak."))
	}
	b.WriteString("\n\n")

	b.WriteString(titleStyle.Render("Today's prompts · " + d.Today))
	b.WriteString("\n")
	if len(d.Prompts) == 0 {
		b.WriteString(mutedStyle.Render("No prompts configured."))
		return b.String()
	}

	for i, p := range d.Prompts {
		pointer := "  "
		title := p.Title
		if i == m.cursor {
			pointer = "> "
			title = selectedStyle.Render(title)
		}
		status := "○"
		if _, ok := d.Entries[p.ID]; ok {
			status = "✓"
		}
		fmt.Fprintf(&b, "\n%s%s %s\n", pointer, status, title)
		fmt.Fprintf(&b, "    %s\n", mutedStyle.Render(p.Description))
		if e, ok := d.Entries[p.ID]; ok {
			line := strings.Join(strings.Fields(e.Content), " ")
			if e.Mood.IsSet() {
				line = e.Mood.Emoji() + " " + line
			}
			fmt.Fprintf(&b, "    %s\n", truncate(line, m.width-6))
		}
	}
	return b.String()
}

func truncate(s string, width int) string {
	if width <= 1 {
		return s
	}
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-1]) + "…"
}
