package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/daybook/internal/constants"
	"github.com/julianstephens/daybook/internal/content"
	"github.com/julianstephens/daybook/internal/tui/components/dashboard"
	"github.com/julianstephens/daybook/internal/tui/components/history"
	"github.com/julianstephens/daybook/internal/tui/components/monthview"
	"github.com/julianstephens/daybook/internal/tui/components/today"
)

var (
	sectionTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#5E503F"))
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var body string
	switch m.state {
	case constants.StateJournal:
		body = m.viewJournal()
	case constants.StateHistory:
		body = m.viewHistory()
	case constants.StateEntryDetail:
		body = m.viewDetail()
	case constants.StateDashboard:
		body = m.viewAuthed(dashboard.View(m.dashboard, m.dashboardLoaded))
	case constants.StateCalendar:
		body = m.viewAuthed(monthview.View(m.month, m.monthLoaded))
	case constants.StateResources:
		body = viewResources()
	case constants.StateWriting, constants.StateEditing:
		body = m.form.View()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		m.viewBanner(),
		docStyle.Render(body),
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	active := m.state
	switch m.state {
	case constants.StateEntryDetail:
		active = constants.StateHistory
	case constants.StateWriting, constants.StateEditing:
		active = m.previousState
	}

	var rendered []string
	for _, t := range tabs {
		if t.state == active {
			rendered = append(rendered, activeTabStyle.Render(t.title))
		} else {
			rendered = append(rendered, inactiveTabStyle.Render(t.title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m Model) viewBanner() string {
	if !m.st.Banner.Visible() {
		return ""
	}
	return bannerStyle(m.st.Banner.Kind).Render(m.st.Banner.Message)
}

func (m Model) viewJournal() string {
	return m.todayModel.View(today.Data{
		Today:     m.st.Today,
		Quote:     m.quote,
		Prompts:   m.st.Prompts,
		Entries:   m.st.TodayEntries,
		Streak:    m.st.Streak,
		Anonymous: m.anonymous(),
	})
}

func (m Model) viewHistory() string {
	if m.anonymous() {
		return mutedStyle.Render(constants.BannerHistoryRequired)
	}
	empty := "No entries yet. Write your first one from the Journal tab."
	if strings.TrimSpace(m.st.SearchQuery) != "" {
		empty = "No entries match your search."
	}
	return m.historyModel.View(m.st.Entries(), m.st.Searching, empty)
}

func (m Model) viewDetail() string {
	out := history.DetailView(m.st.Detail, m.width)
	if m.confirmDelete {
		out += "\n\n" + dangerStyle.Render("Delete this entry? (y/n)")
	}
	return out
}

// viewAuthed hides per-user views from anonymous sessions
func (m Model) viewAuthed(view string) string {
	if m.anonymous() {
		return mutedStyle.Render("Sign in with 'daybook auth login' to see your insights.")
	}
	return view
}

func viewResources() string {
	var b strings.Builder
	for i, section := range content.Resources() {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(sectionTitleStyle.Render(section.Title))
		b.WriteString("\n")
		for _, line := range section.Content {
			b.WriteString("  • " + line + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
