package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/daybook/internal/constants"
	"github.com/julianstephens/daybook/internal/journal"
	"github.com/julianstephens/daybook/internal/models"
	"github.com/julianstephens/daybook/internal/tui/forms"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.todayModel.SetSize(msg.Width - 4)
		m.historyModel.SetSize(msg.Width-4, msg.Height-8)
		if m.form != nil {
			m.form = m.form.WithWidth(msg.Width - 4)
		}
		return m, nil

	case homeLoadedMsg:
		m.quote = msg.home.Quote
		cmd := m.apply(journal.HomeLoaded{Home: msg.home})
		return m, cmd

	case entrySavedMsg:
		m.invalidateInsights()
		cmd := m.apply(journal.EntrySaved{Result: msg.result})
		return m, cmd

	case entryUpdatedMsg:
		m.invalidateInsights()
		cmd := m.apply(journal.EntryUpdated{Entry: msg.entry})
		return m, cmd

	case entryDeletedMsg:
		m.invalidateInsights()
		m.apply(journal.EntryDeleted{ID: msg.id})
		if m.state == constants.StateEntryDetail && !m.st.DetailOpen {
			m.state = constants.StateHistory
		}
		m.historyModel.Move(0, len(m.st.Entries()))
		cmd := m.apply(journal.BannerShown{Kind: constants.BannerSuccess, Message: constants.BannerEntryDeleted})
		return m, cmd

	case searchTickMsg:
		if msg.seq != m.st.SearchSeq {
			return m, nil
		}
		return m, m.search(msg.seq, msg.query)

	case searchResultMsg:
		cmd := m.apply(journal.SearchCompleted{Seq: msg.seq, Results: msg.results})
		return m, cmd

	case dashboardLoadedMsg:
		m.dashboard = msg.summary
		m.dashboardLoaded = true
		return m, nil

	case calendarLoadedMsg:
		if msg.key != m.monthKey {
			return m, nil
		}
		m.month = msg.month
		m.monthLoaded = true
		return m, nil

	case requestFailedMsg:
		cmd := m.apply(journal.RequestFailed{Err: msg.err, Fallback: msg.fallback})
		return m, cmd

	case bannerExpiredMsg:
		cmd := m.apply(journal.BannerExpired{Seq: msg.seq})
		return m, cmd
	}

	if m.state == constants.StateWriting || m.state == constants.StateEditing {
		return m.updateForm(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.historyModel.Focused() {
			var cmd tea.Cmd
			m.historyModel, cmd, _ = m.historyModel.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	if m.historyModel.Focused() {
		return m.updateSearch(keyMsg)
	}
	if m.confirmDelete {
		return m.updateConfirmDelete(keyMsg)
	}

	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(keyMsg, m.keys.Refresh):
		m.invalidateInsights()
		return m, m.refresh()
	}

	if m.state == constants.StateEntryDetail {
		return m.updateDetail(keyMsg)
	}

	switch {
	case key.Matches(keyMsg, m.keys.Tab):
		return m.switchTab(1)
	case key.Matches(keyMsg, m.keys.ShiftTab):
		return m.switchTab(-1)
	}

	switch m.state {
	case constants.StateJournal:
		return m.updateJournal(keyMsg)
	case constants.StateHistory:
		return m.updateHistory(keyMsg)
	case constants.StateCalendar:
		return m.updateCalendar(keyMsg)
	}
	return m, nil
}

func (m Model) switchTab(delta int) (tea.Model, tea.Cmd) {
	idx := 0
	for i, t := range tabs {
		if t.state == m.state {
			idx = i
		}
	}
	idx = (idx + delta + len(tabs)) % len(tabs)
	m.state = tabs[idx].state
	return m, m.loadTab()
}

// loadTab fetches whatever the current tab shows and is not cached yet
func (m Model) loadTab() tea.Cmd {
	if m.anonymous() {
		return nil
	}
	switch m.state {
	case constants.StateDashboard:
		if !m.dashboardLoaded {
			return m.loadDashboard()
		}
	case constants.StateCalendar:
		if !m.monthLoaded {
			return m.loadCalendar()
		}
	}
	return nil
}

func (m *Model) invalidateInsights() {
	m.dashboardLoaded = false
	m.monthLoaded = false
}

func (m Model) refresh() tea.Cmd {
	cmds := []tea.Cmd{m.loadHome(), m.loadTab()}
	if q := m.st.SearchQuery; strings.TrimSpace(q) != "" && !m.anonymous() {
		cmds = append(cmds, m.search(m.st.SearchSeq, q))
	}
	return tea.Batch(cmds...)
}

func (m Model) updateJournal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.todayModel.Move(-1, len(m.st.Prompts))
	case key.Matches(msg, m.keys.Down):
		m.todayModel.Move(1, len(m.st.Prompts))
	case key.Matches(msg, m.keys.Write), key.Matches(msg, m.keys.Enter):
		return m.openWriteForm()
	}
	return m, nil
}

func (m Model) updateHistory(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.anonymous() {
		return m, nil
	}
	entries := m.st.Entries()
	switch {
	case key.Matches(msg, m.keys.Up):
		m.historyModel.Move(-1, len(entries))
	case key.Matches(msg, m.keys.Down):
		m.historyModel.Move(1, len(entries))
	case key.Matches(msg, m.keys.Search):
		cmd := m.historyModel.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.Enter):
		if e, ok := m.historyModel.Selected(entries); ok {
			m.apply(journal.EntrySelected{Entry: e})
			m.state = constants.StateEntryDetail
		}
	case key.Matches(msg, m.keys.Edit):
		if e, ok := m.historyModel.Selected(entries); ok {
			return m.openEditForm(e)
		}
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.quitting = true
		return m, tea.Quit
	case tea.KeyEsc, tea.KeyEnter:
		m.historyModel.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	var changed bool
	m.historyModel, cmd, changed = m.historyModel.Update(msg)
	if !changed {
		return m, cmd
	}
	query := m.historyModel.Query()
	m.apply(journal.SearchQueryChanged{Query: query})
	if strings.TrimSpace(query) == "" {
		return m, cmd
	}
	return m, tea.Batch(cmd, debounceSearch(m.st.SearchSeq, query))
}

func (m Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.apply(journal.EntryClosed{})
		m.state = constants.StateHistory
	case key.Matches(msg, m.keys.Edit):
		return m.openEditForm(m.st.Detail)
	case key.Matches(msg, m.keys.Delete):
		m.confirmDelete = true
	}
	return m, nil
}

func (m Model) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.confirmDelete = false
		return m, m.deleteEntry(m.st.Detail.ID)
	case "n", "N", "esc":
		m.confirmDelete = false
	}
	return m, nil
}

func (m Model) updateCalendar(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	delta := 0
	switch {
	case key.Matches(msg, m.keys.PrevMonth):
		delta = -1
	case key.Matches(msg, m.keys.NextMonth):
		delta = 1
	default:
		return m, nil
	}
	t, err := time.Parse(constants.MonthFormat, m.monthKey)
	if err != nil {
		return m, nil
	}
	m.monthKey = t.AddDate(0, delta, 0).Format(constants.MonthFormat)
	m.monthLoaded = false
	return m, m.loadTab()
}

func (m Model) openWriteForm() (tea.Model, tea.Cmd) {
	idx := m.todayModel.Cursor()
	if idx < 0 || idx >= len(m.st.Prompts) {
		return m, nil
	}
	p := m.st.Prompts[idx]
	fm := &forms.EntryFormModel{}
	if e, ok := m.st.TodayEntries[p.ID]; ok {
		fm.Content = e.Content
		fm.Mood = e.Mood
	}
	m.entryForm = fm
	m.promptID = p.ID
	m.form = forms.NewEntryForm(p.Title, p.Description, fm)
	m.previousState = m.state
	m.state = constants.StateWriting
	return m, m.form.Init()
}

func (m Model) openEditForm(e models.HistoryEntry) (tea.Model, tea.Cmd) {
	title := e.Prompt.Title()
	if title == "" {
		title = "Edit entry"
	}
	fm := &forms.EntryFormModel{Content: e.Content, Mood: e.Mood}
	m.entryForm = fm
	m.editingID = e.ID
	m.form = forms.NewEntryForm(title, "Entry from "+e.EntryDate, fm)
	m.previousState = m.state
	m.state = constants.StateEditing
	return m, m.form.Init()
}

func (m Model) closeForm() Model {
	m.state = m.previousState
	m.form = nil
	m.entryForm = nil
	m.promptID = ""
	m.editingID = ""
	return m
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		return m.closeForm(), nil
	}

	var cmds []tea.Cmd
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	cmds = append(cmds, cmd)

	switch m.form.State {
	case huh.StateCompleted:
		content := m.entryForm.Content
		mood := m.entryForm.Mood
		if strings.TrimSpace(content) == "" {
			// Stay in the form so the user can keep writing
			m.form.State = huh.StateNormal
			cmds = append(cmds, m.apply(journal.BannerShown{Kind: constants.BannerError, Message: constants.BannerEmptyContent}))
			return m, tea.Batch(cmds...)
		}
		if m.anonymous() {
			m.form.State = huh.StateNormal
			cmds = append(cmds, m.apply(journal.BannerShown{Kind: constants.BannerError, Message: constants.BannerLoginRequired}))
			return m, tea.Batch(cmds...)
		}

		var save tea.Cmd
		if m.state == constants.StateWriting {
			save = m.submit(journal.Submission{PromptID: m.promptID, Content: content, Mood: mood})
		} else {
			save = m.updateEntry(m.editingID, content, mood)
		}
		return m.closeForm(), save
	case huh.StateAborted:
		return m.closeForm(), nil
	}

	return m, tea.Batch(cmds...)
}
