package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/daybook/internal/calendar"
	"github.com/julianstephens/daybook/internal/constants"
	"github.com/julianstephens/daybook/internal/journal"
	"github.com/julianstephens/daybook/internal/models"
	"github.com/julianstephens/daybook/internal/stats"
	"github.com/julianstephens/daybook/internal/tui/components/history"
	"github.com/julianstephens/daybook/internal/tui/components/today"
	"github.com/julianstephens/daybook/internal/tui/forms"
)

var tabs = []struct {
	state constants.SessionState
	title string
}{
	{constants.StateJournal, "Journal"},
	{constants.StateHistory, "History"},
	{constants.StateDashboard, "Dashboard"},
	{constants.StateCalendar, "Calendar"},
	{constants.StateResources, "Resources"},
}

type Model struct {
	svc  *journal.Service
	user models.User

	state         constants.SessionState
	previousState constants.SessionState
	keys          KeyMap
	help          help.Model

	st    journal.State
	quote models.Quote

	todayModel   today.Model
	historyModel history.Model

	form      *huh.Form
	entryForm *forms.EntryFormModel
	promptID  string // prompt being written
	editingID string // entry being edited

	dashboard       stats.Summary
	dashboardLoaded bool

	month       calendar.Month
	monthKey    string
	monthLoaded bool

	confirmDelete bool
	quitting      bool
	width         int
	height        int
}

// NewModel builds the TUI for user. A zero user runs the anonymous view:
// prompts and the quote only.
func NewModel(svc *journal.Service, user models.User) Model {
	t := svc.Today()
	return Model{
		svc:          svc,
		user:         user,
		state:        constants.StateJournal,
		keys:         DefaultKeyMap(),
		help:         help.New(),
		st:           journal.State{Today: t},
		todayModel:   today.New(),
		historyModel: history.New(),
		monthKey:     t[:len(constants.MonthFormat)],
	}
}

func (m Model) Init() tea.Cmd {
	return m.loadHome()
}

func (m Model) anonymous() bool {
	return m.user.ID == ""
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case constants.StateJournal:
		keys = append(keys, m.keys.Write)
	case constants.StateHistory:
		keys = append(keys, m.keys.Search, m.keys.Enter, m.keys.Edit)
	case constants.StateEntryDetail:
		keys = append(keys, m.keys.Back, m.keys.Edit, m.keys.Delete)
	case constants.StateCalendar:
		keys = append(keys, m.keys.PrevMonth, m.keys.NextMonth)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help, m.keys.Refresh}
	navigation := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Enter, m.keys.Back}

	var actions []key.Binding
	switch m.state {
	case constants.StateJournal:
		actions = []key.Binding{m.keys.Write}
	case constants.StateHistory:
		actions = []key.Binding{m.keys.Search, m.keys.Edit}
	case constants.StateEntryDetail:
		actions = []key.Binding{m.keys.Edit, m.keys.Delete}
	case constants.StateCalendar:
		actions = []key.Binding{m.keys.PrevMonth, m.keys.NextMonth}
	}

	return [][]key.Binding{global, navigation, actions}
}
