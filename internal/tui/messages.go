package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/daybook/internal/calendar"
	"github.com/julianstephens/daybook/internal/constants"
	"github.com/julianstephens/daybook/internal/journal"
	"github.com/julianstephens/daybook/internal/logger"
	"github.com/julianstephens/daybook/internal/models"
	"github.com/julianstephens/daybook/internal/stats"
)

const requestTimeout = 10 * time.Second

type (
	homeLoadedMsg   struct{ home journal.Home }
	entrySavedMsg   struct{ result journal.SubmitResult }
	entryUpdatedMsg struct{ entry models.HistoryEntry }
	entryDeletedMsg struct{ id string }

	// searchTickMsg fires once the debounce for generation seq elapses
	searchTickMsg struct {
		seq   int
		query string
	}
	searchResultMsg struct {
		seq     int
		results []models.HistoryEntry
	}

	dashboardLoadedMsg struct{ summary stats.Summary }
	calendarLoadedMsg  struct {
		key   string
		month calendar.Month
	}

	requestFailedMsg struct {
		err      error
		fallback string
	}
	bannerExpiredMsg struct{ seq int }
)

// apply reduces ev into the journal state and schedules expiry for any
// banner it raised
func (m *Model) apply(ev journal.Event) tea.Cmd {
	before := m.st.Banner.Seq
	m.st = journal.Reduce(m.st, ev)
	if m.st.Banner.Seq == before || !m.st.Banner.Visible() {
		return nil
	}
	seq := m.st.Banner.Seq
	return tea.Tick(constants.BannerTimeout, func(time.Time) tea.Msg {
		return bannerExpiredMsg{seq: seq}
	})
}

func failed(err error, fallback string) tea.Msg {
	logger.Debug("tui request failed", "fallback", fallback, "error", err)
	return requestFailedMsg{err: err, fallback: fallback}
}

func (m Model) loadHome() tea.Cmd {
	svc, userID := m.svc, m.user.ID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		home, err := svc.Home(ctx, userID)
		if err != nil {
			return failed(err, constants.BannerFetchFailed)
		}
		return homeLoadedMsg{home: home}
	}
}

func (m Model) submit(sub journal.Submission) tea.Cmd {
	svc, userID := m.svc, m.user.ID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		result, err := svc.Submit(ctx, userID, sub)
		if err != nil {
			return failed(err, constants.BannerSubmitFailed)
		}
		return entrySavedMsg{result: result}
	}
}

func (m Model) updateEntry(id, content string, mood models.Mood) tea.Cmd {
	svc, userID := m.svc, m.user.ID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		entry, err := svc.UpdateEntry(ctx, userID, id, content, mood)
		if err != nil {
			return failed(err, constants.BannerUpdateFailed)
		}
		return entryUpdatedMsg{entry: entry}
	}
}

func (m Model) deleteEntry(id string) tea.Cmd {
	svc, userID := m.svc, m.user.ID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		if err := svc.DeleteEntry(ctx, userID, id); err != nil {
			return failed(err, constants.BannerDeleteFailed)
		}
		return entryDeletedMsg{id: id}
	}
}

// debounceSearch waits before searching; a newer keystroke bumps the
// generation and the stale tick is dropped
func debounceSearch(seq int, query string) tea.Cmd {
	return tea.Tick(constants.SearchDebounce, func(time.Time) tea.Msg {
		return searchTickMsg{seq: seq, query: query}
	})
}

func (m Model) search(seq int, query string) tea.Cmd {
	svc, userID := m.svc, m.user.ID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		results, err := svc.Search(ctx, userID, query)
		if err != nil {
			return failed(err, constants.BannerSearchFailed)
		}
		return searchResultMsg{seq: seq, results: results}
	}
}

func (m Model) loadDashboard() tea.Cmd {
	svc, userID := m.svc, m.user.ID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		summary, err := svc.Dashboard(ctx, userID)
		if err != nil {
			return failed(err, constants.BannerFetchFailed)
		}
		return dashboardLoadedMsg{summary: summary}
	}
}

func (m Model) loadCalendar() tea.Cmd {
	svc, userID, key := m.svc, m.user.ID, m.monthKey
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		month, err := svc.Calendar(ctx, userID, key)
		if err != nil {
			return failed(err, constants.BannerFetchFailed)
		}
		return calendarLoadedMsg{key: key, month: month}
	}
}
