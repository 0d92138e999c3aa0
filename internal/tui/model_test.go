package tui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/daybook/internal/constants"
	"github.com/julianstephens/daybook/internal/journal"
	"github.com/julianstephens/daybook/internal/models"
	"github.com/julianstephens/daybook/internal/storage/sqlite"
)

func setupModel(t *testing.T, user models.User) Model {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "tui.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	if user.ID != "" {
		if err := store.CreateUser(context.Background(), user); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}
	}

	svc, err := journal.NewServiceWithSettings(store, models.Settings{Timezone: "UTC"})
	if err != nil {
		t.Fatalf("NewServiceWithSettings failed: %v", err)
	}
	svc.Now = func() time.Time { return time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC) }

	m := NewModel(svc, user)
	m = send(t, m, m.Init()())
	return m
}

func writer() models.User {
	return models.User{ID: "writer", Email: "writer@example.com", PasswordHash: "x"}
}

// send feeds msg to the model and returns the updated model
func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return out
}

func sendCmd(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func saveEntry(t *testing.T, m Model, promptID, text string) Model {
	t.Helper()
	msg := m.submit(journal.Submission{PromptID: promptID, Content: text, Mood: models.Mood(4)})()
	if _, ok := msg.(entrySavedMsg); !ok {
		t.Fatalf("submit returned %T, want entrySavedMsg", msg)
	}
	return send(t, m, msg)
}

func TestModel_InitLoadsHome(t *testing.T) {
	m := setupModel(t, writer())

	if m.st.Today != "2026-03-10" {
		t.Errorf("Today = %q, want 2026-03-10", m.st.Today)
	}
	if len(m.st.Prompts) != constants.DefaultPromptLimit {
		t.Errorf("expected %d prompts, got %d", constants.DefaultPromptLimit, len(m.st.Prompts))
	}
	if m.quote.Text == "" {
		t.Error("expected a quote of the day")
	}
	if m.monthKey != "2026-03" {
		t.Errorf("monthKey = %q, want 2026-03", m.monthKey)
	}
}

func TestModel_EntrySavedShowsBannerAndSchedulesExpiry(t *testing.T) {
	m := setupModel(t, writer())

	msg := m.submit(journal.Submission{PromptID: m.st.Prompts[0].ID, Content: "A calm morning"})()
	m, cmd := sendCmd(t, m, msg)

	if cmd == nil {
		t.Fatal("expected a banner expiry command")
	}
	if m.st.Banner.Message != constants.BannerEntrySaved {
		t.Errorf("banner = %q, want %q", m.st.Banner.Message, constants.BannerEntrySaved)
	}
	if _, ok := m.st.TodayEntries[m.st.Prompts[0].ID]; !ok {
		t.Error("expected today's entry for the first prompt")
	}
	if m.st.Streak.CurrentStreak != 1 {
		t.Errorf("streak = %d, want 1", m.st.Streak.CurrentStreak)
	}
	if !strings.Contains(m.View(), constants.BannerEntrySaved) {
		t.Error("expected banner in view")
	}
}

func TestModel_BannerExpiry(t *testing.T) {
	m := setupModel(t, writer())
	m = saveEntry(t, m, "gratitude", "first")
	first := m.st.Banner.Seq
	m = saveEntry(t, m, "gratitude", "second")

	m = send(t, m, bannerExpiredMsg{seq: first})
	if !m.st.Banner.Visible() {
		t.Fatal("stale expiry should not clear the newer banner")
	}

	m = send(t, m, bannerExpiredMsg{seq: m.st.Banner.Seq})
	if m.st.Banner.Visible() {
		t.Error("expected banner to be cleared")
	}
}

func TestModel_RequestFailedShowsErrorBanner(t *testing.T) {
	m := setupModel(t, writer())

	msg := m.submit(journal.Submission{PromptID: "gratitude", Content: "   "})()
	m = send(t, m, msg)

	if m.st.Banner.Kind != constants.BannerError {
		t.Errorf("banner kind = %q, want error", m.st.Banner.Kind)
	}
	if m.st.Banner.Message != constants.BannerEmptyContent {
		t.Errorf("banner = %q, want %q", m.st.Banner.Message, constants.BannerEmptyContent)
	}
}

func TestModel_TabNavigation(t *testing.T) {
	m := setupModel(t, writer())

	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.state != constants.StateHistory {
		t.Errorf("after tab state = %v, want history", m.state)
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	m = send(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.state != constants.StateResources {
		t.Errorf("after wrapping state = %v, want resources", m.state)
	}
	if !strings.Contains(m.View(), "Resources") {
		t.Error("expected resources tab title in view")
	}
}

func TestModel_DashboardLoadsOnTabSwitch(t *testing.T) {
	m := setupModel(t, writer())
	m = saveEntry(t, m, "gratitude", "one two three")

	m, cmd := sendCmd(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m, cmd = sendCmd(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.state != constants.StateDashboard {
		t.Fatalf("state = %v, want dashboard", m.state)
	}
	if cmd == nil {
		t.Fatal("expected dashboard load command")
	}
	m = send(t, m, cmd())

	if !m.dashboardLoaded {
		t.Fatal("expected dashboard to be loaded")
	}
	if m.dashboard.TotalEntries != 1 || m.dashboard.TotalWords != 3 {
		t.Errorf("dashboard = %+v, want 1 entry and 3 words", m.dashboard)
	}
	if !strings.Contains(m.View(), "Words Written") {
		t.Error("expected stat cards in view")
	}
}

func TestModel_SearchDebounceDropsStaleTicks(t *testing.T) {
	m := setupModel(t, writer())
	m = saveEntry(t, m, "gratitude", "Walked by the river")
	m = saveEntry(t, m, "intention", "Call my sister")

	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = send(t, m, runes("/"))
	if !m.historyModel.Focused() {
		t.Fatal("expected search box to be focused")
	}

	m, cmd := sendCmd(t, m, runes("r"))
	if cmd == nil {
		t.Fatal("expected debounce command")
	}
	m = send(t, m, runes("i"))
	if m.st.SearchSeq != 2 || !m.st.Searching {
		t.Fatalf("SearchSeq = %d searching = %v, want 2 and true", m.st.SearchSeq, m.st.Searching)
	}

	_, cmd = sendCmd(t, m, searchTickMsg{seq: 1, query: "r"})
	if cmd != nil {
		t.Error("stale tick should not start a search")
	}

	m, cmd = sendCmd(t, m, searchTickMsg{seq: 2, query: "ri"})
	if cmd == nil {
		t.Fatal("expected search command for the current generation")
	}
	m = send(t, m, cmd())

	if m.st.Searching {
		t.Error("expected searching to finish")
	}
	results := m.st.Entries()
	if len(results) != 1 || results[0].PromptID != "gratitude" {
		t.Errorf("unexpected search results: %+v", results)
	}
}

func TestModel_StaleSearchResultIgnored(t *testing.T) {
	m := setupModel(t, writer())
	m.apply(journal.SearchQueryChanged{Query: "a"})
	m.apply(journal.SearchQueryChanged{Query: "ab"})

	m = send(t, m, searchResultMsg{seq: 1, results: []models.HistoryEntry{{}}})
	if !m.st.Searching || len(m.st.SearchResults) != 0 {
		t.Error("results for an old query must be dropped")
	}
}

func TestModel_DetailAndDelete(t *testing.T) {
	m := setupModel(t, writer())
	m = saveEntry(t, m, "gratitude", "Sunlight")

	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.state != constants.StateEntryDetail || !m.st.DetailOpen {
		t.Fatalf("state = %v, want entry detail", m.state)
	}
	if !strings.Contains(m.View(), "Sunlight") {
		t.Error("expected entry content in detail view")
	}

	m = send(t, m, runes("d"))
	if !m.confirmDelete {
		t.Fatal("expected delete confirmation")
	}
	m = send(t, m, runes("n"))
	if m.confirmDelete || m.state != constants.StateEntryDetail {
		t.Fatal("declining should keep the detail open")
	}

	m = send(t, m, runes("d"))
	m, cmd := sendCmd(t, m, runes("y"))
	if cmd == nil {
		t.Fatal("expected delete command")
	}
	m = send(t, m, cmd())

	if m.state != constants.StateHistory {
		t.Errorf("state = %v, want history", m.state)
	}
	if len(m.st.History) != 0 {
		t.Errorf("expected empty history, got %d", len(m.st.History))
	}
	if m.st.Banner.Message != constants.BannerEntryDeleted {
		t.Errorf("banner = %q, want %q", m.st.Banner.Message, constants.BannerEntryDeleted)
	}
}

func TestModel_EntryUpdatedRefreshesDetail(t *testing.T) {
	m := setupModel(t, writer())
	m = saveEntry(t, m, "gratitude", "before")
	id := m.st.History[0].ID

	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	m = send(t, m, m.updateEntry(id, "after", models.Mood(2))())
	if m.st.Detail.Content != "after" || m.st.History[0].Content != "after" {
		t.Errorf("expected edited content everywhere, got detail %q history %q", m.st.Detail.Content, m.st.History[0].Content)
	}
	if m.st.Banner.Message != constants.BannerEntryUpdated {
		t.Errorf("banner = %q, want %q", m.st.Banner.Message, constants.BannerEntryUpdated)
	}
}

func TestModel_EscClosesForm(t *testing.T) {
	m := setupModel(t, writer())

	m = send(t, m, runes("w"))
	if m.state != constants.StateWriting || m.form == nil {
		t.Fatalf("state = %v, want writing", m.state)
	}
	if m.promptID != m.st.Prompts[0].ID {
		t.Errorf("promptID = %q, want %q", m.promptID, m.st.Prompts[0].ID)
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.state != constants.StateJournal || m.form != nil {
		t.Errorf("esc should return to the journal, state = %v", m.state)
	}
}

func TestModel_WriteFormPrefillsTodaysEntry(t *testing.T) {
	m := setupModel(t, writer())
	m = saveEntry(t, m, m.st.Prompts[1].ID, "already written")

	m = send(t, m, runes("j"))
	m = send(t, m, runes("w"))
	if m.entryForm == nil || m.entryForm.Content != "already written" {
		t.Errorf("expected form prefilled with today's entry, got %+v", m.entryForm)
	}
	if m.entryForm.Mood != models.Mood(4) {
		t.Errorf("mood = %v, want 4", m.entryForm.Mood)
	}
}

func TestModel_CalendarNavigation(t *testing.T) {
	m := setupModel(t, writer())
	m.state = constants.StateCalendar

	m, cmd := sendCmd(t, m, runes("["))
	if m.monthKey != "2026-02" {
		t.Errorf("monthKey = %q, want 2026-02", m.monthKey)
	}
	if cmd == nil {
		t.Fatal("expected calendar load command")
	}
	loaded := cmd()

	m = send(t, m, runes("]"))
	m = send(t, m, runes("]"))
	if m.monthKey != "2026-04" {
		t.Errorf("monthKey = %q, want 2026-04", m.monthKey)
	}

	m = send(t, m, loaded)
	if m.monthLoaded {
		t.Error("a load for another month must be ignored")
	}
}

func TestModel_Anonymous(t *testing.T) {
	m := setupModel(t, models.User{})

	if len(m.st.Prompts) == 0 {
		t.Fatal("anonymous view should still show prompts")
	}
	if !strings.Contains(m.View(), "Sign in") {
		t.Error("expected sign-in hint on the journal tab")
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if !strings.Contains(m.View(), constants.BannerHistoryRequired) {
		t.Error("expected login message on the history tab")
	}

	m, cmd := sendCmd(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if cmd != nil {
		t.Error("anonymous dashboard should not load data")
	}
}

func TestModel_Quit(t *testing.T) {
	m := setupModel(t, writer())
	m, cmd := sendCmd(t, m, runes("q"))
	if !m.quitting || cmd == nil {
		t.Error("expected quit")
	}
	if m.View() != "" {
		t.Error("expected empty view after quitting")
	}
}
