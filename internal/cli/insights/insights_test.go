package insights

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	gokeyring "github.com/zalando/go-keyring"

	"github.com/julianstephens/daybook/internal/calendar"
	"github.com/julianstephens/daybook/internal/cli"
	"github.com/julianstephens/daybook/internal/keyring"
	"github.com/julianstephens/daybook/internal/models"
	"github.com/julianstephens/daybook/internal/stats"
	"github.com/julianstephens/daybook/internal/storage/sqlite"
)

func TestRender(t *testing.T) {
	avg := 4.0
	summary := stats.Summary{
		CurrentStreak: 3,
		TotalEntries:  1200,
		TotalWords:    45210,
		AverageMood:   &avg,
		MoodEmoji:     "🙂",
		MoodTrend:     []stats.Point{{Date: "2024-03-10", Label: "Mar 10", Value: 4}},
		Frequency: []stats.CountPoint{
			{Date: "2024-03-10", Label: "Mar 10", Count: 2},
			{Date: "2024-03-11", Label: "Mar 11", Count: 1},
		},
	}

	got := Render(summary)
	want := strings.Join([]string{
		"Insights",
		"  Current Streak:     3 days",
		"  Total Entries:      1,200",
		"  Avg Mood (7 days):  🙂 4.0",
		"  Words Written:      45,210",
		"",
		"Mood Trend (Last 30 Days)",
		"  Mar 10  ████████████████···· 4.0",
		"",
		"Writing Frequency (Last 30 Days)",
		"  Mar 10  ████████████████████ 2",
		"  Mar 11  ██████████·········· 1",
	}, "\n")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Render mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_Empty(t *testing.T) {
	got := Render(stats.Summary{})
	for _, want := range []string{
		"Avg Mood (7 days):  —",
		"No mood data yet",
		"No entries in the last 30 days yet.",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestRenderMonth(t *testing.T) {
	entries := []models.JournalEntry{
		{EntryDate: "2024-03-01", Mood: 5},
		{EntryDate: "2024-03-02"},
	}
	m := calendar.Build(2024, time.March, entries, "2024-03-04")
	got := RenderMonth(m)

	lines := strings.Split(got, "\n")
	if lines[0] != "March 2024" {
		t.Errorf("title = %q", lines[0])
	}
	// March 2024 starts on a Friday
	if want := "                          1😊  2• "; lines[2] != want {
		t.Errorf("first week = %q, want %q", lines[2], want)
	}
	if !strings.Contains(lines[3], " 4◦ ") {
		t.Errorf("today marker missing: %q", lines[3])
	}
	if !strings.HasSuffix(got, "2 entries on 2 day(s)") {
		t.Errorf("unexpected footer:\n%s", got)
	}
}

func TestStatsAndCalendarCmd(t *testing.T) {
	gokeyring.MockInit()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	out := &bytes.Buffer{}
	ctx := &cli.Context{Store: store, Out: out, Secret: []byte("test-signing-secret"), Timezone: "UTC"}
	bg := context.Background()

	svc, err := ctx.Auth()
	if err != nil {
		t.Fatalf("Auth failed: %v", err)
	}
	session, err := svc.Register(bg, "writer@example.com", "correct horse")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := keyring.SetSessionToken(session.Token); err != nil {
		t.Fatalf("SetSessionToken failed: %v", err)
	}

	today := time.Now().UTC().Format("2006-01-02")
	entry := models.JournalEntry{
		ID: "e1", UserID: session.User.ID, PromptID: "gratitude",
		Content: "one two three", EntryDate: today, Mood: 4, StreakCount: 1,
	}
	if _, _, err := store.UpsertEntry(bg, entry); err != nil {
		t.Fatalf("UpsertEntry failed: %v", err)
	}

	if err := (&StatsCmd{}).Run(ctx); err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if !strings.Contains(out.String(), "Words Written:      3") {
		t.Errorf("unexpected stats output:\n%s", out.String())
	}

	out.Reset()
	if err := (&CalendarCmd{}).Run(ctx); err != nil {
		t.Fatalf("calendar failed: %v", err)
	}
	if !strings.Contains(out.String(), "1 entries on 1 day(s)") {
		t.Errorf("unexpected calendar output:\n%s", out.String())
	}

	if err := (&CalendarCmd{Month: "2024-13"}).Run(ctx); err == nil {
		t.Error("expected an error for an invalid month")
	}
}
