package sqlite

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	apperrors "github.com/julianstephens/daybook/internal/errors"
	"github.com/julianstephens/daybook/internal/models"
	"github.com/julianstephens/daybook/internal/storage"
)

func setupTestStore(t *testing.T) (*Store, func()) {
	t.Helper()
	store := NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	cleanup := func() {
		store.Close()
	}
	return store, cleanup
}

var baseTime = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func createUser(t *testing.T, store *Store, id string) models.User {
	t.Helper()
	u := models.User{
		ID:           id,
		Email:        id + "@example.com",
		PasswordHash: "hash",
		CreatedAt:    baseTime,
		UpdatedAt:    baseTime,
	}
	if err := store.CreateUser(context.Background(), u); err != nil {
		t.Fatalf("CreateUser(%s) failed: %v", id, err)
	}
	return u
}

func newEntry(id, userID, promptID, day, content string, mood models.Mood, streak int) models.JournalEntry {
	return models.JournalEntry{
		ID:          id,
		UserID:      userID,
		PromptID:    promptID,
		Content:     content,
		EntryDate:   day,
		Mood:        mood,
		StreakCount: streak,
		CreatedAt:   baseTime,
		UpdatedAt:   baseTime,
	}
}

func mustUpsert(t *testing.T, store *Store, e models.JournalEntry) models.JournalEntry {
	t.Helper()
	stored, _, err := store.UpsertEntry(context.Background(), e)
	if err != nil {
		t.Fatalf("UpsertEntry(%s) failed: %v", e.ID, err)
	}
	return stored
}

func TestInit_SeedsDefaults(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	settings, err := store.GetSettings(ctx)
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if diff := cmp.Diff(models.DefaultSettings(), settings); diff != "" {
		t.Errorf("default settings mismatch (-want +got):\n%s", diff)
	}

	prompts, err := store.GetPrompts(ctx, 3)
	if err != nil {
		t.Fatalf("GetPrompts failed: %v", err)
	}
	if len(prompts) != 3 {
		t.Fatalf("expected 3 prompts, got %d", len(prompts))
	}
	if prompts[0].ID != storage.DefaultPrompts[0].ID {
		t.Errorf("first prompt = %q, want %q", prompts[0].ID, storage.DefaultPrompts[0].ID)
	}

	// Init is idempotent
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := store.Init(); err != nil {
		t.Fatalf("second Init failed: %v", err)
	}
	all, err := store.GetPrompts(ctx, 100)
	if err != nil {
		t.Fatalf("GetPrompts failed: %v", err)
	}
	if len(all) != len(storage.DefaultPrompts) {
		t.Errorf("expected %d prompts after re-init, got %d", len(storage.DefaultPrompts), len(all))
	}
}

func TestLoad_Uninitialized(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "missing.db"))
	err := store.Load()
	if err == nil || !strings.Contains(err.Error(), "daybook init") {
		t.Errorf("expected not initialized error, got %v", err)
	}
}

func TestSettings_SaveAndGet(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	want := models.Settings{Timezone: "UTC", PromptLimit: 5, HistoryLimit: 15, SearchLimit: 40}
	if err := store.SaveSettings(ctx, want); err != nil {
		t.Fatalf("SaveSettings failed: %v", err)
	}
	got, err := store.GetSettings(ctx)
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("settings mismatch (-want +got):\n%s", diff)
	}
}

func TestUsers(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	u := createUser(t, store, "alice")

	got, err := store.GetUserByEmail(ctx, "ALICE@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail failed: %v", err)
	}
	if got.ID != u.ID {
		t.Errorf("GetUserByEmail id = %q, want %q", got.ID, u.ID)
	}

	dup := u
	dup.ID = "alice-2"
	err = store.CreateUser(ctx, dup)
	if !errors.Is(err, apperrors.ErrConflict) {
		t.Errorf("duplicate email error = %v, want ErrConflict", err)
	}

	if _, err := store.GetUser(ctx, "nobody"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("GetUser(nobody) error = %v, want ErrNotFound", err)
	}

	later := baseTime.Add(time.Hour)
	if err := store.UpdatePasswordHash(ctx, u.ID, "new-hash", later); err != nil {
		t.Fatalf("UpdatePasswordHash failed: %v", err)
	}
	got, err = store.GetUser(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetUser failed: %v", err)
	}
	if got.PasswordHash != "new-hash" || !got.UpdatedAt.Equal(later) {
		t.Errorf("password update not stored: %+v", got)
	}

	createUser(t, store, "bob")
	users, err := store.ListUsers(ctx)
	if err != nil {
		t.Fatalf("ListUsers failed: %v", err)
	}
	if len(users) != 2 || users[0].ID != "alice" || users[1].ID != "bob" {
		t.Errorf("ListUsers = %+v", users)
	}
}

func TestResetTokens(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	u := createUser(t, store, "bob")
	token := models.ResetToken{TokenHash: "h1", UserID: u.ID, ExpiresAt: baseTime.Add(time.Hour)}
	if err := store.SaveResetToken(ctx, token); err != nil {
		t.Fatalf("SaveResetToken failed: %v", err)
	}

	got, err := store.ConsumeResetToken(ctx, "h1", baseTime)
	if err != nil {
		t.Fatalf("ConsumeResetToken failed: %v", err)
	}
	if got.UserID != u.ID || got.UsedAt == nil {
		t.Errorf("unexpected token: %+v", got)
	}

	if _, err := store.ConsumeResetToken(ctx, "h1", baseTime); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("second consume error = %v, want ErrNotFound", err)
	}

	expired := models.ResetToken{TokenHash: "h2", UserID: u.ID, ExpiresAt: baseTime.Add(-time.Minute)}
	if err := store.SaveResetToken(ctx, expired); err != nil {
		t.Fatalf("SaveResetToken failed: %v", err)
	}
	if _, err := store.ConsumeResetToken(ctx, "h2", baseTime); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("expired consume error = %v, want ErrNotFound", err)
	}
}

func TestUpsertEntry_SingleRowPerDay(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	createUser(t, store, "u1")

	first, created, err := store.UpsertEntry(ctx, newEntry("e1", "u1", "gratitude", "2026-03-10", "sunny walk", 4, 2))
	if err != nil {
		t.Fatalf("UpsertEntry failed: %v", err)
	}
	if !created {
		t.Error("first upsert should create")
	}
	if first.Mood != 4 || first.StreakCount != 2 {
		t.Errorf("unexpected stored entry: %+v", first)
	}

	again := newEntry("e2", "u1", "gratitude", "2026-03-10", "sunny walk, then tea", models.NoMood, 9)
	again.UpdatedAt = baseTime.Add(time.Hour)
	second, created, err := store.UpsertEntry(ctx, again)
	if err != nil {
		t.Fatalf("second UpsertEntry failed: %v", err)
	}
	if created {
		t.Error("second upsert should update the existing row")
	}
	if second.ID != "e1" {
		t.Errorf("updated row id = %q, want e1", second.ID)
	}
	if second.Content != "sunny walk, then tea" || second.Mood != models.NoMood {
		t.Errorf("content/mood not updated: %+v", second)
	}
	if second.StreakCount != 2 {
		t.Errorf("streak_count = %d, want snapshot 2 kept", second.StreakCount)
	}

	day, err := store.GetEntriesForDay(ctx, "u1", "2026-03-10")
	if err != nil {
		t.Fatalf("GetEntriesForDay failed: %v", err)
	}
	if len(day) != 1 {
		t.Errorf("expected 1 row for the day, got %d", len(day))
	}
}

func TestHistoryAndJoin(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	createUser(t, store, "u1")
	createUser(t, store, "u2")

	mustUpsert(t, store, newEntry("e1", "u1", "gratitude", "2026-03-08", "older", 3, 1))
	mustUpsert(t, store, newEntry("e2", "u1", "retired-prompt", "2026-03-09", "orphan", 0, 2))
	mustUpsert(t, store, newEntry("e3", "u1", "intention", "2026-03-10", "newest", 5, 3))
	mustUpsert(t, store, newEntry("x1", "u2", "gratitude", "2026-03-10", "someone else", 1, 1))

	history, err := store.ListHistory(ctx, "u1", 10)
	if err != nil {
		t.Fatalf("ListHistory failed: %v", err)
	}
	var ids []string
	for _, h := range history {
		ids = append(ids, h.ID)
	}
	if diff := cmp.Diff([]string{"e3", "e2", "e1"}, ids); diff != "" {
		t.Errorf("history order mismatch (-want +got):\n%s", diff)
	}

	if _, ok := history[1].Prompt.Get(); ok {
		t.Error("entry with missing prompt should join to no prompt")
	}
	p, ok := history[0].Prompt.Get()
	if !ok || p.ID != "intention" {
		t.Errorf("expected intention prompt, got %+v (ok=%v)", p, ok)
	}

	limited, err := store.ListHistory(ctx, "u1", 2)
	if err != nil {
		t.Fatalf("ListHistory failed: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("expected 2 entries with limit, got %d", len(limited))
	}

	latest, ok, err := store.GetLatestEntry(ctx, "u1")
	if err != nil || !ok {
		t.Fatalf("GetLatestEntry failed: ok=%v err=%v", ok, err)
	}
	if latest.ID != "e3" || latest.StreakCount != 3 {
		t.Errorf("latest = %+v", latest)
	}

	_, ok, err = store.GetLatestEntry(ctx, "nobody")
	if err != nil || ok {
		t.Errorf("GetLatestEntry(nobody) ok=%v err=%v, want false nil", ok, err)
	}

	if _, err := store.GetEntry(ctx, "u2", "e1"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("GetEntry for another user error = %v, want ErrNotFound", err)
	}
}

func TestSearchEntries(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	createUser(t, store, "u1")
	createUser(t, store, "u2")

	mustUpsert(t, store, newEntry("e1", "u1", "gratitude", "2026-03-01", "Felt CALM by the lake", 4, 1))
	mustUpsert(t, store, newEntry("e2", "u1", "gratitude", "2026-03-02", "busy but calm", 3, 2))
	mustUpsert(t, store, newEntry("e3", "u1", "gratitude", "2026-03-03", "progress: 100% done", 5, 3))
	mustUpsert(t, store, newEntry("e4", "u1", "gratitude", "2026-03-04", "progress: 1000 steps", 5, 4))
	mustUpsert(t, store, newEntry("e5", "u1", "gratitude", "2026-03-05", "Ärger über ÉMOTION", 2, 5))
	mustUpsert(t, store, newEntry("x1", "u2", "gratitude", "2026-03-04", "calm too", 2, 1))

	tests := []struct {
		name    string
		query   string
		limit   int
		wantIDs []string
	}{
		{name: "case insensitive, most recent first", query: "calm", limit: 20, wantIDs: []string{"e2", "e1"}},
		{name: "upper case query", query: "LAKE", limit: 20, wantIDs: []string{"e1"}},
		{name: "percent is literal", query: "100%", limit: 20, wantIDs: []string{"e3"}},
		{name: "underscore is literal", query: "_", limit: 20, wantIDs: nil},
		{name: "limit applies", query: "progress", limit: 1, wantIDs: []string{"e4"}},
		{name: "accented lower case query", query: "ärger", limit: 20, wantIDs: []string{"e5"}},
		{name: "accented query against upper case content", query: "émotion", limit: 20, wantIDs: []string{"e5"}},
		{name: "accented upper case query", query: "ÜBER", limit: 20, wantIDs: []string{"e5"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := store.SearchEntries(ctx, "u1", tt.query, tt.limit)
			if err != nil {
				t.Fatalf("SearchEntries failed: %v", err)
			}
			var ids []string
			for _, r := range results {
				ids = append(ids, r.ID)
			}
			if diff := cmp.Diff(tt.wantIDs, ids); diff != "" {
				t.Errorf("results mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestUpdateAndDeleteEntry(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	createUser(t, store, "u1")
	createUser(t, store, "u2")

	mustUpsert(t, store, newEntry("e1", "u1", "gratitude", "2026-03-01", "draft", 2, 4))

	updated, err := store.UpdateEntry(ctx, "u1", "e1", "final", 5, baseTime.Add(time.Hour))
	if err != nil {
		t.Fatalf("UpdateEntry failed: %v", err)
	}
	if updated.Content != "final" || updated.Mood != 5 || updated.StreakCount != 4 {
		t.Errorf("unexpected update result: %+v", updated)
	}
	if updated.Prompt.Title() == "" {
		t.Error("updated entry should carry its prompt")
	}

	if _, err := store.UpdateEntry(ctx, "u2", "e1", "hijack", 1, baseTime); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("update by another user error = %v, want ErrNotFound", err)
	}

	if err := store.DeleteEntry(ctx, "u1", "e1"); err != nil {
		t.Fatalf("DeleteEntry failed: %v", err)
	}
	if err := store.DeleteEntry(ctx, "u1", "e1"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("second delete error = %v, want ErrNotFound", err)
	}
}

func TestEntriesInRange(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	createUser(t, store, "u1")

	for i, day := range []string{"2026-02-27", "2026-03-01", "2026-03-15", "2026-03-31", "2026-04-01"} {
		mustUpsert(t, store, newEntry(fmt.Sprintf("e%d", i), "u1", "gratitude", day, "x", 3, 1))
	}

	march, err := store.GetEntriesInRange(ctx, "u1", "2026-03-01", "2026-03-31")
	if err != nil {
		t.Fatalf("GetEntriesInRange failed: %v", err)
	}
	var days []string
	for _, e := range march {
		days = append(days, e.EntryDate)
	}
	if diff := cmp.Diff([]string{"2026-03-01", "2026-03-15", "2026-03-31"}, days); diff != "" {
		t.Errorf("range mismatch (-want +got):\n%s", diff)
	}

	all, err := store.GetAllEntries(ctx, "u1")
	if err != nil {
		t.Fatalf("GetAllEntries failed: %v", err)
	}
	if len(all) != 5 || all[0].EntryDate != "2026-02-27" {
		t.Errorf("GetAllEntries should be ascending, got %d entries starting %q", len(all), all[0].EntryDate)
	}
}
