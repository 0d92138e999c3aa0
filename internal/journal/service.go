// Package journal is the service layer shared by the CLI, TUI and HTTP
// server: prompt feed, submissions, edits, history, search and insights.
package journal

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/julianstephens/daybook/internal/calendar"
	"github.com/julianstephens/daybook/internal/constants"
	"github.com/julianstephens/daybook/internal/content"
	apperrors "github.com/julianstephens/daybook/internal/errors"
	"github.com/julianstephens/daybook/internal/logger"
	"github.com/julianstephens/daybook/internal/models"
	"github.com/julianstephens/daybook/internal/stats"
	"github.com/julianstephens/daybook/internal/storage"
	"github.com/julianstephens/daybook/internal/streak"
	"github.com/julianstephens/daybook/internal/utils"
	"github.com/julianstephens/daybook/internal/validation"
)

// Service runs journal operations against a row store. Dates are
// computed in the configured timezone.
type Service struct {
	store    storage.Provider
	settings models.Settings
	loc      *time.Location
	Now      func() time.Time
}

// NewService builds a service from the store's persisted settings
func NewService(ctx context.Context, store storage.Provider) (*Service, error) {
	settings, err := store.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	return NewServiceWithSettings(store, settings)
}

// NewServiceWithSettings builds a service with explicit settings
func NewServiceWithSettings(store storage.Provider, settings models.Settings) (*Service, error) {
	settings = settings.WithDefaults()
	loc, err := utils.LocationFromSettings(settings)
	if err != nil {
		return nil, err
	}
	return &Service{store: store, settings: settings, loc: loc, Now: time.Now}, nil
}

// Settings returns the effective settings
func (s *Service) Settings() models.Settings {
	return s.settings
}

// Today returns the current date in the configured timezone
func (s *Service) Today() string {
	return utils.Today(s.Now(), s.loc)
}

// Home is the journal page: the prompt feed plus, for a signed-in user,
// today's entries keyed by prompt id, recent history and the streak.
type Home struct {
	Today        string                         `json:"today"`
	Quote        models.Quote                   `json:"quote"`
	Prompts      []models.Prompt                `json:"prompts"`
	TodayEntries map[string]models.JournalEntry `json:"today_entries"`
	History      []models.HistoryEntry          `json:"history"`
	Streak       models.StreakInfo              `json:"streak"`
	Anonymous    bool                           `json:"anonymous"`
	HistoryLimit int                            `json:"-"`
}

// Home loads the journal page. An empty userID loads the anonymous view.
func (s *Service) Home(ctx context.Context, userID string) (Home, error) {
	today := s.Today()
	home := Home{
		Today:        today,
		Quote:        content.QuoteOfDay(s.Now().In(s.loc)),
		TodayEntries: map[string]models.JournalEntry{},
		History:      []models.HistoryEntry{},
		Anonymous:    userID == "",
		HistoryLimit: s.settings.HistoryLimit,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		prompts, err := s.store.GetPrompts(gctx, s.settings.PromptLimit)
		home.Prompts = prompts
		return err
	})

	if userID != "" {
		g.Go(func() error {
			entries, err := s.store.GetEntriesForDay(gctx, userID, today)
			if err != nil {
				return err
			}
			for _, e := range entries {
				home.TodayEntries[e.PromptID] = e
			}
			return nil
		})
		g.Go(func() error {
			history, err := s.store.ListHistory(gctx, userID, s.settings.HistoryLimit)
			if history != nil {
				home.History = history
			}
			return err
		})
		g.Go(func() error {
			latest, ok, err := s.store.GetLatestEntry(gctx, userID)
			home.Streak = streak.FromLatest(latest, ok)
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return Home{}, err
	}
	return home, nil
}

// Prompts returns the configured number of prompts
func (s *Service) Prompts(ctx context.Context) ([]models.Prompt, error) {
	return s.store.GetPrompts(ctx, s.settings.PromptLimit)
}

// Submission is one write against a prompt for today
type Submission struct {
	PromptID string      `json:"prompt_id"`
	Content  string      `json:"content"`
	Mood     models.Mood `json:"mood,omitempty"`
}

// SubmitResult is the stored entry, whether it was new, and the streak
// after the write.
type SubmitResult struct {
	Entry   models.JournalEntry `json:"entry"`
	Created bool                `json:"created"`
	Streak  models.StreakInfo   `json:"streak"`
}

// Submit creates or updates the user's entry for (prompt, today).
// Content is validated before anything touches the store.
func (s *Service) Submit(ctx context.Context, userID string, sub Submission) (SubmitResult, error) {
	if userID == "" {
		return SubmitResult{}, apperrors.Unauthorized(constants.BannerLoginRequired)
	}
	body, err := validation.Content(sub.Content)
	if err != nil {
		return SubmitResult{}, err
	}
	if err := validation.Mood(sub.Mood); err != nil {
		return SubmitResult{}, err
	}
	if strings.TrimSpace(sub.PromptID) == "" {
		return SubmitResult{}, apperrors.Validation("prompt is required")
	}

	if _, err := s.store.GetPrompt(ctx, sub.PromptID); err != nil {
		return SubmitResult{}, err
	}

	latest, ok, err := s.store.GetLatestEntry(ctx, userID)
	if err != nil {
		return SubmitResult{}, err
	}

	today := s.Today()
	now := s.Now().UTC()
	entry := models.JournalEntry{
		ID:          uuid.New().String(),
		UserID:      userID,
		PromptID:    sub.PromptID,
		Content:     body,
		EntryDate:   today,
		Mood:        sub.Mood,
		StreakCount: streak.Next(streak.FromLatest(latest, ok), today),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	stored, created, err := s.store.UpsertEntry(ctx, entry)
	if err != nil {
		return SubmitResult{}, err
	}
	logger.Info("Entry saved", "user_id", userID, "prompt_id", sub.PromptID, "date", today, "created", created, "streak", stored.StreakCount)

	return SubmitResult{
		Entry:   stored,
		Created: created,
		Streak:  streak.FromLatest(stored, true),
	}, nil
}

// UpdateEntry edits the content and mood of one of the user's entries
func (s *Service) UpdateEntry(ctx context.Context, userID, id, text string, mood models.Mood) (models.HistoryEntry, error) {
	if userID == "" {
		return models.HistoryEntry{}, apperrors.Unauthorized(constants.BannerLoginRequired)
	}
	body, err := validation.Content(text)
	if err != nil {
		return models.HistoryEntry{}, err
	}
	if err := validation.Mood(mood); err != nil {
		return models.HistoryEntry{}, err
	}

	updated, err := s.store.UpdateEntry(ctx, userID, id, body, mood, s.Now().UTC())
	if err != nil {
		return models.HistoryEntry{}, err
	}
	logger.Info("Entry updated", "user_id", userID, "entry_id", id)
	return updated, nil
}

// History returns the most recent entries. A non-positive limit uses the
// configured history limit.
func (s *Service) History(ctx context.Context, userID string, limit int) ([]models.HistoryEntry, error) {
	if userID == "" {
		return nil, apperrors.Unauthorized(constants.BannerHistoryRequired)
	}
	limit = storage.ClampLimit(limit, s.settings.HistoryLimit, constants.MaxListLimit)
	return s.store.ListHistory(ctx, userID, limit)
}

// Search matches query against entry content, case-insensitively, most
// recent first. A blank query returns the default recent history.
func (s *Service) Search(ctx context.Context, userID, query string) ([]models.HistoryEntry, error) {
	if userID == "" {
		return nil, apperrors.Unauthorized(constants.BannerHistoryRequired)
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return s.History(ctx, userID, s.settings.HistoryLimit)
	}
	return s.store.SearchEntries(ctx, userID, query, s.settings.SearchLimit)
}

// Entry returns one of the user's entries with its prompt
func (s *Service) Entry(ctx context.Context, userID, id string) (models.HistoryEntry, error) {
	if userID == "" {
		return models.HistoryEntry{}, apperrors.Unauthorized(constants.BannerHistoryRequired)
	}
	return s.store.GetEntry(ctx, userID, id)
}

// DeleteEntry removes one of the user's entries
func (s *Service) DeleteEntry(ctx context.Context, userID, id string) error {
	if userID == "" {
		return apperrors.Unauthorized(constants.BannerLoginRequired)
	}
	if err := s.store.DeleteEntry(ctx, userID, id); err != nil {
		return err
	}
	logger.Info("Entry deleted", "user_id", userID, "entry_id", id)
	return nil
}

// Streak returns the user's current streak
func (s *Service) Streak(ctx context.Context, userID string) (models.StreakInfo, error) {
	if userID == "" {
		return models.StreakInfo{}, apperrors.Unauthorized(constants.BannerHistoryRequired)
	}
	latest, ok, err := s.store.GetLatestEntry(ctx, userID)
	if err != nil {
		return models.StreakInfo{}, err
	}
	return streak.FromLatest(latest, ok), nil
}

// Dashboard aggregates all of the user's entries
func (s *Service) Dashboard(ctx context.Context, userID string) (stats.Summary, error) {
	if userID == "" {
		return stats.Summary{}, apperrors.Unauthorized(constants.BannerHistoryRequired)
	}
	entries, err := s.store.GetAllEntries(ctx, userID)
	if err != nil {
		return stats.Summary{}, err
	}
	return stats.Summarize(entries, s.Today()), nil
}

// Calendar builds the month grid. month is YYYY-MM; empty means the
// current month.
func (s *Service) Calendar(ctx context.Context, userID, month string) (calendar.Month, error) {
	if userID == "" {
		return calendar.Month{}, apperrors.Unauthorized(constants.BannerHistoryRequired)
	}
	year, m, err := calendar.ParseMonth(month, s.Now().In(s.loc))
	if err != nil {
		return calendar.Month{}, err
	}
	start, end := calendar.Bounds(year, m)
	entries, err := s.store.GetEntriesInRange(ctx, userID, start, end)
	if err != nil {
		return calendar.Month{}, err
	}
	return calendar.Build(year, m, entries, s.Today()), nil
}
