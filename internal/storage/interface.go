package storage

import (
	"context"
	"strings"
	"time"

	"github.com/julianstephens/daybook/internal/migration"
	"github.com/julianstephens/daybook/internal/models"
)

// Provider is the row store behind every surface of the app
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings(ctx context.Context) (models.Settings, error)
	SaveSettings(ctx context.Context, settings models.Settings) error

	// Users
	CreateUser(ctx context.Context, user models.User) error
	GetUser(ctx context.Context, id string) (models.User, error)
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdatePasswordHash(ctx context.Context, userID, hash string, at time.Time) error

	// Password resets
	SaveResetToken(ctx context.Context, token models.ResetToken) error
	// ConsumeResetToken marks an unused, unexpired token as used and
	// returns it. Unknown, used or expired tokens return ErrNotFound.
	ConsumeResetToken(ctx context.Context, tokenHash string, now time.Time) (models.ResetToken, error)

	// Prompts
	AddPrompt(ctx context.Context, prompt models.Prompt) error
	GetPrompt(ctx context.Context, id string) (models.Prompt, error)
	GetPrompts(ctx context.Context, limit int) ([]models.Prompt, error)

	// Entries
	// UpsertEntry inserts the entry, or updates content and mood of the
	// existing row for (user, prompt, date). The stored row is returned
	// along with whether it was created. streak_count is kept on update.
	UpsertEntry(ctx context.Context, entry models.JournalEntry) (models.JournalEntry, bool, error)
	GetEntry(ctx context.Context, userID, id string) (models.HistoryEntry, error)
	GetEntryForDay(ctx context.Context, userID, promptID, day string) (models.JournalEntry, error)
	GetEntriesForDay(ctx context.Context, userID, day string) ([]models.JournalEntry, error)
	// GetLatestEntry returns the user's most recent entry, ok is false
	// when the user has none.
	GetLatestEntry(ctx context.Context, userID string) (entry models.JournalEntry, ok bool, err error)
	ListHistory(ctx context.Context, userID string, limit int) ([]models.HistoryEntry, error)
	SearchEntries(ctx context.Context, userID, query string, limit int) ([]models.HistoryEntry, error)
	UpdateEntry(ctx context.Context, userID, id, content string, mood models.Mood, at time.Time) (models.HistoryEntry, error)
	GetAllEntries(ctx context.Context, userID string) ([]models.JournalEntry, error)
	GetEntriesInRange(ctx context.Context, userID, startDay, endDay string) ([]models.JournalEntry, error)
	DeleteEntry(ctx context.Context, userID, id string) error

	// Utils
	GetConfigPath() string
}

// Migratable is implemented by stores backed by the embedded SQL migrations
type Migratable interface {
	Migrations() (*migration.Runner, error)
}

// EscapeLike escapes LIKE wildcards in a user query so it matches literally.
// The escape character is a backslash.
func EscapeLike(query string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(query)
}

// ClampLimit bounds a caller supplied list limit
func ClampLimit(limit, fallback, max int) int {
	if limit <= 0 {
		return fallback
	}
	if limit > max {
		return max
	}
	return limit
}
