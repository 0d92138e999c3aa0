package models

import "time"

// JournalEntry is one submission for a given prompt and day.
// At most one exists per (UserID, PromptID, EntryDate).
type JournalEntry struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	PromptID    string    `json:"prompt_id"`
	Content     string    `json:"content"`
	EntryDate   string    `json:"entry_date"` // YYYY-MM-DD format
	Mood        Mood      `json:"mood,omitempty"`
	StreakCount int       `json:"streak_count"` // snapshot at write time
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// HistoryEntry is an entry joined with its prompt
type HistoryEntry struct {
	JournalEntry
	Prompt PromptRef `json:"prompt"`
}

// WithContent returns a copy of the entry with new content and mood
func (e HistoryEntry) WithContent(content string, mood Mood) HistoryEntry {
	e.Content = content
	e.Mood = mood
	return e
}

// StreakInfo is derived from the most recent entry, never stored on its own
type StreakInfo struct {
	CurrentStreak int    `json:"current_streak"`
	LastEntryDate string `json:"last_entry_date,omitempty"` // empty when there is no entry
}

// HasLastEntry reports whether the user has journaled before
func (s StreakInfo) HasLastEntry() bool {
	return s.LastEntryDate != ""
}
