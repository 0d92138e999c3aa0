package validation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/julianstephens/daybook/internal/models"
)

// ConflictType represents the type of integrity problem found in stored entries
type ConflictType string

const (
	ConflictDuplicateEntry ConflictType = "duplicate_entry"
	ConflictInvalidDate    ConflictType = "invalid_date"
	ConflictInvalidMood    ConflictType = "invalid_mood"
	ConflictEmptyContent   ConflictType = "empty_content"
	ConflictInvalidStreak  ConflictType = "invalid_streak"
)

// Conflict represents one detected problem
type Conflict struct {
	Type        ConflictType
	Description string
	Date        string   // YYYY-MM-DD format (if applicable)
	EntryIDs    []string // entries involved
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	report := "Conflicts detected:\n"
	for _, conflict := range vr.Conflicts {
		report += fmt.Sprintf("- %s\n", conflict.Description)
	}
	return report
}

// Validator checks a user's stored entries for integrity problems
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

// ValidateEntries checks one user's entries. Streak counts are write-time
// snapshots, so only impossible values (below 1) are reported, never gaps.
func (v *Validator) ValidateEntries(entries []models.JournalEntry) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	byKey := make(map[string][]string)
	for _, e := range entries {
		key := e.PromptID + "|" + e.EntryDate
		byKey[key] = append(byKey[key], e.ID)

		if err := Date(e.EntryDate); err != nil {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidDate,
				Description: fmt.Sprintf("Entry %s has invalid entry_date: %q", e.ID, e.EntryDate),
				EntryIDs:    []string{e.ID},
			})
		}
		if err := Mood(e.Mood); err != nil {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidMood,
				Description: fmt.Sprintf("Entry %s has mood %d outside 1-5", e.ID, e.Mood),
				Date:        e.EntryDate,
				EntryIDs:    []string{e.ID},
			})
		}
		if _, err := Content(e.Content); err != nil {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictEmptyContent,
				Description: fmt.Sprintf("Entry %s on %s has no content", e.ID, e.EntryDate),
				Date:        e.EntryDate,
				EntryIDs:    []string{e.ID},
			})
		}
		if e.StreakCount < 1 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidStreak,
				Description: fmt.Sprintf("Entry %s on %s has streak_count %d", e.ID, e.EntryDate, e.StreakCount),
				Date:        e.EntryDate,
				EntryIDs:    []string{e.ID},
			})
		}
	}

	keys := make([]string, 0, len(byKey))
	for k := range byKey {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		ids := byKey[k]
		if len(ids) < 2 {
			continue
		}
		promptID, day, _ := strings.Cut(k, "|")
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictDuplicateEntry,
			Description: fmt.Sprintf("Duplicate entries for prompt %q on %s (IDs: %v)", promptID, day, ids),
			Date:        day,
			EntryIDs:    ids,
		})
	}

	return result
}
