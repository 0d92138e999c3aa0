// Package streak derives consecutive journaling day counts.
package streak

import (
	"github.com/julianstephens/daybook/internal/models"
	"github.com/julianstephens/daybook/internal/utils"
)

// FromLatest builds the current streak from the user's most recent entry.
// The stored streak_count on that entry is the source of truth.
func FromLatest(entry models.JournalEntry, ok bool) models.StreakInfo {
	if !ok {
		return models.StreakInfo{}
	}
	return models.StreakInfo{
		CurrentStreak: entry.StreakCount,
		LastEntryDate: entry.EntryDate,
	}
}

// Next returns the streak count to store on a submission made on today.
//
//	last == today      -> unchanged
//	last == today - 1  -> +1
//	anything else      -> 1
//
// A malformed today or last date is treated as a gap.
func Next(info models.StreakInfo, today string) int {
	if !info.HasLastEntry() {
		return 1
	}
	if info.LastEntryDate == today {
		if info.CurrentStreak < 1 {
			return 1
		}
		return info.CurrentStreak
	}
	yesterday, err := utils.AddDays(today, -1)
	if err != nil {
		return 1
	}
	if info.LastEntryDate == yesterday {
		return info.CurrentStreak + 1
	}
	return 1
}

