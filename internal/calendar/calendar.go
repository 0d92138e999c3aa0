// Package calendar lays a month of entries out as a week grid.
package calendar

import (
	"fmt"
	"time"

	"github.com/julianstephens/daybook/internal/constants"
	apperrors "github.com/julianstephens/daybook/internal/errors"
	"github.com/julianstephens/daybook/internal/models"
	"github.com/julianstephens/daybook/internal/stats"
)

// Day is one cell of the grid. Cells outside the month have InMonth false
// and carry no entry data.
type Day struct {
	Date        string      `json:"date"`
	Day         int         `json:"day"`
	InMonth     bool        `json:"in_month"`
	IsToday     bool        `json:"is_today"`
	EntryCount  int         `json:"entry_count"`
	AverageMood *float64    `json:"average_mood,omitempty"`
	Mood        models.Mood `json:"mood,omitempty"` // nearest option to AverageMood
}

// Month is a Sunday-first grid covering a whole calendar month
type Month struct {
	Year         int      `json:"year"`
	Month        int      `json:"month"`
	Title        string   `json:"title"`
	Weeks        [][7]Day `json:"weeks"`
	EntryDays    int      `json:"entry_days"`
	TotalEntries int      `json:"total_entries"`
}

// ParseMonth parses YYYY-MM. An empty value yields the month containing now.
func ParseMonth(value string, now time.Time) (int, time.Month, error) {
	if value == "" {
		return now.Year(), now.Month(), nil
	}
	t, err := time.Parse(constants.MonthFormat, value)
	if err != nil {
		return 0, 0, apperrors.Validation("invalid month %q, expected YYYY-MM", value)
	}
	return t.Year(), t.Month(), nil
}

// Bounds returns the first and last YYYY-MM-DD dates of a month
func Bounds(year int, month time.Month) (string, string) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return first.Format(constants.DateFormat), last.Format(constants.DateFormat)
}

// Build lays out the month. entries may span any range; only those inside
// the month are counted.
func Build(year int, month time.Month, entries []models.JournalEntry, today string) Month {
	byDay := make(map[string][]models.JournalEntry)
	for _, e := range entries {
		byDay[e.EntryDate] = append(byDay[e.EntryDate], e)
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	start := first.AddDate(0, 0, -int(first.Weekday()))

	m := Month{
		Year:  year,
		Month: int(month),
		Title: fmt.Sprintf("%s %d", month, year),
	}

	for cursor := start; ; {
		var week [7]Day
		for i := 0; i < 7; i++ {
			date := cursor.Format(constants.DateFormat)
			d := Day{
				Date:    date,
				Day:     cursor.Day(),
				InMonth: cursor.Month() == month,
				IsToday: date == today,
			}
			if d.InMonth {
				dayEntries := byDay[date]
				d.EntryCount = len(dayEntries)
				if avg, ok := stats.AverageMood(dayEntries); ok {
					d.AverageMood = &avg
					d.Mood = models.NearestMood(avg)
				}
				if d.EntryCount > 0 {
					m.EntryDays++
					m.TotalEntries += d.EntryCount
				}
			}
			week[i] = d
			cursor = cursor.AddDate(0, 0, 1)
		}
		m.Weeks = append(m.Weeks, week)
		if cursor.Month() != month {
			break
		}
	}
	return m
}
