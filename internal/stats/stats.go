// Package stats turns a user's entries into dashboard figures and
// chart-ready series.
package stats

import (
	"math"
	"sort"
	"strings"

	"github.com/julianstephens/daybook/internal/constants"
	"github.com/julianstephens/daybook/internal/models"
	"github.com/julianstephens/daybook/internal/utils"
)

// Point is one day of the mood trend
type Point struct {
	Date  string  `json:"date"`
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// CountPoint is one day of the writing frequency series
type CountPoint struct {
	Date  string `json:"date"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Summary is everything the dashboard shows
type Summary struct {
	CurrentStreak int          `json:"current_streak"`
	TotalEntries  int          `json:"total_entries"`
	TotalWords    int          `json:"total_words"`
	AverageMood   *float64     `json:"average_mood"` // nil when no mood in the window
	MoodEmoji     string       `json:"mood_emoji,omitempty"`
	MoodTrend     []Point      `json:"mood_trend"`
	Frequency     []CountPoint `json:"frequency"`
}

// Round1 rounds to one decimal place
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Window keeps entries dated on or after today minus days.
// Dates are compared as YYYY-MM-DD strings.
func Window(entries []models.JournalEntry, today string, days int) []models.JournalEntry {
	start, err := utils.AddDays(today, -days)
	if err != nil {
		return nil
	}
	var out []models.JournalEntry
	for _, e := range entries {
		if e.EntryDate >= start {
			out = append(out, e)
		}
	}
	return out
}

// MoodTrend averages the recorded moods per day, ordered by date.
// Entries without a mood do not count; days without any mood are omitted.
func MoodTrend(entries []models.JournalEntry) []Point {
	sums := make(map[string]int)
	counts := make(map[string]int)
	for _, e := range entries {
		if !e.Mood.IsSet() {
			continue
		}
		sums[e.EntryDate] += int(e.Mood)
		counts[e.EntryDate]++
	}

	points := make([]Point, 0, len(counts))
	for _, day := range sortedKeys(counts) {
		points = append(points, Point{
			Date:  day,
			Label: utils.DateLabel(day),
			Value: Round1(float64(sums[day]) / float64(counts[day])),
		})
	}
	return points
}

// Frequency counts entries per day, ordered by date
func Frequency(entries []models.JournalEntry) []CountPoint {
	counts := make(map[string]int)
	for _, e := range entries {
		counts[e.EntryDate]++
	}

	points := make([]CountPoint, 0, len(counts))
	for _, day := range sortedKeys(counts) {
		points = append(points, CountPoint{
			Date:  day,
			Label: utils.DateLabel(day),
			Count: counts[day],
		})
	}
	return points
}

// AverageMood averages every recorded mood in entries.
// ok is false when none of them has a mood.
func AverageMood(entries []models.JournalEntry) (avg float64, ok bool) {
	sum, n := 0, 0
	for _, e := range entries {
		if !e.Mood.IsSet() {
			continue
		}
		sum += int(e.Mood)
		n++
	}
	if n == 0 {
		return 0, false
	}
	return Round1(float64(sum) / float64(n)), true
}

// TotalWords counts whitespace separated words across all entries
func TotalWords(entries []models.JournalEntry) int {
	total := 0
	for _, e := range entries {
		total += len(strings.Fields(e.Content))
	}
	return total
}

// Summarize builds the dashboard from all of a user's entries, sorted by
// entry date ascending.
func Summarize(entries []models.JournalEntry, today string) Summary {
	s := Summary{
		TotalEntries: len(entries),
		TotalWords:   TotalWords(entries),
	}
	if n := len(entries); n > 0 {
		s.CurrentStreak = entries[n-1].StreakCount
	}

	if avg, ok := AverageMood(Window(entries, today, constants.MoodAverageWindowDays)); ok {
		s.AverageMood = &avg
		s.MoodEmoji = models.NearestMood(avg).Emoji()
	}

	recent := Window(entries, today, constants.TrendWindowDays)
	s.MoodTrend = MoodTrend(recent)
	s.Frequency = Frequency(recent)
	return s
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
