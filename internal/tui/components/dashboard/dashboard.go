// Package dashboard renders the insights tab.
package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/julianstephens/daybook/internal/stats"
)

const barWidth = 24

var (
	cardStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#BAA68E")).
			Padding(0, 1).
			Width(20)

	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	valueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#5E503F"))

	headingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#5E503F")).
			MarginTop(1)

	moodBarStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#834D4D"))
	freqBarStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#5E503F"))
)

// View renders the stat cards and both 30-day series
func View(s stats.Summary, loaded bool) string {
	if !loaded {
		return labelStyle.Render("Loading insights...")
	}

	avg := "—"
	if s.AverageMood != nil {
		avg = fmt.Sprintf("%s %.1f", s.MoodEmoji, *s.AverageMood)
	}
	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		card("Current Streak", fmt.Sprintf("%d days", s.CurrentStreak)),
		card("Total Entries", humanize.Comma(int64(s.TotalEntries))),
		card("Avg Mood (7 days)", avg),
		card("Words Written", humanize.Comma(int64(s.TotalWords))),
	)

	var b strings.Builder
	b.WriteString(cards)
	b.WriteString("\n")

	b.WriteString(headingStyle.Render("Mood Trend (Last 30 Days)"))
	b.WriteString("\n")
	if len(s.MoodTrend) == 0 {
		b.WriteString(labelStyle.Render("No mood data yet, start selecting your mood when you journal!"))
		b.WriteString("\n")
	}
	for _, p := range s.MoodTrend {
		fmt.Fprintf(&b, "%-7s %s %.1f\n", p.Label, moodBarStyle.Render(bar(p.Value, 5)), p.Value)
	}

	b.WriteString(headingStyle.Render("Writing Frequency (Last 30 Days)"))
	b.WriteString("\n")
	if len(s.Frequency) == 0 {
		b.WriteString(labelStyle.Render("No entries in the last 30 days yet."))
		b.WriteString("\n")
	}
	peak := 1
	for _, p := range s.Frequency {
		peak = max(peak, p.Count)
	}
	for _, p := range s.Frequency {
		fmt.Fprintf(&b, "%-7s %s %d\n", p.Label, freqBarStyle.Render(bar(float64(p.Count), float64(peak))), p.Count)
	}
	return strings.TrimRight(b.String(), "\n")
}

func card(label, value string) string {
	return cardStyle.Render(labelStyle.Render(label) + "\n" + valueStyle.Render(value))
}

func bar(v, peak float64) string {
	if peak <= 0 || v <= 0 {
		return ""
	}
	n := min(max(int(v/peak*barWidth), 1), barWidth)
	return strings.Repeat("█", n)
}
