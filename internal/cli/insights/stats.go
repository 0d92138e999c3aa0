// Package insights prints the dashboard and calendar views.
package insights

import (
	"context"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/julianstephens/daybook/internal/cli"
	"github.com/julianstephens/daybook/internal/constants"
	"github.com/julianstephens/daybook/internal/stats"
)

const barWidth = 20

type StatsCmd struct{}

func (c *StatsCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	user, svc, err := ctx.Session(bg)
	if err != nil {
		return err
	}
	summary, err := svc.Dashboard(bg, user.ID)
	if err != nil {
		return cli.UserFacing(err, constants.BannerFetchFailed)
	}
	ctx.Println(Render(summary))
	return nil
}

// Render formats a dashboard summary as text
func Render(s stats.Summary) string {
	var b strings.Builder
	b.WriteString("Insights\n")
	fmt.Fprintf(&b, "  Current Streak:     %d days\n", s.CurrentStreak)
	fmt.Fprintf(&b, "  Total Entries:      %s\n", humanize.Comma(int64(s.TotalEntries)))
	fmt.Fprintf(&b, "  Avg Mood (7 days):  %s\n", averageMood(s))
	fmt.Fprintf(&b, "  Words Written:      %s\n", humanize.Comma(int64(s.TotalWords)))

	b.WriteString("\nMood Trend (Last 30 Days)\n")
	if len(s.MoodTrend) == 0 {
		b.WriteString("  No mood data yet, start selecting your mood when you journal!\n")
	}
	for _, p := range s.MoodTrend {
		fmt.Fprintf(&b, "  %-7s %s %.1f\n", p.Label, bar(p.Value, 5), p.Value)
	}

	b.WriteString("\nWriting Frequency (Last 30 Days)\n")
	if len(s.Frequency) == 0 {
		b.WriteString("  No entries in the last 30 days yet.\n")
	}
	peak := 1
	for _, p := range s.Frequency {
		if p.Count > peak {
			peak = p.Count
		}
	}
	for _, p := range s.Frequency {
		fmt.Fprintf(&b, "  %-7s %s %d\n", p.Label, bar(float64(p.Count), float64(peak)), p.Count)
	}
	return strings.TrimRight(b.String(), "\n")
}

func averageMood(s stats.Summary) string {
	if s.AverageMood == nil {
		return "—"
	}
	return fmt.Sprintf("%s %.1f", s.MoodEmoji, *s.AverageMood)
}

func bar(v, max float64) string {
	if max <= 0 || v <= 0 {
		return strings.Repeat("·", barWidth)
	}
	n := int(v / max * barWidth)
	if n < 1 {
		n = 1
	}
	if n > barWidth {
		n = barWidth
	}
	return strings.Repeat("█", n) + strings.Repeat("·", barWidth-n)
}
