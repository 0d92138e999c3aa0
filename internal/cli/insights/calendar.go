package insights

import (
	"context"
	"fmt"
	"strings"

	"github.com/julianstephens/daybook/internal/calendar"
	"github.com/julianstephens/daybook/internal/cli"
	"github.com/julianstephens/daybook/internal/constants"
)

type CalendarCmd struct {
	Month string `arg:"" optional:"" help:"Month to show as YYYY-MM (defaults to the current month)."`
}

func (c *CalendarCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	user, svc, err := ctx.Session(bg)
	if err != nil {
		return err
	}
	month, err := svc.Calendar(bg, user.ID, c.Month)
	if err != nil {
		return cli.UserFacing(err, constants.BannerFetchFailed)
	}
	ctx.Println(RenderMonth(month))
	return nil
}

// RenderMonth draws a Sunday-first grid. Days with entries show the mood
// emoji, or a dot when no mood was recorded. An empty today shows a ring.
func RenderMonth(m calendar.Month) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", m.Title)
	b.WriteString(" Sun  Mon  Tue  Wed  Thu  Fri  Sat\n")
	for _, week := range m.Weeks {
		for i, d := range week {
			if i > 0 {
				b.WriteString(" ")
			}
			b.WriteString(cell(d))
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "\n%d entries on %d day(s)", m.TotalEntries, m.EntryDays)
	return b.String()
}

func cell(d calendar.Day) string {
	if !d.InMonth {
		return "    "
	}
	marker := "  "
	switch {
	case d.EntryCount > 0 && d.Mood.IsSet():
		marker = d.Mood.Emoji()
	case d.EntryCount > 0:
		marker = "• "
	}
	if d.IsToday && d.EntryCount == 0 {
		marker = "◦ "
	}
	return fmt.Sprintf("%2d", d.Day) + marker
}
