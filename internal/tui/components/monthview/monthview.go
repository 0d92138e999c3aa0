// Package monthview renders the calendar tab.
package monthview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/daybook/internal/calendar"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#5E503F"))

	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	todayStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	entryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#834D4D"))

	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

func View(m calendar.Month, loaded bool) string {
	if !loaded {
		return mutedStyle.Render("Loading calendar...")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.Title))
	b.WriteString("\n")
	b.WriteString(headerStyle.Render(" Sun  Mon  Tue  Wed  Thu  Fri  Sat"))
	b.WriteString("\n")
	for _, week := range m.Weeks {
		for i, d := range week {
			if i > 0 {
				b.WriteString(" ")
			}
			b.WriteString(cell(d))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("%d entries on %d day(s)", m.TotalEntries, m.EntryDays)))
	return b.String()
}

func cell(d calendar.Day) string {
	if !d.InMonth {
		return "    "
	}
	num := fmt.Sprintf("%2d", d.Day)
	marker := "  "
	switch {
	case d.EntryCount > 0 && d.Mood.IsSet():
		marker = d.Mood.Emoji()
	case d.EntryCount > 0:
		marker = entryStyle.Render("• ")
	}
	if d.IsToday {
		num = todayStyle.Render(num)
		if d.EntryCount == 0 {
			marker = todayStyle.Render("◦ ")
		}
	}
	return num + marker
}
