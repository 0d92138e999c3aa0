package entries

import (
	"strings"

	"github.com/julianstephens/daybook/internal/cli"
	"github.com/julianstephens/daybook/internal/models"
)

const previewWidth = 60

// preview flattens content to one line of at most previewWidth runes
func preview(content string) string {
	line := strings.Join(strings.Fields(content), " ")
	r := []rune(line)
	if len(r) <= previewWidth {
		return line
	}
	return string(r[:previewWidth-1]) + "…"
}

func moodCell(m models.Mood) string {
	if !m.IsSet() {
		return "  "
	}
	return m.Emoji()
}

func printList(ctx *cli.Context, entries []models.HistoryEntry) {
	for _, e := range entries {
		ctx.Printf("%s  %s  %-20s %s\n", e.EntryDate, moodCell(e.Mood), e.Prompt.Title(), preview(e.Content))
		ctx.Printf("            id: %s\n", e.ID)
	}
}

func printEntry(ctx *cli.Context, e models.HistoryEntry) {
	ctx.Printf("%s  %s\n", e.EntryDate, e.Prompt.Title())
	if d := e.Prompt.Description(); d != "" {
		ctx.Printf("%s\n", d)
	}
	if e.Mood.IsSet() {
		ctx.Printf("Mood: %s %s\n", e.Mood.Emoji(), e.Mood.Label())
	}
	ctx.Printf("Streak: %d day(s)\n\n", e.StreakCount)
	ctx.Println(e.Content)
	ctx.Printf("\nid: %s\n", e.ID)
}
