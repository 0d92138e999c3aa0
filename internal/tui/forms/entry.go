// Package forms builds the huh forms shared by the TUI and the CLI.
package forms

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/daybook/internal/models"
)

// EntryFormModel holds the values bound to an entry form
type EntryFormModel struct {
	Content string
	Mood    models.Mood
}

// MoodChoices lists the mood select options, "no mood" first
func MoodChoices() []huh.Option[models.Mood] {
	opts := []huh.Option[models.Mood]{huh.NewOption("Skip", models.NoMood)}
	for _, o := range models.MoodOptions {
		opts = append(opts, huh.NewOption(fmt.Sprintf("%s %s", o.Emoji, o.Label), o.Value))
	}
	return opts
}

// NewEntryForm creates the write/edit form. Empty content is not blocked
// here; the journal service rejects it with a banner message.
func NewEntryForm(title, description string, fm *EntryFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title(title).
				Description(description).
				CharLimit(0).
				Lines(8).
				Value(&fm.Content),
			huh.NewSelect[models.Mood]().
				Title("How are you feeling?").
				Options(MoodChoices()...).
				Value(&fm.Mood),
		),
	).WithTheme(huh.ThemeDracula())
}
