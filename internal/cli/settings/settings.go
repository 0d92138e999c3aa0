package settings

import (
	"context"
	"fmt"

	"github.com/julianstephens/daybook/internal/cli"
	"github.com/julianstephens/daybook/internal/constants"
	"github.com/julianstephens/daybook/internal/utils"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	Timezone     *string `help:"IANA timezone used to decide what \"today\" is, or Local."`
	PromptLimit  *int    `help:"Prompts shown on the journal page."`
	HistoryLimit *int    `help:"Entries in the recent history list."`
	SearchLimit  *int    `help:"Maximum search results."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	settings, err := ctx.Store.GetSettings(bg)
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if c.List {
		ctx.Println("Current Settings:")
		ctx.Printf("  Timezone:       %s\n", settings.Timezone)
		ctx.Printf("  Prompt Limit:   %d\n", settings.PromptLimit)
		ctx.Printf("  History Limit:  %d\n", settings.HistoryLimit)
		ctx.Printf("  Search Limit:   %d\n", settings.SearchLimit)
		return nil
	}

	updated := false
	if c.Timezone != nil {
		if !utils.ValidateTimezone(*c.Timezone) {
			return fmt.Errorf("invalid timezone %q", *c.Timezone)
		}
		settings.Timezone = *c.Timezone
		updated = true
	}
	limits := []struct {
		name  string
		value *int
		dest  *int
	}{
		{"prompt-limit", c.PromptLimit, &settings.PromptLimit},
		{"history-limit", c.HistoryLimit, &settings.HistoryLimit},
		{"search-limit", c.SearchLimit, &settings.SearchLimit},
	}
	for _, l := range limits {
		if l.value == nil {
			continue
		}
		if *l.value < 1 || *l.value > constants.MaxListLimit {
			return fmt.Errorf("%s must be between 1 and %d", l.name, constants.MaxListLimit)
		}
		*l.dest = *l.value
		updated = true
	}

	if updated {
		if err := ctx.Store.SaveSettings(bg, settings); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
		ctx.Println("Settings updated successfully.")
	} else {
		ctx.Println("No changes specified. Use --list to view settings or flags to update them.")
	}
	return nil
}
