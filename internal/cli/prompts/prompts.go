// Package prompts holds the prompt and reading-material commands.
package prompts

import (
	"context"
	"regexp"
	"strings"

	"github.com/julianstephens/daybook/internal/cli"
	"github.com/julianstephens/daybook/internal/constants"
	apperrors "github.com/julianstephens/daybook/internal/errors"
	"github.com/julianstephens/daybook/internal/models"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

type PromptListCmd struct {
	All bool `short:"a" help:"Show every prompt, not just the ones on the journal page."`
}

func (c *PromptListCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	limit := constants.MaxListLimit
	if !c.All {
		settings, err := ctx.Store.GetSettings(bg)
		if err != nil {
			return err
		}
		limit = settings.PromptLimit
	}

	prompts, err := ctx.Store.GetPrompts(bg, limit)
	if err != nil {
		return err
	}
	if len(prompts) == 0 {
		ctx.Println("No prompts configured.")
		return nil
	}
	for _, p := range prompts {
		ctx.Printf("%2d. %-20s %s\n", p.Position, p.ID, p.Title)
		if p.Description != "" {
			ctx.Printf("    %s\n", p.Description)
		}
	}
	return nil
}

type PromptAddCmd struct {
	ID          string `arg:"" help:"Prompt id, lowercase words joined by hyphens."`
	Title       string `required:"" help:"Prompt title."`
	Description string `help:"Longer question shown under the title."`
	Type        string `help:"Prompt category." enum:"reflection,gratitude,intention,emotion,growth" default:"reflection"`
	Position    int    `help:"Sort position (defaults to after the last prompt)."`
}

func (c *PromptAddCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	if !slugPattern.MatchString(c.ID) {
		return apperrors.Validation("prompt id %q must be lowercase words joined by hyphens", c.ID)
	}
	title := strings.TrimSpace(c.Title)
	if title == "" {
		return apperrors.Validation("prompt title is required")
	}

	position := c.Position
	if position <= 0 {
		existing, err := ctx.Store.GetPrompts(bg, constants.MaxListLimit)
		if err != nil {
			return err
		}
		for _, p := range existing {
			if p.ID != c.ID && p.Position >= position {
				position = p.Position + 1
			}
		}
		if position <= 0 {
			position = 1
		}
	}

	p := models.Prompt{
		ID:          c.ID,
		Title:       title,
		Description: strings.TrimSpace(c.Description),
		Type:        models.PromptType(c.Type),
		Position:    position,
	}
	if err := ctx.Store.AddPrompt(bg, p); err != nil {
		return err
	}
	ctx.Printf("✓ Saved prompt %q at position %d\n", p.ID, p.Position)
	return nil
}
