// Package entries holds the commands that write and read journal entries.
package entries

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/julianstephens/daybook/internal/cli"
	"github.com/julianstephens/daybook/internal/constants"
	apperrors "github.com/julianstephens/daybook/internal/errors"
	"github.com/julianstephens/daybook/internal/journal"
	"github.com/julianstephens/daybook/internal/models"
	"github.com/julianstephens/daybook/internal/tui/forms"
)

type WriteCmd struct {
	Prompt string   `short:"p" help:"Prompt id (defaults to the first prompt)."`
	Mood   int      `short:"m" help:"Mood from 1 (very low) to 5 (great)."`
	Stdin  bool     `help:"Read the entry text from standard input."`
	Text   []string `arg:"" optional:"" help:"Entry text. Opens a form when omitted."`
}

func (c *WriteCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	user, svc, err := ctx.Session(bg)
	if err != nil {
		return err
	}

	prompt, err := c.resolvePrompt(bg, ctx, svc)
	if err != nil {
		return err
	}

	fm := forms.EntryFormModel{Content: strings.Join(c.Text, " "), Mood: models.Mood(c.Mood)}
	switch {
	case c.Stdin:
		b, err := io.ReadAll(ctx.Stdin())
		if err != nil {
			return fmt.Errorf("failed to read entry: %w", err)
		}
		fm.Content = string(b)
	case fm.Content == "":
		existing, err := ctx.Store.GetEntryForDay(bg, user.ID, prompt.ID, svc.Today())
		if err == nil {
			fm.Content, fm.Mood = existing.Content, existing.Mood
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		if err := forms.NewEntryForm(prompt.Title, prompt.Description, &fm).Run(); err != nil {
			return err
		}
	}

	res, err := svc.Submit(bg, user.ID, journal.Submission{
		PromptID: prompt.ID,
		Content:  fm.Content,
		Mood:     fm.Mood,
	})
	if err != nil {
		return cli.UserFacing(err, constants.BannerSubmitFailed)
	}

	if res.Created {
		ctx.Printf("✓ %s\n", constants.BannerEntrySaved)
	} else {
		ctx.Printf("✓ %s (today's %q entry was replaced)\n", constants.BannerEntrySaved, prompt.Title)
	}
	ctx.Printf("  Streak: %d day(s)\n", res.Streak.CurrentStreak)
	return nil
}

func (c *WriteCmd) resolvePrompt(bg context.Context, ctx *cli.Context, svc *journal.Service) (models.Prompt, error) {
	if c.Prompt != "" {
		return ctx.Store.GetPrompt(bg, c.Prompt)
	}
	prompts, err := svc.Prompts(bg)
	if err != nil {
		return models.Prompt{}, err
	}
	if len(prompts) == 0 {
		return models.Prompt{}, apperrors.NotFound("no prompts configured, add one with 'daybook prompts add'")
	}
	return prompts[0], nil
}
