package entries

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/julianstephens/daybook/internal/cli"
	"github.com/julianstephens/daybook/internal/constants"
	"github.com/julianstephens/daybook/internal/models"
	"github.com/julianstephens/daybook/internal/tui/forms"
)

type EntryShowCmd struct {
	ID string `arg:"" help:"Entry id."`
}

func (c *EntryShowCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	user, svc, err := ctx.Session(bg)
	if err != nil {
		return err
	}
	e, err := svc.Entry(bg, user.ID, c.ID)
	if err != nil {
		return cli.UserFacing(err, constants.BannerFetchFailed)
	}
	printEntry(ctx, e)
	return nil
}

type EntryEditCmd struct {
	ID    string   `arg:"" help:"Entry id."`
	Mood  *int     `short:"m" help:"New mood from 1 to 5, 0 clears it. Kept when omitted."`
	Stdin bool     `help:"Read the new text from standard input."`
	Text  []string `arg:"" optional:"" help:"New entry text. Opens a form when omitted."`
}

func (c *EntryEditCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	user, svc, err := ctx.Session(bg)
	if err != nil {
		return err
	}

	current, err := svc.Entry(bg, user.ID, c.ID)
	if err != nil {
		return cli.UserFacing(err, constants.BannerFetchFailed)
	}

	fm := forms.EntryFormModel{Content: strings.Join(c.Text, " "), Mood: current.Mood}
	if c.Mood != nil {
		fm.Mood = models.Mood(*c.Mood)
	}
	switch {
	case c.Stdin:
		b, err := io.ReadAll(ctx.Stdin())
		if err != nil {
			return fmt.Errorf("failed to read entry: %w", err)
		}
		fm.Content = string(b)
	case fm.Content == "":
		fm.Content = current.Content
		if err := forms.NewEntryForm(current.Prompt.Title(), current.Prompt.Description(), &fm).Run(); err != nil {
			return err
		}
	}

	updated, err := svc.UpdateEntry(bg, user.ID, c.ID, fm.Content, fm.Mood)
	if err != nil {
		return cli.UserFacing(err, constants.BannerUpdateFailed)
	}
	ctx.Printf("✓ %s\n", constants.BannerEntryUpdated)
	printEntry(ctx, updated)
	return nil
}

type EntryDeleteCmd struct {
	ID  string `arg:"" help:"Entry id."`
	Yes bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *EntryDeleteCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	user, svc, err := ctx.Session(bg)
	if err != nil {
		return err
	}

	e, err := svc.Entry(bg, user.ID, c.ID)
	if err != nil {
		return cli.UserFacing(err, constants.BannerFetchFailed)
	}

	if !c.Yes {
		ctx.Printf("Delete the %s entry for %q? [y/N]: ", e.EntryDate, e.Prompt.Title())
		response, err := bufio.NewReader(ctx.Stdin()).ReadString('\n')
		if err != nil && err != io.EOF {
			return err
		}
		response = strings.TrimSpace(strings.ToLower(response))
		if response != "y" && response != "yes" {
			ctx.Println("Delete cancelled.")
			return nil
		}
	}

	if err := svc.DeleteEntry(bg, user.ID, c.ID); err != nil {
		return err
	}
	ctx.Println("✓ Entry deleted")
	return nil
}
