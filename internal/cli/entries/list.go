package entries

import (
	"context"

	"github.com/julianstephens/daybook/internal/cli"
	"github.com/julianstephens/daybook/internal/constants"
)

type HistoryCmd struct {
	Limit int `short:"n" help:"Number of entries to show (defaults to the history_limit setting)."`
}

func (c *HistoryCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	user, svc, err := ctx.Session(bg)
	if err != nil {
		return err
	}
	entries, err := svc.History(bg, user.ID, c.Limit)
	if err != nil {
		return cli.UserFacing(err, constants.BannerFetchFailed)
	}
	if len(entries) == 0 {
		ctx.Println("No entries yet. Start with 'daybook write'.")
		return nil
	}
	printList(ctx, entries)
	return nil
}

type SearchCmd struct {
	Query string `arg:"" optional:"" help:"Text to look for. Empty shows recent history."`
}

func (c *SearchCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	user, svc, err := ctx.Session(bg)
	if err != nil {
		return err
	}
	entries, err := svc.Search(bg, user.ID, c.Query)
	if err != nil {
		return cli.UserFacing(err, constants.BannerSearchFailed)
	}
	if len(entries) == 0 {
		ctx.Printf("No entries match %q.\n", c.Query)
		return nil
	}
	printList(ctx, entries)
	return nil
}

type StreakCmd struct{}

func (c *StreakCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	user, svc, err := ctx.Session(bg)
	if err != nil {
		return err
	}
	info, err := svc.Streak(bg, user.ID)
	if err != nil {
		return cli.UserFacing(err, constants.BannerFetchFailed)
	}
	if !info.HasLastEntry() {
		ctx.Println("No streak yet. Write today to start one.")
		return nil
	}
	ctx.Printf("🔥 %d day streak (last entry %s)\n", info.CurrentStreak, info.LastEntryDate)
	return nil
}
