package prompts

import (
	"time"

	"github.com/julianstephens/daybook/internal/cli"
	"github.com/julianstephens/daybook/internal/content"
)

type ResourcesCmd struct{}

func (c *ResourcesCmd) Run(ctx *cli.Context) error {
	for i, section := range content.Resources() {
		if i > 0 {
			ctx.Println()
		}
		ctx.Println(section.Title)
		for _, line := range section.Content {
			ctx.Printf("  • %s\n", line)
		}
	}
	return nil
}

type QuoteCmd struct{}

func (c *QuoteCmd) Run(ctx *cli.Context) error {
	q := content.QuoteOfDay(time.Now())
	ctx.Printf("%q\n  — %s\n", q.Text, q.Author)
	return nil
}
