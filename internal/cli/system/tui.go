package system

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/daybook/internal/cli"
	apperrors "github.com/julianstephens/daybook/internal/errors"
	"github.com/julianstephens/daybook/internal/logger"
	"github.com/julianstephens/daybook/internal/models"
	"github.com/julianstephens/daybook/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	ctx.PerformAutomaticBackup()

	bg := context.Background()
	svc, err := ctx.Journal(bg)
	if err != nil {
		return err
	}

	// without a session the TUI still shows prompts and the daily quote
	user, err := ctx.CurrentUser(bg)
	if err != nil {
		if !errors.Is(err, apperrors.ErrUnauthorized) {
			return err
		}
		logger.Info("Starting TUI without a session", "reason", err)
		user = models.User{}
	}

	p := tea.NewProgram(tui.NewModel(svc, user), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui failed: %w", err)
	}
	return nil
}
