// Package account holds the sign-in commands. The session token lives in
// the OS keyring between invocations.
package account

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/daybook/internal/cli"
	"github.com/julianstephens/daybook/internal/keyring"
)

// askPassword returns the flag value or prompts with a masked input
func askPassword(title, value string) (string, error) {
	if value != "" {
		return value, nil
	}
	var pw string
	err := huh.NewInput().
		Title(title).
		EchoMode(huh.EchoModePassword).
		Value(&pw).
		Run()
	if err != nil {
		return "", err
	}
	return pw, nil
}

type RegisterCmd struct {
	Email    string `arg:"" help:"Email address."`
	Password string `help:"Password (prompted when omitted)." env:"DAYBOOK_PASSWORD"`
}

func (c *RegisterCmd) Run(ctx *cli.Context) error {
	pw, err := askPassword("Choose a password", c.Password)
	if err != nil {
		return err
	}
	svc, err := ctx.Auth()
	if err != nil {
		return err
	}
	session, err := svc.Register(context.Background(), c.Email, pw)
	if err != nil {
		return err
	}
	if err := keyring.SetSessionToken(session.Token); err != nil {
		return fmt.Errorf("account created but the session could not be saved: %w", err)
	}
	ctx.Printf("✓ Registered and signed in as %s\n", session.User.Email)
	return nil
}

type LoginCmd struct {
	Email    string `arg:"" help:"Email address."`
	Password string `help:"Password (prompted when omitted)." env:"DAYBOOK_PASSWORD"`
}

func (c *LoginCmd) Run(ctx *cli.Context) error {
	pw, err := askPassword("Password", c.Password)
	if err != nil {
		return err
	}
	svc, err := ctx.Auth()
	if err != nil {
		return err
	}
	session, err := svc.SignIn(context.Background(), c.Email, pw)
	if err != nil {
		return err
	}
	if err := keyring.SetSessionToken(session.Token); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	ctx.Printf("✓ Signed in as %s (session expires %s)\n",
		session.User.Email, session.ExpiresAt.Local().Format("2006-01-02 15:04"))
	return nil
}

type LogoutCmd struct{}

func (c *LogoutCmd) Run(ctx *cli.Context) error {
	if err := keyring.DeleteSessionToken(); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			ctx.Println("Not signed in.")
			return nil
		}
		return err
	}
	ctx.Println("✓ Signed out")
	return nil
}

type WhoamiCmd struct{}

func (c *WhoamiCmd) Run(ctx *cli.Context) error {
	user, err := ctx.CurrentUser(context.Background())
	if err != nil {
		return err
	}
	ctx.Printf("%s\n", user.Email)
	ctx.Printf("  id:      %s\n", user.ID)
	ctx.Printf("  joined:  %s\n", user.CreatedAt.Local().Format("2006-01-02"))
	return nil
}

// ResetRequestCmd issues a one-time reset token. There is no mail
// delivery, so the token is printed.
type ResetRequestCmd struct {
	Email string `arg:"" help:"Email address of the account."`
}

func (c *ResetRequestCmd) Run(ctx *cli.Context) error {
	svc, err := ctx.Auth()
	if err != nil {
		return err
	}
	token, err := svc.RequestPasswordReset(context.Background(), c.Email)
	if err != nil {
		return err
	}
	if token == "" {
		ctx.Println("If that account exists, a reset token has been issued.")
		return nil
	}
	ctx.Println("Reset token (valid for 1 hour):")
	ctx.Printf("  %s\n", token)
	ctx.Println("Run 'daybook auth reset <token>' to choose a new password.")
	return nil
}

type ResetCmd struct {
	Token    string `arg:"" help:"Reset token from 'daybook auth reset-request'."`
	Password string `help:"New password (prompted when omitted)." env:"DAYBOOK_PASSWORD"`
}

func (c *ResetCmd) Run(ctx *cli.Context) error {
	pw, err := askPassword("New password", c.Password)
	if err != nil {
		return err
	}
	svc, err := ctx.Auth()
	if err != nil {
		return err
	}
	if err := svc.ResetPassword(context.Background(), strings.TrimSpace(c.Token), pw); err != nil {
		return err
	}
	ctx.Println("✓ Password updated, sign in with 'daybook auth login'")
	return nil
}
