package system

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/julianstephens/daybook/internal/auth"
	"github.com/julianstephens/daybook/internal/cli"
	"github.com/julianstephens/daybook/internal/constants"
	"github.com/julianstephens/daybook/internal/keyring"
	"github.com/julianstephens/daybook/internal/server"
)

type ServeCmd struct {
	Addr         string        `help:"Listen address." default:":8080" env:"DAYBOOK_ADDR"`
	JWTSecret    string        `name:"jwt-secret" help:"Session signing secret. Defaults to the secret kept in the OS keyring." env:"DAYBOOK_JWT_SECRET"`
	TokenTTL     time.Duration `name:"token-ttl" help:"Session lifetime." default:"72h"`
	SecureCookie bool          `help:"Mark the session cookie Secure (serve behind TLS)." env:"DAYBOOK_SECURE_COOKIE"`
}

func (c *ServeCmd) Run(ctx *cli.Context) error {
	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := c.build(runCtx, ctx)
	if err != nil {
		return err
	}
	ctx.Printf("Serving daybook on %s\n", c.Addr)
	return srv.Run(runCtx)
}

func (c *ServeCmd) build(bg context.Context, ctx *cli.Context) (*server.Server, error) {
	svc, err := ctx.Journal(bg)
	if err != nil {
		return nil, err
	}

	secret := []byte(c.JWTSecret)
	if len(secret) == 0 {
		secret = ctx.Secret
	}
	if len(secret) == 0 {
		if secret, err = keyring.EnsureSigningSecret(); err != nil {
			return nil, fmt.Errorf("no --jwt-secret given and the keyring secret is unavailable: %w", err)
		}
	}

	ttl := c.TokenTTL
	if ttl <= 0 {
		ttl = constants.DefaultTokenTTL
	}
	tokens, err := auth.NewTokens(secret, ttl)
	if err != nil {
		return nil, err
	}

	gin.SetMode(ginMode(ctx.Debug))
	return server.New(svc, auth.NewService(ctx.Store, tokens), server.Config{
		Addr:         c.Addr,
		SecureCookie: c.SecureCookie,
	}), nil
}

// ginMode keeps gin's route dump and warnings behind --debug
func ginMode(debug bool) string {
	if debug {
		return gin.DebugMode
	}
	return gin.ReleaseMode
}
