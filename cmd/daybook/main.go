package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/julianstephens/daybook/internal/cli"
	"github.com/julianstephens/daybook/internal/cli/account"
	"github.com/julianstephens/daybook/internal/cli/backups"
	"github.com/julianstephens/daybook/internal/cli/entries"
	"github.com/julianstephens/daybook/internal/cli/insights"
	"github.com/julianstephens/daybook/internal/cli/prompts"
	"github.com/julianstephens/daybook/internal/cli/settings"
	"github.com/julianstephens/daybook/internal/cli/system"
	"github.com/julianstephens/daybook/internal/constants"
	"github.com/julianstephens/daybook/internal/logger"
	"github.com/julianstephens/daybook/internal/utils"
)

var CLI struct {
	Version  kong.VersionFlag
	Config   string `help:"SQLite database path or PostgreSQL connection string. PostgreSQL passwords must come from the environment, .pgpass or the OS keyring, never the connection string. Defaults to the keyring connection string, then ~/.config/daybook/daybook.db." env:"DAYBOOK_DB"`
	Debug    bool   `help:"Log debug output to stderr." env:"DAYBOOK_DEBUG"`
	Timezone string `help:"Override the configured timezone for this run." env:"DAYBOOK_TIMEZONE"`

	Init    system.InitCmd    `cmd:"" help:"Initialize daybook storage."`
	Migrate system.MigrateCmd `cmd:"" help:"Run database migrations."`
	Doctor  system.DoctorCmd  `cmd:"" help:"Run health checks and diagnostics."`
	Tui     system.TuiCmd     `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Serve   system.ServeCmd   `cmd:"" help:"Serve the JSON API and page routes over HTTP."`
	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store a PostgreSQL connection string."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show the stored connection string (password masked)."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
		Status system.KeyringStatusCmd `cmd:"" help:"Check keyring availability."`
	} `cmd:"" help:"Manage credentials kept in the OS keyring."`

	Auth struct {
		Register     account.RegisterCmd     `cmd:"" help:"Create an account and sign in."`
		Login        account.LoginCmd        `cmd:"" help:"Sign in."`
		Logout       account.LogoutCmd       `cmd:"" help:"Sign out."`
		Whoami       account.WhoamiCmd       `cmd:"" help:"Show the signed-in account."`
		ResetRequest account.ResetRequestCmd `cmd:"" name:"reset-request" help:"Issue a password reset token."`
		Reset        account.ResetCmd        `cmd:"" help:"Set a new password with a reset token."`
	} `cmd:"" help:"Sign in, sign out and reset passwords."`

	Write   entries.WriteCmd   `cmd:"" help:"Write today's entry for a prompt."`
	Entry   struct {
		Show   entries.EntryShowCmd   `cmd:"" help:"Show one entry." default:"withargs"`
		Edit   entries.EntryEditCmd   `cmd:"" help:"Edit an entry's text and mood."`
		Delete entries.EntryDeleteCmd `cmd:"" help:"Delete an entry."`
	} `cmd:"" help:"Read and change a single entry."`
	History entries.HistoryCmd `cmd:"" help:"List recent entries."`
	Search  entries.SearchCmd  `cmd:"" help:"Search entry text."`
	Streak  entries.StreakCmd  `cmd:"" help:"Show the current writing streak."`

	Stats    insights.StatsCmd    `cmd:"" help:"Show mood and writing insights."`
	Calendar insights.CalendarCmd `cmd:"" help:"Show a month of entries."`

	Prompts struct {
		List prompts.PromptListCmd `cmd:"" help:"List writing prompts." default:"1"`
		Add  prompts.PromptAddCmd  `cmd:"" help:"Add or update a prompt."`
	} `cmd:"" help:"Manage writing prompts."`
	Resources prompts.ResourcesCmd `cmd:"" help:"Show wellness resources."`
	Quote     prompts.QuoteCmd     `cmd:"" help:"Show the quote of the day."`

	Backup struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage database backups."`
	Settings settings.SettingsCmd `cmd:"" help:"Manage application settings."`
}

func main() {
	// a missing .env is fine
	_ = godotenv.Load()

	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("A personal wellness journal: daily prompts, moods and streaks."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	logDir, err := utils.ExpandHome(filepath.Dir(constants.DefaultConfigPath))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	command := strings.Fields(ctx.Command())[0]
	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: logDir,
		Console:   command == "serve",
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
	}

	store, err := cli.OpenStore(CLI.Config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Error: %v\n", err)
		os.Exit(1)
	}

	appCtx := &cli.Context{
		Store:    store,
		Timezone: CLI.Timezone,
		Debug:    CLI.Debug,
	}

	// init creates the database itself; doctor reports load failures
	if command != "init" && command != "doctor" && command != "keyring" {
		if err := store.Load(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	defer store.Close()

	if err := ctx.Run(appCtx); err != nil {
		logger.Debug("Command failed", "command", command, "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		store.Close()
		os.Exit(1)
	}
}
