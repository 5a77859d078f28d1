package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/dailycheck/internal/cli"
	"github.com/julianstephens/dailycheck/internal/cli/backups"
	"github.com/julianstephens/dailycheck/internal/cli/habits"
	"github.com/julianstephens/dailycheck/internal/cli/session"
	"github.com/julianstephens/dailycheck/internal/cli/stats"
	"github.com/julianstephens/dailycheck/internal/cli/system"
	"github.com/julianstephens/dailycheck/internal/config"
	"github.com/julianstephens/dailycheck/internal/constants"
	apperrors "github.com/julianstephens/dailycheck/internal/errors"
	"github.com/julianstephens/dailycheck/internal/lock"
	"github.com/julianstephens/dailycheck/internal/logger"
	"github.com/julianstephens/dailycheck/internal/seed"
	"github.com/julianstephens/dailycheck/internal/storage"
	"github.com/julianstephens/dailycheck/internal/tracker"
)

var CLI struct {
	Version     kong.VersionFlag
	Config      string `help:"Data store: SQLite path, *.json path, :memory: or PostgreSQL connection string. PostgreSQL credentials must NOT be embedded; use DAILYCHECK_DB_CONNECTION, .pgpass or the OS keyring instead." env:"DAILYCHECK_CONFIG"`
	Debug       bool   `help:"Enable debug logging to stderr." env:"DAILYCHECK_DEBUG"`
	SeedProfile string `help:"YAML profile used to generate demo data on first run." env:"DAILYCHECK_SEED_PROFILE"`
	Seed        int64  `help:"Random seed for demo data (0 = random)." env:"DAILYCHECK_SEED"`
	NoDemo      bool   `help:"Start with an empty store instead of demo data." env:"DAILYCHECK_NO_DEMO"`

	Init      system.InitCmd     `cmd:"" help:"Initialize dailycheck storage."`
	Tui       system.TuiCmd      `cmd:"" help:"Launch the interactive check-in screen." default:"1"`
	Login     session.LoginCmd   `cmd:"" help:"Set the local profile."`
	Logout    session.LogoutCmd  `cmd:"" help:"Clear the local profile."`
	Whoami    session.WhoamiCmd  `cmd:"" help:"Show the local profile."`
	Habit     habits.HabitCmd    `cmd:"" help:"Manage habits."`
	Check     habits.CheckCmd    `cmd:"" help:"Check or uncheck a habit for a day."`
	Note      habits.NoteCmd     `cmd:"" help:"Attach a note to a checked day."`
	Day       stats.DayCmd       `cmd:"" help:"Show every habit for a day."`
	Stats     stats.StatsCmd     `cmd:"" help:"Show streaks and completion rates."`
	Dashboard stats.DashboardCmd `cmd:"" help:"Show the overview."`
	Metrics   stats.MetricsCmd   `cmd:"" help:"Completion charts."`
	Backup    backups.BackupCmd  `cmd:"" help:"Manage data store backups."`
	Keyring   system.KeyringCmd  `cmd:"" help:"Manage the PostgreSQL connection string in the OS keyring."`
	Doctor    system.DoctorCmd   `cmd:"" help:"Run health checks and diagnostics."`
	DebugCmd  system.DebugCmd    `cmd:"" name:"debug" help:"Debug commands for troubleshooting."`
	Validate  system.ValidateCmd `cmd:"" help:"Check habits and logs for conflicts."`
}

func main() {
	// .env may set DAILYCHECK_CONFIG, so it is read before flags are parsed
	if dir, err := config.Dir(envOr("DAILYCHECK_CONFIG", constants.DefaultConfigPath)); err == nil {
		if err := config.LoadEnv(dir); err != nil {
			fmt.Fprintln(os.Stderr, apperrors.Format(err))
		}
	}

	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Daily habit tracker: check in, keep streaks, review your progress"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	if err := run(ctx); err != nil {
		apperrors.Fatal(apperrors.Annotate(err, hints...))
	}
}

var hints = []apperrors.Rule{
	apperrors.Is(lock.ErrLocked, "close the other dailycheck window, or remove the lockfile if that process is gone"),
	apperrors.Is(storage.ErrNotInitialized, "run 'dailycheck init' to create the data store"),
	apperrors.Is(cli.ErrHabitNotFound, "run 'dailycheck habit list' to see habit names and ids"),
	apperrors.Is(cli.ErrNotFileMedium, "backups work on SQLite and JSON stores; use pg_dump for PostgreSQL"),
	apperrors.Is(tracker.ErrFutureDate, "only today and earlier days can be checked"),
	{
		Match: func(err error) bool {
			var pe *tracker.PersistenceError
			return errors.As(err, &pe)
		},
		Hint: "the change was not saved; run 'dailycheck doctor' to inspect the data store",
	},
}

func run(ctx *kong.Context) (err error) {
	command := ctx.Command()

	value, trusted := cli.ResolveConfig(CLI.Config)
	configDir, err := config.Dir(value)
	if err != nil {
		return err
	}
	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: configDir, Medium: config.Medium(value)}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}

	store, err := cli.OpenStore(value, trusted)
	if err != nil {
		return err
	}

	// Keyring commands must work even when the stored connection is broken
	if strings.HasPrefix(command, "keyring") {
		return ctx.Run(&cli.Context{Store: store})
	}

	if config.IsFileMedium(store.GetConfigPath()) {
		l, err := lock.Acquire(lock.Path(configDir))
		if err != nil {
			return err
		}
		defer func() {
			if releaseErr := l.Release(); releaseErr != nil {
				logger.Warn("Failed to release lock", "error", releaseErr)
			}
		}()
	}

	opts, err := trackerOptions()
	if err != nil {
		return err
	}
	appCtx := &cli.Context{
		Store:   store,
		Tracker: tracker.New(store, opts...),
	}
	defer func() {
		if appCtx.Detached {
			return
		}
		if closeErr := appCtx.Tracker.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	// init and doctor open the store themselves
	if command != "init" && command != "doctor" {
		if err := openStore(store); err != nil {
			return err
		}
		if err := appCtx.Tracker.Load(); err != nil {
			return err
		}
	}

	logger.Debug("Running command", "command", command, "store", store.GetConfigPath())
	return ctx.Run(appCtx)
}

// openStore loads an existing store and creates it on first run.
func openStore(store storage.Provider) error {
	err := store.Load()
	if errors.Is(err, storage.ErrNotInitialized) {
		logger.Info("Initializing data store", "path", store.GetConfigPath())
		return store.Init()
	}
	return err
}

func trackerOptions() ([]tracker.Option, error) {
	opts := []tracker.Option{tracker.WithFutureDateGuard()}

	if CLI.NoDemo {
		return append(opts, tracker.WithoutDemoData()), nil
	}

	if CLI.SeedProfile != "" || CLI.Seed != 0 {
		profile := seed.DefaultProfile()
		if CLI.SeedProfile != "" {
			path, err := config.ExpandPath(CLI.SeedProfile)
			if err != nil {
				return nil, err
			}
			if profile, err = seed.LoadProfile(path); err != nil {
				return nil, err
			}
		}
		opts = append(opts, tracker.WithSeed(profile, seed.NewRand(CLI.Seed)))
	}

	return opts, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
