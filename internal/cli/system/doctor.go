package system

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/julianstephens/dailycheck/internal/backup"
	"github.com/julianstephens/dailycheck/internal/cli"
	"github.com/julianstephens/dailycheck/internal/config"
	"github.com/julianstephens/dailycheck/internal/constants"
	"github.com/julianstephens/dailycheck/internal/keyring"
	"github.com/julianstephens/dailycheck/internal/validation"
)

// schemaReporter is implemented by the SQL-backed stores
type schemaReporter interface {
	SchemaVersions() (current, latest int, err error)
}

var errSkipped = errors.New("not applicable")

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	reachable := true

	checks := []struct {
		name     string
		run      func(*cli.Context) error
		warnOnly bool
		needsDB  bool
	}{
		{name: "Data store reachable", run: checkStoreReachable},
		{name: "Schema version", run: checkSchemaVersion, needsDB: true},
		{name: "Backups present", run: checkBackupsPresent, warnOnly: true},
		{name: "Data validation", run: checkValidation, needsDB: true},
		{name: "Clock/timezone", run: checkClockTimezone},
		{name: "PostgreSQL credentials", run: checkCredentials, warnOnly: true},
	}

	for i, check := range checks {
		if check.needsDB && !reachable {
			fmt.Printf("⊘ %s: SKIPPED (data store not reachable)\n", check.name)
			continue
		}

		err := check.run(ctx)
		switch {
		case err == nil:
			fmt.Printf("✓ %s: OK\n", check.name)
		case errors.Is(err, errSkipped):
			fmt.Printf("⊘ %s: SKIPPED (%v)\n", check.name, err)
		case check.warnOnly:
			fmt.Printf("⚠ %s: WARNING\n", check.name)
			fmt.Printf("   %v\n", err)
		default:
			fmt.Printf("❌ %s: FAIL\n", check.name)
			fmt.Printf("   Error: %v\n", err)
			hasError = true
			if i == 0 {
				reachable = false
			}
		}
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

func checkStoreReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load data store: %w", err)
	}
	if _, err := ctx.Store.Keys(); err != nil {
		return fmt.Errorf("failed to query data store: %w", err)
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	reporter, ok := ctx.Store.(schemaReporter)
	if !ok {
		return fmt.Errorf("%w: no schema for this medium", errSkipped)
	}

	current, latest, err := reporter.SchemaVersions()
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if current > latest {
		return fmt.Errorf("schema version (%d) is newer than supported version (%d)", current, latest)
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d", current, latest)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	path := ctx.Store.GetConfigPath()
	if !config.IsFileMedium(path) {
		return fmt.Errorf("%w: not a file medium", errSkipped)
	}

	backups, err := backup.NewManager(path).ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'dailycheck backup create'")
	}
	return nil
}

func checkValidation(ctx *cli.Context) error {
	if !ctx.Tracker.Loaded() {
		if err := ctx.Tracker.Load(); err != nil {
			return err
		}
	}

	result := validation.New().Validate(ctx.Tracker.Habits(), ctx.Tracker.Logs(), ctx.Tracker.Today())
	if result.HasConflicts() {
		return fmt.Errorf("%d conflict(s) found - run 'dailycheck validate' for details", len(result.Conflicts))
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(constants.TimestampFormat))
	}
	return nil
}

func checkCredentials(ctx *cli.Context) error {
	if config.Medium(ctx.Store.GetConfigPath()) != config.MediumPostgres {
		return fmt.Errorf("%w: not a PostgreSQL store", errSkipped)
	}
	if os.Getenv(constants.EnvConnection) != "" {
		return nil
	}

	st := keyring.CurrentStatus()
	switch {
	case st.Stored:
		return nil
	case !st.Available:
		return fmt.Errorf("OS keyring unavailable: %v", st.Err)
	}
	return fmt.Errorf("connection string is only passed on the command line - store it with 'dailycheck keyring set'")
}
