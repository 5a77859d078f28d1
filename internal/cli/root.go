package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/julianstephens/dailycheck/internal/backup"
	"github.com/julianstephens/dailycheck/internal/config"
	"github.com/julianstephens/dailycheck/internal/constants"
	"github.com/julianstephens/dailycheck/internal/keyring"
	"github.com/julianstephens/dailycheck/internal/logger"
	"github.com/julianstephens/dailycheck/internal/models"
	"github.com/julianstephens/dailycheck/internal/storage"
	"github.com/julianstephens/dailycheck/internal/storage/postgres"
	"github.com/julianstephens/dailycheck/internal/storage/sqlite"
	"github.com/julianstephens/dailycheck/internal/tracker"
	"github.com/julianstephens/dailycheck/internal/utils"
)

type Context struct {
	Store   storage.Provider
	Tracker *tracker.Tracker
	// Detached is set by commands that replace the medium underneath the
	// tracker; the final flush must then be skipped.
	Detached bool
}

// ErrNotFileMedium is returned by commands that only work on SQLite or JSON files
var ErrNotFileMedium = errors.New("this command requires a SQLite or JSON data store")

// ErrHabitNotFound is reported when a habit reference matches neither an id nor a name
var ErrHabitNotFound = errors.New("habit not found")

var getConnectionStringFunc = keyring.GetConnectionString

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	path := c.Store.GetConfigPath()
	if !config.IsFileMedium(path) {
		return
	}

	mgr := backup.NewManager(path)
	if _, err := mgr.CreateBackup(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// ResolveHabit finds a habit by id, then by name.
func (c *Context) ResolveHabit(ref string) (models.Habit, error) {
	if h, ok := c.Tracker.GetHabit(ref); ok {
		return h, nil
	}
	if h, ok := c.Tracker.FindHabitByName(ref); ok {
		return h, nil
	}
	return models.Habit{}, fmt.Errorf("%w: %q", ErrHabitNotFound, ref)
}

// ResolveDate turns a --date flag into a calendar date. Empty means today;
// "yesterday" is accepted. Future dates are rejected.
func (c *Context) ResolveDate(value string) (string, error) {
	now := c.Tracker.Now()

	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "today":
		return utils.Today(now), nil
	case "yesterday":
		return utils.DayOffset(now, -1), nil
	}

	if !utils.ValidateDate(value) {
		return "", fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD)", value)
	}
	if utils.IsFuture(value, now) {
		return "", fmt.Errorf("cannot log %s: date is in the future", value)
	}
	return value, nil
}

// ResolveConfig picks the storage location. An explicit --config wins, then
// DAILYCHECK_DB_CONNECTION, then a connection string stored in the OS keyring,
// then the default SQLite path. trusted is false only for values typed on the
// command line, which must not embed a password.
func ResolveConfig(flagValue string) (value string, trusted bool) {
	if flagValue != "" {
		return flagValue, false
	}
	if env := os.Getenv(constants.EnvConnection); env != "" {
		return env, true
	}
	if connStr, err := getConnectionStringFunc(); err == nil && connStr != "" {
		logger.Debug("Using connection string from OS keyring")
		return connStr, true
	} else if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		logger.Debug("OS keyring unavailable", "error", err)
	}
	return constants.DefaultConfigPath, false
}

// OpenStore builds the provider for a config value without opening it.
func OpenStore(value string, trusted bool) (storage.Provider, error) {
	switch config.Medium(value) {
	case config.MediumMemory:
		return storage.NewMemoryStore(), nil

	case config.MediumPostgres:
		if !trusted {
			if valid, err := postgres.ValidateConnString(value); !valid {
				if errors.Is(err, postgres.ErrEmbeddedCredentials) {
					return nil, fmt.Errorf("PostgreSQL connection strings with embedded credentials are not allowed on the command line; use %s, .pgpass or 'dailycheck keyring set' instead", constants.EnvConnection)
				}
				return nil, err
			}
		}
		return postgres.New(value), nil
	}

	path, err := config.ExpandPath(value)
	if err != nil {
		return nil, err
	}
	if config.Medium(path) == config.MediumJSON {
		return storage.NewJSONStore(path), nil
	}
	return sqlite.NewStore(path), nil
}

