package system

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/dailycheck/internal/cli"
	"github.com/julianstephens/dailycheck/internal/config"
	"github.com/julianstephens/dailycheck/internal/storage"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting the existing data store before initialization."`
	Source string `help:"Source data store path or connection string to copy data from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	dbPath := ctx.Store.GetConfigPath()

	if c.Force {
		if c.Source != "" && samePath(c.Source, dbPath) {
			return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
		}
		if err := c.reset(ctx, dbPath); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized dailycheck storage at: %s\n", dbPath)

	if c.Source != "" {
		fmt.Printf("Copying data from: %s\n", c.Source)
		n, err := copyEntries(ctx.Store, c.Source)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		fmt.Printf("Migration completed successfully! (%d entries)\n", n)
	}

	// Load seeds the demo data when the store is still empty
	if err := ctx.Tracker.Load(); err != nil {
		return err
	}
	fmt.Printf("  %d habit(s), %d log(s)\n", len(ctx.Tracker.Habits()), len(ctx.Tracker.Logs()))

	return nil
}

func (c *InitCmd) reset(ctx *cli.Context, dbPath string) error {
	if !config.IsFileMedium(dbPath) {
		// Server media are cleared entry by entry
		if err := ctx.Store.Init(); err != nil {
			return err
		}
		keys, err := ctx.Store.Keys()
		if err != nil {
			return err
		}
		for _, key := range keys {
			if err := ctx.Store.Delete(key); err != nil {
				return fmt.Errorf("failed to delete %s: %w", key, err)
			}
		}
		fmt.Printf("Cleared %d existing entries\n", len(keys))
		return nil
	}

	if _, err := os.Stat(dbPath); err == nil {
		if err := ctx.Store.Close(); err != nil {
			return fmt.Errorf("failed to close existing data store: %w", err)
		}
		if err := os.Remove(dbPath); err != nil {
			return fmt.Errorf("failed to delete existing data store: %w", err)
		}
		fmt.Printf("Deleted existing data store at: %s\n", dbPath)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to access existing data store: %w", err)
	}
	return nil
}

// copyEntries copies every key from the store at source into dst.
func copyEntries(dst storage.Provider, source string) (int, error) {
	src, err := cli.OpenStore(source, false)
	if err != nil {
		return 0, err
	}
	defer src.Close()
	if err := src.Load(); err != nil {
		return 0, fmt.Errorf("failed to load source data store: %w", err)
	}

	keys, err := src.Keys()
	if err != nil {
		return 0, fmt.Errorf("failed to list source entries: %w", err)
	}

	for _, key := range keys {
		value, ok, err := src.Get(key)
		if err != nil {
			return 0, fmt.Errorf("failed to read %s from source: %w", key, err)
		}
		if !ok {
			continue
		}
		if err := dst.Put(key, value); err != nil {
			return 0, fmt.Errorf("failed to write %s: %w", key, err)
		}
		fmt.Printf("  Copied %s\n", key)
	}
	return len(keys), nil
}

func samePath(a, b string) bool {
	if ea, err := config.ExpandPath(a); err == nil {
		a = ea
	}
	if eb, err := config.ExpandPath(b); err == nil {
		b = eb
	}
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return a == b
	}
	return absA == absB
}
