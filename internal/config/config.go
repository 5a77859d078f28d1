package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/julianstephens/dailycheck/internal/constants"
	"github.com/julianstephens/dailycheck/internal/logger"
	"github.com/julianstephens/dailycheck/internal/storage/postgres"
)

var userHomeDirFunc = os.UserHomeDir

// LoadEnv loads .env from the working directory and then from configDir.
// Variables already set in the environment are never overridden, and a
// missing file is not an error.
func LoadEnv(configDir string) error {
	paths := []string{constants.EnvFileName}
	if configDir != "" {
		paths = append(paths, filepath.Join(configDir, constants.EnvFileName))
	}

	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			logger.Warn("Error loading .env file, will use environment variables instead", "path", path, "error", err)
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
		logger.Debug("Loaded environment file", "path", path)
	}

	return nil
}

// ExpandPath replaces a leading ~ with the user's home directory.
// Connection strings and :memory: pass through untouched.
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}

	home, err := userHomeDirFunc()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// Medium kinds returned by Medium
const (
	MediumMemory   = "memory"
	MediumPostgres = "postgres"
	MediumJSON     = "json"
	MediumSQLite   = "sqlite"
)

// Medium classifies a --config value by the store that serves it.
func Medium(config string) string {
	switch {
	case config == constants.MemoryConfig:
		return MediumMemory
	case postgres.IsPostgres(config):
		return MediumPostgres
	case strings.EqualFold(filepath.Ext(config), ".json"):
		return MediumJSON
	}
	return MediumSQLite
}

// IsFileMedium reports whether config names a local file (JSON or SQLite)
func IsFileMedium(config string) bool {
	m := Medium(config)
	return m == MediumJSON || m == MediumSQLite
}

// Dir returns the directory that holds logs, the lockfile and .env.
// File media use their own directory; other media use the user config dir.
func Dir(config string) (string, error) {
	if IsFileMedium(config) {
		expanded, err := ExpandPath(config)
		if err != nil {
			return "", err
		}
		return filepath.Dir(expanded), nil
	}

	expanded, err := ExpandPath(constants.DefaultConfigPath)
	if err != nil {
		return "", err
	}
	return filepath.Dir(expanded), nil
}
