package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/julianstephens/dailycheck/internal/constants"
)

var (
	// Logger is the global logger instance
	Logger *log.Logger

	discard = log.New(io.Discard)
)

// Config holds logger configuration
type Config struct {
	Debug     bool
	ConfigDir string
	// Medium labels every line with the data store kind (json, sqlite, ...)
	Medium string
	// Level overrides the default level; empty falls back to
	// DAILYCHECK_LOG_LEVEL, then to warn
	Level string
}

// Init initializes the global logger with the given configuration
func Init(cfg Config) error {
	level, err := resolveLevel(cfg)
	if err != nil {
		return err
	}

	logDir := filepath.Join(cfg.ConfigDir, constants.LogDirName)
	if err := os.MkdirAll(logDir, 0700); err != nil {
		return err
	}

	fileWriter := &lumberjack.Logger{
		Filename:   filepath.Join(logDir, constants.LogFileName),
		MaxSize:    constants.LogMaxSizeMB,
		MaxBackups: constants.LogMaxBackups,
		MaxAge:     constants.LogMaxAgeDays,
		Compress:   true,
	}

	// stderr only gets a copy in debug mode; the TUI owns the terminal otherwise
	var writer io.Writer = fileWriter
	if cfg.Debug {
		writer = io.MultiWriter(os.Stderr, fileWriter)
	}

	l := log.NewWithOptions(writer, log.Options{
		ReportCaller:    cfg.Debug,
		ReportTimestamp: true,
		Level:           level,
		Prefix:          constants.AppName,
	})

	fields := []interface{}{"pid", os.Getpid()}
	if cfg.Medium != "" {
		fields = append(fields, "medium", cfg.Medium)
	}
	Logger = l.With(fields...)

	return nil
}

func resolveLevel(cfg Config) (log.Level, error) {
	if cfg.Debug {
		return log.DebugLevel, nil
	}

	name := cfg.Level
	if name == "" {
		name = os.Getenv(constants.EnvLogLevel)
	}
	if name == "" {
		name = constants.DefaultLogLevel
	}

	level, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(name)))
	if err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", name, err)
	}
	return level, nil
}

// For returns a logger tagged with component. It is safe to call before Init;
// the result then discards everything. Callers should fetch it per use so a
// later Init is picked up.
func For(component string) *log.Logger {
	if Logger == nil {
		return discard
	}
	return Logger.With("component", component)
}

// Debug logs a debug message
func Debug(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Debug(msg, keyvals...)
	}
}

// Info logs an info message
func Info(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Info(msg, keyvals...)
	}
}

// Warn logs a warning message
func Warn(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Warn(msg, keyvals...)
	}
}

// Error logs an error message
func Error(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Error(msg, keyvals...)
	}
}
