package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/dailycheck/internal/constants"
)

func TestInit(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")

	if err := Init(Config{Debug: false, ConfigDir: configDir}); err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}

	logDir := filepath.Join(configDir, constants.LogDirName)
	if _, err := os.Stat(logDir); os.IsNotExist(err) {
		t.Errorf("Log directory was not created: %s", logDir)
	}

	if Logger == nil {
		t.Fatal("Logger is nil after initialization")
	}

	Warn("Test warning message", "habit_id", "h1")
	Error("Test error message")

	logFile := filepath.Join(logDir, constants.LogFileName)
	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if len(data) == 0 {
		t.Error("expected warning to be written to the log file")
	}
}

func TestInitDebugMode(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")

	if err := Init(Config{Debug: true, ConfigDir: configDir}); err != nil {
		t.Fatalf("Failed to initialize logger in debug mode: %v", err)
	}

	if Logger == nil {
		t.Fatal("Logger is nil after initialization")
	}
	if Logger.GetLevel().String() != "debug" {
		t.Errorf("expected debug level, got %s", Logger.GetLevel())
	}

	Debug("Test debug message in debug mode")
	Info("Test info message in debug mode")
}

func TestLogFunctionsWithoutInit(t *testing.T) {
	Logger = nil

	// These should not panic when Logger is nil
	Debug("Test debug message")
	Info("Test info message")
	Warn("Test warning message")
	Error("Test error message")
}

func TestInitLevel(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		env     string
		want    string
		wantErr bool
	}{
		{name: "default", want: "warn"},
		{name: "from env", env: "INFO", want: "info"},
		{name: "config beats env", cfg: Config{Level: "error"}, env: "info", want: "error"},
		{name: "debug beats everything", cfg: Config{Debug: true, Level: "error"}, want: "debug"},
		{name: "invalid", cfg: Config{Level: "chatty"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(constants.EnvLogLevel, tt.env)
			Logger = nil
			tt.cfg.ConfigDir = t.TempDir()

			err := Init(tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Init() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if Logger != nil {
					t.Error("Logger set despite invalid level")
				}
				return
			}
			if got := Logger.GetLevel().String(); got != tt.want {
				t.Errorf("level = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestForTagsComponent(t *testing.T) {
	Logger = nil
	For("tracker").Error("dropped before Init")

	configDir := t.TempDir()
	if err := Init(Config{ConfigDir: configDir, Medium: "sqlite"}); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	For("tracker").Warn("Failed to persist state", "key", "dailycheck_logs")

	data, err := os.ReadFile(filepath.Join(configDir, constants.LogDirName, constants.LogFileName))
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	out := string(data)
	for _, want := range []string{"component=tracker", "medium=sqlite", "key=dailycheck_logs", "pid="} {
		if !strings.Contains(out, want) {
			t.Errorf("log line missing %q: %s", want, out)
		}
	}
	if strings.Contains(out, "dropped before Init") {
		t.Error("message logged before Init reached the file")
	}
}
