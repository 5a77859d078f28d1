package constants

import "time"

const (
	AppName            = "dailycheck"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/dailycheck/dailycheck.db"
	Version            = "v0.1.0"

	// DateFormat is the calendar date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimestampFormat is used for HabitLog.LoggedAt
	TimestampFormat = time.RFC3339

	// Storage keys, one entry per partition
	UserKey   = "dailycheck_user"
	HabitsKey = "dailycheck_habits"
	LogsKey   = "dailycheck_logs"

	// MemoryConfig selects the in-process medium
	MemoryConfig = ":memory:"

	// Session stub
	LocalUserID = "u1"

	// Derivation defaults
	StreakScanDays    = 365
	DefaultRateWindow = 30
	WeekDays          = 7

	// Demo seed defaults
	DefaultSeedWindowDays = 30
	DefaultSeedLogTime    = "20:00:00"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "dailycheck-"

	// Lock constants
	LockfileName = "dailycheck.lock"

	// Log file constants
	LogDirName      = "logs"
	LogFileName     = "dailycheck.log"
	LogMaxSizeMB    = 5
	LogMaxBackups   = 3
	LogMaxAgeDays   = 30
	DefaultLogLevel = "warn"

	// Environment
	EnvConnection = "DAILYCHECK_DB_CONNECTION"
	EnvLogLevel   = "DAILYCHECK_LOG_LEVEL"
	EnvFileName   = ".env"
)
