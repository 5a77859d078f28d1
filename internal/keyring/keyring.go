package keyring

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/dailycheck/internal/constants"
)

var (
	// ErrNotFound is returned when no connection string is stored
	ErrNotFound = errors.New("no connection string in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring cannot be reached
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
	// ErrEmpty is returned when storing a blank connection string
	ErrEmpty = errors.New("connection string cannot be empty")
)

// Status is what dailycheck can see of its keyring entry.
type Status struct {
	Available bool
	Stored    bool
	// Err is set when the keyring could not be read
	Err error
}

// GetConnectionString returns the PostgreSQL connection string stored for dailycheck.
func GetConnectionString() (string, error) {
	connStr, err := keyring.Get(constants.AppName, constants.DefaultKeyringUser)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return connStr, nil
}

// SetConnectionString stores connStr, trimmed, replacing any previous entry.
func SetConnectionString(connStr string) error {
	connStr = strings.TrimSpace(connStr)
	if connStr == "" {
		return ErrEmpty
	}
	if err := keyring.Set(constants.AppName, constants.DefaultKeyringUser, connStr); err != nil {
		return fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return nil
}

func DeleteConnectionString() error {
	if err := keyring.Delete(constants.AppName, constants.DefaultKeyringUser); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return nil
}

// CurrentStatus reads the dailycheck entry once and reports what it found.
func CurrentStatus() Status {
	_, err := GetConnectionString()
	switch {
	case err == nil:
		return Status{Available: true, Stored: true}
	case errors.Is(err, ErrNotFound):
		return Status{Available: true}
	default:
		return Status{Err: err}
	}
}
