package lock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/dailycheck/internal/constants"
	"github.com/julianstephens/dailycheck/internal/logger"
)

var findProcessFunc = ps.FindProcess

// ErrLocked means another live dailycheck process holds the lock
var ErrLocked = errors.New("another dailycheck process is using this data store")

// Lock is a held lockfile. The file contains "<pid>|<executable>".
type Lock struct {
	path string
	pid  int
}

// Path returns the lockfile location for a config directory
func Path(configDir string) string {
	return filepath.Join(configDir, constants.LockfileName)
}

// Acquire takes the lockfile at path, replacing it when the recorded
// process is no longer running.
func Acquire(path string) (*Lock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}

	pid := os.Getpid()
	content := fmt.Sprintf("%d|%s", pid, executableName())

	for attempt := 0; attempt < 2; attempt++ {
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
		if err == nil {
			_, werr := f.WriteString(content)
			cerr := f.Close()
			if werr != nil || cerr != nil {
				os.Remove(path)
				return nil, fmt.Errorf("failed to write lockfile: %w", errors.Join(werr, cerr))
			}
			return &Lock{path: path, pid: pid}, nil
		}
		if !os.IsExist(err) {
			return nil, fmt.Errorf("failed to create lockfile: %w", err)
		}

		held, err := isHeld(path, pid)
		if err != nil {
			return nil, err
		}
		if held {
			return nil, ErrLocked
		}

		logger.For("lock").Warn("Removing stale lockfile", "path", path)
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to remove stale lockfile: %w", err)
		}
	}

	return nil, ErrLocked
}

// isHeld reports whether the lockfile names a live process other than self.
// Unreadable or malformed lockfiles count as stale.
func isHeld(path string, self int) (bool, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read lockfile: %w", err)
	}

	parts := strings.SplitN(strings.TrimSpace(string(content)), "|", 2)
	pid, err := strconv.Atoi(parts[0])
	if err != nil || pid <= 0 {
		return false, nil
	}
	if pid == self {
		return false, nil
	}

	process, err := findProcessFunc(pid)
	if err != nil || process == nil {
		return false, nil
	}

	// A recycled pid belonging to something else is not a holder
	if len(parts) == 2 && parts[1] != "" && process.Executable() != parts[1] {
		return false, nil
	}

	return true, nil
}

// Release removes the lockfile if this process still owns it.
func (l *Lock) Release() error {
	if l == nil {
		return nil
	}

	content, err := os.ReadFile(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read lockfile: %w", err)
	}

	parts := strings.SplitN(strings.TrimSpace(string(content)), "|", 2)
	if pid, err := strconv.Atoi(parts[0]); err != nil || pid != l.pid {
		logger.For("lock").Warn("Lockfile owned by another process, leaving it in place", "path", l.path)
		return nil
	}

	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove lockfile: %w", err)
	}
	return nil
}

func executableName() string {
	exe, err := os.Executable()
	if err != nil {
		return constants.AppName
	}
	return filepath.Base(exe)
}
