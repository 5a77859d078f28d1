package storage

import "errors"

var (
	// ErrNotInitialized is returned by Load when the medium has never been created
	ErrNotInitialized = errors.New("storage not initialized, run 'dailycheck init' first")
	// ErrNotLoaded is returned when an entry is accessed before Init or Load
	ErrNotLoaded = errors.New("storage not loaded")
)

// Provider is the durable key-value medium behind the tracker.
// Each value is a complete JSON document; writes replace the whole entry.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Entries
	Get(key string) ([]byte, bool, error)
	Put(key string, value []byte) error
	Delete(key string) error
	Keys() ([]string, error)

	// Utils
	GetConfigPath() string
}
