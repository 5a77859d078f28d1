package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

const jsonStoreVersion = 1

type document struct {
	Version int                        `json:"version"`
	Entries map[string]json.RawMessage `json:"entries"`
}

// JSONStore keeps every entry in a single JSON file, rewritten on each change.
type JSONStore struct {
	path string
	doc  *document
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Init is idempotent: an existing file is loaded rather than clobbered
	if _, err := os.Stat(s.path); err == nil {
		return s.Load()
	}

	s.doc = &document{
		Version: jsonStoreVersion,
		Entries: make(map[string]json.RawMessage),
	}

	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNotInitialized
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	doc := &document{}
	if err := json.Unmarshal(data, doc); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}
	if doc.Version > jsonStoreVersion {
		return fmt.Errorf("storage version (%d) is newer than supported version (%d) - please upgrade the application", doc.Version, jsonStoreVersion)
	}
	if doc.Entries == nil {
		doc.Entries = make(map[string]json.RawMessage)
	}
	// The file is indented; entries are held compact
	for key, raw := range doc.Entries {
		value, err := compactRaw(raw)
		if err != nil {
			return fmt.Errorf("failed to parse entry %s: %w", key, err)
		}
		doc.Entries[key] = value
	}

	s.doc = doc
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

// save writes a temp file and renames it over the store
func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) Get(key string) ([]byte, bool, error) {
	if s.doc == nil {
		return nil, false, ErrNotLoaded
	}

	raw, ok := s.doc.Entries[key]
	if !ok {
		return nil, false, nil
	}

	out := make([]byte, len(raw))
	copy(out, raw)
	return out, true, nil
}

func (s *JSONStore) Put(key string, value []byte) error {
	if s.doc == nil {
		return ErrNotLoaded
	}
	raw, err := compactRaw(value)
	if err != nil {
		return fmt.Errorf("value for %s is not valid JSON: %w", key, err)
	}

	s.doc.Entries[key] = raw
	return s.save()
}

func compactRaw(value []byte) (json.RawMessage, error) {
	var buf bytes.Buffer
	if err := json.Compact(&buf, value); err != nil {
		return nil, err
	}
	return json.RawMessage(buf.Bytes()), nil
}

func (s *JSONStore) Delete(key string) error {
	if s.doc == nil {
		return ErrNotLoaded
	}

	if _, ok := s.doc.Entries[key]; !ok {
		return nil
	}
	delete(s.doc.Entries, key)
	return s.save()
}

func (s *JSONStore) Keys() ([]string, error) {
	if s.doc == nil {
		return nil, ErrNotLoaded
	}

	keys := make([]string, 0, len(s.doc.Entries))
	for k := range s.doc.Entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
