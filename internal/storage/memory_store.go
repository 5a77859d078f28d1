package storage

import (
	"sort"

	"github.com/julianstephens/dailycheck/internal/constants"
)

// MemoryStore is a process-local Provider. Nothing survives Close.
type MemoryStore struct {
	entries map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Init() error {
	if s.entries == nil {
		s.entries = make(map[string][]byte)
	}
	return nil
}

func (s *MemoryStore) Load() error {
	return s.Init()
}

func (s *MemoryStore) Close() error {
	return nil
}

func (s *MemoryStore) Get(key string) ([]byte, bool, error) {
	if s.entries == nil {
		return nil, false, ErrNotLoaded
	}
	v, ok := s.entries[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

func (s *MemoryStore) Put(key string, value []byte) error {
	if s.entries == nil {
		return ErrNotLoaded
	}
	v := make([]byte, len(value))
	copy(v, value)
	s.entries[key] = v
	return nil
}

func (s *MemoryStore) Delete(key string) error {
	if s.entries == nil {
		return ErrNotLoaded
	}
	delete(s.entries, key)
	return nil
}

func (s *MemoryStore) Keys() ([]string, error) {
	if s.entries == nil {
		return nil, ErrNotLoaded
	}
	keys := make([]string, 0, len(s.entries))
	for k := range s.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *MemoryStore) GetConfigPath() string {
	return constants.MemoryConfig
}
