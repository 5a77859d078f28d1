package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func compact(t *testing.T, raw []byte) string {
	t.Helper()
	var b bytes.Buffer
	if err := json.Compact(&b, raw); err != nil {
		t.Fatalf("invalid JSON %q: %v", raw, err)
	}
	return b.String()
}

func TestProviders(t *testing.T) {
	providers := map[string]func(t *testing.T) Provider{
		"memory": func(t *testing.T) Provider { return NewMemoryStore() },
		"json": func(t *testing.T) Provider {
			return NewJSONStore(filepath.Join(t.TempDir(), "nested", "dailycheck.json"))
		},
	}

	for name, newProvider := range providers {
		t.Run(name, func(t *testing.T) {
			p := newProvider(t)

			if _, _, err := p.Get("k"); !errors.Is(err, ErrNotLoaded) {
				t.Errorf("Get before Init error = %v, want %v", err, ErrNotLoaded)
			}
			if err := p.Init(); err != nil {
				t.Fatalf("Init failed: %v", err)
			}

			if _, ok, err := p.Get("dailycheck_user"); err != nil || ok {
				t.Fatalf("expected missing entry, got ok=%v err=%v", ok, err)
			}

			if err := p.Put("dailycheck_user", []byte(`null`)); err != nil {
				t.Fatalf("Put failed: %v", err)
			}
			if err := p.Put("dailycheck_habits", []byte(`[{"id":"h1"}]`)); err != nil {
				t.Fatalf("Put failed: %v", err)
			}

			value, ok, err := p.Get("dailycheck_habits")
			if err != nil || !ok {
				t.Fatalf("Get failed: ok=%v err=%v", ok, err)
			}
			if got := compact(t, value); got != `[{"id":"h1"}]` {
				t.Errorf("Get() = %s", got)
			}

			// callers must not be able to mutate stored bytes
			value[0] = 'x'
			again, _, _ := p.Get("dailycheck_habits")
			if again[0] != '[' {
				t.Error("Get returned a shared buffer")
			}

			keys, err := p.Keys()
			if err != nil {
				t.Fatalf("Keys failed: %v", err)
			}
			if len(keys) != 2 || keys[0] != "dailycheck_habits" || keys[1] != "dailycheck_user" {
				t.Errorf("Keys() = %v", keys)
			}

			if err := p.Delete("dailycheck_user"); err != nil {
				t.Fatalf("Delete failed: %v", err)
			}
			if err := p.Delete("missing"); err != nil {
				t.Errorf("Delete of a missing key failed: %v", err)
			}
			if _, ok, _ := p.Get("dailycheck_user"); ok {
				t.Error("entry still present after Delete")
			}

			if err := p.Close(); err != nil {
				t.Errorf("Close failed: %v", err)
			}
		})
	}
}

func TestJSONStoreReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dailycheck.json")

	s := NewJSONStore(path)
	if err := s.Load(); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("Load before Init error = %v, want %v", err, ErrNotInitialized)
	}
	if err := s.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if err := s.Put("dailycheck_logs", []byte(`[{"id":"l1","completed":true}]`)); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("store file missing: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("store file mode = %o, want 600", perm)
	}

	reopened := NewJSONStore(path)
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	value, ok, err := reopened.Get("dailycheck_logs")
	if err != nil || !ok {
		t.Fatalf("Get after reopen failed: ok=%v err=%v", ok, err)
	}
	if got := compact(t, value); got != `[{"id":"l1","completed":true}]` {
		t.Errorf("value after reopen = %s", got)
	}

	// Init on an existing file keeps its entries
	if err := NewJSONStore(path).Init(); err != nil {
		t.Fatalf("second Init failed: %v", err)
	}
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if _, ok, _ := reopened.Get("dailycheck_logs"); !ok {
		t.Error("Init must not drop existing entries")
	}
}

func TestJSONStoreKeepsEntryBytes(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{"array", `["before"]`, `["before"]`},
		{"objects", `[{"id":"h1","name":"Read","targetValue":20}]`, `[{"id":"h1","name":"Read","targetValue":20}]`},
		{"indented input", "[\n  \"a\",\n  \"b\"\n]", `["a","b"]`},
		{"null", `null`, `null`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "dailycheck.json")
			s := NewJSONStore(path)
			if err := s.Init(); err != nil {
				t.Fatalf("Init failed: %v", err)
			}
			if err := s.Put("dailycheck_habits", []byte(tt.value)); err != nil {
				t.Fatalf("Put failed: %v", err)
			}

			before, _, err := s.Get("dailycheck_habits")
			if err != nil {
				t.Fatalf("Get failed: %v", err)
			}
			if string(before) != tt.want {
				t.Errorf("Get before reopen = %q, want %q", before, tt.want)
			}

			reopened := NewJSONStore(path)
			if err := reopened.Load(); err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			after, ok, err := reopened.Get("dailycheck_habits")
			if err != nil || !ok {
				t.Fatalf("Get after reopen failed: ok=%v err=%v", ok, err)
			}
			if string(after) != tt.want {
				t.Errorf("Get after reopen = %q, want %q", after, tt.want)
			}
		})
	}
}

func TestJSONStoreRejects(t *testing.T) {
	dir := t.TempDir()

	s := NewJSONStore(filepath.Join(dir, "ok.json"))
	if err := s.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if err := s.Put("k", []byte(`{not json`)); err == nil {
		t.Error("expected error for invalid JSON value")
	}

	newer := filepath.Join(dir, "newer.json")
	if err := os.WriteFile(newer, []byte(`{"version":99,"entries":{}}`), 0600); err != nil {
		t.Fatal(err)
	}
	if err := NewJSONStore(newer).Load(); err == nil {
		t.Error("expected error for a newer storage version")
	}

	corrupt := filepath.Join(dir, "corrupt.json")
	if err := os.WriteFile(corrupt, []byte(`garbage`), 0600); err != nil {
		t.Fatal(err)
	}
	if err := NewJSONStore(corrupt).Load(); err == nil {
		t.Error("expected error for a corrupt file")
	}
}
