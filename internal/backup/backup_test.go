package backup

import (
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/dailycheck/internal/constants"
	"github.com/julianstephens/dailycheck/internal/storage"
	"github.com/julianstephens/dailycheck/internal/storage/sqlite"
)

func setupSQLiteStore(t *testing.T, habits string) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "dailycheck.db")

	store := sqlite.NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init sqlite store: %v", err)
	}
	if err := store.Put(constants.HabitsKey, []byte(habits)); err != nil {
		t.Fatalf("failed to write habits: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatal(err)
	}
	return dbPath
}

func setupJSONStore(t *testing.T, habits string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dailycheck.json")

	store := storage.NewJSONStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init json store: %v", err)
	}
	if err := store.Put(constants.HabitsKey, []byte(habits)); err != nil {
		t.Fatalf("failed to write habits: %v", err)
	}
	return path
}

func readSQLiteHabits(t *testing.T, path string) string {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	var value string
	if err := db.QueryRow("SELECT value FROM kv WHERE key = ?", constants.HabitsKey).Scan(&value); err != nil {
		t.Fatalf("failed to read habits from %s: %v", path, err)
	}
	return value
}

func readJSONHabits(t *testing.T, path string) string {
	t.Helper()
	store := storage.NewJSONStore(path)
	if err := store.Load(); err != nil {
		t.Fatal(err)
	}
	v, _, err := store.Get(constants.HabitsKey)
	if err != nil {
		t.Fatal(err)
	}
	return string(v)
}

// steppingClock advances one minute per call
func steppingClock(start time.Time) func() time.Time {
	next := start
	return func() time.Time {
		t := next
		next = next.Add(time.Minute)
		return t
	}
}

func TestCreateBackupSQLite(t *testing.T) {
	dbPath := setupSQLiteStore(t, `[{"id":"h1","name":"Read"}]`)

	mgr := NewManager(dbPath)
	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup() error = %v", err)
	}

	if filepath.Dir(backupPath) != filepath.Join(filepath.Dir(dbPath), "backups") {
		t.Errorf("backup written outside the backup dir: %s", backupPath)
	}
	if !strings.HasPrefix(filepath.Base(backupPath), "dailycheck-") || !strings.HasSuffix(backupPath, ".db") {
		t.Errorf("unexpected backup name %s", backupPath)
	}
	if got := readSQLiteHabits(t, backupPath); got != `[{"id":"h1","name":"Read"}]` {
		t.Errorf("backup habits = %s", got)
	}
}

func TestCreateBackupJSON(t *testing.T) {
	path := setupJSONStore(t, `[{"id":"h1","name":"Read"}]`)

	mgr := NewManager(path)
	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup() error = %v", err)
	}
	if !strings.HasSuffix(backupPath, ".json") {
		t.Errorf("unexpected backup name %s", backupPath)
	}
	if err := verifyJSON(backupPath); err != nil {
		t.Errorf("backup is not a valid data file: %v", err)
	}
}

func TestCreateBackupMissingStore(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "missing.db"))
	if _, err := mgr.CreateBackup(); err == nil {
		t.Fatal("expected error for missing data store")
	}
}

func TestBackupRotation(t *testing.T) {
	dbPath := setupJSONStore(t, `[]`)
	mgr := NewManager(dbPath)
	mgr.now = steppingClock(time.Date(2024, 3, 1, 8, 0, 0, 0, time.Local))

	var newest string
	for i := 0; i < constants.MaxBackups+5; i++ {
		p, err := mgr.CreateBackup()
		if err != nil {
			t.Fatalf("CreateBackup() #%d error = %v", i, err)
		}
		newest = p
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != constants.MaxBackups {
		t.Fatalf("kept %d backups, want %d", len(backups), constants.MaxBackups)
	}
	if backups[0].Path != newest {
		t.Errorf("newest backup = %s, want %s", backups[0].Path, newest)
	}
}

func TestListBackups(t *testing.T) {
	dbPath := setupSQLiteStore(t, `[]`)
	mgr := NewManager(dbPath)

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups() error = %v", err)
	}
	if len(backups) != 0 {
		t.Fatalf("expected no backups, got %d", len(backups))
	}

	mgr.now = steppingClock(time.Date(2024, 3, 1, 8, 0, 0, 0, time.Local))
	for i := 0; i < 3; i++ {
		if _, err := mgr.CreateBackup(); err != nil {
			t.Fatal(err)
		}
	}

	// Foreign files are ignored
	for _, name := range []string{"notes.txt", "dailycheck-garbage.db", "dailycheck-20240301-080000.json"} {
		if err := os.WriteFile(filepath.Join(mgr.GetBackupDir(), name), []byte("x"), 0600); err != nil {
			t.Fatal(err)
		}
	}

	backups, err = mgr.ListBackups()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 3 {
		t.Fatalf("expected 3 backups, got %d", len(backups))
	}
	for i := 1; i < len(backups); i++ {
		if backups[i].Timestamp.After(backups[i-1].Timestamp) {
			t.Error("backups not sorted newest first")
		}
	}
}

func TestUniqueBackupFilenames(t *testing.T) {
	dbPath := setupJSONStore(t, `[]`)
	mgr := NewManager(dbPath)
	fixed := time.Date(2024, 3, 1, 8, 0, 0, 0, time.Local)
	mgr.now = func() time.Time { return fixed }

	seen := map[string]bool{}
	for i := 0; i < 3; i++ {
		p, err := mgr.CreateBackup()
		if err != nil {
			t.Fatal(err)
		}
		if seen[p] {
			t.Fatalf("duplicate backup path %s", p)
		}
		seen[p] = true
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 3 {
		t.Errorf("counter-suffixed backups not listed: %d", len(backups))
	}
}

func TestRestoreBackupSQLite(t *testing.T) {
	dbPath := setupSQLiteStore(t, `["before"]`)
	mgr := NewManager(dbPath)
	mgr.now = steppingClock(time.Date(2024, 3, 1, 8, 0, 0, 0, time.Local))

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatal(err)
	}

	store := sqlite.NewStore(dbPath)
	if err := store.Load(); err != nil {
		t.Fatal(err)
	}
	if err := store.Put(constants.HabitsKey, []byte(`["after"]`)); err != nil {
		t.Fatal(err)
	}
	store.Close()

	safety, err := mgr.RestoreBackup(backupPath)
	if err != nil {
		t.Fatalf("RestoreBackup() error = %v", err)
	}

	if got := readSQLiteHabits(t, dbPath); got != `["before"]` {
		t.Errorf("restored habits = %s, want [\"before\"]", got)
	}
	if safety == "" {
		t.Fatal("expected a safety copy of the current store")
	}
	if got := readSQLiteHabits(t, safety); got != `["after"]` {
		t.Errorf("safety copy habits = %s, want [\"after\"]", got)
	}
}

func TestRestoreBackupJSON(t *testing.T) {
	path := setupJSONStore(t, `["before"]`)
	mgr := NewManager(path)
	mgr.now = steppingClock(time.Date(2024, 3, 1, 8, 0, 0, 0, time.Local))

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatal(err)
	}

	store := storage.NewJSONStore(path)
	if err := store.Load(); err != nil {
		t.Fatal(err)
	}
	if err := store.Put(constants.HabitsKey, []byte(`["after"]`)); err != nil {
		t.Fatal(err)
	}

	if _, err := mgr.RestoreBackup(backupPath); err != nil {
		t.Fatalf("RestoreBackup() error = %v", err)
	}
	if got := readJSONHabits(t, path); got != `["before"]` {
		t.Errorf("restored habits = %s", got)
	}
}

func TestRestoreRejectsInvalidBackup(t *testing.T) {
	tests := []struct {
		name    string
		store   func(t *testing.T) string
		content string
	}{
		{"sqlite garbage", func(t *testing.T) string { return setupSQLiteStore(t, `[]`) }, "not a database"},
		{"json garbage", func(t *testing.T) string { return setupJSONStore(t, `[]`) }, "{broken"},
		{"json wrong shape", func(t *testing.T) string { return setupJSONStore(t, `[]`) }, `{"habits":[]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dbPath := tt.store(t)
			mgr := NewManager(dbPath)

			bad := filepath.Join(t.TempDir(), "bad"+filepath.Ext(dbPath))
			if err := os.WriteFile(bad, []byte(tt.content), 0600); err != nil {
				t.Fatal(err)
			}

			if _, err := mgr.RestoreBackup(bad); err == nil {
				t.Fatal("expected error restoring invalid backup")
			}

			backups, _ := mgr.ListBackups()
			if len(backups) != 0 {
				t.Error("safety copy taken for a rejected restore")
			}
		})
	}
}

func TestRestoreMissingBackup(t *testing.T) {
	mgr := NewManager(setupJSONStore(t, `[]`))
	if _, err := mgr.RestoreBackup(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected error for missing backup")
	}
}
