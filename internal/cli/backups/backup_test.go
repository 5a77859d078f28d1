package backups

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/dailycheck/internal/backup"
	"github.com/julianstephens/dailycheck/internal/cli"
	"github.com/julianstephens/dailycheck/internal/models"
	"github.com/julianstephens/dailycheck/internal/storage"
	"github.com/julianstephens/dailycheck/internal/tracker"
)

var testNow = time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)

func openContext(t *testing.T, path string) *cli.Context {
	t.Helper()

	store := storage.NewJSONStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	tr := tracker.New(store,
		tracker.WithClock(func() time.Time { return testNow }),
		tracker.WithoutDemoData(),
	)
	if err := tr.Load(); err != nil {
		t.Fatalf("failed to load tracker: %v", err)
	}
	return &cli.Context{Store: store, Tracker: tr}
}

func TestBackupCreateListRestore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dailycheck.json")
	ctx := openContext(t, path)

	if _, err := ctx.Tracker.AddHabit(models.HabitInput{Name: "Reading"}); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := (&BackupCreateCmd{}).Run(ctx); err != nil {
		t.Fatalf("backup create failed: %v", err)
	}
	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Fatalf("backup list failed: %v", err)
	}

	backups, err := backup.NewManager(path).ListBackups()
	if err != nil || len(backups) != 1 {
		t.Fatalf("expected one backup, got %d (err %v)", len(backups), err)
	}

	if _, err := ctx.Tracker.AddHabit(models.HabitInput{Name: "Running"}); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	restore := &BackupRestoreCmd{BackupFile: filepath.Base(backups[0].Path), Yes: true}
	if err := restore.Run(ctx); err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if !ctx.Detached {
		t.Error("restore must detach the tracker")
	}

	reopened := openContext(t, path)
	habits := reopened.Tracker.Habits()
	if len(habits) != 1 || habits[0].Name != "Reading" {
		t.Errorf("restored habits = %+v, want only Reading", habits)
	}
}

func TestBackupRestoreMissingFile(t *testing.T) {
	ctx := openContext(t, filepath.Join(t.TempDir(), "dailycheck.json"))

	err := (&BackupRestoreCmd{BackupFile: "nope.json", Yes: true}).Run(ctx)
	if err == nil {
		t.Fatal("expected error for missing backup")
	}
	if ctx.Detached {
		t.Error("failed lookup must not detach the tracker")
	}
}

func TestBackupRequiresFileMedium(t *testing.T) {
	store := storage.NewMemoryStore()
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	tr := tracker.New(store, tracker.WithoutDemoData())
	if err := tr.Load(); err != nil {
		t.Fatalf("failed to load tracker: %v", err)
	}
	ctx := &cli.Context{Store: store, Tracker: tr}

	if err := (&BackupCreateCmd{}).Run(ctx); !errors.Is(err, cli.ErrNotFileMedium) {
		t.Errorf("expected ErrNotFileMedium, got %v", err)
	}
}
