package tracker

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/julianstephens/dailycheck/internal/models"
	"github.com/julianstephens/dailycheck/internal/storage"
	"github.com/julianstephens/dailycheck/internal/utils"
)

var fixedNow = time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time {
	return c.now
}

type harness struct {
	tracker *Tracker
	store   *storage.MemoryStore
	clock   *testClock
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func newHarness(t *testing.T, opts ...Option) *harness {
	t.Helper()

	store := storage.NewMemoryStore()
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}

	clock := &testClock{now: fixedNow}
	base := []Option{
		WithClock(clock.Now),
		WithIDs(sequentialIDs()),
		WithoutDemoData(),
	}
	tr := New(store, append(base, opts...)...)
	if err := tr.Load(); err != nil {
		t.Fatalf("failed to load tracker: %v", err)
	}

	return &harness{tracker: tr, store: store, clock: clock}
}

// day returns the date n days before fixedNow.
func day(n int) string {
	return utils.DayOffset(fixedNow, -n)
}

// addHabitAged creates a habit whose createdAt is daysAgo days before fixedNow.
func (h *harness) addHabitAged(t *testing.T, name string, daysAgo int) models.Habit {
	t.Helper()

	h.clock.now = fixedNow.AddDate(0, 0, -daysAgo)
	defer func() { h.clock.now = fixedNow }()

	habit, err := h.tracker.AddHabit(models.HabitInput{Name: name})
	if err != nil {
		t.Fatalf("AddHabit() error = %v", err)
	}
	return habit
}

func (h *harness) complete(t *testing.T, habitID string, daysAgo ...int) {
	t.Helper()
	for _, n := range daysAgo {
		done, err := h.tracker.ToggleLog(habitID, day(n))
		if err != nil {
			t.Fatalf("ToggleLog() error = %v", err)
		}
		if !done {
			t.Fatalf("ToggleLog(%s, %s) un-completed an existing log", habitID, day(n))
		}
	}
}

// failingStore fails every Put once armed.
type failingStore struct {
	*storage.MemoryStore
	fail bool
}

var errDiskFull = errors.New("disk full")

func (s *failingStore) Put(key string, value []byte) error {
	if s.fail {
		return errDiskFull
	}
	return s.MemoryStore.Put(key, value)
}
