package tracker

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/julianstephens/dailycheck/internal/constants"
	"github.com/julianstephens/dailycheck/internal/logger"
	"github.com/julianstephens/dailycheck/internal/models"
	"github.com/julianstephens/dailycheck/internal/seed"
	"github.com/julianstephens/dailycheck/internal/storage"
	"github.com/julianstephens/dailycheck/internal/utils"
)

var (
	// ErrNotLoaded is returned by mutations issued before Load
	ErrNotLoaded = errors.New("tracker not loaded")
	// ErrFutureDate is returned by ToggleLog for dates after today when the guard is enabled
	ErrFutureDate = errors.New("cannot log a date in the future")
)

// PersistenceError reports a failure of the durable medium.
// The in-memory state has already been updated when it is returned.
type PersistenceError struct {
	Key string
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Key, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Tracker owns the user, habit and log partitions and writes every change
// through to its storage provider.
type Tracker struct {
	provider storage.Provider

	now   func() time.Time
	newID func() string

	profile     seed.Profile
	rng         *rand.Rand
	demo        bool
	futureGuard bool

	loaded bool
	user   *models.User
	habits []models.Habit
	logs   []models.HabitLog
}

type Option func(*Tracker)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) {
		t.now = now
	}
}

// WithIDs replaces the uuid generator used for new habits and logs.
func WithIDs(newID func() string) Option {
	return func(t *Tracker) {
		t.newID = newID
	}
}

// WithSeed sets the demo profile and random source used on first load.
func WithSeed(profile seed.Profile, rng *rand.Rand) Option {
	return func(t *Tracker) {
		t.profile = profile
		t.rng = rng
	}
}

// WithoutDemoData starts empty stores with no habits or logs.
func WithoutDemoData() Option {
	return func(t *Tracker) {
		t.demo = false
	}
}

// WithFutureDateGuard makes ToggleLog reject dates after today.
func WithFutureDateGuard() Option {
	return func(t *Tracker) {
		t.futureGuard = true
	}
}

func New(provider storage.Provider, opts ...Option) *Tracker {
	t := &Tracker{
		provider: provider,
		now:      time.Now,
		newID:    uuid.NewString,
		profile:  seed.DefaultProfile(),
		demo:     true,
		habits:   []models.Habit{},
		logs:     []models.HabitLog{},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Load reads the three partitions from the provider, which must already be
// open. Missing habits and logs are seeded from the demo profile.
func (t *Tracker) Load() error {
	var user *models.User
	userFound, err := t.get(constants.UserKey, &user)
	if err != nil {
		return err
	}

	var habits []models.Habit
	habitsFound, err := t.get(constants.HabitsKey, &habits)
	if err != nil {
		return err
	}
	if !habitsFound && t.demo {
		habits = seed.Habits(t.profile, t.now())
		t.log().Debug("Seeded demo habits", "count", len(habits))
	}

	var logs []models.HabitLog
	logsFound, err := t.get(constants.LogsKey, &logs)
	if err != nil {
		return err
	}
	if !logsFound && t.demo {
		if t.rng == nil {
			t.rng = seed.NewRand(0)
		}
		logs = seed.GenerateLogs(t.profile, habits, t.now(), t.rng)
		t.log().Debug("Seeded demo logs", "count", len(logs))
	}

	if habits == nil {
		habits = []models.Habit{}
	}
	if logs == nil {
		logs = []models.HabitLog{}
	}

	t.user = user
	t.habits = habits
	t.logs = logs
	t.loaded = true

	if !userFound {
		if err := t.saveUser(); err != nil {
			return err
		}
	}
	if !habitsFound {
		if err := t.saveHabits(); err != nil {
			return err
		}
	}
	if !logsFound {
		if err := t.saveLogs(); err != nil {
			return err
		}
	}

	return nil
}

// Loaded reports whether Load has completed
func (t *Tracker) Loaded() bool {
	return t.loaded
}

// Flush persists all three partitions.
func (t *Tracker) Flush() error {
	if !t.loaded {
		return ErrNotLoaded
	}
	return errors.Join(t.saveUser(), t.saveHabits(), t.saveLogs())
}

// Close flushes loaded state and closes the provider.
func (t *Tracker) Close() error {
	var flushErr error
	if t.loaded {
		flushErr = t.Flush()
	}
	return errors.Join(flushErr, t.provider.Close())
}

// Today is the current calendar date according to the tracker's clock
func (t *Tracker) Today() string {
	return utils.Today(t.now())
}

// Now returns the tracker's clock reading
func (t *Tracker) Now() time.Time {
	return t.now()
}

func (t *Tracker) log() *log.Logger {
	return logger.For("tracker")
}

func (t *Tracker) get(key string, v any) (bool, error) {
	data, ok, err := t.provider.Get(key)
	if err != nil {
		return false, &PersistenceError{Key: key, Op: "read", Err: err}
	}
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return true, &PersistenceError{Key: key, Op: "decode", Err: err}
	}
	return true, nil
}

func (t *Tracker) put(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return &PersistenceError{Key: key, Op: "encode", Err: err}
	}
	if err := t.provider.Put(key, data); err != nil {
		t.log().Error("Failed to persist state", "key", key, "error", err)
		return &PersistenceError{Key: key, Op: "write", Err: err}
	}
	return nil
}

func (t *Tracker) saveUser() error {
	return t.put(constants.UserKey, t.user)
}

func (t *Tracker) saveHabits() error {
	return t.put(constants.HabitsKey, t.habits)
}

func (t *Tracker) saveLogs() error {
	return t.put(constants.LogsKey, t.logs)
}

func cloneHabit(h models.Habit) models.Habit {
	if h.TargetValue != nil {
		v := *h.TargetValue
		h.TargetValue = &v
	}
	return h
}
