package tracker

import (
	"github.com/julianstephens/dailycheck/internal/constants"
	"github.com/julianstephens/dailycheck/internal/models"
	"github.com/julianstephens/dailycheck/internal/utils"
)

// AddHabit appends a new habit created today.
func (t *Tracker) AddHabit(in models.HabitInput) (models.Habit, error) {
	if !t.loaded {
		return models.Habit{}, ErrNotLoaded
	}

	h := cloneHabit(models.Habit{
		ID:          t.newID(),
		Name:        in.Name,
		Description: in.Description,
		Category:    in.Category,
		Icon:        in.Icon,
		DailyTask:   in.DailyTask,
		TargetValue: in.TargetValue,
		Unit:        in.Unit,
		CreatedAt:   t.Today(),
	})
	t.habits = append(t.habits, h)
	t.log().Debug("Added habit", "habit_id", h.ID, "name", h.Name)

	return cloneHabit(h), t.saveHabits()
}

// UpdateHabit merges patch into the habit with the given id.
// An unknown id is a no-op.
func (t *Tracker) UpdateHabit(id string, patch models.HabitPatch) error {
	if !t.loaded {
		return ErrNotLoaded
	}

	idx := t.habitIndex(id)
	if idx < 0 {
		t.log().Debug("Update of unknown habit ignored", "habit_id", id)
		return nil
	}
	if patch.IsEmpty() {
		return nil
	}

	t.habits[idx] = patch.Apply(t.habits[idx])
	t.log().Debug("Updated habit", "habit_id", id)

	return t.saveHabits()
}

// DeleteHabit removes the habit and every log that references it.
func (t *Tracker) DeleteHabit(id string) error {
	if !t.loaded {
		return ErrNotLoaded
	}

	habits := make([]models.Habit, 0, len(t.habits))
	for _, h := range t.habits {
		if h.ID != id {
			habits = append(habits, h)
		}
	}

	logs := make([]models.HabitLog, 0, len(t.logs))
	for _, l := range t.logs {
		if l.HabitID != id {
			logs = append(logs, l)
		}
	}

	removedHabit := len(habits) != len(t.habits)
	removedLogs := len(t.logs) - len(logs)
	if !removedHabit && removedLogs == 0 {
		t.log().Debug("Delete of unknown habit ignored", "habit_id", id)
		return nil
	}

	t.habits = habits
	t.logs = logs
	t.log().Debug("Deleted habit", "habit_id", id, "logs_removed", removedLogs)

	var habitsErr error
	if removedHabit {
		habitsErr = t.saveHabits()
	}
	if err := t.saveLogs(); err != nil {
		return err
	}
	return habitsErr
}

// ToggleLog flips completion of a habit on a date and returns the new state.
// Un-completing removes the log record entirely.
func (t *Tracker) ToggleLog(habitID, date string) (bool, error) {
	if !t.loaded {
		return false, ErrNotLoaded
	}
	if t.futureGuard && utils.IsFuture(date, t.now()) {
		return false, ErrFutureDate
	}

	if _, ok := t.LogFor(habitID, date); ok {
		logs := make([]models.HabitLog, 0, len(t.logs))
		for _, l := range t.logs {
			if l.HabitID != habitID || l.Date != date {
				logs = append(logs, l)
			}
		}
		t.logs = logs
		t.log().Debug("Removed log", "habit_id", habitID, "date", date)
		return false, t.saveLogs()
	}

	l := models.HabitLog{
		ID:        t.newID(),
		HabitID:   habitID,
		Date:      date,
		Completed: true,
		LoggedAt:  t.now().Format(constants.TimestampFormat),
	}
	t.logs = append(t.logs, l)
	t.log().Debug("Added log", "habit_id", habitID, "date", date, "log_id", l.ID)

	return true, t.saveLogs()
}

// AddNote attaches a note to the log for (habitID, date).
// Days without a log cannot be annotated and are left unchanged.
func (t *Tracker) AddNote(habitID, date, note string) error {
	if !t.loaded {
		return ErrNotLoaded
	}

	found := false
	for i := range t.logs {
		if t.logs[i].HabitID == habitID && t.logs[i].Date == date {
			t.logs[i].Note = note
			found = true
		}
	}
	if !found {
		t.log().Debug("Note for missing log ignored", "habit_id", habitID, "date", date)
		return nil
	}

	t.log().Debug("Added note", "habit_id", habitID, "date", date)
	return t.saveLogs()
}

func (t *Tracker) habitIndex(id string) int {
	for i, h := range t.habits {
		if h.ID == id {
			return i
		}
	}
	return -1
}
