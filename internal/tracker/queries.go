package tracker

import (
	"math"
	"strings"

	"github.com/julianstephens/dailycheck/internal/constants"
	"github.com/julianstephens/dailycheck/internal/models"
	"github.com/julianstephens/dailycheck/internal/utils"
)

// Habits returns the habits in display order.
func (t *Tracker) Habits() []models.Habit {
	out := make([]models.Habit, len(t.habits))
	for i, h := range t.habits {
		out[i] = cloneHabit(h)
	}
	return out
}

// Logs returns every stored log, including any loaded with Completed=false.
func (t *Tracker) Logs() []models.HabitLog {
	out := make([]models.HabitLog, len(t.logs))
	copy(out, t.logs)
	return out
}

func (t *Tracker) GetHabit(id string) (models.Habit, bool) {
	if idx := t.habitIndex(id); idx >= 0 {
		return cloneHabit(t.habits[idx]), true
	}
	return models.Habit{}, false
}

// FindHabitByName matches exactly first, then case-insensitively.
func (t *Tracker) FindHabitByName(name string) (models.Habit, bool) {
	for _, h := range t.habits {
		if h.Name == name {
			return cloneHabit(h), true
		}
	}
	for _, h := range t.habits {
		if strings.EqualFold(h.Name, name) {
			return cloneHabit(h), true
		}
	}
	return models.Habit{}, false
}

// LogFor returns the log recorded for a habit on a date, completed or not.
func (t *Tracker) LogFor(habitID, date string) (models.HabitLog, bool) {
	for _, l := range t.logs {
		if l.HabitID == habitID && l.Date == date {
			return l, true
		}
	}
	return models.HabitLog{}, false
}

func (t *Tracker) IsCompleted(habitID, date string) bool {
	for _, l := range t.logs {
		if l.HabitID == habitID && l.Date == date && l.Completed {
			return true
		}
	}
	return false
}

// GetLogsForDate returns the completed logs for a date in store order.
func (t *Tracker) GetLogsForDate(date string) []models.HabitLog {
	var out []models.HabitLog
	for _, l := range t.logs {
		if l.Date == date && l.Completed {
			out = append(out, l)
		}
	}
	return out
}

// GetLogsForHabit returns the completed logs for a habit in store order.
func (t *Tracker) GetLogsForHabit(habitID string) []models.HabitLog {
	var out []models.HabitLog
	for _, l := range t.logs {
		if l.HabitID == habitID && l.Completed {
			out = append(out, l)
		}
	}
	return out
}

// GetStreak counts consecutive completed days ending today. An unchecked
// today does not break the run; the scan is capped at a year.
func (t *Tracker) GetStreak(habitID string) int {
	if t.habitIndex(habitID) < 0 {
		return 0
	}

	done := t.completedDates(habitID)
	now := t.now()
	streak := 0
	for i := 0; i < constants.StreakScanDays; i++ {
		if done[utils.DayOffset(now, -i)] {
			streak++
		} else if i > 0 {
			break
		}
	}
	return streak
}

// GetCompletionRate is the rounded percentage of completed days among the
// last min(days, habit age) days, today excluded. days <= 0 selects 30.
func (t *Tracker) GetCompletionRate(habitID string, days int) int {
	if days <= 0 {
		days = constants.DefaultRateWindow
	}

	idx := t.habitIndex(habitID)
	if idx < 0 {
		return 0
	}

	now := t.now()
	age, err := utils.DaysBetween(t.habits[idx].CreatedAt, utils.Today(now))
	if err != nil {
		return 0
	}
	elapsed := min(days, age)
	if elapsed <= 0 {
		return 0
	}

	done := t.completedDates(habitID)
	completed := 0
	for i := 1; i <= elapsed; i++ {
		if done[utils.DayOffset(now, -i)] {
			completed++
		}
	}
	return roundPercent(completed, elapsed)
}

// Stats bundles the per-habit numbers shown next to each habit.
func (t *Tracker) Stats(habitID string) models.HabitStats {
	return models.HabitStats{
		HabitID:   habitID,
		Streak:    t.GetStreak(habitID),
		Rate:      t.GetCompletionRate(habitID, constants.DefaultRateWindow),
		Rate7:     t.GetCompletionRate(habitID, constants.WeekDays),
		TotalLogs: len(t.GetLogsForHabit(habitID)),
	}
}

func (t *Tracker) completedDates(habitID string) map[string]bool {
	done := make(map[string]bool)
	for _, l := range t.logs {
		if l.HabitID == habitID && l.Completed {
			done[l.Date] = true
		}
	}
	return done
}

// roundPercent rounds part/whole*100 half up. Returns 0 when whole is 0.
func roundPercent(part, whole int) int {
	if whole <= 0 {
		return 0
	}
	return int(math.Floor(float64(part)/float64(whole)*100 + 0.5))
}

func roundMean(sum, n int) int {
	if n <= 0 {
		return 0
	}
	return int(math.Floor(float64(sum)/float64(n) + 0.5))
}
