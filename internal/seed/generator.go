package seed

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/julianstephens/dailycheck/internal/models"
	"github.com/julianstephens/dailycheck/internal/utils"
)

// NewRand returns a generator for seed; seed 0 picks a time-based seed.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// Habits materialises the profile's habits relative to now.
func Habits(p Profile, now time.Time) []models.Habit {
	habits := make([]models.Habit, 0, len(p.Habits))
	for _, h := range p.Habits {
		habits = append(habits, h.Habit(now))
	}
	return habits
}

// Generate returns the profile's habits and a randomised completion history.
func Generate(p Profile, now time.Time, rng *rand.Rand) ([]models.Habit, []models.HabitLog) {
	habits := Habits(p, now)
	return habits, GenerateLogs(p, habits, now, rng)
}

// GenerateLogs fakes history for the given habits. Only habits that appear in
// the profile get logs; each past day up to the window is one Bernoulli trial.
// Today is never logged.
func GenerateLogs(p Profile, habits []models.Habit, now time.Time, rng *rand.Rand) []models.HabitLog {
	if rng == nil {
		rng = NewRand(0)
	}

	today := utils.Today(now)
	var logs []models.HabitLog

	for _, habit := range habits {
		hs, ok := p.Lookup(habit.ID)
		if !ok {
			continue
		}

		daysBack, err := utils.DaysBetween(habit.CreatedAt, today)
		if err != nil || daysBack <= 0 {
			continue
		}
		days := min(daysBack, p.WindowDays)

		for i := days; i >= 1; i-- {
			date := utils.DayOffset(now, -i)
			if rng.Float64() >= hs.Probability {
				continue
			}
			logs = append(logs, models.HabitLog{
				ID:        fmt.Sprintf("log-%s-%s", habit.ID, date),
				HabitID:   habit.ID,
				Date:      date,
				Completed: true,
				LoggedAt:  date + "T" + p.LogTime,
			})
		}
	}

	return logs
}

