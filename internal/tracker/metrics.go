package tracker

import (
	"time"

	"github.com/julianstephens/dailycheck/internal/constants"
	"github.com/julianstephens/dailycheck/internal/models"
	"github.com/julianstephens/dailycheck/internal/utils"
)

// Summary computes the dashboard overview.
func (t *Tracker) Summary() models.Summary {
	today := t.Today()
	s := models.Summary{
		Today:          today,
		TodayCompleted: len(t.GetLogsForDate(today)),
		TodayTotal:     len(t.habits),
	}
	s.TodayPct = roundPercent(s.TodayCompleted, s.TodayTotal)

	for _, l := range t.logs {
		if l.Completed {
			s.TotalLogs++
		}
	}

	sum30, sum7 := 0, 0
	for _, h := range t.habits {
		s.LongestStreak = max(s.LongestStreak, t.GetStreak(h.ID))
		sum30 += t.GetCompletionRate(h.ID, constants.DefaultRateWindow)
		sum7 += t.GetCompletionRate(h.ID, constants.WeekDays)
	}
	s.AverageRate30 = roundMean(sum30, len(t.habits))
	s.AverageRate7 = roundMean(sum7, len(t.habits))

	return s
}

// DailySeries returns one point per day for the last days days, oldest first.
// An empty habitID aggregates across all habits.
func (t *Tracker) DailySeries(days int, habitID string) []models.DayPoint {
	if days <= 0 {
		days = constants.DefaultRateWindow
	}

	now := t.now()
	counts := t.completedPerDate(habitID)
	total := t.possiblePerDay(habitID)

	points := make([]models.DayPoint, 0, days)
	for i := days - 1; i >= 0; i-- {
		date := utils.DayOffset(now, -i)
		points = append(points, models.DayPoint{
			Date:      date,
			Completed: counts[date],
			Total:     total,
			Pct:       roundPercent(counts[date], total),
		})
	}
	return points
}

// WeeklySeries buckets the last weeks*7 days into weeks ending today,
// returned oldest first.
func (t *Tracker) WeeklySeries(weeks int, habitID string) []models.WeekPoint {
	if weeks <= 0 {
		weeks = 4
	}

	now := t.now()
	counts := t.completedPerDate(habitID)
	perDay := t.possiblePerDay(habitID)

	points := make([]models.WeekPoint, weeks)
	for wi := 0; wi < weeks; wi++ {
		p := models.WeekPoint{
			Index: wi,
			Start: utils.DayOffset(now, -((wi+1)*constants.WeekDays - 1)),
			End:   utils.DayOffset(now, -wi*constants.WeekDays),
		}
		for d := wi * constants.WeekDays; d < (wi+1)*constants.WeekDays; d++ {
			p.Completed += counts[utils.DayOffset(now, -d)]
			p.Possible += perDay
		}
		p.Pct = roundPercent(p.Completed, p.Possible)
		points[weeks-1-wi] = p
	}
	return points
}

// MonthHeatmap returns one cell per calendar day of the month across all habits.
func (t *Tracker) MonthHeatmap(year int, month time.Month) []models.HeatCell {
	today := t.Today()
	counts := t.completedPerDate("")
	habitCount := len(t.habits)

	n := utils.DaysInMonth(year, month)
	cells := make([]models.HeatCell, 0, n)
	for day := 1; day <= n; day++ {
		date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Format(constants.DateFormat)
		cell := models.HeatCell{
			Day:       day,
			Date:      date,
			Completed: counts[date],
			Future:    date > today,
		}
		if habitCount > 0 {
			cell.Ratio = float64(cell.Completed) / float64(habitCount)
		}
		cells = append(cells, cell)
	}
	return cells
}

// completedPerDate counts completed logs per date, for one habit or all.
func (t *Tracker) completedPerDate(habitID string) map[string]int {
	counts := make(map[string]int)
	if habitID != "" {
		for date := range t.completedDates(habitID) {
			counts[date] = 1
		}
		return counts
	}
	for _, l := range t.logs {
		if l.Completed {
			counts[l.Date]++
		}
	}
	return counts
}

func (t *Tracker) possiblePerDay(habitID string) int {
	if habitID != "" {
		return 1
	}
	return len(t.habits)
}
