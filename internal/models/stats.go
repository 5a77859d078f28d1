package models

import "strconv"

// Summary is the dashboard overview across all habits
type Summary struct {
	Today          string `json:"today"`
	TodayCompleted int    `json:"today_completed"`
	TodayTotal     int    `json:"today_total"`
	TodayPct       int    `json:"today_pct"`
	TotalLogs      int    `json:"total_logs"`
	LongestStreak  int    `json:"longest_streak"`
	AverageRate30  int    `json:"average_rate_30"`
	AverageRate7   int    `json:"average_rate_7"`
}

// DayPoint is one day of a daily completion series
type DayPoint struct {
	Date      string `json:"date"`
	Completed int    `json:"completed"`
	Total     int    `json:"total"`
	Pct       int    `json:"pct"`
}

// WeekPoint is one 7-day bucket of a weekly completion series.
// Index 0 is the bucket ending today.
type WeekPoint struct {
	Index     int    `json:"index"`
	Start     string `json:"start"`
	End       string `json:"end"`
	Completed int    `json:"completed"`
	Possible  int    `json:"possible"`
	Pct       int    `json:"pct"`
}

// HeatCell is one calendar day of a month heatmap
type HeatCell struct {
	Day       int     `json:"day"`
	Date      string  `json:"date"`
	Completed int     `json:"completed"`
	Ratio     float64 `json:"ratio"`
	Future    bool    `json:"future"`
}

// HabitStats bundles the per-habit derived metrics
type HabitStats struct {
	HabitID   string `json:"habit_id"`
	Streak    int    `json:"streak"`
	Rate      int    `json:"rate"`
	Rate7     int    `json:"rate_7"`
	TotalLogs int    `json:"total_logs"`
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
