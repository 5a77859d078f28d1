package stats

import (
	"fmt"

	"github.com/julianstephens/dailycheck/internal/cli"
	"github.com/julianstephens/dailycheck/internal/constants"
	"github.com/julianstephens/dailycheck/internal/models"
	"github.com/julianstephens/dailycheck/internal/utils"
)

// DayCmd shows every habit's state for one day
type DayCmd struct {
	Date string `help:"Date in YYYY-MM-DD format (default: today)." default:""`
}

func (c *DayCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}

	habits := ctx.Tracker.Habits()
	if len(habits) == 0 {
		fmt.Println("No habits found.")
		return nil
	}

	done := len(ctx.Tracker.GetLogsForDate(date))
	fmt.Println(headerStyle.Render(fmt.Sprintf("%s  %d/%d done", date, done, len(habits))))

	for _, h := range habits {
		l, ok := ctx.Tracker.LogFor(h.ID, date)
		if ok && l.Completed {
			fmt.Printf("  ✓ %s", h.Name)
			if l.Note != "" {
				fmt.Printf("  %s", mutedStyle.Render(l.Note))
			}
			fmt.Println()
			continue
		}
		fmt.Printf("  ○ %s", h.Name)
		if h.DailyTask != "" {
			fmt.Printf("  %s", mutedStyle.Render(h.DailyTask))
		}
		fmt.Println()
	}

	return nil
}

// StatsCmd prints streak and completion rate for one habit or all of them
type StatsCmd struct {
	Habit string `arg:"" optional:"" help:"Habit id or name (default: all habits)."`
	Days  int    `help:"Completion rate window in days." default:"30"`
}

func (c *StatsCmd) Run(ctx *cli.Context) error {
	var selected []models.Habit
	if c.Habit != "" {
		habit, err := ctx.ResolveHabit(c.Habit)
		if err != nil {
			return err
		}
		selected = []models.Habit{habit}
	} else {
		selected = ctx.Tracker.Habits()
	}

	if len(selected) == 0 {
		fmt.Println("No habits found.")
		return nil
	}

	days := c.Days
	if days <= 0 {
		days = constants.DefaultRateWindow
	}

	fmt.Printf("%-24s %7s %6s %6s\n", "HABIT", "STREAK", fmt.Sprintf("%dD", days), "LOGS")
	for _, h := range selected {
		rate := ctx.Tracker.GetCompletionRate(h.ID, days)
		fmt.Printf("%-24s %6dd %5d%% %6d  %s\n",
			truncate(h.Name, 24),
			ctx.Tracker.GetStreak(h.ID),
			rate,
			len(ctx.Tracker.GetLogsForHabit(h.ID)),
			bar(rate))
	}

	return nil
}

// DashboardCmd prints the overview cards and the last seven days
type DashboardCmd struct{}

func (c *DashboardCmd) Run(ctx *cli.Context) error {
	s := ctx.Tracker.Summary()
	if user := ctx.Tracker.User(); user != nil {
		fmt.Println(headerStyle.Render("Hello, " + user.Name))
	}

	fmt.Printf("Today (%s):     %d/%d habits  %d%%\n", s.Today, s.TodayCompleted, s.TodayTotal, s.TodayPct)
	fmt.Printf("Best streak:       %d day(s)\n", s.LongestStreak)
	fmt.Printf("30-day average:    %d%%\n", s.AverageRate30)
	fmt.Printf("7-day average:     %d%%\n", s.AverageRate7)
	fmt.Printf("Total check-ins:   %d\n", s.TotalLogs)

	if s.TodayTotal == 0 {
		return nil
	}

	fmt.Println()
	fmt.Println(headerStyle.Render("Last 7 days"))
	for _, p := range ctx.Tracker.DailySeries(7, "") {
		fmt.Printf("  %s %s %3d%%\n", weekday(p.Date), bar(p.Pct), p.Pct)
	}
	return nil
}

func weekday(date string) string {
	t, err := utils.ParseDate(date)
	if err != nil {
		return date
	}
	return t.Format("Mon 01-02")
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-3]) + "..."
}
