package stats

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/dailycheck/internal/cli"
)

type MetricsCmd struct {
	Daily   MetricsDailyCmd   `cmd:"" help:"Daily completion percentage."`
	Weekly  MetricsWeeklyCmd  `cmd:"" help:"Weekly completion percentage."`
	Heatmap MetricsHeatmapCmd `cmd:"" help:"Monthly completion heatmap."`
}

type MetricsDailyCmd struct {
	Days  int    `help:"Number of days to show." default:"30"`
	Habit string `help:"Restrict to one habit (id or name)."`
}

func (c *MetricsDailyCmd) Run(ctx *cli.Context) error {
	habitID, err := resolveOptionalHabit(ctx, c.Habit)
	if err != nil {
		return err
	}

	for _, p := range ctx.Tracker.DailySeries(c.Days, habitID) {
		fmt.Printf("%s %s %3d%%  (%d/%d)\n", p.Date, bar(p.Pct), p.Pct, p.Completed, p.Total)
	}
	return nil
}

type MetricsWeeklyCmd struct {
	Weeks int    `help:"Number of 7-day buckets to show." default:"4"`
	Habit string `help:"Restrict to one habit (id or name)."`
}

func (c *MetricsWeeklyCmd) Run(ctx *cli.Context) error {
	habitID, err := resolveOptionalHabit(ctx, c.Habit)
	if err != nil {
		return err
	}

	for _, p := range ctx.Tracker.WeeklySeries(c.Weeks, habitID) {
		fmt.Printf("%s..%s %s %3d%%  (%d/%d)\n", p.Start[5:], p.End[5:], bar(p.Pct), p.Pct, p.Completed, p.Possible)
	}
	return nil
}

type MetricsHeatmapCmd struct {
	Month string `help:"Month in YYYY-MM format (default: current month)." default:""`
}

func (c *MetricsHeatmapCmd) Run(ctx *cli.Context) error {
	now := ctx.Tracker.Now()
	year, month := now.Year(), now.Month()
	if c.Month != "" {
		t, err := time.Parse("2006-01", c.Month)
		if err != nil {
			return fmt.Errorf("invalid month format: %s (expected YYYY-MM)", c.Month)
		}
		year, month = t.Year(), t.Month()
	}

	fmt.Print(renderHeatmap(ctx, year, month))
	return nil
}

func renderHeatmap(ctx *cli.Context, year int, month time.Month) string {
	cells := ctx.Tracker.MonthHeatmap(year, month)
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)

	var b strings.Builder
	b.WriteString(headerStyle.Render(first.Format("January 2006")))
	b.WriteString("\n Mo Tu We Th Fr Sa Su\n")

	// Monday-first offset
	offset := (int(first.Weekday()) + 6) % 7
	b.WriteString(strings.Repeat("   ", offset))

	for i, cell := range cells {
		label := fmt.Sprintf("%3d", cell.Day)
		switch {
		case cell.Future:
			b.WriteString(mutedStyle.Render(label))
		default:
			b.WriteString(heatStyles[heatLevel(cell.Ratio)].Render(label))
		}
		if (offset+i+1)%7 == 0 {
			b.WriteString("\n")
		}
	}
	if (offset+len(cells))%7 != 0 {
		b.WriteString("\n")
	}
	return b.String()
}

func resolveOptionalHabit(ctx *cli.Context, ref string) (string, error) {
	if ref == "" {
		return "", nil
	}
	habit, err := ctx.ResolveHabit(ref)
	if err != nil {
		return "", err
	}
	return habit.ID, nil
}
