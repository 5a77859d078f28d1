package habits

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/julianstephens/dailycheck/internal/cli"
	"github.com/julianstephens/dailycheck/internal/models"
	"github.com/julianstephens/dailycheck/internal/utils"
)

type HabitCmd struct {
	Add    HabitAddCmd    `cmd:"" help:"Add a new habit."`
	Edit   HabitEditCmd   `cmd:"" help:"Edit an existing habit."`
	Delete HabitDeleteCmd `cmd:"" help:"Delete a habit and all of its logs."`
	List   HabitListCmd   `cmd:"" help:"List habits."`
	Show   HabitShowCmd   `cmd:"" help:"Show a habit with its statistics."`
	Log    HabitLogCmd    `cmd:"" help:"Show habit log (ASCII history)."`
}

type HabitAddCmd struct {
	Name        string   `arg:"" help:"Habit name."`
	Description string   `help:"What the habit is for."`
	Category    string   `help:"Category, e.g. Health or Learning."`
	Icon        string   `help:"Icon shown next to the habit."`
	Task        string   `help:"The concrete daily task, e.g. 'Read 30 minutes'."`
	Target      *float64 `help:"Quantitative daily target."`
	Unit        string   `help:"Unit for the target, e.g. min."`
}

func (c *HabitAddCmd) Run(ctx *cli.Context) error {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return fmt.Errorf("habit name cannot be empty")
	}
	if _, ok := ctx.Tracker.FindHabitByName(name); ok {
		return fmt.Errorf("habit with name %q already exists", name)
	}
	if c.Target != nil && *c.Target < 0 {
		return fmt.Errorf("target must not be negative")
	}

	habit, err := ctx.Tracker.AddHabit(models.HabitInput{
		Name:        name,
		Description: c.Description,
		Category:    c.Category,
		Icon:        c.Icon,
		DailyTask:   c.Task,
		TargetValue: c.Target,
		Unit:        c.Unit,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Added habit: %s (%s)\n", habit.Name, habit.ID)
	return nil
}

type HabitEditCmd struct {
	Habit       string   `arg:"" help:"Habit id or name."`
	Name        *string  `help:"New name."`
	Description *string  `help:"New description."`
	Category    *string  `help:"New category."`
	Icon        *string  `help:"New icon."`
	Task        *string  `help:"New daily task."`
	Target      *float64 `help:"New quantitative target."`
	Unit        *string  `help:"New unit."`
	ClearTarget bool     `help:"Remove the target and unit."`
}

func (c *HabitEditCmd) Run(ctx *cli.Context) error {
	habit, err := ctx.ResolveHabit(c.Habit)
	if err != nil {
		return err
	}

	patch := models.HabitPatch{
		Name:        c.Name,
		Description: c.Description,
		Category:    c.Category,
		Icon:        c.Icon,
		DailyTask:   c.Task,
		TargetValue: c.Target,
		Unit:        c.Unit,
		ClearTarget: c.ClearTarget,
	}
	if patch.IsEmpty() {
		return fmt.Errorf("nothing to change; pass at least one field flag")
	}

	if c.Name != nil {
		newName := strings.TrimSpace(*c.Name)
		if newName == "" {
			return fmt.Errorf("habit name cannot be empty")
		}
		if other, ok := ctx.Tracker.FindHabitByName(newName); ok && other.ID != habit.ID {
			return fmt.Errorf("habit with name %q already exists", newName)
		}
		patch.Name = &newName
	}
	if c.Target != nil && *c.Target < 0 {
		return fmt.Errorf("target must not be negative")
	}

	if err := ctx.Tracker.UpdateHabit(habit.ID, patch); err != nil {
		return err
	}

	updated, _ := ctx.Tracker.GetHabit(habit.ID)
	fmt.Printf("Updated habit: %s\n", updated.Name)
	return nil
}

type HabitDeleteCmd struct {
	Habit string `arg:"" help:"Habit id or name."`
	Yes   bool   `short:"y" help:"Do not ask for confirmation."`
}

func (c *HabitDeleteCmd) Run(ctx *cli.Context) error {
	habit, err := ctx.ResolveHabit(c.Habit)
	if err != nil {
		return err
	}

	if !c.Yes {
		logCount := len(ctx.Tracker.GetLogsForHabit(habit.ID))
		fmt.Printf("Delete %q and its %d log(s)? This cannot be undone. [y/N]: ", habit.Name, logCount)

		reader := bufio.NewReader(os.Stdin)
		response, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		response = strings.TrimSpace(strings.ToLower(response))
		if response != "y" && response != "yes" {
			fmt.Println("Delete cancelled.")
			return nil
		}
	}

	if err := ctx.Tracker.DeleteHabit(habit.ID); err != nil {
		return err
	}

	fmt.Printf("Deleted habit: %s\n", habit.Name)
	return nil
}

type HabitListCmd struct{}

func (c *HabitListCmd) Run(ctx *cli.Context) error {
	habits := ctx.Tracker.Habits()
	if len(habits) == 0 {
		fmt.Println("No habits found.")
		return nil
	}

	today := ctx.Tracker.Today()
	for _, h := range habits {
		status := "[ ]"
		if ctx.Tracker.IsCompleted(h.ID, today) {
			status = "[x]"
		}
		target := ""
		if t := h.Target(); t != "" {
			target = " · " + t
		}
		fmt.Printf("%s %s %s%s  (streak %dd, %d%% 30d)  %s\n",
			status, iconOrDot(h.Icon), h.Name, target,
			ctx.Tracker.GetStreak(h.ID), ctx.Tracker.GetCompletionRate(h.ID, 0), h.ID)
	}

	return nil
}

type HabitShowCmd struct {
	Habit string `arg:"" help:"Habit id or name."`
	Days  int    `help:"Number of days of history to show." default:"14"`
}

func (c *HabitShowCmd) Run(ctx *cli.Context) error {
	habit, err := ctx.ResolveHabit(c.Habit)
	if err != nil {
		return err
	}

	fmt.Printf("%s %s\n", iconOrDot(habit.Icon), habit.Name)
	printField("ID", habit.ID)
	printField("Description", habit.Description)
	printField("Category", habit.Category)
	printField("Daily task", habit.DailyTask)
	printField("Target", habit.Target())
	printField("Created", habit.CreatedAt)

	stats := ctx.Tracker.Stats(habit.ID)
	fmt.Println()
	fmt.Printf("  Streak:        %d day(s)\n", stats.Streak)
	fmt.Printf("  Last 30 days:  %d%%\n", stats.Rate)
	fmt.Printf("  Last 7 days:   %d%%\n", stats.Rate7)
	fmt.Printf("  Total logs:    %d\n", stats.TotalLogs)

	days := max(c.Days, 1)
	fmt.Printf("\nLast %d days:\n", days)
	now := ctx.Tracker.Now()
	for i := days - 1; i >= 0; i-- {
		date := utils.DayOffset(now, -i)
		l, ok := ctx.Tracker.LogFor(habit.ID, date)
		if !ok || !l.Completed {
			fmt.Printf("  %s  .\n", date)
			continue
		}
		if l.Note != "" {
			fmt.Printf("  %s  x  %s\n", date, l.Note)
		} else {
			fmt.Printf("  %s  x\n", date)
		}
	}

	return nil
}

type HabitLogCmd struct {
	Days  int    `help:"Number of days to show." default:"14"`
	Habit string `help:"Show log for specific habit only."`
}

func (c *HabitLogCmd) Run(ctx *cli.Context) error {
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

	days := max(c.Days, 1)
	now := ctx.Tracker.Now()
	const nameWidth = 20

	fmt.Printf("Habit log (last %d days):\n\n", days)
	fmt.Print(strings.Repeat(" ", nameWidth))
	for i := days - 1; i >= 0; i-- {
		fmt.Printf(" %5s", utils.DayOffset(now, -i)[5:])
	}
	fmt.Println()
	fmt.Println(strings.Repeat("-", nameWidth+6*days))

	for _, habit := range selected {
		fmt.Print(fitName(habit.Name, nameWidth))
		for i := days - 1; i >= 0; i-- {
			if ctx.Tracker.IsCompleted(habit.ID, utils.DayOffset(now, -i)) {
				fmt.Print("   x  ")
			} else {
				fmt.Print("   .  ")
			}
		}
		fmt.Println()
	}

	return nil
}

func printField(label, value string) {
	if value == "" {
		return
	}
	fmt.Printf("  %-12s %s\n", label+":", value)
}

func iconOrDot(icon string) string {
	if icon == "" {
		return "•"
	}
	return icon
}

// fitName truncates or pads name to width runes
func fitName(name string, width int) string {
	r := []rune(name)
	if len(r) > width {
		return string(r[:width-3]) + "..."
	}
	return name + strings.Repeat(" ", width-len(r))
}
