package habits

import (
	"fmt"

	"github.com/julianstephens/dailycheck/internal/cli"
)

type CheckCmd struct {
	Habit string `arg:"" help:"Habit id or name."`
	Date  string `help:"Date in YYYY-MM-DD format (default: today)." default:""`
}

func (c *CheckCmd) Run(ctx *cli.Context) error {
	habit, err := ctx.ResolveHabit(c.Habit)
	if err != nil {
		return err
	}
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}

	done, err := ctx.Tracker.ToggleLog(habit.ID, date)
	if err != nil {
		return err
	}

	if done {
		fmt.Printf("✓ Checked %q for %s (streak %dd)\n", habit.Name, date, ctx.Tracker.GetStreak(habit.ID))
	} else {
		fmt.Printf("Unchecked %q for %s\n", habit.Name, date)
	}
	return nil
}

type NoteCmd struct {
	Habit string `arg:"" help:"Habit id or name."`
	Text  string `arg:"" help:"Reflection to attach to the day's log."`
	Date  string `help:"Date in YYYY-MM-DD format (default: today)." default:""`
}

func (c *NoteCmd) Run(ctx *cli.Context) error {
	habit, err := ctx.ResolveHabit(c.Habit)
	if err != nil {
		return err
	}
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}

	if !ctx.Tracker.IsCompleted(habit.ID, date) {
		return fmt.Errorf("%q is not checked for %s; run 'dailycheck check' first", habit.Name, date)
	}

	if err := ctx.Tracker.AddNote(habit.ID, date, c.Text); err != nil {
		return err
	}

	fmt.Printf("Saved note for %q on %s\n", habit.Name, date)
	return nil
}
