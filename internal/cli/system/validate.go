package system

import (
	"fmt"

	"github.com/julianstephens/dailycheck/internal/cli"
	"github.com/julianstephens/dailycheck/internal/validation"
)

type ValidateCmd struct {
	Fix bool `help:"Remove logs that reference deleted habits."`
}

func (cmd *ValidateCmd) Run(ctx *cli.Context) error {
	result := validation.New().Validate(ctx.Tracker.Habits(), ctx.Tracker.Logs(), ctx.Tracker.Today())

	if !result.HasConflicts() {
		fmt.Println("✓ No conflicts detected.")
		return nil
	}

	fmt.Print(result.FormatReport())

	if !cmd.Fix {
		if result.Count(validation.ConflictOrphanLog) > 0 {
			fmt.Println("\nRun 'dailycheck validate --fix' to remove orphaned logs.")
		}
		return fmt.Errorf("found %d conflict(s)", len(result.Conflicts))
	}

	actions := validation.AutoFixOrphanLogs(result.Conflicts, ctx.Tracker.DeleteHabit)
	if len(actions) == 0 {
		fmt.Println("\nNo automatic fixes available for the detected conflicts.")
		return fmt.Errorf("found %d conflict(s)", len(result.Conflicts))
	}

	fmt.Println("\nApplied fixes:")
	for _, action := range actions {
		fmt.Printf("  - %s\n", action.Action)
	}

	remaining := validation.New().Validate(ctx.Tracker.Habits(), ctx.Tracker.Logs(), ctx.Tracker.Today())
	if remaining.HasConflicts() {
		return fmt.Errorf("%d conflict(s) remain", len(remaining.Conflicts))
	}
	fmt.Println("✓ All conflicts resolved.")
	return nil
}
