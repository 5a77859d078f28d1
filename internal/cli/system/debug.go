package system

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/julianstephens/dailycheck/internal/cli"
)

type DebugCmd struct {
	DBPath    DebugDBPathCmd    `cmd:"" name:"db-path" help:"Show data store path."`
	Dump      DebugDumpCmd      `cmd:"" help:"Dump a raw storage entry as JSON."`
	DumpHabit DebugDumpHabitCmd `cmd:"" help:"Dump a habit and its logs as JSON."`
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *cli.Context) error {
	output := map[string]string{
		"path": ctx.Store.GetConfigPath(),
	}

	jsonBytes, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}

	fmt.Println(string(jsonBytes))
	return nil
}

type DebugDumpCmd struct {
	Key string `arg:"" optional:"" help:"Storage key to dump (default: list keys)."`
}

func (cmd *DebugDumpCmd) Run(ctx *cli.Context) error {
	// Pending tracker writes must be visible in the raw entries
	if err := ctx.Tracker.Flush(); err != nil {
		return err
	}

	if cmd.Key == "" {
		keys, err := ctx.Store.Keys()
		if err != nil {
			return fmt.Errorf("failed to list keys: %w", err)
		}
		for _, key := range keys {
			fmt.Println(key)
		}
		return nil
	}

	value, ok, err := ctx.Store.Get(cmd.Key)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", cmd.Key, err)
	}
	if !ok {
		return fmt.Errorf("entry not found: %s", cmd.Key)
	}

	var out bytes.Buffer
	if err := json.Indent(&out, value, "", "  "); err != nil {
		return fmt.Errorf("entry %s is not valid JSON: %w", cmd.Key, err)
	}
	fmt.Println(out.String())
	return nil
}

type DebugDumpHabitCmd struct {
	Habit string `arg:"" help:"Habit id or name."`
}

func (cmd *DebugDumpHabitCmd) Run(ctx *cli.Context) error {
	habit, err := ctx.ResolveHabit(cmd.Habit)
	if err != nil {
		return err
	}

	output := struct {
		Habit any `json:"habit"`
		Stats any `json:"stats"`
		Logs  any `json:"logs"`
	}{
		Habit: habit,
		Stats: ctx.Tracker.Stats(habit.ID),
		Logs:  ctx.Tracker.GetLogsForHabit(habit.ID),
	}

	jsonBytes, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal habit: %w", err)
	}

	fmt.Println(string(jsonBytes))
	return nil
}
