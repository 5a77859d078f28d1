package habits

import (
	"testing"
)

func TestCheckCmd_Toggles(t *testing.T) {
	ctx := setupTestContext(t)
	if err := (&HabitAddCmd{Name: "Reading"}).Run(ctx); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	habit, _ := ctx.ResolveHabit("Reading")

	check := &CheckCmd{Habit: "Reading", Date: "yesterday"}
	if err := check.Run(ctx); err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if !ctx.Tracker.IsCompleted(habit.ID, "2024-03-14") {
		t.Fatal("expected yesterday to be completed")
	}

	if err := check.Run(ctx); err != nil {
		t.Fatalf("second check failed: %v", err)
	}
	if ctx.Tracker.IsCompleted(habit.ID, "2024-03-14") {
		t.Error("expected second check to clear the log")
	}
}

func TestCheckCmd_RejectsBadDates(t *testing.T) {
	ctx := setupTestContext(t)
	if err := (&HabitAddCmd{Name: "Reading"}).Run(ctx); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	tests := []struct {
		name string
		date string
	}{
		{name: "future", date: "2024-03-16"},
		{name: "malformed", date: "15/03/2024"},
		{name: "impossible", date: "2024-02-30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := (&CheckCmd{Habit: "Reading", Date: tt.date}).Run(ctx); err == nil {
				t.Errorf("expected error for date %q", tt.date)
			}
		})
	}

	if len(ctx.Tracker.Logs()) != 0 {
		t.Error("rejected dates must not create logs")
	}
}

func TestNoteCmd(t *testing.T) {
	ctx := setupTestContext(t)
	if err := (&HabitAddCmd{Name: "Reading"}).Run(ctx); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	habit, _ := ctx.ResolveHabit("Reading")

	if err := (&NoteCmd{Habit: "Reading", Text: "too early"}).Run(ctx); err == nil {
		t.Error("expected error when the day is not checked")
	}

	if err := (&CheckCmd{Habit: habit.ID}).Run(ctx); err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if err := (&NoteCmd{Habit: habit.ID, Text: "chapter 3"}).Run(ctx); err != nil {
		t.Fatalf("note failed: %v", err)
	}

	l, ok := ctx.Tracker.LogFor(habit.ID, "2024-03-15")
	if !ok || l.Note != "chapter 3" {
		t.Errorf("note not stored: %+v", l)
	}
}
