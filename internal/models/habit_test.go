package models

import (
	"encoding/json"
	"testing"
)

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func TestHabitPatchApply(t *testing.T) {
	base := Habit{
		ID:          "h1",
		Name:        "Reading",
		Description: "Read more",
		Category:    "Learning",
		Icon:        "📚",
		DailyTask:   "Read 30 minutes",
		TargetValue: floatPtr(30),
		Unit:        "min",
		CreatedAt:   "2024-01-01",
	}

	tests := []struct {
		name  string
		patch HabitPatch
		check func(t *testing.T, h Habit)
	}{
		{
			name:  "empty patch keeps habit",
			patch: HabitPatch{},
			check: func(t *testing.T, h Habit) {
				if h.Name != "Reading" || h.Target() != "30 min" {
					t.Errorf("unexpected change: %+v", h)
				}
			},
		},
		{
			name:  "rename",
			patch: HabitPatch{Name: strPtr("Deep Reading")},
			check: func(t *testing.T, h Habit) {
				if h.Name != "Deep Reading" {
					t.Errorf("expected name %q, got %q", "Deep Reading", h.Name)
				}
				if h.Description != "Read more" {
					t.Errorf("description should be unchanged, got %q", h.Description)
				}
			},
		},
		{
			name:  "change target",
			patch: HabitPatch{TargetValue: floatPtr(45), Unit: strPtr("pages")},
			check: func(t *testing.T, h Habit) {
				if h.Target() != "45 pages" {
					t.Errorf("expected target %q, got %q", "45 pages", h.Target())
				}
			},
		},
		{
			name:  "clear target",
			patch: HabitPatch{ClearTarget: true},
			check: func(t *testing.T, h Habit) {
				if h.TargetValue != nil || h.Unit != "" {
					t.Errorf("expected cleared target, got %v %q", h.TargetValue, h.Unit)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.patch.Apply(base)
			if got.ID != base.ID || got.CreatedAt != base.CreatedAt {
				t.Errorf("id/createdAt must never change: got %q %q", got.ID, got.CreatedAt)
			}
			tt.check(t, got)
		})
	}
}

func TestHabitPatchApplyDoesNotAlias(t *testing.T) {
	v := 10.0
	patch := HabitPatch{TargetValue: &v}
	h := patch.Apply(Habit{ID: "h1"})
	v = 99
	if *h.TargetValue != 10 {
		t.Errorf("patched habit aliases patch value: got %v", *h.TargetValue)
	}
}

func TestHabitPatchIsEmpty(t *testing.T) {
	if !(HabitPatch{}).IsEmpty() {
		t.Error("zero patch should be empty")
	}
	if (HabitPatch{ClearTarget: true}).IsEmpty() {
		t.Error("clear target patch should not be empty")
	}
}

func TestHabitJSONFieldNames(t *testing.T) {
	data, err := json.Marshal(HabitLog{ID: "l1", HabitID: "h1", Date: "2024-01-01", Completed: true, LoggedAt: "2024-01-01T20:00:00"})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	for _, key := range []string{"id", "habitId", "date", "completed", "loggedAt"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("expected key %q in %s", key, data)
		}
	}
	if _, ok := raw["note"]; ok {
		t.Error("empty note should be omitted")
	}
}

func TestHabitTarget(t *testing.T) {
	if got := (Habit{}).Target(); got != "" {
		t.Errorf("expected empty target, got %q", got)
	}
	if got := (Habit{TargetValue: floatPtr(2.5)}).Target(); got != "2.5" {
		t.Errorf("expected %q, got %q", "2.5", got)
	}
}
