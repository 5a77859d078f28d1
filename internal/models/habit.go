package models

// Habit is a user-defined recurring goal with a daily task
type Habit struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Icon        string   `json:"icon"`
	DailyTask   string   `json:"dailyTask"`
	TargetValue *float64 `json:"targetValue,omitempty"`
	Unit        string   `json:"unit,omitempty"`
	CreatedAt   string   `json:"createdAt"` // YYYY-MM-DD format
}

// HabitLog records a habit being completed on a calendar day.
// A log's existence marks completion; Completed=false is treated as not completed.
type HabitLog struct {
	ID        string `json:"id"`
	HabitID   string `json:"habitId"`
	Date      string `json:"date"` // YYYY-MM-DD format
	Completed bool   `json:"completed"`
	Note      string `json:"note,omitempty"`
	LoggedAt  string `json:"loggedAt"`
}

// HabitInput holds the fields a caller supplies when creating a habit.
// ID and CreatedAt are assigned by the tracker.
type HabitInput struct {
	Name        string
	Description string
	Category    string
	Icon        string
	DailyTask   string
	TargetValue *float64
	Unit        string
}

// HabitPatch is a partial update; nil fields are left untouched.
type HabitPatch struct {
	Name        *string
	Description *string
	Category    *string
	Icon        *string
	DailyTask   *string
	TargetValue *float64
	Unit        *string
	// ClearTarget removes TargetValue and Unit
	ClearTarget bool
}

// IsEmpty reports whether the patch changes nothing
func (p HabitPatch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.Category == nil && p.Icon == nil &&
		p.DailyTask == nil && p.TargetValue == nil && p.Unit == nil && !p.ClearTarget
}

// Apply merges the patch into h. ID and CreatedAt are never modified.
func (p HabitPatch) Apply(h Habit) Habit {
	if p.Name != nil {
		h.Name = *p.Name
	}
	if p.Description != nil {
		h.Description = *p.Description
	}
	if p.Category != nil {
		h.Category = *p.Category
	}
	if p.Icon != nil {
		h.Icon = *p.Icon
	}
	if p.DailyTask != nil {
		h.DailyTask = *p.DailyTask
	}
	if p.ClearTarget {
		h.TargetValue = nil
		h.Unit = ""
	}
	if p.TargetValue != nil {
		v := *p.TargetValue
		h.TargetValue = &v
	}
	if p.Unit != nil {
		h.Unit = *p.Unit
	}
	return h
}

// Target formats the quantitative target for display, e.g. "30 min"
func (h Habit) Target() string {
	if h.TargetValue == nil {
		return ""
	}
	v := formatNumber(*h.TargetValue)
	if h.Unit == "" {
		return v
	}
	return v + " " + h.Unit
}
