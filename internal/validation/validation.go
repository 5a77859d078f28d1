package validation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/julianstephens/dailycheck/internal/models"
	"github.com/julianstephens/dailycheck/internal/utils"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictDuplicateHabitID   ConflictType = "duplicate_habit_id"
	ConflictDuplicateHabitName ConflictType = "duplicate_habit_name"
	ConflictDuplicateLogID     ConflictType = "duplicate_log_id"
	ConflictDuplicateLog       ConflictType = "duplicate_log"
	ConflictOrphanLog          ConflictType = "orphan_log"
	ConflictInvalidDate        ConflictType = "invalid_date"
	ConflictFutureDate         ConflictType = "future_date"
	ConflictIncompleteLog      ConflictType = "incomplete_log"
)

// Conflict represents a detected problem in the stored habits or logs
type Conflict struct {
	Type        ConflictType
	Description string
	Date        string   // YYYY-MM-DD format (if applicable)
	HabitIDs    []string // habits involved (for auto-fixing)
	LogIDs      []string
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// FixAction represents an action taken during auto-fix
type FixAction struct {
	Action         string
	SourceConflict Conflict
}

func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// Count returns the number of conflicts of the given type
func (vr *ValidationResult) Count(t ConflictType) int {
	n := 0
	for _, c := range vr.Conflicts {
		if c.Type == t {
			n++
		}
	}
	return n
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, conflict := range vr.Conflicts {
		fmt.Fprintf(&b, "- %s\n", conflict.Description)
	}
	return b.String()
}

type Validator struct{}

func New() *Validator {
	return &Validator{}
}

// Validate checks habits and logs against the store invariants. today is the
// current calendar date (YYYY-MM-DD); dates after it are reported.
func (v *Validator) Validate(habits []models.Habit, logs []models.HabitLog, today string) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	habitIDs := make(map[string]int)
	names := make(map[string][]string)
	for _, h := range habits {
		habitIDs[h.ID]++
		if h.Name != "" {
			key := strings.ToLower(h.Name)
			names[key] = append(names[key], h.ID)
		}

		if !utils.ValidateDate(h.CreatedAt) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidDate,
				Description: fmt.Sprintf("Habit %q has invalid createdAt: %q", h.Name, h.CreatedAt),
				HabitIDs:    []string{h.ID},
			})
		} else if h.CreatedAt > today {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictFutureDate,
				Description: fmt.Sprintf("Habit %q was created in the future (%s)", h.Name, h.CreatedAt),
				Date:        h.CreatedAt,
				HabitIDs:    []string{h.ID},
			})
		}
	}

	for _, id := range sortedKeys(habitIDs) {
		if habitIDs[id] > 1 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateHabitID,
				Description: fmt.Sprintf("Habit id %q is used %d times", id, habitIDs[id]),
				HabitIDs:    []string{id},
			})
		}
	}

	for _, name := range sortedKeys(names) {
		if ids := names[name]; len(ids) > 1 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateHabitName,
				Description: fmt.Sprintf("Duplicate habit name: %q (IDs: %v)", name, ids),
				HabitIDs:    ids,
			})
		}
	}

	logIDs := make(map[string]int)
	pairs := make(map[string][]string)
	orphans := make(map[string][]string)
	for _, l := range logs {
		logIDs[l.ID]++
		pair := l.HabitID + "|" + l.Date
		pairs[pair] = append(pairs[pair], l.ID)

		if habitIDs[l.HabitID] == 0 {
			orphans[l.HabitID] = append(orphans[l.HabitID], l.ID)
		}

		if !utils.ValidateDate(l.Date) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidDate,
				Description: fmt.Sprintf("Log %s has invalid date: %q", l.ID, l.Date),
				HabitIDs:    []string{l.HabitID},
				LogIDs:      []string{l.ID},
			})
		} else if l.Date > today {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictFutureDate,
				Description: fmt.Sprintf("Log %s is dated in the future (%s)", l.ID, l.Date),
				Date:        l.Date,
				HabitIDs:    []string{l.HabitID},
				LogIDs:      []string{l.ID},
			})
		}

		if !l.Completed {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictIncompleteLog,
				Description: fmt.Sprintf("Log %s is stored with completed=false and is ignored", l.ID),
				Date:        l.Date,
				HabitIDs:    []string{l.HabitID},
				LogIDs:      []string{l.ID},
			})
		}
	}

	for _, id := range sortedKeys(logIDs) {
		if logIDs[id] > 1 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateLogID,
				Description: fmt.Sprintf("Log id %q is used %d times", id, logIDs[id]),
				LogIDs:      []string{id},
			})
		}
	}

	for _, pair := range sortedKeys(pairs) {
		if ids := pairs[pair]; len(ids) > 1 {
			habitID, date, _ := strings.Cut(pair, "|")
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateLog,
				Description: fmt.Sprintf("Habit %s has %d logs on %s", habitID, len(ids), date),
				Date:        date,
				HabitIDs:    []string{habitID},
				LogIDs:      ids,
			})
		}
	}

	for _, habitID := range sortedKeys(orphans) {
		ids := orphans[habitID]
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictOrphanLog,
			Description: fmt.Sprintf("%d log(s) reference missing habit %q", len(ids), habitID),
			HabitIDs:    []string{habitID},
			LogIDs:      ids,
		})
	}

	return result
}

// AutoFixOrphanLogs removes logs that reference missing habits. deleteFunc
// receives the missing habit id; deleting a habit cascades to its logs.
func AutoFixOrphanLogs(conflicts []Conflict, deleteFunc func(habitID string) error) []FixAction {
	var actions []FixAction

	for _, conflict := range conflicts {
		if conflict.Type != ConflictOrphanLog {
			continue
		}
		for _, habitID := range conflict.HabitIDs {
			if err := deleteFunc(habitID); err != nil {
				actions = append(actions, FixAction{
					Action:         fmt.Sprintf("Failed to remove logs for missing habit %q: %v", habitID, err),
					SourceConflict: conflict,
				})
				continue
			}
			actions = append(actions, FixAction{
				Action:         fmt.Sprintf("Removed %d log(s) for missing habit %q", len(conflict.LogIDs), habitID),
				SourceConflict: conflict,
			})
		}
	}

	return actions
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
