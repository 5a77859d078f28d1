package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/dailycheck/internal/models"
)

// NewHabitForm creates the add-habit form
func NewHabitForm(fm *HabitFormModel, exists func(name string) bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&fm.Name).
				Validate(func(s string) error {
					s = strings.TrimSpace(s)
					if s == "" {
						return fmt.Errorf("name is required")
					}
					if exists(s) {
						return fmt.Errorf("a habit named %q already exists", s)
					}
					return nil
				}),
			huh.NewInput().
				Title("Description").
				Value(&fm.Description),
			huh.NewInput().
				Title("Daily task").
				Description("e.g. Read 30 minutes").
				Value(&fm.DailyTask),
			huh.NewInput().
				Title("Category").
				Value(&fm.Category),
			huh.NewInput().
				Title("Icon").
				Value(&fm.Icon),
			huh.NewInput().
				Title("Target").
				Description("Optional daily amount").
				Value(&fm.Target).
				Validate(validateTarget),
			huh.NewInput().
				Title("Unit").
				Value(&fm.Unit),
		),
	).WithTheme(huh.ThemeDracula())
}

func validateTarget(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("target must be a number")
	}
	if v < 0 {
		return fmt.Errorf("target must not be negative")
	}
	return nil
}

// Input converts the form values into a habit input
func (fm HabitFormModel) Input() models.HabitInput {
	in := models.HabitInput{
		Name:        strings.TrimSpace(fm.Name),
		Description: strings.TrimSpace(fm.Description),
		Category:    strings.TrimSpace(fm.Category),
		Icon:        strings.TrimSpace(fm.Icon),
		DailyTask:   strings.TrimSpace(fm.DailyTask),
	}
	if v, err := strconv.ParseFloat(strings.TrimSpace(fm.Target), 64); err == nil {
		in.TargetValue = &v
		in.Unit = strings.TrimSpace(fm.Unit)
	}
	return in
}
