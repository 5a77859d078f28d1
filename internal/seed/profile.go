package seed

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/dailycheck/internal/constants"
	"github.com/julianstephens/dailycheck/internal/models"
	"github.com/julianstephens/dailycheck/internal/utils"
)

// Profile describes the demo data written on first run.
type Profile struct {
	// WindowDays caps how many days back logs are generated
	WindowDays int `yaml:"window_days"`

	// LogTime is the wall-clock time (HH:MM:SS) stamped on generated logs
	LogTime string `yaml:"log_time"`

	Habits []HabitSeed `yaml:"habits"`
}

// HabitSeed is a demo habit plus the parameters used to fake its history.
type HabitSeed struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description,omitempty"`
	Category    string   `yaml:"category,omitempty"`
	Icon        string   `yaml:"icon,omitempty"`
	DailyTask   string   `yaml:"daily_task,omitempty"`
	TargetValue *float64 `yaml:"target_value,omitempty"`
	Unit        string   `yaml:"unit,omitempty"`

	// DaysAgo fixes createdAt relative to the day the profile is applied
	DaysAgo int `yaml:"days_ago"`

	// Probability is the chance that any given past day was completed
	Probability float64 `yaml:"probability"`
}

func target(v float64) *float64 {
	return &v
}

// DefaultProfile returns the built-in demo habits.
func DefaultProfile() Profile {
	return Profile{
		WindowDays: constants.DefaultSeedWindowDays,
		LogTime:    constants.DefaultSeedLogTime,
		Habits: []HabitSeed{
			{
				ID:          "h1",
				Name:        "Daily Reading",
				Description: "Become a habitual reader to broaden my knowledge",
				Category:    "Learning",
				Icon:        "📚",
				DailyTask:   "Read for 30 minutes",
				TargetValue: target(30),
				Unit:        "min",
				DaysAgo:     35,
				Probability: 0.82,
			},
			{
				ID:          "h2",
				Name:        "Exercise",
				Description: "Improve my fitness and overall health",
				Category:    "Health",
				Icon:        "🏃",
				DailyTask:   "Train for 45 minutes",
				TargetValue: target(45),
				Unit:        "min",
				DaysAgo:     35,
				Probability: 0.65,
			},
			{
				ID:          "h3",
				Name:        "Meditation",
				Description: "Cultivate mindfulness and reduce stress",
				Category:    "Wellbeing",
				Icon:        "🧘",
				DailyTask:   "Meditate for 10 minutes",
				TargetValue: target(10),
				Unit:        "min",
				DaysAgo:     30,
				Probability: 0.88,
			},
			{
				ID:          "h4",
				Name:        "Coding",
				Description: "Improve my programming skills",
				Category:    "Learning",
				Icon:        "💻",
				DailyTask:   "Code for 1 hour",
				TargetValue: target(60),
				Unit:        "min",
				DaysAgo:     28,
				Probability: 0.72,
			},
			{
				ID:          "h5",
				Name:        "Advanced Spanish",
				Description: "Perfect my Spanish writing and vocabulary",
				Category:    "Languages",
				Icon:        "✍️",
				DailyTask:   "Write 300 words",
				TargetValue: target(300),
				Unit:        "words",
				DaysAgo:     20,
				Probability: 0.6,
			},
		},
	}
}

// LoadProfile reads a seed profile from a YAML file.
// Missing window_days and log_time fall back to the defaults.
func LoadProfile(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("reading seed profile: %w", err)
	}

	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Profile{}, fmt.Errorf("parsing YAML: %w", err)
	}

	if p.WindowDays == 0 {
		p.WindowDays = constants.DefaultSeedWindowDays
	}
	if p.LogTime == "" {
		p.LogTime = constants.DefaultSeedLogTime
	}

	if err := p.Validate(); err != nil {
		return Profile{}, fmt.Errorf("invalid seed profile %s: %w", path, err)
	}

	return p, nil
}

// Validate checks the profile for values Generate cannot honour.
func (p Profile) Validate() error {
	if p.WindowDays < 0 {
		return fmt.Errorf("window_days must not be negative, got %d", p.WindowDays)
	}
	if _, err := time.Parse("15:04:05", p.LogTime); err != nil {
		return fmt.Errorf("log_time %q must be HH:MM:SS", p.LogTime)
	}

	seen := make(map[string]bool, len(p.Habits))
	for i, h := range p.Habits {
		if h.ID == "" {
			return fmt.Errorf("habit %d: id is required", i)
		}
		if seen[h.ID] {
			return fmt.Errorf("habit %s: duplicate id", h.ID)
		}
		seen[h.ID] = true

		if h.Name == "" {
			return fmt.Errorf("habit %s: name is required", h.ID)
		}
		if h.DaysAgo < 0 {
			return fmt.Errorf("habit %s: days_ago must not be negative, got %d", h.ID, h.DaysAgo)
		}
		if h.Probability < 0 || h.Probability > 1 {
			return fmt.Errorf("habit %s: probability must be between 0 and 1, got %v", h.ID, h.Probability)
		}
	}

	return nil
}

// Lookup returns the seed entry for a habit id
func (p Profile) Lookup(id string) (HabitSeed, bool) {
	for _, h := range p.Habits {
		if h.ID == id {
			return h, true
		}
	}
	return HabitSeed{}, false
}

// Habit converts the seed into a habit created DaysAgo days before now.
func (h HabitSeed) Habit(now time.Time) models.Habit {
	var tv *float64
	if h.TargetValue != nil {
		v := *h.TargetValue
		tv = &v
	}
	return models.Habit{
		ID:          h.ID,
		Name:        h.Name,
		Description: h.Description,
		Category:    h.Category,
		Icon:        h.Icon,
		DailyTask:   h.DailyTask,
		TargetValue: tv,
		Unit:        h.Unit,
		CreatedAt:   utils.DayOffset(now, -h.DaysAgo),
	}
}
