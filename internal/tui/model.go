package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/dailycheck/internal/tracker"
	"github.com/julianstephens/dailycheck/internal/tui/components/checklist"
	"github.com/julianstephens/dailycheck/internal/utils"
)

type SessionState int

const (
	StateList SessionState = iota
	StateAddHabit
	StateEditNote
)

type HabitFormModel struct {
	Name        string
	Description string
	Category    string
	Icon        string
	DailyTask   string
	Target      string
	Unit        string
}

type Model struct {
	tracker     *tracker.Tracker
	state       SessionState
	date        string
	keys        KeyMap
	help        help.Model
	checklist   checklist.Model
	form        *huh.Form
	habitForm   *HabitFormModel
	noteInput   textinput.Model
	noteHabitID string
	status      string
	quitting    bool
	width       int
	height      int
}

func NewModel(t *tracker.Tracker) Model {
	ti := textinput.New()
	ti.Placeholder = "How did it go?"
	ti.CharLimit = 280

	m := Model{
		tracker:   t,
		state:     StateList,
		date:      t.Today(),
		keys:      DefaultKeyMap(),
		help:      help.New(),
		checklist: checklist.New(nil, 0, 0),
		noteInput: ti,
	}
	m.refresh()
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

// Date returns the day being checked in
func (m Model) Date() string {
	return m.date
}

// refresh rebuilds the checklist for the selected date
func (m *Model) refresh() {
	habits := m.tracker.Habits()
	items := make([]checklist.Item, len(habits))
	for i, h := range habits {
		item := checklist.Item{
			Habit:  h,
			Streak: m.tracker.GetStreak(h.ID),
			Rate:   m.tracker.GetCompletionRate(h.ID, 0),
		}
		if l, ok := m.tracker.LogFor(h.ID, m.date); ok && l.Completed {
			item.Done = true
			item.Note = l.Note
		}
		items[i] = item
	}
	m.checklist.SetItems(items)
}

// shiftDay moves the selected date by n days; days after today are not reachable
func (m *Model) shiftDay(n int) {
	next, err := utils.AddDays(m.date, n)
	if err != nil {
		return
	}
	if next > m.tracker.Today() {
		return
	}
	m.date = next
	m.refresh()
}

// dayProgress returns completed and total habits for the selected date
func (m Model) dayProgress() (int, int) {
	return len(m.tracker.GetLogsForDate(m.date)), len(m.tracker.Habits())
}
