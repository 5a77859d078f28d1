package checklist

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/dailycheck/internal/models"
)

// Item is one habit row for the selected day
type Item struct {
	Habit  models.Habit
	Done   bool
	Note   string
	Streak int
	Rate   int
}

func (i Item) Title() string {
	mark := "○"
	if i.Done {
		mark = "✓"
	}
	title := mark + " " + i.Habit.Name
	if i.Habit.Icon != "" {
		title = mark + " " + i.Habit.Icon + " " + i.Habit.Name
	}
	return title
}

func (i Item) Description() string {
	parts := []string{fmt.Sprintf("%dd streak", i.Streak), fmt.Sprintf("%d%% 30d", i.Rate)}
	if t := i.Habit.Target(); t != "" {
		parts = append(parts, t)
	}
	if i.Note != "" {
		parts = append(parts, "“"+i.Note+"”")
	} else if !i.Done && i.Habit.DailyTask != "" {
		parts = append(parts, i.Habit.DailyTask)
	}
	return strings.Join(parts, " · ")
}

func (i Item) FilterValue() string { return i.Habit.Name }

type Model struct {
	list list.Model
}

func New(items []Item, width, height int) Model {
	l := list.New(toListItems(items), list.NewDefaultDelegate(), width, height)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()

	return Model{list: l}
}

func (m *Model) SetItems(items []Item) {
	m.list.SetItems(toListItems(items))
}

// Selected returns the highlighted item
func (m Model) Selected() (Item, bool) {
	i, ok := m.list.SelectedItem().(Item)
	return i, ok
}

func (m Model) Len() int {
	return len(m.list.Items())
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return "\n  No habits yet.\n  Press 'a' to add one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}

func toListItems(items []Item) []list.Item {
	out := make([]list.Item, len(items))
	for i, it := range items {
		out[i] = it
	}
	return out
}
