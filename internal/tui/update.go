package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.checklist.SetSize(msg.Width-docStyle.GetHorizontalFrameSize(), msg.Height-docStyle.GetVerticalFrameSize()-4)
		return m, nil
	}

	switch m.state {
	case StateAddHabit:
		return m.updateAddHabit(msg)
	case StateEditNote:
		return m.updateEditNote(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Toggle):
			m.toggleSelected()
			return m, nil
		case key.Matches(msg, m.keys.PrevDay):
			m.shiftDay(-1)
			return m, nil
		case key.Matches(msg, m.keys.NextDay):
			m.shiftDay(1)
			return m, nil
		case key.Matches(msg, m.keys.Today):
			m.date = m.tracker.Today()
			m.refresh()
			return m, nil
		case key.Matches(msg, m.keys.Note):
			return m.startNote()
		case key.Matches(msg, m.keys.Add):
			m.habitForm = &HabitFormModel{}
			m.form = NewHabitForm(m.habitForm, func(name string) bool {
				_, ok := m.tracker.FindHabitByName(name)
				return ok
			})
			m.state = StateAddHabit
			return m, m.form.Init()
		}
	}

	var cmd tea.Cmd
	m.checklist, cmd = m.checklist.Update(msg)
	return m, cmd
}

func (m *Model) toggleSelected() {
	item, ok := m.checklist.Selected()
	if !ok {
		return
	}
	if _, err := m.tracker.ToggleLog(item.Habit.ID, m.date); err != nil {
		m.status = err.Error()
	} else {
		m.status = ""
	}
	m.refresh()
}

func (m Model) startNote() (tea.Model, tea.Cmd) {
	item, ok := m.checklist.Selected()
	if !ok {
		return m, nil
	}
	if !item.Done {
		m.status = "Check the habit before adding a note"
		return m, nil
	}

	m.noteHabitID = item.Habit.ID
	m.noteInput.SetValue(item.Note)
	m.noteInput.CursorEnd()
	cmd := m.noteInput.Focus()
	m.state = StateEditNote
	m.status = ""
	return m, cmd
}

func (m Model) updateEditNote(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyEsc:
			m.noteInput.Blur()
			m.state = StateList
			return m, nil
		case tea.KeyEnter:
			if err := m.tracker.AddNote(m.noteHabitID, m.date, m.noteInput.Value()); err != nil {
				m.status = err.Error()
			}
			m.noteInput.Blur()
			m.state = StateList
			m.refresh()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.noteInput, cmd = m.noteInput.Update(msg)
	return m, cmd
}

func (m Model) updateAddHabit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = StateList
		return m, nil
	}

	var cmds []tea.Cmd
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	cmds = append(cmds, cmd)

	switch m.form.State {
	case huh.StateCompleted:
		if _, err := m.tracker.AddHabit(m.habitForm.Input()); err != nil {
			// Stay in the form so the user can retry or cancel with ESC
			m.status = err.Error()
			m.form.State = huh.StateNormal
			break
		}
		m.status = ""
		m.state = StateList
		m.refresh()
	case huh.StateAborted:
		m.state = StateList
	}
	return m, tea.Batch(cmds...)
}
