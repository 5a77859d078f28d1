package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateAddHabit:
		content = m.form.View()
	case StateEditNote:
		content = m.viewNote()
	default:
		content = m.checklist.View()
	}

	var status string
	if m.status != "" {
		status = dangerStyle.Render(m.status)
	}

	return docStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewHeader(),
		content,
		status,
		m.help.View(m.keys),
	))
}

func (m Model) viewHeader() string {
	done, total := m.dayProgress()
	pct := 0
	if total > 0 {
		pct = (done*100 + total/2) / total
	}

	label := m.date
	if m.date == m.tracker.Today() {
		label = "Today · " + m.date
	}

	parts := []string{
		headerStyle.Render(label),
		progressStyle.Render(fmt.Sprintf("%d/%d · %d%%", done, total, pct)),
	}
	if user := m.tracker.User(); user != nil {
		parts = append(parts, mutedStyle.Render(user.Name))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m Model) viewNote() string {
	name := m.noteHabitID
	if h, ok := m.tracker.GetHabit(m.noteHabitID); ok {
		name = h.Name
	}
	return fmt.Sprintf("\nNote for %s on %s\n\n%s\n\n%s",
		name, m.date, m.noteInput.View(), mutedStyle.Render("enter to save · esc to cancel"))
}
