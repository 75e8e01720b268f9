package tui

import "github.com/charmbracelet/lipgloss"

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateHabits:
		content = m.habitsModel.View()
	case StateReflections:
		content = m.reflectionsModel.View()
	case StateAddHabit, StateNewReflection:
		content = m.form.View()
	}

	var status string
	if m.statusMsg != "" {
		status = statusStyle.Render(m.statusMsg)
	}

	return docStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		status,
		m.help.View(m),
	))
}

func (m Model) viewTabs() string {
	habitsTab := inactiveTabStyle.Render("Habits")
	reflectionsTab := inactiveTabStyle.Render("Reflections")

	switch m.state {
	case StateHabits, StateAddHabit:
		habitsTab = activeTabStyle.Render("Habits")
	case StateReflections, StateNewReflection:
		reflectionsTab = activeTabStyle.Render("Reflections")
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, habitsTab, " ", reflectionsTab)
}
