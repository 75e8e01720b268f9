// Package habits is the habit dashboard list component.
package habits

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/momentum-app/momentum/internal/models"
)

type AddHabitMsg struct{}

type ToggleHabitMsg struct {
	ID string
}

type DeleteHabitMsg struct {
	ID string
}

type Item struct {
	Habit models.Habit
}

func (i Item) Title() string {
	mark := "○"
	if i.Habit.Completed() {
		mark = "✓"
	}
	return fmt.Sprintf("%s %s", mark, i.Habit.Name)
}

func (i Item) Description() string {
	bar := progressBar(i.Habit.Progress, i.Habit.Color)
	return fmt.Sprintf("%s · streak %d · %s", i.Habit.Category, i.Habit.Streak, bar)
}

func (i Item) FilterValue() string { return i.Habit.Name }

// progressBar renders a ten-segment bar tinted with the habit's color.
func progressBar(progress float64, color string) string {
	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}
	filled := int(progress*10 + 0.5)
	bar := strings.Repeat("█", filled) + strings.Repeat("░", 10-filled)
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(bar)
}

type KeyMap struct {
	Add    key.Binding
	Toggle key.Binding
	Delete key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "toggle"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(habits []models.Habit, width, height int) Model {
	l := list.New(toItems(habits), list.NewDefaultDelegate(), width, height)
	l.Title = "Habits"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Toggle, keys.Delete}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Toggle, keys.Delete}
	}

	return Model{list: l, keys: keys}
}

func toItems(habits []models.Habit) []list.Item {
	items := make([]list.Item, len(habits))
	for i, h := range habits {
		items[i] = Item{Habit: h}
	}
	return items
}

func (m *Model) SetHabits(habits []models.Habit) {
	m.list.SetItems(toItems(habits))
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddHabitMsg{} }
		case key.Matches(msg, m.keys.Toggle):
			if i, ok := m.list.SelectedItem().(Item); ok {
				id := i.Habit.ID
				return m, func() tea.Msg { return ToggleHabitMsg{ID: id} }
			}
		case key.Matches(msg, m.keys.Delete):
			if i, ok := m.list.SelectedItem().(Item); ok {
				id := i.Habit.ID
				return m, func() tea.Msg { return DeleteHabitMsg{ID: id} }
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.list.View()
}
