package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/momentum-app/momentum/internal/models"
	"github.com/momentum-app/momentum/internal/tui/components/habits"
	"github.com/momentum-app/momentum/internal/tui/components/reflections"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		h, v := docStyle.GetFrameSize()
		listHeight := m.height - v - 4
		m.habitsModel.SetSize(m.width-h, listHeight)
		m.reflectionsModel.SetSize(m.width-h, listHeight)

	case tea.KeyMsg:
		if m.state == StateHabits || m.state == StateReflections {
			switch {
			case key.Matches(msg, m.keys.Quit):
				m.quitting = true
				return m, tea.Quit
			case key.Matches(msg, m.keys.NextTab):
				m.statusMsg = ""
				if m.state == StateHabits {
					m.refreshReflections()
					m.state = StateReflections
				} else {
					m.state = StateHabits
				}
				return m, nil
			case key.Matches(msg, m.keys.Help):
				m.help.ShowAll = !m.help.ShowAll
				return m, nil
			}
		}
	}

	switch m.state {
	case StateHabits:
		return m.updateHabits(msg)
	case StateReflections:
		return m.updateReflections(msg)
	case StateAddHabit:
		return m.updateHabitForm(msg)
	case StateNewReflection:
		return m.updateReflectionForm(msg)
	}
	return m, nil
}

func (m Model) updateHabits(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case habits.AddHabitMsg:
		m.habitForm = &HabitFormModel{
			Category:  models.CategoryOther,
			Frequency: models.FrequencyDaily,
		}
		m.form = NewHabitForm(m.habitForm)
		m.previousState = m.state
		m.state = StateAddHabit
		return m, m.form.Init()

	case habits.ToggleHabitMsg:
		if habit, err := m.habits.Toggle(msg.ID); err == nil {
			if habit.Completed() {
				m.statusMsg = fmt.Sprintf("Completed %q, streak %d", habit.Name, habit.Streak)
			} else {
				m.statusMsg = fmt.Sprintf("Unmarked %q", habit.Name)
			}
			m.refreshHabits()
		}
		return m, nil

	case habits.DeleteHabitMsg:
		if err := m.habits.Remove(msg.ID); err == nil {
			m.statusMsg = "Habit deleted"
			m.refreshHabits()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.habitsModel, cmd = m.habitsModel.Update(msg)
	return m, cmd
}

func (m Model) updateReflections(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(reflections.NewReflectionMsg); ok {
		m.reflectionForm = &ReflectionFormModel{}
		m.form = NewReflectionForm(m.reflectionForm)
		m.previousState = m.state
		m.state = StateNewReflection
		return m, m.form.Init()
	}

	var cmd tea.Cmd
	m.reflectionsModel, cmd = m.reflectionsModel.Update(msg)
	return m, cmd
}

func (m Model) updateHabitForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = m.previousState
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
		_, err := m.habits.Add(models.HabitInput{
			Name:      m.habitForm.Name,
			Category:  m.habitForm.Category,
			Cue:       m.habitForm.Cue,
			Reward:    m.habitForm.Reward,
			Frequency: m.habitForm.Frequency,
		})
		if err != nil {
			m.statusMsg = fmt.Sprintf("Failed to add habit: %v", err)
			m.form.State = huh.StateNormal
			break
		}
		m.statusMsg = fmt.Sprintf("Added %q", m.habitForm.Name)
		m.refreshHabits()
		m.state = m.previousState
	case huh.StateAborted:
		m.state = m.previousState
	}
	return m, tea.Batch(cmds...)
}

func (m Model) updateReflectionForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = m.previousState
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
		_, err := m.reflections.Create(context.Background(),
			m.reflectionForm.Successes,
			m.reflectionForm.Improvements,
			m.reflectionForm.Journal,
		)
		if err != nil {
			m.statusMsg = fmt.Sprintf("Failed to save reflection: %v", err)
			m.form.State = huh.StateNormal
			break
		}
		m.statusMsg = "Reflection recorded"
		m.refreshReflections()
		m.state = m.previousState
	case huh.StateAborted:
		m.state = m.previousState
	}
	return m, tea.Batch(cmds...)
}
