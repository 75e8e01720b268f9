// Package tui is the interactive terminal dashboard for habits and
// reflections.
package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/momentum-app/momentum/internal/habit"
	"github.com/momentum-app/momentum/internal/models"
	"github.com/momentum-app/momentum/internal/reflection"
	"github.com/momentum-app/momentum/internal/tui/components/habits"
	"github.com/momentum-app/momentum/internal/tui/components/reflections"
)

type SessionState int

const (
	StateHabits SessionState = iota
	StateReflections
	StateAddHabit
	StateNewReflection
)

type HabitFormModel struct {
	Name      string
	Category  models.Category
	Cue       string
	Reward    string
	Frequency models.Frequency
}

type ReflectionFormModel struct {
	Successes    string
	Improvements string
	Journal      string
}

type KeyMap struct {
	NextTab key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		NextTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch view"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

type Model struct {
	habits      *habit.Store
	reflections reflection.Log

	state         SessionState
	previousState SessionState
	keys          KeyMap
	help          help.Model

	habitsModel      habits.Model
	reflectionsModel reflections.Model

	form           *huh.Form
	habitForm      *HabitFormModel
	reflectionForm *ReflectionFormModel

	statusMsg string
	width     int
	height    int
	quitting  bool
}

func NewModel(store *habit.Store, log reflection.Log) Model {
	store.Load()

	history, err := log.List(context.Background())
	if err != nil {
		history = nil
	}

	return Model{
		habits:           store,
		reflections:      log,
		state:            StateHabits,
		keys:             DefaultKeyMap(),
		help:             help.New(),
		habitsModel:      habits.New(store.List(), 0, 0),
		reflectionsModel: reflections.New(history, 0, 0),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// ShortHelp implements help.KeyMap.
func (m Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.NextTab, m.keys.Help, m.keys.Quit}
}

// FullHelp implements help.KeyMap.
func (m Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{{m.keys.NextTab, m.keys.Help, m.keys.Quit}}
}

func (m *Model) refreshHabits() {
	m.habitsModel.SetHabits(m.habits.List())
}

func (m *Model) refreshReflections() {
	history, err := m.reflections.List(context.Background())
	if err != nil {
		m.statusMsg = fmt.Sprintf("Failed to load reflections: %v", err)
		return
	}
	m.reflectionsModel.SetReflections(history)
}

// Run starts the dashboard and blocks until the user quits.
func Run(store *habit.Store, log reflection.Log) error {
	p := tea.NewProgram(NewModel(store, log), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
