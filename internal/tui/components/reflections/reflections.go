// Package reflections is the reflection history list component.
package reflections

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/momentum-app/momentum/internal/models"
)

type NewReflectionMsg struct{}

type Item struct {
	Reflection models.Reflection
}

func (i Item) Title() string {
	return i.Reflection.Date.Format("Mon, Jan 2 2006")
}

func (i Item) Description() string {
	return i.Reflection.Successes
}

func (i Item) FilterValue() string { return i.Reflection.Journal }

type KeyMap struct {
	New key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new reflection"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(reflections []models.Reflection, width, height int) Model {
	l := list.New(toItems(reflections), list.NewDefaultDelegate(), width, height)
	l.Title = "Reflections"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.New}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.New}
	}

	return Model{list: l, keys: keys}
}

func toItems(reflections []models.Reflection) []list.Item {
	items := make([]list.Item, len(reflections))
	for i, r := range reflections {
		items[i] = Item{Reflection: r}
	}
	return items
}

func (m *Model) SetReflections(reflections []models.Reflection) {
	m.list.SetItems(toItems(reflections))
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
		if key.Matches(msg, m.keys.New) {
			return m, func() tea.Msg { return NewReflectionMsg{} }
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.list.View()
}
