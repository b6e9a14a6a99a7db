// Package tui provides the interactive pickers and forms ccjk shows when
// a command is run without enough flags to act directly.
package tui

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ErrAborted is returned when the user backs out of a picker or form.
var ErrAborted = errors.New("aborted")

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	descStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)
)

// Item is one selectable row.
type Item struct {
	ID    string
	Title string
	Desc  string
}

type pickerModel struct {
	title    string
	items    []Item
	cursor   int
	chosen   int
	aborted  bool
	finished bool
}

func (m pickerModel) Init() tea.Cmd {
	return nil
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "ctrl+c", "q", "esc":
		m.aborted = true
		m.finished = true
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case "enter":
		m.chosen = m.cursor
		m.finished = true
		return m, tea.Quit
	}
	return m, nil
}

func (m pickerModel) View() string {
	if m.finished {
		return ""
	}

	s := titleStyle.Render(m.title) + "\n\n"
	for i, item := range m.items {
		cursor := "  "
		line := item.Title
		if item.Desc != "" {
			line += "  " + descStyle.Render(item.Desc)
		}
		if i == m.cursor {
			cursor = cursorStyle.Render("> ")
		}
		s += fmt.Sprintf("%s%s\n", cursor, line)
	}
	s += helpStyle.Render("↑/↓ move · enter select · q quit")
	return s
}

// Pick shows a single-select list and returns the chosen item.
func Pick(title string, items []Item) (Item, error) {
	if len(items) == 0 {
		return Item{}, errors.New("nothing to select")
	}

	m := pickerModel{title: title, items: items, chosen: -1}
	result, err := tea.NewProgram(m).Run()
	if err != nil {
		return Item{}, err
	}

	final := result.(pickerModel)
	if final.aborted || final.chosen < 0 {
		return Item{}, ErrAborted
	}
	return final.items[final.chosen], nil
}
