package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Field is one input in a form.
type Field struct {
	Key         string
	Label       string
	Placeholder string
	Default     string
	Secret      bool
}

type formModel struct {
	title    string
	fields   []Field
	inputs   []textinput.Model
	current  int
	aborted  bool
	finished bool
}

func newFormModel(title string, fields []Field) formModel {
	inputs := make([]textinput.Model, len(fields))
	for i, f := range fields {
		in := textinput.New()
		in.Placeholder = f.Placeholder
		in.SetValue(f.Default)
		in.CharLimit = 256
		if f.Secret {
			in.EchoMode = textinput.EchoPassword
		}
		inputs[i] = in
	}
	if len(inputs) > 0 {
		inputs[0].Focus()
	}
	return formModel{title: title, fields: fields, inputs: inputs}
}

func (m formModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m formModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "ctrl+c", "esc":
			m.aborted = true
			m.finished = true
			return m, tea.Quit
		case "enter":
			if m.current == len(m.inputs)-1 {
				m.finished = true
				return m, tea.Quit
			}
			m.inputs[m.current].Blur()
			m.current++
			m.inputs[m.current].Focus()
			return m, nil
		case "shift+tab":
			if m.current > 0 {
				m.inputs[m.current].Blur()
				m.current--
				m.inputs[m.current].Focus()
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.inputs[m.current], cmd = m.inputs[m.current].Update(msg)
	return m, cmd
}

func (m formModel) View() string {
	if m.finished {
		return ""
	}

	s := titleStyle.Render(m.title) + "\n\n"
	for i, f := range m.fields {
		cursor := "  "
		if i == m.current {
			cursor = cursorStyle.Render("> ")
		}
		s += cursor + f.Label + ": " + m.inputs[i].View() + "\n"
	}
	s += helpStyle.Render("enter next · shift+tab back · esc cancel")
	return s
}

// Form prompts for each field in order and returns the entered values
// keyed by Field.Key.
func Form(title string, fields []Field) (map[string]string, error) {
	if len(fields) == 0 {
		return map[string]string{}, nil
	}

	result, err := tea.NewProgram(newFormModel(title, fields)).Run()
	if err != nil {
		return nil, err
	}

	final := result.(formModel)
	if final.aborted {
		return nil, ErrAborted
	}

	values := make(map[string]string, len(fields))
	for i, f := range final.fields {
		values[f.Key] = final.inputs[i].Value()
	}
	return values, nil
}
