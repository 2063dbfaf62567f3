package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// inputField pairs a text input with its on-screen label.
type inputField struct {
	label string
	ti    textinput.Model
}

func newInput(label, placeholder string, secret bool) inputField {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 256
	ti.Width = 40
	if secret {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '*'
	}
	return inputField{label: label, ti: ti}
}

// setInputs installs a fresh input group with focus on the first field.
func (m *model) setInputs(fields ...inputField) {
	m.inputs = fields
	m.focus = 0
	for i := range m.inputs {
		m.inputs[i].ti.Blur()
	}
	if len(m.inputs) > 0 {
		m.inputs[0].ti.Focus()
	}
}

// cycleFocus moves focus forward or backward through the input group.
func (m *model) cycleFocus(backward bool) {
	n := len(m.inputs)
	if n == 0 {
		return
	}
	m.inputs[m.focus].ti.Blur()
	if backward {
		m.focus = (m.focus - 1 + n) % n
	} else {
		m.focus = (m.focus + 1) % n
	}
	m.inputs[m.focus].ti.Focus()
}

// updateFocused forwards a message to the focused input.
func (m *model) updateFocused(msg tea.Msg) tea.Cmd {
	if len(m.inputs) == 0 {
		return nil
	}
	var cmd tea.Cmd
	m.inputs[m.focus].ti, cmd = m.inputs[m.focus].ti.Update(msg)
	return cmd
}

func (m *model) inputValue(i int) string {
	if i < len(m.inputs) {
		return m.inputs[i].ti.Value()
	}
	return ""
}

func (m *model) inputsFilled() bool {
	for i := range m.inputs {
		if m.inputs[i].ti.Value() == "" {
			return false
		}
	}
	return true
}
