package tui

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pwkeep/pwkeep/pkg/vault"
)

// Auth input positions
const (
	authUsername = iota
	authPassword
	authConfirm
	authFirstDomain
	authFirstPassword
)

func (m *model) enterLogin() {
	m.state = stateLogin
	m.setInputs(
		newInput("Username", "username", false),
		newInput("Master password", "", true),
	)
}

func (m *model) enterRegister() {
	m.state = stateRegister
	m.setInputs(
		newInput("Username", "username", false),
		newInput("Master password", "", true),
		newInput("Confirm password", "", true),
		newInput("First domain", "example.com", false),
		newInput("First password", "", true),
	)
}

func (m model) updateAuth(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			m.state = stateStartup
			m.inputs = nil
			return m, nil
		case "tab", "down":
			m.cycleFocus(false)
			return m, nil
		case "shift+tab", "up":
			m.cycleFocus(true)
			return m, nil
		case "enter":
			if m.focus < len(m.inputs)-1 {
				m.cycleFocus(false)
				return m, nil
			}
			return m.submitAuth()
		}
	}
	cmd := m.updateFocused(msg)
	return m, cmd
}

func (m model) submitAuth() (tea.Model, tea.Cmd) {
	if !m.inputsFilled() {
		return m, m.setStatus("all fields are required", true)
	}
	username := strings.TrimSpace(m.inputValue(authUsername))
	master := m.inputValue(authPassword)

	if m.state == stateRegister {
		if m.inputValue(authConfirm) != master {
			return m, m.setStatus("passwords do not match", true)
		}
		err := vault.CreateUser(vault.Config{
			Username:       username,
			MasterPassword: master,
			Domain:         m.inputValue(authFirstDomain),
			Password:       m.inputValue(authFirstPassword),
			Dir:            m.dir,
		})
		if err != nil {
			if errors.Is(err, vault.ErrUserExists) {
				return m, m.setStatus("that username is taken", true)
			}
			return m, m.setStatus(err.Error(), true)
		}
	}

	user, records, err := vault.Open(m.dir, username, master)
	if err != nil {
		switch {
		case errors.Is(err, vault.ErrUserNotFound):
			return m, m.setStatus("unknown user", true)
		default:
			return m, m.setStatus("login failed", true)
		}
	}

	m.user = user
	m.records = records.Records()
	m.username = username
	m.master = master
	m.cursor = 0
	m.revealed = make(map[string]bool)
	m.state = stateHome
	m.popup = popupNone
	m.inputs = nil
	m.status = ""
	return m, nil
}

func (m model) viewAuth() string {
	var b strings.Builder
	b.WriteString(bannerStyle.Render(banner))
	b.WriteString("\n")
	if m.state == stateLogin {
		b.WriteString(titleStyle.Render("Login"))
	} else {
		b.WriteString(titleStyle.Render("Register"))
	}
	b.WriteString("\n\n")
	b.WriteString(m.renderInputs())
	b.WriteString("\n")
	if s := m.statusLine(); s != "" {
		b.WriteString(s + "\n")
	}
	b.WriteString(helpStyle.Render("tab next field, enter submit, esc back"))
	return b.String()
}

func (m model) renderInputs() string {
	var b strings.Builder
	for i := range m.inputs {
		b.WriteString(labelStyle.Render(m.inputs[i].label) + "\n")
		b.WriteString(m.inputs[i].ti.View() + "\n")
		if i < len(m.inputs)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
