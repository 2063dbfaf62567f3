package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pwkeep/pwkeep/pkg/passgen"
	"github.com/pwkeep/pwkeep/pkg/vault"
)

// Insert popup input positions
const (
	insertDomain = iota
	insertPassword
)

// maskedPassword hides stored passwords in the record list. Fixed width,
// so the mask leaks nothing about the real length.
const maskedPassword = "********"

func (m model) updateHome(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.popup != popupNone {
		return m.updatePopup(msg)
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "esc":
		m.popup = popupConfirmExit
	case "j", "down":
		if m.cursor < len(m.records)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "c", "enter":
		if len(m.records) > 0 {
			return m, m.copyToClipboard(m.records[m.cursor].Password)
		}
	case "v":
		if len(m.records) > 0 {
			domain := m.records[m.cursor].Domain
			m.revealed[domain] = !m.revealed[domain]
		}
	case "a":
		m.popup = popupInsert
		m.setInputs(
			newInput("Domain", "example.com", false),
			newInput("Password", "", true),
		)
	case "m":
		if len(m.records) > 0 {
			m.popup = popupModify
			m.setInputs(newInput("New password", "", true))
		}
	case "d":
		if len(m.records) > 0 {
			m.popup = popupConfirmDelete
		}
	}
	return m, nil
}

func (m model) updatePopup(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		cmd := m.updateFocused(msg)
		return m, cmd
	}

	switch m.popup {
	case popupConfirmExit:
		switch key.String() {
		case "y", "enter":
			return m, tea.Quit
		case "n", "esc":
			m.popup = popupNone
		}
		return m, nil

	case popupConfirmDelete:
		switch key.String() {
		case "y", "enter":
			return m.applyRemove()
		case "n", "esc":
			m.popup = popupNone
		}
		return m, nil

	case popupInsert, popupModify:
		switch key.String() {
		case "esc":
			m.popup = popupNone
			m.inputs = nil
			return m, nil
		case "tab", "down":
			m.cycleFocus(false)
			return m, nil
		case "shift+tab", "up":
			m.cycleFocus(true)
			return m, nil
		case "ctrl+g":
			return m.generateIntoPassword()
		case "enter":
			if m.focus < len(m.inputs)-1 {
				m.cycleFocus(false)
				return m, nil
			}
			if m.popup == popupInsert {
				return m.applyInsert()
			}
			return m.applyModify()
		}
		cmd := m.updateFocused(msg)
		return m, cmd
	}
	return m, nil
}

// generateIntoPassword fills the last input with a generated password.
func (m model) generateIntoPassword() (tea.Model, tea.Cmd) {
	pw, err := passgen.Generate(m.cfg.GeneratorOptions())
	if err != nil {
		return m, m.setStatus(err.Error(), true)
	}
	idx := len(m.inputs) - 1
	m.inputs[idx].ti.SetValue(pw)
	return m, m.setStatus("password generated", false)
}

func (m *model) opConfig(domain, password string) vault.Config {
	return vault.Config{
		Username:       m.username,
		MasterPassword: m.master,
		Domain:         domain,
		Password:       password,
		Dir:            m.dir,
	}
}

func (m model) applyInsert() (tea.Model, tea.Cmd) {
	if !m.inputsFilled() {
		return m, m.setStatus("all fields are required", true)
	}
	domain := strings.TrimSpace(m.inputValue(insertDomain))
	records, err := m.user.AddRecord(m.opConfig(domain, m.inputValue(insertPassword)))
	if err != nil {
		return m, m.setStatus(err.Error(), true)
	}
	m.records = records.Records()
	m.popup = popupNone
	m.inputs = nil
	return m, m.setStatus(fmt.Sprintf("added %q", domain), false)
}

func (m model) applyModify() (tea.Model, tea.Cmd) {
	if !m.inputsFilled() {
		return m, m.setStatus("all fields are required", true)
	}
	domain := m.records[m.cursor].Domain
	records, err := m.user.ModifyRecord(m.opConfig(domain, m.inputValue(0)))
	if err != nil {
		return m, m.setStatus(err.Error(), true)
	}
	m.records = records.Records()
	delete(m.revealed, domain)
	m.popup = popupNone
	m.inputs = nil
	return m, m.setStatus(fmt.Sprintf("updated %q", domain), false)
}

func (m model) applyRemove() (tea.Model, tea.Cmd) {
	domain := m.records[m.cursor].Domain
	records, err := m.user.RemoveRecord(m.opConfig(domain, ""))
	if err != nil {
		m.popup = popupNone
		return m, m.setStatus(err.Error(), true)
	}
	m.records = records.Records()
	delete(m.revealed, domain)
	if m.cursor >= len(m.records) && m.cursor > 0 {
		m.cursor--
	}
	m.popup = popupNone
	return m, m.setStatus(fmt.Sprintf("removed %q", domain), false)
}

func (m model) viewHome() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s's records", m.username)))
	b.WriteString("\n\n")

	if len(m.records) == 0 {
		b.WriteString(dimStyle.Render("no records yet, press a to add one"))
		b.WriteString("\n")
	}
	for i, rec := range m.records {
		password := maskedPassword
		if m.revealed[rec.Domain] {
			password = rec.Password
		}
		line := fmt.Sprintf(" %-34s %-20s ", rec.Domain, password)
		if i == m.cursor {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}

	if m.popup != popupNone {
		b.WriteString("\n" + m.viewPopup() + "\n")
	}
	if s := m.statusLine(); s != "" {
		b.WriteString("\n" + s + "\n")
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("j/k move, v reveal, c copy, a add, m modify, d delete, q quit"))
	return b.String()
}

func (m model) viewPopup() string {
	switch m.popup {
	case popupConfirmExit:
		return popupStyle.Render("Quit? (y/n)")
	case popupConfirmDelete:
		domain := m.records[m.cursor].Domain
		return popupStyle.Render(fmt.Sprintf("Delete %q? (y/n)", domain))
	case popupInsert:
		return popupStyle.Render(titleStyle.Render("Add record") + "\n\n" +
			m.renderInputs() + "\n" +
			helpStyle.Render("ctrl+g generate, enter save, esc cancel"))
	case popupModify:
		domain := m.records[m.cursor].Domain
		return popupStyle.Render(titleStyle.Render(fmt.Sprintf("Modify %q", domain)) + "\n\n" +
			m.renderInputs() + "\n" +
			helpStyle.Render("ctrl+g generate, enter save, esc cancel"))
	}
	return ""
}
