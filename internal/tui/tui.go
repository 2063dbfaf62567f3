// Package tui implements the interactive terminal interface: a bubbletea
// program walking startup, authentication, and the record browser.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	figure "github.com/common-nighthawk/go-figure"

	"github.com/pwkeep/pwkeep/pkg/config"
	"github.com/pwkeep/pwkeep/pkg/vault"
)

// viewState identifies the active screen.
type viewState int

const (
	stateStartup viewState = iota
	stateLogin
	stateRegister
	stateHome
)

// popupKind identifies the overlay shown on top of the home screen.
type popupKind int

const (
	popupNone popupKind = iota
	popupInsert
	popupModify
	popupConfirmDelete
	popupConfirmExit
)

// clipboardClearMsg fires when a copied password should be wiped. The token
// guards against clearing a newer copy.
type clipboardClearMsg struct{ token int }

// statusClearMsg fires when a transient status line should disappear.
type statusClearMsg struct{ token int }

// model is the bubbletea model for the whole interface.
type model struct {
	state viewState
	popup popupKind

	dir string
	cfg *config.Config

	user     *vault.User
	records  []vault.Credential
	cursor   int
	revealed map[string]bool

	// Credentials are kept for the session because every mutation
	// re-derives keys from the master password.
	username string
	master   string

	inputs []inputField
	focus  int

	status    string
	statusErr bool

	clipToken   int
	statusToken int

	startupChoice int // 0 = login, 1 = register
}

var banner = figure.NewFigure("pwkeep", "small", true).String()

// Run starts the interactive interface against the given data directory.
func Run(dir string, cfg *config.Config) error {
	m := model{
		state: stateStartup,
		dir:   dir,
		cfg:   cfg,
	}
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case clipboardClearMsg:
		if msg.token == m.clipToken {
			_ = clipboard.WriteAll("")
		}
		return m, nil
	case statusClearMsg:
		if msg.token == m.statusToken {
			m.status = ""
		}
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	switch m.state {
	case stateStartup:
		return m.updateStartup(msg)
	case stateLogin, stateRegister:
		return m.updateAuth(msg)
	case stateHome:
		return m.updateHome(msg)
	}
	return m, nil
}

func (m model) View() string {
	switch m.state {
	case stateStartup:
		return m.viewStartup()
	case stateLogin, stateRegister:
		return m.viewAuth()
	case stateHome:
		return m.viewHome()
	}
	return ""
}

// setStatus installs a transient status line and schedules its removal.
func (m *model) setStatus(text string, isErr bool) tea.Cmd {
	m.status = text
	m.statusErr = isErr
	m.statusToken++
	token := m.statusToken
	return tea.Tick(5*time.Second, func(time.Time) tea.Msg {
		return statusClearMsg{token: token}
	})
}

// copyToClipboard copies a password and schedules a timed wipe.
func (m *model) copyToClipboard(password string) tea.Cmd {
	if err := clipboard.WriteAll(password); err != nil {
		return m.setStatus(fmt.Sprintf("clipboard unavailable: %v", err), true)
	}
	seconds := m.cfg.ClipboardClearSeconds
	m.clipToken++
	token := m.clipToken
	cmds := []tea.Cmd{
		m.setStatus(fmt.Sprintf("password copied, clears in %ds", seconds), false),
	}
	if seconds > 0 {
		cmds = append(cmds, tea.Tick(time.Duration(seconds)*time.Second, func(time.Time) tea.Msg {
			return clipboardClearMsg{token: token}
		}))
	}
	return tea.Batch(cmds...)
}

func (m model) statusLine() string {
	if m.status == "" {
		return ""
	}
	if m.statusErr {
		return errorStyle.Render(m.status)
	}
	return infoStyle.Render(m.status)
}

// updateStartup handles the login/register chooser.
func (m model) updateStartup(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "esc":
		return m, tea.Quit
	case "up", "k", "down", "j", "tab":
		m.startupChoice = 1 - m.startupChoice
	case "enter":
		if m.startupChoice == 0 {
			m.enterLogin()
		} else {
			m.enterRegister()
		}
	}
	return m, nil
}

func (m model) viewStartup() string {
	var b strings.Builder
	b.WriteString(bannerStyle.Render(banner))
	b.WriteString("\n")
	b.WriteString(titleStyle.Render("local password keeper"))
	b.WriteString("\n\n")

	choices := []string{"Login", "Register"}
	for i, c := range choices {
		line := "  " + c + "  "
		if i == m.startupChoice {
			line = selectedStyle.Render(line)
		} else {
			line = dimStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("j/k move, enter select, q quit"))
	return b.String()
}
