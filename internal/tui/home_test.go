package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pwkeep/pwkeep/pkg/config"
	"github.com/pwkeep/pwkeep/pkg/vault"
)

func homeModel(records ...vault.Credential) model {
	return model{
		state:    stateHome,
		cfg:      config.Default(),
		username: "alice",
		records:  records,
		revealed: make(map[string]bool),
	}
}

func keyMsg(s string) tea.Msg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestHomeMasksPasswords(t *testing.T) {
	m := homeModel(vault.Credential{Domain: "example.com", Password: "hunter2"})

	view := m.View()
	if strings.Contains(view, "hunter2") {
		t.Fatal("home view shows a password without reveal")
	}
	if !strings.Contains(view, maskedPassword) {
		t.Fatal("home view is missing the password mask")
	}
	if !strings.Contains(view, "example.com") {
		t.Fatal("home view is missing the domain")
	}
}

func TestHomeRevealToggle(t *testing.T) {
	m := homeModel(
		vault.Credential{Domain: "example.com", Password: "hunter2"},
		vault.Credential{Domain: "other.com", Password: "s3cret"},
	)

	updated, _ := m.Update(keyMsg("v"))
	m = updated.(model)
	view := m.View()
	if !strings.Contains(view, "hunter2") {
		t.Fatal("reveal did not show the selected password")
	}
	if strings.Contains(view, "s3cret") {
		t.Fatal("reveal leaked a non-selected password")
	}

	updated, _ = m.Update(keyMsg("v"))
	m = updated.(model)
	if strings.Contains(m.View(), "hunter2") {
		t.Fatal("second toggle did not re-mask the password")
	}
}

func TestHomeRevealEmptyList(t *testing.T) {
	m := homeModel()
	updated, _ := m.Update(keyMsg("v"))
	m = updated.(model)
	if !strings.Contains(m.View(), "no records yet") {
		t.Fatal("empty home view changed unexpectedly")
	}
}
