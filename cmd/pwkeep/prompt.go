package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/pwkeep/pwkeep/pkg/vault"
)

var (
	successColor = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed)
)

// readLine prompts on stderr and reads one line from stdin.
func readLine(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// readPassword prompts on stderr and reads a password without echo. When
// stdin is not a terminal it falls back to a plain line read, so piped
// input still works.
func readPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		raw, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(raw), nil
	}
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// resolveUsername returns the --user flag value or prompts for one.
func resolveUsername() (string, error) {
	if flagUser != "" {
		return flagUser, nil
	}
	username, err := readLine("Username: ")
	if err != nil {
		return "", err
	}
	if username == "" {
		return "", errors.New("username must not be empty")
	}
	return username, nil
}

// withSpinner runs fn behind a terminal spinner. Key derivation is slow on
// purpose, so commands show progress while the gate runs.
func withSpinner(message string, fn func() error) error {
	if !term.IsTerminal(int(os.Stderr.Fd())) {
		return fn()
	}
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = " " + message
	s.Start()
	defer s.Stop()
	return fn()
}

// openUser prompts for credentials and runs the full integrity gate.
func openUser() (*vault.User, []vault.Credential, string, error) {
	username, err := resolveUsername()
	if err != nil {
		return nil, nil, "", err
	}
	master, err := readPassword("Master password: ")
	if err != nil {
		return nil, nil, "", err
	}

	var (
		user    *vault.User
		records vault.ReadOnlyRecords
	)
	err = withSpinner("unlocking...", func() error {
		var openErr error
		user, records, openErr = vault.Open(dataDir, username, master)
		return openErr
	})
	if err != nil {
		if errors.Is(err, vault.ErrUserNotFound) {
			return nil, nil, "", fmt.Errorf("no such user %q", username)
		}
		return nil, nil, "", errors.New("unlock failed: wrong password or damaged data")
	}
	return user, records.Records(), master, nil
}

// opConfig assembles the per-operation parameters for a mutation.
func opConfig(username, master, domain, password string) vault.Config {
	return vault.Config{
		Username:       username,
		MasterPassword: master,
		Domain:         domain,
		Password:       password,
		Dir:            dataDir,
	}
}
