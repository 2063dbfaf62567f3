package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pwkeep/pwkeep/pkg/vault"
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new user",
	Long: `Create a new user together with their first stored record.

A user has no standalone account object: registration encrypts and stores
the first (domain, password) record in one step.`,
	Args: cobra.NoArgs,
	RunE: executeRegister,
}

func init() {
	rootCmd.AddCommand(registerCmd)
}

func executeRegister(cmd *cobra.Command, args []string) error {
	username, err := resolveUsername()
	if err != nil {
		return err
	}
	if vault.UserExists(dataDir, username) {
		return fmt.Errorf("user %q already exists", username)
	}

	master, err := readPassword("Master password: ")
	if err != nil {
		return err
	}
	if master == "" {
		return errors.New("master password must not be empty")
	}
	confirm, err := readPassword("Confirm master password: ")
	if err != nil {
		return err
	}
	if confirm != master {
		return errors.New("passwords do not match")
	}

	domain, err := readLine("First domain: ")
	if err != nil {
		return err
	}
	if domain == "" {
		return errors.New("domain must not be empty")
	}
	password, err := readPassword("Password for " + domain + ": ")
	if err != nil {
		return err
	}
	if password == "" {
		return errors.New("password must not be empty")
	}

	err = withSpinner("creating user...", func() error {
		return vault.CreateUser(opConfig(username, master, domain, password))
	})
	if err != nil {
		if errors.Is(err, vault.ErrUserExists) {
			return fmt.Errorf("user %q already exists", username)
		}
		return err
	}

	successColor.Fprintf(cmd.OutOrStdout(), "Created user %q with 1 record\n", username)
	return nil
}
