package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pwkeep/pwkeep/pkg/passgen"
	"github.com/pwkeep/pwkeep/pkg/vault"
)

var addGenerate bool

var addCmd = &cobra.Command{
	Use:   "add <domain>",
	Short: "Store a password for a new domain",
	Long: `Store a password for a new domain.

The domain must not already have a record; use modify to change an
existing one. With --generate a random password is stored and printed
instead of prompting for one.`,
	Args: cobra.ExactArgs(1),
	RunE: executeAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().BoolVarP(&addGenerate, "generate", "g", false, "Generate the password instead of prompting")
}

func executeAdd(cmd *cobra.Command, args []string) error {
	domain := args[0]

	user, _, master, err := openUser()
	if err != nil {
		return err
	}

	var password string
	if addGenerate {
		password, err = passgen.Generate(cfg.GeneratorOptions())
		if err != nil {
			return err
		}
	} else {
		password, err = readPassword("Password for " + domain + ": ")
		if err != nil {
			return err
		}
		if password == "" {
			return errors.New("password must not be empty")
		}
	}

	err = withSpinner("storing...", func() error {
		_, addErr := user.AddRecord(opConfig(user.Username(), master, domain, password))
		return addErr
	})
	if err != nil {
		if errors.Is(err, vault.ErrDuplicateRecord) {
			return fmt.Errorf("a record for %q already exists", domain)
		}
		return err
	}

	successColor.Fprintf(cmd.OutOrStdout(), "Stored record for %q\n", domain)
	if addGenerate {
		fmt.Fprintln(cmd.OutOrStdout(), password)
	}
	return nil
}
