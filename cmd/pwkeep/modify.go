package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pwkeep/pwkeep/pkg/passgen"
	"github.com/pwkeep/pwkeep/pkg/vault"
)

var modifyGenerate bool

var modifyCmd = &cobra.Command{
	Use:   "modify <domain>",
	Short: "Replace the password stored for a domain",
	Args:  cobra.ExactArgs(1),
	RunE:  executeModify,
}

func init() {
	rootCmd.AddCommand(modifyCmd)
	modifyCmd.Flags().BoolVarP(&modifyGenerate, "generate", "g", false, "Generate the new password instead of prompting")
}

func executeModify(cmd *cobra.Command, args []string) error {
	domain := args[0]

	user, _, master, err := openUser()
	if err != nil {
		return err
	}

	var password string
	if modifyGenerate {
		password, err = passgen.Generate(cfg.GeneratorOptions())
		if err != nil {
			return err
		}
	} else {
		password, err = readPassword("New password for " + domain + ": ")
		if err != nil {
			return err
		}
		if password == "" {
			return errors.New("password must not be empty")
		}
	}

	err = withSpinner("updating...", func() error {
		_, modErr := user.ModifyRecord(opConfig(user.Username(), master, domain, password))
		return modErr
	})
	if err != nil {
		if errors.Is(err, vault.ErrRecordNotFound) {
			return fmt.Errorf("no record for %q", domain)
		}
		return err
	}

	successColor.Fprintf(cmd.OutOrStdout(), "Updated record for %q\n", domain)
	if modifyGenerate {
		fmt.Fprintln(cmd.OutOrStdout(), password)
	}
	return nil
}
