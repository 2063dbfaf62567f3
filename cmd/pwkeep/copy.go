package main

import (
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
)

var copyNoClear bool

var copyCmd = &cobra.Command{
	Use:   "copy <domain>",
	Short: "Copy a stored password to the clipboard",
	Long: `Copy the password stored for a domain to the system clipboard.

The clipboard is cleared after the configured delay unless --no-clear is
given. The command blocks until the clear happens.`,
	Args: cobra.ExactArgs(1),
	RunE: executeCopy,
}

func init() {
	rootCmd.AddCommand(copyCmd)
	copyCmd.Flags().BoolVar(&copyNoClear, "no-clear", false, "Leave the password on the clipboard")
}

func executeCopy(cmd *cobra.Command, args []string) error {
	domain := args[0]

	_, records, _, err := openUser()
	if err != nil {
		return err
	}

	var password string
	found := false
	for _, rec := range records {
		if rec.Domain == domain {
			password = rec.Password
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("no record for %q", domain)
	}

	if err := clipboard.WriteAll(password); err != nil {
		return fmt.Errorf("failed to write clipboard: %w", err)
	}

	seconds := cfg.ClipboardClearSeconds
	if copyNoClear || seconds <= 0 {
		successColor.Fprintf(cmd.OutOrStdout(), "Copied password for %q\n", domain)
		return nil
	}

	successColor.Fprintf(cmd.OutOrStdout(), "Copied password for %q, clearing in %ds\n", domain, seconds)
	err = withSpinner("waiting to clear clipboard...", func() error {
		time.Sleep(time.Duration(seconds) * time.Second)
		return nil
	})
	if err != nil {
		return err
	}
	if err := clipboard.WriteAll(""); err != nil {
		return fmt.Errorf("failed to clear clipboard: %w", err)
	}
	return nil
}
