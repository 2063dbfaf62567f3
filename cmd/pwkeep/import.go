package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pwkeep/pwkeep/pkg/audit"
	"github.com/pwkeep/pwkeep/pkg/importer"
	"github.com/pwkeep/pwkeep/pkg/vault"
)

var importDryRun bool

var importCmd = &cobra.Command{
	Use:   "import <file.csv>",
	Short: "Import credentials from a CSV export",
	Long: `Import credentials from another password manager's CSV export.

Parsing is header-based: the file needs a domain column (domain, url,
name or title) and a password column. Rows whose domain already has a
record are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: executeImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Parse and report without storing anything")
}

func executeImport(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read import file: %w", err)
	}

	result, err := importer.ParseCSV(data)
	if err != nil {
		return err
	}

	for _, w := range result.Warnings {
		warnColor.Fprintln(cmd.ErrOrStderr(), "warning: "+w)
	}
	for _, s := range result.Skipped {
		warnColor.Fprintf(cmd.ErrOrStderr(), "skipped row %d: %s\n", s.Row, s.Reason)
	}
	if len(result.Credentials) == 0 {
		return errors.New("nothing to import")
	}

	if importDryRun {
		fmt.Fprintf(cmd.OutOrStdout(), "Would import %d record(s)\n", len(result.Credentials))
		return nil
	}

	user, _, master, err := openUser()
	if err != nil {
		return err
	}

	imported := 0
	for _, cred := range result.Credentials {
		err := withSpinner("importing "+cred.Domain+"...", func() error {
			_, addErr := user.AddRecord(opConfig(user.Username(), master, cred.Domain, cred.Password))
			return addErr
		})
		if err != nil {
			if errors.Is(err, vault.ErrDuplicateRecord) {
				warnColor.Fprintf(cmd.ErrOrStderr(), "skipped %q: already stored\n", cred.Domain)
				continue
			}
			return fmt.Errorf("failed to import %q: %w", cred.Domain, err)
		}
		imported++
	}

	_ = user.Auditor().Log(audit.OpRecordsImport, user.Username(), "", audit.ResultSuccess)
	successColor.Fprintf(cmd.OutOrStdout(), "Imported %d record(s)\n", imported)
	return nil
}
