package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pwkeep/pwkeep/pkg/audit"
	"github.com/pwkeep/pwkeep/pkg/backup"
	"github.com/pwkeep/pwkeep/pkg/vault"
)

var backupCmd = &cobra.Command{
	Use:   "backup <output-file>",
	Short: "Export a user's records to a backup file",
	Long: `Export a user's encrypted record log to a single backup file.

The log bytes are copied verbatim, so the backup can only be read with
the master password that produced it. The master password is verified
before exporting.`,
	Args: cobra.ExactArgs(1),
	RunE: executeBackup,
}

func init() {
	rootCmd.AddCommand(backupCmd)
}

func executeBackup(cmd *cobra.Command, args []string) error {
	output := args[0]

	// Verify the master password before exporting anything.
	user, _, _, err := openUser()
	if err != nil {
		return err
	}

	fileName := vault.UserFileName(user.Username())
	log, err := os.ReadFile(filepath.Join(dataDir, fileName))
	if err != nil {
		return fmt.Errorf("failed to read record log: %w", err)
	}

	if err := writeBackupFile(output, fileName, log); err != nil {
		return err
	}

	_ = user.Auditor().Log(audit.OpBackupExport, user.Username(), "", audit.ResultSuccess)
	successColor.Fprintf(cmd.OutOrStdout(), "Backed up %d bytes to %s\n", len(log), output)
	return nil
}

// writeBackupFile creates output exclusively and writes the backup into
// it. On failure the file is closed before it is removed, so the cleanup
// also succeeds on Windows, where open files cannot be deleted.
func writeBackupFile(output, fileName string, log []byte) error {
	f, err := os.OpenFile(output, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		return fmt.Errorf("failed to create backup file: %w", err)
	}

	if err := backup.Write(f, fileName, log); err != nil {
		f.Close()
		os.Remove(output)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(output)
		return fmt.Errorf("failed to close backup file: %w", err)
	}
	return nil
}
