package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pwkeep/pwkeep/pkg/audit"
	"github.com/pwkeep/pwkeep/pkg/backup"
	"github.com/pwkeep/pwkeep/pkg/storage"
	"github.com/pwkeep/pwkeep/pkg/vault"
)

var (
	restoreForce  bool
	restoreNoOpen bool
)

var restoreCmd = &cobra.Command{
	Use:   "restore <backup-file>",
	Short: "Restore a user's records from a backup file",
	Long: `Restore a user's encrypted record log from a backup file.

The backup checksum is verified before anything is written. An existing
record log is never overwritten unless --force is given. After writing,
the restored log is opened with the master password to prove it is
usable; --skip-verify disables that check.`,
	Args: cobra.ExactArgs(1),
	RunE: executeRestore,
}

func init() {
	rootCmd.AddCommand(restoreCmd)
	restoreCmd.Flags().BoolVarP(&restoreForce, "force", "f", false, "Overwrite an existing record log")
	restoreCmd.Flags().BoolVar(&restoreNoOpen, "skip-verify", false, "Skip opening the restored log")
}

func executeRestore(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open backup file: %w", err)
	}
	defer f.Close()

	header, log, err := backup.Read(f)
	if err != nil {
		if errors.Is(err, backup.ErrChecksumMismatch) {
			return errors.New("backup file is damaged: checksum mismatch")
		}
		return err
	}

	target := filepath.Join(dataDir, header.UserFile)
	if storage.Exists(target) && !restoreForce {
		return fmt.Errorf("record log already exists at %s (use --force to overwrite)", target)
	}

	if !storage.Exists(target) {
		if _, err := storage.CreateFile(dataDir, header.UserFile); err != nil {
			return err
		}
	}
	if err := storage.WriteFile(target, log); err != nil {
		return err
	}
	successColor.Fprintf(cmd.OutOrStdout(), "Restored %d bytes to %s\n", len(log), target)

	if restoreNoOpen {
		return nil
	}

	username, err := resolveUsername()
	if err != nil {
		return err
	}
	if vault.UserFileName(username) != header.UserFile {
		return fmt.Errorf("backup does not belong to user %q", username)
	}
	master, err := readPassword("Master password: ")
	if err != nil {
		return err
	}

	var user *vault.User
	err = withSpinner("verifying...", func() error {
		var openErr error
		user, _, openErr = vault.Open(dataDir, username, master)
		return openErr
	})
	if err != nil {
		return errors.New("restored log did not open: wrong password or damaged backup")
	}

	_ = user.Auditor().Log(audit.OpBackupRestore, username, "", audit.ResultSuccess)
	successColor.Fprintln(cmd.OutOrStdout(), "Restored log verified")
	return nil
}
