package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pwkeep/pwkeep/internal/cli"
)

var removeForce bool

var removeCmd = &cobra.Command{
	Use:   "remove <pattern>...",
	Short: "Delete stored records",
	Long: `Delete the records matching the given domains or glob patterns.

Patterns expand against the stored domain names, so "remove 'git*'"
deletes every domain starting with git. Deletion asks for confirmation
unless --force is given.`,
	Args: cobra.MinimumNArgs(1),
	RunE: executeRemove,
}

func init() {
	rootCmd.AddCommand(removeCmd)
	removeCmd.Flags().BoolVarP(&removeForce, "force", "f", false, "Skip the confirmation prompt")
}

func executeRemove(cmd *cobra.Command, args []string) error {
	user, records, master, err := openUser()
	if err != nil {
		return err
	}

	available := make([]string, len(records))
	for i, rec := range records {
		available[i] = rec.Domain
	}
	targets, err := cli.ExpandPatterns(args, available)
	if err != nil {
		return err
	}

	if !removeForce {
		warnColor.Fprintf(cmd.ErrOrStderr(), "About to delete %d record(s): %s\n",
			len(targets), strings.Join(targets, ", "))
		answer, err := readLine("Continue? [y/N]: ")
		if err != nil {
			return err
		}
		if !strings.EqualFold(answer, "y") && !strings.EqualFold(answer, "yes") {
			fmt.Fprintln(cmd.OutOrStdout(), "Aborted")
			return nil
		}
	}

	for _, domain := range targets {
		err := withSpinner("removing "+domain+"...", func() error {
			_, rmErr := user.RemoveRecord(opConfig(user.Username(), master, domain, ""))
			return rmErr
		})
		if err != nil {
			return fmt.Errorf("failed to remove %q: %w", domain, err)
		}
		successColor.Fprintf(cmd.OutOrStdout(), "Removed %q\n", domain)
	}
	return nil
}
