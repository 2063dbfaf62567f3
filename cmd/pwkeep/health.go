package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pwkeep/pwkeep/pkg/security"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Analyze stored passwords for weaknesses",
	Long: `Analyze the stored passwords and report weak or reused ones.

The analysis runs entirely in memory on the decrypted records; nothing
derived from a password is written anywhere.`,
	Args: cobra.NoArgs,
	RunE: executeHealth,
}

func init() {
	rootCmd.AddCommand(healthCmd)
}

func executeHealth(cmd *cobra.Command, args []string) error {
	_, records, _, err := openUser()
	if err != nil {
		return err
	}

	report, err := security.Analyze(records)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Records:    %d\n", report.Records)
	fmt.Fprintf(out, "Score:      %d/%d (strength %d/25, uniqueness %d/25)\n",
		report.Overall, security.MaxScore, report.Strength, report.Uniqueness)

	if len(report.Issues) == 0 {
		successColor.Fprintln(out, "No issues found")
		return nil
	}

	fmt.Fprintln(out)
	for _, issue := range report.Issues {
		switch issue.Type {
		case security.IssueWeakPassword:
			warnColor.Fprintf(out, "weak    %s\n", issue.Domains[0])
		case security.IssueReusedPassword:
			errorColor.Fprintf(out, "reused  %s\n", strings.Join(issue.Domains, ", "))
		}
		fmt.Fprintf(out, "        %s (%s)\n", issue.Description, issue.Suggestion)
	}
	return nil
}
