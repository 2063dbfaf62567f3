package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pwkeep/pwkeep/internal/cli"
)

var listShowPasswords bool

var listCmd = &cobra.Command{
	Use:   "list [pattern]...",
	Short: "List stored domains",
	Long: `List the stored domains, sorted alphabetically.

Optional glob patterns restrict the output. Passwords are hidden unless
--show-passwords is given.`,
	RunE: executeList,
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listShowPasswords, "show-passwords", false, "Print passwords next to domains")
}

func executeList(cmd *cobra.Command, args []string) error {
	_, records, _, err := openUser()
	if err != nil {
		return err
	}

	byDomain := make(map[string]string, len(records))
	domains := make([]string, len(records))
	for i, rec := range records {
		domains[i] = rec.Domain
		byDomain[rec.Domain] = rec.Password
	}

	if len(args) > 0 {
		domains, err = cli.ExpandPatterns(args, domains)
		if err != nil {
			return err
		}
	}

	for _, domain := range cli.SortDomains(domains) {
		if listShowPasswords {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", domain, byDomain[domain])
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), domain)
		}
	}
	return nil
}
