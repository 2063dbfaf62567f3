package main

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/pwkeep/pwkeep/pkg/passgen"
)

// Generate command flags
var (
	generateLength      int
	generateCount       int
	generateNoSymbols   bool
	generateNoDigits    bool
	generateNoUppercase bool
	generateNoLowercase bool
	generateExclude     string
	generateCopy        bool
)

const maxGenerateCount = 100

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate secure random passwords",
	Long: `Generate cryptographically secure random passwords.

Examples:
  # Generate one password with the configured defaults
  pwkeep generate

  # Generate a 32-character password without symbols
  pwkeep generate -l 32 --no-symbols

  # Generate 5 passwords excluding ambiguous characters
  pwkeep generate -n 5 --exclude "0O1lI"

  # Generate and copy to clipboard
  pwkeep generate -c`,
	Args: cobra.NoArgs,
	RunE: executeGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().IntVarP(&generateLength, "length", "l", 0, "Password length (defaults to the configured length)")
	generateCmd.Flags().IntVarP(&generateCount, "count", "n", 1, "Number of passwords to generate (1-100)")
	generateCmd.Flags().BoolVar(&generateNoSymbols, "no-symbols", false, "Exclude symbols")
	generateCmd.Flags().BoolVar(&generateNoDigits, "no-digits", false, "Exclude digits")
	generateCmd.Flags().BoolVar(&generateNoUppercase, "no-uppercase", false, "Exclude uppercase letters")
	generateCmd.Flags().BoolVar(&generateNoLowercase, "no-lowercase", false, "Exclude lowercase letters")
	generateCmd.Flags().StringVar(&generateExclude, "exclude", "", "Characters to exclude")
	generateCmd.Flags().BoolVarP(&generateCopy, "copy", "c", false, "Copy the first password to the clipboard")
}

func executeGenerate(cmd *cobra.Command, args []string) error {
	if generateCount < 1 || generateCount > maxGenerateCount {
		return fmt.Errorf("count must be between 1 and %d", maxGenerateCount)
	}

	opts := cfg.GeneratorOptions()
	if generateLength > 0 {
		opts.Length = generateLength
	}
	if generateNoSymbols {
		opts.NoSymbols = true
	}
	if generateNoDigits {
		opts.NoDigits = true
	}
	if generateNoUppercase {
		opts.NoUppercase = true
	}
	if generateNoLowercase {
		opts.NoLowercase = true
	}
	if generateExclude != "" {
		opts.Exclude = generateExclude
	}

	for i := 0; i < generateCount; i++ {
		password, err := passgen.Generate(opts)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), password)

		if generateCopy && i == 0 {
			if err := clipboard.WriteAll(password); err != nil {
				return fmt.Errorf("failed to write clipboard: %w", err)
			}
			warnColor.Fprintln(cmd.ErrOrStderr(), "Copied to clipboard (accessible to all processes)")
		}
	}
	return nil
}
