package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pwkeep/pwkeep/internal/tui"
	"github.com/pwkeep/pwkeep/pkg/config"
	"github.com/pwkeep/pwkeep/pkg/storage"
)

var (
	dataDir  string
	flagDir  string
	flagUser string
	cfg      *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "pwkeep",
	Short: "pwkeep is a local, offline password keeper",
	Long: `A local password keeper with per-record encryption.

Every stored password is sealed with a key derived from your master
password. Nothing ever leaves your machine. Run pwkeep without a
subcommand to start the interactive interface.`,
	// PersistentPreRunE resolves the data directory and loads the optional
	// configuration file before any command runs.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if flagDir != "" {
			dataDir = flagDir
		} else {
			dataDir, err = storage.DataDir()
			if err != nil {
				return fmt.Errorf("failed to resolve data directory: %w", err)
			}
		}
		cfg, err = config.Load(dataDir)
		if err != nil {
			return err
		}
		if cfg.DataDir != "" && flagDir == "" {
			dataDir = cfg.DataDir
		}
		return nil
	},
	// Bare invocation starts the interactive interface.
	RunE: func(cmd *cobra.Command, args []string) error {
		return tui.Run(dataDir, cfg)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDir, "dir", "", "Data directory (default ~/.pwkeep, or $PWKEEP_DIR)")
	rootCmd.PersistentFlags().StringVarP(&flagUser, "user", "u", "", "Username (prompted if omitted)")
}
