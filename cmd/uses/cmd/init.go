/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ssargent/tokenuses/pkg/config"
)

func newInitCmd() *cobra.Command {
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		Long: `Write a default configuration file.

The file is written to --config, or to the platform default location when
--config is not given. An existing file is only replaced with --force.

Examples:
  uses init
  uses init --config ./uses.yaml --expected TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA`,
		Args: cobra.NoArgs,
		// init must work even when the current config is broken.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("config")
			force, _ := cmd.Flags().GetBool("force")
			expected, _ := cmd.Flags().GetString("expected")

			if path == "" {
				path = config.GetDefaultConfigPath()
			}
			if config.ConfigExists(path) && !force {
				return fmt.Errorf("config already exists at %s (use --force to overwrite)", path)
			}

			cfg := config.DefaultConfig()
			if expected != "" {
				cfg.Owner.ExpectedProgram = expected
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := config.SaveConfig(cfg, path); err != nil {
				return err
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "Wrote config to %s\n", path)
			return err
		},
	}

	initCmd.Flags().Bool("force", false, "Overwrite an existing config file")
	initCmd.Flags().String("expected", "", "Program expected to own decoded accounts (base58)")

	return initCmd
}
