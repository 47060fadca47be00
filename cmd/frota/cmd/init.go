/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ssargent/frota/pkg/config"
)

func newInitCmd(a *app) *cobra.Command {
	var force bool

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		Long: `Write a configuration file with default values.

The file is written to --config, or to ~/.config/frota/config.yaml.
When --file is given it becomes the catalog path.

Examples:
  frota init
  frota init --config ./frota.yaml --file ./viaturas.csv --force`,
		Args: cobra.NoArgs,
		// init must work before any config exists
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath := a.flags.configPath
			if configPath == "" {
				configPath = config.GetDefaultConfigPath()
			}

			if config.ConfigExists(configPath) && !force {
				cmd.Printf("Config already exists at %s. Use --force to overwrite.\n", configPath)
				return nil
			}

			cfg, err := config.BootstrapConfig(configPath, a.flags.file)
			if err != nil {
				return err
			}

			cmd.Printf("Wrote config to %s\n", configPath)
			cmd.Printf("Catalog file: %s\n", cfg.Catalog.Path)
			return nil
		},
	}

	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")
	return initCmd
}
