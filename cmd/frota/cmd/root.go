/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/ssargent/frota/pkg/di"
)

var container *di.Container

// SetContainer injects the dependency container used by every command
func SetContainer(c *di.Container) {
	container = c
}

// newRootCmd builds the command tree around a
func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "frota",
		Short: "Frota - vehicle fleet catalog",
		Long: `Frota keeps a catalog of vehicles identified by their licence plate
in a delimited text file.

Run without a subcommand to open the interactive menu.

Examples:
  frota
  frota list --make Toyota
  frota add 12-AB-34 Renault Clio 2019-05-02
  frota search --where "year>=2015" --where "make~ren"`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(cmd, a)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&a.flags.configPath, "config", "c", "", "config file (default ~/.config/frota/config.yaml)")
	flags.StringVarP(&a.flags.file, "file", "f", "", "catalog file (overrides catalog.path)")
	flags.StringVar(&a.flags.delimiter, "delimiter", "", "field delimiter (overrides catalog.delimiter)")
	flags.StringVar(&a.flags.logLevel, "log-level", "", "log level: debug, info, warn or error")

	rootCmd.AddCommand(
		newShellCmd(a),
		newListCmd(a),
		newGetCmd(a),
		newAddCmd(a),
		newRemoveCmd(a),
		newSearchCmd(a),
		newExportCmd(a),
		newHistoryCmd(a),
		newInitCmd(a),
	)

	return rootCmd
}

// execute runs the command tree with args and always releases resources.
func execute(ctx context.Context, a *app, rootCmd *cobra.Command) error {
	err := rootCmd.ExecuteContext(ctx)
	if cerr := a.close(); err == nil {
		err = cerr
	}
	return err
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a := newApp(container)
	if err := execute(ctx, a, newRootCmd(a)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
