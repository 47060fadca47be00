package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ssargent/frota/pkg/config"
	"github.com/ssargent/frota/pkg/storage"
	"github.com/ssargent/frota/pkg/store"
	"github.com/ssargent/frota/pkg/vehicle"
)

func newAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add <plate> <make> <model> <date>",
		Short: "Add a vehicle and rewrite the catalog file",
		Long: `Add a vehicle to the catalog file.

The plate must look like 12-AB-34, make and model need at least three
characters and the registration date (YYYY-MM-DD) must be in 1990 or later.

Example:
  frota add 12-AB-34 Renault Clio 2019-05-02`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			plate := normalizePlate(args[0])

			date, err := vehicle.ParseDate(args[3])
			if err != nil {
				return err
			}
			r, err := vehicle.New(plate, args[1], args[2], date)
			if err != nil {
				return err
			}

			cat, err := a.loadCatalog(cmd)
			if err != nil {
				return err
			}
			err = cat.Add(r)
			a.metrics.RecordOperation(storage.OpAdd, err == nil)
			if err != nil {
				return err
			}
			if err := a.saveCatalog(cmd, cat, a.cfg.Catalog.Path); err != nil {
				return err
			}
			a.journalEntry(cmd, storage.Entry{Op: storage.OpAdd, Plate: r.Plate(), Detail: r.Make() + " " + r.Model()})

			fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s %s, %s)\n", r.Plate(), r.Make(), r.Model(), r.Date())
			return nil
		},
	}
}

func newRemoveCmd(a *app) *cobra.Command {
	var yes bool

	removeCmd := &cobra.Command{
		Use:     "remove <plate>",
		Aliases: []string{"rm"},
		Short:   "Remove a vehicle and rewrite the catalog file",
		Long: `Remove the vehicle registered under a plate from the catalog file.

Examples:
  frota remove 12-AB-34
  frota remove 12-AB-34 --yes`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plate := normalizePlate(args[0])

			cat, err := a.loadCatalog(cmd)
			if err != nil {
				return err
			}
			r, err := cat.Get(plate)
			if err != nil {
				a.metrics.RecordOperation(storage.OpRemove, false)
				return err
			}

			if !yes {
				fmt.Fprintf(cmd.OutOrStdout(), "Are you sure you want to remove %s (%s %s)? (y/N): ", r.Plate(), r.Make(), r.Model())
				response, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				response = strings.ToLower(strings.TrimSpace(response))
				if response != "y" && response != "yes" {
					fmt.Fprintln(cmd.OutOrStdout(), "Removal cancelled")
					return nil
				}
			}

			if _, err := cat.Remove(plate); err != nil {
				return err
			}
			a.metrics.RecordOperation(storage.OpRemove, true)
			if err := a.saveCatalog(cmd, cat, a.cfg.Catalog.Path); err != nil {
				return err
			}
			a.journalEntry(cmd, storage.Entry{Op: storage.OpRemove, Plate: plate})

			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", plate)
			return nil
		},
	}

	removeCmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return removeCmd
}

func newExportCmd(a *app) *cobra.Command {
	var outDelimiter string

	exportCmd := &cobra.Command{
		Use:   "export [path]",
		Short: "Write the catalog to another file",
		Long: `Write the catalog, with a header row, to path. Without a path the
configured export path is used.

Examples:
  frota export backup.csv
  frota export --output-delimiter ';' backup.csv`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.cfg.Catalog.ExportPath
			if len(args) == 1 {
				path = args[0]
			}

			var extra []store.Option
			if outDelimiter != "" {
				d, err := config.Catalog{Delimiter: outDelimiter}.DelimiterRune()
				if err != nil {
					return err
				}
				extra = append(extra, store.WithDelimiter(d))
			}

			cat, err := a.loadCatalog(cmd)
			if err != nil {
				return err
			}
			if err := a.saveCatalog(cmd, cat, path, extra...); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d vehicle(s) to %s\n", cat.Len(), path)
			return nil
		},
	}

	exportCmd.Flags().StringVar(&outDelimiter, "output-delimiter", "", "delimiter for the exported file (default: the catalog delimiter)")
	return exportCmd
}
