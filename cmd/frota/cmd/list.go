package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/ssargent/frota/pkg/query"
	"github.com/ssargent/frota/pkg/vehicle"
)

func newListCmd(a *app) *cobra.Command {
	var makeFilter, format string

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List vehicles",
		Long: `List every vehicle in the catalog, in file order.

Examples:
  frota list
  frota list --make toyota --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			cat, err := a.loadCatalog(cmd)
			if err != nil {
				return err
			}
			if makeFilter != "" {
				cat = cat.Search(func(r vehicle.Record) bool {
					return strings.EqualFold(r.Make(), strings.TrimSpace(makeFilter))
				})
			}
			return outputCatalog(cmd.OutOrStdout(), format, cat)
		},
	}

	listCmd.Flags().StringVar(&makeFilter, "make", "", "only list vehicles of this make (case-insensitive)")
	listCmd.Flags().StringVarP(&format, "format", "o", formatTable, "output format (table or json)")
	return listCmd
}

func newGetCmd(a *app) *cobra.Command {
	var format string

	getCmd := &cobra.Command{
		Use:   "get <plate>",
		Short: "Show one vehicle",
		Long: `Show the vehicle registered under a plate.

Example:
  frota get 12-AB-34`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			cat, err := a.loadCatalog(cmd)
			if err != nil {
				return err
			}
			r, err := cat.Get(normalizePlate(args[0]))
			if err != nil {
				return err
			}
			return outputVehicle(cmd.OutOrStdout(), format, r)
		},
	}

	getCmd.Flags().StringVarP(&format, "format", "o", formatTable, "output format (table or json)")
	return getCmd
}

func newSearchCmd(a *app) *cobra.Command {
	var where []string
	var format string

	searchCmd := &cobra.Command{
		Use:   "search",
		Short: "Search vehicles by field",
		Long: `Search vehicles with one or more field conditions. All conditions must match.

Fields: plate, make, model, date, year
Operators: =, !=, >, <, >=, <=, ~ (contains)

Text comparisons ignore case. Year compares numerically and date
compares calendar dates (YYYY-MM-DD).

Examples:
  frota search --where make=toyota
  frota search --where "year>=2015" --where "model~cor"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			queries, err := query.ParseAll(where)
			if err != nil {
				return err
			}
			match, err := query.All(queries...)
			if err != nil {
				return err
			}

			cat, err := a.loadCatalog(cmd)
			if err != nil {
				return err
			}
			a.logger.Debug("searching catalog", "conditions", len(queries), "records", cat.Len())
			return outputCatalog(cmd.OutOrStdout(), format, cat.Search(match))
		},
	}

	searchCmd.Flags().StringArrayVarP(&where, "where", "w", nil, "condition such as make=Toyota (repeatable)")
	searchCmd.Flags().StringVarP(&format, "format", "o", formatTable, "output format (table or json)")
	return searchCmd
}

// normalizePlate trims and upper-cases a plate typed on the command line.
func normalizePlate(plate string) string {
	return strings.ToUpper(strings.TrimSpace(plate))
}
