package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newHistoryCmd(a *app) *cobra.Command {
	var limit int
	var format string

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Show journaled catalog operations",
		Long: `Show the most recent operations recorded in the journal, oldest first.
The journal must be enabled in the config file (journal.enabled: true).

Examples:
  frota history
  frota history --limit 0 --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			if limit < 0 {
				return fmt.Errorf("--limit must not be negative")
			}

			j, err := a.openJournal()
			if err != nil {
				return err
			}
			if j == nil {
				return errJournalDisabled
			}

			entries, err := j.Entries(cmd.Context(), limit)
			if err != nil {
				return err
			}
			return outputEntries(cmd.OutOrStdout(), format, entries)
		},
	}

	historyCmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of entries to show (0 for all)")
	historyCmd.Flags().StringVarP(&format, "format", "o", formatTable, "output format (table or json)")
	return historyCmd
}
