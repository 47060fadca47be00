package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ssargent/frota/pkg/shell"
	"github.com/ssargent/frota/pkg/storage"
)

func newShellCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Open the interactive menu",
		Long: `Load the catalog file and open the interactive menu.

Changes made in the menu are kept in memory until they are saved with
the G option.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(cmd, a)
		},
	}
}

func runShell(cmd *cobra.Command, a *app) error {
	cat, err := a.loadCatalog(cmd)
	if err != nil {
		return err
	}
	a.metrics.SetCatalogRecords(cat.Len())
	a.journalEntry(cmd, storage.Entry{
		Op:     storage.OpLoad,
		Detail: fmt.Sprintf("%s (%d records)", a.cfg.Catalog.Path, cat.Len()),
	})

	opts := []shell.Option{
		shell.WithExportPath(a.cfg.Catalog.ExportPath),
		shell.WithDelimiter(a.delimiter),
		shell.WithIndent(a.cfg.Display.Indent),
		shell.WithClearScreen(a.cfg.Display.ClearScreen),
		shell.WithPause(a.cfg.Display.Pause),
		shell.WithLogger(a.logger),
		shell.WithMetrics(a.metrics),
	}
	j, err := a.openJournal()
	if err != nil {
		a.logger.Warn("journal unavailable", "error", err)
	} else if j != nil {
		opts = append(opts, shell.WithJournal(j))
	}

	session := shell.New(cat, cmd.InOrStdin(), cmd.OutOrStdout(), opts...)
	return session.Run(cmd.Context())
}
