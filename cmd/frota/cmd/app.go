package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/ssargent/frota/pkg/catalog"
	"github.com/ssargent/frota/pkg/config"
	"github.com/ssargent/frota/pkg/di"
	"github.com/ssargent/frota/pkg/logging"
	"github.com/ssargent/frota/pkg/metrics"
	"github.com/ssargent/frota/pkg/storage"
	"github.com/ssargent/frota/pkg/store"
	"github.com/ssargent/frota/pkg/vehicle"
)

// errJournalDisabled is returned by commands that need the journal
var errJournalDisabled = errors.New("journal is disabled; set journal.enabled in the config file")

// globalFlags are the persistent flags shared by every command
type globalFlags struct {
	configPath string
	file       string
	delimiter  string
	logLevel   string
}

// app is the state shared by a single command invocation
type app struct {
	flags     globalFlags
	container *di.Container

	cfg        *config.Config
	configPath string
	delimiter  rune
	logger     *slog.Logger
	logCloser  io.Closer
	metrics    *metrics.Metrics
	journal    *storage.Journal
}

func newApp(c *di.Container) *app {
	if c == nil {
		c = di.NewContainer()
	}
	return &app{container: c, logger: logging.Discard()}
}

// setup resolves the configuration and builds the logger. An explicit
// --config must exist; the default location is optional.
func (a *app) setup(cmd *cobra.Command) error {
	a.configPath = a.flags.configPath
	explicit := a.configPath != ""
	if !explicit {
		a.configPath = config.GetDefaultConfigPath()
	}

	cfg := config.DefaultConfig()
	if explicit || config.ConfigExists(a.configPath) {
		loaded, err := config.LoadConfig(a.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("file") {
		cfg.Catalog.Path = a.flags.file
	}
	if flags.Changed("delimiter") {
		cfg.Catalog.Delimiter = a.flags.delimiter
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = a.flags.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	delimiter, err := cfg.Catalog.DelimiterRune()
	if err != nil {
		return err
	}

	logger, closer, err := logging.New(cfg.Logging, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.delimiter = delimiter
	a.logger = logger
	a.logCloser = closer
	a.metrics = a.container.GetMetrics()
	a.logger.Debug("configuration resolved", "path", a.configPath, "catalog", cfg.Catalog.Path)
	return nil
}

// openJournal opens the journal on first use. It returns nil when the
// journal is disabled.
func (a *app) openJournal() (*storage.Journal, error) {
	if a.journal != nil || !a.cfg.Journal.Enabled {
		return a.journal, nil
	}
	j, err := a.container.GetJournalFactory().OpenJournal(a.cfg.Journal.Dir)
	if err != nil {
		return nil, err
	}
	a.journal = j
	return j, nil
}

// journalEntry records e when the journal is enabled. Failures are logged.
func (a *app) journalEntry(cmd *cobra.Command, e storage.Entry) {
	j, err := a.openJournal()
	if err == nil && j != nil {
		_, err = j.Append(cmd.Context(), e)
	}
	if err != nil {
		a.logger.Warn("failed to journal operation", "op", e.Op, "plate", e.Plate, "error", err)
	}
}

func (a *app) storeOptions() []store.Option {
	return []store.Option{store.WithDelimiter(a.delimiter), store.WithLogger(a.logger)}
}

// loadCatalog reads the configured catalog file. A missing file yields an
// empty catalog and a warning; anything else is fatal.
func (a *app) loadCatalog(cmd *cobra.Command) (*catalog.Catalog, error) {
	path := a.cfg.Catalog.Path

	start := time.Now()
	cat, err := store.Load(path, a.storeOptions()...)
	if errors.Is(err, vehicle.ErrNotFound) {
		a.logger.Warn("catalog file not found, starting empty", "path", path)
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: catalog file %s not found, starting with an empty catalog\n", path)
		cat, err = catalog.New(), nil
	}
	a.metrics.RecordLoad(catalogLen(cat), err == nil, time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog %s: %w", path, err)
	}

	return cat, nil
}

func catalogLen(cat *catalog.Catalog) int {
	if cat == nil {
		return 0
	}
	return cat.Len()
}

// saveCatalog writes cat to path and journals the save. extra options are
// applied after the configured ones.
func (a *app) saveCatalog(cmd *cobra.Command, cat *catalog.Catalog, path string, extra ...store.Option) error {
	err := store.Save(cat, path, append(a.storeOptions(), extra...)...)
	a.metrics.RecordOperation(storage.OpSave, err == nil)
	if err != nil {
		return fmt.Errorf("failed to save catalog: %w", err)
	}
	a.metrics.SetCatalogRecords(cat.Len())
	a.journalEntry(cmd, storage.Entry{Op: storage.OpSave, Detail: path})
	return nil
}

// close writes the metrics textfile and releases the journal and log file.
func (a *app) close() error {
	var errs []error
	if a.cfg != nil && a.cfg.Metrics.Textfile != "" && a.metrics != nil {
		if err := a.metrics.WriteTextfile(a.cfg.Metrics.Textfile); err != nil {
			errs = append(errs, fmt.Errorf("failed to write metrics: %w", err))
		}
	}
	if a.journal != nil {
		errs = append(errs, a.journal.Close())
		a.journal = nil
	}
	if a.logCloser != nil {
		errs = append(errs, a.logCloser.Close())
		a.logCloser = nil
	}
	a.cfg = nil
	return errors.Join(errs...)
}
