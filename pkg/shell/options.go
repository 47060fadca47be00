package shell

import (
	"log/slog"

	"github.com/ssargent/frota/pkg/codec"
	"github.com/ssargent/frota/pkg/logging"
	"github.com/ssargent/frota/pkg/metrics"
	"github.com/ssargent/frota/pkg/storage"
)

// DefaultExportPath is used when the save prompt is left empty
const DefaultExportPath = "viaturas_export.csv"

// DefaultIndent is the number of spaces before every message
const DefaultIndent = 3

// Option configures a Session
type Option func(*options)

type options struct {
	exportPath  string
	delimiter   rune
	indent      int
	clearScreen bool
	pause       bool
	logger      *slog.Logger
	journal     storage.Recorder
	metrics     *metrics.Metrics
}

func defaultOptions() *options {
	return &options{
		exportPath: DefaultExportPath,
		delimiter:  codec.DefaultDelimiter,
		indent:     DefaultIndent,
		logger:     logging.Discard(),
	}
}

// WithExportPath sets the file used when the save prompt is left empty
func WithExportPath(path string) Option {
	return func(o *options) {
		if path != "" {
			o.exportPath = path
		}
	}
}

// WithDelimiter sets the delimiter used when saving
func WithDelimiter(delimiter rune) Option {
	return func(o *options) {
		o.delimiter = delimiter
	}
}

// WithIndent sets the indentation of messages and prompts
func WithIndent(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.indent = n
		}
	}
}

// WithClearScreen clears the terminal before each menu
func WithClearScreen(enabled bool) Option {
	return func(o *options) {
		o.clearScreen = enabled
	}
}

// WithPause waits for ENTER after each action
func WithPause(enabled bool) Option {
	return func(o *options) {
		o.pause = enabled
	}
}

// WithLogger sets the session logger
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithJournal records every successful add, remove and save
func WithJournal(journal storage.Recorder) Option {
	return func(o *options) {
		o.journal = journal
	}
}

// WithMetrics counts operations and tracks the catalog size
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}
