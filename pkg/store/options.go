package store

import (
	"io"
	"log/slog"

	"github.com/ssargent/frota/pkg/codec"
)

// Option configures Load and Save
type Option func(*options)

type options struct {
	delimiter rune
	logger    *slog.Logger
}

func defaultOptions() *options {
	return &options{
		delimiter: codec.DefaultDelimiter,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithDelimiter sets the field delimiter (comma by default)
func WithDelimiter(delimiter rune) Option {
	return func(o *options) {
		o.delimiter = delimiter
	}
}

// WithLogger sets the logger used to report skipped lines and totals
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func buildOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// LoadStats describes what Load saw in a file
type LoadStats struct {
	Lines   int  // Physical lines read
	Records int  // Records added to the catalog
	Skipped int  // Blank and comment lines
	Header  bool // Whether a header row was skipped
}
