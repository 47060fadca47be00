// Package store loads catalogs from delimited text files and saves them back.
package store

import (
	"errors"
	"fmt"

	"github.com/ssargent/frota/pkg/catalog"
	"github.com/ssargent/frota/pkg/codec"
	"github.com/ssargent/frota/pkg/vehicle"
)

// Load reads the catalog file at path. See LoadWithStats.
func Load(path string, opts ...Option) (*catalog.Catalog, error) {
	c, _, err := LoadWithStats(path, opts...)
	return c, err
}

// LoadWithStats reads path line by line into a new catalog. Blank and '#'
// lines are skipped, as is a header row when it is the first data line.
// The first malformed, invalid or duplicate line aborts the load and no
// catalog is returned.
func LoadWithStats(path string, opts ...Option) (*catalog.Catalog, LoadStats, error) {
	o := buildOptions(opts)
	var stats LoadStats

	lc, err := codec.NewLineCodec(o.delimiter)
	if err != nil {
		return nil, stats, err
	}

	reader, err := NewLineReader(path)
	if err != nil {
		return nil, stats, err
	}
	defer reader.Close()

	cat := catalog.New()
	firstData := true
	for reader.Next() {
		stats.Lines++

		line, ok := codec.Relevant(reader.Text())
		if !ok {
			stats.Skipped++
			continue
		}

		if firstData {
			firstData = false
			if fields, err := lc.Fields(line); err == nil && lc.IsHeader(fields) {
				stats.Header = true
				continue
			}
		}

		r, err := lc.Decode(line)
		if err != nil {
			o.logger.Warn("rejecting catalog file", "path", path, "line", reader.Line(), "error", err)
			return nil, stats, lineError(reader.Line(), line, err)
		}

		if err := cat.Add(r); err != nil {
			o.logger.Warn("rejecting catalog file", "path", path, "line", reader.Line(), "plate", r.Plate())
			return nil, stats, fmt.Errorf("line %d: %w", reader.Line(), err)
		}
		stats.Records++
	}
	if err := reader.Err(); err != nil {
		return nil, stats, err
	}

	o.logger.Info("catalog loaded", "path", path, "records", stats.Records, "skipped", stats.Skipped)
	return cat, stats, nil
}

// lineError attaches the line number to format errors and prefixes others.
func lineError(line int, text string, err error) error {
	var fe *vehicle.FormatError
	if errors.As(err, &fe) {
		return &vehicle.FormatError{Line: line, Text: text, Reason: fe.Reason}
	}
	return fmt.Errorf("line %d: %w", line, err)
}

// Save writes a header row and every record of cat, in iteration order, to
// path, replacing any existing file. Failures wrap vehicle.ErrIO; cat is
// never modified.
func Save(cat *catalog.Catalog, path string, opts ...Option) error {
	o := buildOptions(opts)

	lc, err := codec.NewLineCodec(o.delimiter)
	if err != nil {
		return err
	}

	w, err := NewCatalogWriter(path, lc)
	if err != nil {
		return err
	}

	if err := w.WriteHeader(); err != nil {
		_ = w.Close()
		return err
	}
	for r := range cat.All() {
		if err := w.Write(r); err != nil {
			_ = w.Close()
			return err
		}
	}
	if err := w.Close(); err != nil {
		return err
	}

	o.logger.Info("catalog saved", "path", path, "records", w.Rows())
	return nil
}
