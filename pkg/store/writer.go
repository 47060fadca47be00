package store

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ssargent/frota/pkg/codec"
	"github.com/ssargent/frota/pkg/vehicle"
)

// CatalogWriter writes a header and record rows to a catalog file
type CatalogWriter struct {
	file   *os.File
	buf    *bufio.Writer
	csv    *csv.Writer
	rows   int
	closed bool
}

// NewCatalogWriter creates or truncates path. Missing parent directories are
// created.
func NewCatalogWriter(path string, c *codec.LineCodec) (*CatalogWriter, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("%w: %w", vehicle.ErrIO, err)
		}
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", vehicle.ErrIO, err)
	}

	buf := bufio.NewWriterSize(file, 64*1024)
	return &CatalogWriter{
		file: file,
		buf:  buf,
		csv:  c.NewWriter(buf),
	}, nil
}

// WriteHeader writes the Matricula,Marca,Modelo,Data row
func (w *CatalogWriter) WriteHeader() error {
	return w.write(codec.Header)
}

// Write appends one record row
func (w *CatalogWriter) Write(r vehicle.Record) error {
	if err := w.write(r.Row()); err != nil {
		return err
	}
	w.rows++
	return nil
}

// Rows returns the number of records written so far
func (w *CatalogWriter) Rows() int {
	return w.rows
}

func (w *CatalogWriter) write(fields []string) error {
	if err := w.csv.Write(fields); err != nil {
		return fmt.Errorf("%w: %w", vehicle.ErrIO, err)
	}
	return nil
}

// Close flushes buffered rows, fsyncs and closes the file
func (w *CatalogWriter) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	w.csv.Flush()
	err := w.csv.Error()
	if err == nil {
		err = w.buf.Flush()
	}
	if err == nil {
		err = w.file.Sync()
	}
	if closeErr := w.file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("%w: %w", vehicle.ErrIO, err)
	}
	return nil
}
