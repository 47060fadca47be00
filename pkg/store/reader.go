package store

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ssargent/frota/pkg/vehicle"
)

const maxLineSize = 1024 * 1024

// LineReader provides sequential access to the lines of a catalog file
type LineReader struct {
	file    *os.File
	scanner *bufio.Scanner
	line    int
}

// NewLineReader opens path for reading. A missing file fails with
// vehicle.ErrNotFound, any other open failure with vehicle.ErrIO.
func NewLineReader(path string) (*LineReader, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: catalog file %s", vehicle.ErrNotFound, path)
		}
		return nil, fmt.Errorf("%w: %w", vehicle.ErrIO, err)
	}

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	return &LineReader{
		file:    file,
		scanner: scanner,
	}, nil
}

// Next advances to the next line. It returns false at end of file or on a
// read error; check Err afterwards.
func (r *LineReader) Next() bool {
	if !r.scanner.Scan() {
		return false
	}
	r.line++
	return true
}

// Text returns the current line without its line terminator
func (r *LineReader) Text() string {
	return r.scanner.Text()
}

// Line returns the 1-based number of the current line
func (r *LineReader) Line() int {
	return r.line
}

// Err returns the first read error, wrapped with vehicle.ErrIO
func (r *LineReader) Err() error {
	if err := r.scanner.Err(); err != nil {
		return fmt.Errorf("%w: read %s line %d: %w", vehicle.ErrIO, r.file.Name(), r.line+1, err)
	}
	return nil
}

// Close closes the underlying file
func (r *LineReader) Close() error {
	return r.file.Close()
}
