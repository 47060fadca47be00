package vehicle

import (
	"errors"
	"fmt"
)

// Error kinds shared by every package that handles vehicle records.
var (
	// ErrInvalidAttribute is returned when a field fails validation.
	ErrInvalidAttribute = errors.New("invalid attribute")

	// ErrFormat is returned for malformed delimited lines or unparsable dates.
	ErrFormat = errors.New("malformed record")

	// ErrDuplicateKey is returned when a plate is already present in a catalog.
	ErrDuplicateKey = errors.New("duplicate plate")

	// ErrNotFound is returned for absent plates and missing catalog files.
	ErrNotFound = errors.New("not found")

	// ErrIO is returned for read/write failures unrelated to content.
	ErrIO = errors.New("i/o failure")
)

// Field names used in AttributeError.
const (
	FieldPlate = "plate"
	FieldMake  = "make"
	FieldModel = "model"
	FieldDate  = "date"
)

// AttributeError reports the field and value that failed validation
type AttributeError struct {
	Field string
	Value string
}

func (e *AttributeError) Error() string {
	if e.Field == FieldDate {
		return fmt.Sprintf("invalid %s %q: year must be >= %d", e.Field, e.Value, MinYear)
	}
	return fmt.Sprintf("invalid %s %q", e.Field, e.Value)
}

func (e *AttributeError) Unwrap() error {
	return ErrInvalidAttribute
}

// FormatError reports a line that could not be turned into a record.
// Line is 1-based and zero when the text did not come from a file.
type FormatError struct {
	Line   int
	Text   string
	Reason string
}

func (e *FormatError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s: %q", e.Line, e.Reason, e.Text)
	}
	return fmt.Sprintf("%s: %q", e.Reason, e.Text)
}

func (e *FormatError) Unwrap() error {
	return ErrFormat
}
