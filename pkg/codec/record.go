package codec

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/ssargent/frota/pkg/vehicle"
)

// DefaultDelimiter separates fields when no delimiter is configured.
const DefaultDelimiter = ','

// FieldCount is the number of fields in every record line.
const FieldCount = 4

// Header is the column row written at the top of exported files.
var Header = []string{"Matricula", "Marca", "Modelo", "Data"}

// ErrInvalidDelimiter is returned by NewLineCodec for unusable delimiters.
var ErrInvalidDelimiter = errors.New("invalid delimiter")

// LineCodec converts between delimited text lines and vehicle records
type LineCodec struct {
	delimiter rune
}

// NewLineCodec creates a codec for the given field delimiter
func NewLineCodec(delimiter rune) (*LineCodec, error) {
	if !ValidDelimiter(delimiter) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDelimiter, delimiter)
	}
	return &LineCodec{delimiter: delimiter}, nil
}

// ValidDelimiter reports whether r can separate fields. Quotes, line breaks
// and the comment marker are rejected.
func ValidDelimiter(r rune) bool {
	switch r {
	case 0, '"', '\r', '\n', '#', utf8.RuneError:
		return false
	}
	return utf8.ValidRune(r)
}

// Delimiter returns the field delimiter
func (c *LineCodec) Delimiter() rune {
	return c.delimiter
}

// Relevant trims line and reports whether it carries data. Blank lines and
// lines whose first non-space character is '#' are comments.
func Relevant(line string) (string, bool) {
	line = strings.TrimSpace(line)
	if line == "" || line[0] == '#' {
		return line, false
	}
	return line, true
}

// Fields splits line into exactly FieldCount trimmed fields. Quoted fields
// written by Encode are unquoted.
func (c *LineCodec) Fields(line string) ([]string, error) {
	r := csv.NewReader(strings.NewReader(line))
	r.Comma = c.delimiter
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	fields, err := r.Read()
	if err != nil {
		return nil, &vehicle.FormatError{Text: line, Reason: "unreadable line"}
	}
	if len(fields) != FieldCount {
		return nil, &vehicle.FormatError{
			Text:   line,
			Reason: fmt.Sprintf("expected %d fields, got %d", FieldCount, len(fields)),
		}
	}

	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	return fields, nil
}

// Decode parses a line of the form plate,make,model,YYYY-MM-DD into a record.
// Malformed lines fail with *vehicle.FormatError, invalid values with
// *vehicle.AttributeError.
func (c *LineCodec) Decode(line string) (vehicle.Record, error) {
	fields, err := c.Fields(line)
	if err != nil {
		return vehicle.Record{}, err
	}

	date, err := vehicle.ParseDate(fields[3])
	if err != nil {
		return vehicle.Record{}, err
	}

	return vehicle.New(fields[0], fields[1], fields[2], date)
}

// Encode renders r as one delimited line without a trailing newline.
func (c *LineCodec) Encode(r vehicle.Record) (string, error) {
	if r.IsZero() {
		return "", fmt.Errorf("encode: %w", &vehicle.AttributeError{Field: vehicle.FieldPlate})
	}
	return c.join(r.Row())
}

// EncodeHeader renders the Header row.
func (c *LineCodec) EncodeHeader() (string, error) {
	return c.join(Header)
}

// IsHeader reports whether fields are the Header row, ignoring case.
func (c *LineCodec) IsHeader(fields []string) bool {
	if len(fields) != len(Header) {
		return false
	}
	for i, name := range Header {
		if !strings.EqualFold(strings.TrimSpace(fields[i]), name) {
			return false
		}
	}
	return true
}

// NewWriter returns a csv.Writer that emits rows with this codec's delimiter.
func (c *LineCodec) NewWriter(w io.Writer) *csv.Writer {
	cw := csv.NewWriter(w)
	cw.Comma = c.delimiter
	return cw
}

func (c *LineCodec) join(fields []string) (string, error) {
	var sb strings.Builder
	cw := c.NewWriter(&sb)
	if err := cw.Write(fields); err != nil {
		return "", err
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return "", err
	}
	return strings.TrimSuffix(sb.String(), "\n"), nil
}
