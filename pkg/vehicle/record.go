// Package vehicle defines the validated vehicle record and the error kinds
// used across the registry.
package vehicle

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the on-disk and display format of registration dates.
const DateLayout = "2006-01-02"

// Record is one vehicle. The zero value is not a valid record; use New.
// Fields are unexported so a Record cannot change after construction.
type Record struct {
	plate      string
	make       string
	model      string
	registered time.Time
}

// New validates its arguments and returns a Record.
//
// Checks run in order: plate, model, make, registration year. The first
// failure is returned as an *AttributeError. Surrounding whitespace is
// trimmed from the string fields and the time of day is dropped from date.
func New(plate, manufacturer, model string, date time.Time) (Record, error) {
	plate = strings.TrimSpace(plate)
	manufacturer = strings.TrimSpace(manufacturer)
	model = strings.TrimSpace(model)

	if !PlateValid(plate) {
		return Record{}, &AttributeError{Field: FieldPlate, Value: plate}
	}
	if !ModelValid(model) {
		return Record{}, &AttributeError{Field: FieldModel, Value: model}
	}
	if !MakeValid(manufacturer) {
		return Record{}, &AttributeError{Field: FieldMake, Value: manufacturer}
	}
	if !YearValid(date) {
		return Record{}, &AttributeError{Field: FieldDate, Value: date.Format(DateLayout)}
	}

	y, m, d := date.Date()
	return Record{
		plate:      plate,
		make:       manufacturer,
		model:      model,
		registered: time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
	}, nil
}

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, &FormatError{Text: s, Reason: "date must be YYYY-MM-DD"}
	}
	return t, nil
}

// Plate returns the license plate, the record's unique key.
func (r Record) Plate() string { return r.plate }

// Make returns the manufacturer.
func (r Record) Make() string { return r.make }

// Model returns the model name.
func (r Record) Model() string { return r.model }

// RegistrationDate returns the registration date at midnight UTC.
func (r Record) RegistrationDate() time.Time { return r.registered }

// Date returns the registration date formatted as YYYY-MM-DD.
func (r Record) Date() string { return r.registered.Format(DateLayout) }

// IsZero reports whether r is the zero Record.
func (r Record) IsZero() bool { return r.plate == "" }

// Row returns the canonical export fields: plate, make, model, date.
func (r Record) Row() []string {
	return []string{r.plate, r.make, r.model, r.Date()}
}

func (r Record) String() string {
	return fmt.Sprintf("Vehicle[plate=%s make=%q model=%q date=%s]", r.plate, r.make, r.model, r.Date())
}
