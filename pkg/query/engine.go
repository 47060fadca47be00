package query

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ssargent/frota/pkg/catalog"
	"github.com/ssargent/frota/pkg/vehicle"
)

// operand is the parsed comparison value of a query
type operand struct {
	text string
	year int
	date time.Time
}

func (q FieldQuery) operand() (operand, error) {
	switch q.Field {
	case FieldYear:
		year, err := strconv.Atoi(q.Value)
		if err != nil {
			return operand{}, fmt.Errorf("%w: year must be a number, got %q", ErrInvalidQuery, q.Value)
		}
		return operand{year: year}, nil
	case FieldDate:
		if q.Operator == OpContains {
			return operand{text: q.Value}, nil
		}
		date, err := vehicle.ParseDate(q.Value)
		if err != nil {
			return operand{}, fmt.Errorf("%w: %w", ErrInvalidQuery, err)
		}
		return operand{date: date}, nil
	default:
		return operand{text: strings.ToLower(q.Value)}, nil
	}
}

// Predicate compiles the query into a catalog predicate
func (q FieldQuery) Predicate() (catalog.Predicate, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	want, err := q.operand()
	if err != nil {
		return nil, err
	}

	if q.Operator == OpContains {
		needle := strings.ToLower(want.text)
		return func(r vehicle.Record) bool {
			return strings.Contains(strings.ToLower(textField(r, q.Field)), needle)
		}, nil
	}

	var compare func(vehicle.Record) int
	switch q.Field {
	case FieldYear:
		compare = func(r vehicle.Record) int {
			return cmp.Compare(r.RegistrationDate().Year(), want.year)
		}
	case FieldDate:
		compare = func(r vehicle.Record) int {
			return r.RegistrationDate().Compare(want.date)
		}
	default:
		compare = func(r vehicle.Record) int {
			return strings.Compare(strings.ToLower(textField(r, q.Field)), want.text)
		}
	}

	accept := acceptor(q.Operator)
	return func(r vehicle.Record) bool {
		return accept(compare(r))
	}, nil
}

// acceptor maps a three-way comparison result to the operator's outcome
func acceptor(op string) func(int) bool {
	switch op {
	case OpEqual:
		return func(c int) bool { return c == 0 }
	case OpNotEqual:
		return func(c int) bool { return c != 0 }
	case OpGreater:
		return func(c int) bool { return c > 0 }
	case OpLess:
		return func(c int) bool { return c < 0 }
	case OpGreaterEqual:
		return func(c int) bool { return c >= 0 }
	default: // OpLessEqual
		return func(c int) bool { return c <= 0 }
	}
}

func textField(r vehicle.Record, field string) string {
	switch field {
	case FieldPlate:
		return r.Plate()
	case FieldMake:
		return r.Make()
	case FieldModel:
		return r.Model()
	case FieldDate:
		return r.Date()
	}
	return ""
}

// All combines the queries with logical AND. No queries match everything.
func All(queries ...FieldQuery) (catalog.Predicate, error) {
	predicates := make([]catalog.Predicate, 0, len(queries))
	for _, q := range queries {
		p, err := q.Predicate()
		if err != nil {
			return nil, err
		}
		predicates = append(predicates, p)
	}

	return func(r vehicle.Record) bool {
		for _, p := range predicates {
			if !p(r) {
				return false
			}
		}
		return true
	}, nil
}
