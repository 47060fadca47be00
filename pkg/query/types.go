package query

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrInvalidQuery is wrapped by every parse and validation failure
var ErrInvalidQuery = errors.New("invalid query")

// Queryable fields
const (
	FieldPlate = "plate"
	FieldMake  = "make"
	FieldModel = "model"
	FieldDate  = "date"
	FieldYear  = "year"
)

// Comparison operators
const (
	OpEqual        = "="
	OpNotEqual     = "!="
	OpGreater      = ">"
	OpLess         = "<"
	OpGreaterEqual = ">="
	OpLessEqual    = "<="
	OpContains     = "~"
)

// Fields lists the field names accepted by Validate
var Fields = []string{FieldPlate, FieldMake, FieldModel, FieldDate, FieldYear}

// operators in match order: two-character operators must be tried first.
var operators = []string{OpGreaterEqual, OpLessEqual, OpNotEqual, OpEqual, OpGreater, OpLess, OpContains}

// FieldQuery represents a single field-based query condition
type FieldQuery struct {
	Field    string // Field name to query (e.g., "make", "year")
	Operator string // Comparison operator: "=", "!=", ">", "<", ">=", "<=", "~"
	Value    string // Value to compare against
}

// Parse reads an expression such as "make=Toyota" or "year >= 2015".
// The field name is case-insensitive and surrounding spaces are ignored.
func Parse(expr string) (FieldQuery, error) {
	pos, op := -1, ""
	for _, candidate := range operators {
		if i := strings.Index(expr, candidate); i >= 0 && (pos < 0 || i < pos) {
			pos, op = i, candidate
		}
	}
	if pos < 0 {
		return FieldQuery{}, fmt.Errorf("%w: no operator in %q", ErrInvalidQuery, expr)
	}

	q := FieldQuery{
		Field:    strings.ToLower(strings.TrimSpace(expr[:pos])),
		Operator: op,
		Value:    strings.TrimSpace(expr[pos+len(op):]),
	}
	if err := q.Validate(); err != nil {
		return FieldQuery{}, err
	}
	return q, nil
}

// ParseAll parses every expression, stopping at the first failure
func ParseAll(exprs []string) ([]FieldQuery, error) {
	queries := make([]FieldQuery, 0, len(exprs))
	for _, expr := range exprs {
		q, err := Parse(expr)
		if err != nil {
			return nil, err
		}
		queries = append(queries, q)
	}
	return queries, nil
}

// Validate checks if the query is properly formed
func (q FieldQuery) Validate() error {
	if q.Field == "" {
		return fmt.Errorf("%w: field name cannot be empty", ErrInvalidQuery)
	}
	if !slices.Contains(Fields, q.Field) {
		return fmt.Errorf("%w: unknown field %q", ErrInvalidQuery, q.Field)
	}
	if !slices.Contains(operators, q.Operator) {
		return fmt.Errorf("%w: invalid operator %q", ErrInvalidQuery, q.Operator)
	}
	if q.Value == "" {
		return fmt.Errorf("%w: missing value for %s", ErrInvalidQuery, q.Field)
	}
	if q.Operator == OpContains && q.Field == FieldYear {
		return fmt.Errorf("%w: %s does not support %s", ErrInvalidQuery, q.Field, OpContains)
	}

	_, err := q.operand()
	return err
}

// String renders the query in the form accepted by Parse
func (q FieldQuery) String() string {
	return q.Field + q.Operator + q.Value
}
