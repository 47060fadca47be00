package vehicle

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNew(t *testing.T) {
	t.Run("valid record", func(t *testing.T) {
		r, err := New("11-AAA-22", "Toyota", "Corolla", date(2015, time.March, 1))
		require.NoError(t, err)

		assert.Equal(t, "11-AAA-22", r.Plate())
		assert.Equal(t, "Toyota", r.Make())
		assert.Equal(t, "Corolla", r.Model())
		assert.Equal(t, "2015-03-01", r.Date())
		assert.False(t, r.IsZero())
	})

	t.Run("trims whitespace and time of day", func(t *testing.T) {
		r, err := New(" 11-AAA-22 ", " Toyota ", "Corolla\t", time.Date(2015, time.March, 1, 17, 45, 0, 0, time.Local))
		require.NoError(t, err)

		assert.Equal(t, "11-AAA-22", r.Plate())
		assert.Equal(t, "Toyota", r.Make())
		assert.Equal(t, "Corolla", r.Model())
		assert.Equal(t, date(2015, time.March, 1), r.RegistrationDate())
	})

	t.Run("year threshold", func(t *testing.T) {
		_, err := New("11-AAA-22", "Toyota", "Corolla", date(1989, time.December, 31))
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidAttribute))

		var attrErr *AttributeError
		require.True(t, errors.As(err, &attrErr))
		assert.Equal(t, FieldDate, attrErr.Field)
		assert.Equal(t, "1989-12-31", attrErr.Value)

		_, err = New("11-AAA-22", "Toyota", "Corolla", date(1990, time.January, 1))
		assert.NoError(t, err)
	})

	testCases := []struct {
		name  string
		plate string
		make  string
		model string
		field string
	}{
		{name: "bad plate", plate: "1-AAA-22", make: "Toyota", model: "Corolla", field: FieldPlate},
		{name: "bad model", plate: "11-AAA-22", make: "Toyota", model: "C3", field: FieldModel},
		{name: "bad make", plate: "11-AAA-22", make: "VW", model: "Golf", field: FieldMake},
		{name: "plate checked before model", plate: "11-aaa-22", make: "VW", model: "C3", field: FieldPlate},
		{name: "model checked before make", plate: "11-AAA-22", make: "VW", model: "C3", field: FieldModel},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r, err := New(tc.plate, tc.make, tc.model, date(2000, time.January, 1))
			require.Error(t, err)
			assert.True(t, r.IsZero())

			var attrErr *AttributeError
			require.True(t, errors.As(err, &attrErr))
			assert.Equal(t, tc.field, attrErr.Field)
		})
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2020-07-10")
	require.NoError(t, err)
	assert.Equal(t, date(2020, time.July, 10), d)

	for _, bad := range []string{"", "2020/07/10", "10-07-2020", "2020-13-01", "2020-02-30"} {
		_, err := ParseDate(bad)
		assert.ErrorIs(t, err, ErrFormat, "input %q", bad)
	}
}

func TestRecord_Rendering(t *testing.T) {
	r, err := New("99-ZZZ-88", "Ford", "Focus", date(2020, time.July, 10))
	require.NoError(t, err)

	assert.Equal(t, []string{"99-ZZZ-88", "Ford", "Focus", "2020-07-10"}, r.Row())
	assert.Equal(t, `Vehicle[plate=99-ZZZ-88 make="Ford" model="Focus" date=2020-07-10]`, r.String())
}

func TestErrors(t *testing.T) {
	attrErr := &AttributeError{Field: FieldMake, Value: "VW"}
	assert.Equal(t, `invalid make "VW"`, attrErr.Error())

	formatErr := &FormatError{Line: 3, Text: "a,b", Reason: "expected 4 fields"}
	assert.Equal(t, `line 3: expected 4 fields: "a,b"`, formatErr.Error())
	assert.ErrorIs(t, formatErr, ErrFormat)
}
