package vehicle

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// MinYear is the earliest accepted registration year.
const MinYear = 1990

// MinNameLength is the minimum number of characters for make and model.
const MinNameLength = 3

// PlateValid reports whether s is a plate of the form DD-L-DD, where the
// middle segment is one or more uppercase ASCII letters.
func PlateValid(s string) bool {
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return false
	}
	if !isDigits(parts[0], 2) || !isDigits(parts[2], 2) {
		return false
	}
	return isUpperLetters(parts[1])
}

// MakeValid reports whether s is an acceptable make: at least MinNameLength
// characters once trimmed, none of them control characters.
func MakeValid(s string) bool {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) < MinNameLength {
		return false
	}
	return strings.IndexFunc(s, unicode.IsControl) < 0
}

// ModelValid reports whether s is an acceptable model.
func ModelValid(s string) bool {
	return MakeValid(s)
}

// YearValid reports whether t falls in or after MinYear. Future dates are accepted.
func YearValid(t time.Time) bool {
	return t.Year() >= MinYear
}

func isDigits(s string, n int) bool {
	if len(s) != n {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func isUpperLetters(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return true
}
