// Package quarter handles calendar-quarter labels of the form "2008q3".
//
// Labels with a four-digit year sort chronologically under plain string
// comparison, which the GDP and housing filters rely on.
package quarter

import (
	"fmt"
	"strconv"
	"strings"

	apperrors "collegetowns/internal/errors"
)

// Label is a quarter token "YYYYqN" with N in 1..4.
type Label string

// Parse validates s as a quarter label.
func Parse(s string) (Label, error) {
	s = strings.TrimSpace(s)
	if _, _, err := split(s); err != nil {
		return "", err
	}
	return Label(s), nil
}

// Valid reports whether s is a well-formed quarter label.
func Valid(s string) bool {
	_, _, err := split(s)
	return err == nil
}

func split(s string) (year, q int, err error) {
	if len(s) != 6 || s[4] != 'q' {
		return 0, 0, apperrors.NewParseError(fmt.Sprintf("invalid quarter label %q", s), nil)
	}
	year, err = strconv.Atoi(s[:4])
	if err != nil || s[0] == '-' || s[0] == '+' {
		return 0, 0, apperrors.NewParseError(fmt.Sprintf("invalid quarter year in %q", s), err)
	}
	q = int(s[5] - '0')
	if q < 1 || q > 4 {
		return 0, 0, apperrors.NewParseError(fmt.Sprintf("invalid quarter number in %q", s), nil)
	}
	return year, q, nil
}

// New builds the label for year and quarter number q.
func New(year, q int) Label {
	return Label(fmt.Sprintf("%04dq%d", year, q))
}

// OfMonth maps a calendar month (1-12) to its quarter number.
func OfMonth(month int) int {
	return (month-1)/3 + 1
}

// FromMonth maps a "YYYY-MM" month column to its quarter label,
// e.g. "2008-07" -> "2008q3".
func FromMonth(col string) (Label, error) {
	col = strings.TrimSpace(col)
	if !IsMonth(col) {
		return "", apperrors.NewParseError(fmt.Sprintf("invalid month column %q", col), nil)
	}
	year, _ := strconv.Atoi(col[:4])
	month, _ := strconv.Atoi(col[5:7])
	return New(year, OfMonth(month)), nil
}

// IsMonth reports whether col looks like a "YYYY-MM" month column with MM in 01..12.
func IsMonth(col string) bool {
	if len(col) != 7 || col[4] != '-' {
		return false
	}
	for i, c := range col {
		if i == 4 {
			continue
		}
		if c < '0' || c > '9' {
			return false
		}
	}
	month, _ := strconv.Atoi(col[5:7])
	return month >= 1 && month <= 12
}

// Year returns the label's year.
func (l Label) Year() int {
	y, _, _ := split(string(l))
	return y
}

// Number returns the quarter number 1..4.
func (l Label) Number() int {
	_, q, _ := split(string(l))
	return q
}

// Prev returns the quarter immediately before l.
func (l Label) Prev() Label {
	y, q, err := split(string(l))
	if err != nil {
		return ""
	}
	if q == 1 {
		return New(y-1, 4)
	}
	return New(y, q-1)
}

// Compare returns -1, 0 or +1 depending on whether l is before, equal to, or after o.
func (l Label) Compare(o Label) int {
	return strings.Compare(string(l), string(o))
}

// Before reports whether l is strictly earlier than o.
func (l Label) Before(o Label) bool { return l.Compare(o) < 0 }

func (l Label) String() string { return string(l) }
