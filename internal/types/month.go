// Package types implements special types for Spendwise.
package types

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrMonthOutOfRange = errors.New("the month must be between 1 and 12")
	ErrYearOutOfRange  = errors.New("the year must have four digits")
)

// Month is a month in a specific year.
//
// It is always stored as 00:00 UTC on the first day of the month.
type Month time.Time

// NewMonth returns a new Month.
func NewMonth(year int, month time.Month) Month {
	return Month(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC))
}

// FromNumbers returns the Month for a month number (1-12) and a
// four digit year, as used in query strings and budget records.
func FromNumbers(month, year int) (Month, error) {
	if month < 1 || month > 12 {
		return Month{}, fmt.Errorf("%w, got %d", ErrMonthOutOfRange, month)
	}

	if year < 1000 || year > 9999 {
		return Month{}, fmt.Errorf("%w, got %d", ErrYearOutOfRange, year)
	}

	return NewMonth(year, time.Month(month)), nil
}

// MonthOf returns the Month in which a time occurs in UTC.
func MonthOf(t time.Time) Month {
	year, month, _ := t.In(time.UTC).Date()
	return NewMonth(year, month)
}

// ParseMonth parses a "YYYY-MM" string and returns the Month value it represents
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Month{}, err
	}

	return MonthOf(t), nil
}

// String returns the time formatted as YYYY-MM.
func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year(), m.Number())
}

// MarshalJSON implements the json.Marshaler interface.
// The output is the result of m.String().
func (m Month) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON implements the json.Unmarshaler interface.
//
// It accepts "YYYY-MM", "YYYY-MM-DD" and RFC3339 timestamps. Everything
// except the year and month is ignored.
func (m *Month) UnmarshalJSON(data []byte) error {
	value := strings.Trim(string(data), `"`)
	if value == "" || value == "null" {
		return nil
	}

	for _, layout := range []string{"2006-01", "2006-01-02", time.RFC3339} {
		t, err := time.Parse(layout, value)
		if err == nil {
			*m = MonthOf(t)
			return nil
		}
	}

	return fmt.Errorf("'%s' is not a valid month, use the YYYY-MM format", value)
}

// Year returns the year of the month.
func (m Month) Year() int {
	return time.Time(m).Year()
}

// Number returns the month of the year, January being 1.
func (m Month) Number() int {
	return int(time.Time(m).Month())
}

// Window returns the spend window of the month: the first instant of the month
// and the first instant of the following month.
//
// The window is half-open, the end is not part of it. This includes every instant
// of the last day of the month, up to and including its end of day.
func (m Month) Window() (start, end time.Time) {
	start = time.Time(m)
	return start, start.AddDate(0, 1, 0)
}

// IsZero reports if the month is the zero value.
func (m Month) IsZero() bool {
	return time.Time(m).IsZero()
}

// AddDate adds a specified amount of years and months.
func (m Month) AddDate(years, months int) Month {
	return Month(time.Time(m).AddDate(years, months, 0))
}

// Before reports whether the month instant m is before n.
func (m Month) Before(n Month) bool {
	return time.Time(m).Before(time.Time(n))
}

// Equal reports whether m and n represent the same month.
func (m Month) Equal(n Month) bool {
	return time.Time(m).Equal(time.Time(n))
}

// Contains reports whether the time instant is in the month.
func (m Month) Contains(t time.Time) bool {
	start, end := m.Window()
	return !t.Before(start) && t.Before(end)
}
