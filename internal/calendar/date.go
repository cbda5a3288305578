// internal/calendar/date.go
package calendar

import (
	"cmp"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrMalformedDate is returned when text is not shaped like M/D/YYYY.
var ErrMalformedDate = errors.New("malformed date")

const (
	quadrennial      = 4
	centennial       = 100
	quatercentennial = 400
)

var daysInMonth = [13]int{0, 31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// Date is a calendar day without a time zone.
// A Date may hold an impossible day (2/30); use IsValid before trusting it.
type Date struct {
	Year  int
	Month int
	Day   int
}

// New builds a Date.
func New(year, month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

// FromTime takes the calendar day of t in t's location.
func FromTime(t time.Time) Date {
	return Date{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}
}

// Parse reads a date written as M/D/YYYY. Only the shape is checked.
func Parse(s string) (Date, error) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 3 {
		return Date{}, fmt.Errorf("%w: %q", ErrMalformedDate, s)
	}
	var nums [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return Date{}, fmt.Errorf("%w: %q", ErrMalformedDate, s)
		}
		nums[i] = n
	}
	return Date{Year: nums[2], Month: nums[0], Day: nums[1]}, nil
}

// IsLeapYear uses the Gregorian rule.
func (d Date) IsLeapYear() bool {
	if d.Year%quadrennial != 0 {
		return false
	}
	if d.Year%centennial != 0 {
		return true
	}
	return d.Year%quatercentennial == 0
}

// DaysInMonth returns the length of d's month, or 0 for an out-of-range month.
func (d Date) DaysInMonth() int {
	if d.Month < 1 || d.Month > 12 {
		return 0
	}
	if d.Month == int(time.February) && d.IsLeapYear() {
		return 29
	}
	return daysInMonth[d.Month]
}

// IsValid reports whether d names a real calendar day.
func (d Date) IsValid() bool {
	return d.Day >= 1 && d.Day <= d.DaysInMonth()
}

// Compare orders by year, then month, then day.
func (d Date) Compare(other Date) int {
	switch {
	case d.Year != other.Year:
		return cmp.Compare(d.Year, other.Year)
	case d.Month != other.Month:
		return cmp.Compare(d.Month, other.Month)
	default:
		return cmp.Compare(d.Day, other.Day)
	}
}

func (d Date) Before(other Date) bool { return d.Compare(other) < 0 }
func (d Date) After(other Date) bool  { return d.Compare(other) > 0 }
func (d Date) Equal(other Date) bool  { return d.Compare(other) == 0 }

// IsAtLeastYearsBefore reports whether other falls on or after d's
// anniversary `years` years later. Used for age thresholds, so turning
// 18 today counts as 18.
func (d Date) IsAtLeastYearsBefore(other Date, years int) bool {
	diff := other.Year - d.Year
	if diff != years {
		return diff > years
	}
	if other.Month != d.Month {
		return other.Month > d.Month
	}
	return other.Day >= d.Day
}

// PlusMonths moves d forward n months, rolling the year over. The day is
// kept as is, so the result may be invalid (11/30 + 3 months is 2/30).
func (d Date) PlusMonths(n int) Date {
	m := d.Month - 1 + n
	return Date{Year: d.Year + m/12, Month: m%12 + 1, Day: d.Day}
}

// String renders M/D/YYYY.
func (d Date) String() string {
	return fmt.Sprintf("%d/%d/%d", d.Month, d.Day, d.Year)
}

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
