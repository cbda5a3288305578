package calendar

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestIsValid(t *testing.T) {
	cases := []struct {
		date Date
		want bool
	}{
		{New(2000, 2, 29), true},
		{New(1900, 2, 29), false},
		{New(2400, 2, 29), true},
		{New(2023, 2, 29), false},
		{New(2024, 2, 29), true},
		{New(2023, 2, 28), true},
		{New(2023, 4, 31), false},
		{New(2023, 12, 31), true},
		{New(2023, 13, 1), false},
		{New(2023, 0, 1), false},
		{New(2023, 1, 0), false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.date.IsValid(), tc.date.String())
	}
}

func TestIsValidMatchesTimeNormalization(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		y := rapid.IntRange(1, 9999).Draw(t, "year")
		m := rapid.IntRange(1, 12).Draw(t, "month")
		d := rapid.IntRange(1, 31).Draw(t, "day")

		normalized := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
		want := normalized.Day() == d

		if got := New(y, m, d).IsValid(); got != want {
			t.Fatalf("IsValid(%d/%d/%d) = %v, want %v", m, d, y, got, want)
		}
	})
}

func TestCompare(t *testing.T) {
	a := New(2020, 5, 10)

	assert.Equal(t, 0, a.Compare(New(2020, 5, 10)))
	assert.Equal(t, -1, a.Compare(New(2021, 1, 1)))
	assert.Equal(t, 1, a.Compare(New(2020, 4, 30)))
	assert.Equal(t, -1, a.Compare(New(2020, 5, 11)))
	assert.True(t, a.Before(New(2020, 5, 11)))
	assert.True(t, a.After(New(2019, 12, 31)))
	assert.True(t, a.Equal(New(2020, 5, 10)))
}

func TestCompareAtExtremeYears(t *testing.T) {
	now := New(2026, 10, 15)
	assert.Equal(t, -1, New(math.MinInt, 1, 1).Compare(now))
	assert.Equal(t, 1, New(math.MaxInt, 1, 1).Compare(now))
	assert.True(t, New(math.MinInt, 12, 31).Before(New(math.MaxInt, 1, 1)))
}

func TestCompareIsAntisymmetric(t *testing.T) {
	gen := rapid.Custom(func(t *rapid.T) Date {
		return New(rapid.IntRange(1900, 2100).Draw(t, "y"), rapid.IntRange(1, 12).Draw(t, "m"), rapid.IntRange(1, 31).Draw(t, "d"))
	})
	rapid.Check(t, func(t *rapid.T) {
		a := gen.Draw(t, "a")
		b := gen.Draw(t, "b")
		if a.Compare(b) != -b.Compare(a) {
			t.Fatalf("Compare(%v, %v) not antisymmetric", a, b)
		}
	})
}

func TestIsAtLeastYearsBefore(t *testing.T) {
	dob := New(2005, 6, 15)

	assert.True(t, dob.IsAtLeastYearsBefore(New(2023, 6, 15), 18), "birthday counts")
	assert.False(t, dob.IsAtLeastYearsBefore(New(2023, 6, 14), 18))
	assert.False(t, dob.IsAtLeastYearsBefore(New(2023, 5, 30), 18))
	assert.True(t, dob.IsAtLeastYearsBefore(New(2023, 7, 1), 18))
	assert.True(t, dob.IsAtLeastYearsBefore(New(2024, 1, 1), 18))
	assert.False(t, dob.IsAtLeastYearsBefore(New(2022, 12, 31), 18))
}

func TestIsAtLeastYearsBeforeMatchesAnniversary(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		dob := New(rapid.IntRange(1900, 2050).Draw(t, "y"), rapid.IntRange(1, 12).Draw(t, "m"), rapid.IntRange(1, 28).Draw(t, "d"))
		other := New(rapid.IntRange(1900, 2100).Draw(t, "oy"), rapid.IntRange(1, 12).Draw(t, "om"), rapid.IntRange(1, 28).Draw(t, "od"))
		years := rapid.IntRange(0, 100).Draw(t, "years")

		anniversary := dob.PlusMonths(12 * years)
		want := other.Compare(anniversary) >= 0
		if got := dob.IsAtLeastYearsBefore(other, years); got != want {
			t.Fatalf("IsAtLeastYearsBefore(%v, %v, %d) = %v, want %v", dob, other, years, got, want)
		}
	})
}

func TestPlusMonths(t *testing.T) {
	assert.Equal(t, New(2024, 1, 15), New(2023, 10, 15).PlusMonths(3))
	assert.Equal(t, New(2023, 12, 1), New(2023, 9, 1).PlusMonths(3))
	assert.Equal(t, New(2024, 9, 1), New(2023, 9, 1).PlusMonths(12))
	assert.Equal(t, New(2024, 2, 30), New(2023, 11, 30).PlusMonths(3))
}

func TestParse(t *testing.T) {
	d, err := Parse("1/2/2003")
	require.NoError(t, err)
	assert.Equal(t, New(2003, 1, 2), d)
	assert.Equal(t, "1/2/2003", d.String())

	d, err = Parse("2/30/2000")
	require.NoError(t, err, "shape only")
	assert.False(t, d.IsValid())

	for _, bad := range []string{"", "1/2", "a/2/2003", "1-2-2003", "1/2/2003/4"} {
		_, err := Parse(bad)
		assert.ErrorIs(t, err, ErrMalformedDate, bad)
	}
}

func TestTextRoundTrip(t *testing.T) {
	var d Date
	require.NoError(t, d.UnmarshalText([]byte("12/31/1999")))
	text, err := d.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "12/31/1999", string(text))
	assert.Error(t, d.UnmarshalText([]byte("yesterday")))
}

func TestManualClock(t *testing.T) {
	clock := NewManualClock(New(2024, 3, 1))
	assert.Equal(t, New(2024, 3, 1), Today(clock))

	clock.Set(New(2025, 1, 31))
	assert.Equal(t, New(2025, 1, 31), Today(clock))
}
