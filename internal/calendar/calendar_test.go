package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	t.Run("known anchor date", func(t *testing.T) {
		// 1 Farvardin 1400 = 21 March 2021
		got, err := ParseDate("1400-01-01")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2021, time.March, 21, 0, 0, 0, 0, time.UTC), got)
	})

	t.Run("normalized to midnight UTC", func(t *testing.T) {
		got, err := ParseDate("1404-06-15")
		require.NoError(t, err)
		assert.Equal(t, time.UTC, got.Location())
		assert.Zero(t, got.Hour())
		assert.Zero(t, got.Minute())
	})

	t.Run("leap day valid in leap year", func(t *testing.T) {
		// 1403 is a Jalali leap year: Esfand has 30 days
		_, err := ParseDate("1403-12-30")
		require.NoError(t, err)
	})

	t.Run("leap day invalid in non-leap year", func(t *testing.T) {
		_, err := ParseDate("1404-12-30")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidDate)
	})

	t.Run("invalid inputs", func(t *testing.T) {
		for _, input := range []string{
			"",
			"1404-06",
			"1404/06/15",
			"14040-06-15",
			"404-06-15",
			"1404-13-01",
			"1404-00-10",
			"1404-06-32",
			"1404-06-00",
			"abcd-06-15",
			"1404-xx-15",
		} {
			_, err := ParseDate(input)
			assert.ErrorIs(t, err, ErrInvalidDate, "input %q", input)
		}
	})
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "1400-01-01", FormatDate(time.Date(2021, time.March, 21, 0, 0, 0, 0, time.UTC)))
}

func TestParseFormatRoundTrip(t *testing.T) {
	for _, s := range []string{"1400-01-01", "1403-12-30", "1404-06-15", "1404-11-01"} {
		parsed, err := ParseDate(s)
		require.NoError(t, err)
		assert.Equal(t, s, FormatDate(parsed))
	}
}

func TestParseDate_Weekdays(t *testing.T) {
	// Календарная логика выходных опирается на физический день недели:
	// джалали-пятница и григорианская пятница - один и тот же день.
	// 1404-06-14 = 5 September 2025, пятница
	date, err := ParseDate("1404-06-14")
	require.NoError(t, err)
	assert.Equal(t, time.Friday, date.Weekday())

	// 1404-06-13 = 4 September 2025, четверг
	date, err = ParseDate("1404-06-13")
	require.NoError(t, err)
	assert.Equal(t, time.Thursday, date.Weekday())
}
