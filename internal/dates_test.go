package internal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, dateOnly, err := ParseDate("2023-01-15")
	require.NoError(t, err)
	assert.True(t, dateOnly)
	assert.Equal(t, time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC), d)

	d, dateOnly, err = ParseDate("2023-01-15T18:30:00+02:00")
	require.NoError(t, err)
	assert.False(t, dateOnly)
	assert.Equal(t, time.Date(2023, 1, 15, 16, 30, 0, 0, time.UTC), d)

	d, _, err = ParseDate("2023-01-15T07:45:10")
	require.NoError(t, err)
	assert.Equal(t, 7, d.Hour())

	_, _, err = ParseDate("yesterday")
	assert.ErrorIs(t, err, ErrInvalidDate)
	_, _, err = ParseDate("")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestFormatDateDropsTimeOfDay(t *testing.T) {
	ts := time.Date(2023, 1, 1, 23, 59, 59, 0, time.UTC)
	assert.Equal(t, "Sun Jan 01 2023", FormatDate(ts))
}

func TestEndOfDay(t *testing.T) {
	eod := EndOfDay(time.Date(2023, 1, 31, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, 31, eod.Day())
	assert.True(t, eod.Before(time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, eod.After(time.Date(2023, 1, 31, 23, 59, 59, 0, time.UTC)))
}
