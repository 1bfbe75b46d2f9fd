package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDayRoundTrip(t *testing.T) {
	day, ok := ParseDay("2024-06-01", time.UTC)
	require.True(t, ok)
	assert.Equal(t, "2024-06-01", FormatDay(day))
	assert.Equal(t, "2024-06-01 00:00", FormatMinute(day))

	_, ok = ParseDay("06/01/2024", time.UTC)
	assert.False(t, ok)
	_, ok = ParseDay("", time.UTC)
	assert.False(t, ok)
}

func TestDayNum(t *testing.T) {
	a, _ := ParseDay("2024-06-01", time.UTC)
	b, _ := ParseDay("2024-06-02", time.UTC)
	c, _ := ParseDay("2024-06-04", time.UTC)
	assert.Equal(t, 1, DayNum(b)-DayNum(a))
	assert.Equal(t, 2, DayNum(c)-DayNum(b))
}
