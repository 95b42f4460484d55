package logic

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseISOToUTC(t *testing.T) {
	cases := []struct {
		in   string
		want time.Time
	}{
		{"2026-01-10T10:00:00Z", time.Date(2026, 1, 10, 10, 0, 0, 0, time.UTC)},
		{"2026-01-10T10:00:00", time.Date(2026, 1, 10, 10, 0, 0, 0, time.UTC)},
		{"2026-01-10T05:00:00-05:00", time.Date(2026, 1, 10, 10, 0, 0, 0, time.UTC)},
	}
	for _, c := range cases {
		got, err := ParseISOToUTC(c.in)
		require.NoError(t, err, c.in)
		assert.True(t, got.Equal(c.want), "%s -> %s", c.in, got)
		assert.Equal(t, time.UTC, got.Location())
	}

	_, err := ParseISOToUTC("not-a-timestamp")
	assert.Error(t, err)
}

func TestOverlapsBoundary(t *testing.T) {
	d := func(h, m int) time.Time { return time.Date(2026, 1, 15, h, m, 0, 0, time.UTC) }

	// back-to-back slots do not conflict (half-open)
	assert.False(t, Overlaps(d(10, 0), d(11, 0), d(11, 0), d(12, 0)))
	// genuine overlap
	assert.True(t, Overlaps(d(10, 0), d(12, 0), d(11, 0), d(13, 0)))
	// containment
	assert.True(t, Overlaps(d(10, 0), d(14, 0), d(11, 0), d(12, 0)))
}

func TestOverlapsSymmetryAndSelf(t *testing.T) {
	d := func(h int) time.Time { return time.Date(2026, 1, 15, h, 0, 0, 0, time.UTC) }

	assert.Equal(t,
		Overlaps(d(8), d(10), d(9), d(11)),
		Overlaps(d(9), d(11), d(8), d(10)))

	assert.True(t, Overlaps(d(8), d(10), d(8), d(10)))
	// empty interval never overlaps anything, itself included
	assert.False(t, Overlaps(d(8), d(8), d(8), d(8)))
}

func TestCheckOverlap(t *testing.T) {
	existing := []Interval{
		{Start: "2026-01-15T08:00:00Z", End: "2026-01-15T10:00:00Z"},
	}

	conflict, err := CheckOverlap("2026-01-15T09:00:00Z", "2026-01-15T11:00:00Z", existing)
	require.NoError(t, err)
	assert.True(t, conflict)

	conflict, err = CheckOverlap("2026-01-15T10:00:00Z", "2026-01-15T12:00:00Z", existing)
	require.NoError(t, err)
	assert.False(t, conflict)

	conflict, err = CheckOverlap("2026-01-15T09:00:00Z", "2026-01-15T11:00:00Z", nil)
	require.NoError(t, err)
	assert.False(t, conflict)

	_, err = CheckOverlap("garbage", "2026-01-15T11:00:00Z", existing)
	assert.Error(t, err)
}

func TestCheckOverlapTimezoneEquivalence(t *testing.T) {
	// 05:30-04:30 .. 06:30-04:30 is 10:00Z .. 11:00Z
	existing := []Interval{
		{Start: "2026-01-15T05:30:00-04:30", End: "2026-01-15T06:30:00-04:30"},
	}
	conflict, err := CheckOverlap("2026-01-15T10:00:00Z", "2026-01-15T11:00:00Z", existing)
	require.NoError(t, err)
	assert.True(t, conflict)
}
