package interval

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atrium/shared/timezone"
)

func mustInterval(t *testing.T, date, start, end string) Interval {
	t.Helper()
	iv, err := Parse(date, start, end)
	require.NoError(t, err)
	return iv
}

func TestNewNormalization(t *testing.T) {
	loc := timezone.GetLocation()

	t.Run("same day interval", func(t *testing.T) {
		iv := mustInterval(t, "2024-03-04", "09:00", "10:30")
		assert.Equal(t, time.Date(2024, 3, 4, 9, 0, 0, 0, loc), iv.Start)
		assert.Equal(t, time.Date(2024, 3, 4, 10, 30, 0, 0, loc), iv.End)
	})

	t.Run("end before start rolls to next day", func(t *testing.T) {
		iv := mustInterval(t, "2024-03-04", "22:00", "02:00")
		assert.Equal(t, time.Date(2024, 3, 4, 22, 0, 0, 0, loc), iv.Start)
		assert.Equal(t, time.Date(2024, 3, 5, 2, 0, 0, 0, loc), iv.End)
	})

	t.Run("equal start and end becomes full day", func(t *testing.T) {
		iv := mustInterval(t, "2024-03-04", "08:00", "08:00")
		assert.Equal(t, 24*time.Hour, iv.Duration())
	})

	t.Run("month boundary rollover", func(t *testing.T) {
		iv := mustInterval(t, "2024-01-31", "23:00", "01:00")
		assert.Equal(t, time.Date(2024, 2, 1, 1, 0, 0, 0, loc), iv.End)
	})
}

func TestParseRejectsMalformedInput(t *testing.T) {
	testCases := []struct {
		name  string
		date  string
		start string
		end   string
	}{
		{name: "bad date", date: "04/03/2024", start: "09:00", end: "10:00"},
		{name: "bad start time", date: "2024-03-04", start: "9am", end: "10:00"},
		{name: "bad end time", date: "2024-03-04", start: "09:00", end: "25:00"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.date, tc.start, tc.end)
			assert.Error(t, err)
		})
	}
}

func TestOverlaps(t *testing.T) {
	testCases := []struct {
		name     string
		a        Interval
		b        Interval
		expected bool
	}{
		{
			name:     "identical intervals",
			a:        mustInterval(t, "2024-03-04", "09:00", "10:00"),
			b:        mustInterval(t, "2024-03-04", "09:00", "10:00"),
			expected: true,
		},
		{
			name:     "partial overlap",
			a:        mustInterval(t, "2024-03-04", "09:00", "11:00"),
			b:        mustInterval(t, "2024-03-04", "10:00", "12:00"),
			expected: true,
		},
		{
			name:     "containment",
			a:        mustInterval(t, "2024-03-04", "08:00", "18:00"),
			b:        mustInterval(t, "2024-03-04", "10:00", "11:00"),
			expected: true,
		},
		{
			name:     "back to back does not overlap",
			a:        mustInterval(t, "2024-03-04", "09:00", "10:00"),
			b:        mustInterval(t, "2024-03-04", "10:00", "11:00"),
			expected: false,
		},
		{
			name:     "disjoint same day",
			a:        mustInterval(t, "2024-03-04", "09:00", "10:00"),
			b:        mustInterval(t, "2024-03-04", "14:00", "15:00"),
			expected: false,
		},
		{
			name:     "overnight clashes with next morning",
			a:        mustInterval(t, "2024-03-04", "22:00", "02:00"),
			b:        mustInterval(t, "2024-03-05", "01:00", "03:00"),
			expected: true,
		},
		{
			name:     "overnight clear of next morning",
			a:        mustInterval(t, "2024-03-04", "22:00", "02:00"),
			b:        mustInterval(t, "2024-03-05", "02:00", "03:00"),
			expected: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.a.Overlaps(tc.b))
			assert.Equal(t, tc.expected, tc.b.Overlaps(tc.a), "overlap must be symmetric")
		})
	}
}

func TestContains(t *testing.T) {
	iv := mustInterval(t, "2024-03-04", "09:00", "10:00")
	loc := timezone.GetLocation()

	assert.True(t, iv.Contains(time.Date(2024, 3, 4, 9, 0, 0, 0, loc)), "start is inclusive")
	assert.True(t, iv.Contains(time.Date(2024, 3, 4, 9, 30, 0, 0, loc)))
	assert.False(t, iv.Contains(time.Date(2024, 3, 4, 10, 0, 0, 0, loc)), "end is exclusive")
	assert.False(t, iv.Contains(time.Date(2024, 3, 4, 8, 59, 0, 0, loc)))
}
