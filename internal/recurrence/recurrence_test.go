package recurrence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParsePattern(t *testing.T) {
	testCases := []struct {
		input    string
		expected Pattern
		wantErr  bool
	}{
		{input: "none", expected: PatternNone},
		{input: "", expected: PatternNone},
		{input: "weekly", expected: PatternWeekly},
		{input: "biweekly", expected: PatternBiweekly},
		{input: "monthly", expected: PatternMonthly},
		{input: "daily", wantErr: true},
		{input: "Weekly", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run("input "+tc.input, func(t *testing.T) {
			p, err := ParsePattern(tc.input)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, p)
		})
	}
}

func TestExpandCountHandling(t *testing.T) {
	base := date(2024, time.March, 4)

	t.Run("none ignores count", func(t *testing.T) {
		dates := Expand(PatternNone, base, 5)
		assert.Equal(t, []time.Time{base}, dates)
	})

	t.Run("zero and negative counts yield one occurrence", func(t *testing.T) {
		assert.Len(t, Expand(PatternWeekly, base, 0), 1)
		assert.Len(t, Expand(PatternWeekly, base, -3), 1)
	})

	t.Run("count above cap is clamped", func(t *testing.T) {
		dates := Expand(PatternWeekly, base, 50)
		assert.Len(t, dates, MaxOccurrences)
	})

	t.Run("base date is always first", func(t *testing.T) {
		for _, p := range []Pattern{PatternNone, PatternWeekly, PatternBiweekly, PatternMonthly} {
			dates := Expand(p, base, 4)
			assert.Equal(t, base, dates[0], "pattern %s", p)
		}
	})
}

func TestExpandWeekly(t *testing.T) {
	dates := Expand(PatternWeekly, date(2024, time.March, 4), 4)

	assert.Equal(t, []time.Time{
		date(2024, time.March, 4),
		date(2024, time.March, 11),
		date(2024, time.March, 18),
		date(2024, time.March, 25),
	}, dates)
}

func TestExpandBiweekly(t *testing.T) {
	dates := Expand(PatternBiweekly, date(2024, time.March, 25), 3)

	assert.Equal(t, []time.Time{
		date(2024, time.March, 25),
		date(2024, time.April, 8),
		date(2024, time.April, 22),
	}, dates)
}

func TestExpandMonthly(t *testing.T) {
	t.Run("plain mid month day", func(t *testing.T) {
		dates := Expand(PatternMonthly, date(2024, time.November, 15), 4)

		assert.Equal(t, []time.Time{
			date(2024, time.November, 15),
			date(2024, time.December, 15),
			date(2025, time.January, 15),
			date(2025, time.February, 15),
		}, dates)
	})

	t.Run("day 31 clamps and recovers", func(t *testing.T) {
		dates := Expand(PatternMonthly, date(2024, time.January, 31), 4)

		assert.Equal(t, []time.Time{
			date(2024, time.January, 31),
			date(2024, time.February, 29), // leap year
			date(2024, time.March, 31),    // clamp does not stick
			date(2024, time.April, 30),
		}, dates)
	})

	t.Run("non leap february", func(t *testing.T) {
		dates := Expand(PatternMonthly, date(2023, time.January, 31), 2)
		assert.Equal(t, date(2023, time.February, 28), dates[1])
	})

	t.Run("year rollover", func(t *testing.T) {
		dates := Expand(PatternMonthly, date(2024, time.October, 31), 5)

		assert.Equal(t, []time.Time{
			date(2024, time.October, 31),
			date(2024, time.November, 30),
			date(2024, time.December, 31),
			date(2025, time.January, 31),
			date(2025, time.February, 28),
		}, dates)
	})
}

func TestExpandIsDeterministic(t *testing.T) {
	base := date(2024, time.January, 31)

	first := Expand(PatternMonthly, base, MaxOccurrences)
	second := Expand(PatternMonthly, base, MaxOccurrences)

	assert.Equal(t, first, second)
}
