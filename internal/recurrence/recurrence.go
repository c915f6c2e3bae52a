// Package recurrence expands a base calendar date into the full list of
// occurrence dates for a repeating reservation. Expansion is a pure
// calculation: conflict checking and persistence happen elsewhere, against
// the dates produced here.
package recurrence

import (
	"fmt"
	"time"

	"atrium/shared/failure"
)

// Pattern identifies how a reservation repeats.
type Pattern string

const (
	PatternNone     Pattern = "none"
	PatternWeekly   Pattern = "weekly"
	PatternBiweekly Pattern = "biweekly"
	PatternMonthly  Pattern = "monthly"
)

// MaxOccurrences caps how many dates a single request may expand to.
// Requests asking for more are clamped, not rejected.
const MaxOccurrences = 12

// ParsePattern validates a wire-level pattern string. The empty string
// means a one-off reservation.
func ParsePattern(s string) (Pattern, error) {
	switch Pattern(s) {
	case PatternNone, PatternWeekly, PatternBiweekly, PatternMonthly:
		return Pattern(s), nil
	case Pattern(""):
		return PatternNone, nil
	}
	return "", failure.BadRequestFromString(fmt.Sprintf("unknown recurrence pattern %q", s))
}

// IsRecurring reports whether the pattern produces more than one occurrence.
func (p Pattern) IsRecurring() bool {
	return p != PatternNone && p != ""
}

// Expand returns the occurrence dates for a reservation starting on base.
// The base date is always the first element. count is clamped to
// [1, MaxOccurrences], and PatternNone always yields exactly the base date.
//
// Weekly and biweekly steps are plain 7 and 14 day jumps. Monthly steps
// keep the day-of-month of the original base date, clamping to the last
// day of shorter months. January 31 therefore yields February 29 in a
// leap year, then March 31 again: the clamp never sticks.
func Expand(pattern Pattern, base time.Time, count int) []time.Time {
	if count < 1 {
		count = 1
	}
	if count > MaxOccurrences {
		count = MaxOccurrences
	}
	if !pattern.IsRecurring() {
		count = 1
	}

	dates := make([]time.Time, 0, count)
	for i := 0; i < count; i++ {
		switch pattern {
		case PatternWeekly:
			dates = append(dates, base.AddDate(0, 0, 7*i))
		case PatternBiweekly:
			dates = append(dates, base.AddDate(0, 0, 14*i))
		case PatternMonthly:
			dates = append(dates, monthlyOccurrence(base, i))
		default:
			dates = append(dates, base)
		}
	}

	return dates
}

// monthlyOccurrence computes the i-th monthly step from base. The target
// month is derived by offset and the day of month is re-derived from the
// base date each step, so a clamped occurrence does not shorten the ones
// after it.
func monthlyOccurrence(base time.Time, i int) time.Time {
	monthIndex := int(base.Month()) - 1 + i
	year := base.Year() + monthIndex/12
	month := time.Month(monthIndex%12 + 1)

	day := base.Day()
	if last := lastDayOfMonth(year, month); day > last {
		day = last
	}

	return time.Date(year, month, day, 0, 0, 0, 0, base.Location())
}

func lastDayOfMonth(year int, month time.Month) int {
	// day 0 of the next month
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
