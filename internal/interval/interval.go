// Package interval models the half-open wall-clock span [start, end) every
// reservation occupies. Values carry no offset: they are naive local
// timestamps interpreted in the single organizational timezone, so two
// intervals are only comparable because the whole system reasons in that
// one location.
package interval

import (
	"fmt"
	"time"

	"atrium/shared/constant"
	"atrium/shared/failure"
	"atrium/shared/timezone"
)

// Interval is a half-open time span [Start, End) in organizational local time.
type Interval struct {
	Start time.Time
	End   time.Time
}

// New combines a calendar date with start and end times of day into an
// interval in the organizational timezone. When the end does not come after
// the start on the same date, the end rolls into the next calendar day,
// which models overnight bookings such as 22:00-02:00.
func New(date time.Time, startOfDay, endOfDay time.Time) Interval {
	loc := timezone.GetLocation()

	year, month, day := date.Date()

	start := time.Date(year, month, day, startOfDay.Hour(), startOfDay.Minute(), 0, 0, loc)
	end := time.Date(year, month, day, endOfDay.Hour(), endOfDay.Minute(), 0, 0, loc)

	if !end.After(start) {
		end = end.AddDate(0, 0, 1)
	}

	return Interval{Start: start, End: end}
}

// Parse builds an interval from the wire representation: a "2006-01-02" date
// and two "15:04" times of day. All three are interpreted in the
// organizational timezone.
func Parse(dateStr, startStr, endStr string) (Interval, error) {
	date, err := timezone.Parse(constant.DateFormat, dateStr)
	if err != nil {
		return Interval{}, failure.BadRequest(fmt.Errorf("invalid date %q: %w", dateStr, err))
	}

	start, err := timezone.Parse(constant.TimeOfDayFormat, startStr)
	if err != nil {
		return Interval{}, failure.BadRequest(fmt.Errorf("invalid start time %q: %w", startStr, err))
	}

	end, err := timezone.Parse(constant.TimeOfDayFormat, endStr)
	if err != nil {
		return Interval{}, failure.BadRequest(fmt.Errorf("invalid end time %q: %w", endStr, err))
	}

	return New(date, start, end), nil
}

// Overlaps reports whether two intervals intersect. Half-open semantics:
// an interval ending exactly when another starts does not overlap it, so
// back-to-back bookings never conflict.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && other.Start.Before(i.End)
}

// Contains reports whether the instant t falls inside the interval.
func (i Interval) Contains(t time.Time) bool {
	return !t.Before(i.Start) && t.Before(i.End)
}

// Duration returns the length of the interval.
func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

func (i Interval) String() string {
	return fmt.Sprintf("[%s, %s)", i.Start.Format(constant.TimestampFormat), i.End.Format(constant.TimestampFormat))
}
