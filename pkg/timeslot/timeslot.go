// Package timeslot provides calendar-day normalization and clock-time window
// arithmetic for schedule conflict checks.
package timeslot

import (
	"fmt"
	"time"

	"github.com/jinzhu/now"
)

// DefaultOccupancy is assumed when a booking carries a point-in-time slot
// with no explicit end.
const DefaultOccupancy = 2 * time.Hour

// Window is a half-open [Start, End) interval of minutes within a day.
type Window struct {
	Start int
	End   int
}

// ParseClock parses a "15:04" clock string into minutes since midnight.
func ParseClock(clock string) (int, error) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q: %w", clock, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// WindowFrom builds a Window from an explicit start/end pair, falling back to
// a point time with the default occupancy when either bound is missing.
func WindowFrom(start, end, point string) (Window, error) {
	if start != "" && end != "" {
		s, err := ParseClock(start)
		if err != nil {
			return Window{}, err
		}
		e, err := ParseClock(end)
		if err != nil {
			return Window{}, err
		}
		return Window{Start: s, End: e}, nil
	}
	if point == "" {
		return Window{}, fmt.Errorf("no clock time available for window")
	}
	p, err := ParseClock(point)
	if err != nil {
		return Window{}, err
	}
	return Window{Start: p, End: p + int(DefaultOccupancy.Minutes())}, nil
}

// Overlaps reports whether two half-open windows intersect. Adjacent windows
// (one ending exactly where the other starts) do not overlap.
func (w Window) Overlaps(other Window) bool {
	return w.Start < other.End && other.Start < w.End
}

// BeginningOfDay truncates a timestamp to its calendar date.
func BeginningOfDay(t time.Time) time.Time {
	return now.With(t).BeginningOfDay()
}

// BeginningOfWeek returns the Monday of the week containing t.
func BeginningOfWeek(t time.Time) time.Time {
	n := now.New(t)
	n.WeekStartDay = time.Monday
	return n.BeginningOfWeek()
}

// SameDay reports whether two timestamps fall on the same calendar date,
// ignoring the clock component entirely.
func SameDay(a, b time.Time) bool {
	return BeginningOfDay(a).Equal(BeginningOfDay(b))
}
