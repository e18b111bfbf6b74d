// Package timeline computes the month grid and bar geometry for the
// subscription Gantt view. Everything here is a pure function of its inputs;
// the package holds no state and performs no I/O.
package timeline

import (
	"errors"
	"time"
)

// ErrInvalidRange is returned when a window's end precedes its start.
var ErrInvalidRange = errors.New("timeline: window end precedes window start")

// Default window bounds relative to the current month.
const (
	DefaultMonthsBefore = 1
	DefaultMonthsAfter  = 13
)

// Window is the visible calendar range geometry is computed against.
// Start and End are first-of-month dates; Months is the inclusive
// first-of-month sequence between them.
type Window struct {
	Start  time.Time
	End    time.Time
	Months []time.Time
}

// TotalDays returns the day count spanned by the window. Callers compute it
// once per window and pass it through the geometry functions.
func (w Window) TotalDays() int {
	return daysBetween(w.End, w.Start)
}

// ComputeRange builds the visible window. Nil bounds default to one month
// before the current month and thirteen months after it (a 15-month window
// centered near now). Both bounds are normalized to the first day of their
// month with time-of-day discarded; months are built by exact calendar-month
// stepping, so month-length and leap-year irregularities cannot drift the
// grid.
func ComputeRange(customStart, customEnd *time.Time, now time.Time) (Window, error) {
	current := MonthStart(now)

	start := current.AddDate(0, -DefaultMonthsBefore, 0)
	if customStart != nil {
		start = MonthStart(*customStart)
	}

	end := current.AddDate(0, DefaultMonthsAfter, 0)
	if customEnd != nil {
		end = MonthStart(*customEnd)
	}

	if end.Before(start) {
		return Window{}, ErrInvalidRange
	}

	var months []time.Time
	for m := start; !m.After(end); m = m.AddDate(0, 1, 0) {
		months = append(months, m)
	}

	return Window{Start: start, End: end, Months: months}, nil
}

// MonthStart normalizes a date to the first day of its calendar month,
// discarding time-of-day and location.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// dateOnly truncates a timestamp to its calendar date.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// daysBetween returns the whole days from earlier to later, computed on
// calendar dates so time-of-day never skews bar positions.
func daysBetween(later, earlier time.Time) int {
	return int(dateOnly(later).Sub(dateOnly(earlier)) / (24 * time.Hour))
}

func maxDate(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func minDate(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
