package utils

import "time"

// WallClock returns t as it reads on a clock in loc, re-labelled as UTC with seconds zeroed.
// Readings are stored this way so the calendar date the user sees is the one queried.
func WallClock(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	l := t.In(loc)
	return time.Date(l.Year(), l.Month(), l.Day(), l.Hour(), l.Minute(), 0, 0, time.UTC)
}

// Today returns midnight of the wall-clock date of t in loc, labelled as UTC
func Today(t time.Time, loc *time.Location) time.Time {
	w := WallClock(t, loc)
	return time.Date(w.Year(), w.Month(), w.Day(), 0, 0, 0, 0, time.UTC)
}
