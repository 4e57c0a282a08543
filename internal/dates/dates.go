// Package dates provides the calendar arithmetic used by scheduling and
// statistics: date keys, day differences and rolling week/year windows.
//
// All functions work in the location of the time values they are given, so
// a caller decides which calendar a "day" belongs to by choosing the
// location of "now".
package dates

import (
	"math"
	"time"
)

// KeyLayout is the layout of a calendar date key.
const KeyLayout = "2006-01-02"

// DateKey returns the YYYY-MM-DD calendar date of t in t's location.
func DateKey(t time.Time) string {
	return t.Format(KeyLayout)
}

// SameDay reports whether a and b fall on the same calendar date, using
// b's location for both.
func SameDay(a, b time.Time) bool {
	return DateKey(a.In(b.Location())) == DateKey(b)
}

// StartOfDay returns midnight at the start of t's calendar date.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// ShiftDays returns noon of the calendar date n days after t (n may be
// negative). Anchoring at noon keeps the result on the intended date across
// daylight-saving transitions.
func ShiftDays(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d+n, 12, 0, 0, 0, t.Location())
}

// DaysSince returns the number of whole or partial 24h periods between then
// and now, rounded up. The order of the arguments does not matter.
func DaysSince(then, now time.Time) int {
	diff := now.Sub(then)
	if diff < 0 {
		diff = -diff
	}
	return int(math.Ceil(diff.Hours() / 24))
}

// PastWeekDates returns the date keys of the seven days ending with now's
// date, oldest first.
func PastWeekDates(now time.Time) []string {
	return PastDays(now, 7)
}

// PastDays returns the date keys of the n days ending with now's date,
// oldest first.
func PastDays(now time.Time, n int) []string {
	if n <= 0 {
		return []string{}
	}
	out := make([]string, 0, n)
	for i := n - 1; i >= 0; i-- {
		out = append(out, DateKey(ShiftDays(now, -i)))
	}
	return out
}

// PastYearMonths returns the short names ("Jan", "Feb", ...) of the twelve
// months ending with now's month, oldest first.
func PastYearMonths(now time.Time) []string {
	y, m, _ := now.Date()
	out := make([]string, 0, 12)
	for i := 11; i >= 0; i-- {
		first := time.Date(y, m-time.Month(i), 1, 12, 0, 0, 0, now.Location())
		out = append(out, first.Format("Jan"))
	}
	return out
}
