package paycalc

import (
	"fmt"
	"time"
)

// DateLayout is the wire format of entry dates.
const DateLayout = "2006-01-02"

// MonthRange returns the first and last calendar day of the month containing t,
// both at 00:00 in t's location.
func MonthRange(t time.Time) (time.Time, time.Time) {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	last := first.AddDate(0, 1, -1)
	return first, last
}

// MonthLabel returns a label like "March 2025".
func MonthLabel(t time.Time) string {
	return t.Format("January 2006")
}

// FormatDate formats t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Today returns the calendar date of now as YYYY-MM-DD.
func Today(now time.Time) string {
	return FormatDate(now)
}

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD", s)
	}
	return t, nil
}

// LongDate renders a stored date like "Monday, March 3, 2025". Unparseable
// input is returned unchanged.
func LongDate(s string) string {
	t, err := ParseDate(s)
	if err != nil {
		return s
	}
	return t.Format("Monday, January 2, 2006")
}

// ShortDate renders a stored date like "Mon, Mar 3".
func ShortDate(s string) string {
	t, err := ParseDate(s)
	if err != nil {
		return s
	}
	return t.Format("Mon, Jan 2")
}

// SameMonth reports whether two times fall in the same calendar month.
func SameMonth(a, b time.Time) bool {
	ay, am, _ := a.Date()
	by, bm, _ := b.Date()
	return ay == by && am == bm
}
