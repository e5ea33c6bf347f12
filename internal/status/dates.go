// Package status classifies projects into their temporal phase and orders
// project collections for display. Every function takes the reference
// instant explicitly; dates are interpreted in that instant's location.
package status

import (
	"math"
	"regexp"
	"strings"
	"time"
)

var isoDay = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Layouts tried, in order, for values that are not ISO day-strings.
var fallbackLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	time.RFC1123Z,
	time.RFC1123,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006/01/02",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"2 January 2006",
}

// HasISODate reports whether v is exactly a YYYY-MM-DD string.
func HasISODate(v string) bool {
	return isoDay.MatchString(v)
}

// ParseDate turns a date field into a local time. ISO day-strings become
// noon on that calendar day so offset changes can never move them to a
// neighbouring day. Other values go through the fallback layouts.
// The bool is false when v cannot be parsed at all.
func ParseDate(v string, loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.Local
	}
	if HasISODate(v) {
		d, err := time.ParseInLocation(time.DateOnly, v, loc)
		if err != nil {
			return time.Time{}, false
		}
		return time.Date(d.Year(), d.Month(), d.Day(), 12, 0, 0, 0, loc), true
	}
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, false
	}
	for _, layout := range fallbackLayouts {
		if t, err := time.ParseInLocation(layout, v, loc); err == nil {
			return t.In(loc), true
		}
	}
	return time.Time{}, false
}

// AtDayStart returns 00:00:00.000 of t's calendar day.
func AtDayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// AtDayEnd returns 23:59:59.999 of t's calendar day.
func AtDayEnd(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), t.Location())
}

// DayDiff returns the number of days from from to to, rounded up.
// Both instants are compared by wall clock in their own location, so a
// daylight saving shift does not add or lose a day.
func DayDiff(from, to time.Time) int {
	d := wall(to).Sub(wall(from))
	return int(math.Ceil(d.Hours() / 24))
}

func wall(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

// SameDay reports whether a and b fall on the same calendar day in a's location.
func SameDay(a, b time.Time) bool {
	b = b.In(a.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
