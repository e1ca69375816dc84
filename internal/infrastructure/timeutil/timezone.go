package timeutil

import (
	"fmt"
	"sync"
	"time"
)

// DateLayout is the ISO calendar date layout used for every query date.
const DateLayout = "2006-01-02"

// locationCache stores cached timezone locations for performance.
var locationCache sync.Map

// UTC is the Coordinated Universal Time zone name.
const UTC = "UTC"

// GetLocation returns a cached timezone location.
// It caches the result for subsequent calls with the same name.
func GetLocation(name string) (*time.Location, error) {
	if loc, ok := locationCache.Load(name); ok {
		return loc.(*time.Location), nil
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %q: %w", name, err)
	}

	locationCache.Store(name, loc)
	return loc, nil
}

// MustGetLocation returns a cached timezone location or panics on error.
// Use this for known-good timezone names (e.g., constants).
func MustGetLocation(name string) *time.Location {
	loc, err := GetLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

// FormatDate formats a time as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a YYYY-MM-DD string as midnight UTC.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// StartOfDay returns the start of the day (00:00:00) for the given time.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// CalendarDate returns the calendar day of t in loc as midnight UTC.
// Calendar arithmetic on the result is free of DST shifts.
func CalendarDate(t time.Time, loc *time.Location) time.Time {
	if loc != nil {
		t = t.In(loc)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// AddDays returns the calendar date n days after d.
func AddDays(d time.Time, n int) time.Time {
	return d.AddDate(0, 0, n)
}

// DaysUntil returns how many days after d the next occurrence of wd falls.
// The result is in 1..7, so a date never counts as its own next weekday.
func DaysUntil(d time.Time, wd time.Weekday) int {
	n := (int(wd) - int(d.Weekday()) + 7) % 7
	if n == 0 {
		n = 7
	}
	return n
}

// FirstOfNextMonth returns the first day of the calendar month after d.
func FirstOfNextMonth(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month()+1, 1, 0, 0, 0, 0, d.Location())
}

// ClearLocationCache clears the cached timezone locations.
// This is primarily useful for testing.
func ClearLocationCache() {
	locationCache.Range(func(key, _ interface{}) bool {
		locationCache.Delete(key)
		return true
	})
}
