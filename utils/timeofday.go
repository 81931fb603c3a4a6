package utils

import (
	"fmt"
	"time"
)

// Time-of-day strings arrive from pickers as either "03:04 PM" or "15:04".
var timeOfDayLayouts = []string{"03:04 PM", "3:04 PM", "15:04"}

// ParseTimeOfDay parses a picker time string into a zero-date time.Time.
func ParseTimeOfDay(value string) (time.Time, error) {
	for _, layout := range timeOfDayLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised time of day %q", value)
}

// TimeOfDayBefore reports whether a sorts strictly before b as times of
// day. Unparseable values compare false, so callers reject them through
// their own required-field checks first.
func TimeOfDayBefore(a, b string) bool {
	ta, err := ParseTimeOfDay(a)
	if err != nil {
		return false
	}
	tb, err := ParseTimeOfDay(b)
	if err != nil {
		return false
	}
	return ta.Before(tb)
}

// DateOnOrBefore reports whether day-granularity date a ("2006-01-02")
// is on or before b.
func DateOnOrBefore(a, b string) bool {
	da, err := time.Parse("2006-01-02", a)
	if err != nil {
		return false
	}
	db, err := time.Parse("2006-01-02", b)
	if err != nil {
		return false
	}
	return !da.After(db)
}

// SlotEnd combines a day-granularity date with an end time-of-day into an
// absolute instant, used to derive the completed display status.
func SlotEnd(date, endTime string) (time.Time, error) {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return time.Time{}, fmt.Errorf("unrecognised date %q", date)
	}
	t, err := ParseTimeOfDay(endTime)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), 0, 0, time.Local), nil
}
