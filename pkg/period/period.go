// Package period computes the calendar keys used to keep ledger records unique
// per employee per day or per month.
package period

import (
	"fmt"
	"math"
	"time"
)

const MonthLayout = "2006-01"

const DateLayout = "2006-01-02"

// StartOfDay returns midnight of the day containing t, in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// YearBounds returns [Jan 1 of year, Jan 1 of year+1) in loc.
func YearBounds(year int, loc *time.Location) (time.Time, time.Time) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
	return start, start.AddDate(1, 0, 0)
}

// InclusiveDays counts the calendar days covered by [from, to]. A partial day
// counts as a whole one. Both ends are compared as wall-clock times in from's
// location, so a DST shift inside the range does not add or drop a day.
func InclusiveDays(from, to time.Time) int {
	diff := wallClock(to.In(from.Location())).Sub(wallClock(from))
	return int(math.Ceil(diff.Hours()/24)) + 1
}

func wallClock(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

// ParseMonth validates a YYYY-MM month key.
func ParseMonth(s string) (time.Time, error) {
	t, err := time.Parse(MonthLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("month must be formatted as YYYY-MM: %w", err)
	}
	return t, nil
}

// ParseDate parses a YYYY-MM-DD date at midnight in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("date must be formatted as YYYY-MM-DD: %w", err)
	}
	return t, nil
}
