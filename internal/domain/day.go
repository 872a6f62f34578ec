package domain

import (
	"fmt"
	"strings"
	"time"
)

// DayLayout is the storage and command line format of a Day.
const DayLayout = "2006-01-02"

// Day is a calendar date without a time component.
type Day struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDay creates a Day, normalising out-of-range values the way time.Date does.
func NewDay(year int, month time.Month, day int) Day {
	return DayOf(time.Date(year, month, day, 0, 0, 0, 0, time.Local))
}

// DayOf returns the calendar date of t in t's location.
func DayOf(t time.Time) Day {
	y, m, d := t.Date()
	return Day{Year: y, Month: m, Day: d}
}

// Time returns local midnight of the day.
func (d Day) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.Local)
}

// YearDay returns the ordinal day of the year (1..366).
func (d Day) YearDay() int {
	return d.Time().YearDay()
}

// IsSameOrdinalDay compares the (year, day-of-year) pair of d and t.
func (d Day) IsSameOrdinalDay(t time.Time) bool {
	return d.Year == t.Year() && d.YearDay() == t.YearDay()
}

// AddDays returns the day n days after d (n may be negative).
func (d Day) AddDays(n int) Day {
	return DayOf(d.Time().AddDate(0, 0, n))
}

// DaysUntil returns the number of calendar days from d to other.
func (d Day) DaysUntil(other Day) int {
	from := time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
	to := time.Date(other.Year, other.Month, other.Day, 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from).Hours() / 24)
}

// Weekday returns the day of the week.
func (d Day) Weekday() time.Weekday {
	return d.Time().Weekday()
}

// WeekStart returns the Monday of d's week. Sunday is the last day of a week.
func (d Day) WeekStart() Day {
	offset := int(d.Weekday()) - int(time.Monday)
	if offset < 0 {
		offset += 7
	}
	return d.AddDays(-offset)
}

// Before reports whether d is earlier than other.
func (d Day) Before(other Day) bool {
	return d.Time().Before(other.Time())
}

// String formats the day as YYYY-MM-DD.
func (d Day) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// ParseDay parses a YYYY-MM-DD date, or the words "today" and "yesterday"
// relative to now.
func ParseDay(s string, now time.Time) (Day, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "today":
		return DayOf(now), nil
	case "yesterday":
		return DayOf(now).AddDays(-1), nil
	}
	t, err := time.ParseInLocation(DayLayout, strings.TrimSpace(s), time.Local)
	if err != nil {
		return Day{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return DayOf(t), nil
}

// WeekData maps each day of a week to its markers.
type WeekData map[Day]MarkerSet
