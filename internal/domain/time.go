package domain

import (
	"fmt"
	"time"
)

// Time is an hour and minute pair. It is used both for a time of day and
// for a worked duration, so it is not bounded to a single day: hours can
// exceed 23 and a negative total yields negative fields.
type Time struct {
	Hour   int
	Minute int
}

// NewTime creates a Time.
func NewTime(hour, minute int) Time {
	return Time{Hour: hour, Minute: minute}
}

// TimeOf returns the wall-clock hour and minute of t.
func TimeOf(t time.Time) Time {
	return Time{Hour: t.Hour(), Minute: t.Minute()}
}

// TimeFromMinutes converts a minute count back to an hour and minute pair.
// Division truncates toward zero and nothing is clamped, so -90 becomes
// (-1, -30).
func TimeFromMinutes(minutes int) Time {
	return Time{Hour: minutes / 60, Minute: minutes % 60}
}

// Minutes returns the number of minutes since midnight.
func (t Time) Minutes() int {
	return t.Hour*60 + t.Minute
}

// Compare returns -1, 0 or +1 ordering by hour then minute.
func (t Time) Compare(other Time) int {
	switch {
	case t.Hour < other.Hour:
		return -1
	case t.Hour > other.Hour:
		return 1
	case t.Minute < other.Minute:
		return -1
	case t.Minute > other.Minute:
		return 1
	default:
		return 0
	}
}

// Before reports whether t is strictly earlier than other.
func (t Time) Before(other Time) bool {
	return t.Compare(other) < 0
}

// Sub returns t - earlier in minutes.
func (t Time) Sub(earlier Time) int {
	return t.Minutes() - earlier.Minutes()
}

// Add sums two durations minute-wise. There is no modulo 24.
func (t Time) Add(other Time) Time {
	return TimeFromMinutes(t.Minutes() + other.Minutes())
}

// Sum adds any number of durations.
func Sum(times ...Time) Time {
	total := Time{}
	for _, t := range times {
		total = total.Add(t)
	}
	return total
}

// IsZero reports whether t is 00:00.
func (t Time) IsZero() bool {
	return t.Hour == 0 && t.Minute == 0
}

// IsClockTime reports whether t is a valid wall-clock time of day.
func (t Time) IsClockTime() bool {
	return t.Hour >= 0 && t.Hour < 24 && t.Minute >= 0 && t.Minute < 60
}

// String formats the raw fields as HH:MM.
func (t Time) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// ParseTime parses a HH:MM or H:MM wall-clock time.
func ParseTime(s string) (Time, error) {
	var hour, minute int
	var rest string
	n, _ := fmt.Sscanf(s, "%d:%d%s", &hour, &minute, &rest)
	if n != 2 {
		return Time{}, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	t := Time{Hour: hour, Minute: minute}
	if !t.IsClockTime() {
		return Time{}, fmt.Errorf("time %q is out of range", s)
	}
	return t, nil
}
