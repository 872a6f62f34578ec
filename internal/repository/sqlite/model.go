package sqlite

import "time"

// dayRow is a row of worklog_days.
type dayRow struct {
	Day       string
	UpdatedAt time.Time
}

// entryRow is a row of worklog_entries.
type entryRow struct {
	Day    string
	Marker string
	Hour   int
	Minute int
}
