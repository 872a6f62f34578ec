package domain

import (
	"fmt"
	"sort"
	"time"

	"timelog/internal/repository"
)

// WorklogMapper handles conversion between domain markers and stored worklogs.
type WorklogMapper struct{}

// NewWorklogMapper creates a new WorklogMapper instance.
func NewWorklogMapper() *WorklogMapper {
	return &WorklogMapper{}
}

// ToDatabase converts a day and its markers to a stored worklog.
// Entries are written in marker rank order.
func (m *WorklogMapper) ToDatabase(day Day, markers MarkerSet, updatedAt time.Time) *repository.DayWorklog {
	entries := make([]repository.MarkerEntry, 0, len(markers))
	for _, marker := range markers.Present() {
		t := markers[marker]
		entries = append(entries, repository.MarkerEntry{
			Marker: marker.String(),
			Hour:   t.Hour,
			Minute: t.Minute,
		})
	}
	return &repository.DayWorklog{
		Day:       day.String(),
		Entries:   entries,
		UpdatedAt: updatedAt,
	}
}

// FromDatabase converts a stored worklog back to a day and its markers.
func (m *WorklogMapper) FromDatabase(worklog *repository.DayWorklog) (Day, MarkerSet, error) {
	day, err := time.ParseInLocation(DayLayout, worklog.Day, time.Local)
	if err != nil {
		return Day{}, nil, fmt.Errorf("stored day %q: %w", worklog.Day, err)
	}

	markers := make(MarkerSet, len(worklog.Entries))
	for _, entry := range worklog.Entries {
		marker, err := ParseMarker(entry.Marker)
		if err != nil {
			return Day{}, nil, fmt.Errorf("stored day %s: %w", worklog.Day, err)
		}
		markers[marker] = Time{Hour: entry.Hour, Minute: entry.Minute}
	}
	return DayOf(day), markers, nil
}

// FromDatabaseSlice converts stored worklogs to week data.
func (m *WorklogMapper) FromDatabaseSlice(worklogs []*repository.DayWorklog) (WeekData, error) {
	week := make(WeekData, len(worklogs))
	for _, worklog := range worklogs {
		day, markers, err := m.FromDatabase(worklog)
		if err != nil {
			return nil, err
		}
		week[day] = markers
	}
	return week, nil
}

// SortedDays returns the days of a WeekData in ascending order.
func SortedDays(week WeekData) []Day {
	days := make([]Day, 0, len(week))
	for d := range week {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Before(days[j])
	})
	return days
}
