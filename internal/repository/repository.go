// Package repository defines the storage model for day worklogs and the
// interface implemented by each storage backend.
package repository

import (
	"context"
	"time"
)

// MarkerEntry is one stored marker time.
type MarkerEntry struct {
	Marker string `json:"marker"`
	Hour   int    `json:"hour"`
	Minute int    `json:"minute"`
}

// DayWorklog is the stored record of one day.
type DayWorklog struct {
	Day       string        `json:"day"` // YYYY-MM-DD
	Entries   []MarkerEntry `json:"entries"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// RangeOptions restricts ListDays to an inclusive day range.
// Nil bounds are open.
type RangeOptions struct {
	From *string
	To   *string
}

// Contains reports whether day falls within the range.
func (o RangeOptions) Contains(day string) bool {
	if o.From != nil && day < *o.From {
		return false
	}
	if o.To != nil && day > *o.To {
		return false
	}
	return true
}

// Repository defines the storage operations on day worklogs.
type Repository interface {
	// SaveDay replaces everything stored for worklog.Day.
	SaveDay(ctx context.Context, worklog *DayWorklog) error

	// GetDay returns a not found error when nothing is stored for day.
	GetDay(ctx context.Context, day string) (*DayWorklog, error)

	// ListDays returns stored days in ascending order.
	ListDays(ctx context.Context, opts RangeOptions) ([]*DayWorklog, error)

	DeleteDay(ctx context.Context, day string) error

	Close() error
}
