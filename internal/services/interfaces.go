package services

import (
	"context"
	"time"

	"timelog/internal/calculator"
	"timelog/internal/domain"
	"timelog/internal/repository"
	"timelog/internal/validation"
)

// DayRecord is a stored day with its markers.
type DayRecord struct {
	Day       domain.Day       `json:"day"`
	Markers   domain.MarkerSet `json:"markers"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// DayReport is a day's markers and its computed total. Err holds the
// coherency failure when the total could not be computed.
type DayReport struct {
	Day     domain.Day
	Markers domain.MarkerSet
	Total   domain.Time
	Rule    string
	Err     error
}

// WeekReport covers the days from a week's Monday up to a given day.
// Total is only meaningful when Err is nil.
type WeekReport struct {
	Days  []*DayReport
	Total domain.Time
	Err   error
}

// WorklogService loads and saves the markers of single days.
type WorklogService interface {
	// LoadDay returns an empty set for a day that was never saved.
	LoadDay(ctx context.Context, day domain.Day) (domain.MarkerSet, error)

	// SaveDay rejects empty and incoherent marker sets.
	SaveDay(ctx context.Context, day domain.Day, markers domain.MarkerSet) error

	DeleteDay(ctx context.Context, day domain.Day) error

	// ListDays returns stored days in ascending order. Nil bounds are open.
	ListDays(ctx context.Context, from, to *domain.Day) ([]*DayRecord, error)

	// LoadDays returns the markers of the days saved between from and to.
	// Days never saved are absent from the result.
	LoadDays(ctx context.Context, from, to domain.Day) (domain.WeekData, error)
}

// ReportingService computes day and week totals.
type ReportingService interface {
	DayTotal(day domain.Day, markers domain.MarkerSet) (calculator.Result, error)

	// LoadPreviousWeekDays returns every day from day's Monday up to the
	// day before it. Days never saved map to an empty set.
	LoadPreviousWeekDays(ctx context.Context, day domain.Day) (domain.WeekData, error)

	// WeekReport reports the previous days of the week plus day itself.
	WeekReport(ctx context.Context, day domain.Day) (*WeekReport, error)
}

// ServiceContainer manages all services and their dependencies
type ServiceContainer struct {
	WorklogService   WorklogService
	ReportingService ReportingService
}

// NewServiceContainer wires the services on top of repo. Reporting reads
// through the worklog service and computes totals against clock.
func NewServiceContainer(repo repository.Repository, clock domain.Clock, validator *validation.WorklogValidator) *ServiceContainer {
	worklogs := NewWorklogService(repo, clock, validator)
	return &ServiceContainer{
		WorklogService:   worklogs,
		ReportingService: NewReportingService(worklogs, calculator.New(clock)),
	}
}
