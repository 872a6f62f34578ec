package api

import (
	"context"
	"time"

	"timelog/internal/domain"
	"timelog/internal/errors"
	"timelog/internal/repository"
	"timelog/internal/services"
	"timelog/internal/validation"
)

// DayView is a day's markers with their total. Err holds the coherency
// failure of a stored day whose total cannot be computed.
type DayView struct {
	Day       domain.Day
	Markers   domain.MarkerSet
	Total     domain.Time
	Rule      string
	Err       error
	UpdatedAt time.Time // zero for a day never saved
}

// ExportRecord is the flat form of a day written by the export command.
// Unset markers are empty strings.
type ExportRecord struct {
	Day        string    `json:"day" yaml:"day"`
	Morning    string    `json:"morning,omitempty" yaml:"morning,omitempty"`
	LunchStart string    `json:"lunch_start,omitempty" yaml:"lunch_start,omitempty"`
	LunchEnd   string    `json:"lunch_end,omitempty" yaml:"lunch_end,omitempty"`
	Evening    string    `json:"evening,omitempty" yaml:"evening,omitempty"`
	Total      string    `json:"total" yaml:"total"`
	Error      string    `json:"error,omitempty" yaml:"error,omitempty"`
	UpdatedAt  time.Time `json:"updated_at" yaml:"updated_at"`
}

// BusinessAPI defines the user workflows of the punch clock. Dates, marker
// names and times are taken as typed by the user.
type BusinessAPI interface {
	// GetDay returns the markers and total of date.
	GetDay(ctx context.Context, date string) (*DayView, error)

	// SetMarker records marker at clock time on date, replacing any previous
	// value. The resulting day must stay coherent.
	SetMarker(ctx context.Context, date, marker, clock string) (*DayView, error)

	// SetMarkerNow records marker at the current time of today.
	SetMarkerNow(ctx context.Context, marker string) (*DayView, error)

	// UnsetMarker removes marker from date. Removing the last marker deletes
	// the day.
	UnsetMarker(ctx context.Context, date, marker string) (*DayView, error)

	DeleteDay(ctx context.Context, date string) error

	// GetWeek reports Monday up to date with the week total.
	GetWeek(ctx context.Context, date string) (*services.WeekReport, error)

	// ListDays returns the saved days between from and to. Empty bounds are
	// open.
	ListDays(ctx context.Context, from, to string) ([]*DayView, error)

	ExportDays(ctx context.Context, from, to string) ([]*ExportRecord, error)
}

// businessAPIImpl implements the BusinessAPI interface
type businessAPIImpl struct {
	clock     domain.Clock
	validator *validation.WorklogValidator
	worklogs  services.WorklogService
	reporting services.ReportingService
}

// NewBusinessAPI creates a new BusinessAPI instance. A nil clock uses the
// system clock and a nil validator the default limits.
func NewBusinessAPI(repo repository.Repository, clock domain.Clock, validator *validation.WorklogValidator) BusinessAPI {
	if clock == nil {
		clock = domain.SystemClock{}
	}
	if validator == nil {
		validator = validation.NewWorklogValidator()
	}
	container := services.NewServiceContainer(repo, clock, validator)
	return &businessAPIImpl{
		clock:     clock,
		validator: validator,
		worklogs:  container.WorklogService,
		reporting: container.ReportingService,
	}
}

func (b *businessAPIImpl) GetDay(ctx context.Context, date string) (*DayView, error) {
	day, err := b.validator.ParseDay(date, b.clock.Now())
	if err != nil {
		return nil, err
	}
	markers, err := b.worklogs.LoadDay(ctx, day)
	if err != nil {
		return nil, err
	}
	return b.view(day, markers), nil
}

func (b *businessAPIImpl) SetMarker(ctx context.Context, date, marker, clock string) (*DayView, error) {
	// 1. Validate input
	day, err := b.validator.ParseDay(date, b.clock.Now())
	if err != nil {
		return nil, err
	}
	m, err := b.validator.ParseMarker(marker)
	if err != nil {
		return nil, err
	}
	t, err := b.validator.ParseTime(clock)
	if err != nil {
		return nil, err
	}

	return b.setMarker(ctx, day, m, t)
}

func (b *businessAPIImpl) SetMarkerNow(ctx context.Context, marker string) (*DayView, error) {
	m, err := b.validator.ParseMarker(marker)
	if err != nil {
		return nil, err
	}
	now := b.clock.Now()
	return b.setMarker(ctx, domain.DayOf(now), m, domain.TimeOf(now))
}

func (b *businessAPIImpl) setMarker(ctx context.Context, day domain.Day, marker domain.Marker, t domain.Time) (*DayView, error) {
	// 2. Merge into the stored day
	markers, err := b.worklogs.LoadDay(ctx, day)
	if err != nil {
		return nil, err
	}
	markers = markers.With(marker, t)

	// 3. Save, rejecting incoherent days
	if err := b.worklogs.SaveDay(ctx, day, markers); err != nil {
		return nil, err
	}
	return b.savedView(day, markers), nil
}

func (b *businessAPIImpl) UnsetMarker(ctx context.Context, date, marker string) (*DayView, error) {
	day, err := b.validator.ParseDay(date, b.clock.Now())
	if err != nil {
		return nil, err
	}
	m, err := b.validator.ParseMarker(marker)
	if err != nil {
		return nil, err
	}

	markers, err := b.worklogs.LoadDay(ctx, day)
	if err != nil {
		return nil, err
	}
	if !markers.Has(m) {
		return nil, errors.NewNotFoundError("marker", m.String()+" on "+day.String())
	}
	markers = markers.Without(m)

	// An empty day cannot be saved, so it is removed instead.
	if len(markers) == 0 {
		if err := b.worklogs.DeleteDay(ctx, day); err != nil {
			return nil, err
		}
		return b.view(day, markers), nil
	}
	if err := b.worklogs.SaveDay(ctx, day, markers); err != nil {
		return nil, err
	}
	return b.savedView(day, markers), nil
}

func (b *businessAPIImpl) DeleteDay(ctx context.Context, date string) error {
	day, err := b.validator.ParseDay(date, b.clock.Now())
	if err != nil {
		return err
	}
	return b.worklogs.DeleteDay(ctx, day)
}

func (b *businessAPIImpl) GetWeek(ctx context.Context, date string) (*services.WeekReport, error) {
	day, err := b.validator.ParseDay(date, b.clock.Now())
	if err != nil {
		return nil, err
	}
	return b.reporting.WeekReport(ctx, day)
}

func (b *businessAPIImpl) ListDays(ctx context.Context, from, to string) ([]*DayView, error) {
	fromDay, toDay, err := b.validator.ParseRange(from, to, b.clock.Now())
	if err != nil {
		return nil, err
	}
	records, err := b.worklogs.ListDays(ctx, fromDay, toDay)
	if err != nil {
		return nil, err
	}

	views := make([]*DayView, 0, len(records))
	for _, record := range records {
		view := b.view(record.Day, record.Markers)
		view.UpdatedAt = record.UpdatedAt
		views = append(views, view)
	}
	return views, nil
}

func (b *businessAPIImpl) ExportDays(ctx context.Context, from, to string) ([]*ExportRecord, error) {
	views, err := b.ListDays(ctx, from, to)
	if err != nil {
		return nil, err
	}

	records := make([]*ExportRecord, 0, len(views))
	for _, v := range views {
		record := &ExportRecord{
			Day:        v.Day.String(),
			Morning:    markerValue(v.Markers, domain.Morning),
			LunchStart: markerValue(v.Markers, domain.LunchStart),
			LunchEnd:   markerValue(v.Markers, domain.LunchEnd),
			Evening:    markerValue(v.Markers, domain.Evening),
			UpdatedAt:  v.UpdatedAt,
		}
		if v.Err != nil {
			record.Error = v.Err.Error()
		} else {
			record.Total = v.Total.String()
		}
		records = append(records, record)
	}
	return records, nil
}

// view computes the total of markers. Incoherent days are reported in
// the view, not as an error.
func (b *businessAPIImpl) view(day domain.Day, markers domain.MarkerSet) *DayView {
	v := &DayView{Day: day, Markers: markers}
	result, err := b.reporting.DayTotal(day, markers)
	if err != nil {
		v.Err = err
		return v
	}
	v.Total = result.Total
	v.Rule = result.Rule
	return v
}

func (b *businessAPIImpl) savedView(day domain.Day, markers domain.MarkerSet) *DayView {
	v := b.view(day, markers)
	v.UpdatedAt = b.clock.Now()
	return v
}

func markerValue(markers domain.MarkerSet, m domain.Marker) string {
	if t, ok := markers[m]; ok {
		return t.String()
	}
	return ""
}
