package services

import (
	"context"

	"timelog/internal/calculator"
	"timelog/internal/domain"
)

// reportingServiceImpl implements the ReportingService interface
type reportingServiceImpl struct {
	worklogService WorklogService
	calculator     *calculator.Calculator
}

// NewReportingService creates a new ReportingService instance
func NewReportingService(worklogService WorklogService, calc *calculator.Calculator) ReportingService {
	if calc == nil {
		calc = calculator.New(nil)
	}
	return &reportingServiceImpl{
		worklogService: worklogService,
		calculator:     calc,
	}
}

// DayTotal computes the time worked with markers on day
func (r *reportingServiceImpl) DayTotal(day domain.Day, markers domain.MarkerSet) (calculator.Result, error) {
	return r.calculator.Compute(day, markers)
}

// LoadPreviousWeekDays loads Monday up to the day before day
func (r *reportingServiceImpl) LoadPreviousWeekDays(ctx context.Context, day domain.Day) (domain.WeekData, error) {
	week := domain.WeekData{}
	monday := day.WeekStart()
	if monday == day {
		return week, nil
	}

	saved, err := r.worklogService.LoadDays(ctx, monday, day.AddDays(-1))
	if err != nil {
		return nil, err
	}
	for d := monday; d.Before(day); d = d.AddDays(1) {
		if markers, ok := saved[d]; ok {
			week[d] = markers
		} else {
			week[d] = domain.MarkerSet{}
		}
	}
	return week, nil
}

// WeekReport computes every day total and the week total up to day
func (r *reportingServiceImpl) WeekReport(ctx context.Context, day domain.Day) (*WeekReport, error) {
	week, err := r.LoadPreviousWeekDays(ctx, day)
	if err != nil {
		return nil, err
	}
	markers, err := r.worklogService.LoadDay(ctx, day)
	if err != nil {
		return nil, err
	}
	week[day] = markers

	report := &WeekReport{}
	for _, d := range domain.SortedDays(week) {
		dayReport := &DayReport{Day: d, Markers: week[d]}
		result, err := r.calculator.Compute(d, week[d])
		if err != nil {
			dayReport.Err = err
		} else {
			dayReport.Total = result.Total
			dayReport.Rule = result.Rule
		}
		report.Days = append(report.Days, dayReport)
	}
	report.Total, report.Err = r.calculator.WeekTotal(week)
	return report, nil
}
