package services

import (
	"context"
	"errors"
	"testing"
	"time"
	"timelog/internal/calculator"
	"timelog/internal/domain"
	apperrors "timelog/internal/errors"
	"timelog/internal/repository"
	"timelog/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportingService_LoadPreviousWeekDays(t *testing.T) {
	// 31/10/2016 was a Monday.
	monday := domain.NewDay(2016, time.October, 31)

	tests := []struct {
		name     string
		day      domain.Day
		expected []domain.Day
	}{
		{
			name:     "should return nothing for a monday",
			day:      monday,
			expected: []domain.Day{},
		},
		{
			name:     "should return monday for a tuesday",
			day:      monday.AddDays(1),
			expected: []domain.Day{monday},
		},
		{
			name:     "should return monday and tuesday for a wednesday",
			day:      monday.AddDays(2),
			expected: []domain.Day{monday, monday.AddDays(1)},
		},
		{
			name: "should return six days for a sunday",
			day:  monday.AddDays(6),
			expected: []domain.Day{
				monday, monday.AddDays(1), monday.AddDays(2),
				monday.AddDays(3), monday.AddDays(4), monday.AddDays(5),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, worklogs := setupReportingService(t)
			ctx := context.Background()
			// Saved days outside the requested window must not leak in.
			for i := -1; i <= 7; i++ {
				require.NoError(t, worklogs.SaveDay(ctx, monday.AddDays(i), fullDay()))
			}

			week, err := service.LoadPreviousWeekDays(ctx, tt.day)

			require.NoError(t, err)
			assert.Equal(t, tt.expected, domain.SortedDays(week))
			for _, d := range tt.expected {
				assert.Equal(t, fullDay(), week[d])
			}
		})
	}
}

func TestReportingService_LoadPreviousWeekDays_MissingDaysAreEmpty(t *testing.T) {
	service, worklogs := setupReportingService(t)
	ctx := context.Background()
	monday := domain.NewDay(2016, time.October, 31)
	require.NoError(t, worklogs.SaveDay(ctx, monday.AddDays(1), fullDay()))

	week, err := service.LoadPreviousWeekDays(ctx, monday.AddDays(3))

	require.NoError(t, err)
	require.Len(t, week, 3)
	assert.Empty(t, week[monday])
	assert.Equal(t, fullDay(), week[monday.AddDays(1)])
	assert.Empty(t, week[monday.AddDays(2)])
}

func TestReportingService_WeekReport(t *testing.T) {
	service, worklogs := setupReportingService(t)
	ctx := context.Background()
	monday := domain.NewDay(2016, time.October, 31)
	shorter := fullDay().With(domain.Morning, domain.NewTime(9, 15))
	for i := 0; i < 6; i++ {
		markers := fullDay()
		if i%2 == 1 {
			markers = shorter
		}
		require.NoError(t, worklogs.SaveDay(ctx, monday.AddDays(i), markers))
	}

	report, err := service.WeekReport(ctx, monday.AddDays(6))

	require.NoError(t, err)
	require.NoError(t, report.Err)
	require.Len(t, report.Days, 7)
	assert.Equal(t, domain.NewTime(7, 40), report.Days[0].Total)
	assert.Equal(t, domain.NewTime(6, 40), report.Days[1].Total)
	assert.Equal(t, calculator.RuleEmpty, report.Days[6].Rule)
	assert.Equal(t, domain.NewTime(43, 0), report.Total)
}

func TestReportingService_WeekReport_IncoherentDay(t *testing.T) {
	worklogs, repo := setupWorklogService(t)
	service := NewReportingService(worklogs, calculator.New(domain.FixedClock{T: fixedNow}))
	ctx := context.Background()
	monday := domain.NewDay(2016, time.October, 31)
	require.NoError(t, worklogs.SaveDay(ctx, monday, fullDay()))
	// Written straight to storage, bypassing the save rule.
	require.NoError(t, repo.SaveDay(ctx, &repository.DayWorklog{
		Day: monday.AddDays(1).String(),
		Entries: []repository.MarkerEntry{
			{Marker: "morning", Hour: 14, Minute: 0},
			{Marker: "evening", Hour: 9, Minute: 0},
		},
	}))

	report, err := service.WeekReport(ctx, monday.AddDays(2))

	require.NoError(t, err)
	require.Len(t, report.Days, 3)
	assert.NoError(t, report.Days[0].Err)
	_, ok := validation.AsIncoherentMarkers(report.Days[1].Err)
	assert.True(t, ok)
	assert.Error(t, report.Err)
}

func TestReportingService_DayTotal(t *testing.T) {
	service, _ := setupReportingService(t)

	result, err := service.DayTotal(domain.NewDay(2016, time.October, 31), fullDay())

	require.NoError(t, err)
	assert.Equal(t, domain.NewTime(7, 40), result.Total)
}

func TestReportingService_DayTotal_Today(t *testing.T) {
	service, _ := setupReportingService(t)

	result, err := service.DayTotal(domain.DayOf(fixedNow), domain.MarkerSet{domain.Morning: domain.NewTime(8, 15)})

	require.NoError(t, err)
	assert.Equal(t, domain.NewTime(1, 45), result.Total)
}

func TestReportingService_PropagatesStorageErrors(t *testing.T) {
	repo := setupRepository(t)
	worklogs := NewWorklogService(repo, domain.FixedClock{T: fixedNow}, nil)
	service := NewReportingService(worklogs, calculator.New(domain.FixedClock{T: fixedNow}))
	require.NoError(t, repo.Close())

	_, err := service.WeekReport(context.Background(), domain.NewDay(2016, time.November, 2))

	require.Error(t, err)
	assert.False(t, errors.Is(err, apperrors.ErrNotFound))
}

// Helper functions
func setupReportingService(t *testing.T) (ReportingService, WorklogService) {
	worklogs, _ := setupWorklogService(t)
	return NewReportingService(worklogs, calculator.New(domain.FixedClock{T: fixedNow})), worklogs
}

func TestNewServiceContainer(t *testing.T) {
	repo := setupRepository(t)
	container := NewServiceContainer(repo, domain.FixedClock{T: fixedNow}, validation.NewWorklogValidator())
	ctx := context.Background()
	day := domain.NewDay(2016, time.November, 4)

	require.NoError(t, container.WorklogService.SaveDay(ctx, day, fullDay()))
	report, err := container.ReportingService.WeekReport(ctx, day)

	require.NoError(t, err)
	assert.Equal(t, domain.NewTime(7, 40), report.Total)
}
