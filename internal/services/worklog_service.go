package services

import (
	"context"
	"errors"

	"timelog/internal/domain"
	apperrors "timelog/internal/errors"
	"timelog/internal/logging"
	"timelog/internal/repository"
	"timelog/internal/validation"
)

// worklogServiceImpl implements the WorklogService interface
type worklogServiceImpl struct {
	repo      repository.Repository
	clock     domain.Clock
	mapper    *domain.WorklogMapper
	validator *validation.WorklogValidator
}

// NewWorklogService creates a new WorklogService instance. A nil clock
// uses the system clock.
func NewWorklogService(repo repository.Repository, clock domain.Clock, validator *validation.WorklogValidator) WorklogService {
	if clock == nil {
		clock = domain.SystemClock{}
	}
	if validator == nil {
		validator = validation.NewWorklogValidator()
	}
	return &worklogServiceImpl{
		repo:      repo,
		clock:     clock,
		mapper:    domain.NewWorklogMapper(),
		validator: validator,
	}
}

// LoadDay returns the markers saved for day
func (s *worklogServiceImpl) LoadDay(ctx context.Context, day domain.Day) (domain.MarkerSet, error) {
	worklog, err := s.repo.GetDay(ctx, day.String())
	if errors.Is(err, apperrors.ErrNotFound) {
		return domain.MarkerSet{}, nil
	}
	if err != nil {
		return nil, err
	}

	_, markers, err := s.mapper.FromDatabase(worklog)
	if err != nil {
		return nil, unreadable(err).WithContext("day", day.String())
	}
	return markers, nil
}

// SaveDay replaces the markers saved for day
func (s *worklogServiceImpl) SaveDay(ctx context.Context, day domain.Day, markers domain.MarkerSet) error {
	if err := s.validator.ValidateForSave(day, markers); err != nil {
		logging.Debugf("rejected save of %s: %v", day, err)
		return err
	}

	if err := s.repo.SaveDay(ctx, s.mapper.ToDatabase(day, markers, s.clock.Now())); err != nil {
		return err
	}
	logging.Debugf("saved %s with %d marker(s)", day, len(markers))
	return nil
}

// DeleteDay removes everything saved for day
func (s *worklogServiceImpl) DeleteDay(ctx context.Context, day domain.Day) error {
	if err := s.repo.DeleteDay(ctx, day.String()); err != nil {
		return err
	}
	logging.Debugln("deleted", day)
	return nil
}

// ListDays returns the saved days between from and to
func (s *worklogServiceImpl) ListDays(ctx context.Context, from, to *domain.Day) ([]*DayRecord, error) {
	worklogs, err := s.repo.ListDays(ctx, rangeOptions(from, to))
	if err != nil {
		return nil, err
	}

	records := make([]*DayRecord, 0, len(worklogs))
	for _, worklog := range worklogs {
		day, markers, err := s.mapper.FromDatabase(worklog)
		if err != nil {
			return nil, unreadable(err).WithContext("day", worklog.Day)
		}
		records = append(records, &DayRecord{
			Day:       day,
			Markers:   markers,
			UpdatedAt: worklog.UpdatedAt,
		})
	}
	return records, nil
}

// LoadDays returns the markers saved between from and to, inclusive
func (s *worklogServiceImpl) LoadDays(ctx context.Context, from, to domain.Day) (domain.WeekData, error) {
	worklogs, err := s.repo.ListDays(ctx, rangeOptions(&from, &to))
	if err != nil {
		return nil, err
	}
	week, err := s.mapper.FromDatabaseSlice(worklogs)
	if err != nil {
		return nil, unreadable(err).WithContext("from", from.String()).WithContext("to", to.String())
	}
	return week, nil
}

// unreadable reports a stored record the mapper rejected.
func unreadable(err error) *apperrors.AppError {
	return apperrors.WrapError(err, apperrors.ErrorTypeDatabase, "stored worklog is unreadable")
}

func rangeOptions(from, to *domain.Day) repository.RangeOptions {
	var opts repository.RangeOptions
	if from != nil {
		s := from.String()
		opts.From = &s
	}
	if to != nil {
		s := to.String()
		opts.To = &s
	}
	return opts
}
