package validation

import (
	"strings"
	"time"

	"timelog/internal/config"
	"timelog/internal/domain"
	apperrors "timelog/internal/errors"
)

// WorklogValidator turns command line input into domain values and
// enforces the save rule on a day's markers.
type WorklogValidator struct {
	validator *Validator
}

// NewWorklogValidator creates a worklog validator with default limits.
func NewWorklogValidator() *WorklogValidator {
	return &WorklogValidator{validator: NewValidator()}
}

// NewWorklogValidatorWithConfig creates a worklog validator using cfg's limits.
func NewWorklogValidatorWithConfig(cfg *config.Config) *WorklogValidator {
	return &WorklogValidator{validator: NewValidatorWithConfig(cfg)}
}

// ParseMarker validates and converts a marker name.
func (wv *WorklogValidator) ParseMarker(name string) (domain.Marker, error) {
	validationError := NewValidationError()
	if !wv.validator.IsNonEmptyString(name) {
		validationError.AddRequiredError("marker")
		return domain.MarkerUnknown, validationError
	}
	if !wv.validator.IsValidMarkerName(name) {
		validationError.AddInvalidValueError("marker", name, "must be one of morning, lunch-start, lunch-end, evening")
		return domain.MarkerUnknown, validationError
	}
	return domain.ParseMarker(name)
}

// ParseTime validates and converts a HH:MM time of day.
func (wv *WorklogValidator) ParseTime(s string) (domain.Time, error) {
	validationError := NewValidationError()
	if !wv.validator.IsNonEmptyString(s) {
		validationError.AddRequiredError("time")
		return domain.Time{}, validationError
	}
	s = strings.TrimSpace(s)
	if !wv.validator.IsValidClockTime(s) {
		validationError.AddInvalidFormatError("time", s, "HH:MM between 00:00 and 23:59")
		return domain.Time{}, validationError
	}
	return domain.ParseTime(s)
}

// ParseDay validates and converts a day argument relative to now.
func (wv *WorklogValidator) ParseDay(s string, now time.Time) (domain.Day, error) {
	validationError := NewValidationError()
	day, err := domain.ParseDay(s, now)
	if err != nil {
		validationError.AddInvalidFormatError("date", s, "YYYY-MM-DD, today or yesterday")
		return domain.Day{}, validationError
	}
	if !wv.validator.IsAllowedDay(day, now) {
		validationError.AddInvalidValueError("date", s, "must not be in the future")
		return domain.Day{}, validationError
	}
	return day, nil
}

// ParseRange validates optional --from and --to bounds. Empty strings
// leave the bound open.
func (wv *WorklogValidator) ParseRange(from, to string, now time.Time) (*domain.Day, *domain.Day, error) {
	validationError := NewValidationError()

	parse := func(field, s string) *domain.Day {
		if strings.TrimSpace(s) == "" {
			return nil
		}
		day, err := domain.ParseDay(s, now)
		if err != nil {
			validationError.AddInvalidFormatError(field, s, "YYYY-MM-DD, today or yesterday")
			return nil
		}
		return &day
	}
	fromDay := parse("from", from)
	toDay := parse("to", to)

	if validationError.HasErrors() {
		return nil, nil, validationError
	}
	if !wv.validator.IsValidDayRange(fromDay, toDay) {
		validationError.AddInvalidRangeError("range", map[string]string{"from": from, "to": to},
			"from must not be after to and the range must not exceed the configured number of days")
		return nil, nil, validationError
	}
	return fromDay, toDay, nil
}

// ValidateForSave applies the save rule: a day needs at least one marker
// and its markers must be coherent.
func (wv *WorklogValidator) ValidateForSave(day domain.Day, markers domain.MarkerSet) error {
	if len(markers) == 0 {
		return apperrors.NewEmptyDayError(day.String())
	}
	for m, t := range markers {
		if !m.IsValid() {
			return apperrors.NewInvalidInputError("marker", int(m), "unknown marker")
		}
		if !t.IsClockTime() {
			return apperrors.NewInvalidInputError(m.String(), t.String(), "not a time of day")
		}
	}
	if err := ValidateCoherency(markers); err != nil {
		return apperrors.NewIncoherentMarkersError(day.String(), err)
	}
	return nil
}
