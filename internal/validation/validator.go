package validation

import (
	"strings"
	"time"

	"timelog/internal/config"
	"timelog/internal/domain"
)

// Validator provides the low level checks on user input.
type Validator struct {
	config *config.Config
}

// NewValidator creates a validator using default limits.
func NewValidator() *Validator {
	return &Validator{}
}

// NewValidatorWithConfig creates a new validator instance with configuration
func NewValidatorWithConfig(cfg *config.Config) *Validator {
	return &Validator{config: cfg}
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidMarkerName reports whether name designates one of the four markers.
func (v *Validator) IsValidMarkerName(name string) bool {
	_, err := domain.ParseMarker(name)
	return err == nil
}

// IsValidClockTime reports whether s is a HH:MM time of day.
func (v *Validator) IsValidClockTime(s string) bool {
	_, err := domain.ParseTime(s)
	return err == nil
}

// IsAllowedDay rejects days after now's date unless future days are
// enabled.
func (v *Validator) IsAllowedDay(day domain.Day, now time.Time) bool {
	if v.allowFutureDays() {
		return true
	}
	return !domain.DayOf(now).Before(day)
}

// IsValidDayRange checks that from is not after to and that the range
// stays within the configured span. Open ranges are valid.
func (v *Validator) IsValidDayRange(from, to *domain.Day) bool {
	if from == nil || to == nil {
		return true
	}
	if to.Before(*from) {
		return false
	}
	return from.DaysUntil(*to) < v.maxRangeDays()
}

func (v *Validator) allowFutureDays() bool {
	if v.config != nil {
		return v.config.Validation.AllowFutureDays
	}
	return false
}

func (v *Validator) maxRangeDays() int {
	if v.config != nil {
		return v.config.Validation.MaxRangeDays
	}
	return 366
}
