// Package calculator computes worked time from a day's markers.
package calculator

import (
	"timelog/internal/domain"
	"timelog/internal/validation"
)

const (
	// DefaultLunchMinutes is deducted when the lunch break was not recorded.
	DefaultLunchMinutes = 60

	// afternoonHour is the hour from which an ongoing day is assumed to
	// include a lunch break.
	afternoonHour = 13
)

// dayContext is what a rule inspects.
type dayContext struct {
	markers domain.MarkerSet
	today   bool
	now     domain.Time
}

func (c dayContext) diff(later, earlier domain.Marker) int {
	return c.markers[later].Sub(c.markers[earlier])
}

// rule is one case of the total computation. Rules are evaluated in order
// and the first one that applies wins.
type rule struct {
	name    string
	applies func(c dayContext) bool
	minutes func(c dayContext) int
}

var rules = []rule{
	{
		name: "complete day",
		applies: func(c dayContext) bool {
			return c.markers.HasExactly(domain.Morning, domain.LunchStart, domain.LunchEnd, domain.Evening)
		},
		minutes: func(c dayContext) int {
			return c.diff(domain.LunchStart, domain.Morning) + c.diff(domain.Evening, domain.LunchEnd)
		},
	},
	{
		name: "no lunch recorded",
		applies: func(c dayContext) bool {
			return c.markers.HasExactly(domain.Morning, domain.Evening)
		},
		minutes: func(c dayContext) int {
			return c.diff(domain.Evening, domain.Morning) - DefaultLunchMinutes
		},
	},
	{
		name: "morning only",
		applies: func(c dayContext) bool {
			return c.markers.HasExactly(domain.Morning, domain.LunchStart)
		},
		minutes: func(c dayContext) int {
			return c.diff(domain.LunchStart, domain.Morning)
		},
	},
	{
		// A past day without an evening only counts the morning.
		name: "past day without evening",
		applies: func(c dayContext) bool {
			return !c.today && c.markers.HasExactly(domain.Morning, domain.LunchStart, domain.LunchEnd)
		},
		minutes: func(c dayContext) int {
			return c.diff(domain.LunchStart, domain.Morning)
		},
	},
	{
		name: "today since arrival",
		applies: func(c dayContext) bool {
			return c.today && c.markers.HasExactly(domain.Morning)
		},
		minutes: func(c dayContext) int {
			worked := c.now.Sub(c.markers[domain.Morning])
			if c.now.Hour >= afternoonHour {
				worked -= DefaultLunchMinutes
			}
			return worked
		},
	},
	{
		name: "today since lunch",
		applies: func(c dayContext) bool {
			return c.today && c.markers.HasExactly(domain.Morning, domain.LunchStart, domain.LunchEnd)
		},
		minutes: func(c dayContext) int {
			return c.diff(domain.LunchStart, domain.Morning) + c.now.Sub(c.markers[domain.LunchEnd])
		},
	},
}

// Calculator computes day and week totals. The current time is read from
// the clock so that "today" rules are deterministic under test.
type Calculator struct {
	clock domain.Clock
}

// New creates a Calculator. A nil clock uses the system clock.
func New(clock domain.Clock) *Calculator {
	if clock == nil {
		clock = domain.SystemClock{}
	}
	return &Calculator{clock: clock}
}

// Result is a day total and the name of the rule that produced it.
type Result struct {
	Total domain.Time
	Rule  string
}

// Rule names reported when no computation rule applied.
const (
	RuleEmpty     = "no marker"
	RuleUncovered = "incomplete day"
)

// Compute returns the time worked on day. An empty set is 00:00 without
// validation; otherwise an incoherent set returns the
// *validation.IncoherentMarkersError unchanged. Marker combinations no rule
// covers total 00:00. The result is not clamped and may be negative.
func (c *Calculator) Compute(day domain.Day, markers domain.MarkerSet) (Result, error) {
	if len(markers) == 0 {
		return Result{Rule: RuleEmpty}, nil
	}
	if err := validation.ValidateCoherency(markers); err != nil {
		return Result{}, err
	}

	now := c.clock.Now()
	ctx := dayContext{
		markers: markers,
		today:   day.IsSameOrdinalDay(now),
		now:     domain.TimeOf(now),
	}
	for _, r := range rules {
		if r.applies(ctx) {
			return Result{Total: domain.TimeFromMinutes(r.minutes(ctx)), Rule: r.name}, nil
		}
	}
	return Result{Rule: RuleUncovered}, nil
}

// DayTotal is Compute without the rule name.
func (c *Calculator) DayTotal(day domain.Day, markers domain.MarkerSet) (domain.Time, error) {
	result, err := c.Compute(day, markers)
	return result.Total, err
}

// WeekTotal sums DayTotal over every day of week, in day order. The first
// incoherent day aborts the sum.
func (c *Calculator) WeekTotal(week domain.WeekData) (domain.Time, error) {
	minutes := 0
	for _, day := range domain.SortedDays(week) {
		total, err := c.DayTotal(day, week[day])
		if err != nil {
			return domain.Time{}, err
		}
		minutes += total.Minutes()
	}
	return domain.TimeFromMinutes(minutes), nil
}

// Sum adds two durations.
func Sum(a, b domain.Time) domain.Time {
	return a.Add(b)
}
