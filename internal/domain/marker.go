package domain

import (
	"fmt"
	"strings"
)

// Marker is one of the four punch-clock events of a work day.
// The integer value is the marker's rank: ranks are chronological and are
// what validation and total computation iterate on.
type Marker int

const (
	// MarkerUnknown is only used when an error cannot name a marker.
	MarkerUnknown Marker = -1

	// Morning is the arrival time.
	Morning Marker = 0
	// LunchStart is the start of the lunch break.
	LunchStart Marker = 1
	// LunchEnd is the end of the lunch break.
	LunchEnd Marker = 2
	// Evening is the departure time.
	Evening Marker = 3
)

// markerInfo holds the fixed attributes of each marker, indexed by rank.
var markerInfo = [...]struct {
	name        string
	label       string
	defaultTime Time
}{
	Morning:    {name: "morning", label: "Morning", defaultTime: Time{Hour: 9, Minute: 0}},
	LunchStart: {name: "lunch_start", label: "Lunch start", defaultTime: Time{Hour: 12, Minute: 0}},
	LunchEnd:   {name: "lunch_end", label: "Lunch end", defaultTime: Time{Hour: 13, Minute: 0}},
	Evening:    {name: "evening", label: "Evening", defaultTime: Time{Hour: 18, Minute: 0}},
}

// Markers returns every marker in chronological order.
func Markers() []Marker {
	return []Marker{Morning, LunchStart, LunchEnd, Evening}
}

// Rank returns the chronological position of the marker (0..3).
func (m Marker) Rank() int {
	return int(m)
}

// IsValid reports whether m is one of the four known markers.
func (m Marker) IsValid() bool {
	return m >= Morning && m <= Evening
}

// DefaultTime returns the time used to seed a picker for this marker.
func (m Marker) DefaultTime() Time {
	if !m.IsValid() {
		return Time{}
	}
	return markerInfo[m].defaultTime
}

// String returns the storage name of the marker, e.g. "lunch_start".
func (m Marker) String() string {
	if !m.IsValid() {
		return "unknown"
	}
	return markerInfo[m].name
}

// Label returns a display label for the marker.
func (m Marker) Label() string {
	if !m.IsValid() {
		return "Unknown"
	}
	return markerInfo[m].label
}

// ParseMarker converts a marker name to a Marker. Names are case
// insensitive and accept either '-' or '_' as separator.
func ParseMarker(s string) (Marker, error) {
	name := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	for _, m := range Markers() {
		if markerInfo[m].name == name {
			return m, nil
		}
	}
	return MarkerUnknown, fmt.Errorf("unknown marker %q", s)
}
