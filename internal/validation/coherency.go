package validation

import (
	"errors"
	"fmt"

	"timelog/internal/domain"
)

// IncoherentMarkersError reports the first pair of markers, in rank order,
// where the later marker holds a strictly earlier time.
type IncoherentMarkersError struct {
	Earlier domain.Marker
	Later   domain.Marker
}

func (e *IncoherentMarkersError) Error() string {
	if !e.Earlier.IsValid() || !e.Later.IsValid() {
		return "values of markers are incoherent (a later marker has a sooner value than a sooner marker)"
	}
	return fmt.Sprintf("value of marker %s is sooner than the value of marker %s", e.Later, e.Earlier)
}

// AsIncoherentMarkers extracts an IncoherentMarkersError from err's chain.
func AsIncoherentMarkers(err error) (*IncoherentMarkersError, bool) {
	var incoherent *IncoherentMarkersError
	if errors.As(err, &incoherent) {
		return incoherent, true
	}
	return nil, false
}

// ValidateCoherency checks that present markers hold non-decreasing times in
// rank order. Equal times are coherent, and so are empty and single-marker
// sets.
func ValidateCoherency(markers domain.MarkerSet) error {
	present := markers.Present()
	for i := 1; i < len(present); i++ {
		earlier, later := present[i-1], present[i]
		if markers[later].Before(markers[earlier]) {
			return &IncoherentMarkersError{Earlier: earlier, Later: later}
		}
	}
	return nil
}
