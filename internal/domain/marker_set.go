package domain

// MarkerSet holds the recorded times of one day, keyed by marker.
type MarkerSet map[Marker]Time

// NewMarkerSet builds a MarkerSet from marker/time pairs.
func NewMarkerSet(pairs map[Marker]Time) MarkerSet {
	set := make(MarkerSet, len(pairs))
	for m, t := range pairs {
		set[m] = t
	}
	return set
}

// Has reports whether the marker is set.
func (s MarkerSet) Has(m Marker) bool {
	_, ok := s[m]
	return ok
}

// HasExactly reports whether the set contains exactly the given markers.
func (s MarkerSet) HasExactly(markers ...Marker) bool {
	if len(s) != len(markers) {
		return false
	}
	for _, m := range markers {
		if !s.Has(m) {
			return false
		}
	}
	return true
}

// Present returns the set markers in rank order.
func (s MarkerSet) Present() []Marker {
	present := make([]Marker, 0, len(s))
	for _, m := range Markers() {
		if s.Has(m) {
			present = append(present, m)
		}
	}
	return present
}

// Clone returns a copy that can be modified without touching s.
func (s MarkerSet) Clone() MarkerSet {
	return NewMarkerSet(s)
}

// With returns a copy of s with m set to t.
func (s MarkerSet) With(m Marker, t Time) MarkerSet {
	c := s.Clone()
	c[m] = t
	return c
}

// Without returns a copy of s with m removed.
func (s MarkerSet) Without(m Marker) MarkerSet {
	c := s.Clone()
	delete(c, m)
	return c
}
