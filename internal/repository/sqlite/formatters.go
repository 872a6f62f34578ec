package sqlite

import (
	"fmt"
	"time"
)

// FormatTimeForDB renders updated_at columns. Values are stored in UTC so
// that text order is time order.
func FormatTimeForDB(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// ParseTimeFromDB reads an updated_at column back in local time.
func ParseTimeFromDB(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid updated_at %q: %w", s, err)
	}
	return t.Local(), nil
}
