package migrations

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

func init() {
	RegisterGoMigration(3, "normalize_marker_names", upNormalizeMarkerNames, downNormalizeMarkerNames)
}

// canonicalMarkerNames maps accepted spellings to the stored marker name.
var canonicalMarkerNames = map[string]string{
	"morning":     "morning",
	"lunch_start": "lunch_start",
	"lunchstart":  "lunch_start",
	"lunch_end":   "lunch_end",
	"lunchend":    "lunch_end",
	"evening":     "evening",
}

// upNormalizeMarkerNames rewrites marker names imported with other
// spellings ("LUNCH-START", "LunchEnd") to their canonical form. Names it
// cannot map are left as they are.
func upNormalizeMarkerNames(ctx context.Context, tx *sql.Tx) error {
	type entry struct {
		day    string
		marker string
	}
	var entries []entry

	rows, err := tx.QueryContext(ctx, "SELECT day, marker FROM worklog_entries")
	if err != nil {
		return fmt.Errorf("failed to query worklog entries: %w", err)
	}
	for rows.Next() {
		var e entry
		if err := rows.Scan(&e.day, &e.marker); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan worklog entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("error iterating worklog entries: %w", err)
	}
	rows.Close()

	stmt, err := tx.PrepareContext(ctx, "UPDATE worklog_entries SET marker = ? WHERE day = ? AND marker = ?")
	if err != nil {
		return fmt.Errorf("failed to prepare marker update statement: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		canonical, ok := CanonicalMarkerName(e.marker)
		if !ok || canonical == e.marker {
			continue
		}
		if _, err := stmt.ExecContext(ctx, canonical, e.day, e.marker); err != nil {
			return fmt.Errorf("failed to update marker %s of %s: %w", e.marker, e.day, err)
		}
	}
	return nil
}

// downNormalizeMarkerNames has nothing to undo: canonical names are valid
// input for every version.
func downNormalizeMarkerNames(ctx context.Context, tx *sql.Tx) error {
	return nil
}

// CanonicalMarkerName returns the stored spelling of a marker name.
func CanonicalMarkerName(name string) (string, bool) {
	key := strings.NewReplacer("-", "_", " ", "_").Replace(strings.ToLower(strings.TrimSpace(name)))
	canonical, ok := canonicalMarkerNames[key]
	return canonical, ok
}
