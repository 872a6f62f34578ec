package sqlite

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...any) error
}

// Rows interface defines the common behavior for sql.Rows
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

// scanDay scans a single worklog_days row.
func scanDay(scanner Scanner) (*dayRow, error) {
	row := &dayRow{}
	var updatedAt string
	if err := scanner.Scan(&row.Day, &updatedAt); err != nil {
		return nil, err
	}
	t, err := ParseTimeFromDB(updatedAt)
	if err != nil {
		return nil, err
	}
	row.UpdatedAt = t
	return row, nil
}

// scanDays scans worklog_days rows.
func scanDays(rows Rows) ([]*dayRow, error) {
	return scanAll(rows, scanDay)
}

// scanEntry scans a single worklog_entries row.
func scanEntry(scanner Scanner) (*entryRow, error) {
	row := &entryRow{}
	if err := scanner.Scan(&row.Day, &row.Marker, &row.Hour, &row.Minute); err != nil {
		return nil, err
	}
	return row, nil
}

// scanEntries scans worklog_entries rows.
func scanEntries(rows Rows) ([]*entryRow, error) {
	return scanAll(rows, scanEntry)
}

func scanAll[T any](rows Rows, scan func(Scanner) (*T, error)) ([]*T, error) {
	var results []*T
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
