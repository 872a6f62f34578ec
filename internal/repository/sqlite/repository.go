// Package sqlite stores day worklogs in a SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	apperrors "timelog/internal/errors"
	"timelog/internal/repository"
	"timelog/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// Options tunes the repository. Zero timeouts disable the corresponding
// deadline.
type Options struct {
	QueryTimeout time.Duration
	WriteTimeout time.Duration
}

// entryOrder lists a day's entries in marker rank order.
const entryOrder = ` ORDER BY day, CASE marker
	WHEN 'morning' THEN 0
	WHEN 'lunch_start' THEN 1
	WHEN 'lunch_end' THEN 2
	WHEN 'evening' THEN 3
	ELSE 4 END`

// SQLiteRepository implements repository.Repository
type SQLiteRepository struct {
	db   *sql.DB
	opts Options
}

var _ repository.Repository = (*SQLiteRepository)(nil)

// New creates a new SQLite repository instance
func New(ctx context.Context, dbPath string) (*SQLiteRepository, error) {
	return NewWithOptions(ctx, dbPath, Options{})
}

// NewWithOptions opens dbPath, runs pending migrations and returns the
// repository.
func NewWithOptions(ctx context.Context, dbPath string, opts Options) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, apperrors.NewDatabaseError("open database", err)
	}
	// Every connection to :memory: is a distinct database, and SQLite
	// serialises writers anyway.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, apperrors.NewDatabaseError("enable foreign keys", err)
	}

	if err := migrations.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, apperrors.NewDatabaseError("run migrations", err)
	}

	return &SQLiteRepository{db: db, opts: opts}, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

// SaveDay replaces the stored entries of worklog.Day.
func (r *SQLiteRepository) SaveDay(ctx context.Context, worklog *repository.DayWorklog) error {
	ctx, cancel := r.withTimeout(ctx, r.opts.WriteTimeout)
	defer cancel()

	return WithTransaction(ctx, r.db, "save day", func(tx *sql.Tx) error {
		upsert := `
		INSERT INTO worklog_days (day, updated_at) VALUES (?, ?)
		ON CONFLICT(day) DO UPDATE SET updated_at = excluded.updated_at`
		if _, err := tx.ExecContext(ctx, upsert, worklog.Day, FormatTimeForDB(worklog.UpdatedAt)); err != nil {
			return HandleDatabaseError("save day", err)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM worklog_entries WHERE day = ?`, worklog.Day); err != nil {
			return HandleDatabaseError("clear day entries", err)
		}

		for _, entry := range worklog.Entries {
			insert := `INSERT INTO worklog_entries (day, marker, hour, minute) VALUES (?, ?, ?, ?)`
			if _, err := tx.ExecContext(ctx, insert, worklog.Day, entry.Marker, entry.Hour, entry.Minute); err != nil {
				return HandleDatabaseError("save day entry", err)
			}
		}
		return nil
	})
}

// GetDay retrieves the worklog of one day.
func (r *SQLiteRepository) GetDay(ctx context.Context, day string) (*repository.DayWorklog, error) {
	ctx, cancel := r.withTimeout(ctx, r.opts.QueryTimeout)
	defer cancel()

	row, err := QuerySingle(ctx, r.db, `SELECT day, updated_at FROM worklog_days WHERE day = ?`, scanDay, "day", day, day)
	if err != nil {
		return nil, err
	}

	entries, err := QueryMultiple(ctx, r.db, `
	SELECT day, marker, hour, minute
	FROM worklog_entries
	WHERE day = ?`+entryOrder, scanEntries, "day entries", day)
	if err != nil {
		return nil, err
	}

	return assemble([]*dayRow{row}, entries)[0], nil
}

// ListDays retrieves stored days within opts, oldest first.
func (r *SQLiteRepository) ListDays(ctx context.Context, opts repository.RangeOptions) ([]*repository.DayWorklog, error) {
	ctx, cancel := r.withTimeout(ctx, r.opts.QueryTimeout)
	defer cancel()

	where, args := rangeCondition(opts)

	days, err := QueryMultiple(ctx, r.db, `SELECT day, updated_at FROM worklog_days`+where+` ORDER BY day ASC`, scanDays, "days", args...)
	if err != nil {
		return nil, err
	}
	if len(days) == 0 {
		return []*repository.DayWorklog{}, nil
	}

	entries, err := QueryMultiple(ctx, r.db, `SELECT day, marker, hour, minute FROM worklog_entries`+where+entryOrder, scanEntries, "day entries", args...)
	if err != nil {
		return nil, err
	}

	return assemble(days, entries), nil
}

// DeleteDay removes a day and its entries.
func (r *SQLiteRepository) DeleteDay(ctx context.Context, day string) error {
	ctx, cancel := r.withTimeout(ctx, r.opts.WriteTimeout)
	defer cancel()

	return WithTransaction(ctx, r.db, "delete day", func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM worklog_entries WHERE day = ?`, day); err != nil {
			return HandleDatabaseError("delete day entries", err)
		}
		return ExecuteWithRowsAffected(ctx, tx, `DELETE FROM worklog_days WHERE day = ?`, "day", day, day)
	})
}

func rangeCondition(opts repository.RangeOptions) (string, []any) {
	var conditions []string
	var args []any
	if opts.From != nil {
		conditions = append(conditions, "day >= ?")
		args = append(args, *opts.From)
	}
	if opts.To != nil {
		conditions = append(conditions, "day <= ?")
		args = append(args, *opts.To)
	}
	if len(conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

// assemble groups entries under their day, keeping the order of days.
func assemble(days []*dayRow, entries []*entryRow) []*repository.DayWorklog {
	byDay := make(map[string]*repository.DayWorklog, len(days))
	result := make([]*repository.DayWorklog, 0, len(days))
	for _, d := range days {
		w := &repository.DayWorklog{
			Day:       d.Day,
			Entries:   []repository.MarkerEntry{},
			UpdatedAt: d.UpdatedAt,
		}
		byDay[d.Day] = w
		result = append(result, w)
	}
	for _, e := range entries {
		if w, ok := byDay[e.Day]; ok {
			w.Entries = append(w.Entries, repository.MarkerEntry{Marker: e.Marker, Hour: e.Hour, Minute: e.Minute})
		}
	}
	return result
}
