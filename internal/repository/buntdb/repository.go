// Package buntdb stores day worklogs in a buntdb key/value file, one JSON
// document per day.
package buntdb

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/tidwall/buntdb"

	apperrors "timelog/internal/errors"
	"timelog/internal/repository"
)

const keyPrefix = "worklog:"

func dayKey(day string) string {
	return keyPrefix + day
}

// Repository implements repository.Repository on buntdb.
type Repository struct {
	db *buntdb.DB
}

var _ repository.Repository = (*Repository)(nil)

// Open opens or creates the database file at path. ":memory:" keeps
// everything in memory.
func Open(path string) (*Repository, error) {
	db, err := buntdb.Open(path)
	if err != nil {
		return nil, apperrors.NewDatabaseError("open database", err)
	}
	return New(db), nil
}

// New wraps an open buntdb database.
func New(db *buntdb.DB) *Repository {
	return &Repository{db: db}
}

// Close closes the database.
func (r *Repository) Close() error {
	return r.db.Close()
}

// SaveDay stores worklog under its day, replacing any previous value.
func (r *Repository) SaveDay(ctx context.Context, worklog *repository.DayWorklog) error {
	if err := ctx.Err(); err != nil {
		return apperrors.NewDatabaseError("save day", err)
	}
	bs, err := json.Marshal(worklog)
	if err != nil {
		return apperrors.NewDatabaseError("encode day", err)
	}
	err = r.db.Update(func(tx *buntdb.Tx) error {
		_, _, err := tx.Set(dayKey(worklog.Day), string(bs), nil)
		return err
	})
	if err != nil {
		return apperrors.NewDatabaseError("save day", err)
	}
	return nil
}

// GetDay returns the worklog stored for day.
func (r *Repository) GetDay(ctx context.Context, day string) (*repository.DayWorklog, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperrors.NewDatabaseError("get day", err)
	}
	var worklog *repository.DayWorklog
	err := r.db.View(func(tx *buntdb.Tx) error {
		v, err := tx.Get(dayKey(day))
		if err != nil {
			return err
		}
		worklog, err = decode(v)
		return err
	})
	if errors.Is(err, buntdb.ErrNotFound) {
		return nil, apperrors.NewNotFoundError("day", day)
	} else if err != nil {
		return nil, apperrors.NewDatabaseError("get day", err)
	}
	return worklog, nil
}

// ListDays returns the stored days within opts. Keys embed the ISO date, so
// key order is day order.
func (r *Repository) ListDays(ctx context.Context, opts repository.RangeOptions) ([]*repository.DayWorklog, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperrors.NewDatabaseError("list days", err)
	}
	worklogs := []*repository.DayWorklog{}
	var decodeErr error
	err := r.db.View(func(tx *buntdb.Tx) error {
		return tx.AscendKeys(keyPrefix+"*", func(key, value string) bool {
			if !opts.Contains(strings.TrimPrefix(key, keyPrefix)) {
				return true
			}
			worklog, err := decode(value)
			if err != nil {
				decodeErr = err
				return false
			}
			worklogs = append(worklogs, worklog)
			return true
		})
	})
	if err == nil {
		err = decodeErr
	}
	if err != nil {
		return nil, apperrors.NewDatabaseError("list days", err)
	}
	return worklogs, nil
}

// DeleteDay removes the worklog stored for day.
func (r *Repository) DeleteDay(ctx context.Context, day string) error {
	if err := ctx.Err(); err != nil {
		return apperrors.NewDatabaseError("delete day", err)
	}
	err := r.db.Update(func(tx *buntdb.Tx) error {
		_, err := tx.Delete(dayKey(day))
		return err
	})
	if errors.Is(err, buntdb.ErrNotFound) {
		return apperrors.NewNotFoundError("day", day)
	} else if err != nil {
		return apperrors.NewDatabaseError("delete day", err)
	}
	return nil
}

func decode(v string) (*repository.DayWorklog, error) {
	var worklog repository.DayWorklog
	if err := json.Unmarshal([]byte(v), &worklog); err != nil {
		return nil, err
	}
	if worklog.Entries == nil {
		worklog.Entries = []repository.MarkerEntry{}
	}
	return &worklog, nil
}
