package buntdb

import (
	"context"
	"path/filepath"
	"testing"
	"time"
	apperrors "timelog/internal/errors"
	"timelog/internal/repository"
	"timelog/internal/repository/repositorytest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/buntdb"
)

func setupTestDB(t *testing.T) *Repository {
	t.Helper()
	repo, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestRepository_Contract(t *testing.T) {
	repositorytest.Run(t, func(t *testing.T) repository.Repository {
		return setupTestDB(t)
	})
}

func TestRepository_StoresJSONByDay(t *testing.T) {
	ctx := context.Background()
	repo := setupTestDB(t)
	require.NoError(t, repo.SaveDay(ctx, &repository.DayWorklog{
		Day:       "2015-06-24",
		Entries:   []repository.MarkerEntry{{Marker: "morning", Hour: 8, Minute: 15}},
		UpdatedAt: time.Date(2015, 6, 24, 8, 15, 0, 0, time.UTC),
	}))

	var raw string
	require.NoError(t, repo.db.View(func(tx *buntdb.Tx) error {
		var err error
		raw, err = tx.Get("worklog:2015-06-24")
		return err
	}))
	assert.JSONEq(t,
		`{"day":"2015-06-24","entries":[{"marker":"morning","hour":8,"minute":15}],"updated_at":"2015-06-24T08:15:00Z"}`,
		raw)
}

func TestRepository_IgnoresForeignKeys(t *testing.T) {
	ctx := context.Background()
	repo := setupTestDB(t)
	require.NoError(t, repo.db.Update(func(tx *buntdb.Tx) error {
		_, _, err := tx.Set("settings:theme", "dark", nil)
		return err
	}))

	days, err := repo.ListDays(ctx, repository.RangeOptions{})

	require.NoError(t, err)
	assert.Empty(t, days)
}

func TestRepository_CorruptValue(t *testing.T) {
	ctx := context.Background()
	repo := setupTestDB(t)
	require.NoError(t, repo.db.Update(func(tx *buntdb.Tx) error {
		_, _, err := tx.Set("worklog:2015-06-24", "{not json", nil)
		return err
	}))

	_, err := repo.GetDay(ctx, "2015-06-24")
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeDatabase))

	_, err = repo.ListDays(ctx, repository.RangeOptions{})
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeDatabase))
}

func TestRepository_PersistsToFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "timelog.buntdb")

	repo, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, repo.SaveDay(ctx, &repository.DayWorklog{
		Day:       "2015-06-24",
		Entries:   []repository.MarkerEntry{{Marker: "evening", Hour: 17, Minute: 0}},
		UpdatedAt: time.Now(),
	}))
	require.NoError(t, repo.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.GetDay(ctx, "2015-06-24")
	require.NoError(t, err)
	assert.Equal(t, []repository.MarkerEntry{{Marker: "evening", Hour: 17, Minute: 0}}, got.Entries)
}

func TestRepository_CanceledContext(t *testing.T) {
	repo := setupTestDB(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Error(t, repo.SaveDay(ctx, &repository.DayWorklog{Day: "2015-06-24"}))
	_, err := repo.GetDay(ctx, "2015-06-24")
	assert.Error(t, err)
}
