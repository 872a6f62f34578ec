// Package repositorytest holds the behaviour every repository.Repository
// implementation must share.
package repositorytest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apperrors "timelog/internal/errors"
	"timelog/internal/repository"
)

// Factory returns a fresh, empty repository.
type Factory func(t *testing.T) repository.Repository

func worklog(day string, entries ...repository.MarkerEntry) *repository.DayWorklog {
	return &repository.DayWorklog{
		Day:       day,
		Entries:   entries,
		UpdatedAt: time.Date(2015, 6, 24, 18, 0, 0, 0, time.UTC),
	}
}

func entry(marker string, hour, minute int) repository.MarkerEntry {
	return repository.MarkerEntry{Marker: marker, Hour: hour, Minute: minute}
}

func strPtr(s string) *string {
	return &s
}

// Run exercises the repository contract against repositories built by newRepo.
func Run(t *testing.T, newRepo Factory) {
	ctx := context.Background()

	t.Run("save and get", func(t *testing.T) {
		repo := newRepo(t)
		saved := worklog("2015-06-24", entry("morning", 8, 15), entry("lunch_start", 12, 30))

		require.NoError(t, repo.SaveDay(ctx, saved))

		got, err := repo.GetDay(ctx, "2015-06-24")
		require.NoError(t, err)
		assert.Equal(t, "2015-06-24", got.Day)
		assert.Equal(t, saved.Entries, got.Entries)
		assert.True(t, saved.UpdatedAt.Equal(got.UpdatedAt))
	})

	t.Run("save replaces the whole day", func(t *testing.T) {
		repo := newRepo(t)
		require.NoError(t, repo.SaveDay(ctx, worklog("2015-06-24", entry("morning", 8, 15), entry("evening", 17, 0))))
		require.NoError(t, repo.SaveDay(ctx, worklog("2015-06-24", entry("morning", 9, 0))))

		got, err := repo.GetDay(ctx, "2015-06-24")
		require.NoError(t, err)
		assert.Equal(t, []repository.MarkerEntry{entry("morning", 9, 0)}, got.Entries)
	})

	t.Run("get missing day", func(t *testing.T) {
		repo := newRepo(t)

		_, err := repo.GetDay(ctx, "2015-06-24")

		require.Error(t, err)
		assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	})

	t.Run("list ascending with range", func(t *testing.T) {
		repo := newRepo(t)
		for _, day := range []string{"2015-06-24", "2015-06-22", "2015-06-23", "2015-06-29"} {
			require.NoError(t, repo.SaveDay(ctx, worklog(day, entry("morning", 8, 0))))
		}

		all, err := repo.ListDays(ctx, repository.RangeOptions{})
		require.NoError(t, err)
		assert.Equal(t, []string{"2015-06-22", "2015-06-23", "2015-06-24", "2015-06-29"}, days(all))

		week, err := repo.ListDays(ctx, repository.RangeOptions{From: strPtr("2015-06-22"), To: strPtr("2015-06-23")})
		require.NoError(t, err)
		assert.Equal(t, []string{"2015-06-22", "2015-06-23"}, days(week))
		assert.Equal(t, []repository.MarkerEntry{entry("morning", 8, 0)}, week[0].Entries)

		after, err := repo.ListDays(ctx, repository.RangeOptions{From: strPtr("2015-06-24")})
		require.NoError(t, err)
		assert.Equal(t, []string{"2015-06-24", "2015-06-29"}, days(after))
	})

	t.Run("list empty", func(t *testing.T) {
		repo := newRepo(t)

		got, err := repo.ListDays(ctx, repository.RangeOptions{})

		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("delete", func(t *testing.T) {
		repo := newRepo(t)
		require.NoError(t, repo.SaveDay(ctx, worklog("2015-06-24", entry("morning", 8, 0))))

		require.NoError(t, repo.DeleteDay(ctx, "2015-06-24"))

		_, err := repo.GetDay(ctx, "2015-06-24")
		assert.True(t, errors.Is(err, apperrors.ErrNotFound))

		err = repo.DeleteDay(ctx, "2015-06-24")
		assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	})

	t.Run("days are independent", func(t *testing.T) {
		repo := newRepo(t)
		require.NoError(t, repo.SaveDay(ctx, worklog("2015-06-23", entry("morning", 7, 0))))
		require.NoError(t, repo.SaveDay(ctx, worklog("2015-06-24", entry("morning", 8, 0))))
		require.NoError(t, repo.DeleteDay(ctx, "2015-06-24"))

		got, err := repo.GetDay(ctx, "2015-06-23")
		require.NoError(t, err)
		assert.Equal(t, []repository.MarkerEntry{entry("morning", 7, 0)}, got.Entries)
	})
}

func days(worklogs []*repository.DayWorklog) []string {
	result := make([]string, 0, len(worklogs))
	for _, w := range worklogs {
		result = append(result, w.Day)
	}
	return result
}
