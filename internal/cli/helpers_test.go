package cli

import (
	"bytes"
	"context"
	"testing"
	"time"
	"timelog/internal/api"
	"timelog/internal/config"
	"timelog/internal/domain"
	"timelog/internal/repository"
	"timelog/internal/repository/sqlite"
	"timelog/internal/validation"

	"github.com/stretchr/testify/require"
)

// 07/11/2016 was a Monday.
var testNow = time.Date(2016, time.November, 7, 15, 20, 0, 0, time.Local)

// testConfig renders plain tables so that output can be matched.
func testConfig() *config.Config {
	cfg := config.NewConfig()
	cfg.Display.Color = false
	return cfg
}

func setupTestRepository(t *testing.T) repository.Repository {
	repo, err := sqlite.New(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func setupTestApp(t *testing.T) (*App, *bytes.Buffer) {
	return setupTestAppWithConfig(t, testConfig())
}

func setupTestAppWithConfig(t *testing.T, cfg *config.Config) (*App, *bytes.Buffer) {
	repo := setupTestRepository(t)
	clock := domain.FixedClock{T: testNow}
	businessAPI := api.NewBusinessAPI(repo, clock, validation.NewWorklogValidatorWithConfig(cfg))
	out := &bytes.Buffer{}
	return NewAppWithClock(businessAPI, cfg, out, clock), out
}

// seedDay records a complete day worth 07:40.
func seedDay(t *testing.T, app *App, date string) {
	ctx := context.Background()
	for _, s := range [][2]string{
		{"morning", "08:15"}, {"lunch-start", "12:30"},
		{"lunch-end", "13:45"}, {"evening", "17:10"},
	} {
		_, err := app.businessAPI.SetMarker(ctx, date, s[0], s[1])
		require.NoError(t, err)
	}
}
