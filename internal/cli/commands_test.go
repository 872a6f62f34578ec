package cli

import (
	"context"
	stderrors "errors"
	"strings"
	"testing"
	apperrors "timelog/internal/errors"
	"timelog/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShowCommand(t *testing.T) {
	app, out := setupTestApp(t)
	seedDay(t, app, "2016-11-04")
	cmd := NewShowCommand(app)

	err := cmd.Execute(context.Background(), []string{"2016-11-04"})

	require.NoError(t, err)
	output := out.String()
	for _, s := range []string{"Friday 2016-11-04", "08:15", "12:30", "13:45", "17:10", "07:40"} {
		assert.Contains(t, output, s)
	}
}

func TestShowCommand_DefaultHints(t *testing.T) {
	tests := []struct {
		name         string
		showDefaults bool
		expected     []string
		absent       []string
	}{
		{"with defaults", true, []string{"(12:00)", "(13:00)", "(18:00)"}, nil},
		{"without defaults", false, nil, []string{"(12:00)", "(18:00)"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.Display.ShowDefaults = tt.showDefaults
			app, out := setupTestAppWithConfig(t, cfg)
			_, err := app.businessAPI.SetMarker(context.Background(), "2016-11-04", "morning", "08:00")
			require.NoError(t, err)

			require.NoError(t, NewShowCommand(app).Execute(context.Background(), []string{"2016-11-04"}))

			for _, s := range tt.expected {
				assert.Contains(t, out.String(), s)
			}
			for _, s := range tt.absent {
				assert.NotContains(t, out.String(), s)
			}
		})
	}
}

func TestShowCommand_Formats(t *testing.T) {
	tests := []struct {
		format   string
		expected string
	}{
		{FormatTable, "╭"},
		{FormatMarkdown, "| --- |"},
		{FormatCSV, ",08:15"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			cfg := testConfig()
			cfg.Display.Format = tt.format
			app, out := setupTestAppWithConfig(t, cfg)
			_, err := app.businessAPI.SetMarker(context.Background(), "2016-11-04", "morning", "08:15")
			require.NoError(t, err)

			require.NoError(t, NewShowCommand(app).Execute(context.Background(), []string{"2016-11-04"}))

			assert.Contains(t, out.String(), tt.expected)
		})
	}
}

func TestShowCommand_InvalidDate(t *testing.T) {
	app, _ := setupTestApp(t)

	err := NewShowCommand(app).Execute(context.Background(), []string{"04/11/2016"})

	require.Error(t, err)
	assert.True(t, validation.IsValidationError(err))
	assert.Contains(t, err.Error(), "failed to show day")
}

func TestSetCommand(t *testing.T) {
	tests := []struct {
		name           string
		date           string
		args           []string
		contains       []string
		errorAssertion func(t *testing.T, err error)
	}{
		{
			name:     "should record a marker for today",
			args:     []string{"morning", "8:05"},
			contains: []string{"2016-11-07", "08:05"},
		},
		{
			name:     "should record a marker for a given date",
			date:     "2016-11-01",
			args:     []string{"evening", "17:30"},
			contains: []string{"2016-11-01", "17:30"},
		},
		{
			name: "should require two arguments",
			args: []string{"morning"},
			errorAssertion: func(t *testing.T, err error) {
				assert.Contains(t, err.Error(), "usage: tl set")
			},
		},
		{
			name: "should reject an invalid time",
			args: []string{"morning", "8h05"},
			errorAssertion: func(t *testing.T, err error) {
				assert.Contains(t, err.Error(), "failed to set marker: time has invalid format")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, out := setupTestApp(t)
			cmd := NewSetCommand(app)
			cmd.Date = tt.date

			err := cmd.Execute(context.Background(), tt.args)

			if tt.errorAssertion != nil {
				require.Error(t, err)
				tt.errorAssertion(t, err)
				return
			}
			require.NoError(t, err)
			for _, s := range tt.contains {
				assert.Contains(t, out.String(), s)
			}
		})
	}
}

func TestSetCommand_IncoherentMarkers(t *testing.T) {
	app, _ := setupTestApp(t)
	cmd := NewSetCommand(app)
	cmd.Date = "2016-11-04"
	require.NoError(t, cmd.Execute(context.Background(), []string{"lunch-start", "12:00"}))

	err := cmd.Execute(context.Background(), []string{"morning", "12:30"})

	require.Error(t, err)
	assert.True(t, stderrors.Is(err, apperrors.ErrIncoherentMarkers))
	assert.Equal(t,
		"failed to set marker: markers of 2016-11-04 are not in chronological order: value of marker lunch_start is sooner than the value of marker morning",
		err.Error())
}

func TestNowCommand(t *testing.T) {
	app, out := setupTestApp(t)

	err := NewNowCommand(app).Execute(context.Background(), []string{"lunch_start"})

	require.NoError(t, err)
	assert.Contains(t, out.String(), "15:20")

	view, err := app.businessAPI.GetDay(context.Background(), "today")
	require.NoError(t, err)
	assert.Len(t, view.Markers, 1)
}

func TestUnsetCommand(t *testing.T) {
	app, out := setupTestApp(t)
	seedDay(t, app, "2016-11-04")
	cmd := NewUnsetCommand(app)
	cmd.Date = "2016-11-04"

	require.NoError(t, cmd.Execute(context.Background(), []string{"evening"}))
	assert.NotContains(t, out.String(), "17:10")

	for _, m := range []string{"morning", "lunch-start", "lunch-end"} {
		require.NoError(t, cmd.Execute(context.Background(), []string{m}))
	}
	assert.Contains(t, out.String(), "No marker left on 2016-11-04, day deleted")

	err := cmd.Execute(context.Background(), []string{"morning"})
	assert.True(t, stderrors.Is(err, apperrors.ErrNotFound))
}

func TestDeleteCommand(t *testing.T) {
	app, out := setupTestApp(t)
	seedDay(t, app, "2016-11-04")
	cmd := NewDeleteCommand(app)

	require.NoError(t, cmd.Execute(context.Background(), []string{"2016-11-04"}))
	assert.Contains(t, out.String(), "Deleted 2016-11-04")

	err := cmd.Execute(context.Background(), []string{"2016-11-04"})
	require.Error(t, err)
	assert.Equal(t, "failed to delete day: day not found: 2016-11-04", err.Error())

	err = cmd.Execute(context.Background(), []string{})
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeInvalidInput))
}

func TestWeekCommand(t *testing.T) {
	app, out := setupTestApp(t)
	for _, date := range []string{"2016-10-31", "2016-11-01", "2016-11-02", "2016-11-03", "2016-11-04"} {
		seedDay(t, app, date)
	}

	err := NewWeekCommand(app).Execute(context.Background(), []string{"2016-11-06"})

	require.NoError(t, err)
	output := out.String()
	assert.Equal(t, 5, strings.Count(output, "07:40"))
	assert.Contains(t, output, "Saturday")
	assert.Contains(t, output, "38:20")
}

func TestListCommand(t *testing.T) {
	app, out := setupTestApp(t)
	seedDay(t, app, "2016-11-01")
	seedDay(t, app, "2016-11-03")
	cmd := NewListCommand(app)

	require.NoError(t, cmd.Execute(context.Background(), nil))
	assert.Contains(t, out.String(), "2016-11-01")
	assert.Contains(t, out.String(), "2016-11-03")
	assert.Contains(t, out.String(), "now")

	out.Reset()
	cmd.From = "2016-11-02"
	require.NoError(t, cmd.Execute(context.Background(), nil))
	assert.NotContains(t, out.String(), "2016-11-01")
	assert.Contains(t, out.String(), "2016-11-03")

	out.Reset()
	cmd.From, cmd.To = "2016-11-05", "2016-11-06"
	require.NoError(t, cmd.Execute(context.Background(), nil))
	assert.Contains(t, out.String(), "No day recorded")
}

func TestListCommand_InvalidRange(t *testing.T) {
	app, _ := setupTestApp(t)
	cmd := NewListCommand(app)
	cmd.From, cmd.To = "2016-11-05", "2016-11-01"

	err := cmd.Execute(context.Background(), nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "range has invalid range")
}
