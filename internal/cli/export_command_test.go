package cli

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"timelog/internal/api"
	apperrors "timelog/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestExportCommand(t *testing.T) {
	tests := []struct {
		format string
		decode func(t *testing.T, output string) []*api.ExportRecord
	}{
		{
			format: ExportJSON,
			decode: func(t *testing.T, output string) []*api.ExportRecord {
				var records []*api.ExportRecord
				require.NoError(t, json.Unmarshal([]byte(output), &records))
				return records
			},
		},
		{
			format: ExportYAML,
			decode: func(t *testing.T, output string) []*api.ExportRecord {
				var records []*api.ExportRecord
				require.NoError(t, yaml.Unmarshal([]byte(output), &records))
				return records
			},
		},
		{
			format: ExportCSV,
			decode: func(t *testing.T, output string) []*api.ExportRecord {
				rows, err := csv.NewReader(strings.NewReader(output)).ReadAll()
				require.NoError(t, err)
				require.NotEmpty(t, rows)
				assert.Equal(t, "day", rows[0][0])
				var records []*api.ExportRecord
				for _, row := range rows[1:] {
					records = append(records, &api.ExportRecord{
						Day:        row[0],
						Morning:    row[1],
						LunchStart: row[2],
						LunchEnd:   row[3],
						Evening:    row[4],
						Total:      row[5],
					})
				}
				return records
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			app, out := setupTestApp(t)
			seedDay(t, app, "2016-11-01")
			_, err := app.businessAPI.SetMarker(context.Background(), "2016-11-02", "morning", "09:00")
			require.NoError(t, err)
			cmd := NewExportCommand(app)
			cmd.Format = tt.format

			require.NoError(t, cmd.Execute(context.Background(), nil))

			records := tt.decode(t, out.String())
			require.Len(t, records, 2)
			assert.Equal(t, "2016-11-01", records[0].Day)
			assert.Equal(t, "08:15", records[0].Morning)
			assert.Equal(t, "17:10", records[0].Evening)
			assert.Equal(t, "07:40", records[0].Total)
			assert.Equal(t, "2016-11-02", records[1].Day)
			assert.Empty(t, records[1].Evening)
		})
	}
}

func TestExportCommand_DefaultFormatFromConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Commands.ExportDefaultFormat = ExportJSON
	app, out := setupTestAppWithConfig(t, cfg)
	seedDay(t, app, "2016-11-01")

	require.NoError(t, NewExportCommand(app).Execute(context.Background(), nil))

	assert.True(t, strings.HasPrefix(strings.TrimSpace(out.String()), "["))
}

func TestExportCommand_Range(t *testing.T) {
	app, out := setupTestApp(t)
	seedDay(t, app, "2016-11-01")
	seedDay(t, app, "2016-11-03")
	cmd := NewExportCommand(app)
	cmd.Format = ExportJSON
	cmd.To = "2016-11-02"

	require.NoError(t, cmd.Execute(context.Background(), nil))

	var records []*api.ExportRecord
	require.NoError(t, json.Unmarshal(out.Bytes(), &records))
	require.Len(t, records, 1)
	assert.Equal(t, "2016-11-01", records[0].Day)
}

func TestExportCommand_UnsupportedFormat(t *testing.T) {
	app, _ := setupTestApp(t)
	cmd := NewExportCommand(app)
	cmd.Format = "xml"

	err := cmd.Execute(context.Background(), nil)

	require.Error(t, err)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeInvalidInput))
	assert.Contains(t, err.Error(), "unsupported format")
}
