package cli

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
	"timelog/internal/api"
	"timelog/internal/errors"
)

// Export formats.
const (
	ExportCSV  = "csv"
	ExportJSON = "json"
	ExportYAML = "yaml"
)

// ExportCommand handles the export command
type ExportCommand struct {
	businessAPI  api.BusinessAPI
	errorHandler *ErrorHandler
	out          io.Writer

	// Format is csv, json or yaml.
	Format string
	From   string
	To     string
}

// NewExportCommand creates a new export command handler
func NewExportCommand(app *App) *ExportCommand {
	return &ExportCommand{
		businessAPI:  app.businessAPI,
		errorHandler: NewErrorHandler(),
		out:          app.out,
		Format:       app.config.Commands.ExportDefaultFormat,
	}
}

// Execute writes the saved days to the output in the selected format.
func (c *ExportCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return errors.NewInvalidInputError("arguments", args, "usage: tl export [--format csv|json|yaml] [--from DATE] [--to DATE]")
	}

	format := strings.ToLower(strings.TrimSpace(c.Format))
	switch format {
	case ExportCSV, ExportJSON, ExportYAML:
	default:
		return c.errorHandler.Handle("export days", errors.NewInvalidInputError("format", c.Format, "unsupported format, use csv, json or yaml"))
	}

	records, err := c.businessAPI.ExportDays(ctx, c.From, c.To)
	if err != nil {
		return c.errorHandler.Handle("export days", err)
	}

	switch format {
	case ExportJSON:
		err = c.outputJSON(records)
	case ExportYAML:
		err = c.outputYAML(records)
	default:
		err = c.outputCSV(records)
	}
	if err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	return nil
}

func (c *ExportCommand) outputCSV(records []*api.ExportRecord) error {
	writer := csv.NewWriter(c.out)

	header := []string{"day", "morning", "lunch_start", "lunch_end", "evening", "total", "error", "updated_at"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, r := range records {
		row := []string{
			r.Day,
			r.Morning,
			r.LunchStart,
			r.LunchEnd,
			r.Evening,
			r.Total,
			r.Error,
			r.UpdatedAt.Format(time.RFC3339),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func (c *ExportCommand) outputJSON(records []*api.ExportRecord) error {
	encoder := json.NewEncoder(c.out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(records)
}

func (c *ExportCommand) outputYAML(records []*api.ExportRecord) error {
	encoder := yaml.NewEncoder(c.out)
	encoder.SetIndent(2)
	if err := encoder.Encode(records); err != nil {
		return err
	}
	return encoder.Close()
}
