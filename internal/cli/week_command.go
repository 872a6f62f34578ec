package cli

import (
	"context"

	"timelog/internal/api"
	"timelog/internal/errors"
)

// WeekCommand handles the week command
type WeekCommand struct {
	businessAPI  api.BusinessAPI
	renderer     *Renderer
	errorHandler *ErrorHandler
}

// NewWeekCommand creates a new week command handler
func NewWeekCommand(app *App) *WeekCommand {
	return &WeekCommand{
		businessAPI:  app.businessAPI,
		renderer:     app.renderer,
		errorHandler: NewErrorHandler(),
	}
}

// Execute shows the totals from Monday up to the given day, today by
// default.
func (c *WeekCommand) Execute(ctx context.Context, args []string) error {
	if len(args) > 1 {
		return errors.NewInvalidInputError("arguments", args, "usage: tl week [DATE]")
	}
	date := ""
	if len(args) == 1 {
		date = args[0]
	}

	report, err := c.businessAPI.GetWeek(ctx, date)
	if err != nil {
		return c.errorHandler.Handle("compute week", err)
	}
	c.renderer.RenderWeek(report)
	return nil
}
