package cli

import (
	"context"

	"timelog/internal/api"
	"timelog/internal/errors"
)

// SetCommand handles the set command
type SetCommand struct {
	businessAPI  api.BusinessAPI
	renderer     *Renderer
	errorHandler *ErrorHandler

	// Date is the day to change, today when empty.
	Date string
}

// NewSetCommand creates a new set command handler
func NewSetCommand(app *App) *SetCommand {
	return &SetCommand{
		businessAPI:  app.businessAPI,
		renderer:     app.renderer,
		errorHandler: NewErrorHandler(),
	}
}

// Execute records MARKER at HH:MM and shows the updated day.
func (c *SetCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errors.NewInvalidInputError("arguments", args, "usage: tl set MARKER HH:MM [--date DATE]")
	}

	view, err := c.businessAPI.SetMarker(ctx, c.Date, args[0], args[1])
	if err != nil {
		return c.errorHandler.Handle("set marker", err)
	}
	c.renderer.RenderDay(view)
	return nil
}
