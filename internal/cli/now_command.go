package cli

import (
	"context"

	"timelog/internal/api"
	"timelog/internal/errors"
)

// NowCommand handles the now command
type NowCommand struct {
	businessAPI  api.BusinessAPI
	renderer     *Renderer
	errorHandler *ErrorHandler
}

// NewNowCommand creates a new now command handler
func NewNowCommand(app *App) *NowCommand {
	return &NowCommand{
		businessAPI:  app.businessAPI,
		renderer:     app.renderer,
		errorHandler: NewErrorHandler(),
	}
}

// Execute records MARKER at the current time of today.
func (c *NowCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("arguments", args, "usage: tl now MARKER")
	}

	view, err := c.businessAPI.SetMarkerNow(ctx, args[0])
	if err != nil {
		return c.errorHandler.Handle("set marker", err)
	}
	c.renderer.RenderDay(view)
	return nil
}
