package cli

import (
	"context"

	"timelog/internal/api"
	"timelog/internal/errors"
)

// ShowCommand handles the show command
type ShowCommand struct {
	businessAPI  api.BusinessAPI
	renderer     *Renderer
	errorHandler *ErrorHandler
}

// NewShowCommand creates a new show command handler
func NewShowCommand(app *App) *ShowCommand {
	return &ShowCommand{
		businessAPI:  app.businessAPI,
		renderer:     app.renderer,
		errorHandler: NewErrorHandler(),
	}
}

// Execute shows the markers and total of the day given as optional
// argument, today by default.
func (c *ShowCommand) Execute(ctx context.Context, args []string) error {
	if len(args) > 1 {
		return errors.NewInvalidInputError("arguments", args, "usage: tl show [DATE]")
	}
	date := ""
	if len(args) == 1 {
		date = args[0]
	}

	view, err := c.businessAPI.GetDay(ctx, date)
	if err != nil {
		return c.errorHandler.Handle("show day", err)
	}
	c.renderer.RenderDay(view)
	return nil
}
