package cli

import (
	"context"
	"fmt"
	"io"

	"timelog/internal/api"
	"timelog/internal/errors"
)

// UnsetCommand handles the unset command
type UnsetCommand struct {
	businessAPI  api.BusinessAPI
	renderer     *Renderer
	errorHandler *ErrorHandler
	out          io.Writer

	// Date is the day to change, today when empty.
	Date string
}

// NewUnsetCommand creates a new unset command handler
func NewUnsetCommand(app *App) *UnsetCommand {
	return &UnsetCommand{
		businessAPI:  app.businessAPI,
		renderer:     app.renderer,
		errorHandler: NewErrorHandler(),
		out:          app.out,
	}
}

// Execute removes MARKER from the day.
func (c *UnsetCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("arguments", args, "usage: tl unset MARKER [--date DATE]")
	}

	view, err := c.businessAPI.UnsetMarker(ctx, c.Date, args[0])
	if err != nil {
		return c.errorHandler.Handle("unset marker", err)
	}
	if len(view.Markers) == 0 {
		fmt.Fprintf(c.out, "No marker left on %s, day deleted\n", view.Day)
		return nil
	}
	c.renderer.RenderDay(view)
	return nil
}
