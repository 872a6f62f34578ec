package cli

import (
	"context"
	"fmt"
	"io"

	"timelog/internal/api"
	"timelog/internal/domain"
	"timelog/internal/errors"
)

// ListCommand handles the list command
type ListCommand struct {
	businessAPI  api.BusinessAPI
	renderer     *Renderer
	errorHandler *ErrorHandler
	clock        domain.Clock
	out          io.Writer

	// From and To bound the listed days. Empty bounds are open.
	From string
	To   string
}

// NewListCommand creates a new list command handler
func NewListCommand(app *App) *ListCommand {
	return &ListCommand{
		businessAPI:  app.businessAPI,
		renderer:     app.renderer,
		errorHandler: NewErrorHandler(),
		clock:        app.clock,
		out:          app.out,
	}
}

// Execute lists the saved days.
func (c *ListCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return errors.NewInvalidInputError("arguments", args, "usage: tl list [--from DATE] [--to DATE]")
	}

	views, err := c.businessAPI.ListDays(ctx, c.From, c.To)
	if err != nil {
		return c.errorHandler.Handle("list days", err)
	}
	if len(views) == 0 {
		fmt.Fprintln(c.out, "No day recorded")
		return nil
	}
	c.renderer.RenderList(views, c.clock.Now())
	return nil
}
