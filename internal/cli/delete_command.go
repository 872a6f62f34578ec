package cli

import (
	"context"
	"fmt"
	"io"

	"timelog/internal/api"
	"timelog/internal/errors"
)

// DeleteCommand handles the delete command
type DeleteCommand struct {
	businessAPI  api.BusinessAPI
	errorHandler *ErrorHandler
	out          io.Writer
}

// NewDeleteCommand creates a new delete command handler
func NewDeleteCommand(app *App) *DeleteCommand {
	return &DeleteCommand{
		businessAPI:  app.businessAPI,
		errorHandler: NewErrorHandler(),
		out:          app.out,
	}
}

// Execute removes every marker of DATE.
func (c *DeleteCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("arguments", args, "usage: tl delete DATE")
	}

	if err := c.businessAPI.DeleteDay(ctx, args[0]); err != nil {
		return c.errorHandler.Handle("delete day", err)
	}
	fmt.Fprintf(c.out, "Deleted %s\n", args[0])
	return nil
}
