package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"timepulse/internal/api"
	"timepulse/internal/errors"
)

// DeleteCommand handles the delete command
type DeleteCommand struct {
	app          *App
	api          api.API
	out          io.Writer
	errorHandler *ErrorHandler
}

// NewDeleteCommand creates a new delete command handler
func NewDeleteCommand(app *App) *DeleteCommand {
	return &DeleteCommand{
		app:          app,
		api:          app.api,
		out:          app.out,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the delete command
func (c *DeleteCommand) Execute(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errors.NewInvalidInputError("command", "delete", "usage: tp delete <id or name>")
	}

	timer, err := c.app.resolveTimer(strings.Join(args, " "))
	if err != nil {
		return c.errorHandler.Handle("delete timer", err)
	}

	if err := c.api.DeleteTimer(timer.ID); err != nil {
		return c.errorHandler.Handle("delete timer", err)
	}

	fmt.Fprintf(c.out, "Deleted timer: %s\n", timer.Name)
	if active, ok := c.api.ActiveTimer(); ok {
		fmt.Fprintf(c.out, "Now watching: %s\n", active.Name)
	}
	return nil
}
