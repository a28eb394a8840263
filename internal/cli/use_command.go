package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"timepulse/internal/api"
	"timepulse/internal/errors"
)

// UseCommand handles the use command
type UseCommand struct {
	app          *App
	api          api.API
	out          io.Writer
	errorHandler *ErrorHandler
}

// NewUseCommand creates a new use command handler
func NewUseCommand(app *App) *UseCommand {
	return &UseCommand{
		app:          app,
		api:          app.api,
		out:          app.out,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the use command
func (c *UseCommand) Execute(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errors.NewInvalidInputError("command", "use", "usage: tp use <id or name>")
	}

	timer, err := c.app.resolveTimer(strings.Join(args, " "))
	if err != nil {
		return c.errorHandler.Handle("switch timer", err)
	}

	if err := c.api.ActivateTimer(timer.ID); err != nil {
		return c.errorHandler.Handle("switch timer", err)
	}

	fmt.Fprintf(c.out, "Now watching: %s\n", timer.Name)
	return nil
}
