package cli

import (
	"context"
	"fmt"
	"io"

	"timepulse/internal/api"
	"timepulse/internal/errors"
)

// ShareCommand handles the share export/import commands
type ShareCommand struct {
	api          api.API
	out          io.Writer
	errorHandler *ErrorHandler
}

// NewShareCommand creates a new share command handler
func NewShareCommand(app *App) *ShareCommand {
	return &ShareCommand{
		api:          app.api,
		out:          app.out,
		errorHandler: NewErrorHandler(),
	}
}

// Export prints a share token for the current countdown collection.
func (c *ShareCommand) Export(ctx context.Context) error {
	token, err := c.api.ExportShareToken()
	if err != nil {
		return c.errorHandler.Handle("export share token", err)
	}
	fmt.Fprintln(c.out, token)
	return nil
}

// Import adds the timers carried by a share token.
func (c *ShareCommand) Import(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "share import", "usage: tp share import <token>")
	}

	imported, err := c.api.ImportShareToken(args[0])
	if err != nil {
		return c.errorHandler.Handle("import share token", err)
	}

	fmt.Fprintf(c.out, "Imported %d timer(s):\n", len(imported))
	for _, t := range imported {
		fmt.Fprintf(c.out, "  %s (%s)\n", t.Name, t.ID)
	}
	return nil
}
