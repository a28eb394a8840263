package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"timepulse/internal/api"
	"timepulse/internal/domain"
)

// WatchCommand handles the watch command
type WatchCommand struct {
	app          *App
	api          api.API
	out          io.Writer
	errorHandler *ErrorHandler
}

// NewWatchCommand creates a new watch command handler
func NewWatchCommand(app *App) *WatchCommand {
	return &WatchCommand{
		app:          app,
		api:          app.api,
		out:          app.out,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the watch command: a live-updating display of the selected
// timer, running until the context is cancelled.
func (c *WatchCommand) Execute(ctx context.Context, args []string) error {
	timer, err := c.app.resolveTimer(strings.Join(args, " "))
	if err != nil {
		return c.errorHandler.Handle("watch timer", err)
	}

	loop := c.api.NewWatchLoop(func(t domain.Timer, d domain.Display) {
		line := fmt.Sprintf("%s  %s", t.Name, d)
		if d.Finished {
			line = fmt.Sprintf("%s  finished", t.Name)
		}
		// Rewrite the line in place, padding over any previous longer text.
		fmt.Fprintf(c.out, "\r%-60s", line)
	})
	loop.Start(*timer)
	defer loop.Stop()

	<-ctx.Done()
	fmt.Fprintln(c.out)
	return nil
}
