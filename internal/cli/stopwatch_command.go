package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"timepulse/internal/api"
	"timepulse/internal/clock"
	"timepulse/internal/domain"
	"timepulse/internal/errors"
)

// StopwatchCommand handles the stopwatch control commands
type StopwatchCommand struct {
	app          *App
	api          api.API
	out          io.Writer
	errorHandler *ErrorHandler
}

// NewStopwatchCommand creates a new stopwatch command handler
func NewStopwatchCommand(app *App) *StopwatchCommand {
	return &StopwatchCommand{
		app:          app,
		api:          app.api,
		out:          app.out,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs one stopwatch control: start, pause or reset.
func (c *StopwatchCommand) Execute(ctx context.Context, control string, args []string) error {
	timer, err := c.app.resolveTimer(strings.Join(args, " "))
	if err != nil {
		return c.errorHandler.Handle(control+" stopwatch", err)
	}

	var updated *domain.Timer
	switch control {
	case "start":
		updated, err = c.api.StartStopwatch(timer.ID)
	case "pause":
		updated, err = c.api.PauseStopwatch(timer.ID)
	case "reset":
		updated, err = c.api.ResetStopwatch(timer.ID)
	default:
		return errors.NewInvalidInputError("control", control, "must be start, pause or reset")
	}
	if err != nil {
		return c.errorHandler.Handle(control+" stopwatch", err)
	}

	display := clock.ComputeDisplay(*updated, timeNow())
	state := "paused"
	if updated.Stopwatch.Running {
		state = "running"
	} else if updated.Stopwatch.PausedAt == nil {
		state = "reset"
	}
	fmt.Fprintf(c.out, "%s: %s (%s)\n", updated.Name, display, state)
	return nil
}
