package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"timepulse/internal/api"
	"timepulse/internal/clock"
	"timepulse/internal/domain"
)

// ShowCommand handles the show command
type ShowCommand struct {
	app          *App
	api          api.API
	out          io.Writer
	errorHandler *ErrorHandler
}

// NewShowCommand creates a new show command handler
func NewShowCommand(app *App) *ShowCommand {
	return &ShowCommand{
		app:          app,
		api:          app.api,
		out:          app.out,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the show command. Without arguments it shows the active
// timer.
func (c *ShowCommand) Execute(ctx context.Context, args []string) error {
	timer, err := c.app.resolveTimer(strings.Join(args, " "))
	if err != nil {
		return c.errorHandler.Handle("show timer", err)
	}

	now := timeNow()
	display := clock.ComputeDisplay(*timer, now)

	fmt.Fprintf(c.out, "Name:    %s\n", timer.Name)
	fmt.Fprintf(c.out, "ID:      %s\n", timer.ID)
	fmt.Fprintf(c.out, "Type:    %s\n", timer.Type)
	if timer.Color != "" {
		fmt.Fprintf(c.out, "Color:   %s\n", timer.Color)
	}

	switch timer.Type {
	case domain.TypeCountdown:
		fmt.Fprintf(c.out, "Target:  %s\n", timer.Countdown.TargetDate.Local().Format(time.RFC1123))
		if timer.Countdown.Timezone != "" {
			fmt.Fprintf(c.out, "Zone:    %s\n", timer.Countdown.Timezone)
		}
		if display.Finished {
			fmt.Fprintln(c.out, "Status:  finished")
		} else {
			fmt.Fprintf(c.out, "Left:    %s\n", display)
		}
	case domain.TypeStopwatch:
		state := "reset"
		if timer.Stopwatch.Running {
			state = "running"
		} else if timer.Stopwatch.PausedAt != nil {
			state = "paused"
		}
		fmt.Fprintf(c.out, "State:   %s\n", state)
		fmt.Fprintf(c.out, "Elapsed: %s\n", display)
	case domain.TypeWorldClock:
		fmt.Fprintf(c.out, "Zone:    %s\n", timer.WorldClock.Timezone)
		if timer.WorldClock.City != "" {
			fmt.Fprintf(c.out, "City:    %s\n", timer.WorldClock.City)
		}
		fmt.Fprintf(c.out, "Time:    %s\n", display)
	}
	return nil
}
