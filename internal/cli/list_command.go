package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"timepulse/internal/api"
	"timepulse/internal/clock"
)

// ListCommand handles the list command
type ListCommand struct {
	api          api.API
	out          io.Writer
	errorHandler *ErrorHandler
}

// NewListCommand creates a new list command handler
func NewListCommand(app *App) *ListCommand {
	return &ListCommand{
		api:          app.api,
		out:          app.out,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the list command
func (c *ListCommand) Execute(ctx context.Context, args []string) error {
	timers, err := c.api.ListTimers()
	if err != nil {
		return c.errorHandler.Handle("list timers", err)
	}

	activeID := ""
	if active, ok := c.api.ActiveTimer(); ok {
		activeID = active.ID
	}

	now := timeNow()
	w := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, " \tID\tTYPE\tNAME\tDISPLAY")
	for _, t := range timers {
		marker := " "
		if t.ID == activeID {
			marker = "*"
		}
		display := clock.ComputeDisplay(t, now)
		rendered := display.String()
		if display.Finished {
			rendered = "finished"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", marker, t.ID, t.Type, t.Name, rendered)
	}
	return w.Flush()
}
