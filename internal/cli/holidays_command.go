package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"timepulse/internal/api"
)

// HolidaysCommand handles the holidays command
type HolidaysCommand struct {
	api api.API
	out io.Writer
}

// NewHolidaysCommand creates a new holidays command handler
func NewHolidaysCommand(app *App) *HolidaysCommand {
	return &HolidaysCommand{
		api: app.api,
		out: app.out,
	}
}

// Execute lists the upcoming holidays usable as countdown targets.
func (c *HolidaysCommand) Execute(ctx context.Context, args []string) error {
	holidays := c.api.UpcomingHolidays()

	w := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tHOLIDAY")
	for _, h := range holidays {
		fmt.Fprintf(w, "%s\t%s\n", h.Date.Format("2006-01-02"), h.Name)
	}
	return w.Flush()
}
