package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"timepulse/internal/api"
	"timepulse/internal/domain"
	"timepulse/internal/errors"
	"timepulse/internal/validation"
)

// AddOptions carries the flag values of the add command.
type AddOptions struct {
	Type     string
	Target   string
	Timezone string
	Color    string
	City     string
	Country  string
}

// AddCommand handles the add command
type AddCommand struct {
	api          api.API
	out          io.Writer
	errorHandler *ErrorHandler
	validator    *validation.TimerValidator
}

// NewAddCommand creates a new add command handler
func NewAddCommand(app *App) *AddCommand {
	return &AddCommand{
		api:          app.api,
		out:          app.out,
		errorHandler: NewErrorHandler(),
		validator:    validation.NewTimerValidator(),
	}
}

// Execute runs the add command
func (c *AddCommand) Execute(ctx context.Context, args []string, opts AddOptions) error {
	if len(args) < 1 {
		return errors.NewInvalidInputError("command", "add", "usage: tp add \"timer name\" [flags]")
	}
	name := strings.Join(args, " ")

	timer, err := c.buildTimer(name, opts)
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}

	created, err := c.api.CreateTimer(timer)
	if err != nil {
		return c.errorHandler.Handle("add timer", err)
	}

	fmt.Fprintf(c.out, "Added %s timer: %s (%s)\n", created.Type, created.Name, created.ID)
	return nil
}

func (c *AddCommand) buildTimer(name string, opts AddOptions) (domain.Timer, error) {
	timerType := domain.Type(opts.Type)
	if opts.Type == "" {
		timerType = domain.TypeCountdown
	}

	switch timerType {
	case domain.TypeCountdown:
		if opts.Target == "" {
			return domain.Timer{}, errors.NewInvalidInputError("target", "", "countdown timers need --target")
		}
		target, err := c.validator.ParseTargetDate(opts.Target)
		if err != nil {
			return domain.Timer{}, err
		}
		timer := domain.NewCountdown(name, target, opts.Timezone)
		timer.Color = opts.Color
		return timer, nil

	case domain.TypeStopwatch:
		timer := domain.NewStopwatch(name)
		timer.Color = opts.Color
		return timer, nil

	case domain.TypeWorldClock:
		if opts.Timezone == "" {
			return domain.Timer{}, errors.NewInvalidInputError("timezone", "", "world clocks need --timezone")
		}
		timer := domain.NewWorldClock(name, opts.Timezone, opts.City, opts.Country)
		timer.Color = opts.Color
		return timer, nil
	}

	return domain.Timer{}, errors.NewInvalidInputError("type", opts.Type, "must be countdown, stopwatch or worldclock")
}
