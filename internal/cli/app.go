package cli

import (
	"io"
	"os"
	"strings"
	"time"

	"timepulse/internal/api"
	"timepulse/internal/domain"
	"timepulse/internal/errors"
)

// timeNow is a variable that can be replaced in tests
var timeNow = time.Now

// App bundles the dependencies command handlers need.
type App struct {
	api api.API
	out io.Writer
}

// NewApp creates a new CLI application instance with dependency injection
func NewApp(apiInstance api.API) *App {
	return &App{
		api: apiInstance,
		out: os.Stdout,
	}
}

// WithOutput redirects command output, used by tests.
func (a *App) WithOutput(out io.Writer) *App {
	a.out = out
	return a
}

// resolveTimer finds a timer by ID or name. An empty selector resolves to
// the active timer. Name matching is case-insensitive and requires a
// unique match.
func (a *App) resolveTimer(selector string) (*domain.Timer, error) {
	if selector == "" {
		t, ok := a.api.ActiveTimer()
		if !ok {
			return nil, errors.NewNotFoundError("timer", "active")
		}
		return t, nil
	}

	if t, err := a.api.GetTimer(selector); err == nil {
		return t, nil
	}

	timers, err := a.api.ListTimers()
	if err != nil {
		return nil, err
	}

	var match *domain.Timer
	for i := range timers {
		if strings.EqualFold(timers[i].Name, selector) {
			if match != nil {
				return nil, errors.NewInvalidInputError("timer", selector, "matches more than one timer, use the ID")
			}
			match = &timers[i]
		}
	}
	if match == nil {
		return nil, errors.NewNotFoundError("timer", selector)
	}
	return match, nil
}
