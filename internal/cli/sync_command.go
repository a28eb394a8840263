package cli

import (
	"context"
	"fmt"
	"io"

	"timepulse/internal/api"
	"timepulse/internal/errors"
)

// SyncCommand handles the sync subcommands
type SyncCommand struct {
	api          api.API
	out          io.Writer
	errorHandler *ErrorHandler
}

// NewSyncCommand creates a new sync command handler
func NewSyncCommand(app *App) *SyncCommand {
	return &SyncCommand{
		api:          app.api,
		out:          app.out,
		errorHandler: NewErrorHandler(),
	}
}

// Login stores the sync credential pair.
func (c *SyncCommand) Login(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errors.NewInvalidInputError("command", "sync login", "usage: tp sync login <sync-id> <password>")
	}

	if err := c.api.SyncLogin(args[0], args[1]); err != nil {
		return c.errorHandler.Handle("log in", err)
	}
	fmt.Fprintln(c.out, "Sync enabled. Timers will be mirrored to the remote cache.")
	return nil
}

// Logout forgets the sync credential pair.
func (c *SyncCommand) Logout(ctx context.Context) error {
	if err := c.api.SyncLogout(); err != nil {
		return c.errorHandler.Handle("log out", err)
	}
	fmt.Fprintln(c.out, "Sync disabled. Local timers are kept.")
	return nil
}

// Push uploads the collection immediately.
func (c *SyncCommand) Push(ctx context.Context) error {
	if err := c.api.SyncPush(); err != nil {
		return c.errorHandler.Handle("push timers", err)
	}
	fmt.Fprintln(c.out, "Pushed timers to the remote cache.")
	return nil
}

// Pull replaces the local collection with the remote one.
func (c *SyncCommand) Pull(ctx context.Context) error {
	if err := c.api.SyncPull(ctx); err != nil {
		return c.errorHandler.Handle("pull timers", err)
	}
	fmt.Fprintln(c.out, "Pulled timers from the remote cache.")
	return nil
}

// Status reports whether sync is enabled.
func (c *SyncCommand) Status(ctx context.Context) error {
	if c.api.SyncLoggedIn() {
		fmt.Fprintln(c.out, "Sync is enabled.")
	} else {
		fmt.Fprintln(c.out, "Sync is disabled. Use 'tp sync login' to enable it.")
	}
	return nil
}
