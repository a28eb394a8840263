package cli

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"timepulse/internal/api"
	"timepulse/internal/config"
)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd    *cobra.Command
	app    *App
	config *config.Config
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand(apiInstance api.API, cfg *config.Config) *RootCommand {
	root := &RootCommand{
		app:    NewApp(apiInstance),
		config: cfg,
	}

	root.cmd = &cobra.Command{
		Use:   "tp",
		Short: "A command-line countdown, stopwatch and world clock application",
		Long: `TimePulse (tp) is a command-line application for countdowns, stopwatches
and world clocks, with a live terminal display and optional remote sync.

FEATURES:
  • Countdown timers toward a target date, with completion notifications
  • Stopwatches with pause/resume that exclude paused time
  • World clocks for any IANA timezone
  • A default countdown to the next holiday, replaced automatically when it passes
  • Share timers between devices via URL-safe tokens
  • Mirror the collection to a remote cache with tp sync

EXAMPLES:
  tp add "New Year" --target 2027-01-01        # Add a countdown
  tp add "Workout" --type stopwatch            # Add a stopwatch
  tp add "Tokyo" --type worldclock --timezone Asia/Tokyo
  tp list                                      # List all timers
  tp use "New Year"                            # Switch the active timer
  tp watch                                     # Live display of the active timer
  tp stopwatch start "Workout"                 # Start the stopwatch
  tp share export                              # Print a share token
  tp sync login my-id my-password              # Enable remote sync
  tp holidays                                  # Upcoming holidays

CONFIGURATION:
  Configuration follows this priority order: command-line flags > environment variables > config file > defaults

  Database Configuration:
    TP_DB_DIR                              Database directory (default: ~/.timepulse)
    TP_DB_FILENAME                         Database filename (default: timepulse.db)

  Sync Configuration:
    TP_SYNC_API_URL                        Remote cache API endpoint
    TP_SYNC_DEBOUNCE                       Push debounce window (default: 500ms)
    TP_SYNC_TTL                            Remote record lifetime (default: 720h)
    TP_SYNC_REQUEST_TIMEOUT                HTTP request timeout (default: 15s)

  Notification Configuration:
    TP_NOTIFY_SUPPRESSION                  Repeat suppression window (default: 30m)

  Polling Configuration:
    TP_POLL_ALIGN_INTERVAL                 Fast-align sample interval (default: 1ms)
    TP_POLL_STEADY_INTERVAL                Steady tick interval (default: 1s)

  Application Configuration:
    TP_APP_TIMEOUT                         Application timeout (default: 60s)
    TP_APP_VERBOSE                         Enable verbose output (default: false)
    TP_DEBUG                               Enable debug logging

GETTING HELP:
  tp [command] --help                      # Get help for any specific command`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return root.getConfigFromFlags()
		},
	}

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Execute runs the root command
func (r *RootCommand) Execute() error {
	return r.cmd.Execute()
}

// SetArgs sets the command line arguments, used by tests.
func (r *RootCommand) SetArgs(args []string) {
	r.cmd.SetArgs(args)
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	flags.String("sync-api-url", "", "Remote cache API endpoint (overrides TP_SYNC_API_URL)")
	flags.Duration("sync-debounce", 0, "Push debounce window (overrides TP_SYNC_DEBOUNCE)")
	flags.Duration("sync-ttl", 0, "Remote record lifetime (overrides TP_SYNC_TTL)")
	flags.Duration("notify-suppression", 0, "Repeat suppression window (overrides TP_NOTIFY_SUPPRESSION)")
	flags.Duration("poll-align-interval", 0, "Fast-align sample interval (overrides TP_POLL_ALIGN_INTERVAL)")
	flags.Duration("poll-steady-interval", 0, "Steady tick interval (overrides TP_POLL_STEADY_INTERVAL)")
	flags.Duration("app-timeout", 0, "Application timeout (overrides TP_APP_TIMEOUT)")
	flags.Bool("verbose", false, "Enable verbose output (overrides TP_APP_VERBOSE)")
}

// getConfigFromFlags applies changed flag values on top of the loaded
// configuration.
func (r *RootCommand) getConfigFromFlags() error {
	flags := r.cmd.PersistentFlags()

	if flags.Changed("sync-api-url") {
		v, _ := flags.GetString("sync-api-url")
		r.config.Sync.APIURL = v
	}
	if flags.Changed("sync-debounce") {
		v, _ := flags.GetDuration("sync-debounce")
		r.config.Sync.DebounceWindow = v
	}
	if flags.Changed("sync-ttl") {
		v, _ := flags.GetDuration("sync-ttl")
		r.config.Sync.TTL = v
	}
	if flags.Changed("notify-suppression") {
		v, _ := flags.GetDuration("notify-suppression")
		r.config.Notification.SuppressionWindow = v
	}
	if flags.Changed("poll-align-interval") {
		v, _ := flags.GetDuration("poll-align-interval")
		r.config.Polling.AlignInterval = v
	}
	if flags.Changed("poll-steady-interval") {
		v, _ := flags.GetDuration("poll-steady-interval")
		r.config.Polling.SteadyInterval = v
	}
	if flags.Changed("app-timeout") {
		v, _ := flags.GetDuration("app-timeout")
		r.config.Application.Timeout = v
	}
	if flags.Changed("verbose") {
		v, _ := flags.GetBool("verbose")
		r.config.Application.Verbose = v
	}

	return r.config.Validate()
}

func (r *RootCommand) getAppTimeout() time.Duration {
	if r.config.Application.Timeout > 0 {
		return r.config.Application.Timeout
	}
	return 60 * time.Second
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	addCmd := &cobra.Command{
		Use:   "add [timer name]",
		Short: "Add a new timer",
		Long: `Add a countdown, stopwatch or world clock. The new timer becomes active.

Target dates accept: RFC3339, "2006-01-02 15:04:05", "2006-01-02 15:04", "2006-01-02"

Examples:
  tp add "New Year" --target 2027-01-01
  tp add "Launch" --target "2026-09-01 14:30" --color "#ff6600"
  tp add "Workout" --type stopwatch
  tp add "Tokyo" --type worldclock --timezone Asia/Tokyo --city Tokyo`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout())
			defer cancel()

			opts := AddOptions{}
			opts.Type, _ = cmd.Flags().GetString("type")
			opts.Target, _ = cmd.Flags().GetString("target")
			opts.Timezone, _ = cmd.Flags().GetString("timezone")
			opts.Color, _ = cmd.Flags().GetString("color")
			opts.City, _ = cmd.Flags().GetString("city")
			opts.Country, _ = cmd.Flags().GetString("country")

			return NewAddCommand(r.app).Execute(ctx, args, opts)
		},
	}
	addCmd.Flags().String("type", "", "Timer type: countdown, stopwatch or worldclock (default countdown)")
	addCmd.Flags().String("target", "", "Countdown target date")
	addCmd.Flags().String("timezone", "", "IANA timezone name")
	addCmd.Flags().String("color", "", "Display color as #rrggbb")
	addCmd.Flags().String("city", "", "World clock city label")
	addCmd.Flags().String("country", "", "World clock country label")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List all timers",
		Long:  "List every timer with its current display. The active timer is marked with *.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout())
			defer cancel()
			return NewListCommand(r.app).Execute(ctx, args)
		},
	}

	useCmd := &cobra.Command{
		Use:   "use <id or name>",
		Short: "Switch the active timer",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout())
			defer cancel()
			return NewUseCommand(r.app).Execute(ctx, args)
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete <id or name>",
		Short: "Delete a timer",
		Long:  "Delete a timer. Deleting the last timer reseeds the default holiday countdown.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout())
			defer cancel()
			return NewDeleteCommand(r.app).Execute(ctx, args)
		},
	}

	showCmd := &cobra.Command{
		Use:   "show [id or name]",
		Short: "Show timer details",
		Long:  "Show the details of a timer. Without arguments the active timer is shown.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout())
			defer cancel()
			return NewShowCommand(r.app).Execute(ctx, args)
		},
	}

	watchCmd := &cobra.Command{
		Use:   "watch [id or name]",
		Short: "Live display of a timer",
		Long: `Show a live-updating display of a timer until interrupted.
Without arguments the active timer is watched.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return NewWatchCommand(r.app).Execute(ctx, args)
		},
	}

	stopwatchCmd := &cobra.Command{
		Use:   "stopwatch",
		Short: "Control a stopwatch",
	}
	for _, control := range []string{"start", "pause", "reset"} {
		control := control
		stopwatchCmd.AddCommand(&cobra.Command{
			Use:   control + " [id or name]",
			Short: control + " a stopwatch",
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout())
				defer cancel()
				return NewStopwatchCommand(r.app).Execute(ctx, control, args)
			},
		})
	}

	shareCmd := &cobra.Command{
		Use:   "share",
		Short: "Share timers between devices",
	}
	shareCmd.AddCommand(&cobra.Command{
		Use:   "export",
		Short: "Print a share token for the countdown collection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout())
			defer cancel()
			return NewShareCommand(r.app).Export(ctx)
		},
	})
	shareCmd.AddCommand(&cobra.Command{
		Use:   "import <token>",
		Short: "Import timers from a share token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout())
			defer cancel()
			return NewShareCommand(r.app).Import(ctx, args)
		},
	})

	syncCmd := &cobra.Command{
		Use:   "sync",
		Short: "Mirror timers to the remote cache",
	}
	syncCmd.AddCommand(&cobra.Command{
		Use:   "login <sync-id> <password>",
		Short: "Enable remote sync",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout())
			defer cancel()
			return NewSyncCommand(r.app).Login(ctx, args)
		},
	})
	syncCmd.AddCommand(&cobra.Command{
		Use:   "logout",
		Short: "Disable remote sync",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout())
			defer cancel()
			return NewSyncCommand(r.app).Logout(ctx)
		},
	})
	syncCmd.AddCommand(&cobra.Command{
		Use:   "push",
		Short: "Upload the collection now",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout())
			defer cancel()
			return NewSyncCommand(r.app).Push(ctx)
		},
	})
	syncCmd.AddCommand(&cobra.Command{
		Use:   "pull",
		Short: "Replace the local collection with the remote one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout())
			defer cancel()
			return NewSyncCommand(r.app).Pull(ctx)
		},
	})
	syncCmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show whether sync is enabled",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout())
			defer cancel()
			return NewSyncCommand(r.app).Status(ctx)
		},
	})

	holidaysCmd := &cobra.Command{
		Use:   "holidays",
		Short: "List upcoming holidays",
		Long:  "List the upcoming holidays usable as countdown targets.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout())
			defer cancel()
			return NewHolidaysCommand(r.app).Execute(ctx, args)
		},
	}

	r.cmd.AddCommand(addCmd, listCmd, useCmd, deleteCmd, showCmd, watchCmd,
		stopwatchCmd, shareCmd, syncCmd, holidaysCmd)
}
