package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/1broseidon/keynav/internal/config"
	"github.com/1broseidon/keynav/internal/logging"
)

// usageError marks failures caused by bad settings or flags. They exit
// with status 2; everything else exits 1.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

type rootOptions struct {
	configPath   string
	bindingsPath string
	display      string
	logLevel     string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	os.Exit(exitCode(err))
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	fmt.Fprintln(os.Stderr, "keynav:", err)
	var uerr *usageError
	if errors.As(err, &uerr) {
		return 2
	}
	return 1
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "keynav",
		Short: "Move and click the pointer by narrowing a region with the keyboard",
		Long: `keynav shows an overlay over the screen and grabs the keyboard. Bound keys
cut or move the highlighted region, warp the pointer to its center and click.
The session ends when an end action runs.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOverlay(cmd.Context(), opts)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "settings file (default: $XDG_CONFIG_HOME/keynav/config.yaml)")
	flags.StringVar(&opts.bindingsPath, "bindings", "", "bindings file (default: $XDG_CONFIG_HOME/keynav/bindings)")
	flags.StringVar(&opts.display, "display", "", "X display to connect to (default: $DISPLAY)")
	flags.StringVar(&opts.logLevel, "log-level", "", "debug, info, warning or error")

	cmd.AddCommand(newCheckCmd(opts), newBindingsCmd(opts), newDefaultsCmd())
	return cmd
}

// loadSettings reads the settings file and applies flag overrides.
func loadSettings(opts *rootOptions) (*config.Settings, error) {
	res, err := config.LoadSettings(config.LocateSettings(opts.configPath))
	if err != nil {
		return nil, &usageError{err: err}
	}
	s := res.Settings
	if opts.bindingsPath != "" {
		s.Bindings = opts.bindingsPath
	}
	if opts.display != "" {
		s.Display = opts.display
	}
	if opts.logLevel != "" {
		s.LogLevel = opts.logLevel
	}
	if err := s.Validate(); err != nil {
		return nil, &usageError{err: err}
	}
	return s, nil
}

func newLogger(s *config.Settings) (*slog.Logger, error) {
	level, err := logging.ParseLevel(s.LogLevel)
	if err != nil {
		return nil, &usageError{err: err}
	}
	return logging.New(os.Stderr, level), nil
}
