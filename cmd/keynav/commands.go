package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/1broseidon/keynav/internal/config"
	"github.com/1broseidon/keynav/internal/keyboard"
)

func newCheckCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate settings and bindings without opening the overlay",
		Long: `Check loads the settings file, parses the bindings file and resolves every
binding against a built-in US layout. Keys that only exist on other layouts may
be reported even though they resolve on the real keyboard.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd.OutOrStdout(), opts)
		},
	}
}

func runCheck(w io.Writer, opts *rootOptions) error {
	settings, err := loadSettings(opts)
	if err != nil {
		return err
	}
	raw, source, err := loadBindingsStrict(settings)
	if err != nil {
		return err
	}
	cfg, err := config.Resolve(raw, keyboard.USKeymap())
	if err != nil {
		return fmt.Errorf("%s: %w", source, err)
	}
	fmt.Fprintf(w, "settings: ok\nbindings: ok (%s, %d entries, %d combinations)\n", source, raw.Len(), cfg.Len())
	return nil
}

// loadBindingsStrict is LoadBindingsOrDefault without the fallback: a
// broken bindings file is an error here.
func loadBindingsStrict(s *config.Settings) (config.RawConfig, string, error) {
	path := config.LocateBindings(s.Bindings)
	if path == "" {
		return config.Default(), "built-in", nil
	}
	raw, err := config.LoadBindings(path)
	if err != nil {
		return config.RawConfig{}, path, err
	}
	return raw, path, nil
}

func newBindingsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "bindings",
		Short:         "Print the effective bindings",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings(opts)
			if err != nil {
				return err
			}
			raw, source, err := loadBindingsStrict(settings)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderBindings(raw, source))
			return nil
		},
	}
}

func newDefaultsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "defaults",
		Short: "Print the built-in bindings file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.OutOrStdout(), config.DefaultBindingsText)
			return nil
		},
	}
}

// renderBindings lays raw out as a two-column table in declaration order.
func renderBindings(raw config.RawConfig, source string) string {
	titleStyle := lipgloss.NewStyle().Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	ctxStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	width := 0
	for _, e := range raw.Entries {
		width = max(width, lipgloss.Width(e.Combo()))
	}
	keyCol := lipgloss.NewStyle().Width(width + 2)

	var b strings.Builder
	b.WriteString(titleStyle.Render("Bindings") + " " + ctxStyle.Render("("+source+")"))
	for _, e := range raw.Entries {
		acts := make([]string, len(e.Actions))
		for i, a := range e.Actions {
			acts[i] = a.String()
		}
		b.WriteString("\n")
		b.WriteString(keyCol.Render(keyStyle.Render(e.Combo())))
		b.WriteString(strings.Join(acts, ", "))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62")).
		Padding(0, 1).
		Render(b.String())
}
