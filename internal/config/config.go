package config

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// OverlaySettings controls how the overlay is drawn.
type OverlaySettings struct {
	ShadeColor        string `yaml:"shade_color"`
	LineColor         string `yaml:"line_color"`
	CaptureBackground bool   `yaml:"capture_background"`
	// Monitor is "screen" to cover the whole root window or "pointer" to
	// cover the monitor under the pointer.
	Monitor string `yaml:"monitor"`
}

// Settings is the effective settings file after defaults are applied.
type Settings struct {
	LogLevel            string          `yaml:"log_level"`
	Display             string          `yaml:"display"`
	Bindings            string          `yaml:"bindings"`
	IgnoreLockModifiers bool            `yaml:"ignore_lock_modifiers"`
	PixelFormat         string          `yaml:"pixel_format"`
	Overlay             OverlaySettings `yaml:"overlay"`
}

// rawSettings mirrors Settings with pointer fields so unset keys keep
// their defaults.
type rawSettings struct {
	LogLevel            *string     `yaml:"log_level"`
	Display             *string     `yaml:"display"`
	Bindings            *string     `yaml:"bindings"`
	IgnoreLockModifiers *bool       `yaml:"ignore_lock_modifiers"`
	PixelFormat         *string     `yaml:"pixel_format"`
	Overlay             *rawOverlay `yaml:"overlay"`
}

type rawOverlay struct {
	ShadeColor        *string `yaml:"shade_color"`
	LineColor         *string `yaml:"line_color"`
	CaptureBackground *bool   `yaml:"capture_background"`
	Monitor           *string `yaml:"monitor"`
}

// DefaultSettings returns the settings used when no settings file exists.
func DefaultSettings() *Settings {
	return &Settings{
		LogLevel:            "info",
		IgnoreLockModifiers: true,
		PixelFormat:         "argb32",
		Overlay: OverlaySettings{
			ShadeColor:        "#ffffff33",
			LineColor:         "#000000ff",
			CaptureBackground: true,
			Monitor:           "screen",
		},
	}
}

func buildSettings(raw rawSettings) *Settings {
	s := DefaultSettings()
	if raw.LogLevel != nil {
		s.LogLevel = *raw.LogLevel
	}
	if raw.Display != nil {
		s.Display = *raw.Display
	}
	if raw.Bindings != nil {
		s.Bindings = *raw.Bindings
	}
	if raw.IgnoreLockModifiers != nil {
		s.IgnoreLockModifiers = *raw.IgnoreLockModifiers
	}
	if raw.PixelFormat != nil {
		s.PixelFormat = *raw.PixelFormat
	}
	if o := raw.Overlay; o != nil {
		if o.ShadeColor != nil {
			s.Overlay.ShadeColor = *o.ShadeColor
		}
		if o.LineColor != nil {
			s.Overlay.LineColor = *o.LineColor
		}
		if o.CaptureBackground != nil {
			s.Overlay.CaptureBackground = *o.CaptureBackground
		}
		if o.Monitor != nil {
			s.Overlay.Monitor = *o.Monitor
		}
	}
	return s
}

// ValidationError reports an invalid settings value.
type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.File != "" && e.Source.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.Source.File, e.Source.Line, e.Source.Column, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Validate checks the settings for values the program cannot use.
func (s *Settings) Validate() error {
	switch s.LogLevel {
	case "debug", "info", "warning", "error":
	default:
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: debug, info, warning, error")}
	}
	switch s.PixelFormat {
	case "argb32", "xrgb32":
	default:
		return &ValidationError{Path: "pixel_format", Err: fmt.Errorf("pixel_format must be one of: argb32, xrgb32")}
	}
	switch s.Overlay.Monitor {
	case "screen", "pointer":
	default:
		return &ValidationError{Path: "overlay.monitor", Err: fmt.Errorf("overlay.monitor must be one of: screen, pointer")}
	}
	if _, err := ParseColor(s.Overlay.ShadeColor); err != nil {
		return &ValidationError{Path: "overlay.shade_color", Err: err}
	}
	if _, err := ParseColor(s.Overlay.LineColor); err != nil {
		return &ValidationError{Path: "overlay.line_color", Err: err}
	}
	return nil
}

// ParseColor parses "#rrggbb" or "#rrggbbaa".
func ParseColor(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.NRGBA{}, fmt.Errorf("color %q must be #rrggbb or #rrggbbaa", s)
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("color %q is not hexadecimal", s)
	}
	return color.NRGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}
