package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/1broseidon/keynav/internal/app"
	"github.com/1broseidon/keynav/internal/config"
	"github.com/1broseidon/keynav/internal/framebuffer"
	"github.com/1broseidon/keynav/internal/logging"
	"github.com/1broseidon/keynav/internal/render"
	"github.com/1broseidon/keynav/internal/runtimepath"
	"github.com/1broseidon/keynav/internal/x11"
)

func runOverlay(ctx context.Context, opts *rootOptions) error {
	settings, err := loadSettings(opts)
	if err != nil {
		return err
	}
	logger, err := newLogger(settings)
	if err != nil {
		return err
	}

	bindings := config.LoadBindingsOrDefault(
		config.LocateBindings(settings.Bindings),
		logging.Component(logger, "config"),
	)
	renderer, err := newRenderer(settings)
	if err != nil {
		return &usageError{err: err}
	}
	format, err := framebuffer.ParseFormat(settings.PixelFormat)
	if err != nil {
		return &usageError{err: err}
	}

	display := settings.Display
	if display == "" {
		display = os.Getenv("DISPLAY")
	}
	lockPath, err := runtimepath.LockPath(display)
	if err != nil {
		return err
	}
	lock, err := runtimepath.Acquire(lockPath)
	if err != nil {
		if errors.Is(err, runtimepath.ErrLocked) {
			logger.Info("overlay already running", "lock", lockPath)
		}
		return err
	}
	defer lock.Release()

	conn, err := x11.NewConnection(settings.Display)
	if err != nil {
		return fmt.Errorf("connect to X server: %w", err)
	}
	defer conn.Close()

	geom := conn.OverlayGeometry(settings.Overlay.Monitor == "pointer")
	logger.Debug("overlay geometry", "monitor", geom.Name,
		"x", geom.X, "y", geom.Y, "width", geom.Width, "height", geom.Height)

	// The capture has to happen before the overlay is mapped.
	if settings.Overlay.CaptureBackground {
		bg, err := conn.CaptureBackground(geom)
		if err != nil {
			logger.Warn("background capture failed", "error", err)
		} else {
			renderer.SetBackground(bg)
		}
	}

	overlay, err := x11.NewOverlay(conn, geom)
	if err != nil {
		return err
	}
	defer overlay.Close()

	fb := framebuffer.New(format, framebuffer.NewStore("keynav"),
		x11.NewPresenter(conn, overlay), logging.Component(logger, "framebuffer"))
	defer fb.Close()

	backend := x11.NewBackend(conn, overlay, bindings.Tokens(), logging.Component(logger, "x11"))
	defer backend.Close()

	ctrl := app.NewController(app.Options{
		Bindings:            bindings,
		Device:              x11.NewVirtualPointer(conn, geom),
		Framebuffer:         fb,
		Renderer:            renderer,
		Logger:              logging.Component(logger, "app"),
		IgnoreLockModifiers: settings.IgnoreLockModifiers,
	})

	if err := overlay.Map(); err != nil {
		return err
	}
	if err := backend.Start(); err != nil {
		return err
	}
	logger.Debug("overlay running", "format", format.String(), "bindings", bindings.Len())

	if err := app.Run(ctx, backend, ctrl); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Info("interrupted")
			return nil
		}
		return err
	}
	return nil
}

func newRenderer(s *config.Settings) (*render.Renderer, error) {
	shade, err := config.ParseColor(s.Overlay.ShadeColor)
	if err != nil {
		return nil, err
	}
	line, err := config.ParseColor(s.Overlay.LineColor)
	if err != nil {
		return nil, err
	}
	return render.New(shade, line), nil
}
