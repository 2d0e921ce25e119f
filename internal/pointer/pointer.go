// Package pointer drives a virtual pointing device from the active region.
package pointer

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/1broseidon/keynav/internal/action"
	"github.com/1broseidon/keynav/internal/region"
)

// Extent is the fixed-point denominator used for absolute motion.
const Extent = 10000

// ButtonState is the last state applied to a button.
type ButtonState uint8

const (
	Released ButtonState = iota
	Pressed
)

func (s ButtonState) String() string {
	if s == Pressed {
		return "pressed"
	}
	return "released"
}

// Device is the output side of a virtual pointer. Each call is one
// sub-command; Frame closes the group of sub-commands sent since the
// previous Frame.
type Device interface {
	MotionAbsolute(x, y, xExtent, yExtent uint32) error
	Button(code uint32, state ButtonState) error
	Frame() error
}

// CenterFixedPoint encodes the center of r as integers over Extent.
func CenterFixedPoint(r region.Region) (x, y, extent uint32) {
	cx, cy := r.Center()
	return fixed(cx), fixed(cy), Extent
}

func fixed(v float64) uint32 {
	f := math.Round(v * Extent)
	if f < 0 {
		return 0
	}
	return uint32(f)
}

// Executor turns pointer actions into Device commands and remembers which
// buttons a drag left pressed.
type Executor struct {
	dev    Device
	logger *slog.Logger
	drag   [action.ButtonCount]ButtonState
}

func NewExecutor(dev Device, logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Executor{dev: dev, logger: logger}
}

// DragState returns the state the last drag left b in.
func (e *Executor) DragState(b action.MouseButton) ButtonState {
	return e.drag[b]
}

// Warp moves the pointer to the center of r.
func (e *Executor) Warp(r region.Region) error {
	if err := e.motion(r); err != nil {
		return err
	}
	return e.frame()
}

// Click warps to r and presses then releases b, framing each step.
func (e *Executor) Click(r region.Region, b action.MouseButton) error {
	if err := e.Warp(r); err != nil {
		return err
	}
	if err := e.button(b, Pressed); err != nil {
		return err
	}
	if err := e.frame(); err != nil {
		return err
	}
	if err := e.button(b, Released); err != nil {
		return err
	}
	return e.frame()
}

// DoubleClick is two Clicks in sequence.
func (e *Executor) DoubleClick(r region.Region, b action.MouseButton) error {
	if err := e.Click(r, b); err != nil {
		return err
	}
	return e.Click(r, b)
}

// Drag warps to r and toggles b: pressed if it was released, released if
// a previous Drag left it pressed.
func (e *Executor) Drag(r region.Region, b action.MouseButton) error {
	next := Pressed
	if e.drag[b] == Pressed {
		next = Released
	}
	if err := e.Warp(r); err != nil {
		return err
	}
	if err := e.button(b, next); err != nil {
		return err
	}
	if err := e.frame(); err != nil {
		return err
	}
	e.drag[b] = next
	e.logger.Debug("drag toggled", "button", b.String(), "state", next.String())
	return nil
}

func (e *Executor) motion(r region.Region) error {
	x, y, ext := CenterFixedPoint(r)
	if err := e.dev.MotionAbsolute(x, y, ext, ext); err != nil {
		return fmt.Errorf("pointer motion: %w", err)
	}
	return nil
}

func (e *Executor) button(b action.MouseButton, s ButtonState) error {
	if err := e.dev.Button(b.Code(), s); err != nil {
		return fmt.Errorf("pointer button %s %s: %w", b, s, err)
	}
	return nil
}

func (e *Executor) frame() error {
	if err := e.dev.Frame(); err != nil {
		return fmt.Errorf("pointer frame: %w", err)
	}
	return nil
}
