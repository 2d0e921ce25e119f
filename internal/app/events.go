package app

import (
	"fmt"

	"github.com/1broseidon/keynav/internal/keyboard"
)

// Event is a notification from the display collaborator. Events are
// handled strictly in arrival order.
type Event interface {
	event()
}

// LayoutEvent delivers the keyboard layout. The first one binds the
// configuration; later ones only replace the keyboard state.
type LayoutEvent struct {
	Keymap keyboard.Keymap
}

// ModifiersEvent carries the serialized modifier state.
type ModifiersEvent struct {
	Depressed keyboard.ModMask
	Latched   keyboard.ModMask
	Locked    keyboard.ModMask
	Group     uint32
}

// KeyEvent is a key transition. Code is the raw input code, without the
// layout keycode offset.
type KeyEvent struct {
	Code    uint32
	Pressed bool
}

// PointerEnterEvent reports where the pointer is, in surface pixels.
type PointerEnterEvent struct {
	X int
	Y int
}

// ResizeEvent reports a new surface size in pixels.
type ResizeEvent struct {
	Width  int
	Height int
}

// ExposeEvent asks for the current buffer to be presented again.
type ExposeEvent struct{}

func (LayoutEvent) event()       {}
func (ModifiersEvent) event()    {}
func (KeyEvent) event()          {}
func (PointerEnterEvent) event() {}
func (ResizeEvent) event()       {}
func (ExposeEvent) event()       {}

func (e KeyEvent) String() string {
	dir := keyboard.Up
	if e.Pressed {
		dir = keyboard.Down
	}
	return fmt.Sprintf("key %d %s", e.Code, dir)
}

// Status is returned from every handled event.
type Status int

const (
	// StatusContinue keeps the run loop going.
	StatusContinue Status = iota
	// StatusEnd asks the run loop to flush once more and stop.
	StatusEnd
)

func (s Status) String() string {
	if s == StatusEnd {
		return "end"
	}
	return "continue"
}
