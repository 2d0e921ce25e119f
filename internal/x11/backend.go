package x11

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/xevent"

	"github.com/1broseidon/keynav/internal/app"
	"github.com/1broseidon/keynav/internal/keyboard"
)

const eventQueueSize = 64

// Backend feeds X events for the overlay window to the controller. The
// xevent loop runs on its own goroutine; callbacks translate events and
// queue them in arrival order.
type Backend struct {
	conn    *Connection
	overlay *Overlay
	logger  *slog.Logger

	// names are the binding tokens looked up on every layout read.
	names   []string
	events  chan app.Event
	done    chan struct{}
	once    sync.Once
	numLock keyboard.ModMask
}

var _ app.Source = (*Backend)(nil)

func NewBackend(conn *Connection, overlay *Overlay, names []string, logger *slog.Logger) *Backend {
	if logger == nil {
		logger = slog.Default()
	}
	return &Backend{
		conn:    conn,
		overlay: overlay,
		logger:  logger,
		names:   names,
		events:  make(chan app.Event, eventQueueSize),
		done:    make(chan struct{}),
	}
}

// Start queues the initial layout, size and pointer position, connects the
// event callbacks and starts the event loop.
func (b *Backend) Start() error {
	b.queueLayout()
	b.send(app.ResizeEvent{Width: b.overlay.Geom.Width, Height: b.overlay.Geom.Height})

	reply, err := xproto.QueryPointer(b.conn.XUtil.Conn(), b.overlay.Window).Reply()
	if err != nil {
		return fmt.Errorf("query pointer: %w", err)
	}
	b.queueModifiers(reply.Mask)
	if reply.SameScreen {
		b.send(app.PointerEnterEvent{X: int(reply.WinX), Y: int(reply.WinY)})
	}

	b.connect()
	go b.conn.EventLoop()
	return nil
}

func (b *Backend) connect() {
	xu := b.conn.XUtil
	win := b.overlay.Window

	xevent.KeyPressFun(func(_ *xgbutil.XUtil, ev xevent.KeyPressEvent) {
		// The pointer may have moved since the last key; report where
		// it is now so cursor-zoom sees a fresh position.
		if ev.SameScreen {
			b.send(app.PointerEnterEvent{X: int(ev.EventX), Y: int(ev.EventY)})
		}
		b.queueModifiers(ev.State)
		b.send(app.KeyEvent{Code: rawCode(ev.Detail), Pressed: true})
	}).Connect(xu, win)

	xevent.KeyReleaseFun(func(_ *xgbutil.XUtil, ev xevent.KeyReleaseEvent) {
		b.queueModifiers(ev.State)
		b.send(app.KeyEvent{Code: rawCode(ev.Detail), Pressed: false})
	}).Connect(xu, win)

	xevent.ConfigureNotifyFun(func(_ *xgbutil.XUtil, ev xevent.ConfigureNotifyEvent) {
		b.send(app.ResizeEvent{Width: int(ev.Width), Height: int(ev.Height)})
	}).Connect(xu, win)

	xevent.ExposeFun(func(_ *xgbutil.XUtil, ev xevent.ExposeEvent) {
		if ev.Count == 0 {
			b.send(app.ExposeEvent{})
		}
	}).Connect(xu, win)

	// keybind refreshes its tables on MappingNotify before this runs.
	xevent.MappingNotifyFun(func(_ *xgbutil.XUtil, _ xevent.MappingNotifyEvent) {
		b.logger.Debug("keyboard mapping changed")
		b.queueLayout()
	}).Connect(xu, xevent.NoWindow)
}

func (b *Backend) queueLayout() {
	km := ReadKeymap(b.conn.XUtil, b.names)
	b.numLock = 0
	if idx, ok := km.ModIndex("NumLock"); ok {
		b.numLock = keyboard.Bit(idx)
	}
	b.send(app.LayoutEvent{Keymap: km})
}

func (b *Backend) queueModifiers(state uint16) {
	depressed, locked := stateMods(state, b.numLock)
	b.send(app.ModifiersEvent{Depressed: depressed, Locked: locked})
}

func (b *Backend) send(ev app.Event) {
	select {
	case b.events <- ev:
	case <-b.done:
	}
}

func (b *Backend) Events() <-chan app.Event {
	return b.events
}

// Flush waits for the server to process everything sent so far.
func (b *Backend) Flush() error {
	return b.conn.Sync()
}

// Close stops the event loop. The overlay and connection are closed by
// their owners.
func (b *Backend) Close() {
	b.once.Do(func() {
		close(b.done)
		xevent.Quit(b.conn.XUtil)
	})
}

func rawCode(detail xproto.Keycode) uint32 {
	return uint32(detail) - keyboard.KeycodeOffset
}
