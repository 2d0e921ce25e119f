package x11

import (
	"fmt"
	"time"

	"github.com/BurntSushi/xgb/shape"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
)

const (
	grabAttempts = 20
	grabInterval = 50 * time.Millisecond
)

// Overlay is the override-redirect window the framebuffer is painted on.
// Its input region is empty, so synthetic clicks reach the windows below.
type Overlay struct {
	conn   *Connection
	Window xproto.Window
	Geom   Monitor
	mapped bool
}

// NewOverlay creates (but does not map) an overlay window covering geom.
func NewOverlay(conn *Connection, geom Monitor) (*Overlay, error) {
	c := conn.XUtil.Conn()
	screen := conn.XUtil.Screen()

	wid, err := xproto.NewWindowId(c)
	if err != nil {
		return nil, err
	}

	eventMask := uint32(xproto.EventMaskKeyPress | xproto.EventMaskKeyRelease |
		xproto.EventMaskExposure | xproto.EventMaskStructureNotify)

	err = xproto.CreateWindowChecked(
		c,
		screen.RootDepth,
		wid,
		conn.Root,
		int16(geom.X), int16(geom.Y),
		uint16(geom.Width), uint16(geom.Height),
		0, // border_width
		xproto.WindowClassInputOutput,
		screen.RootVisual,
		xproto.CwBackPixel|xproto.CwOverrideRedirect|xproto.CwEventMask,
		// Values in mask bit order: back_pixel, override_redirect, event_mask.
		[]uint32{0, 1, eventMask},
	).Check()
	if err != nil {
		return nil, fmt.Errorf("create overlay window: %w", err)
	}

	// An empty input region lets pointer events pass through the overlay.
	err = shape.RectanglesChecked(c, shape.SoSet, shape.SkInput, xproto.ClipOrderingUnsorted,
		wid, 0, 0, nil).Check()
	if err != nil {
		xproto.DestroyWindow(c, wid)
		return nil, fmt.Errorf("clear overlay input region: %w", err)
	}

	// Compositors match rules (shadows, fading) on these properties.
	xu := conn.XUtil
	if err := ewmh.WmNameSet(xu, wid, "keynav"); err != nil {
		xproto.DestroyWindow(c, wid)
		return nil, fmt.Errorf("set overlay name: %w", err)
	}
	icccm.WmClassSet(xu, wid, &icccm.WmClass{Instance: "keynav", Class: "Keynav"})
	ewmh.WmWindowTypeSet(xu, wid, []string{"_NET_WM_WINDOW_TYPE_UTILITY"})

	return &Overlay{conn: conn, Window: wid, Geom: geom}, nil
}

// Map shows the overlay and grabs the keyboard to it. Another client may
// hold a grab briefly (for example the hotkey daemon that launched us), so
// the grab is retried for about a second.
func (o *Overlay) Map() error {
	c := o.conn.XUtil.Conn()
	if !o.mapped {
		xproto.MapWindow(c, o.Window)
		o.mapped = true
	}

	grab := func() (*xproto.GrabKeyboardReply, error) {
		return xproto.GrabKeyboard(
			c,
			false,                  // owner_events (report events to grab_window)
			o.Window,               // grab_window
			xproto.TimeCurrentTime, // time
			xproto.GrabModeAsync,   // pointer_mode
			xproto.GrabModeAsync,   // keyboard_mode
		).Reply()
	}

	var status byte
	for attempt := 0; attempt < grabAttempts; attempt++ {
		reply, err := grab()
		if err != nil {
			return fmt.Errorf("grab keyboard: %w", err)
		}
		status = reply.Status
		if status == xproto.GrabStatusSuccess {
			return nil
		}
		time.Sleep(grabInterval)
	}
	return fmt.Errorf("keyboard grab failed with status %d", status)
}

// Close releases the grab and destroys the window.
func (o *Overlay) Close() {
	c := o.conn.XUtil.Conn()
	xproto.UngrabKeyboard(c, xproto.TimeCurrentTime)
	xproto.DestroyWindow(c, o.Window)
	o.mapped = false
}
