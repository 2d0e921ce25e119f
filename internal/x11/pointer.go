package x11

import (
	"fmt"
	"math"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgb/xtest"

	"github.com/1broseidon/keynav/internal/pointer"
)

// Linux input codes to core pointer buttons.
var coreButtons = map[uint32]byte{
	0x110: 1, // left
	0x111: 3, // right
	0x112: 2, // middle
}

type fakeInput struct {
	kind   byte
	detail byte
	x, y   int16
}

// VirtualPointer sends pointer input through XTEST. Absolute motion is
// mapped onto the overlay's area of the root window. Commands are held
// until Frame and then sent together.
type VirtualPointer struct {
	conn    *Connection
	area    Monitor
	pending []fakeInput
}

var _ pointer.Device = (*VirtualPointer)(nil)

func NewVirtualPointer(conn *Connection, area Monitor) *VirtualPointer {
	return &VirtualPointer{conn: conn, area: area}
}

func (p *VirtualPointer) MotionAbsolute(x, y, xExtent, yExtent uint32) error {
	if xExtent == 0 || yExtent == 0 {
		return fmt.Errorf("motion extent %dx%d", xExtent, yExtent)
	}
	rx, ry := p.rootPosition(x, y, xExtent, yExtent)
	p.pending = append(p.pending, fakeInput{kind: xproto.MotionNotify, x: rx, y: ry})
	return nil
}

func (p *VirtualPointer) rootPosition(x, y, xExtent, yExtent uint32) (int16, int16) {
	fx := float64(x) * float64(p.area.Width) / float64(xExtent)
	fy := float64(y) * float64(p.area.Height) / float64(yExtent)
	return int16(p.area.X + int(math.Round(fx))), int16(p.area.Y + int(math.Round(fy)))
}

func (p *VirtualPointer) Button(code uint32, state pointer.ButtonState) error {
	detail, ok := coreButtons[code]
	if !ok {
		return fmt.Errorf("no core button for input code %#x", code)
	}
	kind := byte(xproto.ButtonRelease)
	if state == pointer.Pressed {
		kind = xproto.ButtonPress
	}
	p.pending = append(p.pending, fakeInput{kind: kind, detail: detail})
	return nil
}

// Frame sends the queued commands in order.
func (p *VirtualPointer) Frame() error {
	c := p.conn.XUtil.Conn()
	for _, in := range p.pending {
		err := xtest.FakeInputChecked(c, in.kind, in.detail, 0, p.conn.Root, in.x, in.y, 0).Check()
		if err != nil {
			p.pending = p.pending[:0]
			return fmt.Errorf("fake input: %w", err)
		}
	}
	p.pending = p.pending[:0]
	return nil
}
