package x11

import (
	"errors"
	"fmt"
	"image"

	"github.com/BurntSushi/xgbutil/xgraphics"

	"github.com/1broseidon/keynav/internal/framebuffer"
)

// Presenter shows framebuffer memory in the overlay window through an
// xgraphics image backed by a server pixmap. xgraphics stores pixels as
// B, G, R, A, the same layout as the framebuffer, so the view is wrapped
// without copying.
type Presenter struct {
	conn    *Connection
	overlay *Overlay
	img     *xgraphics.Image
}

var _ framebuffer.Presenter = (*Presenter)(nil)

func NewPresenter(conn *Connection, overlay *Overlay) *Presenter {
	return &Presenter{conn: conn, overlay: overlay}
}

func (p *Presenter) CreateBuffer(v framebuffer.View) error {
	if p.img != nil {
		return errors.New("presenter already has a buffer")
	}
	img := &xgraphics.Image{
		X:      p.conn.XUtil,
		Pix:    v.Pix,
		Stride: v.Stride,
		Rect:   image.Rect(0, 0, v.Width, v.Height),
	}
	if err := img.CreatePixmap(); err != nil {
		return fmt.Errorf("create pixmap: %w", err)
	}
	p.img = img
	return nil
}

func (p *Presenter) DestroyBuffer() error {
	if p.img == nil {
		return nil
	}
	p.img.Destroy()
	p.img = nil
	return nil
}

// Commit uploads the image to its pixmap and paints it on the overlay.
// The whole image is uploaded; damage only decides whether anything is
// sent.
func (p *Presenter) Commit(damage image.Rectangle) error {
	if p.img == nil {
		return framebuffer.ErrUnbound
	}
	if !damage.Empty() {
		p.img.XDraw()
	}
	p.img.XPaint(p.overlay.Window)
	return nil
}
