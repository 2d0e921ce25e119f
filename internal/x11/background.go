package x11

import (
	"fmt"
	"image"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/xgraphics"

	"github.com/1broseidon/keynav/internal/framebuffer"
)

// CaptureBackground grabs the root window contents under area. It must run
// before the overlay is mapped, or the capture shows the overlay itself.
// Root pixels carry no alpha, so the result is tagged XRGB32.
func (c *Connection) CaptureBackground(area Monitor) (*framebuffer.Surface, error) {
	img, err := xgraphics.NewDrawable(c.XUtil, xproto.Drawable(c.Root))
	if err != nil {
		return nil, fmt.Errorf("capture root window: %w", err)
	}
	return cropSurface(img.Pix, img.Stride, img.Rect, area)
}

func cropSurface(pix []byte, stride int, bounds image.Rectangle, area Monitor) (*framebuffer.Surface, error) {
	want := image.Rect(area.X, area.Y, area.X+area.Width, area.Y+area.Height)
	r := want.Intersect(bounds)
	if r.Empty() {
		return nil, fmt.Errorf("area %v is outside the captured %v", want, bounds)
	}
	off := (r.Min.Y-bounds.Min.Y)*stride + (r.Min.X-bounds.Min.X)*4
	return &framebuffer.Surface{
		Pix:    pix[off:],
		Stride: stride,
		Rect:   image.Rect(0, 0, r.Dx(), r.Dy()),
		Format: framebuffer.XRGB32,
	}, nil
}
