package framebuffer

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
)

// View is a read-only description of the current backing memory handed to
// the presenter.
type View struct {
	Pix    []byte
	Width  int
	Height int
	Stride int
	Format Format
}

// Presenter shows framebuffer contents on screen. At most one buffer is
// alive at a time: DestroyBuffer is always called on the old buffer before
// CreateBuffer attaches the new one.
type Presenter interface {
	DestroyBuffer() error
	CreateBuffer(v View) error
	Commit(damage image.Rectangle) error
}

var ErrUnbound = errors.New("framebuffer has no size yet")

// Framebuffer ties a Store, the Surface drawn over it and the Presenter's
// buffer together.
type Framebuffer struct {
	format    Format
	store     Store
	presenter Presenter
	logger    *slog.Logger

	width   int
	height  int
	stride  int
	surface *Surface
	bound   bool
}

func New(format Format, store Store, presenter Presenter, logger *slog.Logger) *Framebuffer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Framebuffer{format: format, store: store, presenter: presenter, logger: logger}
}

func (fb *Framebuffer) Width() int     { return fb.width }
func (fb *Framebuffer) Height() int    { return fb.height }
func (fb *Framebuffer) Stride() int    { return fb.stride }
func (fb *Framebuffer) Format() Format { return fb.format }
func (fb *Framebuffer) Bound() bool    { return fb.bound }

// Size returns the number of bytes the backing store must hold.
func (fb *Framebuffer) Size() int {
	return fb.stride * fb.height
}

// Resize rebinds the framebuffer to width×height. The old presented buffer
// is destroyed first, then the store is resized to stride×height, the
// surface rebuilt over the new mapping, and a new buffer created.
func (fb *Framebuffer) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid framebuffer size %dx%d", width, height)
	}
	if fb.bound {
		if err := fb.presenter.DestroyBuffer(); err != nil {
			return fmt.Errorf("destroy buffer: %w", err)
		}
		fb.bound = false
		fb.surface = nil
	}

	stride := fb.format.StrideForWidth(width)
	if err := fb.store.Resize(stride * height); err != nil {
		return fmt.Errorf("resize backing store: %w", err)
	}
	pix := fb.store.Bytes()
	if len(pix) != stride*height {
		return fmt.Errorf("backing store holds %d bytes, want %d", len(pix), stride*height)
	}

	fb.width, fb.height, fb.stride = width, height, stride
	fb.surface = newSurface(pix, width, height, stride, fb.format)

	if err := fb.presenter.CreateBuffer(fb.view()); err != nil {
		return fmt.Errorf("create buffer: %w", err)
	}
	fb.bound = true
	fb.logger.Debug("framebuffer resized", "width", width, "height", height, "stride", stride)
	return nil
}

func (fb *Framebuffer) view() View {
	return View{
		Pix:    fb.surface.Pix,
		Width:  fb.width,
		Height: fb.height,
		Stride: fb.stride,
		Format: fb.format,
	}
}

// Surface returns the drawing surface for the current size, or nil while
// unbound. It must not be kept across Resize.
func (fb *Framebuffer) Surface() *Surface {
	return fb.surface
}

// Commit presents the whole surface.
func (fb *Framebuffer) Commit() error {
	if !fb.bound {
		return ErrUnbound
	}
	return fb.presenter.Commit(image.Rect(0, 0, fb.width, fb.height))
}

// UserToDevice converts normalized lengths to device pixels.
func (fb *Framebuffer) UserToDevice(w, h float64) (float64, float64) {
	return w * float64(fb.width), h * float64(fb.height)
}

// DeviceToUser converts device pixels to normalized lengths. While unbound
// every length maps to zero.
func (fb *Framebuffer) DeviceToUser(w, h float64) (float64, float64) {
	if fb.width == 0 || fb.height == 0 {
		return 0, 0
	}
	return w / float64(fb.width), h / float64(fb.height)
}

// Close destroys the presented buffer and releases the store.
func (fb *Framebuffer) Close() error {
	var errs []error
	if fb.bound {
		errs = append(errs, fb.presenter.DestroyBuffer())
		fb.bound = false
	}
	fb.surface = nil
	errs = append(errs, fb.store.Close())
	return errors.Join(errs...)
}
