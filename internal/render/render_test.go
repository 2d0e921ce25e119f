package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1broseidon/keynav/internal/framebuffer"
	"github.com/1broseidon/keynav/internal/region"
)

type nopPresenter struct{}

func (nopPresenter) DestroyBuffer() error                { return nil }
func (nopPresenter) CreateBuffer(framebuffer.View) error { return nil }
func (nopPresenter) Commit(image.Rectangle) error        { return nil }

func newSurface(t *testing.T, w, h int) *framebuffer.Surface {
	t.Helper()
	fb := framebuffer.New(framebuffer.ARGB32, framebuffer.NewMemStore(), nopPresenter{}, nil)
	require.NoError(t, fb.Resize(w, h))
	return fb.Surface()
}

func TestPixelRect(t *testing.T) {
	b := image.Rect(0, 0, 100, 50)
	assert.Equal(t, b, PixelRect(region.Full(), b))
	assert.Equal(t, image.Rect(25, 0, 75, 25), PixelRect(region.Region{X: 0.25, Width: 0.5, Height: 0.5}, b))
	assert.Equal(t, image.Rect(10, 10, 11, 11), PixelRect(region.Region{X: 0.1, Y: 0.2, Width: 0.001, Height: 0.001}, b))
}

func TestDraw_ShadeLinesAndClear(t *testing.T) {
	s := newSurface(t, 100, 100)
	s.FillRect(s.Bounds(), color.RGBA{R: 0xff, A: 0xff})

	line := color.NRGBA{A: 0xff}
	shade := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x80}
	r := New(shade, line)
	r.Draw(s, region.Region{X: 0.5, Y: 0.5, Width: 0.5, Height: 0.5})

	// Outside the region the stale pixels are cleared.
	assert.Equal(t, color.RGBA{}, s.At(10, 10))

	// Border and center lines.
	assert.Equal(t, color.RGBA{A: 0xff}, s.At(50, 60))
	assert.Equal(t, color.RGBA{A: 0xff}, s.At(99, 60))
	assert.Equal(t, color.RGBA{A: 0xff}, s.At(75, 90))
	assert.Equal(t, color.RGBA{A: 0xff}, s.At(60, 75))

	// Shade inside.
	got := s.At(60, 60).(color.RGBA)
	assert.Equal(t, uint8(0x80), got.A)
	assert.Equal(t, uint8(0x80), got.R)
}

func TestDraw_Background(t *testing.T) {
	s := newSurface(t, 10, 10)
	bg := image.NewUniform(color.RGBA{B: 0xff, A: 0xff})

	r := New(color.NRGBA{}, color.NRGBA{A: 0xff})
	r.SetBackground(bg)
	r.Draw(s, region.Region{X: 0.5, Y: 0.5, Width: 0.5, Height: 0.5})

	assert.Equal(t, color.RGBA{B: 0xff, A: 0xff}, s.At(1, 1))
}
