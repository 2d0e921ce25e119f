// Package render draws the overlay: the background, a shade over the
// active region, and its border and center lines.
package render

import (
	"image"
	"image/color"
	"math"

	"github.com/1broseidon/keynav/internal/framebuffer"
	"github.com/1broseidon/keynav/internal/region"
)

// LineWidth is the border and crosshair thickness in pixels.
const LineWidth = 1

// Renderer holds the overlay colors and an optional background snapshot.
type Renderer struct {
	Shade      color.Color
	Line       color.Color
	Background image.Image
}

// New returns a renderer with the given colors and no background.
func New(shade, line color.Color) *Renderer {
	return &Renderer{Shade: shade, Line: line}
}

// Default returns a translucent white shade with black lines.
func Default() *Renderer {
	return New(color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x33}, color.NRGBA{A: 0xff})
}

// SetBackground sets the image drawn under the overlay. nil clears it.
func (r *Renderer) SetBackground(img image.Image) {
	r.Background = img
}

// Draw redraws s for the active region.
func (r *Renderer) Draw(s *framebuffer.Surface, active region.Region) {
	if s == nil {
		return
	}
	if r.Background != nil {
		s.CopyFrom(r.Background)
	} else {
		s.FillRect(s.Bounds(), color.Transparent)
	}

	rect := PixelRect(active, s.Bounds())
	if rect.Empty() {
		return
	}
	s.BlendRect(rect, premultiply(r.Shade))

	line := premultiply(r.Line)
	cx := rect.Min.X + rect.Dx()/2
	cy := rect.Min.Y + rect.Dy()/2
	s.FillRect(image.Rect(cx, rect.Min.Y, cx+LineWidth, rect.Max.Y), line)
	s.FillRect(image.Rect(rect.Min.X, cy, rect.Max.X, cy+LineWidth), line)

	s.FillRect(image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y+LineWidth), line)
	s.FillRect(image.Rect(rect.Min.X, rect.Max.Y-LineWidth, rect.Max.X, rect.Max.Y), line)
	s.FillRect(image.Rect(rect.Min.X, rect.Min.Y, rect.Min.X+LineWidth, rect.Max.Y), line)
	s.FillRect(image.Rect(rect.Max.X-LineWidth, rect.Min.Y, rect.Max.X, rect.Max.Y), line)
}

// PixelRect projects a normalized region onto bounds, keeping at least one
// pixel on each axis.
func PixelRect(r region.Region, bounds image.Rectangle) image.Rectangle {
	w, h := float64(bounds.Dx()), float64(bounds.Dy())
	x0 := int(math.Round(r.X * w))
	y0 := int(math.Round(r.Y * h))
	x1 := max(int(math.Round((r.X+r.Width)*w)), x0+1)
	y1 := max(int(math.Round((r.Y+r.Height)*h)), y0+1)
	return image.Rect(x0, y0, x1, y1).Add(bounds.Min).Intersect(bounds)
}

// premultiply converts straight-alpha colors such as the ones parsed from
// settings into the premultiplied form the surface stores.
func premultiply(c color.Color) color.Color {
	if n, ok := c.(color.NRGBA); ok {
		return color.RGBAModel.Convert(n)
	}
	return c
}
