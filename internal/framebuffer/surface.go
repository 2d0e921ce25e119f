package framebuffer

import (
	"image"
	"image/color"
	"image/draw"
)

// Surface is a draw.Image over framebuffer memory. Pixels are B, G, R, A
// bytes, premultiplied. A Surface is tied to one mapping of the store and
// must be rebuilt after every resize.
type Surface struct {
	Pix    []byte
	Stride int
	Rect   image.Rectangle
	Format Format
}

var _ draw.Image = (*Surface)(nil)

func newSurface(pix []byte, w, h, stride int, f Format) *Surface {
	return &Surface{Pix: pix, Stride: stride, Rect: image.Rect(0, 0, w, h), Format: f}
}

func (s *Surface) ColorModel() color.Model { return color.RGBAModel }

func (s *Surface) Bounds() image.Rectangle { return s.Rect }

func (s *Surface) PixOffset(x, y int) int {
	return (y-s.Rect.Min.Y)*s.Stride + (x-s.Rect.Min.X)*bytesPerPixel
}

func (s *Surface) At(x, y int) color.Color {
	if !(image.Point{x, y}.In(s.Rect)) {
		return color.RGBA{}
	}
	i := s.PixOffset(x, y)
	p := s.Pix[i : i+4 : i+4]
	a := p[3]
	if !s.Format.HasAlpha() {
		a = 0xff
	}
	return color.RGBA{R: p[2], G: p[1], B: p[0], A: a}
}

func (s *Surface) Set(x, y int, c color.Color) {
	if !(image.Point{x, y}.In(s.Rect)) {
		return
	}
	s.put(s.PixOffset(x, y), color.RGBAModel.Convert(c).(color.RGBA))
}

func (s *Surface) put(i int, c color.RGBA) {
	p := s.Pix[i : i+4 : i+4]
	p[0], p[1], p[2] = c.B, c.G, c.R
	if s.Format.HasAlpha() {
		p[3] = c.A
	} else {
		p[3] = 0xff
	}
}

// FillRect replaces every pixel in r with c.
func (s *Surface) FillRect(r image.Rectangle, c color.Color) {
	r = r.Intersect(s.Rect)
	if r.Empty() {
		return
	}
	rgba := color.RGBAModel.Convert(c).(color.RGBA)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		i := s.PixOffset(r.Min.X, y)
		for x := r.Min.X; x < r.Max.X; x++ {
			s.put(i, rgba)
			i += bytesPerPixel
		}
	}
}

// BlendRect composites c over every pixel in r.
func (s *Surface) BlendRect(r image.Rectangle, c color.Color) {
	r = r.Intersect(s.Rect)
	if r.Empty() {
		return
	}
	sr, sg, sb, sa := c.RGBA()
	if sa == 0 {
		return
	}
	inv := 0xffff - sa
	for y := r.Min.Y; y < r.Max.Y; y++ {
		i := s.PixOffset(r.Min.X, y)
		for x := r.Min.X; x < r.Max.X; x++ {
			p := s.Pix[i : i+4 : i+4]
			p[0] = uint8((uint32(p[0])*0x101*inv/0xffff + sb) >> 8)
			p[1] = uint8((uint32(p[1])*0x101*inv/0xffff + sg) >> 8)
			p[2] = uint8((uint32(p[2])*0x101*inv/0xffff + sr) >> 8)
			if s.Format.HasAlpha() {
				p[3] = uint8((uint32(p[3])*0x101*inv/0xffff + sa) >> 8)
			}
			i += bytesPerPixel
		}
	}
}

// CopyFrom draws src onto the surface with its origin at the surface
// origin. Another Surface is copied row by row; anything else goes
// through image/draw. Pixels src does not cover are cleared.
func (s *Surface) CopyFrom(src image.Image) {
	w := min(s.Rect.Dx(), src.Bounds().Dx())
	h := min(s.Rect.Dy(), src.Bounds().Dy())
	defer s.clearBeyond(w, h)

	o, ok := src.(*Surface)
	if !ok {
		draw.Draw(s, s.Rect, src, src.Bounds().Min, draw.Src)
		return
	}
	n := w * bytesPerPixel
	opaque := s.Format.HasAlpha() && !o.Format.HasAlpha()
	for y := 0; y < h; y++ {
		di := s.PixOffset(s.Rect.Min.X, s.Rect.Min.Y+y)
		si := o.PixOffset(o.Rect.Min.X, o.Rect.Min.Y+y)
		row := s.Pix[di : di+n]
		copy(row, o.Pix[si:si+n])
		if opaque {
			for i := 3; i < n; i += bytesPerPixel {
				row[i] = 0xff
			}
		}
	}
}

// clearBeyond clears everything right of and below the w x h block at the
// surface origin.
func (s *Surface) clearBeyond(w, h int) {
	r := s.Rect
	s.FillRect(image.Rect(r.Min.X+w, r.Min.Y, r.Max.X, r.Min.Y+h), color.Transparent)
	s.FillRect(image.Rect(r.Min.X, r.Min.Y+h, r.Max.X, r.Max.Y), color.Transparent)
}
