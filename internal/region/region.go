// Package region holds the normalized active region and the transforms
// that narrow, shift and zoom it.
package region

import "fmt"

// Region is a rectangle in normalized overlay coordinates, where the whole
// surface spans [0,1) on both axes.
type Region struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Full returns the region covering the whole surface.
func Full() Region {
	return Region{Width: 1, Height: 1}
}

// Center returns the normalized center point.
func (r Region) Center() (float64, float64) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

func (r Region) String() string {
	return fmt.Sprintf("%.4f,%.4f %.4fx%.4f", r.X, r.Y, r.Width, r.Height)
}

// Scale converts between normalized and device-pixel lengths. The
// framebuffer implements it; until the surface has a size, every length
// projects to zero pixels.
type Scale interface {
	UserToDevice(w, h float64) (float64, float64)
	DeviceToUser(w, h float64) (float64, float64)
}

// Valid reports whether r can be the active region on a surface with the
// given scale: its origin lies inside the surface and it covers at least
// one device pixel on each axis.
func Valid(r Region, scale Scale) bool {
	if r.X < 0 || r.X >= 1 || r.Y < 0 || r.Y >= 1 {
		return false
	}
	dw, dh := scale.UserToDevice(r.Width, r.Height)
	return dw >= 1 && dh >= 1
}

// CutLeft keeps the left edge and scales the width by f.
func CutLeft(r Region, f float64) Region {
	r.Width *= f
	return r
}

// CutRight keeps the right edge and scales the width by f.
func CutRight(r Region, f float64) Region {
	r.X += r.Width * (1 - f)
	r.Width *= f
	return r
}

// CutUp keeps the top edge and scales the height by f.
func CutUp(r Region, f float64) Region {
	r.Height *= f
	return r
}

// CutDown keeps the bottom edge and scales the height by f.
func CutDown(r Region, f float64) Region {
	r.Y += r.Height * (1 - f)
	r.Height *= f
	return r
}

// MoveLeft shifts r left by f times its width.
func MoveLeft(r Region, f float64) Region {
	r.X -= r.Width * f
	return r
}

// MoveRight shifts r right by f times its width.
func MoveRight(r Region, f float64) Region {
	r.X += r.Width * f
	return r
}

// MoveUp shifts r up by f times its height.
func MoveUp(r Region, f float64) Region {
	r.Y -= r.Height * f
	return r
}

// MoveDown shifts r down by f times its height.
func MoveDown(r Region, f float64) Region {
	r.Y += r.Height * f
	return r
}

// Zoom returns a w×h region (normalized) centered on (cx, cy).
func Zoom(w, h, cx, cy float64) Region {
	return Region{X: cx - w/2, Y: cy - h/2, Width: w, Height: h}
}
