// Package framebuffer owns the overlay's pixel memory and keeps the drawing
// surface and the presented buffer in step with the window size.
package framebuffer

import (
	"fmt"
	"strings"
)

// Format is a 32-bit pixel layout. Both formats store pixels as
// little-endian words, i.e. B, G, R, A bytes in memory.
type Format uint8

const (
	// ARGB32 is premultiplied alpha.
	ARGB32 Format = iota
	// XRGB32 ignores the alpha byte.
	XRGB32
)

const bytesPerPixel = 4

func (f Format) String() string {
	switch f {
	case ARGB32:
		return "argb32"
	case XRGB32:
		return "xrgb32"
	default:
		return fmt.Sprintf("format(%d)", uint8(f))
	}
}

// ParseFormat accepts "argb32" or "xrgb32".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "argb32":
		return ARGB32, nil
	case "xrgb32":
		return XRGB32, nil
	default:
		return ARGB32, fmt.Errorf("unknown pixel format %q", s)
	}
}

// HasAlpha reports whether the alpha byte is meaningful.
func (f Format) HasAlpha() bool {
	return f == ARGB32
}

// StrideForWidth returns the row length in bytes for width pixels. Rows are
// aligned to 4 bytes, which a 32-bit format always satisfies.
func (f Format) StrideForWidth(width int) int {
	if width <= 0 {
		return 0
	}
	stride := width * bytesPerPixel
	return (stride + 3) &^ 3
}
