package tilelight

import "image/color"

// RGBA represents a color with red, green, blue, and alpha components.
// Each component is in the range [0, 1]. Components are float32 so that
// the compositing math matches a GPU evaluation of the same formulas.
type RGBA struct {
	R, G, B, A float32
}

// RGB creates an opaque color from RGB components.
func RGB(r, g, b float32) RGBA {
	return RGBA{R: r, G: g, B: b, A: 1.0}
}

// RGBA2 creates a color from RGBA components.
func RGBA2(r, g, b, a float32) RGBA {
	return RGBA{R: r, G: g, B: b, A: a}
}

// Hex parses a hex color string, with or without a leading '#'.
// Accepted forms are RGB, RGBA, RRGGBB, and RRGGBBAA. Anything else
// yields opaque black.
func Hex(s string) RGBA {
	if s != "" && s[0] == '#' {
		s = s[1:]
	}

	var digits [8]uint32
	if len(s) > len(digits) {
		return Black
	}
	for i := 0; i < len(s); i++ {
		n, ok := nibble(s[i])
		if !ok {
			return Black
		}
		digits[i] = n
	}

	byteAt := func(i int) float32 {
		return float32(digits[2*i]<<4|digits[2*i+1]) / 255
	}
	// Short forms repeat each digit: "f80" means "ff8800".
	shortAt := func(i int) float32 {
		return float32(digits[i]*17) / 255
	}

	switch len(s) {
	case 3:
		return RGB(shortAt(0), shortAt(1), shortAt(2))
	case 4:
		return RGBA2(shortAt(0), shortAt(1), shortAt(2), shortAt(3))
	case 6:
		return RGB(byteAt(0), byteAt(1), byteAt(2))
	case 8:
		return RGBA2(byteAt(0), byteAt(1), byteAt(2), byteAt(3))
	}
	return Black
}

func nibble(c byte) (uint32, bool) {
	switch {
	case '0' <= c && c <= '9':
		return uint32(c - '0'), true
	case 'a' <= c && c <= 'f':
		return uint32(c-'a') + 10, true
	case 'A' <= c && c <= 'F':
		return uint32(c-'A') + 10, true
	}
	return 0, false
}

// FromColor converts a standard color.Color to RGBA.
func FromColor(c color.Color) RGBA {
	r, g, b, a := c.RGBA()
	return RGBA{
		R: float32(r) / 65535,
		G: float32(g) / 65535,
		B: float32(b) / 65535,
		A: float32(a) / 65535,
	}
}

// Color converts RGBA to the standard color.Color interface.
func (c RGBA) Color() color.Color {
	return color.NRGBA{
		R: uint8(clamp255(c.R * 255)),
		G: uint8(clamp255(c.G * 255)),
		B: uint8(clamp255(c.B * 255)),
		A: uint8(clamp255(c.A * 255)),
	}
}

// Blend layers src on top of c and returns the result.
//
// This is the channel-stacking rule used by the compositor, not Porter-Duff
// source-over: RGB moves toward src by src's alpha, and the result alpha is
// the maximum of the two. A fully transparent src leaves c unchanged
// bit-for-bit; a fully opaque src replaces the RGB exactly.
//
// The float32 evaluation order is part of the contract. Callers that need
// output identical to a GPU evaluation must not reassociate this math.
func (c RGBA) Blend(src RGBA) RGBA {
	return RGBA{
		R: c.R + (src.R-c.R)*src.A,
		G: c.G + (src.G-c.G)*src.A,
		B: c.B + (src.B-c.B)*src.A,
		A: max(c.A, src.A),
	}
}

// Darken applies the remembered-cell darkening curve to the RGB components.
// Alpha passes through unchanged. For component x the curve is
// (coef*x*x + 2*coef*x) / 3, so black stays black and a full-intensity
// component maps to coef.
func (c RGBA) Darken(coef float32) RGBA {
	return RGBA{
		R: darken(c.R, coef),
		G: darken(c.G, coef),
		B: darken(c.B, coef),
		A: c.A,
	}
}

// darken maps one color component through the quadratic darkening curve.
func darken(x, coef float32) float32 {
	return (coef*x*x + 2*coef*x) / 3
}

// Scale multiplies the RGB components by k, leaving alpha unchanged.
// The compositor uses this to apply lighting intensity to a channel sample.
func (c RGBA) Scale(k float32) RGBA {
	return RGBA{R: c.R * k, G: c.G * k, B: c.B * k, A: c.A}
}

// Lerp performs linear interpolation between two colors.
func (c RGBA) Lerp(other RGBA, t float32) RGBA {
	return RGBA{
		R: c.R + (other.R-c.R)*t,
		G: c.G + (other.G-c.G)*t,
		B: c.B + (other.B-c.B)*t,
		A: c.A + (other.A-c.A)*t,
	}
}

// clamp255 restricts a value to [0, 255] range.
func clamp255(x float32) float32 {
	if x < 0 {
		return 0
	}
	if x > 255 {
		return 255
	}
	return x
}

// Common colors
var (
	Black       = RGB(0, 0, 0)
	White       = RGB(1, 1, 1)
	Red         = RGB(1, 0, 0)
	Green       = RGB(0, 1, 0)
	Blue        = RGB(0, 0, 1)
	Transparent = RGBA2(0, 0, 0, 0)
)
