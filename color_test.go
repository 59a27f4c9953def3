package tilelight

import (
	"image/color"
	"testing"
)

func TestHex(t *testing.T) {
	tests := []struct {
		name   string
		hex    string
		expect RGBA
	}{
		{"RGB", "F00", RGBA{R: 1, G: 0, B: 0, A: 1}},
		{"RGB with hash", "#0F0", RGBA{R: 0, G: 1, B: 0, A: 1}},
		{"RGBA", "00F8", RGBA{R: 0, G: 0, B: 1, A: float32(0x88) / 255}},
		{"RRGGBB", "FF8000", RGBA{R: 1, G: float32(0x80) / 255, B: 0, A: 1}},
		{"RRGGBB with hash", "#336699", RGBA{R: float32(0x33) / 255, G: float32(0x66) / 255, B: float32(0x99) / 255, A: 1}},
		{"RRGGBBAA", "FF000080", RGBA{R: 1, G: 0, B: 0, A: float32(0x80) / 255}},
		{"lowercase", "ff00ff", RGBA{R: 1, G: 0, B: 1, A: 1}},
		{"invalid length", "FF00F", RGBA{R: 0, G: 0, B: 0, A: 1}},
		{"empty", "", RGBA{R: 0, G: 0, B: 0, A: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Hex(tt.hex)
			if got != tt.expect {
				t.Errorf("Hex(%q) = %v, want %v", tt.hex, got, tt.expect)
			}
		})
	}
}

// TestRGBA_Blend verifies the channel-stacking rule: RGB moves toward the
// source by its alpha, alpha takes the maximum.
func TestRGBA_Blend(t *testing.T) {
	tests := []struct {
		name   string
		dst    RGBA
		src    RGBA
		expect RGBA
	}{
		{
			name:   "transparent source leaves dst untouched",
			dst:    RGBA{R: 0.3, G: 0.5, B: 0.7, A: 0.9},
			src:    RGBA{R: 1, G: 1, B: 1, A: 0},
			expect: RGBA{R: 0.3, G: 0.5, B: 0.7, A: 0.9},
		},
		{
			name:   "opaque source replaces rgb",
			dst:    RGBA{R: 0.3, G: 0.5, B: 0.7, A: 0.2},
			src:    RGBA{R: 1, G: 0, B: 0, A: 1},
			expect: RGBA{R: 1, G: 0, B: 0, A: 1},
		},
		{
			name:   "half alpha moves rgb halfway",
			dst:    RGBA{R: 0, G: 0, B: 0, A: 1},
			src:    RGBA{R: 1, G: 1, B: 1, A: 0.5},
			expect: RGBA{R: 0.5, G: 0.5, B: 0.5, A: 1},
		},
		{
			name:   "alpha is max not sum",
			dst:    RGBA{R: 0, G: 0, B: 0, A: 0.4},
			src:    RGBA{R: 0, G: 0, B: 0, A: 0.3},
			expect: RGBA{R: 0, G: 0, B: 0, A: 0.4},
		},
		{
			name:   "onto transparent",
			dst:    RGBA{},
			src:    RGBA{R: 0.8, G: 0.6, B: 0.4, A: 1},
			expect: RGBA{R: 0.8, G: 0.6, B: 0.4, A: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.dst.Blend(tt.src)
			if got != tt.expect {
				t.Errorf("%v.Blend(%v) = %v, want %v", tt.dst, tt.src, got, tt.expect)
			}
		})
	}
}

// TestRGBA_BlendZeroAlphaExact checks the bit-for-bit guarantee: a fully
// transparent source must not perturb the destination even in the last ulp.
func TestRGBA_BlendZeroAlphaExact(t *testing.T) {
	dst := RGBA{R: 0.1, G: 0.2, B: 0.30000001, A: 0.99999994}
	got := dst.Blend(RGBA{R: 0.123, G: 0.456, B: 0.789, A: 0})
	if got != dst {
		t.Errorf("Blend with zero alpha changed the color: got %v, want %v", got, dst)
	}
}

func TestRGBA_Darken(t *testing.T) {
	const coef = RememberedDarken

	tests := []struct {
		name   string
		c      RGBA
		expect RGBA
	}{
		{
			name:   "black stays black",
			c:      RGBA{R: 0, G: 0, B: 0, A: 1},
			expect: RGBA{R: 0, G: 0, B: 0, A: 1},
		},
		{
			name:   "white maps to coef",
			c:      RGBA{R: 1, G: 1, B: 1, A: 1},
			expect: RGBA{R: coef, G: coef, B: coef, A: 1},
		},
		{
			name:   "alpha passes through",
			c:      RGBA{R: 0, G: 0, B: 0, A: 0.5},
			expect: RGBA{R: 0, G: 0, B: 0, A: 0.5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.c.Darken(coef)
			if got != tt.expect {
				t.Errorf("%v.Darken(%v) = %v, want %v", tt.c, coef, got, tt.expect)
			}
		})
	}
}

// TestDarkenCurve pins the per-component curve (coef*x*x + 2*coef*x) / 3
// and its monotonicity on [0, 1].
func TestDarkenCurve(t *testing.T) {
	if got := darken(1, 0.2); got != 0.2 {
		t.Errorf("darken(1, 0.2) = %v, want 0.2", got)
	}
	if got := darken(0, 0.2); got != 0 {
		t.Errorf("darken(0, 0.2) = %v, want 0", got)
	}

	prev := float32(-1)
	for i := 0; i <= 10; i++ {
		x := float32(i) / 10
		y := darken(x, 0.2)
		if y < prev {
			t.Fatalf("darken not monotonic: darken(%v) = %v < %v", x, y, prev)
		}
		if y > x+1e-6 {
			t.Fatalf("darken(%v) = %v brightened the component", x, y)
		}
		prev = y
	}
}

func TestRGBA_Scale(t *testing.T) {
	c := RGBA{R: 0.5, G: 1, B: 0.25, A: 0.8}
	got := c.Scale(0.5)
	want := RGBA{R: 0.25, G: 0.5, B: 0.125, A: 0.8}
	if got != want {
		t.Errorf("Scale(0.5) = %v, want %v", got, want)
	}

	if got := c.Scale(1); got != c {
		t.Errorf("Scale(1) = %v, want %v unchanged", got, c)
	}
	if got := c.Scale(0); (got != RGBA{A: 0.8}) {
		t.Errorf("Scale(0) = %v, want zero rgb with alpha kept", got)
	}
}

func TestRGBA_Lerp(t *testing.T) {
	a := RGBA{R: 0, G: 0, B: 0, A: 0}
	b := RGBA{R: 1, G: 1, B: 1, A: 1}

	if got := a.Lerp(b, 0); got != a {
		t.Errorf("Lerp(0) = %v, want %v", got, a)
	}
	if got := a.Lerp(b, 1); got != b {
		t.Errorf("Lerp(1) = %v, want %v", got, b)
	}
	mid := a.Lerp(b, 0.5)
	if mid.R != 0.5 || mid.G != 0.5 || mid.B != 0.5 || mid.A != 0.5 {
		t.Errorf("Lerp(0.5) = %v, want all 0.5", mid)
	}
}

func TestFromColor(t *testing.T) {
	tests := []struct {
		name   string
		c      color.Color
		expect RGBA
	}{
		{"opaque white", color.NRGBA{R: 255, G: 255, B: 255, A: 255}, RGBA{R: 1, G: 1, B: 1, A: 1}},
		{"opaque black", color.NRGBA{A: 255}, RGBA{A: 1}},
		{"transparent", color.NRGBA{}, RGBA{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromColor(tt.c)
			if !approxColor(got, tt.expect, 1e-4) {
				t.Errorf("FromColor(%v) = %v, want %v", tt.c, got, tt.expect)
			}
		})
	}
}

func TestRGBA_ColorRoundTrip(t *testing.T) {
	orig := RGBA{R: 0.25, G: 0.5, B: 0.75, A: 1}
	back := FromColor(orig.Color())
	if !approxColor(back, orig, 0.01) {
		t.Errorf("round trip changed color: %v -> %v", orig, back)
	}
}

func TestCommonColors(t *testing.T) {
	if Black != (RGBA{R: 0, G: 0, B: 0, A: 1}) {
		t.Errorf("Black = %v", Black)
	}
	if White != (RGBA{R: 1, G: 1, B: 1, A: 1}) {
		t.Errorf("White = %v", White)
	}
	if Transparent != (RGBA{}) {
		t.Errorf("Transparent = %v", Transparent)
	}
	if Red.R != 1 || Green.G != 1 || Blue.B != 1 {
		t.Error("primary colors miswired")
	}
}

// approxColor compares two colors componentwise within epsilon.
func approxColor(a, b RGBA, epsilon float32) bool {
	return absf32(a.R-b.R) < epsilon &&
		absf32(a.G-b.G) < epsilon &&
		absf32(a.B-b.B) < epsilon &&
		absf32(a.A-b.A) < epsilon
}
