package tilelight

import (
	"math"
	"testing"
)

func TestVec2Arithmetic(t *testing.T) {
	a, b := V2(3, -4), V2(0.5, 2)

	if got := a.Add(b); got != V2(3.5, -2) {
		t.Errorf("Add = %v, want (3.5, -2)", got)
	}
	if got := a.Sub(b); got != V2(2.5, -6) {
		t.Errorf("Sub = %v, want (2.5, -6)", got)
	}
	if got := a.Mul(-2); got != V2(-6, 8) {
		t.Errorf("Mul(-2) = %v, want (-6, 8)", got)
	}
	if got := a.Mul(0); got != (Vec2{}) {
		t.Errorf("Mul(0) = %v, want zero", got)
	}
}

func TestVec2LengthSq(t *testing.T) {
	if got := V2(3, 4).LengthSq(); got != 25 {
		t.Errorf("LengthSq(3, 4) = %v, want 25", got)
	}
	if got := V2(-3, -4).LengthSq(); got != 25 {
		t.Errorf("LengthSq(-3, -4) = %v, want 25", got)
	}
	if got := (Vec2{}).LengthSq(); got != 0 {
		t.Errorf("LengthSq(0, 0) = %v, want 0", got)
	}
}

// The fractional part stays in [0, 1) for negative inputs too; positions
// left of the origin still address intra-tile texels left to right.
func TestVec2Fract(t *testing.T) {
	tests := []struct {
		v, want Vec2
	}{
		{V2(3, 7), V2(0, 0)},
		{V2(3.25, 7.75), V2(0.25, 0.75)},
		{V2(-0.25, -1.75), V2(0.75, 0.25)},
		{V2(0, 0), V2(0, 0)},
	}

	for _, tt := range tests {
		got := tt.v.Fract()
		if !got.Approx(tt.want, 1e-6) {
			t.Errorf("%v.Fract() = %v, want %v", tt.v, got, tt.want)
		}
		if got.X < 0 || got.X >= 1 || got.Y < 0 || got.Y >= 1 {
			t.Errorf("%v.Fract() = %v, components outside [0, 1)", tt.v, got)
		}
	}
}

// fract is x - floor(x), pinned against the standard library.
func TestFract(t *testing.T) {
	for _, x := range []float32{-2.5, -1.0, -0.1, 0, 0.1, 0.999, 1.0, 42.75} {
		want := float32(float64(x) - math.Floor(float64(x)))
		if got := fract(x); got != want {
			t.Errorf("fract(%v) = %v, want %v", x, got, want)
		}
	}
}

func TestVec2Approx(t *testing.T) {
	v := V2(1, 2)
	if !v.Approx(V2(1.0000001, 2), 1e-5) {
		t.Error("Approx rejected a vector within epsilon")
	}
	if v.Approx(V2(1.1, 2), 1e-5) || v.Approx(V2(1, 2.1), 1e-5) {
		t.Error("Approx accepted a vector outside epsilon")
	}
}
