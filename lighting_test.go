package tilelight

import "testing"

// TestIntensityAtViewer verifies the falloff peaks at the viewer.
func TestIntensityAtViewer(t *testing.T) {
	if got := Intensity(0); got != IntensityMax {
		t.Errorf("Intensity(0) = %v, want %v", got, IntensityMax)
	}
}

// TestIntensityHalfPoint verifies the curve's defining property: at a
// squared distance equal to DimCoef, intensity is exactly halfway through
// the range.
func TestIntensityHalfPoint(t *testing.T) {
	want := IntensityMin + (IntensityMax-IntensityMin)/2
	if got := Intensity(DimCoef); got != want {
		t.Errorf("Intensity(DimCoef) = %v, want %v", got, want)
	}
}

func TestIntensityMonotonic(t *testing.T) {
	prev := Intensity(0)
	for distSq := float32(1); distSq < 10000; distSq *= 2 {
		cur := Intensity(distSq)
		if cur >= prev {
			t.Fatalf("Intensity(%v) = %v, not below Intensity at shorter distance %v", distSq, cur, prev)
		}
		prev = cur
	}
}

// TestIntensityBounds verifies the result stays in (IntensityMin,
// IntensityMax] for nonnegative squared distances: the falloff approaches
// the minimum but never reaches it.
func TestIntensityBounds(t *testing.T) {
	distances := []float32{0, 0.5, 1, 60, 1000, 1e6, 1e12}
	for _, d := range distances {
		got := Intensity(d)
		if got <= IntensityMin || got > IntensityMax {
			t.Errorf("Intensity(%v) = %v, outside (%v, %v]", d, got, IntensityMin, IntensityMax)
		}
	}
}

// TestIntensityKnownValues pins a few points of the curve with the exact
// float32 arithmetic of the implementation.
func TestIntensityKnownValues(t *testing.T) {
	tests := []struct {
		distSq float32
		expect float32
	}{
		{0, 1},
		{60, 0.5},
		{180, 0.25},
		{540, 0.1},
	}

	for _, tt := range tests {
		got := Intensity(tt.distSq)
		if absf32(got-tt.expect) > 1e-6 {
			t.Errorf("Intensity(%v) = %v, want %v", tt.distSq, got, tt.expect)
		}
	}
}
