// Package texel samples tightly packed RGBA pixel buffers at normalized
// coordinates, mirroring GPU sampler semantics on the CPU.
package texel

import "math"

// Mode defines how sampling resolves coordinates between texels.
type Mode uint8

const (
	// ModeNearest selects the closest texel (no interpolation).
	ModeNearest Mode = iota

	// ModeBilinear performs linear interpolation between 4 neighboring texels.
	ModeBilinear

	// ModeBicubic performs cubic interpolation using a 4x4 texel neighborhood.
	ModeBicubic
)

// String returns a string representation of the sampling mode.
func (m Mode) String() string {
	switch m {
	case ModeNearest:
		return "Nearest"
	case ModeBilinear:
		return "Bilinear"
	case ModeBicubic:
		return "Bicubic"
	default:
		return "Unknown"
	}
}

// Sample reads the buffer at normalized coordinates (u, v) with the given
// mode. The buffer is w*h texels of 4 bytes each, row-major. Components are
// returned normalized to [0, 1], as a GPU texture read would deliver them.
// Out-of-bounds coordinates are clamped to the edge.
func Sample(pix []uint8, w, h int, u, v float32, mode Mode) (r, g, b, a float32) {
	switch mode {
	case ModeNearest:
		return SampleNearest(pix, w, h, u, v)
	case ModeBilinear:
		return SampleBilinear(pix, w, h, u, v)
	case ModeBicubic:
		return SampleBicubic(pix, w, h, u, v)
	default:
		return 0, 0, 0, 0
	}
}

// SampleNearest returns the texel containing (u, v).
func SampleNearest(pix []uint8, w, h int, u, v float32) (r, g, b, a float32) {
	// Floor selects the texel containing the coordinate.
	x := int(math.Floor(float64(u) * float64(w)))
	y := int(math.Floor(float64(v) * float64(h)))

	x = clamp(x, 0, w-1)
	y = clamp(y, 0, h-1)

	return fetch(pix, w, x, y)
}

// SampleBilinear interpolates between the 4 texels surrounding (u, v)
// using linear weights.
func SampleBilinear(pix []uint8, w, h int, u, v float32) (r, g, b, a float32) {
	// Continuous texel coordinates, with texel centers at half offsets.
	fx := float64(u)*float64(w) - 0.5
	fy := float64(v)*float64(h) - 0.5

	x0 := int(math.Floor(fx))
	y0 := int(math.Floor(fy))
	tx := float32(fx - float64(x0))
	ty := float32(fy - float64(y0))

	x1 := x0 + 1
	y1 := y0 + 1

	x0 = clamp(x0, 0, w-1)
	y0 = clamp(y0, 0, h-1)
	x1 = clamp(x1, 0, w-1)
	y1 = clamp(y1, 0, h-1)

	r00, g00, b00, a00 := fetch(pix, w, x0, y0)
	r10, g10, b10, a10 := fetch(pix, w, x1, y0)
	r01, g01, b01, a01 := fetch(pix, w, x0, y1)
	r11, g11, b11, a11 := fetch(pix, w, x1, y1)

	r = lerp2D(r00, r10, r01, r11, tx, ty)
	g = lerp2D(g00, g10, g01, g11, tx, ty)
	b = lerp2D(b00, b10, b01, b11, tx, ty)
	a = lerp2D(a00, a10, a01, a11, tx, ty)

	return r, g, b, a
}

// SampleBicubic interpolates a 4x4 texel neighborhood around (u, v) with
// Catmull-Rom weights. The cubic can overshoot, so components are clamped
// back into [0, 1].
func SampleBicubic(pix []uint8, w, h int, u, v float32) (r, g, b, a float32) {
	fx := float64(u)*float64(w) - 0.5
	fy := float64(v)*float64(h) - 0.5

	x := int(math.Floor(fx))
	y := int(math.Floor(fy))
	tx := float32(fx - float64(x))
	ty := float32(fy - float64(y))

	var rVals, gVals, bVals, aVals [4][4]float32

	for dy := -1; dy <= 2; dy++ {
		for dx := -1; dx <= 2; dx++ {
			px := clamp(x+dx, 0, w-1)
			py := clamp(y+dy, 0, h-1)

			pr, pg, pb, pa := fetch(pix, w, px, py)
			rVals[dy+1][dx+1] = pr
			gVals[dy+1][dx+1] = pg
			bVals[dy+1][dx+1] = pb
			aVals[dy+1][dx+1] = pa
		}
	}

	r = clampFloat(bicubicInterp(rVals, tx, ty), 0, 1)
	g = clampFloat(bicubicInterp(gVals, tx, ty), 0, 1)
	b = clampFloat(bicubicInterp(bVals, tx, ty), 0, 1)
	a = clampFloat(bicubicInterp(aVals, tx, ty), 0, 1)

	return r, g, b, a
}

// fetch reads one texel and normalizes its components to [0, 1].
func fetch(pix []uint8, w, x, y int) (r, g, b, a float32) {
	i := (y*w + x) * 4
	return float32(pix[i]) / 255,
		float32(pix[i+1]) / 255,
		float32(pix[i+2]) / 255,
		float32(pix[i+3]) / 255
}

// clamp clamps an integer value to [minVal, maxVal].
func clamp(val, minVal, maxVal int) int {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

// clampFloat clamps a float32 value to [minVal, maxVal].
func clampFloat(val, minVal, maxVal float32) float32 {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

// lerp performs linear interpolation between a and b.
func lerp(a, b, t float32) float32 {
	return a*(1-t) + b*t
}

// lerp2D performs bilinear interpolation on a 2x2 grid.
func lerp2D(v00, v10, v01, v11, tx, ty float32) float32 {
	v0 := lerp(v00, v10, tx)
	v1 := lerp(v01, v11, tx)
	return lerp(v0, v1, ty)
}

// cubicWeight computes the Catmull-Rom cubic weight for distance t.
func cubicWeight(t float32) float32 {
	// Catmull-Rom spline (Mitchell-Netravali with B=0, C=0.5):
	// |t| < 1: (1.5|t|³ - 2.5|t|² + 1)
	// 1 ≤ |t| < 2: (-0.5|t|³ + 2.5|t|² - 4|t| + 2)
	// |t| ≥ 2: 0
	absT := t
	if absT < 0 {
		absT = -absT
	}
	if absT < 1 {
		return 1.5*absT*absT*absT - 2.5*absT*absT + 1.0
	}
	if absT < 2 {
		return -0.5*absT*absT*absT + 2.5*absT*absT - 4.0*absT + 2.0
	}
	return 0
}

// bicubicInterp performs bicubic interpolation on a 4x4 grid using
// Catmull-Rom weights.
func bicubicInterp(vals [4][4]float32, tx, ty float32) float32 {
	wx := [4]float32{
		cubicWeight(tx + 1),
		cubicWeight(tx),
		cubicWeight(tx - 1),
		cubicWeight(tx - 2),
	}
	wy := [4]float32{
		cubicWeight(ty + 1),
		cubicWeight(ty),
		cubicWeight(ty - 1),
		cubicWeight(ty - 2),
	}

	var result float32
	for i := range 4 {
		for j := range 4 {
			result += vals[i][j] * wx[j] * wy[i]
		}
	}

	return result
}
