package tilelight

// Lighting falloff constants. DimCoef controls how quickly intensity decays
// with squared distance from the viewer; the intensity range is [IntensityMin,
// IntensityMax], reached at infinity and at the viewer respectively.
const (
	DimCoef      float32 = 60.0
	IntensityMin float32 = 0.0
	IntensityMax float32 = 1.0
)

// Intensity returns the lighting intensity for a squared distance from the
// viewer:
//
//	IntensityMin + (IntensityMax - IntensityMin) * DimCoef / (distSq + DimCoef)
//
// The curve is an inverse-square falloff on squared Euclidean distance; no
// square root is ever taken. It equals IntensityMax at distance zero, decays
// monotonically, and approaches IntensityMin without reaching it, so the
// result always lies in (IntensityMin, IntensityMax] for nonnegative input.
// The float32 evaluation order is fixed to stay identical to the GPU kernel.
func Intensity(distSq float32) float32 {
	return IntensityMin + (IntensityMax-IntensityMin)*DimCoef/(distSq+DimCoef)
}
