package tilelight

import "math"

// Vec2 represents a 2D vector in cell space.
// Components are float32 to match the compositing core; positions carry a
// cell index in their integer part and an intra-tile offset in their
// fractional part.
type Vec2 struct {
	X, Y float32
}

// V2 is a convenience function to create a Vec2.
func V2(x, y float32) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns the sum of two vectors.
func (v Vec2) Add(w Vec2) Vec2 {
	return Vec2{X: v.X + w.X, Y: v.Y + w.Y}
}

// Sub returns the difference of two vectors.
func (v Vec2) Sub(w Vec2) Vec2 {
	return Vec2{X: v.X - w.X, Y: v.Y - w.Y}
}

// Mul returns the vector scaled by a scalar.
func (v Vec2) Mul(s float32) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// LengthSq returns the squared length of the vector.
// The lighting falloff is defined on squared distance, so the square root
// is never taken.
func (v Vec2) LengthSq() float32 {
	return v.X*v.X + v.Y*v.Y
}

// Fract returns the fractional part of each component, computed as
// x - floor(x). The result components are in [0, 1) for all inputs.
func (v Vec2) Fract() Vec2 {
	return Vec2{X: fract(v.X), Y: fract(v.Y)}
}

// Approx returns true if two vectors are approximately equal within epsilon.
func (v Vec2) Approx(w Vec2, epsilon float32) bool {
	return absf32(v.X-w.X) < epsilon && absf32(v.Y-w.Y) < epsilon
}

// fract returns x - floor(x).
func fract(x float32) float32 {
	return x - float32(math.Floor(float64(x)))
}

// absf32 returns the absolute value of a float32.
func absf32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
