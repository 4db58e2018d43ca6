// package common contains common math helpers and plain data types used
// throughout the viewer. They are not interface-wrapped structs, just shared
// float32 utilities for world-space geometry and lighting arithmetic.
package common

import "github.com/chewxy/math32"

// Clamp constrains a value to the inclusive range [lo, hi].
//
// Parameters:
//   - v: the value to constrain
//   - lo: lower bound
//   - hi: upper bound
//
// Returns:
//   - float32: v limited to [lo, hi]
func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Lerp linearly interpolates between a and b by factor t.
// t is not clamped; values outside [0, 1] extrapolate.
//
// Parameters:
//   - a: start value (t=0)
//   - b: end value (t=1)
//   - t: interpolation factor
//
// Returns:
//   - float32: the interpolated value
func Lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// Normalize3 normalizes a 3-component vector. Returns a zero vector if the
// input has zero length.
//
// Parameters:
//   - v: the vector to normalize
//
// Returns:
//   - [3]float32: unit-length vector, or zero vector for zero input
func Normalize3(v [3]float32) [3]float32 {
	length := math32.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
	if length == 0 {
		return [3]float32{0, 0, 0}
	}
	inv := 1.0 / length
	return [3]float32{v[0] * inv, v[1] * inv, v[2] * inv}
}

// Add3 returns the component-wise sum a + b.
//
// Parameters:
//   - a: left operand
//   - b: right operand
//
// Returns:
//   - [3]float32: the sum vector
func Add3(a, b [3]float32) [3]float32 {
	return [3]float32{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

// Sub3 returns the component-wise difference a - b.
//
// Parameters:
//   - a: left operand
//   - b: right operand
//
// Returns:
//   - [3]float32: the difference vector
func Sub3(a, b [3]float32) [3]float32 {
	return [3]float32{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

// Scale3 returns the vector v scaled by s.
//
// Parameters:
//   - v: the vector to scale
//   - s: scalar multiplier
//
// Returns:
//   - [3]float32: the scaled vector
func Scale3(v [3]float32, s float32) [3]float32 {
	return [3]float32{v[0] * s, v[1] * s, v[2] * s}
}

// Dot3 returns the dot product of a and b.
//
// Parameters:
//   - a: left operand
//   - b: right operand
//
// Returns:
//   - float32: the dot product
func Dot3(a, b [3]float32) float32 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

// Cross3 returns the cross product a × b.
//
// Parameters:
//   - a: left operand
//   - b: right operand
//
// Returns:
//   - [3]float32: the cross product vector
func Cross3(a, b [3]float32) [3]float32 {
	return [3]float32{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

// Length3 returns the Euclidean length of v.
//
// Parameters:
//   - v: the vector to measure
//
// Returns:
//   - float32: the vector length
func Length3(v [3]float32) float32 {
	return math32.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}

// DegToRad converts an angle in degrees to radians.
//
// Parameters:
//   - deg: angle in degrees
//
// Returns:
//   - float32: angle in radians
func DegToRad(deg float32) float32 {
	return deg * math32.Pi / 180.0
}

// RadToDeg converts an angle in radians to degrees.
//
// Parameters:
//   - rad: angle in radians
//
// Returns:
//   - float32: angle in degrees
func RadToDeg(rad float32) float32 {
	return rad * 180.0 / math32.Pi
}
