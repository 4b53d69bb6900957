// Package geom provides the 2D floating-point geometry used by the physics
// core: vectors and points, parametrized lines, axis-aligned rectangles and
// their dilation.
//
// Coordinates are y-up. Nothing in this package returns errors: degenerate
// inputs (parallel lines, zero-length vectors) produce an empty result.
package geom

import "math"

// Vec is a 2D displacement.
type Vec struct {
	X, Y float64
}

// Point is a 2D position. Point - Point is a Vec, Point + Vec is a Point.
type Point struct {
	X, Y float64
}

// V is shorthand for Vec{x, y}.
func V(x, y float64) Vec { return Vec{X: x, Y: y} }

// P is shorthand for Point{x, y}.
func P(x, y float64) Point { return Point{X: x, Y: y} }

// Add returns v + w.
func (v Vec) Add(w Vec) Vec { return Vec{v.X + w.X, v.Y + w.Y} }

// Sub returns v - w.
func (v Vec) Sub(w Vec) Vec { return Vec{v.X - w.X, v.Y - w.Y} }

// Mul returns v scaled by s.
func (v Vec) Mul(s float64) Vec { return Vec{v.X * s, v.Y * s} }

// Neg returns -v.
func (v Vec) Neg() Vec { return Vec{-v.X, -v.Y} }

// Dot returns the dot product of v and w.
func (v Vec) Dot(w Vec) float64 { return v.X*w.X + v.Y*w.Y }

// Cross returns the z component of the 3D cross product of v and w.
func (v Vec) Cross(w Vec) float64 { return v.X*w.Y - v.Y*w.X }

// Len returns the Euclidean length of v.
func (v Vec) Len() float64 { return math.Hypot(v.X, v.Y) }

// Normalize returns v scaled to unit length.
// The second result is false for a zero vector, which has no direction.
func (v Vec) Normalize() (Vec, bool) {
	l := v.Len()
	if l == 0 {
		return Vec{}, false
	}
	return Vec{v.X / l, v.Y / l}, true
}

// Add returns the point p moved by v.
func (p Point) Add(v Vec) Point { return Point{p.X + v.X, p.Y + v.Y} }

// Sub returns the displacement from q to p.
func (p Point) Sub(q Point) Vec { return Vec{p.X - q.X, p.Y - q.Y} }

// Vec returns the position of p relative to the origin.
func (p Point) Vec() Vec { return Vec{p.X, p.Y} }

// Left rotates v by 90 degrees counter-clockwise.
func Left(v Vec) Vec { return Vec{-v.Y, v.X} }

// Right rotates v by 90 degrees clockwise.
func Right(v Vec) Vec { return Vec{v.Y, -v.X} }

// Reflect mirrors v about the unit normal n: v - 2(n·v)n.
func Reflect(v, n Vec) Vec {
	return v.Sub(n.Mul(2 * n.Dot(v)))
}

// Lerp interpolates linearly between a and b.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// LerpPoint interpolates linearly between the points a and b.
func LerpPoint(a, b Point, t float64) Point {
	return Point{Lerp(a.X, b.X, t), Lerp(a.Y, b.Y, t)}
}

// Clamp restricts v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// Sign returns -1, 0 or 1 according to the sign of v.
func Sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
