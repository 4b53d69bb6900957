package geom

import "math"

// parallelEpsilon is the smallest determinant treated as a real crossing.
const parallelEpsilon = 1e-5

// Linear is implemented by Line, Ray and Segment: a parametrized line
// at(t) = src + t*stride whose parameter is restricted to a domain.
type Linear interface {
	// Line returns the underlying infinite line.
	Line() Line
	// Contains reports whether t lies in the parameter domain.
	Contains(t float64) bool
}

// Line is an infinite parametrized line.
type Line struct {
	Src    Point
	Stride Vec
}

// Ray is a line restricted to t >= 0.
type Ray struct {
	Src    Point
	Stride Vec
}

// Segment is a line restricted to t in [0, 1].
type Segment struct {
	Src    Point
	Stride Vec
}

// NewSegment returns the segment running from src by stride.
func NewSegment(src Point, stride Vec) Segment {
	return Segment{Src: src, Stride: stride}
}

// SegmentBetween returns the segment running from a to b.
func SegmentBetween(a, b Point) Segment {
	return Segment{Src: a, Stride: b.Sub(a)}
}

func (l Line) Line() Line { return l }

// Contains is always true: a Line has no parameter bounds.
func (l Line) Contains(float64) bool { return true }

func (r Ray) Line() Line { return Line(r) }

// Contains reports t >= 0.
func (r Ray) Contains(t float64) bool { return t >= 0 }

func (s Segment) Line() Line { return Line(s) }

// Contains reports t in [0, 1].
func (s Segment) Contains(t float64) bool { return t >= 0 && t <= 1 }

// Source returns the segment start.
func (s Segment) Source() Point { return s.Src }

// Destination returns the segment end.
func (s Segment) Destination() Point { return s.Src.Add(s.Stride) }

// Reversed returns the same segment traversed from its destination.
func (s Segment) Reversed() Segment {
	return Segment{Src: s.Destination(), Stride: s.Stride.Neg()}
}

// At evaluates l at parameter t, ignoring the domain.
func At(l Linear, t float64) Point {
	ln := l.Line()
	return ln.Src.Add(ln.Stride.Mul(t))
}

// Direction returns the unit stride of l, or false when the stride is zero.
func Direction(l Linear) (Vec, bool) {
	return l.Line().Stride.Normalize()
}

// Intersection is a crossing of two parametrized lines.
type Intersection struct {
	Self  float64 // parameter on the first line
	Other float64 // parameter on the second line
	Point Point
}

// Intersect solves a.at(λ) = b.at(μ). It reports no intersection when the
// lines are (nearly) parallel or either parameter falls outside its line's
// domain.
func Intersect(a, b Linear) (Intersection, bool) {
	la, lb := a.Line(), b.Line()

	denom := lb.Stride.Y*la.Stride.X - lb.Stride.X*la.Stride.Y
	if math.Abs(denom) < parallelEpsilon {
		return Intersection{}, false
	}

	off := lb.Src.Sub(la.Src)
	lambda := (lb.Stride.Y*off.X - lb.Stride.X*off.Y) / denom
	mu := (la.Stride.Y*off.X - la.Stride.X*off.Y) / denom

	if !a.Contains(lambda) || !b.Contains(mu) {
		return Intersection{}, false
	}

	return Intersection{
		Self:  lambda,
		Other: mu,
		Point: At(la, lambda),
	}, true
}
