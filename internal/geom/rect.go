package geom

import "fmt"

// Rect is an axis-aligned rectangle with Mins <= Maxs on both axes.
type Rect struct {
	Mins Point
	Maxs Point
}

// NewRect builds a rectangle from its corners.
// It panics if mins exceeds maxs on either axis; that is a modelling bug.
func NewRect(mins, maxs Point) Rect {
	if mins.X > maxs.X || mins.Y > maxs.Y {
		panic(fmt.Sprintf("geom: invalid rect mins=%v maxs=%v", mins, maxs))
	}
	return Rect{Mins: mins, Maxs: maxs}
}

// RectFromDims builds a rectangle from its lower corner and dimensions.
func RectFromDims(mins Point, dims Vec) Rect {
	return NewRect(mins, mins.Add(dims))
}

// CenteredRect builds a rectangle of the given half extents around the origin.
func CenteredRect(halfW, halfH float64) Rect {
	return NewRect(P(-halfW, -halfH), P(halfW, halfH))
}

// Width returns the horizontal extent.
func (r Rect) Width() float64 { return r.Maxs.X - r.Mins.X }

// Height returns the vertical extent.
func (r Rect) Height() float64 { return r.Maxs.Y - r.Mins.Y }

// Dims returns the extents as a vector.
func (r Rect) Dims() Vec { return r.Maxs.Sub(r.Mins) }

// Center returns the midpoint.
func (r Rect) Center() Point { return r.Mins.Add(r.Dims().Mul(0.5)) }

// Translate moves the rectangle by v.
func (r Rect) Translate(v Vec) Rect {
	return Rect{Mins: r.Mins.Add(v), Maxs: r.Maxs.Add(v)}
}

// At places a rectangle expressed relative to its own origin at p.
func (r Rect) At(p Point) Rect {
	return r.Translate(p.Vec())
}

// Contains reports whether p lies inside r. Lower bounds are inclusive,
// upper bounds exclusive.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Mins.X && p.X < r.Maxs.X &&
		p.Y >= r.Mins.Y && p.Y < r.Maxs.Y
}

// Side identifies one of the four boundary edges.
type Side int

// Sides in their fixed cyclic order: bottom, right, top, left.
const (
	SideMinY Side = iota
	SideMaxX
	SideMaxY
	SideMinX
)

// Side returns the boundary segment for s. Segments run counter-clockwise,
// so the clockwise normal of each one points out of the rectangle.
func (r Rect) Side(s Side) Segment {
	switch s {
	case SideMinY:
		return SegmentBetween(r.Mins, P(r.Maxs.X, r.Mins.Y))
	case SideMaxX:
		return SegmentBetween(P(r.Maxs.X, r.Mins.Y), r.Maxs)
	case SideMaxY:
		return SegmentBetween(r.Maxs, P(r.Mins.X, r.Maxs.Y))
	case SideMinX:
		return SegmentBetween(P(r.Mins.X, r.Maxs.Y), r.Mins)
	default:
		panic(fmt.Sprintf("geom: unknown side %d", s))
	}
}

// Sides returns all four boundary segments in cyclic order.
func (r Rect) Sides() [4]Segment {
	return [4]Segment{
		r.Side(SideMinY),
		r.Side(SideMaxX),
		r.Side(SideMaxY),
		r.Side(SideMinX),
	}
}

// Expand grows the rectangle by s on every side.
func (r Rect) Expand(s float64) Rect {
	return NewRect(r.Mins.Add(V(-s, -s)), r.Maxs.Add(V(s, s)))
}

// Contract shrinks the rectangle by s on every side. It is the inverse of
// Expand.
func (r Rect) Contract(s float64) Rect {
	return NewRect(r.Mins.Add(V(s, s)), r.Maxs.Add(V(-s, -s)))
}

// ExpandRect is the Minkowski sum of r and by, where by is expressed
// relative to its own origin. Inflating an obstacle by a moving box this way
// lets the box be swept as a point.
func (r Rect) ExpandRect(by Rect) Rect {
	return NewRect(r.Mins.Add(by.Mins.Vec()), r.Maxs.Add(by.Maxs.Vec()))
}

// ContractRect is the inverse of ExpandRect.
func (r Rect) ContractRect(by Rect) Rect {
	return NewRect(r.Mins.Add(by.Maxs.Vec()), r.Maxs.Add(by.Mins.Vec()))
}
