// Package collide sweeps a moving point against polygon boundaries.
//
// A Collider is an ordered list of directed edges. Each edge's outward normal
// is its direction rotated clockwise; which side of a shape counts as solid is
// chosen when the collider is built (see From).
package collide

import (
	"github.com/vovakirdan/tui-breakout/internal/geom"
)

// selfHitEpsilon filters crossings at the very start of a sweep: a point that
// already rests on an edge it just bounced off must not hit it again.
const selfHitEpsilon = 1e-5

// From selects which side of a rectangle a moving point approaches from.
type From int

const (
	// Outside keeps the rectangle's counter-clockwise edges, so normals
	// face away from it. Used for obstacles.
	Outside From = iota
	// Inside reverses every edge, so normals face into the rectangle.
	// Used for the arena boundary.
	Inside
)

// String returns the winding name.
func (f From) String() string {
	if f == Inside {
		return "inside"
	}
	return "outside"
}

// Collision is the earliest forward contact found by a sweep.
type Collision struct {
	Param  float64    // parameter along the motion, in (0, 1] for a segment
	Point  geom.Point // contact point
	Normal geom.Vec   // unit outward normal of the edge that was hit
}

// Collider is a set of directed edges. It is built per query and never
// mutated afterwards.
type Collider struct {
	edges []geom.Segment
}

// New returns a collider over the given edges.
func New(edges ...geom.Segment) Collider {
	return Collider{edges: edges}
}

// FromRect returns the four sides of r wound for the given approach.
func FromRect(r geom.Rect, from From) Collider {
	sides := r.Sides()
	edges := make([]geom.Segment, 0, len(sides))
	for _, s := range sides {
		if from == Inside {
			s = s.Reversed()
		}
		edges = append(edges, s)
	}
	return Collider{edges: edges}
}

// FromSegment returns a single-edge collider.
func FromSegment(s geom.Segment) Collider {
	return Collider{edges: []geom.Segment{s}}
}

// Edges returns a copy of the collider's edges.
func (c Collider) Edges() []geom.Segment {
	out := make([]geom.Segment, len(c.edges))
	copy(out, c.edges)
	return out
}

// Normal returns the outward normal of edge e, or false for a degenerate
// zero-length edge.
func Normal(e geom.Segment) (geom.Vec, bool) {
	d, ok := geom.Direction(e)
	if !ok {
		return geom.Vec{}, false
	}
	return geom.Right(d), true
}

// IntersectWith finds the earliest edge the motion runs into.
//
// Edges the motion is not travelling toward are skipped (this also rejects
// grazing, parallel motion). Contacts at parameter <= 1e-5 are ignored.
func (c Collider) IntersectWith(motion geom.Linear) (Collision, bool) {
	stride := motion.Line().Stride

	var (
		best  Collision
		found bool
	)
	for _, edge := range c.edges {
		n, ok := Normal(edge)
		if !ok || n.Dot(stride) >= 0 {
			continue
		}

		x, ok := geom.Intersect(motion, edge)
		if !ok || x.Self <= selfHitEpsilon {
			continue
		}

		if !found || x.Self < best.Param {
			best = Collision{Param: x.Self, Point: x.Point, Normal: n}
			found = true
		}
	}
	return best, found
}
