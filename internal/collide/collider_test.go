package collide

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-breakout/internal/geom"
)

const eps = 1e-9

func TestExactSweepAgainstSingleEdge(t *testing.T) {
	// A point at the origin moving up 10 units meets the edge y=5 halfway.
	// The edge runs left-to-right so its normal faces the approaching point.
	edge := geom.SegmentBetween(geom.P(-1, 5), geom.P(1, 5))
	c := FromSegment(edge)

	dt := 0.1
	motion := geom.NewSegment(geom.P(0, 0), geom.V(0, 100).Mul(dt))

	hit, ok := c.IntersectWith(motion)
	require.True(t, ok)
	assert.InDelta(t, 0.5, hit.Param, eps)
	assert.InDelta(t, 0.0, hit.Point.X, eps)
	assert.InDelta(t, 5.0, hit.Point.Y, eps)
	assert.InDelta(t, 0.0, hit.Normal.X, eps)
	assert.InDelta(t, -1.0, hit.Normal.Y, eps)
}

func TestOutsideRectBottomEdge(t *testing.T) {
	// Unit obstacle whose bottom face lies on (-1,5)-(1,5).
	block := geom.NewRect(geom.P(-1, 5), geom.P(1, 7))
	c := FromRect(block, Outside)

	motion := geom.NewSegment(geom.P(0, 0), geom.V(0, 10))
	hit, ok := c.IntersectWith(motion)
	require.True(t, ok)
	assert.InDelta(t, 0.5, hit.Param, eps)
	assert.InDelta(t, 5.0, hit.Point.Y, eps)
	assert.Equal(t, geom.V(0, -1), hit.Normal)
}

func TestOutsideWindingNormalsPointOutward(t *testing.T) {
	r := geom.NewRect(geom.P(-10, -10), geom.P(10, 10))
	c := FromRect(r, Outside)

	cases := []struct {
		name   string
		from   geom.Point
		stride geom.Vec
		normal geom.Vec
	}{
		{"from below", geom.P(0, -20), geom.V(0, 20), geom.V(0, -1)},
		{"from right", geom.P(20, 0), geom.V(-20, 0), geom.V(1, 0)},
		{"from above", geom.P(0, 20), geom.V(0, -20), geom.V(0, 1)},
		{"from left", geom.P(-20, 0), geom.V(20, 0), geom.V(-1, 0)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			hit, ok := c.IntersectWith(geom.NewSegment(tc.from, tc.stride))
			require.True(t, ok)
			assert.InDelta(t, 0.5, hit.Param, eps)
			assert.InDelta(t, tc.normal.X, hit.Normal.X, eps)
			assert.InDelta(t, tc.normal.Y, hit.Normal.Y, eps)
		})
	}
}

func TestInsideWindingNormalsPointInward(t *testing.T) {
	arena := geom.NewRect(geom.P(-300, 0), geom.P(300, 600))
	c := FromRect(arena, Inside)

	cases := []struct {
		name   string
		stride geom.Vec
		normal geom.Vec
	}{
		{"through floor", geom.V(0, -400), geom.V(0, 1)},
		{"through ceiling", geom.V(0, 400), geom.V(0, -1)},
		{"through right wall", geom.V(400, 0), geom.V(-1, 0)},
		{"through left wall", geom.V(-400, 0), geom.V(1, 0)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			hit, ok := c.IntersectWith(geom.NewSegment(geom.P(0, 300), tc.stride))
			require.True(t, ok)
			assert.InDelta(t, tc.normal.X, hit.Normal.X, eps)
			assert.InDelta(t, tc.normal.Y, hit.Normal.Y, eps)

			// The normal faces back into the arena.
			assert.True(t, arena.Contains(hit.Point.Add(hit.Normal)))
		})
	}
}

func TestBackFacesAreCulled(t *testing.T) {
	r := geom.NewRect(geom.P(-10, -10), geom.P(10, 10))

	// Leaving an outside-wound rect from within never collides.
	out := FromRect(r, Outside)
	_, ok := out.IntersectWith(geom.NewSegment(geom.P(0, 0), geom.V(0, 50)))
	assert.False(t, ok)

	// Approaching an inside-wound rect from outside never collides.
	in := FromRect(r, Inside)
	_, ok = in.IntersectWith(geom.NewSegment(geom.P(0, -50), geom.V(0, 40)))
	assert.False(t, ok)
}

func TestGrazingMotionIsIgnored(t *testing.T) {
	edge := geom.SegmentBetween(geom.P(-1, 5), geom.P(1, 5))
	c := FromSegment(edge)

	_, ok := c.IntersectWith(geom.NewSegment(geom.P(-3, 5), geom.V(6, 0)))
	assert.False(t, ok)
}

func TestStartOnEdgeIsNotAHit(t *testing.T) {
	edge := geom.SegmentBetween(geom.P(-1, 5), geom.P(1, 5))
	c := FromSegment(edge)

	// Already resting on the edge; the crossing is at parameter 0.
	_, ok := c.IntersectWith(geom.NewSegment(geom.P(0, 5), geom.V(0, 10)))
	assert.False(t, ok)
}

func TestEarliestEdgeWins(t *testing.T) {
	near := geom.SegmentBetween(geom.P(-1, 2), geom.P(1, 2))
	far := geom.SegmentBetween(geom.P(-1, 8), geom.P(1, 8))
	c := New(far, near)

	hit, ok := c.IntersectWith(geom.NewSegment(geom.P(0, 0), geom.V(0, 10)))
	require.True(t, ok)
	assert.InDelta(t, 0.2, hit.Param, eps)
}

func TestMissesShortMotion(t *testing.T) {
	block := geom.NewRect(geom.P(-1, 5), geom.P(1, 7))
	c := FromRect(block, Outside)

	_, ok := c.IntersectWith(geom.NewSegment(geom.P(0, 0), geom.V(0, 4)))
	assert.False(t, ok)
}

func TestDegenerateEdgeIsSkipped(t *testing.T) {
	c := New(geom.NewSegment(geom.P(0, 5), geom.Vec{}))
	_, ok := c.IntersectWith(geom.NewSegment(geom.P(0, 0), geom.V(0, 10)))
	assert.False(t, ok)
}

func TestEdgesReturnsCopy(t *testing.T) {
	c := FromRect(geom.NewRect(geom.P(0, 0), geom.P(1, 1)), Inside)
	edges := c.Edges()
	require.Len(t, edges, 4)
	edges[0] = geom.Segment{}
	assert.NotEqual(t, geom.Segment{}, c.Edges()[0])
}
