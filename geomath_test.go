package cycleroute

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntersectSegmentsCrossing(t *testing.T) {
	p1, p2 := orb.Point{0, 0}, orb.Point{2, 2}
	q1, q2 := orb.Point{0, 2}, orb.Point{2, 0}

	kind, pt, _ := intersectSegments(p1, p2, q1, q2)
	require.Equal(t, INTERSECTION_POINT, kind)
	assert.InDelta(t, 1.0, pt[0], 1e-12)
	assert.InDelta(t, 1.0, pt[1], 1e-12)

	// Every argument order must give bit-identical point
	orders := [][4]orb.Point{
		{q1, q2, p1, p2},
		{p2, p1, q1, q2},
		{q2, q1, p2, p1},
	}
	for _, order := range orders {
		k, other, _ := intersectSegments(order[0], order[1], order[2], order[3])
		assert.Equal(t, kind, k)
		assert.Equal(t, pt, other)
	}
}

func TestIntersectSegmentsNonTrivialCrossing(t *testing.T) {
	p1, p2 := orb.Point{0.1, 0.3}, orb.Point{7.7, 2.9}
	q1, q2 := orb.Point{1.3, 4.1}, orb.Point{5.9, -0.7}
	kind, a, _ := intersectSegments(p1, p2, q1, q2)
	require.Equal(t, INTERSECTION_POINT, kind)
	_, b, _ := intersectSegments(q2, q1, p2, p1)
	assert.Equal(t, a, b)
}

func TestIntersectSegmentsTouching(t *testing.T) {
	kind, pt, _ := intersectSegments(orb.Point{0, 0}, orb.Point{3, 0}, orb.Point{3, 0}, orb.Point{3, 4})
	assert.Equal(t, INTERSECTION_POINT, kind)
	assert.Equal(t, orb.Point{3, 0}, pt)

	// T-junction: end of the second segment lies inside of the first one
	kind, pt, _ = intersectSegments(orb.Point{0, 0}, orb.Point{4, 0}, orb.Point{2, 3}, orb.Point{2, 0})
	assert.Equal(t, INTERSECTION_POINT, kind)
	assert.Equal(t, orb.Point{2, 0}, pt)
}

func TestIntersectSegmentsNone(t *testing.T) {
	kind, _, _ := intersectSegments(orb.Point{0, 0}, orb.Point{1, 0}, orb.Point{0, 1}, orb.Point{1, 1})
	assert.Equal(t, INTERSECTION_NONE, kind)

	kind, _, _ = intersectSegments(orb.Point{0, 0}, orb.Point{1, 0}, orb.Point{2, 0}, orb.Point{3, 0})
	assert.Equal(t, INTERSECTION_NONE, kind)
}

func TestIntersectSegmentsOverlap(t *testing.T) {
	kind, start, end := intersectSegments(orb.Point{0, 0}, orb.Point{4, 0}, orb.Point{3, 0}, orb.Point{1, 0})
	require.Equal(t, INTERSECTION_OVERLAP, kind)
	assert.Equal(t, orb.Point{1, 0}, start)
	assert.Equal(t, orb.Point{3, 0}, end)

	// Collinear segments sharing only an end
	kind, start, _ = intersectSegments(orb.Point{0, 0}, orb.Point{0, 2}, orb.Point{0, 2}, orb.Point{0, 5})
	assert.Equal(t, INTERSECTION_POINT, kind)
	assert.Equal(t, orb.Point{0, 2}, start)
}

func TestBreakPointsOverlapAbsorbsPoints(t *testing.T) {
	line := orb.LineString{{0, 0}, {4, 0}}
	other := orb.LineString{{1, 0}, {3, 0}, {3, 2}}
	points := breakPoints(line, other, DefaultTolerance)
	assert.Equal(t, []orb.Point{{1, 0}, {3, 0}}, points)
}

func TestBreakPointsOverlapChain(t *testing.T) {
	line := orb.LineString{{0, 0}, {2, 0}, {4, 0}}
	other := orb.LineString{{1, 0}, {3, 0}}
	points := breakPoints(line, other, DefaultTolerance)
	assert.Equal(t, []orb.Point{{1, 0}, {3, 0}}, points)
}

func TestBreakPointsNoIntersection(t *testing.T) {
	points := breakPoints(orb.LineString{{0, 0}, {1, 0}}, orb.LineString{{0, 1}, {1, 1}}, DefaultTolerance)
	assert.Empty(t, points)
}

func TestSplitLine(t *testing.T) {
	line := orb.LineString{{0, 0}, {2, 0}, {4, 0}}

	left, right, err := splitLine(line, orb.Point{2, 0}, DefaultTolerance)
	require.NoError(t, err)
	assert.Equal(t, orb.LineString{{0, 0}, {2, 0}}, left)
	assert.Equal(t, orb.LineString{{2, 0}, {4, 0}}, right)

	left, right, err = splitLine(line, orb.Point{3, 0}, DefaultTolerance)
	require.NoError(t, err)
	assert.Equal(t, orb.LineString{{0, 0}, {2, 0}, {3, 0}}, left)
	assert.Equal(t, orb.LineString{{3, 0}, {4, 0}}, right)

	_, _, err = splitLine(line, orb.Point{0, 0}, DefaultTolerance)
	assert.ErrorIs(t, err, errSplitMissed)

	_, _, err = splitLine(line, orb.Point{1, 1}, DefaultTolerance)
	assert.ErrorIs(t, err, errSplitMissed)
}

func TestFilterInside(t *testing.T) {
	line := orb.LineString{{0, 0}, {4, 0}}
	points := []orb.Point{{3, 0}, {0, 0}, {1, 0}, {3, 0}, {1, 1}, {4, 0}}
	assert.Equal(t, []orb.Point{{3, 0}, {1, 0}}, filterInside(line, points, DefaultTolerance))
}

func TestReverseAndCopyLine(t *testing.T) {
	line := orb.LineString{{0, 0}, {1, 1}, {2, 0}}
	reversed := reverseLine(line)
	assert.Equal(t, orb.LineString{{2, 0}, {1, 1}, {0, 0}}, reversed)

	cp := copyLine(line)
	cp[0] = orb.Point{9, 9}
	assert.Equal(t, orb.Point{0, 0}, line[0])
}

func TestDistanceToSegment(t *testing.T) {
	assert.InDelta(t, 1.0, distanceToSegment(orb.Point{1, 1}, orb.Point{0, 0}, orb.Point{2, 0}), 1e-12)
	assert.InDelta(t, 5.0, distanceToSegment(orb.Point{5, 4}, orb.Point{0, 0}, orb.Point{2, 0}), 1e-12)
	assert.InDelta(t, 5.0, distanceToSegment(orb.Point{3, 4}, orb.Point{0, 0}, orb.Point{0, 0}), 1e-12)
}
