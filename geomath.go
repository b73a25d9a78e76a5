package cycleroute

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

var errSplitMissed = errors.New("split point is not inside of the line")

// cross returns z-component of (b - a) x (c - a)
func cross(a, b, c orb.Point) float64 {
	return (b[0]-a[0])*(c[1]-a[1]) - (b[1]-a[1])*(c[0]-a[0])
}

func sign(v float64) int {
	if v > 0 {
		return 1
	}
	if v < 0 {
		return -1
	}
	return 0
}

func lessPoint(a, b orb.Point) bool {
	if a[0] != b[0] {
		return a[0] < b[0]
	}
	return a[1] < b[1]
}

// canonicalSegments orders segments and their endpoints so intersection of (p, q) and (q, p) gives bit-identical results
func canonicalSegments(p1, p2, q1, q2 orb.Point) (orb.Point, orb.Point, orb.Point, orb.Point) {
	if lessPoint(p2, p1) {
		p1, p2 = p2, p1
	}
	if lessPoint(q2, q1) {
		q1, q2 = q2, q1
	}
	if lessPoint(q1, p1) || (q1 == p1 && lessPoint(q2, p2)) {
		p1, p2, q1, q2 = q1, q2, p1, p2
	}
	return p1, p2, q1, q2
}

// withinBox checks if c lies in bounding box of segment (a, b). Use it for collinear points only
func withinBox(a, b, c orb.Point) bool {
	return math.Min(a[0], b[0]) <= c[0] && c[0] <= math.Max(a[0], b[0]) &&
		math.Min(a[1], b[1]) <= c[1] && c[1] <= math.Max(a[1], b[1])
}

type segmentIntersectionKind uint16

const (
	INTERSECTION_NONE = segmentIntersectionKind(iota)
	INTERSECTION_POINT
	INTERSECTION_OVERLAP
)

// intersectSegments returns intersection of two straight segments (p1, p2) and (q1, q2).
// For INTERSECTION_POINT first returned point is the intersection, for INTERSECTION_OVERLAP both points are ends of shared part.
// Shared ends are always taken from the input points so they stay bit-identical.
// Note: Euclidean space
func intersectSegments(p1, p2, q1, q2 orb.Point) (segmentIntersectionKind, orb.Point, orb.Point) {
	p1, p2, q1, q2 = canonicalSegments(p1, p2, q1, q2)

	d1 := cross(q1, q2, p1)
	d2 := cross(q1, q2, p2)
	d3 := cross(p1, p2, q1)
	d4 := cross(p1, p2, q2)

	if d1 == 0 && d2 == 0 && d3 == 0 && d4 == 0 {
		return intersectCollinear(p1, p2, q1, q2)
	}

	s1, s2, s3, s4 := sign(d1), sign(d2), sign(d3), sign(d4)
	if s1*s2 < 0 && s3*s4 < 0 {
		// Proper crossing
		t := d1 / (d1 - d2)
		return INTERSECTION_POINT, orb.Point{p1[0] + t*(p2[0]-p1[0]), p1[1] + t*(p2[1]-p1[1])}, orb.Point{}
	}
	// Touching: some endpoint lies on the other segment
	if s1 == 0 && withinBox(q1, q2, p1) {
		return INTERSECTION_POINT, p1, orb.Point{}
	}
	if s2 == 0 && withinBox(q1, q2, p2) {
		return INTERSECTION_POINT, p2, orb.Point{}
	}
	if s3 == 0 && withinBox(p1, p2, q1) {
		return INTERSECTION_POINT, q1, orb.Point{}
	}
	if s4 == 0 && withinBox(p1, p2, q2) {
		return INTERSECTION_POINT, q2, orb.Point{}
	}
	return INTERSECTION_NONE, orb.Point{}, orb.Point{}
}

func intersectCollinear(p1, p2, q1, q2 orb.Point) (segmentIntersectionKind, orb.Point, orb.Point) {
	// Project onto the dominant axis of the first segment
	axis := 0
	if math.Abs(p2[1]-p1[1]) > math.Abs(p2[0]-p1[0]) {
		axis = 1
	}
	if p1 == p2 {
		if q1 == q2 {
			if p1 == q1 {
				return INTERSECTION_POINT, p1, orb.Point{}
			}
			return INTERSECTION_NONE, orb.Point{}, orb.Point{}
		}
		if math.Abs(q2[1]-q1[1]) > math.Abs(q2[0]-q1[0]) {
			axis = 1
		} else {
			axis = 0
		}
	}
	pMin, pMax := p1, p2
	if pMax[axis] < pMin[axis] {
		pMin, pMax = pMax, pMin
	}
	qMin, qMax := q1, q2
	if qMax[axis] < qMin[axis] {
		qMin, qMax = qMax, qMin
	}
	start := pMin
	if qMin[axis] > start[axis] {
		start = qMin
	}
	end := pMax
	if qMax[axis] < end[axis] {
		end = qMax
	}
	if start[axis] > end[axis] {
		return INTERSECTION_NONE, orb.Point{}, orb.Point{}
	}
	if start == end || start[axis] == end[axis] {
		return INTERSECTION_POINT, start, orb.Point{}
	}
	return INTERSECTION_OVERLAP, start, end
}

func edgesBoxesIntersect(a1, a2, b1, b2 orb.Point) bool {
	return math.Max(a1[0], a2[0]) >= math.Min(b1[0], b2[0]) &&
		math.Max(b1[0], b2[0]) >= math.Min(a1[0], a2[0]) &&
		math.Max(a1[1], a2[1]) >= math.Min(b1[1], b2[1]) &&
		math.Max(b1[1], b2[1]) >= math.Min(a1[1], a2[1])
}

// linesIntersection returns crossing/touching points and collinear shared parts of two lines
func linesIntersection(a, b orb.LineString) ([]orb.Point, [][2]orb.Point) {
	var points []orb.Point
	var overlaps [][2]orb.Point
	for i := 1; i < len(a); i++ {
		for j := 1; j < len(b); j++ {
			if !edgesBoxesIntersect(a[i-1], a[i], b[j-1], b[j]) {
				continue
			}
			kind, start, end := intersectSegments(a[i-1], a[i], b[j-1], b[j])
			switch kind {
			case INTERSECTION_POINT:
				points = append(points, start)
			case INTERSECTION_OVERLAP:
				overlaps = append(overlaps, [2]orb.Point{start, end})
			}
		}
	}
	return points, overlaps
}

// breakPoints reduces intersection of two lines to the points where the first one should be split.
// A point intersection contributes itself, shared (overlapping) parts are merged into chains which contribute their ends.
// Points lying on the shared parts are absorbed by them.
func breakPoints(line, other orb.LineString, tolerance float64) []orb.Point {
	points, overlaps := linesIntersection(line, other)
	if len(points) == 0 && len(overlaps) == 0 {
		return nil
	}

	result := make([]orb.Point, 0, len(points))
	seen := make(map[orb.Point]struct{}, len(points))
	add := func(pt orb.Point) {
		if _, ok := seen[pt]; ok {
			return
		}
		seen[pt] = struct{}{}
		result = append(result, pt)
	}

	if len(overlaps) > 0 {
		pieces := make(map[[2]orb.Point]struct{}, len(overlaps))
		degree := make(map[orb.Point]int, 2*len(overlaps))
		order := make([]orb.Point, 0, 2*len(overlaps))
		for _, piece := range overlaps {
			key := piece
			if lessPoint(key[1], key[0]) {
				key[0], key[1] = key[1], key[0]
			}
			if _, ok := pieces[key]; ok {
				continue
			}
			pieces[key] = struct{}{}
			for _, pt := range key {
				if _, ok := degree[pt]; !ok {
					order = append(order, pt)
				}
				degree[pt]++
			}
		}
		for _, pt := range order {
			if degree[pt] != 2 {
				add(pt)
			}
		}
		for _, pt := range points {
			absorbed := false
			for _, piece := range overlaps {
				if distanceToSegment(pt, piece[0], piece[1]) <= tolerance {
					absorbed = true
					break
				}
			}
			if !absorbed {
				add(pt)
			}
		}
		return result
	}

	for _, pt := range points {
		add(pt)
	}
	return result
}

// distanceToSegment returns Euclidean distance between point and segment (a, b)
func distanceToSegment(pt, a, b orb.Point) float64 {
	dx := b[0] - a[0]
	dy := b[1] - a[1]
	lengthSq := dx*dx + dy*dy
	if lengthSq == 0 {
		return findDistance(pt, a)
	}
	t := ((pt[0]-a[0])*dx + (pt[1]-a[1])*dy) / lengthSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return findDistance(pt, orb.Point{a[0] + t*dx, a[1] + t*dy})
}

// findDistance returns distance between two points (assuming they are Euclidean: Lon == X, Lat == Y)
func findDistance(p, q orb.Point) float64 {
	xdistance := p[0] - q[0]
	ydistance := p[1] - q[1]
	return math.Sqrt(xdistance*xdistance + ydistance*ydistance)
}

// isStrictlyInside checks if point lies on the line within tolerance but is not one of its ends
func isStrictlyInside(line orb.LineString, pt orb.Point, tolerance float64) bool {
	if len(line) < 2 {
		return false
	}
	if pt == line[0] || pt == line[len(line)-1] {
		return false
	}
	for i := 1; i < len(line); i++ {
		if distanceToSegment(pt, line[i-1], line[i]) <= tolerance {
			return true
		}
	}
	return false
}

// filterInside returns points which lie strictly inside of the line. Keeps order and drops duplicates
func filterInside(line orb.LineString, points []orb.Point, tolerance float64) []orb.Point {
	result := make([]orb.Point, 0, len(points))
	seen := make(map[orb.Point]struct{}, len(points))
	for _, pt := range points {
		if _, ok := seen[pt]; ok {
			continue
		}
		if isStrictlyInside(line, pt, tolerance) {
			seen[pt] = struct{}{}
			result = append(result, pt)
		}
	}
	return result
}

// splitLine splits line into two pieces at given point. Point becomes the last point of the first piece and the first point of the second one.
// Returns errSplitMissed if point is not strictly inside of the line.
func splitLine(line orb.LineString, pt orb.Point, tolerance float64) (orb.LineString, orb.LineString, error) {
	if !isStrictlyInside(line, pt, tolerance) {
		return nil, nil, errSplitMissed
	}
	// Exact interior vertex
	for i := 1; i < len(line)-1; i++ {
		if line[i] == pt {
			return copyLine(line[:i+1]), copyLine(line[i:]), nil
		}
	}
	for i := 1; i < len(line); i++ {
		if distanceToSegment(pt, line[i-1], line[i]) > tolerance {
			continue
		}
		left := make(orb.LineString, 0, i+1)
		left = append(left, line[:i]...)
		left = append(left, pt)
		right := make(orb.LineString, 0, len(line)-i+1)
		right = append(right, pt)
		right = append(right, line[i:]...)
		if len(left) < 2 || len(right) < 2 {
			return nil, nil, errSplitMissed
		}
		return left, right, nil
	}
	return nil, nil, errSplitMissed
}

// reverseLine reverses order of points in given line. Returns new slice
func reverseLine(pts orb.LineString) orb.LineString {
	inputLen := len(pts)
	output := make(orb.LineString, inputLen)
	for i, n := range pts {
		j := inputLen - i - 1
		output[j] = n
	}
	return output
}

// copyLine returns copy of given line
func copyLine(pts orb.LineString) orb.LineString {
	output := make(orb.LineString, len(pts))
	copy(output, pts)
	return output
}
