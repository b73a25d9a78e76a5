package cycleroute

import (
	"sort"

	"github.com/paulmach/orb"
)

// connectionKey is an ordered pair of waypoints: segment runs natively from the first to the second one
type connectionKey [2]orb.Point

// WaypointIndex holds distinct segment endpoints and segments connecting them
type WaypointIndex struct {
	waypoints   []orb.Point
	indices     map[orb.Point]int
	connections map[connectionKey][]int
}

// NewWaypointIndex extracts waypoints from segments ends.
// Waypoints are ordered by first appearance: start of segment i sorts before its end, and end of segment i sorts before segment i+1.
func NewWaypointIndex(segments []Segment) *WaypointIndex {
	// order key: 2*i for start of i-th segment, 2*i+1 for its end
	orderKeys := make(map[orb.Point]int, 2*len(segments))
	connections := make(map[connectionKey][]int, len(segments))
	register := func(pt orb.Point, key int) {
		if _, ok := orderKeys[pt]; !ok {
			orderKeys[pt] = key
		}
	}
	for i := range segments {
		line := segments[i].Geom
		start, end := line[0], line[len(line)-1]
		register(start, 2*i)
		register(end, 2*i+1)
		key := connectionKey{start, end}
		connections[key] = append(connections[key], i)
	}

	waypoints := make([]orb.Point, 0, len(orderKeys))
	for pt := range orderKeys {
		waypoints = append(waypoints, pt)
	}
	sort.Slice(waypoints, func(i, j int) bool {
		return orderKeys[waypoints[i]] < orderKeys[waypoints[j]]
	})
	indices := make(map[orb.Point]int, len(waypoints))
	for i, pt := range waypoints {
		indices[pt] = i
	}
	return &WaypointIndex{
		waypoints:   waypoints,
		indices:     indices,
		connections: connections,
	}
}

// Waypoints returns ordered distinct waypoints. Returned slice must not be modified
func (wi *WaypointIndex) Waypoints() []orb.Point {
	return wi.waypoints
}

// Len returns number of waypoints
func (wi *WaypointIndex) Len() int {
	return len(wi.waypoints)
}

// Index returns index of waypoint with exactly given coordinates
func (wi *WaypointIndex) Index(pt orb.Point) (int, bool) {
	idx, ok := wi.indices[pt]
	return idx, ok
}

// Connections returns indices of segments running from a to b (empty if there are none)
func (wi *WaypointIndex) Connections(a, b orb.Point) []int {
	found := wi.connections[connectionKey{a, b}]
	if len(found) == 0 {
		return []int{}
	}
	return found
}
