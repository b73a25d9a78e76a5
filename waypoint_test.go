package cycleroute

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
)

func TestWaypointIndexOrder(t *testing.T) {
	segments := []Segment{
		{Geom: orb.LineString{{1, 1}, {2, 2}}},
		{Geom: orb.LineString{{3, 3}, {1, 1}}},
		{Geom: orb.LineString{{2, 2}, {4, 4}}},
	}
	index := NewWaypointIndex(segments)
	assert.Equal(t, []orb.Point{{1, 1}, {2, 2}, {3, 3}, {4, 4}}, index.Waypoints())
	assert.Equal(t, 4, index.Len())

	idx, ok := index.Index(orb.Point{3, 3})
	assert.True(t, ok)
	assert.Equal(t, 2, idx)

	_, ok = index.Index(orb.Point{5, 5})
	assert.False(t, ok)
}

func TestWaypointIndexStartSortsBeforeEnd(t *testing.T) {
	// End of the first segment and start of the second one are different points: end goes first
	segments := []Segment{
		{Geom: orb.LineString{{0, 0}, {1, 0}}},
		{Geom: orb.LineString{{5, 5}, {0, 0}}},
	}
	index := NewWaypointIndex(segments)
	assert.Equal(t, []orb.Point{{0, 0}, {1, 0}, {5, 5}}, index.Waypoints())
}

func TestWaypointIndexConnections(t *testing.T) {
	segments := []Segment{
		{Geom: orb.LineString{{0, 0}, {1, 0}}},
		{Geom: orb.LineString{{0, 0}, {0.5, 1}, {1, 0}}},
		{Geom: orb.LineString{{1, 0}, {0, 0}}},
	}
	index := NewWaypointIndex(segments)
	assert.Equal(t, []int{0, 1}, index.Connections(orb.Point{0, 0}, orb.Point{1, 0}))
	assert.Equal(t, []int{2}, index.Connections(orb.Point{1, 0}, orb.Point{0, 0}))
	connections := index.Connections(orb.Point{0, 0}, orb.Point{7, 7})
	assert.NotNil(t, connections)
	assert.Empty(t, connections)
}
