package cycleroute

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShortestPathCollinear(t *testing.T) {
	costs := [][]float64{
		{0, 2, 4},
		{2, 0, 2},
		{4, 2, 0},
	}
	path, cost, err := ShortestPath(costs, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, path)
	assert.Equal(t, 4.0, cost)
}

func TestShortestPathSameWaypoint(t *testing.T) {
	costs := [][]float64{
		{0, 1},
		{1, 0},
	}
	for x := range costs {
		path, cost, err := ShortestPath(costs, x, x)
		require.NoError(t, err)
		assert.Equal(t, []int{x}, path)
		assert.Equal(t, 0.0, cost)
	}
}

func TestShortestPathDirected(t *testing.T) {
	costs := [][]float64{
		{0, 1, 100, 100},
		{100, 0, 1, 100},
		{100, 100, 0, 1},
		{1, 100, 100, 0},
	}
	path, cost, err := ShortestPath(costs, 0, 3)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3}, path)
	assert.Equal(t, 3.0, cost)

	path, cost, err = ShortestPath(costs, 3, 0)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 0}, path)
	assert.Equal(t, 1.0, cost)
}

func TestShortestPathErrors(t *testing.T) {
	_, _, err := ShortestPath(nil, 0, 0)
	assert.ErrorIs(t, err, ErrNoWaypoints)

	_, _, err = ShortestPath([][]float64{{0, 1}, {1}}, 0, 1)
	assert.ErrorIs(t, err, ErrInvalidMatrix)

	_, _, err = ShortestPath([][]float64{{0, -1}, {1, 0}}, 0, 1)
	assert.ErrorIs(t, err, ErrInvalidMatrix)

	_, _, err = ShortestPath([][]float64{{0, math.NaN()}, {1, 0}}, 0, 1)
	assert.ErrorIs(t, err, ErrNonFiniteValue)

	_, _, err = ShortestPath([][]float64{{0, 1}, {1, 0}}, 0, 2)
	assert.ErrorIs(t, err, ErrWaypointOutOfRange)

	_, _, err = ShortestPath([][]float64{{0, 1}, {1, 0}}, -1, 1)
	assert.ErrorIs(t, err, ErrWaypointOutOfRange)
}
