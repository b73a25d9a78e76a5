package cycleroute

import (
	"math"

	"github.com/pkg/errors"
)

// validateCosts checks that matrix is square, finite and non-negative
func validateCosts(costs [][]float64) error {
	n := len(costs)
	if n == 0 {
		return ErrNoWaypoints
	}
	for i, row := range costs {
		if len(row) != n {
			return errors.Wrapf(ErrInvalidMatrix, "row #%d has %d columns, expected %d", i, len(row), n)
		}
		for j, v := range row {
			if !isFinite(v) {
				return errors.Wrapf(ErrNonFiniteValue, "cost[%d][%d]", i, j)
			}
			if v < 0 {
				return errors.Wrapf(ErrInvalidMatrix, "cost[%d][%d] is negative: %f", i, j, v)
			}
		}
	}
	return nil
}

// ShortestPath returns the cheapest sequence of waypoint indices from start to end and its total cost.
// Dense array-scan Dijkstra: every pair of waypoints is treated as an edge.
// Among unsettled waypoints with equal tentative cost the lowest index is settled first.
// Equal cost relaxation replaces the parent: of two equally cheap paths the one through the later settled waypoint wins.
func ShortestPath(costs [][]float64, start, end int) ([]int, float64, error) {
	if err := validateCosts(costs); err != nil {
		return nil, 0, err
	}
	n := len(costs)
	if start < 0 || start >= n {
		return nil, 0, errors.Wrapf(ErrWaypointOutOfRange, "start %d, waypoints %d", start, n)
	}
	if end < 0 || end >= n {
		return nil, 0, errors.Wrapf(ErrWaypointOutOfRange, "end %d, waypoints %d", end, n)
	}
	if start == end {
		return []int{start}, 0, nil
	}

	dist := make([]float64, n)
	prev := make([]int, n)
	settled := make([]bool, n)
	for i := range dist {
		dist[i] = math.Inf(1)
		prev[i] = -1
	}
	dist[start] = 0

	for {
		current := -1
		for i := 0; i < n; i++ {
			if settled[i] || math.IsInf(dist[i], 1) {
				continue
			}
			if current == -1 || dist[i] < dist[current] {
				current = i
			}
		}
		if current == -1 {
			// Dense matrix always has finite edges, so this is unreachable with validated input
			return nil, 0, errors.Wrapf(ErrNoRoute, "from %d to %d", start, end)
		}
		settled[current] = true
		if current == end {
			break
		}
		row := costs[current]
		for next := 0; next < n; next++ {
			if settled[next] {
				continue
			}
			candidate := dist[current] + row[next]
			if candidate <= dist[next] {
				dist[next] = candidate
				prev[next] = current
			}
		}
	}

	path := []int{}
	for v := end; v != -1; v = prev[v] {
		path = append(path, v)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, dist[end], nil
}
