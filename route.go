package cycleroute

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

// AssembleRoute converts path of waypoint indices into ordered directed geometries.
// Stored connection geometry is used where it exists, otherwise a straight two-point line is emitted.
func AssembleRoute(waypoints []orb.Point, geometries [][]orb.LineString, path []int) ([]orb.LineString, error) {
	n := len(waypoints)
	for _, idx := range path {
		if idx < 0 || idx >= n {
			return nil, errors.Wrapf(ErrWaypointOutOfRange, "waypoint %d, waypoints %d", idx, n)
		}
	}
	if len(geometries) != n {
		return nil, errors.Wrapf(ErrInvalidMatrix, "geometry matrix has %d rows, expected %d", len(geometries), n)
	}
	route := make([]orb.LineString, 0, len(path))
	for k := 1; k < len(path); k++ {
		from, to := path[k-1], path[k]
		var line orb.LineString
		if len(geometries[from]) == n {
			line = geometries[from][to]
		}
		if line == nil {
			route = append(route, orb.LineString{waypoints[from], waypoints[to]})
			continue
		}
		route = append(route, copyLine(line))
	}
	return route, nil
}

// FurthestPair returns indices of the cell with maximum value in the distance matrix.
// Ties are resolved in favor of the first cell in row-major order.
func FurthestPair(distances [][]float64) (int, int, error) {
	n := len(distances)
	if n == 0 {
		return 0, 0, ErrNoWaypoints
	}
	bestI, bestJ := 0, 0
	best := math.Inf(-1)
	for i, row := range distances {
		if len(row) != n {
			return 0, 0, errors.Wrapf(ErrInvalidMatrix, "row #%d has %d columns, expected %d", i, len(row), n)
		}
		for j, v := range row {
			if !isFinite(v) {
				return 0, 0, errors.Wrapf(ErrNonFiniteValue, "distance[%d][%d]", i, j)
			}
			if v > best {
				best = v
				bestI, bestJ = i, j
			}
		}
	}
	return bestI, bestJ, nil
}
