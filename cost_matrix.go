package cycleroute

import (
	"time"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// DefaultUnconnectedMultiplier is applied to straight line distance between waypoints which are not joined by any segment
const DefaultUnconnectedMultiplier = 1000.0

// ConnectionLookup returns indices of segments running natively from a to b
type ConnectionLookup interface {
	Connections(a, b orb.Point) []int
}

// Matrices are dense waypoint x waypoint matrices
type Matrices struct {
	// Distances between waypoints. Symmetric, zero diagonal
	Distances [][]float64
	// Costs of direct travel from i-th waypoint to j-th one. Zero diagonal
	Costs [][]float64
	// Connections holds directed geometry of the cheapest segment from i-th waypoint to j-th one; nil if there is no such segment
	Connections [][]orb.LineString
}

// MatrixBuilder combines segment lengths and coefficients into cost matrix
type MatrixBuilder struct {
	metric  Metric
	workers int
	logger  *zap.Logger
}

// NewMatrixBuilder returns MatrixBuilder. Nil metric means PlanarMetric
func NewMatrixBuilder(metric Metric, workers int, logger *zap.Logger) *MatrixBuilder {
	if metric == nil {
		metric = PlanarMetric{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MatrixBuilder{
		metric:  metric,
		workers: workers,
		logger:  logger,
	}
}

type connectionCandidate struct {
	segment int
	reverse bool
	cost    float64
}

func validateMultiplier(multiplier float64, coefficients ...[]float64) error {
	if !isFinite(multiplier) || multiplier < 0 {
		return errors.Wrapf(ErrNonFiniteValue, "unconnected multiplier is %f", multiplier)
	}
	for _, list := range coefficients {
		for i, c := range list {
			if !isFinite(c) || c < 0 {
				return errors.Wrapf(ErrInvalidCoefficients, "coefficient #%d is %f", i, c)
			}
			if c >= multiplier {
				return errors.Wrapf(ErrMultiplierTooSmall, "coefficient #%d is %f, multiplier is %f", i, c, multiplier)
			}
		}
	}
	return nil
}

// segmentCosts returns directed traversal cost for every segment: coefficient of the parent way multiplied by segment length
func (mb *MatrixBuilder) segmentCosts(segments []Segment, coefficients []float64) ([]float64, error) {
	costs := make([]float64, len(segments))
	for i := range segments {
		wayIndex := segments[i].WayIndex
		if wayIndex < 0 || wayIndex >= len(coefficients) {
			return nil, errors.Wrapf(ErrWaypointOutOfRange, "segment #%d refers to way #%d, but there are %d coefficients", i, wayIndex, len(coefficients))
		}
		costs[i] = coefficients[wayIndex] * mb.metric.Length(segments[i].Geom)
		if !isFinite(costs[i]) {
			return nil, errors.Wrapf(ErrNonFiniteValue, "cost of segment #%d", i)
		}
	}
	return costs, nil
}

// Build returns distance, cost and connection geometry matrices for given waypoints.
// Forward and reverse coefficients are indexed by way index of segment.
func (mb *MatrixBuilder) Build(waypoints []orb.Point, segments []Segment, forwardCoefficients, reverseCoefficients []float64, connections ConnectionLookup, multiplier float64) (*Matrices, error) {
	if len(waypoints) == 0 {
		return nil, ErrNoWaypoints
	}
	if err := validateMultiplier(multiplier, forwardCoefficients, reverseCoefficients); err != nil {
		return nil, err
	}
	forwardCosts, err := mb.segmentCosts(segments, forwardCoefficients)
	if err != nil {
		return nil, errors.Wrap(err, "Can't evaluate forward costs")
	}
	reverseCosts, err := mb.segmentCosts(segments, reverseCoefficients)
	if err != nil {
		return nil, errors.Wrap(err, "Can't evaluate reverse costs")
	}

	mb.logger.Info("Building cost matrix...", zap.Int("waypoints", len(waypoints)), zap.Int("segments", len(segments)))
	st := time.Now()

	n := len(waypoints)
	result := &Matrices{
		Distances:   make([][]float64, n),
		Costs:       make([][]float64, n),
		Connections: make([][]orb.LineString, n),
	}
	rowErrors := make([]error, n)
	runJobs(n, mb.workers, func(i int) {
		distancesRow := make([]float64, n)
		costsRow := make([]float64, n)
		connectionsRow := make([]orb.LineString, n)
		pointA := waypoints[i]
		candidates := make([]connectionCandidate, 0, 4)
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			pointB := waypoints[j]
			distance := mb.metric.Distance(pointA, pointB)
			if !isFinite(distance) {
				rowErrors[i] = errors.Wrapf(ErrNonFiniteValue, "distance between waypoints #%d and #%d", i, j)
				return
			}
			distancesRow[j] = distance

			candidates = candidates[:0]
			for _, segment := range connections.Connections(pointA, pointB) {
				candidates = append(candidates, connectionCandidate{segment: segment, cost: forwardCosts[segment]})
			}
			for _, segment := range connections.Connections(pointB, pointA) {
				candidates = append(candidates, connectionCandidate{segment: segment, reverse: true, cost: reverseCosts[segment]})
			}
			if len(candidates) == 0 {
				costsRow[j] = distance * multiplier
				if !isFinite(costsRow[j]) {
					rowErrors[i] = errors.Wrapf(ErrNonFiniteValue, "unconnected cost between waypoints #%d and #%d", i, j)
					return
				}
				continue
			}
			best := candidates[0]
			for _, candidate := range candidates[1:] {
				if candidate.cost < best.cost {
					best = candidate
				}
			}
			costsRow[j] = best.cost
			if best.reverse {
				connectionsRow[j] = reverseLine(segments[best.segment].Geom)
			} else {
				connectionsRow[j] = copyLine(segments[best.segment].Geom)
			}
		}
		result.Distances[i] = distancesRow
		result.Costs[i] = costsRow
		result.Connections[i] = connectionsRow
	})
	for _, err := range rowErrors {
		if err != nil {
			return nil, err
		}
	}

	mb.logger.Info("Cost matrix done", zap.Duration("elapsed", time.Since(st)))
	return result, nil
}
