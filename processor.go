package cycleroute

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Processor turns tagged ways into a routable Graph
type Processor struct {
	coefficients          []float64
	unconnectedMultiplier float64
	vehicle               string
	metric                Metric
	workers               int
	tolerance             float64
	logger                *zap.Logger
}

func (processor *Processor) String() string {
	return fmt.Sprintf(`
Processor parameters:
	coefficients: %v
	unconnected_multiplier: %f
	vehicle: '%s'
	metric: '%s'
	workers: %d
	tolerance: %g
	`,
		processor.coefficients,
		processor.unconnectedMultiplier,
		processor.vehicle,
		processor.metric,
		processor.workers,
		processor.tolerance,
	)
}

// NewProcessor returns Processor with default cost model (DefaultCoefficients, DefaultUnconnectedMultiplier, bicycle, planar metric)
func NewProcessor(options ...func(*Processor)) *Processor {
	processor := &Processor{
		coefficients:          DefaultCoefficients,
		unconnectedMultiplier: DefaultUnconnectedMultiplier,
		vehicle:               VEHICLE_BICYCLE,
		metric:                PlanarMetric{},
		workers:               0,
		tolerance:             DefaultTolerance,
		logger:                zap.NewNop(),
	}
	for _, option := range options {
		option(processor)
	}
	return processor
}

// Process segments ways, extracts waypoints and builds cost, distance and connection matrices
func (processor *Processor) Process(ways []Way) (*Graph, error) {
	if len(ways) == 0 {
		return nil, ErrNoWays
	}
	calculator, err := NewCoefficientCalculator(processor.coefficients)
	if err != nil {
		return nil, errors.Wrap(err, "Can't prepare cost model")
	}
	if err := validateMultiplier(processor.unconnectedMultiplier, calculator.Coefficients()); err != nil {
		return nil, errors.Wrap(err, "Can't prepare cost model")
	}

	st := time.Now()
	processor.logger.Info("Processing ways...", zap.Int("ways", len(ways)))

	segments, err := NewSegmenter(processor.tolerance, processor.workers, processor.logger).Segment(ways)
	if err != nil {
		return nil, errors.Wrap(err, "Can't segment ways")
	}

	index := NewWaypointIndex(segments)
	if index.Len() == 0 {
		return nil, ErrNoWaypoints
	}
	processor.logger.Info("Waypoints have been extracted", zap.Int("waypoints", index.Len()))

	forward, reverse := calculator.WayCoefficients(ways, processor.vehicle)
	matrices, err := NewMatrixBuilder(processor.metric, processor.workers, processor.logger).Build(index.Waypoints(), segments, forward, reverse, index, processor.unconnectedMultiplier)
	if err != nil {
		return nil, errors.Wrap(err, "Can't build matrices")
	}

	processor.logger.Info("Processing done", zap.Duration("elapsed", time.Since(st)))
	return &Graph{
		Waypoints:   index.Waypoints(),
		Segments:    segments,
		Distances:   matrices.Distances,
		Costs:       matrices.Costs,
		Connections: matrices.Connections,
	}, nil
}
