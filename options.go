package cycleroute

import (
	"go.uber.org/zap"
)

// WithCoefficients sets ordered (best to worst) traversal coefficients
func WithCoefficients(coefficients []float64) func(*Processor) {
	return func(processor *Processor) {
		processor.coefficients = coefficients
	}
}

// WithUnconnectedMultiplier sets penalty applied to straight line distance between waypoints which are not joined by a segment
func WithUnconnectedMultiplier(multiplier float64) func(*Processor) {
	return func(processor *Processor) {
		processor.unconnectedMultiplier = multiplier
	}
}

// WithVehicle sets vehicle used for vehicle-scoped tags such as `oneway:bicycle`
func WithVehicle(vehicle string) func(*Processor) {
	return func(processor *Processor) {
		processor.vehicle = vehicle
	}
}

func WithMetric(metric Metric) func(*Processor) {
	return func(processor *Processor) {
		if metric == nil {
			metric = PlanarMetric{}
		}
		processor.metric = metric
	}
}

// WithWorkers sets number of goroutines for segmenting and matrix building. Non-positive value means runtime.NumCPU()
func WithWorkers(workers int) func(*Processor) {
	return func(processor *Processor) {
		processor.workers = workers
	}
}

func WithTolerance(tolerance float64) func(*Processor) {
	return func(processor *Processor) {
		processor.tolerance = tolerance
	}
}

func WithLogger(logger *zap.Logger) func(*Processor) {
	return func(processor *Processor) {
		if logger == nil {
			logger = zap.NewNop()
		}
		processor.logger = logger
	}
}
