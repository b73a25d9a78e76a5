package cycleroute

import (
	"math"

	"github.com/paulmach/osm"
	"github.com/pkg/errors"
)

// DefaultCoefficients are ordered from the most cycle friendly to impassable
var DefaultCoefficients = []float64{1, 2, 10, 100}

// CoefficientCalculator maps way tags and travel direction to a traversal coefficient.
// Coefficient is multiplied by segment length to get directed traversal cost.
type CoefficientCalculator struct {
	coefficients []float64
}

// NewCoefficientCalculator returns calculator for given ordered (best to worst) coefficients.
// At least three coefficients are needed: cycle friendly, cycle permitted and generic passable road;
// the last one is used for impassable ways.
func NewCoefficientCalculator(coefficients []float64) (*CoefficientCalculator, error) {
	if len(coefficients) < 3 {
		return nil, errors.Wrapf(ErrInvalidCoefficients, "need at least 3 coefficients, got %d", len(coefficients))
	}
	for i, c := range coefficients {
		if math.IsNaN(c) || math.IsInf(c, 0) || c < 0 {
			return nil, errors.Wrapf(ErrInvalidCoefficients, "coefficient #%d is %f", i, c)
		}
	}
	cp := make([]float64, len(coefficients))
	copy(cp, coefficients)
	return &CoefficientCalculator{coefficients: cp}, nil
}

// Coefficients returns copy of the ordered coefficients
func (calc *CoefficientCalculator) Coefficients() []float64 {
	cp := make([]float64, len(calc.coefficients))
	copy(cp, calc.coefficients)
	return cp
}

func (calc *CoefficientCalculator) best() float64 {
	return calc.coefficients[0]
}

func (calc *CoefficientCalculator) worst() float64 {
	return calc.coefficients[len(calc.coefficients)-1]
}

// Coefficient returns traversal coefficient for given tags, vehicle and direction. First matching rule wins:
//
//	dedicated `cycleway` -> best
//	`oneway:<vehicle>` (or `oneway`) is true and direction is reverse -> worst
//	`bicycle` is no/false/0 -> worst
//	`bicycle` is yes/designated -> best, permitted -> second, anything else -> third
func (calc *CoefficientCalculator) Coefficient(tags osm.Tags, vehicle string, direction Direction) float64 {
	if tags.Find(TAG_CYCLEWAY) != "" {
		return calc.best()
	}
	oneway := isTrueTag(vehicleTag(tags, TAG_ONEWAY, vehicle))
	if oneway && direction == DIRECTION_REVERSE {
		return calc.worst()
	}
	bicycle := tags.Find(TAG_BICYCLE)
	if isFalseTag(bicycle) {
		return calc.worst()
	}
	if rank, ok := bicycleAccessRanks[bicycle]; ok {
		return calc.coefficients[rank]
	}
	return calc.coefficients[2]
}

// WayCoefficients returns forward and reverse coefficients for every way
func (calc *CoefficientCalculator) WayCoefficients(ways []Way, vehicle string) (forward []float64, reverse []float64) {
	forward = make([]float64, len(ways))
	reverse = make([]float64, len(ways))
	for i := range ways {
		forward[i] = calc.Coefficient(ways[i].Tags, vehicle, DIRECTION_FORWARD)
		reverse[i] = calc.Coefficient(ways[i].Tags, vehicle, DIRECTION_REVERSE)
	}
	return forward, reverse
}
