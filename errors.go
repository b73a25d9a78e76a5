package cycleroute

import (
	"github.com/pkg/errors"
)

var (
	// ErrNoWays is returned when there is nothing to build a graph from
	ErrNoWays = errors.New("no ways provided")
	// ErrNoWaypoints is returned when an operation needs at least one waypoint
	ErrNoWaypoints = errors.New("no waypoints")
	// ErrMalformedGeometry is returned for lines with less than two points or non-finite coordinates
	ErrMalformedGeometry = errors.New("malformed geometry")
	// ErrNonFiniteValue is returned when NaN or Inf would leak into the matrices
	ErrNonFiniteValue = errors.New("non-finite value")
	// ErrInvalidMatrix is returned for non-square matrices or negative costs
	ErrInvalidMatrix = errors.New("invalid matrix")
	// ErrWaypointOutOfRange is returned for waypoint indices outside of the graph
	ErrWaypointOutOfRange = errors.New("waypoint index out of range")
	// ErrInvalidCoefficients is returned for coefficient lists which can't serve the cost model
	ErrInvalidCoefficients = errors.New("invalid coefficients")
	// ErrMultiplierTooSmall is returned when the unconnected multiplier does not exceed every coefficient
	ErrMultiplierTooSmall = errors.New("unconnected multiplier must exceed every coefficient")
	// ErrNoRoute is returned by ConnectedRouter when waypoints are not joined by real segments
	ErrNoRoute = errors.New("no route")
)
