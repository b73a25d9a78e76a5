package cycleroute

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/planar"
	"github.com/pkg/errors"
)

// Graph is a complete graph over waypoints: every ordered pair of waypoints has a finite cost
type Graph struct {
	Waypoints []orb.Point
	Segments  []Segment
	// Distances between waypoints (symmetric)
	Distances [][]float64
	// Costs of direct travel between waypoints (not symmetric)
	Costs [][]float64
	// Connections holds directed geometry of the cheapest real segment between waypoints; nil for unconnected pairs
	Connections [][]orb.LineString
}

// Path returns waypoint indices of the cheapest path between waypoints and its cost
func (graph *Graph) Path(start, end int) ([]int, float64, error) {
	return ShortestPath(graph.Costs, start, end)
}

// Assemble converts path of waypoint indices into ordered directed geometries
func (graph *Graph) Assemble(path []int) ([]orb.LineString, error) {
	return AssembleRoute(graph.Waypoints, graph.Connections, path)
}

// Route returns ordered directed geometries of the cheapest path between waypoints
func (graph *Graph) Route(start, end int) ([]orb.LineString, error) {
	path, _, err := graph.Path(start, end)
	if err != nil {
		return nil, errors.Wrap(err, "Can't find shortest path")
	}
	return graph.Assemble(path)
}

// NearestWaypoint returns index of waypoint closest to given point (planar). First one wins on ties
func (graph *Graph) NearestWaypoint(pt orb.Point) (int, error) {
	if len(graph.Waypoints) == 0 {
		return -1, ErrNoWaypoints
	}
	if !isFinitePoint(pt) {
		return -1, errors.Wrapf(ErrNonFiniteValue, "point %v", pt)
	}
	best := -1
	bestDistance := math.Inf(1)
	for i, wp := range graph.Waypoints {
		d := planar.DistanceSquared(pt, wp)
		if d < bestDistance {
			best = i
			bestDistance = d
		}
	}
	return best, nil
}

// RouteBetween snaps both points to the nearest waypoints and returns route between them
func (graph *Graph) RouteBetween(from, to orb.Point) ([]orb.LineString, error) {
	start, err := graph.NearestWaypoint(from)
	if err != nil {
		return nil, errors.Wrap(err, "Can't resolve start point")
	}
	end, err := graph.NearestWaypoint(to)
	if err != nil {
		return nil, errors.Wrap(err, "Can't resolve end point")
	}
	return graph.Route(start, end)
}

// LongestRoute returns route between the two mutually furthest waypoints
func (graph *Graph) LongestRoute() ([]orb.LineString, error) {
	start, end, err := FurthestPair(graph.Distances)
	if err != nil {
		return nil, errors.Wrap(err, "Can't select endpoints")
	}
	return graph.Route(start, end)
}

// RouteSummary describes an assembled route
type RouteSummary struct {
	// Number of consecutive waypoint pairs
	Legs int
	// Length of route in units of the metric
	Length float64
	// Number of legs without real segment between waypoints
	Jumps int
	// Length of such legs in units of the metric
	JumpsLength float64
	// Length of route in meters (coordinates are treated as lon/lat)
	HaversineLength float64
	Cost            float64
}

// Summarize describes path of waypoint indices. Nil metric means PlanarMetric
func (graph *Graph) Summarize(path []int, metric Metric) (RouteSummary, error) {
	if metric == nil {
		metric = PlanarMetric{}
	}
	route, err := graph.Assemble(path)
	if err != nil {
		return RouteSummary{}, err
	}
	summary := RouteSummary{Legs: len(route)}
	for k, line := range route {
		from, to := path[k], path[k+1]
		length := metric.Length(line)
		summary.Length += length
		summary.HaversineLength += geo.LengthHaversign(line)
		summary.Cost += graph.Costs[from][to]
		if graph.Connections[from][to] == nil {
			summary.Jumps++
			summary.JumpsLength += length
		}
	}
	return summary, nil
}
