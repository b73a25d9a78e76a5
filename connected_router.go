package cycleroute

import (
	"time"

	"github.com/LdDl/ch"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ConnectedRouter searches paths along real segments only: straight line jumps between unconnected waypoints are not allowed.
// Waypoints which are not joined by segments are reported as ErrNoRoute.
type ConnectedRouter struct {
	graph *Graph
	ch    ch.Graph
}

// NewConnectedRouter prepares contraction hierarchies over connected waypoint pairs of the graph
func NewConnectedRouter(graph *Graph, logger *zap.Logger) (*ConnectedRouter, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	n := len(graph.Waypoints)
	if n == 0 {
		return nil, ErrNoWaypoints
	}
	if len(graph.Costs) != n || len(graph.Connections) != n {
		return nil, errors.Wrapf(ErrInvalidMatrix, "%d waypoints, %d cost rows, %d connection rows", n, len(graph.Costs), len(graph.Connections))
	}
	router := &ConnectedRouter{
		graph: graph,
		ch:    ch.Graph{},
	}
	for i := 0; i < n; i++ {
		err := router.ch.CreateVertex(int64(i))
		if err != nil {
			return nil, errors.Wrap(err, "Can not create vertex")
		}
	}
	edges := 0
	for i := 0; i < n; i++ {
		if len(graph.Costs[i]) != n || len(graph.Connections[i]) != n {
			return nil, errors.Wrapf(ErrInvalidMatrix, "row #%d", i)
		}
		for j := 0; j < n; j++ {
			if i == j || graph.Connections[i][j] == nil {
				continue
			}
			err := router.ch.AddEdge(int64(i), int64(j), graph.Costs[i][j])
			if err != nil {
				return nil, errors.Wrap(err, "Can not wrap source and target vertices as edge")
			}
			edges++
		}
	}
	logger.Info("Starting contraction process...", zap.Int("vertices", n), zap.Int("edges", edges))
	st := time.Now()
	router.ch.PrepareContractionHierarchies()
	logger.Info("Done contraction process", zap.Duration("elapsed", time.Since(st)))
	return router, nil
}

// Path returns waypoint indices of the cheapest path along real segments and its cost
func (router *ConnectedRouter) Path(start, end int) ([]int, float64, error) {
	n := len(router.graph.Waypoints)
	if start < 0 || start >= n {
		return nil, 0, errors.Wrapf(ErrWaypointOutOfRange, "start %d, waypoints %d", start, n)
	}
	if end < 0 || end >= n {
		return nil, 0, errors.Wrapf(ErrWaypointOutOfRange, "end %d, waypoints %d", end, n)
	}
	if start == end {
		return []int{start}, 0, nil
	}
	cost, vertices := router.ch.ShortestPath(int64(start), int64(end))
	if cost < 0 || len(vertices) == 0 {
		return nil, 0, errors.Wrapf(ErrNoRoute, "from %d to %d", start, end)
	}
	path := make([]int, len(vertices))
	for i, v := range vertices {
		path[i] = int(v)
	}
	return path, cost, nil
}

// Route returns ordered directed geometries of the cheapest path along real segments
func (router *ConnectedRouter) Route(start, end int) ([]orb.LineString, error) {
	path, _, err := router.Path(start, end)
	if err != nil {
		return nil, err
	}
	return router.graph.Assemble(path)
}
