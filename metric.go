package cycleroute

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/planar"
)

// Metric measures distances between waypoints and lengths of segments
type Metric interface {
	Distance(p, q orb.Point) float64
	Length(line orb.LineString) float64
	String() string
}

// PlanarMetric treats coordinates as Euclidean (Lon == X, Lat == Y)
type PlanarMetric struct{}

func (PlanarMetric) Distance(p, q orb.Point) float64 {
	return planar.Distance(p, q)
}

func (PlanarMetric) Length(line orb.LineString) float64 {
	return planar.Length(line)
}

func (PlanarMetric) String() string {
	return "planar"
}

// HaversineMetric treats coordinates as lon/lat degrees and measures in meters
type HaversineMetric struct{}

func (HaversineMetric) Distance(p, q orb.Point) float64 {
	return geo.DistanceHaversine(p, q)
}

func (HaversineMetric) Length(line orb.LineString) float64 {
	return geo.LengthHaversign(line)
}

func (HaversineMetric) String() string {
	return "haversine"
}

// ParseMetric returns Metric by its name
func ParseMetric(name string) (Metric, error) {
	switch name {
	case "", "planar":
		return PlanarMetric{}, nil
	case "haversine":
		return HaversineMetric{}, nil
	default:
		return nil, fmt.Errorf("Metric '%s' is not handled. Expected values: planar / haversine", name)
	}
}
