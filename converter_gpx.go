package cycleroute

import (
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"github.com/tkrajina/gpxgo/gpx"
	polyline "github.com/twpayne/go-polyline"
)

// RoutePoints flattens route legs into a single sequence of points without repeated joints
func RoutePoints(route []orb.LineString) orb.LineString {
	points := orb.LineString{}
	for _, line := range route {
		for _, pt := range line {
			if len(points) > 0 && points[len(points)-1] == pt {
				continue
			}
			points = append(points, pt)
		}
	}
	return points
}

// RouteToGPX returns GPX 1.1 document with route as a single track
func RouteToGPX(route []orb.LineString, name string) ([]byte, error) {
	points := RoutePoints(route)
	segment := gpx.GPXTrackSegment{
		Points: make([]gpx.GPXPoint, 0, len(points)),
	}
	for _, pt := range points {
		segment.Points = append(segment.Points, gpx.GPXPoint{
			Point: gpx.Point{
				Latitude:  pt.Lat(),
				Longitude: pt.Lon(),
			},
		})
	}
	doc := gpx.GPX{
		Name:    name,
		Creator: "cycleroute",
		Tracks: []gpx.GPXTrack{{
			Name:     name,
			Segments: []gpx.GPXTrackSegment{segment},
		}},
	}
	b, err := doc.ToXml(gpx.ToXmlParams{Version: "1.1", Indent: true})
	if err != nil {
		return nil, errors.Wrap(err, "Can't encode GPX")
	}
	return b, nil
}

// RouteToPolyline returns route encoded with Google polyline algorithm (precision 5)
func RouteToPolyline(route []orb.LineString) string {
	points := RoutePoints(route)
	coords := make([][]float64, len(points))
	for i, pt := range points {
		coords[i] = []float64{pt.Lat(), pt.Lon()}
	}
	return string(polyline.EncodeCoords(coords))
}
