package cycleroute

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tkrajina/gpxgo/gpx"
	polyline "github.com/twpayne/go-polyline"
)

const sampleFeatures = `{
	"type": "FeatureCollection",
	"features": [
		{
			"type": "Feature",
			"id": 100,
			"geometry": {"type": "LineString", "coordinates": [[0, 0], [3, 0]]},
			"properties": {"highway": "residential", "oneway": "yes"}
		},
		{
			"type": "Feature",
			"geometry": {"type": "MultiLineString", "coordinates": [[[3, 0], [3, 4]], [[3, 4], [5, 4]]]},
			"properties": {"@id": "way/200", "cycleway": "lane"}
		},
		{
			"type": "Feature",
			"geometry": {"type": "Point", "coordinates": [1, 1]},
			"properties": {"name": "Bench"}
		}
	]
}`

func TestWaysFromGeoJSON(t *testing.T) {
	ways, err := WaysFromGeoJSON([]byte(sampleFeatures))
	require.NoError(t, err)
	require.Len(t, ways, 3)

	assert.Equal(t, int64(100), ways[0].ID)
	assert.Equal(t, orb.LineString{{0, 0}, {3, 0}}, ways[0].Geom)
	assert.Equal(t, "yes", ways[0].Tags.Find("oneway"))

	assert.Equal(t, int64(200), ways[1].ID)
	assert.Equal(t, int64(200), ways[2].ID)
	assert.Equal(t, orb.LineString{{3, 4}, {5, 4}}, ways[2].Geom)
	assert.Equal(t, "lane", ways[2].Tags.Find("cycleway"))
}

func TestWaysFromGeoJSONErrors(t *testing.T) {
	_, err := WaysFromGeoJSON([]byte(`{"type": "FeatureCollection", "features": []}`))
	assert.ErrorIs(t, err, ErrNoWays)

	_, err = WaysFromGeoJSON([]byte(`{"type": "FeatureCollection", "features": [
		{"type": "Feature", "geometry": {"type": "LineString", "coordinates": [[0, 0]]}, "properties": {}}
	]}`))
	assert.ErrorIs(t, err, ErrMalformedGeometry)

	_, err = WaysFromGeoJSON([]byte(`not a json`))
	assert.Error(t, err)
}

func TestGeoJSONToRoute(t *testing.T) {
	ways, err := WaysFromGeoJSON([]byte(sampleFeatures))
	require.NoError(t, err)
	graph, err := NewProcessor().Process(ways)
	require.NoError(t, err)
	route, err := graph.LongestRoute()
	require.NoError(t, err)
	require.NotEmpty(t, route)

	b, err := RouteToGeoJSON(route)
	require.NoError(t, err)
	decoded := struct {
		Type     string `json:"type"`
		Features []struct {
			Geometry struct {
				Type        string      `json:"type"`
				Coordinates [][]float64 `json:"coordinates"`
			} `json:"geometry"`
			Properties map[string]interface{} `json:"properties"`
		} `json:"features"`
	}{}
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.Equal(t, "FeatureCollection", decoded.Type)
	require.Len(t, decoded.Features, len(route))
	for i, feature := range decoded.Features {
		assert.Equal(t, "LineString", feature.Geometry.Type)
		assert.Equal(t, lineToCoordinates(route[i]), feature.Geometry.Coordinates)
		assert.Equal(t, float64(i), feature.Properties["leg"])
	}
}

func TestRouteToWKT(t *testing.T) {
	route := []orb.LineString{{{0, 0}, {3, 0}}, {{3, 0}, {3, 4}}}
	assert.Equal(t, "MULTILINESTRING((0 0,3 0),(3 0,3 4))", RouteToWKT(route))
	assert.Equal(t, "LINESTRING(0 0,3 0)", PrepareWKTLinestring(route[0]))
	assert.Equal(t, "POINT(3 4)", PrepareWKTPoint(orb.Point{3, 4}))
}

func TestPrepareGeoJSON(t *testing.T) {
	str, err := PrepareGeoJSONLinestring(orb.LineString{{0, 0}, {1, 1}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"LineString","coordinates":[[0,0],[1,1]]}`, str)

	str, err = PrepareGeoJSONPoint(orb.Point{1, 2})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"Point","coordinates":[1,2]}`, str)
}

func TestRouteToGPX(t *testing.T) {
	route := []orb.LineString{{{30.1, 59.9}, {30.2, 59.95}}, {{30.2, 59.95}, {30.3, 60.0}}}
	b, err := RouteToGPX(route, "test")
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(b), "<gpx"))

	doc, err := gpx.ParseBytes(b)
	require.NoError(t, err)
	require.Len(t, doc.Tracks, 1)
	require.Len(t, doc.Tracks[0].Segments, 1)
	points := doc.Tracks[0].Segments[0].Points
	require.Len(t, points, 3)
	assert.InDelta(t, 59.9, points[0].Latitude, 1e-9)
	assert.InDelta(t, 30.1, points[0].Longitude, 1e-9)
	assert.InDelta(t, 60.0, points[2].Latitude, 1e-9)
}

func TestRouteToPolyline(t *testing.T) {
	route := []orb.LineString{{{-120.2, 38.5}, {-120.95, 40.7}}, {{-120.95, 40.7}, {-126.453, 43.252}}}
	encoded := RouteToPolyline(route)
	assert.Equal(t, "_p~iF~ps|U_ulLnnqC_mqNvxq`@", encoded)

	coords, _, err := polyline.DecodeCoords([]byte(encoded))
	require.NoError(t, err)
	require.Len(t, coords, 3)
	assert.InDelta(t, 38.5, coords[0][0], 1e-5)
	assert.InDelta(t, -120.2, coords[0][1], 1e-5)
}

func TestRoutePoints(t *testing.T) {
	route := []orb.LineString{{{0, 0}, {1, 0}}, {{1, 0}, {2, 0}}, {{5, 5}, {6, 6}}}
	assert.Equal(t, orb.LineString{{0, 0}, {1, 0}, {2, 0}, {5, 5}, {6, 6}}, RoutePoints(route))
}

func TestWaysFromGeoJSONReversedOneway(t *testing.T) {
	ways, err := WaysFromGeoJSON([]byte(`{"type": "FeatureCollection", "features": [
		{"type": "Feature", "geometry": {"type": "MultiLineString", "coordinates": [[[0, 0], [1, 0]], [[1, 0], [2, 0]]]}, "properties": {"oneway": "-1"}}
	]}`))
	require.NoError(t, err)
	require.Len(t, ways, 2)
	assert.Equal(t, orb.LineString{{1, 0}, {0, 0}}, ways[0].Geom)
	assert.Equal(t, orb.LineString{{2, 0}, {1, 0}}, ways[1].Geom)
	for _, way := range ways {
		assert.Equal(t, "yes", way.Tags.Find("oneway"))
	}
}
