package cycleroute

import (
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	geojson "github.com/paulmach/go.geojson"
	"github.com/pkg/errors"
)

// WaysFromGeoJSON decodes FeatureCollection into ways. LineString features give one way,
// MultiLineString features give one way per part; other geometry types are skipped.
// Feature properties become way tags.
func WaysFromGeoJSON(data []byte) ([]Way, error) {
	collection, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, errors.Wrap(err, "Can't decode FeatureCollection")
	}
	ways := []Way{}
	for i, feature := range collection.Features {
		if feature == nil || feature.Geometry == nil {
			continue
		}
		id := featureID(feature, int64(i))
		tags := TagsFromProperties(feature.Properties)
		switch feature.Geometry.Type {
		case geojson.GeometryLineString:
			line, err := lineFromCoordinates(feature.Geometry.LineString)
			if err != nil {
				return nil, errors.Wrapf(err, "feature #%d", i)
			}
			ways = append(ways, Way{ID: id, Geom: line, Tags: tags})
		case geojson.GeometryMultiLineString:
			for j, part := range feature.Geometry.MultiLineString {
				line, err := lineFromCoordinates(part)
				if err != nil {
					return nil, errors.Wrapf(err, "feature #%d, part #%d", i, j)
				}
				ways = append(ways, Way{ID: id, Geom: line, Tags: tags})
			}
		default:
			continue
		}
	}
	if len(ways) == 0 {
		return nil, ErrNoWays
	}
	for i := range ways {
		ways[i].normalizeOneway()
	}
	return ways, nil
}

// featureID extracts numeric identifier from feature ID or from `id`/`@id` property (e.g. "way/123")
func featureID(feature *geojson.Feature, fallback int64) int64 {
	candidates := []interface{}{feature.ID, feature.Properties["id"], feature.Properties["@id"]}
	for _, candidate := range candidates {
		switch v := candidate.(type) {
		case float64:
			return int64(v)
		case int64:
			return v
		case int:
			return int64(v)
		case string:
			if idx := strings.LastIndex(v, "/"); idx >= 0 {
				v = v[idx+1:]
			}
			if id, err := strconv.ParseInt(v, 10, 64); err == nil {
				return id
			}
		}
	}
	return fallback
}

func lineFromCoordinates(coordinates [][]float64) (orb.LineString, error) {
	line := make(orb.LineString, 0, len(coordinates))
	for k, coordinate := range coordinates {
		if len(coordinate) < 2 {
			return nil, errors.Wrapf(ErrMalformedGeometry, "coordinate #%d has %d dimensions", k, len(coordinate))
		}
		line = append(line, orb.Point{coordinate[0], coordinate[1]})
	}
	if err := validateLine(line); err != nil {
		return nil, err
	}
	return line, nil
}

func lineToCoordinates(line orb.LineString) [][]float64 {
	coordinates := make([][]float64, len(line))
	for i := range line {
		coordinates[i] = []float64{line[i][0], line[i][1]}
	}
	return coordinates
}

// RouteToGeoJSON returns FeatureCollection with one LineString feature per leg of the route
func RouteToGeoJSON(route []orb.LineString) ([]byte, error) {
	collection := geojson.NewFeatureCollection()
	for i, line := range route {
		feature := geojson.NewLineStringFeature(lineToCoordinates(line))
		feature.SetProperty("leg", i)
		collection.AddFeature(feature)
	}
	b, err := collection.MarshalJSON()
	if err != nil {
		return nil, errors.Wrap(err, "Can't encode route")
	}
	return b, nil
}

// PrepareGeoJSONLinestring returns GeoJSON representation of LineString
func PrepareGeoJSONLinestring(line orb.LineString) (string, error) {
	b, err := geojson.NewLineStringGeometry(lineToCoordinates(line)).MarshalJSON()
	if err != nil {
		return "", errors.Wrap(err, "Can't convert geometry to GeoJSON")
	}
	return string(b), nil
}

// PrepareGeoJSONPoint returns GeoJSON representation of Point
func PrepareGeoJSONPoint(pt orb.Point) (string, error) {
	b, err := geojson.NewPointGeometry([]float64{pt[0], pt[1]}).MarshalJSON()
	if err != nil {
		return "", errors.Wrap(err, "Can't convert geometry to GeoJSON")
	}
	return string(b), nil
}
