package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/LdDl/cycleroute"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var (
	fileName      = flag.String("file", "ways.geojson", "Filename of ways source. Expected extensions: *.geojson / *.json (FeatureCollection) or *.osm / *.xml / *.osm.pbf (OSM data)")
	configName    = flag.String("config", "", "Filename of YAML routing profile. Defaults are used if empty")
	tagStr        = flag.String("tags", "", "Set of needed highway tags for OSM data (separated by commas). Overrides profile")
	cacheName     = flag.String("cache", "", "Filename of graph cache. Graph is loaded from it if exists, otherwise processed graph is saved into it")
	fromStr       = flag.String("from", "", "Start point as 'lon,lat'. If both -from and -to are empty, the two furthest waypoints are used")
	toStr         = flag.String("to", "", "End point as 'lon,lat'")
	connectedOnly = flag.Bool("connected-only", false, "Route along real segments only (no straight line jumps between unconnected waypoints)")
	out           = flag.String("out", "route.gpx", "Filename of output route")
	format        = flag.String("format", "", "Format of output route. Expected values: gpx / geojson / wkt / polyline. Guessed by -out extension if empty")
	csvOut        = flag.String("csv", "", "Filename of 'Comma-Separated Values' (CSV) formatted graph export. E.g.: if file name is 'graph.csv' then 2 files will be produced: 'graph_segments.csv' and 'graph_waypoints.csv'")
	verbose       = flag.Bool("verbose", false, "Development logging")
)

func main() {
	flag.Parse()

	logger, err := prepareLogger(*verbose)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(logger); err != nil {
		logger.Error("Can't build route", zap.Error(err))
		os.Exit(1)
	}
}

func prepareLogger(development bool) (*zap.Logger, error) {
	if development {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func run(logger *zap.Logger) error {
	cfg := cycleroute.DefaultConfig()
	if *configName != "" {
		loaded, err := cycleroute.LoadConfig(*configName)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if *tagStr != "" {
		cfg.OSM.Tags = cycleroute.ParseTagsList(*tagStr)
	}
	metric, err := cycleroute.ParseMetric(cfg.Metric)
	if err != nil {
		return err
	}

	graph, err := prepareGraph(cfg, logger)
	if err != nil {
		return err
	}

	if *csvOut != "" {
		if err := graph.ExportToCSV(*csvOut, metric); err != nil {
			return err
		}
	}

	start, end, err := resolveEndpoints(graph)
	if err != nil {
		return err
	}

	var path []int
	var cost float64
	if *connectedOnly {
		router, err := cycleroute.NewConnectedRouter(graph, logger)
		if err != nil {
			return errors.Wrap(err, "Can't prepare connected router")
		}
		path, cost, err = router.Path(start, end)
		if err != nil {
			return err
		}
	} else {
		path, cost, err = graph.Path(start, end)
		if err != nil {
			return err
		}
	}

	route, err := graph.Assemble(path)
	if err != nil {
		return err
	}
	summary, err := graph.Summarize(path, metric)
	if err != nil {
		return err
	}
	logger.Info("Route has been found",
		zap.Int("start", start),
		zap.Int("end", end),
		zap.Float64("cost", cost),
		zap.Int("legs", summary.Legs),
		zap.Float64("length", summary.Length),
		zap.Int("jumps", summary.Jumps),
		zap.Float64("jumps_length", summary.JumpsLength),
		zap.Float64("length_meters", summary.HaversineLength),
	)

	return writeRoute(route, *out, *format)
}

func prepareGraph(cfg *cycleroute.Config, logger *zap.Logger) (*cycleroute.Graph, error) {
	if *cacheName != "" {
		if _, err := os.Stat(*cacheName); err == nil {
			logger.Info("Loading graph from cache", zap.String("filename", *cacheName))
			return cycleroute.LoadGraphFile(*cacheName)
		}
	}

	ways, err := loadWays(cfg, logger)
	if err != nil {
		return nil, err
	}
	options, err := cfg.ProcessorOptions()
	if err != nil {
		return nil, err
	}
	options = append(options, cycleroute.WithLogger(logger))
	processor := cycleroute.NewProcessor(options...)
	logger.Debug(processor.String())

	graph, err := processor.Process(ways)
	if err != nil {
		return nil, err
	}
	if *cacheName != "" {
		if err := cycleroute.SaveGraphFile(*cacheName, graph); err != nil {
			return nil, err
		}
	}
	return graph, nil
}

func loadWays(cfg *cycleroute.Config, logger *zap.Logger) ([]cycleroute.Way, error) {
	osmCfg := cfg.OsmConfiguration()
	switch strings.ToLower(filepath.Ext(*fileName)) {
	case ".geojson", ".json":
		b, err := os.ReadFile(*fileName)
		if err != nil {
			return nil, errors.Wrap(err, "File open")
		}
		return cycleroute.WaysFromGeoJSON(b)
	default:
		if unknown := osmCfg.UnknownTags(); len(unknown) > 0 {
			logger.Warn("Some of highway tags are not known as cyclable", zap.Strings("tags", unknown))
		}
		return cycleroute.LoadWaysFromOSM(*fileName, osmCfg, logger)
	}
}

func resolveEndpoints(graph *cycleroute.Graph) (int, int, error) {
	if *fromStr == "" && *toStr == "" {
		return cycleroute.FurthestPair(graph.Distances)
	}
	from, err := parsePoint(*fromStr)
	if err != nil {
		return 0, 0, errors.Wrap(err, "Bad -from")
	}
	to, err := parsePoint(*toStr)
	if err != nil {
		return 0, 0, errors.Wrap(err, "Bad -to")
	}
	start, err := graph.NearestWaypoint(from)
	if err != nil {
		return 0, 0, err
	}
	end, err := graph.NearestWaypoint(to)
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

func parsePoint(str string) (orb.Point, error) {
	parts := strings.Split(str, ",")
	if len(parts) != 2 {
		return orb.Point{}, fmt.Errorf("Point '%s' is not handled. Expected format: lon,lat", str)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return orb.Point{}, errors.Wrap(err, "Bad longitude")
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return orb.Point{}, errors.Wrap(err, "Bad latitude")
	}
	return orb.Point{lon, lat}, nil
}

func writeRoute(route []orb.LineString, fname, outFormat string) error {
	if outFormat == "" {
		outFormat = strings.TrimPrefix(strings.ToLower(filepath.Ext(fname)), ".")
	}
	var data []byte
	var err error
	switch outFormat {
	case "gpx":
		data, err = cycleroute.RouteToGPX(route, strings.TrimSuffix(filepath.Base(fname), filepath.Ext(fname)))
	case "geojson", "json":
		data, err = cycleroute.RouteToGeoJSON(route)
	case "wkt", "txt":
		data = []byte(cycleroute.RouteToWKT(route))
	case "polyline":
		data = []byte(cycleroute.RouteToPolyline(route))
	default:
		return fmt.Errorf("Format '%s' is not handled. Expected values: gpx / geojson / wkt / polyline", outFormat)
	}
	if err != nil {
		return err
	}
	return errors.Wrap(os.WriteFile(fname, data, 0644), "Can't write route")
}
