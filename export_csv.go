package cycleroute

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
	"github.com/pkg/errors"
)

// ExportToCSV writes graph into two ';'-separated files: 'name_segments.csv' and 'name_waypoints.csv'
func (graph *Graph) ExportToCSV(fname string, metric Metric) error {
	fnameParts := strings.Split(fname, ".csv")
	fnameSegments := fnameParts[0] + "_segments.csv"
	fnameWaypoints := fnameParts[0] + "_waypoints.csv"

	err := writeCSVFile(fnameSegments, func(w io.Writer) error {
		return graph.WriteSegmentsCSV(w, metric)
	})
	if err != nil {
		return errors.Wrap(err, "Can't export segments")
	}
	err = writeCSVFile(fnameWaypoints, graph.WriteWaypointsCSV)
	if err != nil {
		return errors.Wrap(err, "Can't export waypoints")
	}
	return nil
}

func writeCSVFile(fname string, write func(w io.Writer) error) error {
	file, err := os.Create(fname)
	if err != nil {
		return errors.Wrap(err, "Can't create file")
	}
	defer file.Close()
	return write(file)
}

// WriteSegmentsCSV writes one row per segment: id;way_index;from_waypoint;to_waypoint;length;geom
func (graph *Graph) WriteSegmentsCSV(w io.Writer, metric Metric) error {
	if metric == nil {
		metric = PlanarMetric{}
	}
	indices := make(map[orb.Point]int, len(graph.Waypoints))
	for i, pt := range graph.Waypoints {
		indices[pt] = i
	}

	writer := csv.NewWriter(w)
	writer.Comma = ';'
	err := writer.Write([]string{"id", "way_index", "from_waypoint", "to_waypoint", "length", "geom"})
	if err != nil {
		return errors.Wrap(err, "Can't write header")
	}
	for i, segment := range graph.Segments {
		from, ok := indices[segment.Geom[0]]
		if !ok {
			return errors.Wrapf(ErrWaypointOutOfRange, "start of segment #%d is not a waypoint", i)
		}
		to, ok := indices[segment.Geom[len(segment.Geom)-1]]
		if !ok {
			return errors.Wrapf(ErrWaypointOutOfRange, "end of segment #%d is not a waypoint", i)
		}
		err = writer.Write([]string{
			fmt.Sprintf("%d", i),
			fmt.Sprintf("%d", segment.WayIndex),
			fmt.Sprintf("%d", from),
			fmt.Sprintf("%d", to),
			fmt.Sprintf("%f", metric.Length(segment.Geom)),
			wkt.MarshalString(segment.Geom),
		})
		if err != nil {
			return errors.Wrap(err, "Can't write segment")
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteWaypointsCSV writes one row per waypoint: id;longitude;latitude;geom
func (graph *Graph) WriteWaypointsCSV(w io.Writer) error {
	writer := csv.NewWriter(w)
	writer.Comma = ';'
	err := writer.Write([]string{"id", "longitude", "latitude", "geom"})
	if err != nil {
		return errors.Wrap(err, "Can't write header")
	}
	for i, pt := range graph.Waypoints {
		err = writer.Write([]string{
			fmt.Sprintf("%d", i),
			fmt.Sprintf("%f", pt[0]),
			fmt.Sprintf("%f", pt[1]),
			wkt.MarshalString(pt),
		})
		if err != nil {
			return errors.Wrap(err, "Can't write waypoint")
		}
	}
	writer.Flush()
	return writer.Error()
}
