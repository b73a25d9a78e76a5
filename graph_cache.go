package cycleroute

import (
	"io"
	"os"

	"github.com/DataDog/zstd"
	"github.com/kelindar/binary"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

const graphCacheVersion = 1

type cachedSegment struct {
	WayIndex    int32
	Coordinates []float64
}

type cachedConnection struct {
	From        int32
	To          int32
	Coordinates []float64
}

type cachedGraph struct {
	Version     int32
	Waypoints   []float64
	Segments    []cachedSegment
	Distances   [][]float64
	Costs       [][]float64
	Connections []cachedConnection
}

func flattenLine(line orb.LineString) []float64 {
	flat := make([]float64, 0, 2*len(line))
	for _, pt := range line {
		flat = append(flat, pt[0], pt[1])
	}
	return flat
}

func unflattenLine(flat []float64) (orb.LineString, error) {
	if len(flat)%2 != 0 {
		return nil, errors.Wrapf(ErrMalformedGeometry, "odd number of coordinates: %d", len(flat))
	}
	line := make(orb.LineString, len(flat)/2)
	for i := range line {
		line[i] = orb.Point{flat[2*i], flat[2*i+1]}
	}
	return line, nil
}

// MarshalBinary encodes graph with kelindar/binary and compresses it with zstd
func (graph *Graph) MarshalBinary() ([]byte, error) {
	dto := cachedGraph{
		Version:     graphCacheVersion,
		Waypoints:   flattenLine(graph.Waypoints),
		Segments:    make([]cachedSegment, len(graph.Segments)),
		Distances:   graph.Distances,
		Costs:       graph.Costs,
		Connections: []cachedConnection{},
	}
	for i, segment := range graph.Segments {
		dto.Segments[i] = cachedSegment{
			WayIndex:    int32(segment.WayIndex),
			Coordinates: flattenLine(segment.Geom),
		}
	}
	for i, row := range graph.Connections {
		for j, line := range row {
			if line == nil {
				continue
			}
			dto.Connections = append(dto.Connections, cachedConnection{
				From:        int32(i),
				To:          int32(j),
				Coordinates: flattenLine(line),
			})
		}
	}
	encoded, err := binary.Marshal(dto)
	if err != nil {
		return nil, errors.Wrap(err, "Can't encode graph")
	}
	var compressed []byte
	compressed, err = zstd.Compress(compressed, encoded)
	if err != nil {
		return nil, errors.Wrap(err, "Can't compress graph")
	}
	return compressed, nil
}

// UnmarshalBinary restores graph encoded by MarshalBinary
func (graph *Graph) UnmarshalBinary(data []byte) error {
	var encoded []byte
	encoded, err := zstd.Decompress(encoded, data)
	if err != nil {
		return errors.Wrap(err, "Can't decompress graph")
	}
	var dto cachedGraph
	if err := binary.Unmarshal(encoded, &dto); err != nil {
		return errors.Wrap(err, "Can't decode graph")
	}
	if dto.Version != graphCacheVersion {
		return errors.Errorf("Graph cache version %d is not supported, expected %d", dto.Version, graphCacheVersion)
	}

	waypoints, err := unflattenLine(dto.Waypoints)
	if err != nil {
		return errors.Wrap(err, "Can't restore waypoints")
	}
	n := len(waypoints)
	if len(dto.Distances) != n || len(dto.Costs) != n {
		return errors.Wrapf(ErrInvalidMatrix, "%d waypoints, %d distance rows, %d cost rows", n, len(dto.Distances), len(dto.Costs))
	}
	segments := make([]Segment, len(dto.Segments))
	for i, cached := range dto.Segments {
		line, err := unflattenLine(cached.Coordinates)
		if err != nil {
			return errors.Wrapf(err, "Can't restore segment #%d", i)
		}
		segments[i] = Segment{Geom: line, WayIndex: int(cached.WayIndex)}
	}
	connections := make([][]orb.LineString, n)
	for i := range connections {
		connections[i] = make([]orb.LineString, n)
	}
	for _, cached := range dto.Connections {
		from, to := int(cached.From), int(cached.To)
		if from < 0 || from >= n || to < 0 || to >= n {
			return errors.Wrapf(ErrWaypointOutOfRange, "connection %d -> %d, waypoints %d", from, to, n)
		}
		line, err := unflattenLine(cached.Coordinates)
		if err != nil {
			return errors.Wrapf(err, "Can't restore connection %d -> %d", from, to)
		}
		connections[from][to] = line
	}

	graph.Waypoints = []orb.Point(waypoints)
	graph.Segments = segments
	graph.Distances = dto.Distances
	graph.Costs = dto.Costs
	graph.Connections = connections
	return nil
}

// SaveGraph writes compressed graph to the writer
func SaveGraph(w io.Writer, graph *Graph) error {
	b, err := graph.MarshalBinary()
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return errors.Wrap(err, "Can't write graph")
}

// LoadGraph reads graph written by SaveGraph
func LoadGraph(r io.Reader) (*Graph, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "Can't read graph")
	}
	graph := &Graph{}
	if err := graph.UnmarshalBinary(b); err != nil {
		return nil, err
	}
	return graph, nil
}

// SaveGraphFile writes compressed graph to the file
func SaveGraphFile(fname string, graph *Graph) error {
	file, err := os.Create(fname)
	if err != nil {
		return errors.Wrap(err, "Can't create file")
	}
	defer file.Close()
	return SaveGraph(file, graph)
}

// LoadGraphFile reads graph from the file written by SaveGraphFile
func LoadGraphFile(fname string) (*Graph, error) {
	file, err := os.Open(fname)
	if err != nil {
		return nil, errors.Wrap(err, "File open")
	}
	defer file.Close()
	return LoadGraph(file)
}
