package cycleroute

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/paulmach/osm/osmxml"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// OSMScanner is common interface of osmxml and osmpbf scanners
type OSMScanner interface {
	Scan() bool
	Close() error
	Err() error
	Object() osm.Object
}

type osmWay struct {
	id    osm.WayID
	nodes []osm.NodeID
	tags  osm.Tags
}

func newOSMScanner(file io.Reader, filename string) (OSMScanner, error) {
	// Guess file extension and prepare correct scanner
	ext := filepath.Ext(filename)
	switch ext {
	case ".osm", ".xml":
		return osmxml.New(context.Background(), file), nil
	case ".pbf":
		return osmpbf.New(context.Background(), file, 4), nil
	default:
		return nil, fmt.Errorf("File extension '%s' for file '%s' is not handled yet", ext, filename)
	}
}

// LoadWaysFromOSM reads ways accepted by configuration from OSM XML (*.osm, *.xml) or PBF (*.osm.pbf) file.
// Ways tagged `oneway=-1` are reversed and retagged as `oneway=yes`.
func LoadWaysFromOSM(filename string, cfg *OsmConfiguration, logger *zap.Logger) ([]Way, error) {
	if cfg == nil {
		cfg = DefaultOsmConfiguration()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Info("Opening file...", zap.String("filename", filename))
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrap(err, "File open")
	}
	defer file.Close()

	/* Process ways */
	st := time.Now()
	rawWays := []osmWay{}
	nodesSeen := make(map[osm.NodeID]struct{})
	{
		scannerWays, err := newOSMScanner(file, filename)
		if err != nil {
			return nil, err
		}
		defer scannerWays.Close()
		for scannerWays.Scan() {
			obj := scannerWays.Object()
			if obj.ObjectID().Type() != osm.TypeWay {
				continue
			}
			way := obj.(*osm.Way)
			if !cfg.Accept(way.Tags) {
				continue
			}
			prepared := osmWay{
				id:    way.ID,
				nodes: make([]osm.NodeID, 0, len(way.Nodes)),
				tags:  make(osm.Tags, len(way.Tags)),
			}
			copy(prepared.tags, way.Tags)
			for _, node := range way.Nodes {
				nodesSeen[node.ID] = struct{}{}
				prepared.nodes = append(prepared.nodes, node.ID)
			}
			rawWays = append(rawWays, prepared)
		}
		if err := scannerWays.Err(); err != nil {
			return nil, errors.Wrap(err, "Scanner error on Ways")
		}
	}
	logger.Info("Ways have been scanned", zap.Int("ways", len(rawWays)), zap.Duration("elapsed", time.Since(st)))

	// Seek file to start
	_, err = file.Seek(0, io.SeekStart)
	if err != nil {
		return nil, errors.Wrap(err, "Can't repeat seeking after ways scanning")
	}

	/* Process nodes */
	st = time.Now()
	nodes := make(map[osm.NodeID]orb.Point, len(nodesSeen))
	{
		scannerNodes, err := newOSMScanner(file, filename)
		if err != nil {
			return nil, err
		}
		defer scannerNodes.Close()
		for scannerNodes.Scan() {
			obj := scannerNodes.Object()
			if obj.ObjectID().Type() != osm.TypeNode {
				continue
			}
			node := obj.(*osm.Node)
			if _, ok := nodesSeen[node.ID]; ok {
				nodes[node.ID] = node.Point()
			}
		}
		if err := scannerNodes.Err(); err != nil {
			return nil, errors.Wrap(err, "Scanner error on Nodes")
		}
	}
	logger.Info("Nodes have been scanned", zap.Int("nodes", len(nodes)), zap.Duration("elapsed", time.Since(st)))

	ways := make([]Way, 0, len(rawWays))
	for _, raw := range rawWays {
		way, missing := raw.toWay(nodes)
		if missing > 0 {
			logger.Warn("Way refers to unknown nodes", zap.Int64("way_id", int64(raw.id)), zap.Int("missing", missing))
		}
		if len(way.Geom) < 2 {
			logger.Warn("Way has been skipped: not enough nodes", zap.Int64("way_id", int64(raw.id)))
			continue
		}
		ways = append(ways, way)
	}
	if len(ways) == 0 {
		return nil, errors.Wrapf(ErrNoWays, "file '%s'", filename)
	}
	return ways, nil
}

// toWay assembles geometry from known nodes, skipping unknown ones and consecutive duplicates
func (raw *osmWay) toWay(nodes map[osm.NodeID]orb.Point) (Way, int) {
	missing := 0
	geom := make(orb.LineString, 0, len(raw.nodes))
	for _, nodeID := range raw.nodes {
		pt, ok := nodes[nodeID]
		if !ok {
			missing++
			continue
		}
		if len(geom) > 0 && geom[len(geom)-1] == pt {
			continue
		}
		geom = append(geom, pt)
	}
	tags := make(osm.Tags, len(raw.tags))
	copy(tags, raw.tags)
	way := Way{
		ID:   int64(raw.id),
		Geom: geom,
		Tags: tags,
	}
	way.normalizeOneway()
	return way, missing
}
