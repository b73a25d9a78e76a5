package cycleroute

import (
	"math"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
	"github.com/pkg/errors"
)

// Way is an input polyline with the tags used to derive its traversal coefficients
type Way struct {
	ID   int64
	Geom orb.LineString
	Tags osm.Tags
}

// Segment is a piece of a way which is not touched by any other way in its interior
type Segment struct {
	Geom     orb.LineString
	WayIndex int
}

// validate checks that the way can be segmented
func (way *Way) validate() error {
	return validateLine(way.Geom)
}

// normalizeOneway reverses geometry of way tagged `oneway=-1` and retags it as `oneway=yes`.
// Tags are copied before modification since they may be shared between ways.
func (way *Way) normalizeOneway() {
	for i := range way.Tags {
		if way.Tags[i].Key != TAG_ONEWAY || strings.TrimSpace(way.Tags[i].Value) != "-1" {
			continue
		}
		tags := make(osm.Tags, len(way.Tags))
		copy(tags, way.Tags)
		tags[i].Value = "yes"
		way.Tags = tags
		way.Geom.Reverse()
		return
	}
}

func validateLine(line orb.LineString) error {
	if len(line) < 2 {
		return errors.Wrapf(ErrMalformedGeometry, "line has %d points", len(line))
	}
	for i, pt := range line {
		if !isFinitePoint(pt) {
			return errors.Wrapf(ErrMalformedGeometry, "point #%d is %v", i, pt)
		}
	}
	return nil
}

func isFinitePoint(pt orb.Point) bool {
	return isFinite(pt[0]) && isFinite(pt[1])
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// SegmentWayIndices returns index of parent way for every segment
func SegmentWayIndices(segments []Segment) []int {
	indices := make([]int, len(segments))
	for i := range segments {
		indices[i] = segments[i].WayIndex
	}
	return indices
}
