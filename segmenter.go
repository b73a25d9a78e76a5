package cycleroute

import (
	"time"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// DefaultTolerance is the maximum distance between a break point and a line for the point to be considered lying on it
const DefaultTolerance = 1e-9

// Segmenter splits ways into segments at every point where other ways touch them
type Segmenter struct {
	tolerance float64
	workers   int
	logger    *zap.Logger
}

// NewSegmenter returns Segmenter. Non-positive workers means runtime.NumCPU(); nil logger means no logging
func NewSegmenter(tolerance float64, workers int, logger *zap.Logger) *Segmenter {
	if logger == nil {
		logger = zap.NewNop()
	}
	if tolerance < 0 {
		tolerance = 0
	}
	return &Segmenter{
		tolerance: tolerance,
		workers:   workers,
		logger:    logger,
	}
}

// splitJob is a piece of a way with break points lying strictly inside of it
type splitJob struct {
	line   orb.LineString
	points []orb.Point
}

// Segment splits every way into minimal segments. Segments are returned grouped by way and in way order;
// inside one way they follow the order of a depth-first split at the first remaining break point.
func (sg *Segmenter) Segment(ways []Way) ([]Segment, error) {
	if len(ways) == 0 {
		return nil, ErrNoWays
	}
	for i := range ways {
		if err := ways[i].validate(); err != nil {
			return nil, errors.Wrapf(err, "way #%d (ID: %d)", i, ways[i].ID)
		}
	}

	sg.logger.Info("Segmenting ways...", zap.Int("ways", len(ways)))
	st := time.Now()

	index, err := newIntersectionIndex(ways, sg.tolerance)
	if err != nil {
		return nil, errors.Wrap(err, "Can't build intersection index")
	}

	pieces := make([][]orb.LineString, len(ways))
	skipped := make([]int, len(ways))
	runJobs(len(ways), sg.workers, func(i int) {
		points := sg.wayBreakPoints(ways, index, i)
		pieces[i], skipped[i] = sg.splitAtPoints(ways[i].Geom, points)
	})

	segments := make([]Segment, 0, len(ways))
	totalSkipped := 0
	for wayIndex := range pieces {
		totalSkipped += skipped[wayIndex]
		if skipped[wayIndex] > 0 {
			sg.logger.Debug("Break points have been skipped",
				zap.Int("way_index", wayIndex),
				zap.Int64("way_id", ways[wayIndex].ID),
				zap.Int("skipped", skipped[wayIndex]),
			)
		}
		for _, line := range pieces[wayIndex] {
			segments = append(segments, Segment{Geom: line, WayIndex: wayIndex})
		}
	}

	sg.logger.Info("Segmenting done",
		zap.Int("segments", len(segments)),
		zap.Int("skipped_break_points", totalSkipped),
		zap.Duration("elapsed", time.Since(st)),
	)
	return segments, nil
}

// wayBreakPoints collects break points from every other way intersecting given one
func (sg *Segmenter) wayBreakPoints(ways []Way, index *intersectionIndex, wayIndex int) []orb.Point {
	line := ways[wayIndex].Geom
	var points []orb.Point
	for _, otherIndex := range index.candidates(wayIndex) {
		points = append(points, breakPoints(line, ways[otherIndex].Geom, sg.tolerance)...)
	}
	return points
}

// splitAtPoints splits line at every given point lying strictly inside of it.
// Uses explicit stack instead of recursion. Returns pieces and number of break points which could not be used.
func (sg *Segmenter) splitAtPoints(line orb.LineString, points []orb.Point) ([]orb.LineString, int) {
	result := []orb.LineString{}
	skipped := 0
	stack := []splitJob{{line: copyLine(line), points: filterInside(line, points, sg.tolerance)}}
	for len(stack) > 0 {
		job := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if len(job.points) == 0 {
			result = append(result, job.line)
			continue
		}
		breakPoint := job.points[0]
		remaining := job.points[1:]
		left, right, err := splitLine(job.line, breakPoint, sg.tolerance)
		if err != nil {
			// Keep the piece as is and forget about the point
			skipped++
			stack = append(stack, splitJob{line: job.line, points: remaining})
			continue
		}
		// Right piece goes first so the left one is processed first
		stack = append(stack,
			splitJob{line: right, points: filterInside(right, remaining, sg.tolerance)},
			splitJob{line: left, points: filterInside(left, remaining, sg.tolerance)},
		)
	}
	return result, skipped
}
