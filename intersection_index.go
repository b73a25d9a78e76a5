package cycleroute

import (
	"sort"

	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

const (
	rtreeMinChildren = 25
	rtreeMaxChildren = 50
)

// wayBox is bounding box of a way stored in R-tree
type wayBox struct {
	index int
	rect  rtreego.Rect
}

func (box *wayBox) Bounds() rtreego.Rect {
	return box.rect
}

// intersectionIndex finds ways whose bounding boxes intersect the bounding box of a given way
type intersectionIndex struct {
	tree  *rtreego.Rtree
	boxes []*wayBox
}

func boundToRect(bound orb.Bound, pad float64) (rtreego.Rect, error) {
	return rtreego.NewRectFromPoints(
		rtreego.Point{bound.Min[0] - pad, bound.Min[1] - pad},
		rtreego.Point{bound.Max[0] + pad, bound.Max[1] + pad},
	)
}

func newIntersectionIndex(ways []Way, tolerance float64) (*intersectionIndex, error) {
	idx := &intersectionIndex{
		tree:  rtreego.NewTree(2, rtreeMinChildren, rtreeMaxChildren),
		boxes: make([]*wayBox, len(ways)),
	}
	for i := range ways {
		rect, err := boundToRect(ways[i].Geom.Bound(), tolerance)
		if err != nil {
			return nil, errors.Wrapf(err, "Can't prepare bounding box for way #%d", i)
		}
		box := &wayBox{index: i, rect: rect}
		idx.boxes[i] = box
		idx.tree.Insert(box)
	}
	return idx, nil
}

// candidates returns sorted indices of ways which may intersect way with given index (excluding itself)
func (idx *intersectionIndex) candidates(wayIndex int) []int {
	found := idx.tree.SearchIntersect(idx.boxes[wayIndex].rect)
	result := make([]int, 0, len(found))
	for _, obj := range found {
		box := obj.(*wayBox)
		if box.index == wayIndex {
			continue
		}
		result = append(result, box.index)
	}
	sort.Ints(result)
	return result
}
