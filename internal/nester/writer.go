package nester

import (
	"fmt"

	"github.com/piwi3910/SlabCut/internal/geom"
	"github.com/piwi3910/SlabCut/internal/model"
)

// Writer is the capability set the nester drives output through: a
// value type implementing these three operations, with no inheritance
// hierarchy required. Concrete writers live in internal/writer.
type Writer interface {
	Line(p1, p2 geom.Point, color int)
	BeginGroup(id string)
	EndGroup()
}

// depth returns the number of hops from part i to the sheet along the
// hostPartIndex chain, given a placement list.
func depth(placements []model.Placement, i int) int {
	d := 0
	cur := placements[i].HostPartIndex
	for cur != model.SheetLevel {
		d++
		cur = placements[cur].HostPartIndex
	}
	return d
}

// Write drives w through every part's placed edges, grouped one group
// per part, colored by cut order: a part's inner (hole) cuts precede
// its own outer cut, and all of a part's cuts precede its host's. If
// Run has not been called, it falls back to the row-layout algorithm
// with every part at depth 0.
func (n *Nester) Write(w Writer) {
	if len(n.parts) == 0 {
		return
	}

	placements := n.placements
	if len(placements) != len(n.parts) {
		placements = n.ComputeInitialPlacement()
	}

	depths := make([]int, len(n.parts))
	maxDepth := 0
	if len(n.placements) == len(n.parts) {
		for i := range n.parts {
			depths[i] = depth(placements, i)
			if depths[i] > maxDepth {
				maxDepth = depths[i]
			}
		}
	}

	for i, part := range n.parts {
		outer := part.Polygon()
		if len(outer) == 0 {
			continue
		}

		inner := 2*(maxDepth-depths[i]) + 1
		outerColor := 2*(maxDepth-depths[i]) + 2

		pl := placements[i]
		t := geom.PlacementTransform(outer, pl.X, pl.Y, pl.Angle)

		w.BeginGroup(fmt.Sprintf("part_%d", i))
		writeClosedLoop(w, outer, t, outerColor)
		for _, hole := range part.HolePolygons() {
			writeClosedLoop(w, hole, t, inner)
		}
		w.EndGroup()
	}
}

func writeClosedLoop(w Writer, poly geom.Polygon, t geom.Transform, color int) {
	nv := len(poly)
	for k := 0; k < nv; k++ {
		p1 := t.Apply(poly[k])
		p2 := t.Apply(poly[(k+1)%nv])
		w.Line(p1, p2, color)
	}
}
