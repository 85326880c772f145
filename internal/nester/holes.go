package nester

import (
	"math"
	"sort"

	"github.com/piwi3910/SlabCut/internal/geom"
	"github.com/piwi3910/SlabCut/internal/model"
)

// holeCandidate is a (host part, hole index) pair a tenant might fit
// inside.
type holeCandidate struct {
	HostIndex int
	HoleIndex int
}

// partMinDims returns min(width, height) of each part's own
// untransformed bounding box.
func (n *Nester) partMinDims() []float64 {
	dims := make([]float64, len(n.parts))
	for i, poly := range n.polygons {
		bb := geom.ComputeBB(poly)
		dims[i] = math.Min(bb.Width(), bb.Height())
	}
	return dims
}

// buildHoleCandidates returns, for each part index, the candidate
// (host, hole) slots that might be large enough to hold it, sorted
// ascending by the hole's own min(width, height) — tightest first. The
// admissibility test compares bounding boxes in the parts' own
// coordinate frames; it is a fast, orientation-agnostic screen, not a
// guarantee of fit. A part is never a candidate for its own hole.
func (n *Nester) buildHoleCandidates() [][]holeCandidate {
	dims := n.partMinDims()
	candidates := make([][]holeCandidate, len(n.parts))

	for pi := range n.parts {
		type scored struct {
			cand holeCandidate
			dim  float64
		}
		var scoredList []scored

		for hi := range n.parts {
			if hi == pi {
				continue
			}
			for holeIdx, holePoly := range n.holePolys[hi] {
				hbb := geom.ComputeBB(holePoly)
				hdim := math.Min(hbb.Width(), hbb.Height())
				if dims[pi] < hdim {
					scoredList = append(scoredList, scored{holeCandidate{hi, holeIdx}, hdim})
				}
			}
		}

		sort.Slice(scoredList, func(a, b int) bool { return scoredList[a].dim < scoredList[b].dim })

		out := make([]holeCandidate, len(scoredList))
		for i, s := range scoredList {
			out[i] = s.cand
		}
		candidates[pi] = out
	}

	return candidates
}

// centeredInHole computes the (x, y) that centers poly's
// angle-rotated bounding box on a hole's placed centroid.
func centeredInHole(poly geom.Polygon, angle float64, centre geom.Point) (x, y float64) {
	rotated := geom.TransformPolygon(poly, geom.MakeTransformation(angle, 0, 0))
	rbb := geom.ComputeBB(rotated)
	return centre.X - rbb.Width()/2, centre.Y - rbb.Height()/2
}

// greedyPrepass assigns each part to the tightest host hole it can
// validly occupy, largest part first. Parts that find no home stay at
// their row-layout position for the annealer to work with.
func (n *Nester) greedyPrepass(candidates [][]holeCandidate) {
	dims := n.partMinDims()
	order := make([]int, len(n.parts))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool { return dims[order[a]] > dims[order[b]] })

	for _, pi := range order {
		if len(n.polygons[pi]) == 0 {
			continue
		}

		for _, cand := range candidates[pi] {
			prevPlacement := n.placements[pi]
			prevPlaced := n.placed[pi]

			centre := n.holeCentre(cand.HostIndex, cand.HoleIndex)
			x, y := centeredInHole(n.polygons[pi], prevPlacement.Angle, centre)

			n.placements[pi].HostPartIndex = cand.HostIndex
			n.placements[pi].HostHoleIndex = cand.HoleIndex
			n.placements[pi].X = x
			n.placements[pi].Y = y
			n.refreshPlaced(pi)

			if n.isValidSingle(pi, 0) {
				n.syncRelInHole(pi)
				break
			}

			n.placements[pi] = prevPlacement
			n.placed[pi] = prevPlaced
		}
	}
}

// isValidSingle checks part idx against every other part sharing its
// placement context: sheet-level parts are checked for non-overlap and
// kerf separation against other sheet-level parts; hole-placed parts
// are checked for containment in their host hole and non-overlap
// against other tenants of the same hole.
func (n *Nester) isValidSingle(idx int, kerf float64) bool {
	poly := n.placed[idx]
	if len(poly) == 0 {
		return true
	}
	pl := n.placements[idx]

	if pl.HostPartIndex == model.SheetLevel {
		bbA := geom.ComputeBB(poly)
		for j := range n.parts {
			if j == idx || n.placements[j].HostPartIndex != model.SheetLevel {
				continue
			}
			other := n.placed[j]
			if len(other) == 0 {
				continue
			}
			bbB := geom.ComputeBB(other)
			if !bbA.Overlaps(bbB, kerf) {
				continue
			}
			if geom.PolygonsOverlap(poly, other) {
				return false
			}
			if kerf > 0 && geom.PolygonMinDistance(poly, other) < kerf {
				return false
			}
		}
		return true
	}

	holePoly := n.placedHolePolygon(pl.HostPartIndex, pl.HostHoleIndex)
	for _, v := range poly {
		if !geom.PointInPolygon(v, holePoly) {
			return false
		}
	}
	for j := range n.parts {
		if j == idx {
			continue
		}
		other := n.placements[j]
		if other.HostPartIndex != pl.HostPartIndex || other.HostHoleIndex != pl.HostHoleIndex {
			continue
		}
		otherPoly := n.placed[j]
		if len(otherPoly) == 0 {
			continue
		}
		if geom.PolygonsOverlap(poly, otherPoly) {
			return false
		}
	}
	return true
}

// isValidSet reports whether every index in the set independently
// passes isValidSingle.
func (n *Nester) isValidSet(indices []int, kerf float64) bool {
	for _, idx := range indices {
		if !n.isValidSingle(idx, kerf) {
			return false
		}
	}
	return true
}
