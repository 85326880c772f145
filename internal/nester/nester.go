// Package nester implements the 2D nesting engine: it takes a set of
// polygonal parts and kerf, lays them out with a greedy hole pre-pass
// followed by simulated annealing, and exposes the resulting
// placements for validation and for driving a Writer.
package nester

import (
	"github.com/piwi3910/SlabCut/internal/geom"
	"github.com/piwi3910/SlabCut/internal/model"
)

// Nester holds the parts to be nested, the placements produced by Run,
// and the caches the optimizer needs to avoid recomputing geometry on
// every move.
type Nester struct {
	parts []model.Part
	kerf  float64

	progress func(current, total int) bool

	polygons  []geom.Polygon   // cached raw outer polygon per part
	holePolys [][]geom.Polygon // cached raw hole polygons per part

	placements []model.Placement
	placed     []geom.Polygon // cached placed outer polygon, kept in sync with placements
	relInHole  []geom.Point   // tenant offset from its hole centre, valid when HostPartIndex >= 0
}

// New returns an empty Nester.
func New() *Nester {
	return &Nester{}
}

// AddPart appends a part to the nester. Parts are immutable once Run
// has been called.
func (n *Nester) AddPart(p model.Part) {
	n.parts = append(n.parts, p)
}

// Parts returns the parts in insertion order.
func (n *Nester) Parts() []model.Part {
	return n.parts
}

// SetKerf sets the minimum sheet-level separation, in centimeters.
func (n *Nester) SetKerf(kerf float64) {
	n.kerf = kerf
}

// Kerf returns the current kerf.
func (n *Nester) Kerf() float64 {
	return n.kerf
}

// SetProgressCallback registers the function invoked after each SA
// outer iteration. Returning false ends the run early; the nester then
// normalizes and returns with the best state found so far. The
// callback must not mutate the nester.
func (n *Nester) SetProgressCallback(f func(current, total int) bool) {
	n.progress = f
}

// GetPlacements returns the placement list, one per part in input
// order. Empty until Run has been called.
func (n *Nester) GetPlacements() []model.Placement {
	return n.placements
}

// Run lays out the parts: row layout, greedy hole pre-pass, simulated
// annealing, and final normalization. An empty part list is a no-op.
// Calling Run again on the same instance recomputes everything from
// scratch and, given the same parts and kerf, produces identical
// placements (the RNG is seeded deterministically).
func (n *Nester) Run() {
	if len(n.parts) == 0 {
		return
	}

	n.cacheGeometry()
	n.placements = n.ComputeInitialPlacement()
	n.placed = make([]geom.Polygon, len(n.parts))
	n.relInHole = make([]geom.Point, len(n.parts))
	for i := range n.parts {
		n.refreshPlaced(i)
	}

	candidates := n.buildHoleCandidates()
	n.greedyPrepass(candidates)
	n.anneal(candidates)
	n.normalize()
}

// LoadPlacements installs an externally-produced placement list (for
// example one loaded from a saved job file) without running the
// optimizer, so Validate can audit it. placements must have one entry
// per part, in the same order as AddPart was called.
func (n *Nester) LoadPlacements(placements []model.Placement) {
	n.cacheGeometry()
	n.placements = placements
	n.placed = make([]geom.Polygon, len(n.parts))
	n.relInHole = make([]geom.Point, len(n.parts))
	for i := range n.parts {
		n.refreshPlaced(i)
	}
	for i, pl := range n.placements {
		if pl.HostPartIndex != model.SheetLevel {
			n.syncRelInHole(i)
		}
	}
}

func (n *Nester) cacheGeometry() {
	n.polygons = make([]geom.Polygon, len(n.parts))
	n.holePolys = make([][]geom.Polygon, len(n.parts))
	for i, p := range n.parts {
		n.polygons[i] = p.Polygon()
		n.holePolys[i] = p.HolePolygons()
	}
}

// refreshPlaced recomputes the cached placed polygon for part i from
// its current placement. A placement's (x, y, angle) has the same
// meaning regardless of host context; containment inside a hole is a
// separate check, not a different placement semantics.
func (n *Nester) refreshPlaced(i int) {
	pl := n.placements[i]
	n.placed[i] = geom.ComputePlacedPolygon(n.polygons[i], pl.X, pl.Y, pl.Angle)
}

// placedHolePolygon transforms host part hostIdx's raw hole ring
// holeIdx by the host's own placement transform.
func (n *Nester) placedHolePolygon(hostIdx, holeIdx int) geom.Polygon {
	pl := n.placements[hostIdx]
	t := geom.PlacementTransform(n.polygons[hostIdx], pl.X, pl.Y, pl.Angle)
	return geom.TransformPolygon(n.holePolys[hostIdx][holeIdx], t)
}

func (n *Nester) holeCentre(hostIdx, holeIdx int) geom.Point {
	return geom.ComputeBB(n.placedHolePolygon(hostIdx, holeIdx)).Center()
}

// syncRelInHole resyncs part i's offset from its current hole's
// centre. No-op for sheet-level parts.
func (n *Nester) syncRelInHole(i int) {
	pl := n.placements[i]
	if pl.HostPartIndex == model.SheetLevel {
		return
	}
	centre := n.holeCentre(pl.HostPartIndex, pl.HostHoleIndex)
	n.relInHole[i] = geom.Point{X: pl.X - centre.X, Y: pl.Y - centre.Y}
}

// childrenOf returns the indices of parts directly hosted by hostIdx.
func (n *Nester) childrenOf(hostIdx int) []int {
	var kids []int
	for i, pl := range n.placements {
		if pl.HostPartIndex == hostIdx {
			kids = append(kids, i)
		}
	}
	return kids
}

// descendants returns every part nested (directly or transitively)
// inside idx, in no particular order.
func (n *Nester) descendants(idx int) []int {
	var out []int
	var walk func(int)
	walk = func(host int) {
		for _, c := range n.childrenOf(host) {
			out = append(out, c)
			walk(c)
		}
	}
	walk(idx)
	return out
}

// cascade recomputes every descendant of hostIdx's (x, y) as its hole
// centre plus its recorded relInHole offset, recursively. Angle is
// left unchanged: tenants slide rigidly with their host, they do not
// rotate with it.
func (n *Nester) cascade(hostIdx int) {
	for _, ci := range n.childrenOf(hostIdx) {
		centre := n.holeCentre(hostIdx, n.placements[ci].HostHoleIndex)
		n.placements[ci].X = centre.X + n.relInHole[ci].X
		n.placements[ci].Y = centre.Y + n.relInHole[ci].Y
		n.refreshPlaced(ci)
		n.cascade(ci)
	}
}

// energy is the bounding-box area of the union of sheet-level placed
// polygons. Hole-placed parts contribute nothing.
func (n *Nester) energy() float64 {
	bb := geom.EmptyBoundingBox()
	any := false
	for i, pl := range n.placements {
		if pl.HostPartIndex != model.SheetLevel || len(n.placed[i]) == 0 {
			continue
		}
		bb.Join(geom.ComputeBB(n.placed[i]))
		any = true
	}
	if !any {
		return 0
	}
	return bb.Width() * bb.Height()
}

// normalize shifts every sheet-level placement so the combined
// bounding box of sheet-level parts starts at the origin, then
// re-cascades hole-placed parts. The cascade pass is repeated N times
// to settle deep nesting chains, matching the reference schedule
// (cascade itself already recurses fully per root, so this is belt
// and braces rather than strictly required).
func (n *Nester) normalize() {
	bb := geom.EmptyBoundingBox()
	any := false
	for i, pl := range n.placements {
		if pl.HostPartIndex != model.SheetLevel || len(n.placed[i]) == 0 {
			continue
		}
		bb.Join(geom.ComputeBB(n.placed[i]))
		any = true
	}
	if !any {
		return
	}

	for i, pl := range n.placements {
		if pl.HostPartIndex != model.SheetLevel {
			continue
		}
		n.placements[i].X -= bb.MinX
		n.placements[i].Y -= bb.MinY
		n.refreshPlaced(i)
	}

	for pass := 0; pass < len(n.parts); pass++ {
		for i, pl := range n.placements {
			if pl.HostPartIndex == model.SheetLevel {
				n.cascade(i)
			}
		}
	}
}
