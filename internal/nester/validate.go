package nester

import (
	"fmt"
	"math"

	"github.com/piwi3910/SlabCut/internal/geom"
	"github.com/piwi3910/SlabCut/internal/model"
)

// rigidBodySlack is the tolerance on edge-length preservation.
const rigidBodySlack = 1e-6

// kerfSlack absorbs floating-point drift in the post-run kerf audit;
// the SA loop itself enforces strict kerf at move time.
const kerfSlack = 1e-4

// Validate inspects the current placements and returns a list of
// human-readable problems; an empty list means the layout is valid.
func (n *Nester) Validate() []string {
	if len(n.placements) == 0 || len(n.placements) != len(n.parts) {
		return []string{"run() has not been called"}
	}

	var errs []string
	errs = append(errs, n.validateRigidBody()...)
	errs = append(errs, n.validateSheetLevel()...)
	errs = append(errs, n.validateHoleContainment()...)
	errs = append(errs, n.validateSameContext()...)
	return errs
}

func (n *Nester) validateRigidBody() []string {
	var errs []string
	for i, part := range n.parts {
		orig := part.Polygon()
		placed := n.placed[i]
		if len(orig) != len(placed) {
			errs = append(errs, fmt.Sprintf("part %d: placed vertex count %d does not match original %d", i, len(placed), len(orig)))
			continue
		}
		nv := len(orig)
		for k := 0; k < nv; k++ {
			o1, o2 := orig[k], orig[(k+1)%nv]
			p1, p2 := placed[k], placed[(k+1)%nv]
			origLen := math.Hypot(o2.X-o1.X, o2.Y-o1.Y)
			placedLen := math.Hypot(p2.X-p1.X, p2.Y-p1.Y)
			if math.Abs(origLen-placedLen) >= rigidBodySlack {
				errs = append(errs, fmt.Sprintf("part %d: edge %d length changed from %g to %g", i, k, origLen, placedLen))
			}
		}
	}
	return errs
}

func (n *Nester) validateSheetLevel() []string {
	var errs []string
	for i := range n.parts {
		for j := i + 1; j < len(n.parts); j++ {
			if n.placements[i].HostPartIndex != model.SheetLevel || n.placements[j].HostPartIndex != model.SheetLevel {
				continue
			}
			a, b := n.placed[i], n.placed[j]
			if len(a) == 0 || len(b) == 0 {
				continue
			}
			if geom.PolygonsOverlap(a, b) {
				errs = append(errs, fmt.Sprintf("sheet-level parts %d and %d overlap", i, j))
				continue
			}
			if n.kerf > 0 {
				if d := geom.PolygonMinDistance(a, b); d < n.kerf-kerfSlack {
					errs = append(errs, fmt.Sprintf("sheet-level parts %d and %d are %g apart, less than kerf %g", i, j, d, n.kerf))
				}
			}
		}
	}
	return errs
}

func (n *Nester) validateHoleContainment() []string {
	var errs []string
	for i, pl := range n.placements {
		if pl.HostPartIndex == model.SheetLevel || len(n.placed[i]) == 0 {
			continue
		}
		holePoly := n.placedHolePolygon(pl.HostPartIndex, pl.HostHoleIndex)
		for _, v := range n.placed[i] {
			if !geom.PointInPolygon(v, holePoly) {
				errs = append(errs, fmt.Sprintf("part %d: placed polygon has a vertex outside its host hole", i))
				break
			}
		}
	}
	return errs
}

func (n *Nester) validateSameContext() []string {
	var errs []string
	for i := range n.parts {
		for j := i + 1; j < len(n.parts); j++ {
			pi, pj := n.placements[i], n.placements[j]
			if pi.HostPartIndex == model.SheetLevel || pj.HostPartIndex == model.SheetLevel {
				continue
			}
			if pi.HostPartIndex != pj.HostPartIndex || pi.HostHoleIndex != pj.HostHoleIndex {
				continue
			}
			a, b := n.placed[i], n.placed[j]
			if len(a) == 0 || len(b) == 0 {
				continue
			}
			if geom.PolygonsOverlap(a, b) {
				errs = append(errs, fmt.Sprintf("parts %d and %d share a hole and overlap", i, j))
			}
		}
	}
	return errs
}
