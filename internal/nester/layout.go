package nester

import (
	"math"

	"github.com/piwi3910/SlabCut/internal/geom"
	"github.com/piwi3910/SlabCut/internal/model"
)

// ComputeInitialPlacement lays parts out along the +X axis, all at
// y = 0, all on the sheet. Parts wider than they are tall are rotated
// -90° (portrait preferred); empty-polygon parts get an identity
// placement and do not advance the offset. It is pure: it reads only
// n.parts and n.kerf and does not mutate the nester, so it can also be
// used by Write's fallback layout when Run has not been called.
func (n *Nester) ComputeInitialPlacement() []model.Placement {
	placements := make([]model.Placement, len(n.parts))
	spacing := math.Max(n.kerf, 1e-9)
	offset := 0.0

	for i, part := range n.parts {
		poly := part.Polygon()
		if len(poly) == 0 {
			placements[i] = model.IdentityPlacement()
			continue
		}

		bb := geom.ComputeBB(poly)
		angle := 0.0
		if bb.Width() > bb.Height() {
			angle = -90
		}

		rotated := geom.TransformPolygon(poly, geom.MakeTransformation(angle, 0, 0))
		rbb := geom.ComputeBB(rotated)

		placements[i] = model.Placement{
			X:             offset,
			Y:             0,
			Angle:         angle,
			HostPartIndex: model.SheetLevel,
		}
		offset += rbb.Width() + spacing
	}

	return placements
}
