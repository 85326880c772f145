// Package geom provides the 2D computational-geometry primitives the
// nesting engine operates on: points, bounding boxes, affine transforms,
// and the polygon predicates (intersection, containment, overlap,
// minimum distance) used to validate and score placements.
//
// All coordinates are double-precision centimeters. Angles are degrees,
// with positive angle meaning clockwise rotation (see Transform).
package geom

import "math"

// Point is a 2D coordinate in centimeters.
type Point struct {
	X float64
	Y float64
}

// Polygon is a closed sequence of vertices; the last vertex implicitly
// connects back to the first.
type Polygon []Point

// BoundingBox is an axis-aligned bounding box. The empty box, returned
// by EmptyBoundingBox, has Min = +Inf, Max = -Inf, so Join is
// commutative and the empty box is its identity. The zero value is not
// empty: it is the degenerate box at the origin.
type BoundingBox struct {
	MinX, MinY, MaxX, MaxY float64
}

// EmptyBoundingBox returns the identity bounding box for Join.
func EmptyBoundingBox() BoundingBox {
	return BoundingBox{
		MinX: math.Inf(1),
		MinY: math.Inf(1),
		MaxX: math.Inf(-1),
		MaxY: math.Inf(-1),
	}
}

// Width returns maxX - minX.
func (bb BoundingBox) Width() float64 { return bb.MaxX - bb.MinX }

// Height returns maxY - minY.
func (bb BoundingBox) Height() float64 { return bb.MaxY - bb.MinY }

// Center returns the midpoint of the box.
func (bb BoundingBox) Center() Point {
	return Point{X: (bb.MinX + bb.MaxX) / 2, Y: (bb.MinY + bb.MaxY) / 2}
}

// Join widens bb in place to also cover other.
func (bb *BoundingBox) Join(other BoundingBox) {
	bb.MinX = math.Min(bb.MinX, other.MinX)
	bb.MinY = math.Min(bb.MinY, other.MinY)
	bb.MaxX = math.Max(bb.MaxX, other.MaxX)
	bb.MaxY = math.Max(bb.MaxY, other.MaxY)
}

// Overlaps reports whether two bounding boxes share any area, with an
// optional separation margin: boxes closer than margin on both axes
// are considered overlapping. Used as a cheap pre-reject before exact
// polygon tests.
func (bb BoundingBox) Overlaps(other BoundingBox, margin float64) bool {
	if bb.MaxX+margin < other.MinX || other.MaxX+margin < bb.MinX {
		return false
	}
	if bb.MaxY+margin < other.MinY || other.MaxY+margin < bb.MinY {
		return false
	}
	return true
}

// ComputeBB computes the axis-aligned bounding box of a polygon's vertices.
func ComputeBB(poly Polygon) BoundingBox {
	bb := EmptyBoundingBox()
	for _, p := range poly {
		if p.X < bb.MinX {
			bb.MinX = p.X
		}
		if p.Y < bb.MinY {
			bb.MinY = p.Y
		}
		if p.X > bb.MaxX {
			bb.MaxX = p.X
		}
		if p.Y > bb.MaxY {
			bb.MaxY = p.Y
		}
	}
	return bb
}

// Transform is a 2D affine transform: rotate about the origin, then
// translate.
type Transform struct {
	cos, sin float64
	tx, ty   float64
}

// MakeTransformation builds the transform equivalent to "rotate by
// angleDeg about the origin, then translate by (tx, ty)".
//
// Positive angle is clockwise: the implementation negates the radian
// measure before taking sin/cos, inverting the mathematically standard
// counter-clockwise convention. Any reimplementation of placement math
// must keep this sign everywhere angles are composed (move generation,
// computePlacedPolygon, the initial portrait rule) or flip it
// consistently everywhere at once.
func MakeTransformation(angleDeg, tx, ty float64) Transform {
	rad := -angleDeg * math.Pi / 180.0
	return Transform{cos: math.Cos(rad), sin: math.Sin(rad), tx: tx, ty: ty}
}

// Apply transforms a single point.
func (t Transform) Apply(p Point) Point {
	return Point{
		X: p.X*t.cos - p.Y*t.sin + t.tx,
		Y: p.X*t.sin + p.Y*t.cos + t.ty,
	}
}

// TransformPolygon applies t to every vertex of poly, returning a new polygon.
func TransformPolygon(poly Polygon, t Transform) Polygon {
	out := make(Polygon, len(poly))
	for i, p := range poly {
		out[i] = t.Apply(p)
	}
	return out
}

// PlacementTransform returns the transform T = makeTransformation(angle,
// x - rbb.minX, y - rbb.minY), where rbb is the bounding box of poly
// rotated about the origin by angle. Applying T to poly rotates it
// about the origin, then translates it so the rotated bounding box's
// lower-left corner lands at (x, y) — the only supported meaning of a
// placement's (x, y). Other geometry owned by the same part (e.g. a
// hole ring, in the part's local frame) shares this same transform.
func PlacementTransform(poly Polygon, x, y, angle float64) Transform {
	rotated := TransformPolygon(poly, MakeTransformation(angle, 0, 0))
	rbb := ComputeBB(rotated)
	return MakeTransformation(angle, x-rbb.MinX, y-rbb.MinY)
}

// ComputePlacedPolygon applies poly's own placement transform to itself.
func ComputePlacedPolygon(poly Polygon, x, y, angle float64) Polygon {
	return TransformPolygon(poly, PlacementTransform(poly, x, y, angle))
}

const epsilon = 1e-9

// orientation returns the cross product (b-a) x (c-a): positive for a
// counter-clockwise turn, negative for clockwise, zero for collinear.
// Callers compare the result against epsilon.
func orientation(a, b, c Point) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

func onSegment(a, b, p Point) bool {
	if p.X < math.Min(a.X, b.X)-epsilon || p.X > math.Max(a.X, b.X)+epsilon {
		return false
	}
	if p.Y < math.Min(a.Y, b.Y)-epsilon || p.Y > math.Max(a.Y, b.Y)+epsilon {
		return false
	}
	return true
}

// SegmentsIntersect reports whether closed segments a1-a2 and b1-b2
// share any point.
func SegmentsIntersect(a1, a2, b1, b2 Point) bool {
	d1 := orientation(b1, b2, a1)
	d2 := orientation(b1, b2, a2)
	d3 := orientation(a1, a2, b1)
	d4 := orientation(a1, a2, b2)

	if ((d1 > epsilon && d2 < -epsilon) || (d1 < -epsilon && d2 > epsilon)) &&
		((d3 > epsilon && d4 < -epsilon) || (d3 < -epsilon && d4 > epsilon)) {
		return true
	}

	if math.Abs(d1) <= epsilon && onSegment(b1, b2, a1) {
		return true
	}
	if math.Abs(d2) <= epsilon && onSegment(b1, b2, a2) {
		return true
	}
	if math.Abs(d3) <= epsilon && onSegment(a1, a2, b1) {
		return true
	}
	if math.Abs(d4) <= epsilon && onSegment(a1, a2, b2) {
		return true
	}
	return false
}

// PointInPolygon reports whether p lies inside poly using the even-odd
// horizontal-ray rule. An empty polygon returns false. Boundary
// behavior is consistent but not specified.
func PointInPolygon(p Point, poly Polygon) bool {
	n := len(poly)
	if n == 0 {
		return false
	}
	inside := false
	j := n - 1
	for i := 0; i < n; i++ {
		pi, pj := poly[i], poly[j]
		if (pi.Y > p.Y) != (pj.Y > p.Y) {
			xIntersect := (pj.X-pi.X)*(p.Y-pi.Y)/(pj.Y-pi.Y) + pi.X
			if p.X < xIntersect {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}

// PolygonsOverlap reports whether two polygons share interior area or
// have crossing edges. Fast reject on disjoint bounding boxes; then
// edge-edge intersection; then a containment fallback (needed when one
// polygon fully contains the other with no crossing edges). Either
// polygon being empty returns false.
func PolygonsOverlap(a, b Polygon) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}

	bbA, bbB := ComputeBB(a), ComputeBB(b)
	if bbA.MaxX < bbB.MinX || bbB.MaxX < bbA.MinX || bbA.MaxY < bbB.MinY || bbB.MaxY < bbA.MinY {
		return false
	}

	na, nb := len(a), len(b)
	for i := 0; i < na; i++ {
		a1, a2 := a[i], a[(i+1)%na]
		for j := 0; j < nb; j++ {
			b1, b2 := b[j], b[(j+1)%nb]
			if SegmentsIntersect(a1, a2, b1, b2) {
				return true
			}
		}
	}

	if PointInPolygon(a[0], b) || PointInPolygon(b[0], a) {
		return true
	}
	return false
}

// segmentPointDistance returns the minimum distance from point p to the
// closed segment a-b.
func segmentPointDistance(p, a, b Point) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	lenSq := dx*dx + dy*dy
	if lenSq < epsilon*epsilon {
		ddx, ddy := p.X-a.X, p.Y-a.Y
		return math.Sqrt(ddx*ddx + ddy*ddy)
	}
	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	projX, projY := a.X+t*dx, a.Y+t*dy
	ddx, ddy := p.X-projX, p.Y-projY
	return math.Sqrt(ddx*ddx + ddy*ddy)
}

// PolygonMinDistance returns the minimum distance between any two
// points on the closed boundaries of a and b, computed as the minimum
// of point-to-segment distances over all (vertex, edge) pairs in both
// directions. An empty polygon makes the result +Inf.
func PolygonMinDistance(a, b Polygon) float64 {
	if len(a) == 0 || len(b) == 0 {
		return math.Inf(1)
	}

	min := math.Inf(1)
	na, nb := len(a), len(b)

	for i := 0; i < na; i++ {
		p := a[i]
		for j := 0; j < nb; j++ {
			b1, b2 := b[j], b[(j+1)%nb]
			if d := segmentPointDistance(p, b1, b2); d < min {
				min = d
			}
		}
	}
	for j := 0; j < nb; j++ {
		p := b[j]
		for i := 0; i < na; i++ {
			a1, a2 := a[i], a[(i+1)%na]
			if d := segmentPointDistance(p, a1, a2); d < min {
				min = d
			}
		}
	}
	return min
}
