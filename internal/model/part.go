// Package model defines the part/ring/edge/placement data the nesting
// engine operates on. Geometry predicates live in internal/geom; this
// package only owns the shapes of the data and their projection to
// polygons.
package model

import (
	"math"

	"github.com/google/uuid"

	"github.com/piwi3910/SlabCut/internal/geom"
)

// Edge is a single boundary segment of a ring: either a straight Line
// or an opaque Nurbs. Only Line edges contribute to a ring's polygon
// projection; Nurbs edges are carried through unrendered so future
// callers can attach their own curve renderer.
type Edge interface {
	isEdge()
}

// LineEdge is a straight segment between two points.
type LineEdge struct {
	Start geom.Point `json:"start"`
	End   geom.Point `json:"end"`
}

func (LineEdge) isEdge() {}

// Length returns the Euclidean length of the segment.
func (e LineEdge) Length() float64 {
	dx := e.End.X - e.Start.X
	dy := e.End.Y - e.Start.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// NurbsEdge carries a NURBS curve's control points and knot vector.
// It has no rendering or bounding-box contribution in this engine; it
// exists purely so a caller's own writer can reconstruct the curve.
type NurbsEdge struct {
	ControlPoints []geom.Point `json:"control_points"`
	Knots         []float64    `json:"knots"`
}

func (NurbsEdge) isEdge() {}

// Ring is an ordered, implicitly-closed sequence of edges.
type Ring struct {
	Edges []Edge `json:"edges"`
}

// Polygon projects the ring to a polygon: the sequence of each Line
// edge's start point, in order. Non-Line edges contribute no vertex.
func (r Ring) Polygon() geom.Polygon {
	var poly geom.Polygon
	for _, e := range r.Edges {
		if l, ok := e.(LineEdge); ok {
			poly = append(poly, l.Start)
		}
	}
	return poly
}

// NewRectRing builds a rectangular ring of the given width/height with
// its lower-left corner at (x, y), wound counter-clockwise.
func NewRectRing(x, y, w, h float64) Ring {
	pts := []geom.Point{
		{X: x, Y: y},
		{X: x + w, Y: y},
		{X: x + w, Y: y + h},
		{X: x, Y: y + h},
	}
	return NewPolygonRing(pts)
}

// NewPolygonRing builds a ring of Line edges chaining the given points
// in order, implicitly closing back to the first point.
func NewPolygonRing(pts []geom.Point) Ring {
	if len(pts) == 0 {
		return Ring{}
	}
	edges := make([]Edge, 0, len(pts))
	for i := range pts {
		next := pts[(i+1)%len(pts)]
		edges = append(edges, LineEdge{Start: pts[i], End: next})
	}
	return Ring{Edges: edges}
}

// Part owns exactly one outer ring and any number of inner rings
// (holes). The outer ring's polygon is assumed simple; each inner
// ring's polygon is assumed simple and to lie inside the outer ring —
// the engine trusts callers for this and does not verify it.
type Part struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Outer Ring   `json:"outer"`
	Holes []Ring `json:"holes,omitempty"`
}

// NewPart creates a Part with a fresh ID.
func NewPart(label string, outer Ring, holes ...Ring) Part {
	return Part{
		ID:    uuid.New().String()[:8],
		Label: label,
		Outer: outer,
		Holes: holes,
	}
}

// Polygon returns the outer ring's polygon.
func (p Part) Polygon() geom.Polygon {
	return p.Outer.Polygon()
}

// HolePolygons returns the inner rings' polygons in insertion order.
func (p Part) HolePolygons() []geom.Polygon {
	polys := make([]geom.Polygon, len(p.Holes))
	for i, h := range p.Holes {
		polys[i] = h.Polygon()
	}
	return polys
}

// BoundingBox returns the axis-aligned bounding box of the part's
// untransformed outer polygon.
func (p Part) BoundingBox() geom.BoundingBox {
	return geom.ComputeBB(p.Polygon())
}
