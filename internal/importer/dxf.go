package importer

import (
	"fmt"
	"math"
	"sort"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"

	"github.com/piwi3910/SlabCut/internal/geom"
	"github.com/piwi3910/SlabCut/internal/model"
)

// segment is a line segment between two 2D points, used for chaining
// disconnected LINE/ARC entities into closed loops.
type segment struct {
	start geom.Point
	end   geom.Point
}

// loop is one closed polyline traced from the drawing, before it has
// been assigned as an outer ring or a hole.
type loop struct {
	poly geom.Polygon
	area float64
}

// ImportDXF traces every closed shape in a DXF file (LWPOLYLINE,
// CIRCLE, or a chain of connected LINEs/ARCs) and groups them into
// parts: within each group of nested loops, the outermost becomes the
// part's outer ring and every loop it contains becomes a hole ring.
func ImportDXF(path string) ImportResult {
	result := ImportResult{}

	drawing, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("cannot open DXF file: %v", err))
		return result
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	var polys []geom.Polygon
	var segments []segment

	for _, ent := range entities {
		switch e := ent.(type) {
		case *entity.LwPolyline:
			poly := lwPolylineToPolygon(e)
			if len(poly) >= 3 {
				polys = append(polys, poly)
			} else {
				result.Warnings = append(result.Warnings, "skipped LWPOLYLINE with fewer than 3 vertices")
			}

		case *entity.Circle:
			polys = append(polys, circleToPolygon(e, 64))

		case *entity.Arc:
			pts := arcToPoints(e, 32)
			if len(pts) >= 2 {
				segments = append(segments, pointsToSegments(pts)...)
			}

		case *entity.Line:
			segments = append(segments, segment{
				start: geom.Point{X: e.Start[0], Y: e.Start[1]},
				end:   geom.Point{X: e.End[0], Y: e.End[1]},
			})

		default:
			// Unsupported entity types are silently skipped.
		}
	}

	for _, chained := range chainSegments(segments, 0.01) {
		if len(chained) >= 3 {
			polys = append(polys, chained)
		}
	}

	if len(polys) == 0 {
		result.Errors = append(result.Errors, "no closed shapes found in DXF file")
		return result
	}

	loops := make([]loop, len(polys))
	for i, p := range polys {
		loops[i] = loop{poly: p, area: polygonArea(p)}
	}

	for partNum, part := range groupLoopsIntoParts(loops) {
		bb := geom.ComputeBB(part.Outer.Polygon())
		if bb.Width() < 0.01 || bb.Height() < 0.01 {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("skipped degenerate shape (%.2f x %.2f mm)", bb.Width(), bb.Height()))
			continue
		}
		result.Parts = append(result.Parts, model.NewPart(fmt.Sprintf("DXF Part %d", partNum+1), part.Outer, part.Holes...))
	}

	return result
}

// groupLoopsIntoParts assigns each loop a parent (the smallest other
// loop that contains its first vertex), then groups every loop by its
// topmost ancestor: the ancestor (no parent) becomes a part's outer
// ring, and every other loop in its group becomes a hole ring.
func groupLoopsIntoParts(loops []loop) []model.Part {
	parent := make([]int, len(loops))
	for i := range loops {
		parent[i] = -1
		bestArea := math.Inf(1)
		if len(loops[i].poly) == 0 {
			continue
		}
		probe := loops[i].poly[0]
		for j := range loops {
			if i == j {
				continue
			}
			if geom.PointInPolygon(probe, loops[j].poly) && loops[j].area < bestArea {
				bestArea = loops[j].area
				parent[i] = j
			}
		}
	}

	root := func(i int) int {
		seen := map[int]bool{}
		for parent[i] != -1 && !seen[i] {
			seen[i] = true
			i = parent[i]
		}
		return i
	}

	groups := map[int][]int{}
	for i := range loops {
		r := root(i)
		groups[r] = append(groups[r], i)
	}

	var roots []int
	for r := range groups {
		roots = append(roots, r)
	}
	sort.Ints(roots)

	parts := make([]model.Part, 0, len(roots))
	for _, r := range roots {
		outer := model.NewPolygonRing(loops[r].poly)
		var holes []model.Ring
		for _, m := range groups[r] {
			if m == r {
				continue
			}
			holes = append(holes, model.NewPolygonRing(loops[m].poly))
		}
		parts = append(parts, model.Part{Outer: outer, Holes: holes})
	}
	return parts
}

// lwPolylineToPolygon converts a DXF LWPOLYLINE entity to a polygon.
// Bulge values on vertices produce interpolated arc segments.
func lwPolylineToPolygon(lw *entity.LwPolyline) geom.Polygon {
	var poly geom.Polygon

	for i := 0; i < len(lw.Vertices); i++ {
		v := lw.Vertices[i]
		current := geom.Point{X: v[0], Y: v[1]}

		bulge := 0.0
		if i < len(lw.Bulges) {
			bulge = lw.Bulges[i]
		}

		if math.Abs(bulge) > 1e-9 {
			nextIdx := (i + 1) % len(lw.Vertices)
			next := geom.Point{X: lw.Vertices[nextIdx][0], Y: lw.Vertices[nextIdx][1]}
			arcPts := bulgeArcPoints(current, next, bulge, 32)
			poly = append(poly, arcPts[:len(arcPts)-1]...)
		} else {
			poly = append(poly, current)
		}
	}

	return poly
}

// bulgeArcPoints generates points along an arc defined by two endpoints
// and a DXF bulge factor (the tangent of 1/4 the included angle).
func bulgeArcPoints(p1, p2 geom.Point, bulge float64, numSegments int) geom.Polygon {
	mx, my := (p1.X+p2.X)/2, (p1.Y+p2.Y)/2
	dx, dy := p2.X-p1.X, p2.Y-p1.Y
	chordLen := math.Sqrt(dx*dx + dy*dy)
	if chordLen < 1e-9 {
		return geom.Polygon{p1, p2}
	}

	sagitta := math.Abs(bulge) * chordLen / 2
	radius := (chordLen*chordLen/(4*sagitta) + sagitta) / 2

	perpX, perpY := -dy/chordLen, dx/chordLen
	dist := radius - sagitta
	if bulge > 0 {
		perpX, perpY = -perpX, -perpY
	}
	cx, cy := mx+perpX*dist, my+perpY*dist

	startAngle := math.Atan2(p1.Y-cy, p1.X-cx)
	endAngle := math.Atan2(p2.Y-cy, p2.X-cx)
	if bulge < 0 {
		if endAngle > startAngle {
			endAngle -= 2 * math.Pi
		}
	} else if endAngle < startAngle {
		endAngle += 2 * math.Pi
	}

	pts := make(geom.Polygon, numSegments+1)
	for i := 0; i <= numSegments; i++ {
		t := float64(i) / float64(numSegments)
		angle := startAngle + t*(endAngle-startAngle)
		pts[i] = geom.Point{X: cx + radius*math.Cos(angle), Y: cy + radius*math.Sin(angle)}
	}
	return pts
}

// circleToPolygon approximates a circle as a regular polygon.
func circleToPolygon(c *entity.Circle, numSegments int) geom.Polygon {
	poly := make(geom.Polygon, numSegments)
	cx, cy, r := c.Center[0], c.Center[1], c.Radius
	for i := 0; i < numSegments; i++ {
		angle := 2 * math.Pi * float64(i) / float64(numSegments)
		poly[i] = geom.Point{X: cx + r*math.Cos(angle), Y: cy + r*math.Sin(angle)}
	}
	return poly
}

// arcToPoints converts a DXF ARC entity to a series of points.
func arcToPoints(a *entity.Arc, numSegments int) []geom.Point {
	cx, cy := a.Circle.Center[0], a.Circle.Center[1]
	r := a.Circle.Radius
	startRad := a.Angle[0] * math.Pi / 180
	endRad := a.Angle[1] * math.Pi / 180
	if endRad <= startRad {
		endRad += 2 * math.Pi
	}

	pts := make([]geom.Point, numSegments+1)
	for i := 0; i <= numSegments; i++ {
		t := float64(i) / float64(numSegments)
		angle := startRad + t*(endRad-startRad)
		pts[i] = geom.Point{X: cx + r*math.Cos(angle), Y: cy + r*math.Sin(angle)}
	}
	return pts
}

func pointsToSegments(pts []geom.Point) []segment {
	segs := make([]segment, 0, len(pts)-1)
	for i := 0; i < len(pts)-1; i++ {
		segs = append(segs, segment{start: pts[i], end: pts[i+1]})
	}
	return segs
}

// chainSegments connects individual segments into closed loops.
// tolerance is the maximum distance between endpoints to consider them
// connected.
func chainSegments(segs []segment, tolerance float64) []geom.Polygon {
	if len(segs) == 0 {
		return nil
	}

	used := make([]bool, len(segs))
	var loops []geom.Polygon

	for {
		startIdx := -1
		for i, u := range used {
			if !u {
				startIdx = i
				break
			}
		}
		if startIdx == -1 {
			break
		}

		chain := geom.Polygon{segs[startIdx].start, segs[startIdx].end}
		used[startIdx] = true

		changed := true
		for changed {
			changed = false
			tail := chain[len(chain)-1]

			for i, seg := range segs {
				if used[i] {
					continue
				}
				if pointsClose(tail, seg.start, tolerance) {
					chain = append(chain, seg.end)
					used[i] = true
					changed = true
					break
				}
				if pointsClose(tail, seg.end, tolerance) {
					chain = append(chain, seg.start)
					used[i] = true
					changed = true
					break
				}
			}
		}

		if len(chain) >= 3 && pointsClose(chain[0], chain[len(chain)-1], tolerance) {
			chain = chain[:len(chain)-1]
		}
		if len(chain) >= 3 {
			loops = append(loops, chain)
		}
	}

	sort.Slice(loops, func(i, j int) bool { return polygonArea(loops[i]) > polygonArea(loops[j]) })
	return loops
}

func pointsClose(a, b geom.Point, tolerance float64) bool {
	dx, dy := a.X-b.X, a.Y-b.Y
	return math.Sqrt(dx*dx+dy*dy) <= tolerance
}

// polygonArea computes the absolute area of a polygon via the
// shoelace formula.
func polygonArea(poly geom.Polygon) float64 {
	n := len(poly)
	if n < 3 {
		return 0
	}
	var area float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += poly[i].X*poly[j].Y - poly[j].X*poly[i].Y
	}
	return math.Abs(area) / 2
}
