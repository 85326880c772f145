package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/SlabCut/internal/geom"
	"github.com/piwi3910/SlabCut/internal/model"
)

// partColor represents an RGB color for a placed part.
type partColor struct {
	R, G, B int
}

// partColors cycles by nesting depth: sheet-level parts get the first
// color, parts nested one hole deep the second, and so on.
var partColors = []partColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// ExportReport generates a PDF report of a nested layout: a to-scale
// diagram of every placed part (outer ring filled by nesting depth,
// hole rings outlined), followed by a statistics page. issues, if
// non-empty, is rendered as a validation-warnings section (pass the
// result of Nester.Validate).
func ExportReport(path string, parts []model.Part, placements []model.Placement, kerf float64, issues []string) error {
	if len(parts) == 0 {
		return fmt.Errorf("export: no parts to report")
	}
	if len(placements) != len(parts) {
		return fmt.Errorf("export: %d parts but %d placements", len(parts), len(placements))
	}

	placed := placePolygons(parts, placements)

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	pdf.AddPage()
	renderLayoutPage(pdf, parts, placements, placed)

	pdf.AddPage()
	renderReportSummaryPage(pdf, parts, placements, placed, kerf, issues)

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("export: write report pdf %s: %w", path, err)
	}
	return nil
}

// placedPart holds one part's placed outer and hole polygons and its
// nesting depth (0 = sheet-level).
type placedPart struct {
	outer geom.Polygon
	holes []geom.Polygon
	depth int
}

func placePolygons(parts []model.Part, placements []model.Placement) []placedPart {
	placed := make([]placedPart, len(parts))
	for i, p := range parts {
		pl := placements[i]
		placed[i].outer = geom.ComputePlacedPolygon(p.Polygon(), pl.X, pl.Y, pl.Angle)

		holePolys := p.HolePolygons()
		placed[i].holes = make([]geom.Polygon, len(holePolys))
		for j, hp := range holePolys {
			t := geom.PlacementTransform(p.Polygon(), pl.X, pl.Y, pl.Angle)
			placed[i].holes[j] = geom.TransformPolygon(hp, t)
		}
	}
	for i, pl := range placements {
		depth := 0
		for !pl.IsSheetLevel() {
			depth++
			pl = placements[pl.HostPartIndex]
		}
		placed[i].depth = depth
	}
	return placed
}

func sheetLevelBoundingBox(placements []model.Placement, placed []placedPart) geom.BoundingBox {
	bb := geom.EmptyBoundingBox()
	for i, pl := range placements {
		if !pl.IsSheetLevel() || len(placed[i].outer) == 0 {
			continue
		}
		bb.Join(geom.ComputeBB(placed[i].outer))
	}
	return bb
}

func toFpdfPoints(poly geom.Polygon, scale, offsetX, offsetY float64) []fpdf.PointType {
	pts := make([]fpdf.PointType, len(poly))
	for i, v := range poly {
		pts[i] = fpdf.PointType{X: offsetX + v.X*scale, Y: offsetY + v.Y*scale}
	}
	return pts
}

func renderLayoutPage(pdf *fpdf.Fpdf, parts []model.Part, placements []model.Placement, placed []placedPart) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, "Nested Layout", "", 0, "L", false, 0, "")

	bb := sheetLevelBoundingBox(placements, placed)
	if bb.Width() <= 0 || bb.Height() <= 0 {
		return
	}

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom

	scale := math.Min(drawWidth/bb.Width(), drawHeight/bb.Height())
	canvasW := bb.Width() * scale
	canvasH := bb.Height() * scale
	offsetX := marginLeft + (drawWidth-canvasW)/2 - bb.MinX*scale
	offsetY := drawAreaTop - bb.MinY*scale

	pdf.SetFillColor(210, 180, 140)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(marginLeft+(drawWidth-canvasW)/2, drawAreaTop, canvasW, canvasH, "FD")

	for i, p := range placed {
		if len(p.outer) < 3 {
			continue
		}
		col := partColors[p.depth%len(partColors)]
		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)
		pdf.Polygon(toFpdfPoints(p.outer, scale, offsetX, offsetY), "FD")

		for _, h := range p.holes {
			if len(h) < 3 {
				continue
			}
			pdf.SetFillColor(210, 180, 140)
			pdf.SetDrawColor(30, 30, 30)
			pdf.Polygon(toFpdfPoints(h, scale, offsetX, offsetY), "FD")
		}

		partBB := geom.ComputeBB(p.outer)
		pw, ph := partBB.Width()*scale, partBB.Height()*scale
		if pw > 15 && ph > 8 {
			pdf.SetFont("Helvetica", "", labelFontSize(pw, ph))
			pdf.SetTextColor(0, 0, 0)
			label := parts[i].Label
			labelW := pdf.GetStringWidth(label)
			if labelW < pw-2 {
				cx := offsetX + partBB.Center().X*scale
				cy := offsetY + partBB.Center().Y*scale
				pdf.SetXY(cx-labelW/2, cy-2)
				pdf.CellFormat(labelW, 4, label, "", 0, "C", false, 0, "")
			}
		}
	}
}

func renderReportSummaryPage(pdf *fpdf.Fpdf, parts []model.Part, placements []model.Placement, placed []placedPart, kerf float64, issues []string) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Nesting Report", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	bb := sheetLevelBoundingBox(placements, placed)
	usedArea := 0.0
	sheetLevelCount := 0
	for i, pl := range placements {
		if pl.IsSheetLevel() {
			sheetLevelCount++
		}
		usedArea += polygonArea(placed[i].outer)
	}
	totalArea := bb.Width() * bb.Height()
	efficiency := 0.0
	if totalArea > 0 {
		efficiency = usedArea / totalArea * 100
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Overall Statistics", "", 0, "L", false, 0, "")
	y += 9

	summaryItems := []struct{ label, value string }{
		{"Total Parts", fmt.Sprintf("%d", len(parts))},
		{"Sheet-Level Parts", fmt.Sprintf("%d", sheetLevelCount)},
		{"Nested Parts", fmt.Sprintf("%d", len(parts)-sheetLevelCount)},
		{"Bounding Box", fmt.Sprintf("%.1f x %.1f cm", bb.Width(), bb.Height())},
		{"Used / Total Area", fmt.Sprintf("%.0f / %.0f cm²", usedArea, totalArea)},
		{"Packing Efficiency", fmt.Sprintf("%.1f%%", efficiency)},
		{"Kerf", fmt.Sprintf("%.2f cm", kerf)},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(60, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	if len(issues) > 0 {
		y += 8
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(200, 0, 0)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(200, 7, "WARNING: Validation Issues", "", 0, "L", false, 0, "")
		y += 8

		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(0, 0, 0)
		for _, issue := range issues {
			pdf.SetXY(marginLeft+5, y)
			pdf.CellFormat(200, 5, "- "+issue, "", 0, "L", false, 0, "")
			y += 5
		}
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by SlabCut - 2D Nesting Engine", "", 0, "C", false, 0, "")
}

// labelFontSize returns an appropriate font size based on the rectangle dimensions.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 40:
		return 8
	case minDim > 20:
		return 7
	default:
		return 6
	}
}

// polygonArea computes the absolute area of a polygon via the shoelace formula.
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
