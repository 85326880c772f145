// Package export provides PDF output for nesting results: QR-coded
// part labels and a to-scale cut-layout report.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/piwi3910/SlabCut/internal/geom"
	"github.com/piwi3910/SlabCut/internal/model"
)

// LabelInfo holds the data encoded into each part label's QR code.
type LabelInfo struct {
	PartLabel string  `json:"label"`
	Width     float64 `json:"width_cm"`
	Height    float64 `json:"height_cm"`
	Angle     float64 `json:"angle_deg"`
	X         float64 `json:"x_cm"`
	Y         float64 `json:"y_cm"`
	HostLabel string  `json:"host_label,omitempty"`
}

// Label layout constants for Avery 5160-compatible labels (3 columns, 10 rows per page).
// Each label cell is approximately 66.7mm x 25.4mm on US Letter paper.
const (
	labelPageWidth  = 215.9 // US Letter width in mm
	labelPageHeight = 279.4 // US Letter height in mm
	labelMarginTop  = 12.7  // mm
	labelMarginLeft = 4.8   // mm
	labelWidth      = 66.7  // mm per label
	labelHeight     = 25.4  // mm per label
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0 // QR code size in mm
	labelPadding    = 2.0  // mm internal padding
)

// ExportLabels generates a PDF of QR-coded labels for every placed
// part in the nester. Each label contains the part name, bounding-box
// dimensions, and a QR code encoding the placement as JSON.
func ExportLabels(path string, parts []model.Part, placements []model.Placement) error {
	labels := CollectLabelInfos(parts, placements)
	if len(labels) == 0 {
		return fmt.Errorf("export: no parts placed to generate labels for")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, label := range labels {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		if err := renderLabel(pdf, x, y, label); err != nil {
			return fmt.Errorf("export: render label for %q: %w", label.PartLabel, err)
		}
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("export: write labels pdf %s: %w", path, err)
	}
	return nil
}

// renderLabel draws a single label at the given position.
func renderLabel(pdf *fpdf.Fpdf, x, y float64, info LabelInfo) error {
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("marshal label info: %w", err)
	}

	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_%s_%d", info.PartLabel, int(info.X*1000+info.Y))
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)

	partLabel := info.PartLabel
	if pdf.GetStringWidth(partLabel) > textW {
		for len(partLabel) > 0 && pdf.GetStringWidth(partLabel+"...") > textW {
			partLabel = partLabel[:len(partLabel)-1]
		}
		partLabel += "..."
	}
	pdf.CellFormat(textW, 4.5, partLabel, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5)
	dims := fmt.Sprintf("%.0f x %.0f cm", info.Width, info.Height)
	pdf.CellFormat(textW, 3.5, dims, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+9)
	posInfo := fmt.Sprintf("(%.0f, %.0f) @ %.0f\xb0", info.X, info.Y, info.Angle)
	if info.HostLabel != "" {
		posInfo = fmt.Sprintf("in %s, %s", info.HostLabel, posInfo)
	}
	pdf.CellFormat(textW, 3, posInfo, "", 1, "L", false, 0, "")

	pdf.SetTextColor(0, 0, 0)
	return nil
}

// CollectLabelInfos extracts label information from a nester's parts
// and placements for use in testing or alternative export formats.
func CollectLabelInfos(parts []model.Part, placements []model.Placement) []LabelInfo {
	labels := make([]LabelInfo, 0, len(parts))
	for i, p := range parts {
		if i >= len(placements) {
			break
		}
		pl := placements[i]
		bb := geom.ComputeBB(p.Polygon())

		info := LabelInfo{
			PartLabel: p.Label,
			Width:     bb.Width(),
			Height:    bb.Height(),
			Angle:     pl.Angle,
			X:         pl.X,
			Y:         pl.Y,
		}
		if !pl.IsSheetLevel() && pl.HostPartIndex < len(parts) {
			info.HostLabel = parts[pl.HostPartIndex].Label
		}
		labels = append(labels, info)
	}
	return labels
}
