package writer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/piwi3910/SlabCut/internal/geom"
)

// cmToMM is the coordinate scale factor: internal placements are in
// centimeters, the DXF-like output is in millimeters.
const cmToMM = 10.0

// DXFWriter accumulates a minimal ASCII DXF ENTITIES section: LINE
// entities on layer "0", colored by ACI index, with group boundaries
// marked by group-code-999 comments (DXF has no native grouping
// primitive for a flat LINE stream). Build with NewDXFWriter, drive it
// through the nester.Writer capability set, then call Save.
type DXFWriter struct {
	path string
	body strings.Builder
}

// NewDXFWriter returns a writer that will save to path when Save is called.
func NewDXFWriter(path string) *DXFWriter {
	return &DXFWriter{path: path}
}

// Line emits one LINE entity. Coordinates are converted from
// centimeters to millimeters; color is mapped to an ACI index 1..6
// cyclically.
func (w *DXFWriter) Line(p1, p2 geom.Point, color int) {
	aci := dxfColor(color)
	fmt.Fprintf(&w.body, "0\nLINE\n8\n0\n62\n%d\n10\n%g\n20\n%g\n30\n0.0\n11\n%g\n21\n%g\n31\n0.0\n",
		aci, p1.X*cmToMM, p1.Y*cmToMM, p2.X*cmToMM, p2.Y*cmToMM)
}

// BeginGroup marks the start of a part's entities with a comment;
// plain DXF LINE entities have no group container of their own.
func (w *DXFWriter) BeginGroup(id string) {
	fmt.Fprintf(&w.body, "999\nBEGIN %s\n", id)
}

// EndGroup marks the end of a part's entities.
func (w *DXFWriter) EndGroup() {
	w.body.WriteString("999\nEND\n")
}

// Save writes the accumulated entities, wrapped in a minimal valid
// SECTION/ENDSEC/EOF envelope, to the writer's path. It creates parent
// directories as needed.
func (w *DXFWriter) Save() error {
	if err := os.MkdirAll(filepath.Dir(w.path), 0o755); err != nil {
		return fmt.Errorf("writer: create dxf output dir: %w", err)
	}

	var doc strings.Builder
	doc.WriteString("0\nSECTION\n2\nENTITIES\n")
	doc.WriteString(w.body.String())
	doc.WriteString("0\nENDSEC\n0\nEOF\n")

	if err := os.WriteFile(w.path, []byte(doc.String()), 0o644); err != nil {
		return fmt.Errorf("writer: write dxf file %s: %w", w.path, err)
	}
	return nil
}
