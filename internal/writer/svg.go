package writer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/piwi3910/SlabCut/internal/geom"
)

// svgBuilder holds the shared SVG-assembly logic between the
// file-backed and in-memory writers: they differ only in stroke width,
// padding factor, and where the finished document goes.
type svgBuilder struct {
	body strings.Builder
	bb   geom.BoundingBox

	strokeWidth   float64
	paddingFactor float64
}

func newSVGBuilder(strokeWidth, paddingFactor float64) svgBuilder {
	return svgBuilder{bb: geom.EmptyBoundingBox(), strokeWidth: strokeWidth, paddingFactor: paddingFactor}
}

func (b *svgBuilder) line(p1, p2 geom.Point, color int) {
	b.bb.Join(geom.BoundingBox{MinX: min(p1.X, p2.X), MinY: min(p1.Y, p2.Y), MaxX: max(p1.X, p2.X), MaxY: max(p1.Y, p2.Y)})
	fmt.Fprintf(&b.body, "<line x1=\"%g\" y1=\"%g\" x2=\"%g\" y2=\"%g\" stroke=\"%s\" stroke-width=\"%g\"/>\n",
		p1.X, p1.Y, p2.X, p2.Y, namedColor(color), b.strokeWidth)
}

func (b *svgBuilder) beginGroup(id string) {
	fmt.Fprintf(&b.body, "<g id=\"%s\">\n", id)
}

func (b *svgBuilder) endGroup() {
	b.body.WriteString("</g>\n")
}

// document assembles the final SVG text: XML declaration, an <svg>
// root with a computed view-box padded to contain everything drawn, or
// a minimal empty document if nothing was drawn.
func (b *svgBuilder) document() string {
	var doc strings.Builder
	doc.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")

	if b.body.Len() == 0 {
		doc.WriteString(`<svg xmlns="http://www.w3.org/2000/svg" version="1.1" width="0" height="0" viewBox="0 0 0 0"></svg>` + "\n")
		return doc.String()
	}

	w, h := b.bb.Width(), b.bb.Height()
	pad := (w+h)*b.paddingFactor + 0.5
	minX, minY := b.bb.MinX-pad, b.bb.MinY-pad
	vbw, vbh := w+2*pad, h+2*pad

	fmt.Fprintf(&doc, `<svg xmlns="http://www.w3.org/2000/svg" version="1.1" width="%g" height="%g" viewBox="%g %g %g %g">`+"\n",
		vbw, vbh, minX, minY, vbw, vbh)
	doc.WriteString(b.body.String())
	doc.WriteString("</svg>\n")
	return doc.String()
}

// SVGWriter is the file-backed SVG-like writer: stroke-width 0.02,
// padding factor 0.02.
type SVGWriter struct {
	path string
	svgBuilder
}

// NewSVGWriter returns a writer that will save to path when Save is called.
func NewSVGWriter(path string) *SVGWriter {
	return &SVGWriter{path: path, svgBuilder: newSVGBuilder(0.02, 0.02)}
}

func (w *SVGWriter) Line(p1, p2 geom.Point, color int) { w.line(p1, p2, color) }
func (w *SVGWriter) BeginGroup(id string)              { w.beginGroup(id) }
func (w *SVGWriter) EndGroup()                         { w.endGroup() }

// Save writes the assembled document to the writer's path, creating
// parent directories as needed.
func (w *SVGWriter) Save() error {
	if err := os.MkdirAll(filepath.Dir(w.path), 0o755); err != nil {
		return fmt.Errorf("writer: create svg output dir: %w", err)
	}
	if err := os.WriteFile(w.path, []byte(w.document()), 0o644); err != nil {
		return fmt.Errorf("writer: write svg file %s: %w", w.path, err)
	}
	return nil
}
