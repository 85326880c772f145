package writer

import "github.com/piwi3910/SlabCut/internal/geom"

// SVGStringWriter is the in-memory SVG-like writer used for live
// preview: stroke-width 0.05, padding factor 0.03. Call String after
// driving it through a Write call to get the finished document.
type SVGStringWriter struct {
	svgBuilder
}

// NewSVGStringWriter returns an empty in-memory SVG writer.
func NewSVGStringWriter() *SVGStringWriter {
	return &SVGStringWriter{svgBuilder: newSVGBuilder(0.05, 0.03)}
}

func (w *SVGStringWriter) Line(p1, p2 geom.Point, color int) { w.line(p1, p2, color) }
func (w *SVGStringWriter) BeginGroup(id string)              { w.beginGroup(id) }
func (w *SVGStringWriter) EndGroup()                         { w.endGroup() }

// String returns the finished SVG document.
func (w *SVGStringWriter) String() string {
	return w.document()
}
