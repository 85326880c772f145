// Package writer implements the two textual output formats the
// nesting engine drives through the nester.Writer capability set: a
// DXF-like line stream and an SVG-like document, each as both a
// file-backed writer and (for SVG) an in-memory string writer used for
// live preview.
package writer

// namedColors is the fixed SVG palette, cycled by cut-order color.
var namedColors = []string{
	"black", "red", "blue", "green", "purple", "orange",
	"brown", "teal", "maroon", "darkviolet", "darkorange", "darkgreen",
}

func namedColor(c int) string {
	idx := (c - 1) % len(namedColors)
	if idx < 0 {
		idx += len(namedColors)
	}
	return namedColors[idx]
}

// dxfColor maps a cut-order color to a native ACI index, 1..6 cyclically.
func dxfColor(c int) int {
	idx := (c - 1) % 6
	if idx < 0 {
		idx += 6
	}
	return idx + 1
}
