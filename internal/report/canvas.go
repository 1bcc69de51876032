package report

import "io"

// Color is an RGB drawing colour.
type Color struct {
	R, G, B uint8
}

var (
	ColorAccent = Color{B: 255}
	ColorBlack  = Color{}
	ColorGrid   = Color{R: 255}
)

// PaintStyle selects whether a closed shape is filled, stroked or both.
type PaintStyle int

const (
	PaintStroke PaintStyle = iota + 1
	PaintFill
	PaintFillStroke
)

// Point is a position in page space.
type Point struct {
	X, Y float64
}

// GlyphCoverage is implemented by canvases whose font may lack glyphs.
// Uncovered text is still drawn but reported as a SkipMissingGlyphs skip.
type GlyphCoverage interface {
	Covers(s string) bool
}

// Canvas is the drawing surface of one report. Coordinates are page points
// with the origin at the bottom-left corner. A Canvas is owned by a single
// Generate call and is unusable after Finalize.
type Canvas interface {
	SetStrokeColor(c Color)
	SetFillColor(c Color)
	SetLineWidth(w float64)
	SetFontSize(size float64)

	Line(x1, y1, x2, y2 float64)
	// Rect draws a rectangle whose bottom-left corner is (x, y).
	Rect(x, y, w, h float64, style PaintStyle)
	// Polyline strokes an open path through the given points.
	Polyline(points []Point)
	// ClipRect restricts drawing to a rectangle until ClipEnd.
	ClipRect(x, y, w, h float64)
	ClipEnd()

	// Text draws s with its baseline starting at (x, y).
	Text(x, y float64, s string)
	// Marker draws an event glyph with its baseline starting at (x, y).
	Marker(x, y float64, glyph string)
	// Image stretches a raster file over the rectangle with bottom-left
	// corner (x, y). A missing or unreadable file yields ErrMissingAsset.
	Image(path string, x, y, w, h float64) error

	// Finalize writes the document to w. It may be called once.
	Finalize(w io.Writer) error
}
