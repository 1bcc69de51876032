package report

import "fmt"

// drawGrid overlays the calibration grid: a uniform pixel grid, every row
// top from the layout, and both time-axis boundaries, each labelled with its
// raw pixel value. Reading those labels off a printout is how the layout
// constants are re-measured when the artwork changes.
func (r *renderer) drawGrid() {
	l := r.layout
	pageW, pageH := l.PageWidthPt, l.PageHeightPt

	r.canvas.SetStrokeColor(ColorGrid)
	r.canvas.SetFillColor(ColorGrid)
	r.canvas.SetLineWidth(0.5)
	r.canvas.SetFontSize(l.GridFontSize)

	for px := 0.0; px < l.RasterWidthPx; px += l.GridStridePx {
		x := r.mapper.X(px)
		r.canvas.Line(x, 0, x, pageH)
		r.canvas.Text(x+1, pageH-10, fmt.Sprintf("%g", px))
	}
	for px := 0.0; px < l.RasterHeightPx; px += l.GridStridePx {
		y := r.mapper.Y(px)
		r.canvas.Line(0, y, pageW, y)
		r.canvas.Text(1, y+1, fmt.Sprintf("%g", px))
	}

	r.canvas.SetStrokeColor(ColorAccent)
	r.canvas.SetFillColor(ColorAccent)
	for i, top := range l.RowTops {
		y := r.mapper.Y(top)
		r.canvas.Line(0, y, pageW, y)
		r.canvas.Text(50, y+2, fmt.Sprintf("D%d: %g", i+1, top))
	}

	for _, b := range []struct {
		name string
		px   float64
	}{{"Start", l.AxisStartPx}, {"End", l.AxisEndPx}} {
		x := r.mapper.X(b.px)
		r.canvas.Line(x, 0, x, pageH)
		r.canvas.Text(x+2, 400, fmt.Sprintf("%s (X=%g)", b.name, b.px))
	}
}
