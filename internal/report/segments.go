package report

import "math"

// drawInterval renders one normalized interval on its day row. Deep, Doze
// and Awake share a band near the top of the row; InBed is an arrowed line
// lower down.
func (r *renderer) drawInterval(iv Interval) error {
	top, err := r.layout.RowTopPx(iv.Day)
	if err != nil {
		return err
	}
	x0 := r.mapper.HourX(iv.Start)
	x1 := r.mapper.HourX(iv.End)

	if iv.Category == CategoryInBed {
		r.drawInBed(x0, x1, r.mapper.Y(top+r.layout.ArrowOffsetPx))
		return nil
	}

	barTop := top + r.layout.BarOffsetPx
	yTop := r.mapper.Y(barTop)
	yBottom := r.mapper.Y(barTop + r.layout.BarHeightPx)
	band := bar{x: x0, y: yBottom, w: x1 - x0, h: yTop - yBottom}

	r.canvas.SetStrokeColor(ColorAccent)
	r.canvas.SetFillColor(ColorAccent)
	r.canvas.SetLineWidth(r.layout.BarLineWidth)

	switch iv.Category {
	case CategoryDoze:
		r.canvas.Rect(band.x, band.y, band.w, band.h, PaintStroke)
		r.drawHatch(band)
	case CategoryAwake:
		r.canvas.SetLineWidth(r.layout.AwakeLineWidth)
		r.canvas.Rect(band.x, band.y, band.w, band.h, PaintStroke)
	default:
		// Deep, and anything unrecognised.
		r.canvas.Rect(band.x, band.y, band.w, band.h, PaintFill)
	}
	return nil
}

type bar struct {
	x, y, w, h float64
}

func (r *renderer) drawInBed(x0, x1, y float64) {
	a := r.layout.ArrowSizePt
	r.canvas.SetStrokeColor(ColorAccent)
	r.canvas.SetLineWidth(r.layout.InBedLineWidth)
	r.canvas.Line(x0, y, x1, y)
	r.canvas.Polyline([]Point{{x0 + a, y + a}, {x0, y}, {x0 + a, y - a}})
	r.canvas.Polyline([]Point{{x1 - a, y + a}, {x1, y}, {x1 - a, y - a}})
}

// drawHatch fills a band with 45 degree lines at a fixed stride. Lines start
// one band-height left of the band so the lower-left corner is covered too.
func (r *renderer) drawHatch(b bar) {
	r.canvas.ClipRect(b.x, b.y, b.w, b.h)
	start := math.Trunc(b.x - b.h)
	end := math.Trunc(b.x + b.w)
	for x := start; x < end; x += r.layout.HatchStridePt {
		r.canvas.Line(x, b.y, x+b.h, b.y+b.h)
	}
	r.canvas.ClipEnd()
}
