package report

// drawEvent places an event glyph on its row at the InBed line height,
// whatever intervals the day has.
func (r *renderer) drawEvent(ev Event) error {
	top, err := r.layout.RowTopPx(ev.Day)
	if err != nil {
		return err
	}
	x := r.mapper.HourX(ev.Hour) - r.layout.MarkerShiftPt
	y := r.mapper.Y(top + r.layout.ArrowOffsetPx)

	r.canvas.SetFontSize(r.layout.MarkerFontSize)
	r.canvas.SetStrokeColor(ColorAccent)
	r.canvas.SetFillColor(ColorAccent)
	r.canvas.Marker(x, y, ev.Kind.Glyph())
	return nil
}
