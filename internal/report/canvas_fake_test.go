package report

import (
	"io"
	"os"
)

// op is one recorded canvas call.
type op struct {
	name   string
	x, y   float64
	w, h   float64
	x2, y2 float64
	style  PaintStyle
	text   string
	stroke Color
	fill   Color
	width  float64
	font   float64
	points []Point
}

// recordingCanvas captures drawing calls so geometry can be asserted
// without parsing PDF output.
type recordingCanvas struct {
	ops       []op
	stroke    Color
	fill      Color
	width     float64
	font      float64
	clipDepth int
	finalized bool
	written   []byte
}

func (c *recordingCanvas) record(o op) {
	o.stroke, o.fill, o.width, o.font = c.stroke, c.fill, c.width, c.font
	c.ops = append(c.ops, o)
}

func (c *recordingCanvas) SetStrokeColor(col Color) { c.stroke = col }
func (c *recordingCanvas) SetFillColor(col Color)   { c.fill = col }
func (c *recordingCanvas) SetLineWidth(w float64)   { c.width = w }
func (c *recordingCanvas) SetFontSize(s float64)    { c.font = s }

func (c *recordingCanvas) Line(x1, y1, x2, y2 float64) {
	c.record(op{name: "line", x: x1, y: y1, x2: x2, y2: y2})
}

func (c *recordingCanvas) Rect(x, y, w, h float64, style PaintStyle) {
	c.record(op{name: "rect", x: x, y: y, w: w, h: h, style: style})
}

func (c *recordingCanvas) Polyline(points []Point) {
	c.record(op{name: "polyline", points: points})
}

func (c *recordingCanvas) ClipRect(x, y, w, h float64) {
	c.clipDepth++
	c.record(op{name: "clip", x: x, y: y, w: w, h: h})
}

func (c *recordingCanvas) ClipEnd() {
	c.clipDepth--
	c.record(op{name: "clipend"})
}

func (c *recordingCanvas) Text(x, y float64, s string) {
	c.record(op{name: "text", x: x, y: y, text: s})
}

func (c *recordingCanvas) Marker(x, y float64, glyph string) {
	c.record(op{name: "marker", x: x, y: y, text: glyph})
}

func (c *recordingCanvas) Image(path string, x, y, w, h float64) error {
	if _, err := os.Stat(path); err != nil {
		return ErrMissingAsset
	}
	c.record(op{name: "image", x: x, y: y, w: w, h: h, text: path})
	return nil
}

func (c *recordingCanvas) Finalize(w io.Writer) error {
	if c.finalized {
		return ErrFinalized
	}
	c.finalized = true
	data := []byte("%PDF-fake")
	if _, err := w.Write(data); err != nil {
		return ErrSinkWrite
	}
	c.written = data
	return nil
}

func (c *recordingCanvas) named(name string) []op {
	var out []op
	for _, o := range c.ops {
		if o.name == name {
			out = append(out, o)
		}
	}
	return out
}

func (c *recordingCanvas) texts() []string {
	var out []string
	for _, o := range c.named("text") {
		out = append(out, o.text)
	}
	return out
}

func newTestRenderer(l Layout) (*renderer, *recordingCanvas) {
	c := &recordingCanvas{}
	return &renderer{
		layout: l,
		mapper: NewMapper(l),
		canvas: c,
		result: &Result{},
	}, c
}

func intPtr(v int) *int { return &v }
