package report

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"go.uber.org/zap"
)

// State is a step of the report pipeline. Steps run strictly in order.
type State int

const (
	StateInit State = iota
	StateBackgroundDrawn
	StateHeaderDrawn
	StateSegmentsDrawn
	StateMetricsDrawn
	StateGridDrawn
	StateFinalized
)

var stateNames = [...]string{
	"init", "background_drawn", "header_drawn", "segments_drawn",
	"metrics_drawn", "grid_drawn", "finalized",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Input is everything one monthly page is drawn from.
type Input struct {
	Intervals []Interval
	Events    []Event
	Days      map[int]DayMetrics
	Header    Header
	// Skips carries records already dropped during normalization so they
	// are reported alongside the renderer's own.
	Skips []Skip
	// Debug overlays the calibration grid.
	Debug bool
}

// Result describes how a render went. Skipped records never fail a render.
type Result struct {
	States []State
	Skips  []Skip
}

// Reached reports whether the pipeline passed through s.
func (r *Result) Reached(s State) bool {
	for _, st := range r.States {
		if st == s {
			return true
		}
	}
	return false
}

// SkipCount counts skips with the given reason.
func (r *Result) SkipCount(reason SkipReason) int {
	n := 0
	for _, s := range r.Skips {
		if s.Reason == reason {
			n++
		}
	}
	return n
}

// CanvasFactory opens a fresh canvas for one render.
type CanvasFactory func(Layout) (Canvas, error)

// Generator renders monthly diary pages for one layout. It holds no
// per-render state, so one Generator may serve concurrent renders.
type Generator struct {
	layout       Layout
	templatePath string
	newCanvas    CanvasFactory
	logger       *zap.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithTemplate sets the background image drawn under the data.
func WithTemplate(path string) Option {
	return func(g *Generator) { g.templatePath = path }
}

// WithCanvasFactory replaces the PDF writer.
func WithCanvasFactory(f CanvasFactory) Option {
	return func(g *Generator) { g.newCanvas = f }
}

// WithPDFOptions configures the default PDF writer.
func WithPDFOptions(opts PDFOptions) Option {
	return func(g *Generator) {
		g.newCanvas = func(l Layout) (Canvas, error) { return NewPDFCanvas(l, opts) }
	}
}

// WithLogger sets the logger used for skip reporting.
func WithLogger(logger *zap.Logger) Option {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// NewGenerator creates a Generator for the given layout.
func NewGenerator(layout Layout, opts ...Option) *Generator {
	g := &Generator{
		layout: layout,
		logger: zap.NewNop(),
	}
	WithPDFOptions(PDFOptions{})(g)
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Layout returns the calibration the generator draws with.
func (g *Generator) Layout() Layout {
	return g.layout
}

// Generate draws one page and writes it to w. Bad records are skipped and
// listed in the Result; only a failure to produce or write the document is
// returned as an error.
func (g *Generator) Generate(ctx context.Context, in Input, w io.Writer) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := g.layout.Validate(); err != nil {
		return nil, fmt.Errorf("invalid layout: %w", err)
	}
	canvas, err := g.newCanvas(g.layout)
	if err != nil {
		return nil, fmt.Errorf("opening canvas: %w", err)
	}

	started := time.Now()
	res := &Result{States: []State{StateInit}}
	res.Skips = append(res.Skips, in.Skips...)
	r := &renderer{
		layout: g.layout,
		mapper: NewMapper(g.layout),
		canvas: canvas,
		result: res,
	}
	debug := in.Debug

	r.drawBackground(g.templatePath)
	res.States = append(res.States, StateBackgroundDrawn)

	r.drawHeader(in.Header)
	res.States = append(res.States, StateHeaderDrawn)

	for _, iv := range in.Intervals {
		r.absorb(iv.Day, r.drawInterval(iv))
	}
	res.States = append(res.States, StateSegmentsDrawn)

	for _, day := range sortedDays(in.Days) {
		r.absorb(day, r.drawDayMetrics(day, in.Days[day]))
	}
	for _, ev := range in.Events {
		r.absorb(ev.Day, r.drawEvent(ev))
	}
	res.States = append(res.States, StateMetricsDrawn)

	if debug {
		r.drawGrid()
		res.States = append(res.States, StateGridDrawn)
	}

	if err := canvas.Finalize(w); err != nil {
		return res, err
	}
	res.States = append(res.States, StateFinalized)

	for _, s := range res.Skips {
		g.logger.Debug("record skipped",
			zap.String("reason", string(s.Reason)),
			zap.Int("day", s.Day),
			zap.String("detail", s.Detail),
		)
	}
	if n := res.SkipCount(SkipMissingGlyphs); n > 0 {
		g.logger.Warn("text drawn without a Japanese font",
			zap.Int("strings", n),
			zap.String("hint", "set SOMNUS_FONT to a TrueType font with Japanese coverage"),
		)
	}
	g.logger.Info("report rendered",
		zap.Int("intervals", len(in.Intervals)),
		zap.Int("events", len(in.Events)),
		zap.Int("days", len(in.Days)),
		zap.Int("skipped", len(res.Skips)),
		zap.Bool("debug_grid", debug),
		zap.Duration("elapsed", time.Since(started)),
	)
	return res, nil
}

// renderer carries the per-render drawing state.
type renderer struct {
	layout Layout
	mapper Mapper
	canvas Canvas
	result *Result
}

// text draws s, recording a skip for the day when the font cannot show it.
func (r *renderer) text(day int, x, y float64, s string) {
	if gc, ok := r.canvas.(GlyphCoverage); ok && !gc.Covers(s) {
		r.absorb(day, fmt.Errorf("%w: %q", ErrMissingGlyphs, s))
	}
	r.canvas.Text(x, y, s)
}

func (r *renderer) absorb(day int, err error) {
	if err != nil {
		r.result.Skips = append(r.result.Skips, skipFromErr(day, err))
	}
}

// drawBackground stretches the template over the page. Without it the page
// still renders, with a visible note in place of the artwork.
func (r *renderer) drawBackground(path string) {
	err := fmt.Errorf("%w: no template configured", ErrMissingAsset)
	if path != "" {
		err = r.canvas.Image(path, 0, 0, r.layout.PageWidthPt, r.layout.PageHeightPt)
	}
	if err == nil {
		return
	}
	r.canvas.SetFontSize(12)
	r.canvas.SetFillColor(ColorBlack)
	r.text(-1, 100, 500, PlaceholderText(path))
	r.absorb(-1, err)
}

// PlaceholderText is drawn when the background template is unavailable.
func PlaceholderText(path string) string {
	return "Template not found at " + path
}

func sortedDays(days map[int]DayMetrics) []int {
	keys := make([]int, 0, len(days))
	for d := range days {
		keys = append(keys, d)
	}
	sort.Ints(keys)
	return keys
}
