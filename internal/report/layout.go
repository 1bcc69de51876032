package report

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// MaxDayIndex is the last row of the monthly template (day 31).
const MaxDayIndex = 30

// Layout holds the calibration of one background template: pixel anchors
// measured on the reference raster and the page size they map onto.
// Values are hand-calibrated with the debug grid; nothing here is derived
// from the artwork itself.
type Layout struct {
	RasterWidthPx  float64 `yaml:"raster_width_px"`
	RasterHeightPx float64 `yaml:"raster_height_px"`
	PageWidthPt    float64 `yaml:"page_width_pt"`
	PageHeightPt   float64 `yaml:"page_height_pt"`

	AxisStartPx float64 `yaml:"axis_start_px"`
	AxisEndPx   float64 `yaml:"axis_end_px"`

	SleepinessXPx float64 `yaml:"sleepiness_x_px"`
	NoteXPx       float64 `yaml:"note_x_px"`

	HeaderYPx      float64 `yaml:"header_y_px"`
	HeaderIDXPx    float64 `yaml:"header_id_x_px"`
	HeaderNameXPx  float64 `yaml:"header_name_x_px"`
	HeaderYearXPx  float64 `yaml:"header_year_x_px"`
	HeaderMonthXPx float64 `yaml:"header_month_x_px"`

	// Offsets below the row top, in raster pixels.
	ArrowOffsetPx      float64 `yaml:"arrow_offset_px"`
	BarOffsetPx        float64 `yaml:"bar_offset_px"`
	BarHeightPx        float64 `yaml:"bar_height_px"`
	SleepinessOffsetPx float64 `yaml:"sleepiness_offset_px"`
	MemoOffsetPx       float64 `yaml:"memo_offset_px"`
	SleepLabelOffsetPx float64 `yaml:"sleep_label_offset_px"`

	// Stroke and glyph geometry, in points.
	ArrowSizePt     float64 `yaml:"arrow_size_pt"`
	InBedLineWidth  float64 `yaml:"in_bed_line_width"`
	BarLineWidth    float64 `yaml:"bar_line_width"`
	AwakeLineWidth  float64 `yaml:"awake_line_width"`
	HatchStridePt   float64 `yaml:"hatch_stride_pt"`
	MarkerShiftPt   float64 `yaml:"marker_shift_pt"`
	MemoLinePitchPt float64 `yaml:"memo_line_pitch_pt"`

	MemoWrapWidth int `yaml:"memo_wrap_width"`
	MemoMaxLines  int `yaml:"memo_max_lines"`

	HeaderFontSize     float64 `yaml:"header_font_size"`
	SleepinessFontSize float64 `yaml:"sleepiness_font_size"`
	MemoFontSize       float64 `yaml:"memo_font_size"`
	MarkerFontSize     float64 `yaml:"marker_font_size"`
	GridFontSize       float64 `yaml:"grid_font_size"`

	GridStridePx float64 `yaml:"grid_stride_px"`

	// RowTops is the top-of-row pixel offset for each day, day 1 first.
	RowTops []float64 `yaml:"row_tops"`
}

// DefaultLayout returns the calibration for the bundled A4 diary template
// (a 1584x2242 px scan).
func DefaultLayout() Layout {
	return Layout{
		RasterWidthPx:  1584,
		RasterHeightPx: 2242,
		PageWidthPt:    595.28,
		PageHeightPt:   841.89,

		AxisStartPx: 217,
		AxisEndPx:   1185,

		SleepinessXPx: 1230,
		NoteXPx:       1300,

		HeaderYPx:      70,
		HeaderIDXPx:    550,
		HeaderNameXPx:  830,
		HeaderYearXPx:  1089,
		HeaderMonthXPx: 1200,

		ArrowOffsetPx:      45,
		BarOffsetPx:        4,
		BarHeightPx:        18,
		SleepinessOffsetPx: 40,
		MemoOffsetPx:       15,
		SleepLabelOffsetPx: 55,

		ArrowSizePt:     3,
		InBedLineWidth:  1.5,
		BarLineWidth:    0.5,
		AwakeLineWidth:  1.0,
		HatchStridePt:   3,
		MarkerShiftPt:   3,
		MemoLinePitchPt: 7,

		MemoWrapWidth: 20,
		MemoMaxLines:  3,

		HeaderFontSize:     8,
		SleepinessFontSize: 10,
		MemoFontSize:       6,
		MarkerFontSize:     10,
		GridFontSize:       6,

		GridStridePx: 100,

		RowTops: []float64{
			149, 212, 272, 333, 394,
			457, 519, 582, 644, 706,
			767, 830, 892, 955, 1015,
			1080, 1140, 1202, 1264, 1328,
			1388, 1450, 1512, 1575, 1638,
			1701, 1762, 1824, 1884, 1948,
			2009,
		},
	}
}

// LoadLayout reads a YAML calibration file. Keys absent from the file keep
// their DefaultLayout values.
func LoadLayout(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("reading layout file: %w", err)
	}
	l := DefaultLayout()
	if err := yaml.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("parsing layout file %s: %w", path, err)
	}
	if err := l.Validate(); err != nil {
		return Layout{}, fmt.Errorf("layout file %s: %w", path, err)
	}
	return l, nil
}

// Validate checks the values the mapping divides by or iterates over. It
// cannot tell whether the anchors still match the artwork.
func (l Layout) Validate() error {
	switch {
	case l.RasterWidthPx <= 0 || l.RasterHeightPx <= 0:
		return fmt.Errorf("raster size must be positive, got %gx%g", l.RasterWidthPx, l.RasterHeightPx)
	case l.PageWidthPt <= 0 || l.PageHeightPt <= 0:
		return fmt.Errorf("page size must be positive, got %gx%g", l.PageWidthPt, l.PageHeightPt)
	case l.AxisEndPx <= l.AxisStartPx:
		return fmt.Errorf("time axis end (%g) must be right of start (%g)", l.AxisEndPx, l.AxisStartPx)
	case len(l.RowTops) == 0:
		return fmt.Errorf("row table is empty")
	case l.HatchStridePt <= 0 || l.GridStridePx <= 0:
		return fmt.Errorf("hatch and grid strides must be positive")
	case l.MemoWrapWidth <= 0:
		return fmt.Errorf("memo wrap width must be positive")
	}
	return nil
}

// RowTopPx returns the calibrated top pixel of a day's row.
func (l Layout) RowTopPx(day int) (float64, error) {
	if day < 0 || day > MaxDayIndex || day >= len(l.RowTops) {
		return 0, fmt.Errorf("day %d: %w", day, ErrOutOfRangeRow)
	}
	return l.RowTops[day], nil
}

// AxisWidthPx is the pixel span of the 24-hour time axis.
func (l Layout) AxisWidthPx() float64 {
	return l.AxisEndPx - l.AxisStartPx
}

// Mapper converts raster pixels (origin top-left) to page points (origin
// bottom-left).
type Mapper struct {
	layout Layout
}

// NewMapper builds a Mapper for the given layout.
func NewMapper(l Layout) Mapper {
	return Mapper{layout: l}
}

// X maps a raster column to a page x coordinate. Out-of-range input maps
// off the page.
func (m Mapper) X(px float64) float64 {
	// Ratio first so the raster edges land exactly on the page edges.
	return px / m.layout.RasterWidthPx * m.layout.PageWidthPt
}

// Y maps a raster row to a page y coordinate, flipping the vertical axis.
func (m Mapper) Y(px float64) float64 {
	return m.layout.PageHeightPt - px/m.layout.RasterHeightPx*m.layout.PageHeightPt
}

// HourPx places a clock hour on the time axis in raster pixels. Hours past
// 24 land right of the axis end; they are not clamped.
func (m Mapper) HourPx(hour float64) float64 {
	return m.layout.AxisStartPx + m.layout.AxisWidthPx()*(hour/24)
}

// HourX places a clock hour on the time axis in page points.
func (m Mapper) HourX(hour float64) float64 {
	return m.X(m.HourPx(hour))
}
