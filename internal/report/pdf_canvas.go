package report

import (
	"fmt"
	"io"
	"os"
	"time"
	"unicode/utf8"

	"github.com/go-pdf/fpdf"
	"golang.org/x/text/encoding/charmap"
)

const (
	unicodeFamily = "body"
	coreFamily    = "Helvetica"
)

// PDFOptions configures the PDF document writer.
type PDFOptions struct {
	// FontPath is a TrueType font with Japanese coverage. When empty the
	// core Helvetica font is used and non-Latin text cannot be shown.
	FontPath string
	// CreationDate pins the document timestamp; zero means now.
	CreationDate time.Time
	// Uncompressed leaves content streams readable, which tests rely on.
	Uncompressed bool
}

// PDFCanvas draws onto a single-page PDF sized to the layout's page.
type PDFCanvas struct {
	pdf       *fpdf.Fpdf
	pageH     float64
	unicode   bool
	fontSize  float64
	translate func(string) string
	finalized bool
}

var (
	_ Canvas        = (*PDFCanvas)(nil)
	_ GlyphCoverage = (*PDFCanvas)(nil)
)

// NewPDFCanvas starts a one-page document. It fails only when a font file
// was requested and could not be loaded.
func NewPDFCanvas(l Layout, opts PDFOptions) (*PDFCanvas, error) {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: l.PageWidthPt, Ht: l.PageHeightPt},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCompression(!opts.Uncompressed)
	pdf.SetCatalogSort(true)
	pdf.SetCreator("somnus", false)
	if !opts.CreationDate.IsZero() {
		pdf.SetCreationDate(opts.CreationDate)
		pdf.SetModificationDate(opts.CreationDate)
	}

	c := &PDFCanvas{pdf: pdf, pageH: l.PageHeightPt, fontSize: 12}
	if opts.FontPath != "" {
		pdf.AddUTF8Font(unicodeFamily, "", opts.FontPath)
		if err := pdf.Error(); err != nil {
			return nil, fmt.Errorf("loading font %s: %w", opts.FontPath, err)
		}
		c.unicode = true
		c.translate = func(s string) string { return s }
	} else {
		c.translate = pdf.UnicodeTranslatorFromDescriptor("")
	}

	pdf.AddPage()
	c.SetFontSize(c.fontSize)
	return c, nil
}

// flip converts a bottom-left-origin y to fpdf's top-left origin.
func (c *PDFCanvas) flip(y float64) float64 {
	return c.pageH - y
}

func (c *PDFCanvas) SetStrokeColor(col Color) {
	c.pdf.SetDrawColor(int(col.R), int(col.G), int(col.B))
}

func (c *PDFCanvas) SetFillColor(col Color) {
	c.pdf.SetFillColor(int(col.R), int(col.G), int(col.B))
	c.pdf.SetTextColor(int(col.R), int(col.G), int(col.B))
}

func (c *PDFCanvas) SetLineWidth(w float64) {
	c.pdf.SetLineWidth(w)
}

func (c *PDFCanvas) SetFontSize(size float64) {
	c.fontSize = size
	if c.unicode {
		c.pdf.SetFont(unicodeFamily, "", size)
		return
	}
	c.pdf.SetFont(coreFamily, "", size)
}

func (c *PDFCanvas) Line(x1, y1, x2, y2 float64) {
	c.pdf.Line(x1, c.flip(y1), x2, c.flip(y2))
}

func (c *PDFCanvas) Rect(x, y, w, h float64, style PaintStyle) {
	c.pdf.Rect(x, c.flip(y+h), w, h, styleString(style))
}

func (c *PDFCanvas) Polyline(points []Point) {
	if len(points) < 2 {
		return
	}
	c.pdf.MoveTo(points[0].X, c.flip(points[0].Y))
	for _, p := range points[1:] {
		c.pdf.LineTo(p.X, c.flip(p.Y))
	}
	c.pdf.DrawPath("D")
}

func (c *PDFCanvas) ClipRect(x, y, w, h float64) {
	c.pdf.ClipRect(x, c.flip(y+h), w, h, false)
}

func (c *PDFCanvas) ClipEnd() {
	c.pdf.ClipEnd()
}

// Covers reports whether s survives the current font. With a TrueType font
// everything is kept; the core font only has the Windows-1252 repertoire.
func (c *PDFCanvas) Covers(s string) bool {
	if c.unicode {
		return true
	}
	for _, r := range s {
		if r < utf8.RuneSelf {
			continue
		}
		if _, ok := charmap.Windows1252.EncodeRune(r); !ok {
			return false
		}
	}
	return true
}

func (c *PDFCanvas) Text(x, y float64, s string) {
	c.pdf.Text(x, c.flip(y), c.translate(s))
}

// Marker draws the glyph as text when a Unicode font is loaded. The core
// fonts have no such glyphs, so it falls back to equivalent vector shapes.
func (c *PDFCanvas) Marker(x, y float64, glyph string) {
	if c.unicode {
		c.Text(x, y, glyph)
		return
	}
	size := c.fontSize * 0.7
	cx := x + size/2
	cy := c.flip(y + size*0.35)
	half := size / 2
	switch glyph {
	case "▲":
		c.pdf.Polygon([]fpdf.PointType{
			{X: cx - half, Y: cy + half},
			{X: cx + half, Y: cy + half},
			{X: cx, Y: cy - half},
		}, "F")
	case "▽":
		c.pdf.Polygon([]fpdf.PointType{
			{X: cx - half, Y: cy - half},
			{X: cx + half, Y: cy - half},
			{X: cx, Y: cy + half},
		}, "D")
	default:
		c.pdf.Circle(cx, cy, half*0.8, "F")
	}
}

func (c *PDFCanvas) Image(path string, x, y, w, h float64) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("%w: %v", ErrMissingAsset, err)
	}
	c.pdf.ImageOptions(path, x, c.flip(y+h), w, h, false, fpdf.ImageOptions{ReadDpi: false}, 0, "")
	if err := c.pdf.Error(); err != nil {
		// A broken image must not poison the rest of the document.
		c.pdf.ClearError()
		return fmt.Errorf("%w: %v", ErrMissingAsset, err)
	}
	return nil
}

func (c *PDFCanvas) Finalize(w io.Writer) error {
	if c.finalized {
		return ErrFinalized
	}
	c.finalized = true
	if err := c.pdf.Output(w); err != nil {
		return fmt.Errorf("%w: %v", ErrSinkWrite, err)
	}
	return nil
}

func styleString(s PaintStyle) string {
	switch s {
	case PaintFill:
		return "F"
	case PaintFillStroke:
		return "FD"
	default:
		return "D"
	}
}
