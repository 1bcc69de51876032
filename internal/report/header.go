package report

import "strconv"

// Header identifies whose diary the page is and for which month.
type Header struct {
	ID    string
	Name  string
	Year  int
	Month int
}

// IsZero reports whether no header was supplied.
func (h Header) IsZero() bool {
	return h == Header{}
}

// YearText is the year as printed in the header: two digits for a
// four-digit year.
func (h Header) YearText() string {
	if h.Year == 0 {
		return ""
	}
	s := strconv.Itoa(h.Year)
	if len(s) == 4 {
		return s[2:]
	}
	return s
}

// MonthText is the month as printed in the header.
func (h Header) MonthText() string {
	if h.Month == 0 {
		return ""
	}
	return strconv.Itoa(h.Month)
}

func (r *renderer) drawHeader(h Header) {
	if h.IsZero() {
		return
	}
	y := r.mapper.Y(r.layout.HeaderYPx)
	r.canvas.SetFontSize(r.layout.HeaderFontSize)
	r.canvas.SetFillColor(ColorBlack)
	r.text(-1, r.mapper.X(r.layout.HeaderIDXPx), y, h.ID)
	r.text(-1, r.mapper.X(r.layout.HeaderNameXPx), y, h.Name)
	r.text(-1, r.mapper.X(r.layout.HeaderYearXPx), y, h.YearText())
	r.text(-1, r.mapper.X(r.layout.HeaderMonthXPx), y, h.MonthText())
}
