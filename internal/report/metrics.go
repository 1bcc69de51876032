package report

import (
	"strconv"
	"strings"
)

// DayMetrics are the per-row annotations printed in the right-hand columns.
type DayMetrics struct {
	Sleepiness *int
	Memo       string
	// SleepLabel is printed as given; the renderer does not recompute it.
	SleepLabel string
}

// WrapMemo breaks text into lines of at most width characters, splitting on
// whitespace and cutting words that are longer than a line.
func WrapMemo(text string, width int) []string {
	if width <= 0 {
		return nil
	}
	var lines []string
	var cur []rune
	flush := func() {
		lines = append(lines, string(cur))
		cur = nil
	}
	for _, field := range strings.Fields(text) {
		word := []rune(field)
		for len(word) > 0 {
			sep := 0
			if len(cur) > 0 {
				sep = 1
			}
			room := width - len(cur) - sep
			if len(word) <= room {
				if sep == 1 {
					cur = append(cur, ' ')
				}
				cur = append(cur, word...)
				break
			}
			if len(cur) > 0 && len(word) <= width {
				flush()
				continue
			}
			if room > 0 {
				if sep == 1 {
					cur = append(cur, ' ')
				}
				cur = append(cur, word[:room]...)
				word = word[room:]
			}
			flush()
		}
	}
	if len(cur) > 0 {
		flush()
	}
	return lines
}

// MemoLines is the part of a memo that fits the note column. Text beyond
// the line limit is dropped.
func (l Layout) MemoLines(memo string) []string {
	lines := WrapMemo(memo, l.MemoWrapWidth)
	if l.MemoMaxLines > 0 && len(lines) > l.MemoMaxLines {
		lines = lines[:l.MemoMaxLines]
	}
	return lines
}

func (r *renderer) drawDayMetrics(day int, m DayMetrics) error {
	top, err := r.layout.RowTopPx(day)
	if err != nil {
		return err
	}
	r.canvas.SetFillColor(ColorBlack)

	if m.Sleepiness != nil && *m.Sleepiness != 0 {
		r.canvas.SetFontSize(r.layout.SleepinessFontSize)
		r.text(day,
			r.mapper.X(r.layout.SleepinessXPx),
			r.mapper.Y(top+r.layout.SleepinessOffsetPx),
			strconv.Itoa(*m.Sleepiness),
		)
	}

	noteX := r.mapper.X(r.layout.NoteXPx)
	if m.Memo != "" {
		r.canvas.SetFontSize(r.layout.MemoFontSize)
		base := r.mapper.Y(top + r.layout.MemoOffsetPx)
		for i, line := range r.layout.MemoLines(m.Memo) {
			r.text(day, noteX, base-float64(i)*r.layout.MemoLinePitchPt, line)
		}
	}

	if m.SleepLabel != "" {
		r.canvas.SetFontSize(r.layout.MemoFontSize)
		r.text(day, noteX, r.mapper.Y(top+r.layout.SleepLabelOffsetPx), m.SleepLabel)
	}
	return nil
}
