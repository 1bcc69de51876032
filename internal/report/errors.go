package report

import (
	"errors"
	"fmt"
)

var (
	// ErrParseSkip marks a record whose time text could not be parsed.
	ErrParseSkip = errors.New("unparseable time")
	// ErrOutOfRangeRow marks a record whose day index has no calibrated row.
	ErrOutOfRangeRow = errors.New("day index outside calibrated rows")
	// ErrMissingAsset marks a background template that could not be loaded.
	ErrMissingAsset = errors.New("background template missing")
	// ErrMissingGlyphs marks text the canvas font cannot show.
	ErrMissingGlyphs = errors.New("text not covered by the font")
	// ErrSinkWrite is returned when the finished document cannot be written.
	ErrSinkWrite = errors.New("writing report output")
	// ErrFinalized is returned when a canvas is used after it was finalized.
	ErrFinalized = errors.New("canvas already finalized")
)

// SkipReason classifies a record the renderer dropped without failing.
type SkipReason string

const (
	SkipParse         SkipReason = "parse"
	SkipOutOfRangeRow SkipReason = "out_of_range_row"
	SkipMissingAsset  SkipReason = "missing_asset"
	SkipMissingGlyphs SkipReason = "missing_glyphs"
)

// Skip records one absorbed per-record failure.
type Skip struct {
	Reason SkipReason
	Day    int
	Detail string
}

func (s Skip) String() string {
	return fmt.Sprintf("%s day=%d %s", s.Reason, s.Day, s.Detail)
}

func skipFromErr(day int, err error) Skip {
	reason := SkipParse
	switch {
	case errors.Is(err, ErrOutOfRangeRow):
		reason = SkipOutOfRangeRow
	case errors.Is(err, ErrMissingAsset):
		reason = SkipMissingAsset
	case errors.Is(err, ErrMissingGlyphs):
		reason = SkipMissingGlyphs
	}
	return Skip{Reason: reason, Day: day, Detail: err.Error()}
}
