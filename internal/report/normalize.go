package report

import (
	"fmt"
	"strings"
	"time"
)

// Interval is one contiguous span drawn on a single day row.
// Invariant: 0 <= Start <= End <= 24.
type Interval struct {
	Day      int
	Start    float64
	End      float64
	Category Category
}

// Event is a punctual marker on a day row. Hour may exceed 24 to place an
// early-morning event past the row's midnight boundary.
type Event struct {
	Day  int
	Hour float64
	Kind EventKind
}

// RawSegment is an interval as stored: wall-clock text that may wrap past
// midnight.
type RawSegment struct {
	Category Category
	Start    string
	End      string
}

// RawEvent is an event as stored.
type RawEvent struct {
	Kind EventKind
	At   string
}

// DayResult is the normalized geometry and aggregates for one day row.
type DayResult struct {
	Day        int
	Intervals  []Interval
	Events     []Event
	TotalSleep time.Duration
	Skips      []Skip
}

// SleepLabel formats the day's total sleep for the note column.
func (r DayResult) SleepLabel() string {
	return SleepLabel(r.TotalSleep)
}

const minutesPerDay = 24 * 60

// parseClockMinutes parses "HH:MM" into minutes after midnight.
func parseClockMinutes(s string) (int, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrParseSkip, s)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// ParseClock parses "HH:MM" into a fractional hour in [0, 24).
func ParseClock(s string) (float64, error) {
	m, err := parseClockMinutes(s)
	if err != nil {
		return 0, err
	}
	return float64(m) / 60, nil
}

// SplitIfWrapping returns the span as one interval, or as two sibling
// intervals on the same row when the clock wrapped past midnight: the
// evening part ends at 24 and the morning part starts at 0.
func SplitIfWrapping(day int, start, end float64, c Category) []Interval {
	if end < start {
		return []Interval{
			{Day: day, Start: start, End: 24, Category: c},
			{Day: day, Start: 0, End: end, Category: c},
		}
	}
	return []Interval{{Day: day, Start: start, End: end, Category: c}}
}

// NormalizeDay converts one day's stored segments and events into drawable
// intervals and events, and totals the time spent in sleep categories.
// A record with malformed time text is skipped; the rest of the day is kept.
func NormalizeDay(day int, segments []RawSegment, events []RawEvent) DayResult {
	res := DayResult{Day: day}
	for _, seg := range segments {
		startMin, err := parseClockMinutes(seg.Start)
		if err != nil {
			res.Skips = append(res.Skips, skipFromErr(day, fmt.Errorf("segment start: %w", err)))
			continue
		}
		endMin, err := parseClockMinutes(seg.End)
		if err != nil {
			res.Skips = append(res.Skips, skipFromErr(day, fmt.Errorf("segment end: %w", err)))
			continue
		}

		res.Intervals = append(res.Intervals,
			SplitIfWrapping(day, float64(startMin)/60, float64(endMin)/60, seg.Category)...)

		if seg.Category.CountsAsSleep() {
			span := endMin - startMin
			if endMin < startMin {
				span += minutesPerDay
			}
			res.TotalSleep += time.Duration(span) * time.Minute
		}
	}

	for _, ev := range events {
		hour, err := ParseClock(ev.At)
		if err != nil {
			res.Skips = append(res.Skips, skipFromErr(day, fmt.Errorf("event: %w", err)))
			continue
		}
		res.Events = append(res.Events, Event{Day: day, Hour: hour, Kind: ev.Kind})
	}
	return res
}

// FormatDuration renders whole hours and zero-padded minutes, e.g. "7h30m".
func FormatDuration(d time.Duration) string {
	total := int(d / time.Minute)
	return fmt.Sprintf("%dh%02dm", total/60, total%60)
}

// SleepLabel is the note-column text for a day's total sleep.
func SleepLabel(d time.Duration) string {
	return "睡眠時間: " + FormatDuration(d)
}
