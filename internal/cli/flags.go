package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/somnus/internal/domain"
	"github.com/spf13/pflag"
)

// monthValue is a YYYY-MM flag.
type monthValue struct {
	month *domain.Month
}

var _ pflag.Value = monthValue{}

func newMonthValue(def domain.Month, p *domain.Month) monthValue {
	*p = def
	return monthValue{month: p}
}

func (v monthValue) String() string {
	if v.month == nil || v.month.IsZero() {
		return ""
	}
	return v.month.String()
}

func (v monthValue) Set(s string) error {
	m, err := domain.ParseMonth(s)
	if err != nil {
		return err
	}
	*v.month = m
	return nil
}

func (v monthValue) Type() string { return "YYYY-MM" }

// addMonthFlag registers --month defaulting to the current month.
func addMonthFlag(flags *pflag.FlagSet, app *App, p *domain.Month) {
	flags.Var(newMonthValue(domain.MonthOf(app.now()), p), "month", "calendar month (YYYY-MM)")
}

// parseSegment parses "kind,HH:MM,HH:MM".
func parseSegment(s string) (domain.Segment, error) {
	parts := strings.Split(strings.TrimSpace(s), ",")
	if len(parts) != 3 {
		return domain.Segment{}, fmt.Errorf("segment %q: want kind,HH:MM,HH:MM", s)
	}
	seg := domain.Segment{
		Kind:    domain.SegmentKind(strings.TrimSpace(parts[0])),
		StartAt: strings.TrimSpace(parts[1]),
		EndAt:   strings.TrimSpace(parts[2]),
	}
	if !seg.Kind.Valid() {
		return domain.Segment{}, fmt.Errorf("segment %q: unknown kind %q (want one of %s)", s, seg.Kind, segmentKindList())
	}
	if !domain.ValidClock(seg.StartAt) || !domain.ValidClock(seg.EndAt) {
		return domain.Segment{}, fmt.Errorf("segment %q: times must be HH:MM", s)
	}
	return seg, nil
}

// parseEvent parses "kind,HH:MM".
func parseEvent(s string) (domain.Event, error) {
	parts := strings.Split(strings.TrimSpace(s), ",")
	if len(parts) != 2 {
		return domain.Event{}, fmt.Errorf("event %q: want kind,HH:MM", s)
	}
	ev := domain.Event{
		Kind:       strings.TrimSpace(parts[0]),
		HappenedAt: strings.TrimSpace(parts[1]),
	}
	if ev.Kind == "" {
		return domain.Event{}, fmt.Errorf("event %q: kind is required", s)
	}
	if !domain.ValidClock(ev.HappenedAt) {
		return domain.Event{}, fmt.Errorf("event %q: time must be HH:MM", s)
	}
	return ev, nil
}

func parseSegments(specs []string) ([]domain.Segment, error) {
	out := make([]domain.Segment, 0, len(specs))
	for _, s := range specs {
		seg, err := parseSegment(s)
		if err != nil {
			return nil, err
		}
		out = append(out, seg)
	}
	return out, nil
}

func parseEvents(specs []string) ([]domain.Event, error) {
	out := make([]domain.Event, 0, len(specs))
	for _, s := range specs {
		ev, err := parseEvent(s)
		if err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	return out, nil
}

func segmentKindList() string {
	names := make([]string, len(domain.SegmentKinds))
	for i, k := range domain.SegmentKinds {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}

// parseDateArg accepts YYYY-MM-DD plus "today" and "yesterday".
func parseDateArg(app *App, s string) (time.Time, error) {
	now := app.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	switch strings.ToLower(s) {
	case "today":
		return today, nil
	case "yesterday":
		return today.AddDate(0, 0, -1), nil
	}
	return domain.ParseDate(s)
}
