package service

import (
	"github.com/alexanderramin/somnus/internal/domain"
	"github.com/alexanderramin/somnus/internal/report"
)

// dayIndex is the report row of a date: day 1 is row 0.
func dayIndex(l *domain.SleepLog) int {
	return l.Date.Day() - 1
}

// normalizeLog converts a stored log into drawable geometry for its row.
func normalizeLog(l *domain.SleepLog) report.DayResult {
	segments := make([]report.RawSegment, 0, len(l.Segments))
	for _, s := range l.Segments {
		segments = append(segments, report.RawSegment{
			Category: report.ParseCategory(string(s.Kind)),
			Start:    s.StartAt,
			End:      s.EndAt,
		})
	}
	events := make([]report.RawEvent, 0, len(l.Events))
	for _, e := range l.Events {
		events = append(events, report.RawEvent{
			Kind: report.ParseEventKind(e.Kind),
			At:   e.HappenedAt,
		})
	}
	return report.NormalizeDay(dayIndex(l), segments, events)
}

func eventKinds(l *domain.SleepLog) []string {
	kinds := make([]string, 0, len(l.Events))
	for _, e := range l.Events {
		kinds = append(kinds, e.Kind)
	}
	return kinds
}
