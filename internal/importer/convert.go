package importer

import (
	"fmt"
	"sort"

	"github.com/alexanderramin/somnus/internal/domain"
)

// Convert transforms a validated ImportSchema into diary entries sorted by
// date. Call ValidateImportSchema first; Convert assumes the schema is valid.
// UserID is left for the caller to set.
func Convert(schema *ImportSchema) ([]*domain.SleepLog, error) {
	logs := make([]*domain.SleepLog, 0, len(schema.Days))
	for _, d := range schema.Days {
		date, err := domain.ParseDate(d.Date)
		if err != nil {
			return nil, fmt.Errorf("parsing date: %w", err)
		}

		l := &domain.SleepLog{
			Date:     date,
			Memo:     d.Memo,
			Segments: make([]domain.Segment, 0, len(d.Segments)),
			Events:   make([]domain.Event, 0, len(d.Events)),
		}
		if d.Sleepiness != nil {
			s := *d.Sleepiness
			l.Sleepiness = &s
		}
		for _, s := range d.Segments {
			kind, ok := canonicalSegmentKind(s.Kind)
			if !ok {
				return nil, fmt.Errorf("%s: unknown segment kind %q", d.Date, s.Kind)
			}
			l.Segments = append(l.Segments, domain.Segment{Kind: kind, StartAt: s.Start, EndAt: s.End})
		}
		for _, e := range d.Events {
			l.Events = append(l.Events, domain.Event{Kind: canonicalEventKind(e.Kind), HappenedAt: e.At})
		}
		l.ToiletCount = l.CountToilets()
		logs = append(logs, l)
	}

	sort.Slice(logs, func(i, j int) bool { return logs[i].Date.Before(logs[j].Date) })
	return logs, nil
}
