package importer

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/somnus/internal/domain"
	"github.com/alexanderramin/somnus/internal/report"
)

// ValidateImportSchema checks the import schema for errors before conversion.
// Returns a slice of all validation errors found.
func ValidateImportSchema(schema *ImportSchema) []error {
	var errs []error

	if len(schema.Days) == 0 {
		errs = append(errs, fmt.Errorf("days: at least one day is required"))
	}

	seen := make(map[string]int)
	for i, d := range schema.Days {
		prefix := fmt.Sprintf("days[%d]", i)
		errs = append(errs, validateDay(prefix, &d)...)
		if d.Date == "" {
			continue
		}
		if first, dup := seen[d.Date]; dup {
			errs = append(errs, fmt.Errorf("%s.date: %s already given at days[%d]", prefix, d.Date, first))
		} else {
			seen[d.Date] = i
		}
	}

	return errs
}

func validateDay(prefix string, d *DayImport) []error {
	var errs []error

	if d.Date == "" {
		errs = append(errs, fmt.Errorf("%s.date is required", prefix))
	} else if _, err := domain.ParseDate(d.Date); err != nil {
		errs = append(errs, fmt.Errorf("%s.date: invalid date format %q (expected YYYY-MM-DD)", prefix, d.Date))
	}
	if d.Sleepiness != nil && (*d.Sleepiness < 1 || *d.Sleepiness > 10) {
		errs = append(errs, fmt.Errorf("%s.sleepiness: must be 1-10, got %d", prefix, *d.Sleepiness))
	}

	for j, s := range d.Segments {
		sp := fmt.Sprintf("%s.segments[%d]", prefix, j)
		if _, ok := canonicalSegmentKind(s.Kind); !ok {
			errs = append(errs, fmt.Errorf("%s.kind: unknown segment kind %q", sp, s.Kind))
		}
		if !domain.ValidClock(s.Start) {
			errs = append(errs, fmt.Errorf("%s.start: invalid time %q (expected HH:MM)", sp, s.Start))
		}
		if !domain.ValidClock(s.End) {
			errs = append(errs, fmt.Errorf("%s.end: invalid time %q (expected HH:MM)", sp, s.End))
		}
	}

	for j, e := range d.Events {
		ep := fmt.Sprintf("%s.events[%d]", prefix, j)
		if strings.TrimSpace(e.Kind) == "" {
			errs = append(errs, fmt.Errorf("%s.kind is required", ep))
		}
		if !domain.ValidClock(e.At) {
			errs = append(errs, fmt.Errorf("%s.at: invalid time %q (expected HH:MM)", ep, e.At))
		}
	}

	return errs
}

var categoryKinds = map[report.Category]domain.SegmentKind{
	report.CategoryInBed: domain.SegmentInBed,
	report.CategoryDeep:  domain.SegmentDeep,
	report.CategoryDoze:  domain.SegmentDoze,
	report.CategoryAwake: domain.SegmentAwake,
}

// canonicalSegmentKind resolves canonical tags and legacy labels alike.
func canonicalSegmentKind(s string) (domain.SegmentKind, bool) {
	k, ok := categoryKinds[report.ParseCategory(s)]
	return k, ok
}

// canonicalEventKind maps labels such as "toilet (トイレ)" to their tag.
// Unrecognized kinds are kept as written.
func canonicalEventKind(s string) string {
	if k := report.ParseEventKind(s); k != report.EventOther {
		return k.String()
	}
	return strings.TrimSpace(s)
}
