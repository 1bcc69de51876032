package report

import "strings"

// Category is the closed classification of an interval. It selects the
// visual encoding, never the row.
type Category int

const (
	CategoryUnknown Category = iota
	CategoryInBed
	CategoryDeep
	CategoryDoze
	CategoryAwake
)

var categoryNames = map[Category]string{
	CategoryUnknown: "unknown",
	CategoryInBed:   "in_bed",
	CategoryDeep:    "deep",
	CategoryDoze:    "doze",
	CategoryAwake:   "awake",
}

var categoryAliases = map[string]Category{
	"in_bed":     CategoryInBed,
	"inbed":      CategoryInBed,
	"deep":       CategoryDeep,
	"deep_sleep": CategoryDeep,
	"doze":       CategoryDoze,
	"awake":      CategoryAwake,
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return categoryNames[CategoryUnknown]
}

// CountsAsSleep reports whether time spent in this category adds to the
// day's total sleep. Presence in bed and wakefulness do not.
func (c Category) CountsAsSleep() bool {
	return c == CategoryDeep || c == CategoryDoze
}

// ParseCategory maps a stored segment tag to a Category. Both canonical tags
// ("in_bed", "deep") and legacy labels ("Deep Sleep (ぐっすり)") are accepted;
// anything else is CategoryUnknown.
func ParseCategory(s string) Category {
	if i := strings.Index(s, "("); i >= 0 {
		s = s[:i]
	}
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer("-", "_", " ", "_").Replace(key)
	if c, ok := categoryAliases[key]; ok {
		return c
	}
	return CategoryUnknown
}

// EventKind is the closed classification of a punctual event.
type EventKind int

const (
	EventOther EventKind = iota
	EventSleepMedication
	EventToilet
	EventOtherMedication
	EventAlcohol
	EventCaffeine
	EventBath
)

// eventMatchers is checked in order; the first substring hit wins.
var eventMatchers = []struct {
	needle string
	kind   EventKind
}{
	{"sleep_med", EventSleepMedication},
	{"sleepmedication", EventSleepMedication},
	{"sleep medication", EventSleepMedication},
	{"toilet", EventToilet},
	{"other_med", EventOtherMedication},
	{"othermedication", EventOtherMedication},
	{"other medication", EventOtherMedication},
	{"alcohol", EventAlcohol},
	{"caffeine", EventCaffeine},
	{"bath", EventBath},
}

// ParseEventKind classifies free-form event text, ignoring case. Besides the
// stored tags (sleep_med, other_med) the spelled-out forms such as
// "SleepMedication" are recognized.
func ParseEventKind(s string) EventKind {
	lower := strings.ToLower(s)
	for _, m := range eventMatchers {
		if strings.Contains(lower, m.needle) {
			return m.kind
		}
	}
	return EventOther
}

func (k EventKind) String() string {
	for _, m := range eventMatchers {
		if m.kind == k {
			return m.needle
		}
	}
	return "other"
}

// Glyph returns the marker drawn on the time axis for this kind.
func (k EventKind) Glyph() string {
	switch k {
	case EventSleepMedication:
		return "▲"
	case EventToilet:
		return "▽"
	default:
		return "●"
	}
}
