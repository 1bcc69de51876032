package domain

// SegmentKind classifies a span of the night.
type SegmentKind string

const (
	SegmentInBed SegmentKind = "in_bed"
	SegmentDeep  SegmentKind = "deep"
	SegmentDoze  SegmentKind = "doze"
	SegmentAwake SegmentKind = "awake"
)

// SegmentKinds lists the kinds in display order.
var SegmentKinds = []SegmentKind{SegmentInBed, SegmentDeep, SegmentDoze, SegmentAwake}

func (k SegmentKind) Valid() bool {
	for _, known := range SegmentKinds {
		if k == known {
			return true
		}
	}
	return false
}

// Label is the human-facing name shown in forms and summaries.
func (k SegmentKind) Label() string {
	switch k {
	case SegmentInBed:
		return "In bed"
	case SegmentDeep:
		return "Deep sleep"
	case SegmentDoze:
		return "Doze"
	case SegmentAwake:
		return "Awake"
	}
	return string(k)
}

// Event tags recorded against a day.
const (
	EventSleepMed = "sleep_med"
	EventToilet   = "toilet"
	EventOtherMed = "other_med"
	EventAlcohol  = "alcohol"
	EventCaffeine = "caffeine"
	EventBath     = "bath"
)

// EventKinds lists the known event tags in display order.
var EventKinds = []string{EventSleepMed, EventToilet, EventOtherMed, EventAlcohol, EventCaffeine, EventBath}

// KnownEventKind reports whether tag is one of EventKinds.
func KnownEventKind(tag string) bool {
	for _, k := range EventKinds {
		if k == tag {
			return true
		}
	}
	return false
}

// EventIcon is the short marker used in month summaries.
func EventIcon(tag string) string {
	switch tag {
	case EventSleepMed:
		return "💊"
	case EventToilet:
		return "🚽"
	case EventOtherMed:
		return "💉"
	case EventAlcohol:
		return "🍺"
	case EventCaffeine:
		return "☕"
	case EventBath:
		return "🛁"
	}
	return "•"
}
