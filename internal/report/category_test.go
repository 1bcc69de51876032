package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in   string
		want Category
	}{
		{"in_bed", CategoryInBed},
		{"In Bed", CategoryInBed},
		{"deep", CategoryDeep},
		{"Deep Sleep (ぐっすり)", CategoryDeep},
		{"doze", CategoryDoze},
		{"Awake", CategoryAwake},
		{"nap", CategoryUnknown},
		{"", CategoryUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseCategory(tt.in), "input %q", tt.in)
	}
}

func TestCategory_CountsAsSleep(t *testing.T) {
	assert.True(t, CategoryDeep.CountsAsSleep())
	assert.True(t, CategoryDoze.CountsAsSleep())
	assert.False(t, CategoryInBed.CountsAsSleep())
	assert.False(t, CategoryAwake.CountsAsSleep())
	assert.False(t, CategoryUnknown.CountsAsSleep())
}

func TestParseEventKind(t *testing.T) {
	assert.Equal(t, EventSleepMedication, ParseEventKind("sleep_med"))
	assert.Equal(t, EventToilet, ParseEventKind("Toilet (night)"))
	assert.Equal(t, EventOtherMedication, ParseEventKind("other_med"))
	assert.Equal(t, EventCaffeine, ParseEventKind("caffeine"))
	assert.Equal(t, EventOther, ParseEventKind("walk"))
	assert.Equal(t, EventSleepMedication, ParseEventKind("SleepMedication"))
	assert.Equal(t, EventSleepMedication, ParseEventKind("Sleep medication 0.5mg"))
	assert.Equal(t, EventOtherMedication, ParseEventKind("OtherMedication"))
	assert.Equal(t, EventToilet, ParseEventKind("TOILET"))
	// First match wins when several tags appear.
	assert.Equal(t, EventSleepMedication, ParseEventKind("sleep_med after toilet"))
}

func TestEventKind_Glyph(t *testing.T) {
	assert.Equal(t, "▲", EventSleepMedication.Glyph())
	assert.Equal(t, "▽", EventToilet.Glyph())
	assert.Equal(t, "●", EventAlcohol.Glyph())
	assert.Equal(t, "●", EventOther.Glyph())
}

func TestEventKind_StringRoundTrips(t *testing.T) {
	for _, k := range []EventKind{EventSleepMedication, EventToilet, EventOtherMedication, EventAlcohol, EventCaffeine, EventBath} {
		assert.Equal(t, k, ParseEventKind(k.String()))
	}
	assert.Equal(t, "other", EventOther.String())
}
