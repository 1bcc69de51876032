package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validLog() *SleepLog {
	s := 5
	return &SleepLog{
		UserID:     "u-1",
		Date:       time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC),
		Sleepiness: &s,
		Segments: []Segment{
			{Kind: SegmentInBed, StartAt: "22:30", EndAt: "07:00"},
			{Kind: SegmentDeep, StartAt: "23:00", EndAt: "06:30"},
		},
		Events: []Event{
			{Kind: EventToilet, HappenedAt: "02:30"},
			{Kind: EventSleepMed, HappenedAt: "22:00"},
			{Kind: EventToilet, HappenedAt: "04:10"},
		},
	}
}

func TestSleepLog_Validate(t *testing.T) {
	require.NoError(t, validLog().Validate())

	tests := []struct {
		name   string
		mutate func(*SleepLog)
	}{
		{"no user", func(l *SleepLog) { l.UserID = "" }},
		{"no date", func(l *SleepLog) { l.Date = time.Time{} }},
		{"sleepiness too high", func(l *SleepLog) { v := 11; l.Sleepiness = &v }},
		{"sleepiness zero", func(l *SleepLog) { v := 0; l.Sleepiness = &v }},
		{"unknown segment kind", func(l *SleepLog) { l.Segments[0].Kind = "nap" }},
		{"bad segment time", func(l *SleepLog) { l.Segments[1].EndAt = "6:30pm" }},
		{"empty event kind", func(l *SleepLog) { l.Events[0].Kind = " " }},
		{"bad event time", func(l *SleepLog) { l.Events[0].HappenedAt = "24:00" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := validLog()
			tt.mutate(l)
			assert.ErrorIs(t, l.Validate(), ErrInvalidLog)
		})
	}
}

func TestSleepLog_NilSleepinessAllowed(t *testing.T) {
	l := validLog()
	l.Sleepiness = nil
	assert.NoError(t, l.Validate())
}

func TestSleepLog_CountToilets(t *testing.T) {
	assert.Equal(t, 2, validLog().CountToilets())
	assert.Equal(t, 0, (&SleepLog{}).CountToilets())
}

func TestSegmentKind_Valid(t *testing.T) {
	for _, k := range SegmentKinds {
		assert.True(t, k.Valid())
	}
	assert.False(t, SegmentKind("nap").Valid())
}

func TestKnownEventKind(t *testing.T) {
	assert.True(t, KnownEventKind("bath"))
	assert.False(t, KnownEventKind("walk"))
	assert.Equal(t, "•", EventIcon("walk"))
}

func TestMonth(t *testing.T) {
	m, err := ParseMonth("2026-02")
	require.NoError(t, err)
	assert.Equal(t, 28, m.Days())
	assert.Equal(t, "2026-02", m.String())
	assert.Equal(t, time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC), m.Last())

	leap, _ := ParseMonth("2024-02")
	assert.Equal(t, 29, leap.Days())

	_, err = ParseMonth("2026/02")
	assert.Error(t, err)
}

func TestUser_HeaderName(t *testing.T) {
	u := &User{Username: "kaz"}
	assert.Equal(t, "kaz", u.HeaderName())
	u.DisplayName = "Kazu T."
	assert.Equal(t, "Kazu T.", u.HeaderName())
}
