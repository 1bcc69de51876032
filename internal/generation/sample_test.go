package generation

import (
	"testing"
	"time"

	"github.com/alexanderramin/somnus/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleMonth_OneEntryPerDay(t *testing.T) {
	month := domain.Month{Year: 2026, Month: time.February}
	logs := SampleMonth(month, 1)
	require.Len(t, logs, 28)
	for i, l := range logs {
		assert.Equal(t, i+1, l.Date.Day())
		assert.Equal(t, time.February, l.Date.Month())
	}
}

func TestSampleMonth_Deterministic(t *testing.T) {
	month := domain.Month{Year: 2026, Month: time.March}
	assert.Equal(t, SampleMonth(month, 42), SampleMonth(month, 42))
	assert.NotEqual(t, SampleMonth(month, 42), SampleMonth(month, 43))
}

func TestSampleMonth_EntriesAreValid(t *testing.T) {
	for _, l := range SampleMonth(domain.Month{Year: 2026, Month: time.January}, 7) {
		l.UserID = "u1"
		require.NoError(t, l.Validate(), l.DateKey())

		require.NotEmpty(t, l.Segments)
		assert.Equal(t, domain.SegmentInBed, l.Segments[0].Kind)
		require.NotNil(t, l.Sleepiness)
		assert.GreaterOrEqual(t, *l.Sleepiness, 2)
		assert.LessOrEqual(t, *l.Sleepiness, 8)
		assert.Equal(t, l.CountToilets(), l.ToiletCount)
	}
}

func TestSampleNight_SleepFitsInsideBedTime(t *testing.T) {
	for _, l := range SampleMonth(domain.Month{Year: 2026, Month: time.February}, 3) {
		inBed := l.Segments[0]
		bed, err := time.Parse(domain.ClockLayout, inBed.StartAt)
		require.NoError(t, err)
		// Night sleep starts 15 minutes after going to bed.
		assert.Equal(t, bed.Add(15*time.Minute).Format(domain.ClockLayout), l.Segments[1].StartAt)
		assert.Equal(t, domain.SegmentDeep, l.Segments[1].Kind)
	}
}
