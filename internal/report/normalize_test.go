package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	h, err := ParseClock("02:30")
	require.NoError(t, err)
	assert.Equal(t, 2.5, h)

	h, err = ParseClock(" 23:45 ")
	require.NoError(t, err)
	assert.Equal(t, 23.75, h)

	for _, bad := range []string{"", "25:00", "7pm", "12:60"} {
		_, err := ParseClock(bad)
		assert.ErrorIs(t, err, ErrParseSkip, "input %q", bad)
	}
}

func TestSplitIfWrapping(t *testing.T) {
	got := SplitIfWrapping(3, 23, 7, CategoryDeep)
	assert.Equal(t, []Interval{
		{Day: 3, Start: 23, End: 24, Category: CategoryDeep},
		{Day: 3, Start: 0, End: 7, Category: CategoryDeep},
	}, got)

	got = SplitIfWrapping(3, 1, 6, CategoryDoze)
	assert.Equal(t, []Interval{{Day: 3, Start: 1, End: 6, Category: CategoryDoze}}, got)

	got = SplitIfWrapping(3, 5, 5, CategoryAwake)
	require.Len(t, got, 1)
	assert.Equal(t, 5.0, got[0].Start)
	assert.Equal(t, 5.0, got[0].End)
}

func TestNormalizeDay_WrappingDeepSleep(t *testing.T) {
	res := NormalizeDay(0, []RawSegment{
		{Category: CategoryDeep, Start: "23:00", End: "07:00"},
	}, nil)

	require.Len(t, res.Intervals, 2)
	assert.Equal(t, 8*time.Hour, res.TotalSleep)
	assert.Equal(t, "睡眠時間: 8h00m", res.SleepLabel())
	assert.Empty(t, res.Skips)
	for _, iv := range res.Intervals {
		assert.Equal(t, 0, iv.Day)
		assert.LessOrEqual(t, iv.Start, iv.End)
	}
}

func TestNormalizeDay_OnlySleepCategoriesCount(t *testing.T) {
	res := NormalizeDay(4, []RawSegment{
		{Category: CategoryInBed, Start: "22:00", End: "08:00"},
		{Category: CategoryDoze, Start: "22:30", End: "23:15"},
		{Category: CategoryDeep, Start: "23:15", End: "06:00"},
		{Category: CategoryAwake, Start: "06:00", End: "06:30"},
		{Category: CategoryUnknown, Start: "06:30", End: "07:30"},
	}, nil)

	assert.Equal(t, 45*time.Minute+6*time.Hour+45*time.Minute, res.TotalSleep)
	assert.Equal(t, "睡眠時間: 7h30m", res.SleepLabel())
	assert.Len(t, res.Intervals, 7)
}

func TestNormalizeDay_InBedOnlyIsZero(t *testing.T) {
	res := NormalizeDay(1, []RawSegment{
		{Category: CategoryInBed, Start: "22:00", End: "06:00"},
	}, nil)
	assert.Equal(t, time.Duration(0), res.TotalSleep)
	assert.Equal(t, "睡眠時間: 0h00m", res.SleepLabel())
}

func TestNormalizeDay_ZeroLengthSegment(t *testing.T) {
	res := NormalizeDay(1, []RawSegment{
		{Category: CategoryDeep, Start: "03:00", End: "03:00"},
	}, nil)
	require.Len(t, res.Intervals, 1)
	assert.Equal(t, time.Duration(0), res.TotalSleep)
}

func TestNormalizeDay_MalformedRecordsSkipped(t *testing.T) {
	res := NormalizeDay(2, []RawSegment{
		{Category: CategoryDeep, Start: "xx:00", End: "07:00"},
		{Category: CategoryDeep, Start: "01:00", End: "??"},
		{Category: CategoryDeep, Start: "01:00", End: "02:00"},
	}, []RawEvent{
		{Kind: EventToilet, At: "later"},
		{Kind: EventToilet, At: "02:30"},
	})

	require.Len(t, res.Intervals, 1)
	require.Len(t, res.Events, 1)
	assert.Equal(t, 2.5, res.Events[0].Hour)
	assert.Equal(t, EventToilet, res.Events[0].Kind)
	assert.Equal(t, time.Hour, res.TotalSleep)

	require.Len(t, res.Skips, 3)
	for _, s := range res.Skips {
		assert.Equal(t, SkipParse, s.Reason)
		assert.Equal(t, 2, s.Day)
	}
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "0h00m", FormatDuration(0))
	assert.Equal(t, "7h05m", FormatDuration(7*time.Hour+5*time.Minute))
	assert.Equal(t, "25h00m", FormatDuration(25*time.Hour))
}
