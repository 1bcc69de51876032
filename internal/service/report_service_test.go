package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/alexanderramin/somnus/internal/cache"
	"github.com/alexanderramin/somnus/internal/domain"
	"github.com/alexanderramin/somnus/internal/report"
	"github.com/alexanderramin/somnus/internal/testutil"
)

var february = domain.Month{Year: 2026, Month: time.February}

func seedFebruary(t *testing.T, svc testServices) {
	t.Helper()
	ctx := context.Background()
	name, id := "Test User", "001"
	_, err := svc.profile.UpdateHeader(ctx, "kaz", &name, &id)
	require.NoError(t, err)

	require.NoError(t, svc.diary.SaveDay(ctx, "kaz", testutil.NewTestSleepLog("", testutil.Date(2026, 2, 1),
		testutil.WithSleepiness(4),
		testutil.WithMemo("slept well"),
		testutil.WithSegment(domain.SegmentDeep, "23:00", "07:00"),
		testutil.WithEvent(domain.EventToilet, "02:30"),
	)))
	require.NoError(t, svc.diary.SaveDay(ctx, "kaz", testutil.NewTestSleepLog("", testutil.Date(2026, 2, 6),
		testutil.WithSegment(domain.SegmentInBed, "01:00", "06:00"),
	)))
}

func TestReportService_BuildInput(t *testing.T) {
	svc := setupServices(t)
	seedFebruary(t, svc)

	in, err := svc.report.BuildInput(context.Background(), "kaz", february)
	require.NoError(t, err)

	assert.Equal(t, report.Header{ID: "001", Name: "Test User", Year: 2026, Month: 2}, in.Header)
	assert.False(t, in.Debug)

	require.Len(t, in.Intervals, 3)
	assert.Equal(t, report.Interval{Day: 0, Start: 23, End: 24, Category: report.CategoryDeep}, in.Intervals[0])
	assert.Equal(t, report.Interval{Day: 0, Start: 0, End: 7, Category: report.CategoryDeep}, in.Intervals[1])
	assert.Equal(t, 5, in.Intervals[2].Day)
	assert.Equal(t, report.CategoryInBed, in.Intervals[2].Category)

	require.Len(t, in.Events, 1)
	assert.Equal(t, report.Event{Day: 0, Hour: 2.5, Kind: report.EventToilet}, in.Events[0])

	assert.Equal(t, "睡眠時間: 8h00m", in.Days[0].SleepLabel)
	assert.Equal(t, "slept well", in.Days[0].Memo)
	assert.Equal(t, "睡眠時間: 0h00m", in.Days[5].SleepLabel)
	assert.Empty(t, in.Skips)
}

func TestReportService_BuildInputSkipsCorruptRows(t *testing.T) {
	svc := setupServices(t)
	ctx := context.Background()
	u, err := svc.profile.EnsureUser(ctx, "kaz")
	require.NoError(t, err)

	// Written straight through the repository, bypassing validation.
	require.NoError(t, svc.logs.Save(ctx, testutil.NewTestSleepLog(u.ID, testutil.Date(2026, 2, 10),
		testutil.WithSegment(domain.SegmentDeep, "late", "07:00"),
		testutil.WithSegment(domain.SegmentDoze, "01:00", "02:00"),
	)))

	in, err := svc.report.BuildInput(ctx, "kaz", february)
	require.NoError(t, err)
	assert.Len(t, in.Intervals, 1)
	require.Len(t, in.Skips, 1)
	assert.Equal(t, report.SkipParse, in.Skips[0].Reason)
	assert.Equal(t, 9, in.Skips[0].Day)
}

func TestReportService_BuildInputUnknownUser(t *testing.T) {
	svc := setupServices(t)
	in, err := svc.report.BuildInput(context.Background(), "ghost", february)
	require.NoError(t, err)
	assert.Empty(t, in.Intervals)
	assert.Equal(t, 2026, in.Header.Year)
}

func TestReportService_GenerateWritesPDF(t *testing.T) {
	svc := setupServices(t)
	seedFebruary(t, svc)

	var buf bytes.Buffer
	out, err := svc.report.Generate(context.Background(), "kaz", february, false, &buf)
	require.NoError(t, err)
	assert.False(t, out.Cached)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	assert.Equal(t, buf.Len(), out.Bytes)
	require.NotNil(t, out.Result)
	// No template configured.
	assert.Equal(t, 1, out.Result.SkipCount(report.SkipMissingAsset))
}

func TestReportService_GenerateUsesCache(t *testing.T) {
	mr := miniredis.RunT(t)
	client := cache.NewRedisClient(mr.Addr(), "", 0)
	t.Cleanup(func() { client.Close() })
	svc := setupServices(t, WithReportCache(cache.NewRedisReportCache(client, time.Hour)))
	seedFebruary(t, svc)
	ctx := context.Background()

	var first, second bytes.Buffer
	out, err := svc.report.Generate(ctx, "kaz", february, false, &first)
	require.NoError(t, err)
	assert.False(t, out.Cached)
	assert.Len(t, mr.Keys(), 1)

	out, err = svc.report.Generate(ctx, "kaz", february, false, &second)
	require.NoError(t, err)
	assert.True(t, out.Cached)
	assert.Nil(t, out.Result)
	assert.Equal(t, first.Bytes(), second.Bytes())

	// A different render input misses.
	out, err = svc.report.Generate(ctx, "kaz", february, true, &bytes.Buffer{})
	require.NoError(t, err)
	assert.False(t, out.Cached)
	assert.Len(t, mr.Keys(), 2)
}

func TestReportService_GenerateSurvivesCacheOutage(t *testing.T) {
	mr := miniredis.RunT(t)
	client := cache.NewRedisClient(mr.Addr(), "", 0)
	t.Cleanup(func() { client.Close() })
	svc := setupServices(t, WithReportCache(cache.NewRedisReportCache(client, time.Hour)))
	mr.Close()

	var buf bytes.Buffer
	out, err := svc.report.Generate(context.Background(), "kaz", february, false, &buf)
	require.NoError(t, err)
	assert.False(t, out.Cached)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestReportService_Calibrate(t *testing.T) {
	svc := setupServices(t)

	var buf bytes.Buffer
	res, err := svc.report.Calibrate(context.Background(), &buf)
	require.NoError(t, err)
	assert.True(t, res.Reached(report.StateGridDrawn))
	assert.True(t, res.Reached(report.StateFinalized))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	// No font is configured, so the Japanese memo lines are flagged.
	assert.Positive(t, res.SkipCount(report.SkipMissingGlyphs))
}

func TestCalibrationInput(t *testing.T) {
	in := CalibrationInput()
	assert.True(t, in.Debug)
	require.Len(t, in.Intervals, 1)
	assert.Equal(t, 6.0, in.Intervals[0].Start)
	assert.Equal(t, 12.0, in.Intervals[0].End)
	assert.Equal(t, report.CategoryUnknown, in.Intervals[0].Category)
	require.Len(t, in.Events, 2)
	assert.Equal(t, 7, *in.Days[0].Sleepiness)
	assert.Equal(t, "Test User", in.Header.Name)
}

func TestReportService_ExportSpreadsheet(t *testing.T) {
	svc := setupServices(t)
	seedFebruary(t, svc)

	var buf bytes.Buffer
	require.NoError(t, svc.report.ExportSpreadsheet(context.Background(), "kaz", february, &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"2026-02"}, f.GetSheetList())
	rows, err := f.GetRows("2026-02")
	require.NoError(t, err)
	require.Len(t, rows, 29)
	assert.Equal(t, SpreadsheetHeader, rows[0])

	day1 := rows[1]
	assert.Equal(t, "2026-02-01", day1[0])
	assert.Equal(t, "4", day1[1])
	assert.Equal(t, "8h00m", day1[2])
	assert.Equal(t, "1", day1[3])
	assert.Equal(t, "deep 23:00-07:00", day1[4])
	assert.Equal(t, "toilet 02:30", day1[5])
	assert.Equal(t, "slept well", day1[6])

	assert.Equal(t, []string{"2026-02-02"}, rows[2])
}
