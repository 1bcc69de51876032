package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/alexanderramin/somnus/internal/cache"
	"github.com/alexanderramin/somnus/internal/domain"
	"github.com/alexanderramin/somnus/internal/report"
	"github.com/alexanderramin/somnus/internal/repository"
)

type reportService struct {
	profiles  ProfileService
	logs      repository.SleepLogRepo
	generator *report.Generator
	cache     cache.ReportCache
	logger    *zap.Logger
	observer  UseCaseObserver
	// cacheSalt separates entries rendered with different assets.
	cacheSalt string
}

// ReportOption configures the report service.
type ReportOption func(*reportService)

// WithReportCache stores rendered documents in c.
func WithReportCache(c cache.ReportCache) ReportOption {
	return func(s *reportService) {
		if c != nil {
			s.cache = c
		}
	}
}

// WithReportLogger sets the logger for cache failures.
func WithReportLogger(logger *zap.Logger) ReportOption {
	return func(s *reportService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithCacheSalt mixes asset identity (template, font) into cache keys.
func WithCacheSalt(salt string) ReportOption {
	return func(s *reportService) { s.cacheSalt = salt }
}

// WithReportObserver sets the use-case observer.
func WithReportObserver(obs UseCaseObserver) ReportOption {
	return func(s *reportService) {
		if obs != nil {
			s.observer = obs
		}
	}
}

func NewReportService(
	profiles ProfileService,
	logs repository.SleepLogRepo,
	generator *report.Generator,
	opts ...ReportOption,
) ReportService {
	s := &reportService{
		profiles:  profiles,
		logs:      logs,
		generator: generator,
		cache:     cache.NoopCache{},
		logger:    zap.NewNop(),
		observer:  NoopUseCaseObserver{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *reportService) BuildInput(ctx context.Context, username string, month domain.Month) (report.Input, error) {
	in := report.Input{
		Days:   make(map[int]report.DayMetrics),
		Header: report.Header{Year: month.Year, Month: int(month.Month)},
	}

	u, err := s.profiles.Get(ctx, username)
	if err != nil {
		if repository.IsNotFound(err) {
			return in, nil
		}
		return in, err
	}
	in.Header.ID = u.HeaderID
	in.Header.Name = u.HeaderName()

	logs, err := s.logs.ListRange(ctx, u.ID, month.First(), month.Last())
	if err != nil {
		return in, err
	}
	for _, l := range logs {
		res := normalizeLog(l)
		in.Intervals = append(in.Intervals, res.Intervals...)
		in.Events = append(in.Events, res.Events...)
		in.Skips = append(in.Skips, res.Skips...)

		m := report.DayMetrics{Sleepiness: l.Sleepiness, Memo: l.Memo}
		if len(l.Segments) > 0 {
			m.SleepLabel = res.SleepLabel()
		}
		in.Days[res.Day] = m
	}
	return in, nil
}

func (s *reportService) Generate(ctx context.Context, username string, month domain.Month, debug bool, w io.Writer) (out *GenerateOutcome, err error) {
	fields := map[string]any{"month": month.String(), "debug": debug}
	defer observe(ctx, s.observer, "generate-report", time.Now(), fields, &err)

	in, err := s.BuildInput(ctx, username, month)
	if err != nil {
		return nil, err
	}
	in.Debug = debug

	key, err := s.cacheKey(in)
	if err != nil {
		return nil, err
	}
	if data, cerr := s.cache.Get(ctx, key); cerr == nil {
		fields["cached"] = true
		if _, err = w.Write(data); err != nil {
			return nil, fmt.Errorf("%w: %v", report.ErrSinkWrite, err)
		}
		return &GenerateOutcome{Cached: true, Bytes: len(data)}, nil
	} else if !errors.Is(cerr, cache.ErrCacheMiss) {
		s.logger.Warn("report cache read failed", zap.Error(cerr))
	}

	var buf bytes.Buffer
	res, err := s.generator.Generate(ctx, in, &buf)
	if err != nil {
		return nil, err
	}
	fields["skipped"] = len(res.Skips)
	if _, err = w.Write(buf.Bytes()); err != nil {
		return nil, fmt.Errorf("%w: %v", report.ErrSinkWrite, err)
	}
	if cerr := s.cache.Set(ctx, key, buf.Bytes()); cerr != nil {
		s.logger.Warn("report cache write failed", zap.Error(cerr))
	}
	return &GenerateOutcome{Result: res, Bytes: buf.Len()}, nil
}

func (s *reportService) Calibrate(ctx context.Context, w io.Writer) (res *report.Result, err error) {
	defer observe(ctx, s.observer, "calibrate-report", time.Now(), nil, &err)
	return s.generator.Generate(ctx, CalibrationInput(), w)
}

// cacheKey hashes everything that affects the rendered bytes.
func (s *reportService) cacheKey(in report.Input) (string, error) {
	payload, err := json.Marshal(struct {
		Input  report.Input
		Layout report.Layout
		Salt   string
	}{in, s.generator.Layout(), s.cacheSalt})
	if err != nil {
		return "", fmt.Errorf("encoding cache key: %w", err)
	}
	return cache.Key(payload), nil
}

// CalibrationInput is the fixed sample drawn by the calibrate command: one
// bar, both main markers, a wrapped memo and a full header, so every anchor
// can be checked against the grid.
func CalibrationInput() report.Input {
	sleepiness := 7
	return report.Input{
		// An unknown category takes the deep-sleep fill, so the bar shows
		// the solid band a real night would.
		Intervals: []report.Interval{
			{Day: 0, Start: 6.0, End: 12.0, Category: report.CategoryUnknown},
		},
		Events: []report.Event{
			{Day: 0, Hour: 22.0, Kind: report.EventSleepMedication},
			{Day: 0, Hour: 2.5, Kind: report.EventToilet},
		},
		Days: map[int]report.DayMetrics{
			0: {
				Sleepiness: &sleepiness,
				Memo:       "これはテスト用の長いメモです。折り返し確認用テキスト。",
			},
		},
		Header: report.Header{ID: "001", Name: "Test User", Year: 2026, Month: 2},
		Debug:  true,
	}
}
