package service

import (
	"context"
	"io"
	"time"

	"github.com/alexanderramin/somnus/internal/domain"
	"github.com/alexanderramin/somnus/internal/report"
)

type ProfileService interface {
	// EnsureUser returns the user, creating it on first use.
	EnsureUser(ctx context.Context, username string) (*domain.User, error)
	Get(ctx context.Context, username string) (*domain.User, error)
	// UpdateHeader changes the fields printed in the report header. Nil
	// arguments leave the field unchanged.
	UpdateHeader(ctx context.Context, username string, displayName, headerID *string) (*domain.User, error)
}

type DiaryService interface {
	// SaveDay validates and stores one day, replacing any earlier entry.
	SaveDay(ctx context.Context, username string, l *domain.SleepLog) error
	GetDay(ctx context.Context, username string, date time.Time) (*domain.SleepLog, error)
	DeleteDay(ctx context.Context, username string, date time.Time) error
	// ImportDays stores many days in one transaction; either all are saved
	// or none are.
	ImportDays(ctx context.Context, username string, logs []*domain.SleepLog) (int, error)
	MonthSummary(ctx context.Context, username string, month domain.Month) ([]DaySummary, error)
}

type ReportService interface {
	BuildInput(ctx context.Context, username string, month domain.Month) (report.Input, error)
	Generate(ctx context.Context, username string, month domain.Month, debug bool, w io.Writer) (*GenerateOutcome, error)
	// Calibrate renders fixed sample data with the debug grid.
	Calibrate(ctx context.Context, w io.Writer) (*report.Result, error)
	ExportSpreadsheet(ctx context.Context, username string, month domain.Month, w io.Writer) error
}

// DaySummary is one calendar cell of the month view.
type DaySummary struct {
	Date        time.Time
	Logged      bool
	TotalSleep  time.Duration
	Sleepiness  *int
	ToiletCount int
	Events      []string
	Memo        string
	Skipped     int
}

// Icons renders the day's events as summary markers.
func (d DaySummary) Icons() string {
	s := ""
	for _, e := range d.Events {
		s += domain.EventIcon(e)
	}
	return s
}

// GenerateOutcome describes a monthly render.
type GenerateOutcome struct {
	// Result is nil when the document came from the cache.
	Result *report.Result
	Cached bool
	Bytes  int
}
