package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the storage and CLI form of a diary date.
const DateLayout = "2006-01-02"

// ClockLayout is the storage form of a wall-clock time.
const ClockLayout = "15:04"

var ErrInvalidLog = errors.New("invalid sleep log")

// SleepLog is one night's diary entry. Segments may wrap past midnight;
// their times are stored as wall-clock text.
type SleepLog struct {
	ID          string
	UserID      string
	Date        time.Time
	Sleepiness  *int
	ToiletCount int
	Memo        string
	Segments    []Segment
	Events      []Event
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Segment struct {
	ID      string
	LogID   string
	Kind    SegmentKind
	StartAt string
	EndAt   string
}

type Event struct {
	ID         string
	LogID      string
	Kind       string
	HappenedAt string
}

// DateKey is the log's date in DateLayout.
func (l *SleepLog) DateKey() string {
	return l.Date.Format(DateLayout)
}

// Validate checks the entry before it is stored.
func (l *SleepLog) Validate() error {
	if l.UserID == "" {
		return fmt.Errorf("%w: user is required", ErrInvalidLog)
	}
	if l.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidLog)
	}
	if l.Sleepiness != nil && (*l.Sleepiness < 1 || *l.Sleepiness > 10) {
		return fmt.Errorf("%w: sleepiness must be 1-10, got %d", ErrInvalidLog, *l.Sleepiness)
	}
	for i, s := range l.Segments {
		if !s.Kind.Valid() {
			return fmt.Errorf("%w: segment %d: unknown kind %q", ErrInvalidLog, i+1, s.Kind)
		}
		if !ValidClock(s.StartAt) || !ValidClock(s.EndAt) {
			return fmt.Errorf("%w: segment %d: times must be HH:MM", ErrInvalidLog, i+1)
		}
	}
	for i, e := range l.Events {
		if strings.TrimSpace(e.Kind) == "" {
			return fmt.Errorf("%w: event %d: kind is required", ErrInvalidLog, i+1)
		}
		if !ValidClock(e.HappenedAt) {
			return fmt.Errorf("%w: event %d: time must be HH:MM", ErrInvalidLog, i+1)
		}
	}
	return nil
}

// CountToilets derives the toilet count from the recorded events.
func (l *SleepLog) CountToilets() int {
	n := 0
	for _, e := range l.Events {
		if e.Kind == EventToilet {
			n++
		}
	}
	return n
}

// ValidClock reports whether s is an HH:MM wall-clock time.
func ValidClock(s string) bool {
	_, err := time.Parse(ClockLayout, s)
	return err == nil
}

// ParseDate parses a YYYY-MM-DD diary date.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
	}
	return d, nil
}
