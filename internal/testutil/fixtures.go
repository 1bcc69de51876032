package testutil

import (
	"time"

	"github.com/alexanderramin/somnus/internal/domain"
	"github.com/google/uuid"
)

// User options
type UserOption func(*domain.User)

func WithDisplayName(name string) UserOption {
	return func(u *domain.User) {
		u.DisplayName = name
	}
}

func WithHeaderID(id string) UserOption {
	return func(u *domain.User) {
		u.HeaderID = id
	}
}

func NewTestUser(username string, opts ...UserOption) *domain.User {
	u := &domain.User{
		ID:        uuid.New().String(),
		Username:  username,
		Email:     username + "@example.com",
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// SleepLog options
type LogOption func(*domain.SleepLog)

func WithSegment(kind domain.SegmentKind, start, end string) LogOption {
	return func(l *domain.SleepLog) {
		l.Segments = append(l.Segments, domain.Segment{Kind: kind, StartAt: start, EndAt: end})
	}
}

func WithEvent(kind, at string) LogOption {
	return func(l *domain.SleepLog) {
		l.Events = append(l.Events, domain.Event{Kind: kind, HappenedAt: at})
	}
}

func WithSleepiness(v int) LogOption {
	return func(l *domain.SleepLog) {
		l.Sleepiness = &v
	}
}

func WithMemo(memo string) LogOption {
	return func(l *domain.SleepLog) {
		l.Memo = memo
	}
}

// Date builds a UTC calendar date.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func NewTestSleepLog(userID string, date time.Time, opts ...LogOption) *domain.SleepLog {
	l := &domain.SleepLog{
		UserID: userID,
		Date:   date,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}
