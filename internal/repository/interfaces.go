package repository

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/somnus/internal/domain"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

type UserRepo interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	Update(ctx context.Context, u *domain.User) error
}

type SleepLogRepo interface {
	// Save upserts the log for (UserID, Date) and replaces its segments and
	// events. Callers run it inside a transaction.
	Save(ctx context.Context, l *domain.SleepLog) error
	GetByDate(ctx context.Context, userID string, date time.Time) (*domain.SleepLog, error)
	// ListRange returns logs with from <= date <= to, oldest first, with
	// segments and events loaded.
	ListRange(ctx context.Context, userID string, from, to time.Time) ([]*domain.SleepLog, error)
	Delete(ctx context.Context, userID string, date time.Time) error
}
