package testutil

import (
	"context"
	"database/sql"
	"strings"
	"sync/atomic"

	"github.com/alexanderramin/somnus/internal/db"
)

// FailingUoW runs a real transaction but makes the FailOn-th counted
// ExecContext return Err, so rollback paths can be exercised at an exact
// write. Only statements containing Match are counted; an empty Match
// counts every write. Reads are never counted.
type FailingUoW struct {
	DB     *sql.DB
	FailOn int32
	Match  string
	Err    error
}

func (u *FailingUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	return db.NewUnitOfWork(u.DB).WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, &failingExec{DBTX: tx, uow: u})
	})
}

type failingExec struct {
	db.DBTX
	uow   *FailingUoW
	count atomic.Int32
}

func (f *failingExec) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if strings.Contains(query, f.uow.Match) && f.count.Add(1) == f.uow.FailOn {
		return nil, f.uow.Err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
