package db

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const insertUser = `INSERT INTO users (id, username, created_at) VALUES (?, ?, '2026-02-01T00:00:00Z')`

func userExists(t *testing.T, database *sql.DB, username string) bool {
	t.Helper()
	var n int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM users WHERE username = ?`, username).Scan(&n))
	return n > 0
}

func TestWithinTx_Commits(t *testing.T) {
	database := openTestDB(t)
	uow := NewUnitOfWork(database)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx DBTX) error {
		_, err := tx.ExecContext(ctx, insertUser, "u-1", "hana")
		return err
	})
	require.NoError(t, err)
	assert.True(t, userExists(t, database, "hana"))
}

func TestWithinTx_RollsBackOnError(t *testing.T) {
	database := openTestDB(t)
	uow := NewUnitOfWork(database)
	boom := errors.New("boom")

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx DBTX) error {
		if _, err := tx.ExecContext(ctx, insertUser, "u-1", "hana"); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)
	assert.False(t, userExists(t, database, "hana"))
}

func TestWithinTx_RollsBackOnPanic(t *testing.T) {
	database := openTestDB(t)
	uow := NewUnitOfWork(database)

	assert.PanicsWithValue(t, "boom", func() {
		_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx DBTX) error {
			_, _ = tx.ExecContext(ctx, insertUser, "u-1", "hana")
			panic("boom")
		})
	})
	assert.False(t, userExists(t, database, "hana"))
}

func TestWithinTx_SecondWriteFailureUndoesFirst(t *testing.T) {
	database := openTestDB(t)
	uow := NewUnitOfWork(database)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx DBTX) error {
		if _, err := tx.ExecContext(ctx, insertUser, "u-1", "hana"); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, insertUser, "u-2", "hana")
		return err
	})
	require.Error(t, err)
	assert.False(t, userExists(t, database, "hana"))
}

func TestWithinTx_JoinsRollbackFailure(t *testing.T) {
	database, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer database.Close()

	boom := errors.New("boom")
	rbErr := errors.New("connection reset")
	mock.ExpectBegin()
	mock.ExpectRollback().WillReturnError(rbErr)

	err = NewUnitOfWork(database).WithinTx(context.Background(), func(context.Context, DBTX) error {
		return boom
	})
	require.ErrorIs(t, err, boom)
	assert.ErrorIs(t, err, rbErr)
	assert.Contains(t, err.Error(), "rolling back")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithinTx_ReportsCommitFailure(t *testing.T) {
	database, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer database.Close()

	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(errors.New("disk full"))

	err = NewUnitOfWork(database).WithinTx(context.Background(), func(context.Context, DBTX) error {
		return nil
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "committing transaction: disk full")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithinTx_ReportsBeginFailure(t *testing.T) {
	database, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer database.Close()

	mock.ExpectBegin().WillReturnError(errors.New("too many connections"))

	called := false
	err = NewUnitOfWork(database).WithinTx(context.Background(), func(context.Context, DBTX) error {
		called = true
		return nil
	})
	require.Error(t, err)
	assert.False(t, called)
	assert.Contains(t, err.Error(), "beginning transaction")
}
