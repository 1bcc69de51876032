package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alexanderramin/somnus/internal/db"
	"github.com/alexanderramin/somnus/internal/domain"
	"github.com/alexanderramin/somnus/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	database, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database, mock
}

func TestPostgresUserRepo_GetByUsername(t *testing.T) {
	database, mock := setupMockDB(t)
	repo := NewUserRepo(database, db.Postgres)

	rows := sqlmock.NewRows([]string{"id", "username", "email", "display_name", "header_id", "created_at"}).
		AddRow("u-1", "kaz", "kaz@example.com", "Kazu", "001", "2026-02-01T09:00:00Z")
	mock.ExpectQuery(regexp.QuoteMeta(`FROM users WHERE username = $1`)).
		WithArgs("kaz").
		WillReturnRows(rows)

	u, err := repo.GetByUsername(context.Background(), "kaz")
	require.NoError(t, err)
	assert.Equal(t, "u-1", u.ID)
	assert.Equal(t, "001", u.HeaderID)
	assert.Equal(t, 2026, u.CreatedAt.Year())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUserRepo_NotFound(t *testing.T) {
	database, mock := setupMockDB(t)
	repo := NewUserRepo(database, db.Postgres)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE id = $1`)).
		WithArgs("nope").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSleepLogRepo_Save(t *testing.T) {
	database, mock := setupMockDB(t)
	repo := NewSleepLogRepo(database, db.Postgres)

	l := testutil.NewTestSleepLog("u-1", testutil.Date(2026, 2, 3),
		testutil.WithSleepiness(6),
		testutil.WithSegment(domain.SegmentDeep, "23:00", "07:00"),
		testutil.WithEvent(domain.EventToilet, "02:30"),
	)

	mock.ExpectQuery(regexp.QuoteMeta(`ON CONFLICT (user_id, date) DO UPDATE`)).
		WithArgs(sqlmock.AnyArg(), "u-1", "2026-02-03", 6, 0, "", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow("log-existing", "2026-02-03T08:00:00Z"))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM sleep_segments WHERE log_id = $1`)).
		WithArgs("log-existing").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM events WHERE log_id = $1`)).
		WithArgs("log-existing").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO sleep_segments`)).
		WithArgs(sqlmock.AnyArg(), "log-existing", "deep", "23:00", "07:00", 0).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO events`)).
		WithArgs(sqlmock.AnyArg(), "log-existing", "toilet", "02:30", 0).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Save(context.Background(), l))
	assert.Equal(t, "log-existing", l.ID)
	assert.Equal(t, "log-existing", l.Segments[0].LogID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSleepLogRepo_DeleteMissing(t *testing.T) {
	database, mock := setupMockDB(t)
	repo := NewSleepLogRepo(database, db.Postgres)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM sleep_logs WHERE user_id = $1 AND date = $2`)).
		WithArgs("u-1", "2026-02-03").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "u-1", testutil.Date(2026, 2, 3))
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSleepLogRepo_ListRangeQueryError(t *testing.T) {
	database, mock := setupMockDB(t)
	repo := NewSleepLogRepo(database, db.Postgres)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE user_id = $1 AND date >= $2 AND date <= $3`)).
		WillReturnError(assert.AnError)

	_, err := repo.ListRange(context.Background(), "u-1", testutil.Date(2026, 2, 1), testutil.Date(2026, 2, 28))
	assert.ErrorIs(t, err, assert.AnError)
	assert.NoError(t, mock.ExpectationsWereMet())
}
