package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/somnus/internal/db"
	"github.com/alexanderramin/somnus/internal/domain"
)

// SQLSleepLogRepo implements SleepLogRepo over SQLite or PostgreSQL.
type SQLSleepLogRepo struct {
	db      db.DBTX
	dialect db.Dialect
}

// NewSleepLogRepo creates a new SQLSleepLogRepo.
func NewSleepLogRepo(conn db.DBTX, dialect db.Dialect) *SQLSleepLogRepo {
	return &SQLSleepLogRepo{db: conn, dialect: dialect}
}

const logColumns = `id, user_id, date, sleepiness, toilet_count, memo, created_at, updated_at`

func (r *SQLSleepLogRepo) Save(ctx context.Context, l *domain.SleepLog) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	now := nowUTC()
	query := r.dialect.Rebind(`INSERT INTO sleep_logs (` + logColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, date) DO UPDATE SET
			sleepiness = excluded.sleepiness,
			toilet_count = excluded.toilet_count,
			memo = excluded.memo,
			updated_at = excluded.updated_at
		RETURNING id, created_at`)
	var createdAt string
	err := r.db.QueryRowContext(ctx, query,
		l.ID,
		l.UserID,
		formatDate(l.Date),
		nullableIntToValue(l.Sleepiness),
		l.ToiletCount,
		l.Memo,
		now,
		now,
	).Scan(&l.ID, &createdAt)
	if err != nil {
		return fmt.Errorf("upserting sleep log: %w", err)
	}
	l.CreatedAt = parseTimestamp(createdAt)
	l.UpdatedAt = parseTimestamp(now)

	if err := r.replaceChildren(ctx, l); err != nil {
		return err
	}
	return nil
}

func (r *SQLSleepLogRepo) replaceChildren(ctx context.Context, l *domain.SleepLog) error {
	if _, err := r.db.ExecContext(ctx, r.dialect.Rebind(`DELETE FROM sleep_segments WHERE log_id = ?`), l.ID); err != nil {
		return fmt.Errorf("clearing segments: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, r.dialect.Rebind(`DELETE FROM events WHERE log_id = ?`), l.ID); err != nil {
		return fmt.Errorf("clearing events: %w", err)
	}

	insertSeg := r.dialect.Rebind(`INSERT INTO sleep_segments (id, log_id, kind, start_at, end_at, order_index)
		VALUES (?, ?, ?, ?, ?, ?)`)
	for i := range l.Segments {
		s := &l.Segments[i]
		if s.ID == "" {
			s.ID = uuid.New().String()
		}
		s.LogID = l.ID
		if _, err := r.db.ExecContext(ctx, insertSeg, s.ID, s.LogID, string(s.Kind), s.StartAt, s.EndAt, i); err != nil {
			return fmt.Errorf("inserting segment %d: %w", i+1, err)
		}
	}

	insertEvent := r.dialect.Rebind(`INSERT INTO events (id, log_id, kind, happened_at, order_index)
		VALUES (?, ?, ?, ?, ?)`)
	for i := range l.Events {
		e := &l.Events[i]
		if e.ID == "" {
			e.ID = uuid.New().String()
		}
		e.LogID = l.ID
		if _, err := r.db.ExecContext(ctx, insertEvent, e.ID, e.LogID, e.Kind, e.HappenedAt, i); err != nil {
			return fmt.Errorf("inserting event %d: %w", i+1, err)
		}
	}
	return nil
}

func (r *SQLSleepLogRepo) GetByDate(ctx context.Context, userID string, date time.Time) (*domain.SleepLog, error) {
	logs, err := r.ListRange(ctx, userID, date, date)
	if err != nil {
		return nil, err
	}
	if len(logs) == 0 {
		return nil, fmt.Errorf("sleep log %s: %w", formatDate(date), ErrNotFound)
	}
	return logs[0], nil
}

func (r *SQLSleepLogRepo) ListRange(ctx context.Context, userID string, from, to time.Time) ([]*domain.SleepLog, error) {
	args := []any{userID, formatDate(from), formatDate(to)}

	query := r.dialect.Rebind(`SELECT ` + logColumns + ` FROM sleep_logs
		WHERE user_id = ? AND date >= ? AND date <= ? ORDER BY date`)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing sleep logs: %w", err)
	}
	logs, err := r.scanLogs(rows)
	if err != nil {
		return nil, err
	}
	if len(logs) == 0 {
		return logs, nil
	}
	byID := make(map[string]*domain.SleepLog, len(logs))
	for _, l := range logs {
		byID[l.ID] = l
	}

	if err := r.loadSegments(ctx, args, byID); err != nil {
		return nil, err
	}
	if err := r.loadEvents(ctx, args, byID); err != nil {
		return nil, err
	}
	return logs, nil
}

// loadSegments attaches segments to the logs selected by args. Each child
// query closes its rows before the next one starts, so a single-connection
// pool never waits on itself.
func (r *SQLSleepLogRepo) loadSegments(ctx context.Context, args []any, byID map[string]*domain.SleepLog) error {
	query := r.dialect.Rebind(`SELECT s.id, s.log_id, s.kind, s.start_at, s.end_at
		FROM sleep_segments s JOIN sleep_logs l ON l.id = s.log_id
		WHERE l.user_id = ? AND l.date >= ? AND l.date <= ?
		ORDER BY s.log_id, s.order_index`)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("listing segments: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var s domain.Segment
		var kind string
		if err := rows.Scan(&s.ID, &s.LogID, &kind, &s.StartAt, &s.EndAt); err != nil {
			return fmt.Errorf("scanning segment: %w", err)
		}
		s.Kind = domain.SegmentKind(kind)
		if l, ok := byID[s.LogID]; ok {
			l.Segments = append(l.Segments, s)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating segments: %w", err)
	}
	return nil
}

func (r *SQLSleepLogRepo) loadEvents(ctx context.Context, args []any, byID map[string]*domain.SleepLog) error {
	query := r.dialect.Rebind(`SELECT e.id, e.log_id, e.kind, e.happened_at
		FROM events e JOIN sleep_logs l ON l.id = e.log_id
		WHERE l.user_id = ? AND l.date >= ? AND l.date <= ?
		ORDER BY e.log_id, e.order_index`)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("listing events: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var e domain.Event
		if err := rows.Scan(&e.ID, &e.LogID, &e.Kind, &e.HappenedAt); err != nil {
			return fmt.Errorf("scanning event: %w", err)
		}
		if l, ok := byID[e.LogID]; ok {
			l.Events = append(l.Events, e)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating events: %w", err)
	}
	return nil
}

func (r *SQLSleepLogRepo) Delete(ctx context.Context, userID string, date time.Time) error {
	query := r.dialect.Rebind(`DELETE FROM sleep_logs WHERE user_id = ? AND date = ?`)
	res, err := r.db.ExecContext(ctx, query, userID, formatDate(date))
	if err != nil {
		return fmt.Errorf("deleting sleep log: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking deleted sleep log: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("sleep log %s: %w", formatDate(date), ErrNotFound)
	}
	return nil
}

func (r *SQLSleepLogRepo) scanLogs(rows *sql.Rows) ([]*domain.SleepLog, error) {
	defer rows.Close()
	var logs []*domain.SleepLog
	for rows.Next() {
		var l domain.SleepLog
		var date, createdAt, updatedAt string
		var sleepiness sql.NullInt64
		err := rows.Scan(&l.ID, &l.UserID, &date, &sleepiness, &l.ToiletCount, &l.Memo, &createdAt, &updatedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning sleep log: %w", err)
		}
		d, err := time.Parse(domain.DateLayout, date)
		if err != nil {
			return nil, fmt.Errorf("sleep log %s: bad date %q: %w", l.ID, date, err)
		}
		l.Date = d
		l.Sleepiness = nullIntToPtr(sleepiness)
		l.CreatedAt = parseTimestamp(createdAt)
		l.UpdatedAt = parseTimestamp(updatedAt)
		logs = append(logs, &l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sleep logs: %w", err)
	}
	return logs, nil
}

// IsNotFound reports whether err wraps ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
