package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/somnus/internal/db"
	"github.com/alexanderramin/somnus/internal/domain"
)

// SQLUserRepo implements UserRepo over SQLite or PostgreSQL.
type SQLUserRepo struct {
	db      db.DBTX
	dialect db.Dialect
}

// NewUserRepo creates a new SQLUserRepo.
func NewUserRepo(conn db.DBTX, dialect db.Dialect) *SQLUserRepo {
	return &SQLUserRepo{db: conn, dialect: dialect}
}

const userColumns = `id, username, email, display_name, header_id, created_at`

func (r *SQLUserRepo) Create(ctx context.Context, u *domain.User) error {
	query := r.dialect.Rebind(`INSERT INTO users (` + userColumns + `) VALUES (?, ?, ?, ?, ?, ?)`)
	_, err := r.db.ExecContext(ctx, query,
		u.ID,
		u.Username,
		u.Email,
		u.DisplayName,
		u.HeaderID,
		u.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting user: %w", err)
	}
	return nil
}

func (r *SQLUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := r.dialect.Rebind(`SELECT ` + userColumns + ` FROM users WHERE id = ?`)
	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := r.dialect.Rebind(`SELECT ` + userColumns + ` FROM users WHERE username = ?`)
	return r.scanUser(r.db.QueryRowContext(ctx, query, username))
}

func (r *SQLUserRepo) Update(ctx context.Context, u *domain.User) error {
	query := r.dialect.Rebind(`UPDATE users SET email = ?, display_name = ?, header_id = ? WHERE id = ?`)
	res, err := r.db.ExecContext(ctx, query, u.Email, u.DisplayName, u.HeaderID, u.ID)
	if err != nil {
		return fmt.Errorf("updating user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking updated user: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("user %s: %w", u.ID, ErrNotFound)
	}
	return nil
}

func (r *SQLUserRepo) scanUser(row *sql.Row) (*domain.User, error) {
	var u domain.User
	var createdAt string
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.DisplayName, &u.HeaderID, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning user: %w", err)
	}
	u.CreatedAt = parseTimestamp(createdAt)
	return &u, nil
}
