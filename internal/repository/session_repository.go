package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/spec-kit/hr-console/internal/session"
)

// DB is the subset of pgxpool.Pool used by repositories.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type sessionRepository struct {
	db DB
}

// NewSessionRepository returns a Postgres-backed session store.
func NewSessionRepository(db DB) session.Store {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Name() string { return "postgres" }

func (r *sessionRepository) Save(ctx context.Context, handle, payload string, ttl time.Duration) (string, error) {
	if handle == "" {
		handle = session.NewHandle()
	}
	const query = `
        INSERT INTO console_sessions (handle, payload, expires_at)
        VALUES ($1, $2, $3)
        ON CONFLICT (handle) DO UPDATE SET payload=EXCLUDED.payload, expires_at=EXCLUDED.expires_at, updated_at=NOW()`

	if _, err := r.db.Exec(ctx, query, handle, payload, time.Now().Add(ttl)); err != nil {
		return "", err
	}
	return handle, nil
}

func (r *sessionRepository) Load(ctx context.Context, handle string) (string, error) {
	// Handles that are not UUIDs were never issued by this store.
	if _, err := uuid.Parse(handle); err != nil {
		return "", session.ErrNotFound
	}
	const query = `
        SELECT payload FROM console_sessions
        WHERE handle=$1 AND expires_at > NOW()`

	var payload string
	if err := r.db.QueryRow(ctx, query, handle).Scan(&payload); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", session.ErrNotFound
		}
		return "", err
	}
	return payload, nil
}

func (r *sessionRepository) Delete(ctx context.Context, handle string) error {
	if _, err := uuid.Parse(handle); err != nil {
		return nil
	}
	const query = `DELETE FROM console_sessions WHERE handle=$1`
	_, err := r.db.Exec(ctx, query, handle)
	return err
}

// PurgeExpired removes sessions past their expiry.
func (r *sessionRepository) PurgeExpired(ctx context.Context) (int64, error) {
	const query = `DELETE FROM console_sessions WHERE expires_at <= NOW()`
	cmd, err := r.db.Exec(ctx, query)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}
