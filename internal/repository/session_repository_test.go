package repository

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/hr-console/internal/session"
)

type execCall struct {
	sql  string
	args []any
}

type fakeRow struct {
	payload string
	err     error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*(dest[0].(*string)) = r.payload
	return nil
}

type fakeDB struct {
	execs   []execCall
	queries []execCall
	row     fakeRow
	tag     pgconn.CommandTag
	execErr error
}

func (f *fakeDB) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.execs = append(f.execs, execCall{sql: sql, args: args})
	return f.tag, f.execErr
}

func (f *fakeDB) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	f.queries = append(f.queries, execCall{sql: sql, args: args})
	return f.row
}

func TestSessionRepository_Save(t *testing.T) {
	db := &fakeDB{}
	repo := NewSessionRepository(db)
	assert.Equal(t, "postgres", repo.Name())

	handle, err := repo.Save(context.Background(), "", "sealed", time.Hour)
	require.NoError(t, err)
	assert.NotEmpty(t, handle)

	require.Len(t, db.execs, 1)
	assert.Contains(t, db.execs[0].sql, "ON CONFLICT (handle)")
	assert.Equal(t, handle, db.execs[0].args[0])
	assert.Equal(t, "sealed", db.execs[0].args[1])
	expires := db.execs[0].args[2].(time.Time)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expires, time.Minute)

	same, err := repo.Save(context.Background(), handle, "sealed-2", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, handle, same)
}

func TestSessionRepository_SaveError(t *testing.T) {
	db := &fakeDB{execErr: errors.New("db down")}
	_, err := NewSessionRepository(db).Save(context.Background(), "", "sealed", time.Hour)
	assert.Error(t, err)
}

const testHandle = "6f1c2a1e-8d0b-4c5e-9a57-3f2b1d4e6a90"

func TestSessionRepository_Load(t *testing.T) {
	tests := []struct {
		name    string
		row     fakeRow
		want    string
		wantErr error
	}{
		{name: "found", row: fakeRow{payload: "sealed"}, want: "sealed"},
		{name: "missing or expired", row: fakeRow{err: pgx.ErrNoRows}, wantErr: session.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := &fakeDB{row: tt.row}
			payload, err := NewSessionRepository(db).Load(context.Background(), testHandle)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, payload)
			assert.True(t, strings.Contains(db.queries[0].sql, "expires_at > NOW()"))
		})
	}

	db := &fakeDB{row: fakeRow{err: errors.New("conn reset")}}
	_, err := NewSessionRepository(db).Load(context.Background(), testHandle)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, session.ErrNotFound)
}

func TestSessionRepository_DeleteAndPurge(t *testing.T) {
	db := &fakeDB{tag: pgconn.NewCommandTag("DELETE 3")}
	repo := NewSessionRepository(db)

	require.NoError(t, repo.Delete(context.Background(), testHandle))
	assert.Equal(t, []any{testHandle}, db.execs[0].args)

	purger, ok := repo.(session.Purger)
	require.True(t, ok)
	n, err := purger.PurgeExpired(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestSessionRepository_ForeignHandle(t *testing.T) {
	handles := []string{"", "zzzz", "ey.sealed-cookie-payload", testHandle + "x"}

	for _, handle := range handles {
		db := &fakeDB{row: fakeRow{err: errors.New("invalid input syntax for type uuid")}}
		repo := NewSessionRepository(db)

		_, err := repo.Load(context.Background(), handle)
		assert.ErrorIs(t, err, session.ErrNotFound, handle)
		assert.NoError(t, repo.Delete(context.Background(), handle), handle)
		assert.Empty(t, db.queries, "no query for %q", handle)
		assert.Empty(t, db.execs, "no statement for %q", handle)
	}
}
