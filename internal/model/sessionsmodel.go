package model

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/zeromicro/go-zero/core/stores/sqlx"
)

var ErrNotFound = sqlx.ErrNotFound

var _ SessionsModel = (*defaultSessionsModel)(nil)

const sessionsRows = "id,data,expires_at,updated_at"

type (
	// SessionsModel stores encoded wizard sessions. Rows whose expires_at has
	// passed are treated as missing and removed by DeleteExpired.
	SessionsModel interface {
		FindLive(ctx context.Context, id string, now time.Time) (*Sessions, error)
		Upsert(ctx context.Context, data *Sessions) error
		Delete(ctx context.Context, id string) (int64, error)
		DeleteExpired(ctx context.Context, now time.Time) (int64, error)
	}

	defaultSessionsModel struct {
		conn  sqlx.SqlConn
		table string
	}

	Sessions struct {
		Id        string       `db:"id"`
		Data      []byte       `db:"data"`
		ExpiresAt sql.NullTime `db:"expires_at"`
		UpdatedAt time.Time    `db:"updated_at"`
	}
)

// NewSessionsModel returns a model for the stratiq_sessions table.
func NewSessionsModel(conn sqlx.SqlConn) SessionsModel {
	return &defaultSessionsModel{
		conn:  conn,
		table: `"public"."stratiq_sessions"`,
	}
}

func (m *defaultSessionsModel) FindLive(ctx context.Context, id string, now time.Time) (*Sessions, error) {
	query := fmt.Sprintf("select %s from %s where id = $1 and (expires_at is null or expires_at > $2) limit 1", sessionsRows, m.table)
	var resp Sessions
	err := m.conn.QueryRowCtx(ctx, &resp, query, id, now)
	switch {
	case err == nil:
		return &resp, nil
	case errors.Is(err, sqlx.ErrNotFound):
		return nil, ErrNotFound
	default:
		return nil, err
	}
}

func (m *defaultSessionsModel) Upsert(ctx context.Context, data *Sessions) error {
	query := fmt.Sprintf(`insert into %s (%s) values ($1, $2, $3, $4)
on conflict (id) do update set data = excluded.data, expires_at = excluded.expires_at, updated_at = excluded.updated_at`,
		m.table, sessionsRows)
	var expires any
	if data.ExpiresAt.Valid {
		expires = data.ExpiresAt.Time
	}
	_, err := m.conn.ExecCtx(ctx, query, data.Id, data.Data, expires, data.UpdatedAt)
	return err
}

func (m *defaultSessionsModel) Delete(ctx context.Context, id string) (int64, error) {
	query := fmt.Sprintf("delete from %s where id = $1", m.table)
	res, err := m.conn.ExecCtx(ctx, query, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (m *defaultSessionsModel) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	query := fmt.Sprintf("delete from %s where expires_at is not null and expires_at <= $1", m.table)
	res, err := m.conn.ExecCtx(ctx, query, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
