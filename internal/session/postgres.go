package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx driver
	"github.com/zeromicro/go-zero/core/logx"

	"stratiq-api/internal/model"
	"stratiq-api/pkg/wizard"
)

// sweepInterval bounds how often Save purges expired rows.
const sweepInterval = time.Minute

// PostgresStore keeps msgpack-encoded sessions in the stratiq_sessions
// table. Expired rows are invisible to Get and purged lazily on Save.
type PostgresStore struct {
	model model.SessionsModel
	ttl   time.Duration
	now   func() time.Time

	mu        sync.Mutex
	lastSweep time.Time
}

func NewPostgresStore(m model.SessionsModel, ttl time.Duration) *PostgresStore {
	return &PostgresStore{model: m, ttl: ttl, now: time.Now}
}

func (p *PostgresStore) Get(ctx context.Context, id string) (*wizard.Session, error) {
	row, err := p.model.FindLive(ctx, id, p.now())
	if errors.Is(err, model.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("session: get %s: %w", id, err)
	}
	return decode(id, row.Data)
}

func (p *PostgresStore) Save(ctx context.Context, s *wizard.Session) error {
	data, err := encode(s)
	if err != nil {
		return err
	}
	now := p.now()
	row := &model.Sessions{Id: s.ID, Data: data, UpdatedAt: now}
	if p.ttl > 0 {
		row.ExpiresAt = sql.NullTime{Time: now.Add(p.ttl), Valid: true}
	}
	if err := p.model.Upsert(ctx, row); err != nil {
		return fmt.Errorf("session: save %s: %w", s.ID, err)
	}
	p.maybeSweep(ctx, now)
	return nil
}

func (p *PostgresStore) Delete(ctx context.Context, id string) error {
	n, err := p.model.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("session: delete %s: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *PostgresStore) maybeSweep(ctx context.Context, now time.Time) {
	if p.ttl <= 0 {
		return
	}
	p.mu.Lock()
	due := now.Sub(p.lastSweep) >= sweepInterval
	if due {
		p.lastSweep = now
	}
	p.mu.Unlock()
	if !due {
		return
	}

	n, err := p.model.DeleteExpired(ctx, now)
	if err != nil {
		logx.WithContext(ctx).Errorw("session: sweep expired rows failed", logx.Field("error", err.Error()))
		return
	}
	if n > 0 {
		logx.WithContext(ctx).Infow("session: swept expired rows", logx.Field("count", n))
	}
}
