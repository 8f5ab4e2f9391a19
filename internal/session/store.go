// Package session keeps wizard sessions between requests.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/zeromicro/go-zero/core/stores/redis"
	"github.com/zeromicro/go-zero/core/stores/sqlx"

	"stratiq-api/internal/cache"
	"stratiq-api/internal/config"
	"stratiq-api/internal/model"
	"stratiq-api/pkg/wizard"
)

// ErrNotFound is returned for unknown or expired sessions.
var ErrNotFound = errors.New("session not found")

// Store persists sessions by id. Get returns a copy; callers Save it back
// after mutating.
type Store interface {
	Get(ctx context.Context, id string) (*wizard.Session, error)
	Save(ctx context.Context, s *wizard.Session) error
	Delete(ctx context.Context, id string) error
}

// New builds the store selected by cfg.Session.
func New(cfg *config.Config) (Store, error) {
	ttl := cache.SessionTTL(cfg.Session.TTL)
	switch cfg.Session.Store {
	case "", config.StoreMemory:
		return NewMemoryStore(ttl), nil
	case config.StoreRedis:
		rds, err := redis.NewRedis(cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("session: connect redis: %w", err)
		}
		return NewRedisStore(rds, ttl), nil
	case config.StorePostgres:
		conn := sqlx.NewSqlConn("pgx", cfg.Postgres.DSN)
		return NewPostgresStore(model.NewSessionsModel(conn), ttl), nil
	default:
		return nil, fmt.Errorf("session: unknown store %q", cfg.Session.Store)
	}
}

func encode(s *wizard.Session) ([]byte, error) {
	if s == nil || strings.TrimSpace(s.ID) == "" {
		return nil, errors.New("session: id is required")
	}
	data, err := msgpack.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("session: encode %s: %w", s.ID, err)
	}
	return data, nil
}

func decode(id string, data []byte) (*wizard.Session, error) {
	var s wizard.Session
	if err := msgpack.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("session: decode %s: %w", id, err)
	}
	return &s, nil
}
