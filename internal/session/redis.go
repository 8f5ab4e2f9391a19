package session

import (
	"context"
	"fmt"
	"time"

	"github.com/zeromicro/go-zero/core/stores/redis"

	"stratiq-api/internal/cache"
	"stratiq-api/pkg/wizard"
)

// RedisStore keeps msgpack-encoded sessions under cache.SessionKey. Every
// Save refreshes the expiry.
type RedisStore struct {
	rds *redis.Redis
	ttl time.Duration
}

func NewRedisStore(rds *redis.Redis, ttl time.Duration) *RedisStore {
	return &RedisStore{rds: rds, ttl: ttl}
}

func (r *RedisStore) Get(ctx context.Context, id string) (*wizard.Session, error) {
	val, err := r.rds.GetCtx(ctx, cache.SessionKey(id))
	if err != nil {
		return nil, fmt.Errorf("session: get %s: %w", id, err)
	}
	if val == "" {
		return nil, ErrNotFound
	}
	return decode(id, []byte(val))
}

func (r *RedisStore) Save(ctx context.Context, s *wizard.Session) error {
	data, err := encode(s)
	if err != nil {
		return err
	}
	key := cache.SessionKey(s.ID)
	if secs := cache.TTLSeconds(r.ttl); secs > 0 {
		err = r.rds.SetexCtx(ctx, key, string(data), secs)
	} else {
		err = r.rds.SetCtx(ctx, key, string(data))
	}
	if err != nil {
		return fmt.Errorf("session: save %s: %w", s.ID, err)
	}
	return nil
}

func (r *RedisStore) Delete(ctx context.Context, id string) error {
	n, err := r.rds.DelCtx(ctx, cache.SessionKey(id))
	if err != nil {
		return fmt.Errorf("session: delete %s: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
