package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeromicro/go-zero/core/stores/redis"

	"stratiq-api/internal/cache"
	"stratiq-api/internal/config"
	"stratiq-api/pkg/analysis"
	"stratiq-api/pkg/strategy"
	"stratiq-api/pkg/wizard"
)

var created = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

func sampleSession() *wizard.Session {
	s := wizard.NewSession(created)
	s.Step = wizard.StepReview
	s.State.Inputs = analysis.Inputs{Company: "ACME Robotics", Product: "IoT Sensors", Geo: "EU"}
	s.State.Frameworks = analysis.Frameworks
	bench := strategy.FallbackBenchmark("ACME Robotics", nil)
	s.State.Results = analysis.Results{
		Industries: strategy.FallbackIndustries("Manufacturing"),
		SWOT:       strategy.FallbackSWOT(),
		Ansoff:     strategy.FallbackAnsoff(),
		Benchmark:  &bench,
	}
	s.State.Recs = strategy.FallbackRecommendations()
	return s
}

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Redis) {
	t.Helper()
	mr := miniredis.RunT(t)
	return mr, redis.MustNewRedis(redis.RedisConf{Host: mr.Addr(), Type: redis.NodeType})
}

func storeContract(t *testing.T, store Store) {
	ctx := context.Background()
	want := sampleSession()

	_, err := store.Get(ctx, want.ID)
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Save(ctx, want))
	got, err := store.Get(ctx, want.ID)
	require.NoError(t, err)
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, wizard.StepReview, got.Step)
	assert.True(t, want.CreatedAt.Equal(got.CreatedAt))
	assert.Equal(t, want.State, got.State)

	got.State.Company = "Changed"
	again, err := store.Get(ctx, want.ID)
	require.NoError(t, err)
	assert.Equal(t, "ACME Robotics", again.State.Company, "stored copy must not alias")

	require.NoError(t, store.Delete(ctx, want.ID))
	_, err = store.Get(ctx, want.ID)
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, store.Delete(ctx, want.ID), ErrNotFound)

	require.Error(t, store.Save(ctx, &wizard.Session{}))
	require.Error(t, store.Save(ctx, nil))
}

func TestMemoryStore(t *testing.T) {
	storeContract(t, NewMemoryStore(time.Hour))
}

func TestRedisStore(t *testing.T) {
	_, rds := newTestRedis(t)
	storeContract(t, NewRedisStore(rds, time.Hour))
}

func TestMemoryStoreExpiry(t *testing.T) {
	now := created
	store := NewMemoryStore(time.Minute, WithClock(func() time.Time { return now }))
	ctx := context.Background()

	s := sampleSession()
	require.NoError(t, store.Save(ctx, s))
	assert.Equal(t, 1, store.Len())

	now = now.Add(59 * time.Second)
	_, err := store.Get(ctx, s.ID)
	require.NoError(t, err)

	now = now.Add(time.Second)
	_, err = store.Get(ctx, s.ID)
	require.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 0, store.Len())
}

func TestMemoryStoreSaveRefreshesExpiry(t *testing.T) {
	now := created
	store := NewMemoryStore(time.Minute, WithClock(func() time.Time { return now }))
	ctx := context.Background()
	s := sampleSession()

	require.NoError(t, store.Save(ctx, s))
	now = now.Add(50 * time.Second)
	require.NoError(t, store.Save(ctx, s))
	now = now.Add(50 * time.Second)
	_, err := store.Get(ctx, s.ID)
	require.NoError(t, err)
}

func TestMemoryStoreWithoutTTL(t *testing.T) {
	now := created
	store := NewMemoryStore(0, WithClock(func() time.Time { return now }))
	s := sampleSession()
	require.NoError(t, store.Save(context.Background(), s))

	now = now.Add(365 * 24 * time.Hour)
	_, err := store.Get(context.Background(), s.ID)
	require.NoError(t, err)
}

func TestMemoryStoreConcurrentSaves(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s := wizard.NewSession(created)
			assert.NoError(t, store.Save(ctx, s))
			_, err := store.Get(ctx, s.ID)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Equal(t, 16, store.Len())
}

func TestRedisStoreExpiry(t *testing.T) {
	mr, rds := newTestRedis(t)
	store := NewRedisStore(rds, 90*time.Second)
	ctx := context.Background()
	s := sampleSession()

	require.NoError(t, store.Save(ctx, s))
	key := cache.SessionKey(s.ID)
	assert.True(t, mr.Exists(key))
	assert.Equal(t, 90*time.Second, mr.TTL(key))

	mr.FastForward(91 * time.Second)
	_, err := store.Get(ctx, s.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStoreWithoutTTL(t *testing.T) {
	mr, rds := newTestRedis(t)
	store := NewRedisStore(rds, 0)
	s := sampleSession()

	require.NoError(t, store.Save(context.Background(), s))
	assert.Equal(t, time.Duration(0), mr.TTL(cache.SessionKey(s.ID)))
}

func TestRedisStoreCorruptValue(t *testing.T) {
	mr, rds := newTestRedis(t)
	store := NewRedisStore(rds, time.Hour)
	require.NoError(t, mr.Set(cache.SessionKey("bad"), "not msgpack"))

	_, err := store.Get(context.Background(), "bad")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestNew(t *testing.T) {
	store, err := New(&config.Config{Session: config.SessionConf{Store: config.StoreMemory}})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, store)

	mr := miniredis.RunT(t)
	cfg := &config.Config{
		Session: config.SessionConf{Store: config.StoreRedis, TTL: 60},
		Redis:   redis.RedisConf{Host: mr.Addr(), Type: redis.NodeType},
	}
	store, err = New(cfg)
	require.NoError(t, err)
	assert.IsType(t, &RedisStore{}, store)

	store, err = New(&config.Config{
		Session:  config.SessionConf{Store: config.StorePostgres},
		Postgres: config.PostgresConf{DSN: "postgres://stratiq@localhost:5432/stratiq?sslmode=disable"},
	})
	require.NoError(t, err)
	assert.IsType(t, &PostgresStore{}, store)

	_, err = New(&config.Config{Session: config.SessionConf{Store: "etcd"}})
	require.Error(t, err)
}
