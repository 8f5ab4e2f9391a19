package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stratiq-api/internal/model"
)

// fakeSessionsModel mirrors the table semantics in memory.
type fakeSessionsModel struct {
	mu     sync.Mutex
	rows   map[string]model.Sessions
	sweeps int
	err    error
}

func newFakeSessionsModel() *fakeSessionsModel {
	return &fakeSessionsModel{rows: make(map[string]model.Sessions)}
}

func (f *fakeSessionsModel) FindLive(_ context.Context, id string, now time.Time) (*model.Sessions, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	row, ok := f.rows[id]
	if !ok || (row.ExpiresAt.Valid && !row.ExpiresAt.Time.After(now)) {
		return nil, model.ErrNotFound
	}
	row.Data = append([]byte(nil), row.Data...)
	return &row, nil
}

func (f *fakeSessionsModel) Upsert(_ context.Context, data *model.Sessions) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.rows[data.Id] = *data
	return nil
}

func (f *fakeSessionsModel) Delete(_ context.Context, id string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[id]; !ok {
		return 0, nil
	}
	delete(f.rows, id)
	return 1, nil
}

func (f *fakeSessionsModel) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sweeps++
	var n int64
	for id, row := range f.rows {
		if row.ExpiresAt.Valid && !row.ExpiresAt.Time.After(now) {
			delete(f.rows, id)
			n++
		}
	}
	return n, nil
}

func TestPostgresStore(t *testing.T) {
	storeContract(t, NewPostgresStore(newFakeSessionsModel(), time.Hour))
}

func TestPostgresStoreExpiryAndSweep(t *testing.T) {
	ctx := context.Background()
	clock := created
	fake := newFakeSessionsModel()
	store := NewPostgresStore(fake, time.Hour)
	store.now = func() time.Time { return clock }

	old := sampleSession()
	require.NoError(t, store.Save(ctx, old))
	assert.Equal(t, 1, fake.sweeps)
	row := fake.rows[old.ID]
	assert.True(t, row.ExpiresAt.Valid)
	assert.True(t, created.Add(time.Hour).Equal(row.ExpiresAt.Time))

	clock = created.Add(30 * time.Second)
	require.NoError(t, store.Save(ctx, sampleSession()))
	assert.Equal(t, 1, fake.sweeps, "sweeps are throttled")

	clock = created.Add(2 * time.Hour)
	_, err := store.Get(ctx, old.ID)
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Save(ctx, sampleSession()))
	assert.Equal(t, 2, fake.sweeps)
	_, stillThere := fake.rows[old.ID]
	assert.False(t, stillThere)
}

func TestPostgresStoreWithoutTTL(t *testing.T) {
	fake := newFakeSessionsModel()
	store := NewPostgresStore(fake, 0)
	s := sampleSession()

	require.NoError(t, store.Save(context.Background(), s))
	assert.False(t, fake.rows[s.ID].ExpiresAt.Valid)
	assert.Zero(t, fake.sweeps)
}

func TestPostgresStoreErrors(t *testing.T) {
	fake := newFakeSessionsModel()
	fake.err = errors.New("connection refused")
	store := NewPostgresStore(fake, time.Hour)

	_, err := store.Get(context.Background(), "abc")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)

	err = store.Save(context.Background(), sampleSession())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}
