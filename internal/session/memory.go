package session

import (
	"context"
	"sync"
	"time"

	"stratiq-api/pkg/wizard"
)

type memoryItem struct {
	data    []byte
	expires time.Time
}

// MemoryStore keeps encoded sessions in process. A zero TTL never expires.
type MemoryStore struct {
	mu    sync.Mutex
	ttl   time.Duration
	now   func() time.Time
	items map[string]memoryItem
}

// MemoryOption customises a MemoryStore.
type MemoryOption func(*MemoryStore)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) MemoryOption {
	return func(m *MemoryStore) {
		if now != nil {
			m.now = now
		}
	}
}

func NewMemoryStore(ttl time.Duration, opts ...MemoryOption) *MemoryStore {
	m := &MemoryStore{ttl: ttl, now: time.Now, items: make(map[string]memoryItem)}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *MemoryStore) Get(_ context.Context, id string) (*wizard.Session, error) {
	m.mu.Lock()
	item, ok := m.items[id]
	if ok && m.expired(item) {
		delete(m.items, id)
		ok = false
	}
	m.mu.Unlock()
	if !ok {
		return nil, ErrNotFound
	}
	return decode(id, item.data)
}

func (m *MemoryStore) Save(_ context.Context, s *wizard.Session) error {
	data, err := encode(s)
	if err != nil {
		return err
	}
	item := memoryItem{data: data}
	if m.ttl > 0 {
		item.expires = m.now().Add(m.ttl)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sweep()
	m.items[s.ID] = item
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.items[id]
	if !ok || m.expired(item) {
		delete(m.items, id)
		return ErrNotFound
	}
	delete(m.items, id)
	return nil
}

// Len reports how many live sessions are held.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sweep()
	return len(m.items)
}

// sweep drops expired items. Callers hold mu.
func (m *MemoryStore) sweep() {
	for id, item := range m.items {
		if m.expired(item) {
			delete(m.items, id)
		}
	}
}

func (m *MemoryStore) expired(item memoryItem) bool {
	return !item.expires.IsZero() && !m.now().Before(item.expires)
}
