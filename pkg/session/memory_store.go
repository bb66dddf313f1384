package session

import (
	"context"
	"sync"
	"time"
)

type memoryRecord struct {
	attrs     *Attributes
	expiresAt time.Time
}

func (r memoryRecord) expired(now time.Time) bool {
	return !r.expiresAt.IsZero() && now.After(r.expiresAt)
}

// MemoryStore implements Store using in-process memory.
// Records are cloned on the way in and out.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]memoryRecord
	ttl     time.Duration
	ticker  *time.Ticker
	done    chan struct{}
	once    sync.Once
}

// NewMemoryStore creates an in-memory store. A positive ttl expires records
// after their last Save; a positive cleanupInterval starts a sweeper.
func NewMemoryStore(ttl, cleanupInterval time.Duration) *MemoryStore {
	store := &MemoryStore{
		records: make(map[string]memoryRecord),
		ttl:     ttl,
		done:    make(chan struct{}),
	}

	if cleanupInterval > 0 {
		store.ticker = time.NewTicker(cleanupInterval)
		go store.cleanupLoop()
	}

	return store
}

// Retrieve returns a copy of the attributes stored under id
func (m *MemoryStore) Retrieve(ctx context.Context, id string) (*Attributes, error) {
	m.mu.RLock()
	rec, exists := m.records[id]
	m.mu.RUnlock()

	if !exists {
		return nil, ErrNotFound
	}

	if rec.expired(time.Now()) {
		m.mu.Lock()
		delete(m.records, id)
		m.mu.Unlock()
		return nil, ErrNotFound
	}

	return rec.attrs.Clone(), nil
}

// Save stores a copy of attrs under id
func (m *MemoryStore) Save(ctx context.Context, id string, attrs *Attributes) error {
	rec := memoryRecord{attrs: attrs.Clone()}
	if m.ttl > 0 {
		rec.expiresAt = time.Now().Add(m.ttl)
	}

	m.mu.Lock()
	m.records[id] = rec
	m.mu.Unlock()
	return nil
}

// Delete removes the record for id
func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.records, id)
	return nil
}

// DeleteExpired removes all expired records
func (m *MemoryStore) DeleteExpired(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	for id, rec := range m.records {
		if rec.expired(now) {
			delete(m.records, id)
		}
	}

	return nil
}

// Len returns the number of records, expired ones included
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records)
}

// Close stops the cleanup goroutine
func (m *MemoryStore) Close() error {
	m.once.Do(func() {
		if m.ticker != nil {
			m.ticker.Stop()
		}
		close(m.done)
	})
	return nil
}

func (m *MemoryStore) cleanupLoop() {
	for {
		select {
		case <-m.ticker.C:
			_ = m.DeleteExpired(context.Background())
		case <-m.done:
			return
		}
	}
}
