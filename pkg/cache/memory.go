package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

type memoryEntry struct {
	payload   []byte
	expiresAt time.Time
}

// MemoryCache is a process-local Cache used by tests and local runs without Redis.
// Values go through JSON so callers observe the same copy semantics as Redis.
// Expired entries are dropped on read and by a sweep that Set runs at most once per sweepInterval.
type MemoryCache struct {
	mu        sync.RWMutex
	entries   map[string]memoryEntry
	now       func() time.Time
	nextSweep time.Time
}

const sweepInterval = time.Minute

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]memoryEntry), now: time.Now}
}

func (m *MemoryCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	m.mu.RLock()
	entry, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if m.expired(entry) {
		m.evict(key)
		return false, nil
	}
	if err := json.Unmarshal(entry.payload, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (m *MemoryCache) Set(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	entry := memoryEntry{payload: payload}
	if ttl > 0 {
		entry.expiresAt = m.now().Add(ttl)
	}
	m.mu.Lock()
	m.entries[key] = entry
	m.sweepLocked()
	m.mu.Unlock()
	return nil
}

func (m *MemoryCache) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	for _, k := range keys {
		delete(m.entries, k)
	}
	m.mu.Unlock()
	return nil
}

func (m *MemoryCache) Exists(_ context.Context, key string) (bool, error) {
	m.mu.RLock()
	entry, ok := m.entries[key]
	m.mu.RUnlock()
	return ok && !m.expired(entry), nil
}

func (m *MemoryCache) Ping(context.Context) error { return nil }

func (m *MemoryCache) expired(e memoryEntry) bool {
	return !e.expiresAt.IsZero() && !m.now().Before(e.expiresAt)
}

// evict xóa key nếu vẫn còn hết hạn, Set có thể đã ghi đè giữa RUnlock và Lock
func (m *MemoryCache) evict(key string) {
	m.mu.Lock()
	if entry, ok := m.entries[key]; ok && m.expired(entry) {
		delete(m.entries, key)
	}
	m.mu.Unlock()
}

func (m *MemoryCache) sweepLocked() {
	now := m.now()
	if now.Before(m.nextSweep) {
		return
	}
	for k, e := range m.entries {
		if m.expired(e) {
			delete(m.entries, k)
		}
	}
	m.nextSweep = now.Add(sweepInterval)
}
