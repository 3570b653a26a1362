package cache

import (
	"context"
	"sync"
	"time"

	"taruf-api/core/constants"
)

type memoryEntry struct {
	value     string
	count     int
	expiresAt time.Time
}

// MemoryCache is a process-local Cache. It backs tests and single-instance
// runs without Redis; locks and blacklists are not shared across replicas.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]*memoryEntry
	now     func() time.Time
	newID   func() string
}

func NewMemoryCache(newID func() string) *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]*memoryEntry),
		now:     time.Now,
		newID:   newID,
	}
}

func (m *MemoryCache) get(key string) *memoryEntry {
	e, ok := m.entries[key]
	if !ok {
		return nil
	}
	if !e.expiresAt.IsZero() && !m.now().Before(e.expiresAt) {
		delete(m.entries, key)
		return nil
	}
	return e
}

func (m *MemoryCache) IsLoginBlocked(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e := m.get(constants.RedisKeyLoginAttempt + key)
	return e != nil && e.count >= constants.MaxLoginAttempts, nil
}

func (m *MemoryCache) IncrementLoginAttempt(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	fullKey := constants.RedisKeyLoginAttempt + key
	e := m.get(fullKey)
	if e == nil {
		e = &memoryEntry{}
		m.entries[fullKey] = e
	}
	e.count++
	e.expiresAt = m.now().Add(constants.BlockDuration)
	return nil
}

func (m *MemoryCache) Expire(_ context.Context, key string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e := m.get(constants.RedisKeyLoginAttempt + key); e != nil {
		e.expiresAt = m.now().Add(ttl)
	}
	return nil
}

func (m *MemoryCache) Del(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, constants.RedisKeyLoginAttempt+key)
	return nil
}

func (m *MemoryCache) AddToTokenBlacklist(_ context.Context, token string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[constants.RedisKeyTokenBlacklist+token] = &memoryEntry{value: "1", expiresAt: m.now().Add(ttl)}
	return nil
}

func (m *MemoryCache) IsTokenBlacklisted(_ context.Context, token string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.get(constants.RedisKeyTokenBlacklist+token) != nil, nil
}

func (m *MemoryCache) AcquireLock(_ context.Context, key string, ttl time.Duration) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.get(key) != nil {
		return "", ErrLockHeld
	}
	owner := m.newID()
	m.entries[key] = &memoryEntry{value: owner, expiresAt: m.now().Add(ttl)}
	return owner, nil
}

func (m *MemoryCache) ReleaseLock(_ context.Context, key string, owner string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e := m.get(key); e != nil && e.value == owner {
		delete(m.entries, key)
	}
	return nil
}

func (m *MemoryCache) Ping(context.Context) error { return nil }

func (m *MemoryCache) Close() error { return nil }
