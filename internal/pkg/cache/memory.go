package cache

import (
	"context"
	"sync"
	"time"
)

type MemoryBlocklist struct {
	mu      sync.RWMutex
	entries map[string]time.Time
	now     func() time.Time
}

func NewMemoryBlocklist() *MemoryBlocklist {
	return &MemoryBlocklist{
		entries: make(map[string]time.Time),
		now:     time.Now,
	}
}

func (m *MemoryBlocklist) Block(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for k, exp := range m.entries {
		if !exp.After(now) {
			delete(m.entries, k)
		}
	}
	m.entries[tokenKey(token)] = now.Add(ttl)
	return nil
}

func (m *MemoryBlocklist) IsBlocked(ctx context.Context, token string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	exp, ok := m.entries[tokenKey(token)]
	return ok && exp.After(m.now()), nil
}
