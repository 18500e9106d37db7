package cache

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	storedAt time.Time
	value    string
}

// Memory is an in-process cache guarded by a mutex
type Memory struct {
	mu      sync.Mutex
	entries map[Key]entry
	expiry  time.Duration
	now     func() time.Time
}

// NewMemory creates an in-process cache with the given expiry
func NewMemory(expiry time.Duration) *Memory {
	return NewMemoryWithClock(expiry, time.Now)
}

// NewMemoryWithClock creates an in-process cache reading time from now
func NewMemoryWithClock(expiry time.Duration, now func() time.Time) *Memory {
	return &Memory{
		entries: make(map[Key]entry),
		expiry:  expiry,
		now:     now,
	}
}

func (m *Memory) expired(e entry, now time.Time) bool {
	return now.Sub(e.storedAt) >= m.expiry
}

func (m *Memory) Get(_ context.Context, key Key) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		return "", false
	}
	if m.expired(e, m.now()) {
		delete(m.entries, key)
		return "", false
	}
	return e.value, true
}

func (m *Memory) Set(_ context.Context, key Key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = entry{storedAt: m.now(), value: value}
}

func (m *Memory) Prune(_ context.Context) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	removed := 0
	for k, e := range m.entries {
		if m.expired(e, now) {
			delete(m.entries, k)
			removed++
		}
	}
	return removed
}

func (m *Memory) Clear(_ context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[Key]entry)
}

// Len returns the number of stored entries, expired or not
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
