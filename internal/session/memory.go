package session

import (
	"sync"
	"time"
)

const janitorInterval = time.Minute

type entry struct {
	session   ImportSession
	expiresAt time.Time
}

// Memory is an in-process Store. Expired entries are dropped lazily on Get
// and swept by a background goroutine so abandoned uploads do not accumulate.
type Memory struct {
	mu      sync.Mutex
	entries map[string]entry

	// onEvict, when set, is called for every session removed by expiry
	// rather than by the owner. Used to delete staged files.
	onEvict func(ImportSession)
}

// NewMemory creates a Memory store and starts its sweep goroutine. onEvict
// may be nil.
func NewMemory(onEvict func(ImportSession)) *Memory {
	m := &Memory{
		entries: make(map[string]entry),
		onEvict: onEvict,
	}
	go m.sweep()
	return m
}

// sweep removes expired sessions every minute.
func (m *Memory) sweep() {
	for {
		time.Sleep(janitorInterval)

		var evicted []ImportSession
		m.mu.Lock()
		now := time.Now()
		for key, e := range m.entries {
			if now.After(e.expiresAt) {
				delete(m.entries, key)
				evicted = append(evicted, e.session)
			}
		}
		m.mu.Unlock()

		if m.onEvict != nil {
			for _, s := range evicted {
				m.onEvict(s)
			}
		}
	}
}

func (m *Memory) Put(key string, s ImportSession, ttl time.Duration) {
	m.mu.Lock()
	m.entries[key] = entry{
		session:   s,
		expiresAt: time.Now().Add(ttl),
	}
	m.mu.Unlock()
}

func (m *Memory) Get(key string) (ImportSession, bool) {
	m.mu.Lock()
	e, ok := m.entries[key]
	if ok && time.Now().After(e.expiresAt) {
		delete(m.entries, key)
		m.mu.Unlock()
		if m.onEvict != nil {
			m.onEvict(e.session)
		}
		return ImportSession{}, false
	}
	m.mu.Unlock()

	if !ok {
		return ImportSession{}, false
	}
	return e.session, true
}

func (m *Memory) Delete(key string) (ImportSession, bool) {
	m.mu.Lock()
	e, ok := m.entries[key]
	if ok {
		delete(m.entries, key)
	}
	m.mu.Unlock()

	if !ok {
		return ImportSession{}, false
	}
	if time.Now().After(e.expiresAt) {
		if m.onEvict != nil {
			m.onEvict(e.session)
		}
		return ImportSession{}, false
	}
	return e.session, true
}
