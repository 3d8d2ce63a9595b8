package store

import (
	"context"
	"net/http"
	"sync"
	"time"
)

// Memory is an in-process Store. It stands in for browser localStorage in
// tests and server-side rendering paths.
type Memory struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *Memory) Del(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// Len reports the number of live keys. Test helper.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

type jarEntry struct {
	value   string
	path    string
	expires time.Time
}

// MemoryJar is an in-process CookieJar with browser clearing semantics:
// cookies are keyed by name and path, and an expired re-set only removes
// the entry whose path matches.
type MemoryJar struct {
	mu      sync.RWMutex
	cookies map[string][]jarEntry // name -> entries per path
	now     func() time.Time
}

func NewMemoryJar() *MemoryJar {
	return &MemoryJar{cookies: make(map[string][]jarEntry), now: time.Now}
}

func (j *MemoryJar) Get(name string) (string, bool) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	for _, e := range j.cookies[name] {
		if e.expires.IsZero() || e.expires.After(j.now()) {
			return e.value, true
		}
	}
	return "", false
}

func (j *MemoryJar) Set(cookie *http.Cookie) {
	j.mu.Lock()
	defer j.mu.Unlock()

	path := cookie.Path
	if path == "" {
		path = "/"
	}
	entry := jarEntry{value: cookie.Value, path: path, expires: cookie.Expires}

	entries := j.cookies[cookie.Name]
	for i, e := range entries {
		if e.path == path {
			if expired(entry, j.now()) {
				j.cookies[cookie.Name] = append(entries[:i], entries[i+1:]...)
			} else {
				entries[i] = entry
			}
			return
		}
	}
	if !expired(entry, j.now()) {
		j.cookies[cookie.Name] = append(entries, entry)
	}
}

func (j *MemoryJar) Clear(name, path string) {
	j.Set(&http.Cookie{
		Name:    name,
		Value:   "",
		Path:    path,
		Expires: time.Unix(0, 0).UTC(),
	})
}

// Len reports the number of live cookies across all names. Test helper.
func (j *MemoryJar) Len() int {
	j.mu.RLock()
	defer j.mu.RUnlock()
	n := 0
	for _, entries := range j.cookies {
		for _, e := range entries {
			if e.expires.IsZero() || e.expires.After(j.now()) {
				n++
			}
		}
	}
	return n
}

func expired(e jarEntry, now time.Time) bool {
	return !e.expires.IsZero() && !e.expires.After(now)
}
