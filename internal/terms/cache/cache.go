// Package cache holds the response caches the terms service reads through.
// Entries never expire and are never invalidated: documents are immutable
// once seeded and no write path exists. Adding one would require explicit
// invalidation here.
package cache

import (
	"context"
	"sync"

	"github.com/termspage/termspage/internal/terms"
)

// Memory is a process-local cache keyed by normalized language. It is built
// once at startup and injected; there is no package-level instance.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]*terms.Response
}

func NewMemory() *Memory {
	return &Memory{entries: make(map[string]*terms.Response)}
}

func (m *Memory) Get(_ context.Context, lang string) (*terms.Response, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.entries[lang]
	return r, ok
}

// Set stores r. Racing writers for the same language store equal values, so
// last-writer-wins is fine.
func (m *Memory) Set(_ context.Context, lang string, r *terms.Response) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[lang] = r
}

// Len reports the number of cached languages.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// Noop never holds anything. Used by the one-shot handler where nothing
// outlives the invocation.
type Noop struct{}

func (Noop) Get(context.Context, string) (*terms.Response, bool) { return nil, false }
func (Noop) Set(context.Context, string, *terms.Response)        {}
