package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/termspage/termspage/internal/terms"
)

// MemoryRepo is an in-memory repository used by unit tests and memory://
// deployments. Contents are lost on restart.
type MemoryRepo struct {
	mu    sync.RWMutex
	store map[string]*terms.Document
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{store: make(map[string]*terms.Document)}
}

func key(lang, slug string) string { return lang + "/" + slug }

func (m *MemoryRepo) Get(_ context.Context, lang, slug string) (*terms.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if d, ok := m.store[key(lang, slug)]; ok {
		cp := *d
		return &cp, nil
	}
	return nil, ErrNotFound
}

func (m *MemoryRepo) Count(_ context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.store)), nil
}

func (m *MemoryRepo) InsertIgnore(_ context.Context, docs []terms.Document) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	inserted := 0
	for i := range docs {
		k := key(docs[i].Lang, docs[i].Slug)
		if _, exists := m.store[k]; exists {
			continue
		}
		d := docs[i]
		m.store[k] = &d
		inserted++
	}
	return inserted, nil
}

func (m *MemoryRepo) List(_ context.Context) ([]*terms.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*terms.Document, 0, len(m.store))
	for _, d := range m.store {
		cp := *d
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Lang != out[j].Lang {
			return out[i].Lang < out[j].Lang
		}
		return out[i].Slug < out[j].Slug
	})
	return out, nil
}

func (m *MemoryRepo) DeleteAll(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := int64(len(m.store))
	m.store = make(map[string]*terms.Document)
	return n, nil
}

func (m *MemoryRepo) Ping(_ context.Context) error  { return nil }
func (m *MemoryRepo) Close(_ context.Context) error { return nil }
