package specimen

import (
	"context"
	"sync"
)

// MemoryStore keeps specimens in a map. It is safe for concurrent use.
type MemoryStore struct {
	mu   sync.RWMutex
	byID map[string]*Specimen
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byID: make(map[string]*Specimen)}
}

func (m *MemoryStore) Get(ctx context.Context, id string) (*Specimen, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.byID[id]
	if !ok {
		return nil, notFound(id)
	}
	cp := *s
	return &cp, nil
}

func (m *MemoryStore) GetByName(ctx context.Context, name string) (*Specimen, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, s := range m.byID {
		if s.Name == name {
			cp := *s
			return &cp, nil
		}
	}
	return nil, notFound(name)
}

func (m *MemoryStore) Save(ctx context.Context, s *Specimen) error {
	if err := s.Normalize(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.byID {
		if existing.Name == s.Name && existing.ID != s.ID {
			return nameTaken(s.Name)
		}
	}
	cp := *s
	m.byID[s.ID] = &cp
	return nil
}

func (m *MemoryStore) List(ctx context.Context) ([]*Specimen, error) {
	m.mu.RLock()
	out := make([]*Specimen, 0, len(m.byID))
	for _, s := range m.byID {
		cp := *s
		out = append(out, &cp)
	}
	m.mu.RUnlock()
	sortSpecimens(out)
	return out, nil
}

func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return notFound(id)
	}
	delete(m.byID, id)
	return nil
}

func (m *MemoryStore) Close() error { return nil }

var _ Store = (*MemoryStore)(nil)
