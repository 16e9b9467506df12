package index

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MrSnakeDoc/connector/internal/domain"
)

// Table is an in-memory, concurrency-safe set of entities keyed by id.
// Callers always receive copies; stored values are only replaced through
// Put, Update and Replace.
type Table[E any] struct {
	mu    sync.RWMutex
	items map[uuid.UUID]*E
	clone func(*E) *E
}

func newTable[E any](clone func(*E) *E) *Table[E] {
	return &Table[E]{
		items: make(map[uuid.UUID]*E),
		clone: clone,
	}
}

// Put adds or replaces the entity stored under id.
func (t *Table[E]) Put(id uuid.UUID, e *E) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.items[id] = t.clone(e)
}

// Get returns a copy of the entity stored under id.
func (t *Table[E]) Get(id uuid.UUID) (*E, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	e, ok := t.items[id]
	if !ok {
		return nil, false
	}
	return t.clone(e), true
}

// All returns copies of all entities ordered by id.
func (t *Table[E]) All() []*E {
	t.mu.RLock()
	defer t.mu.RUnlock()

	ids := make([]uuid.UUID, 0, len(t.items))
	for id := range t.items {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })

	out := make([]*E, 0, len(ids))
	for _, id := range ids {
		out = append(out, t.clone(t.items[id]))
	}
	return out
}

// Delete removes id and reports whether it was present.
func (t *Table[E]) Delete(id uuid.UUID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	_, ok := t.items[id]
	delete(t.items, id)
	return ok
}

// Update applies fn to a copy of the entity stored under id while holding the
// write lock. The copy is stored when fn reports a change. It returns the
// resulting entity, whether it changed, and domain.ErrNotFound for unknown ids.
func (t *Table[E]) Update(id uuid.UUID, fn func(*E) (bool, error)) (*E, bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	current, ok := t.items[id]
	if !ok {
		return nil, false, domain.ErrNotFound
	}

	next := t.clone(current)
	changed, err := fn(next)
	if err != nil {
		return nil, false, err
	}
	if changed {
		t.items[id] = next
	}
	return t.clone(next), changed, nil
}

// Replace swaps the whole content of the table.
func (t *Table[E]) Replace(items map[uuid.UUID]*E) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.items = make(map[uuid.UUID]*E, len(items))
	for id, e := range items {
		t.items[id] = t.clone(e)
	}
}

// Len returns the number of stored entities.
func (t *Table[E]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return len(t.items)
}

// MemoryIndex provides in-memory storage and lookup for catalog entities.
// It is the primary store; Redis only persists it across restarts.
type MemoryIndex struct {
	Brokers   *Table[domain.Broker]
	Endpoints *Table[domain.AppEndpoint]
	Rules     *Table[domain.ContractRule]

	mu         sync.RWMutex
	lastReload time.Time // Timestamp of last bootstrap reload
}

// NewMemoryIndex creates a new memory index
func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{
		Brokers:   newTable(cloneBroker),
		Endpoints: newTable(cloneEndpoint),
		Rules:     newTable(cloneRule),
	}
}

// MarkReloaded records the time of the last bootstrap reload.
func (idx *MemoryIndex) MarkReloaded(at time.Time) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.lastReload = at
}

// GetLastReload returns the time of the last bootstrap reload.
func (idx *MemoryIndex) GetLastReload() time.Time {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.lastReload
}

// Count returns the number of entities of every kind.
func (idx *MemoryIndex) Count() int {
	return idx.Brokers.Len() + idx.Endpoints.Len() + idx.Rules.Len()
}

// URLs are never mutated in place by the factories, so copies may share them.

func cloneBroker(b *domain.Broker) *domain.Broker {
	c := *b
	if b.OfferedResources != nil {
		c.OfferedResources = append([]uuid.UUID{}, b.OfferedResources...)
	}
	return &c
}

func cloneEndpoint(e *domain.AppEndpoint) *domain.AppEndpoint {
	c := *e
	return &c
}

func cloneRule(r *domain.ContractRule) *domain.ContractRule {
	c := *r
	return &c
}
