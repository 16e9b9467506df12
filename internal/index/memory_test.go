package index

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/connector/internal/domain"
)

func newBroker(title string) *domain.Broker {
	return &domain.Broker{
		Entity:           domain.Entity{ID: uuid.New()},
		Title:            title,
		OfferedResources: []uuid.UUID{},
	}
}

func TestTable_PutGetReturnsCopies(t *testing.T) {
	idx := NewMemoryIndex()
	b := newBroker("main")
	idx.Brokers.Put(b.ID, b)

	b.Title = "mutated after put"

	got, ok := idx.Brokers.Get(b.ID)
	require.True(t, ok)
	assert.Equal(t, "main", got.Title)

	got.Title = "mutated after get"
	again, _ := idx.Brokers.Get(b.ID)
	assert.Equal(t, "main", again.Title)
}

func TestTable_OfferedResourcesAreCopied(t *testing.T) {
	idx := NewMemoryIndex()
	b := newBroker("main")
	idx.Brokers.Put(b.ID, b)

	got, _ := idx.Brokers.Get(b.ID)
	got.OfferedResources = append(got.OfferedResources, uuid.New())

	again, _ := idx.Brokers.Get(b.ID)
	assert.Empty(t, again.OfferedResources)
}

func TestTable_Update(t *testing.T) {
	idx := NewMemoryIndex()
	b := newBroker("main")
	idx.Brokers.Put(b.ID, b)

	updated, changed, err := idx.Brokers.Update(b.ID, func(x *domain.Broker) (bool, error) {
		x.Title = "renamed"
		return true, nil
	})
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "renamed", updated.Title)

	// an unchanged update must not store the scratch copy
	_, changed, err = idx.Brokers.Update(b.ID, func(x *domain.Broker) (bool, error) {
		x.Title = "scratch"
		return false, nil
	})
	require.NoError(t, err)
	assert.False(t, changed)
	got, _ := idx.Brokers.Get(b.ID)
	assert.Equal(t, "renamed", got.Title)

	boom := errors.New("boom")
	_, _, err = idx.Brokers.Update(b.ID, func(x *domain.Broker) (bool, error) {
		x.Title = "half-done"
		return true, boom
	})
	assert.ErrorIs(t, err, boom)
	got, _ = idx.Brokers.Get(b.ID)
	assert.Equal(t, "renamed", got.Title)
}

func TestTable_UpdateUnknown(t *testing.T) {
	idx := NewMemoryIndex()
	_, _, err := idx.Rules.Update(uuid.New(), func(*domain.ContractRule) (bool, error) { return true, nil })
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTable_AllDeleteReplace(t *testing.T) {
	idx := NewMemoryIndex()
	a, b := newBroker("a"), newBroker("b")
	idx.Brokers.Put(a.ID, a)
	idx.Brokers.Put(b.ID, b)

	assert.Len(t, idx.Brokers.All(), 2)
	assert.Equal(t, 2, idx.Count())

	assert.True(t, idx.Brokers.Delete(a.ID))
	assert.False(t, idx.Brokers.Delete(a.ID))
	assert.Equal(t, 1, idx.Brokers.Len())

	idx.Brokers.Replace(map[uuid.UUID]*domain.Broker{a.ID: a})
	all := idx.Brokers.All()
	require.Len(t, all, 1)
	assert.Equal(t, a.ID, all[0].ID)
}

func TestMemoryIndex_LastReload(t *testing.T) {
	idx := NewMemoryIndex()
	assert.True(t, idx.GetLastReload().IsZero())

	now := time.Now()
	idx.MarkReloaded(now)
	assert.Equal(t, now, idx.GetLastReload())
}

func TestTable_ConcurrentUpdates(t *testing.T) {
	idx := NewMemoryIndex()
	e := &domain.AppEndpoint{Entity: domain.Entity{ID: uuid.New()}}
	idx.Endpoints.Put(e.ID, e)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, _ = idx.Endpoints.Update(e.ID, func(x *domain.AppEndpoint) (bool, error) {
				x.Port++
				return true, nil
			})
			_ = idx.Endpoints.All()
		}()
	}
	wg.Wait()

	got, ok := idx.Endpoints.Get(e.ID)
	require.True(t, ok)
	assert.Equal(t, 50, got.Port)
}
