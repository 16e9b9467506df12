package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MrSnakeDoc/connector/internal/domain"
	"github.com/MrSnakeDoc/connector/internal/factory"
	"github.com/MrSnakeDoc/connector/internal/index"
	"github.com/MrSnakeDoc/connector/internal/logger"
)

// Collection manages one kind of entity: it runs descriptions through the
// factory, stamps identity and timestamps, keeps the result in the index and
// persists it when a store is configured.
//
// Writes are serialized per collection and persisted before the lock is
// released, so the store sees them in the order the index applied them.
type Collection[E, D any] struct {
	write sync.Mutex

	kind    string
	factory factory.Factory[E, D]
	table   *index.Table[E]
	base    func(*E) *domain.Entity

	save   func(context.Context, *E) error
	remove func(context.Context, uuid.UUID) error

	now   func() time.Time
	newID func() uuid.UUID
	log   logger.Logger
}

// Kind returns the entity kind, e.g. "broker".
func (c *Collection[E, D]) Kind() string { return c.kind }

// Create builds a new entity from desc and assigns it a fresh id.
func (c *Collection[E, D]) Create(ctx context.Context, desc *D) (*E, error) {
	return c.CreateWithID(ctx, c.newID(), desc)
}

// CreateWithID builds a new entity from desc under a caller-chosen id.
// Bootstrap entries use it to keep ids stable across restarts.
func (c *Collection[E, D]) CreateWithID(ctx context.Context, id uuid.UUID, desc *D) (*E, error) {
	c.write.Lock()
	defer c.write.Unlock()
	return c.create(ctx, id, desc)
}

func (c *Collection[E, D]) create(ctx context.Context, id uuid.UUID, desc *D) (*E, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("%s id is nil: %w", c.kind, domain.ErrInvalidArgument)
	}
	e, err := c.factory.Create(desc)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", c.kind, err)
	}

	now := c.now()
	b := c.base(e)
	b.ID = id
	b.CreatedAt = now
	b.UpdatedAt = now

	c.table.Put(id, e)
	c.persist(ctx, e)

	c.log.Debug("entity created",
		logger.String("kind", c.kind),
		logger.Stringer("id", id))
	return e, nil
}

// Update applies desc to the entity stored under id. It returns the resulting
// entity and whether any field changed; unchanged entities are not persisted.
func (c *Collection[E, D]) Update(ctx context.Context, id uuid.UUID, desc *D) (*E, bool, error) {
	c.write.Lock()
	defer c.write.Unlock()
	return c.update(ctx, id, desc)
}

func (c *Collection[E, D]) update(ctx context.Context, id uuid.UUID, desc *D) (*E, bool, error) {
	if desc == nil {
		return nil, false, fmt.Errorf("update %s: description: %w", c.kind, domain.ErrNullArgument)
	}

	var fields []string
	e, changed, err := c.table.Update(id, func(e *E) (bool, error) {
		var err error
		fields, err = c.factory.UpdateFields(e, desc)
		if len(fields) > 0 {
			c.base(e).UpdatedAt = c.now()
		}
		return len(fields) > 0, err
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, false, fmt.Errorf("%s %s: %w", c.kind, id, err)
		}
		return nil, false, fmt.Errorf("update %s: %w", c.kind, err)
	}

	if changed {
		c.persist(ctx, e)
		c.log.Debug("entity updated",
			logger.String("kind", c.kind),
			logger.Stringer("id", id),
			logger.Strings("fields", fields))
	}
	return e, changed, nil
}

// Upsert updates the entity stored under id, or creates it there when absent.
// It reports whether the entity was created and whether it changed.
func (c *Collection[E, D]) Upsert(ctx context.Context, id uuid.UUID, desc *D) (e *E, created, changed bool, err error) {
	c.write.Lock()
	defer c.write.Unlock()

	if _, ok := c.table.Get(id); !ok {
		e, err = c.create(ctx, id, desc)
		if err != nil {
			return nil, false, false, err
		}
		return e, true, true, nil
	}

	e, changed, err = c.update(ctx, id, desc)
	return e, false, changed, err
}

// Get returns a copy of the entity stored under id.
func (c *Collection[E, D]) Get(id uuid.UUID) (*E, error) {
	e, ok := c.table.Get(id)
	if !ok {
		return nil, fmt.Errorf("%s %s: %w", c.kind, id, domain.ErrNotFound)
	}
	return e, nil
}

// List returns copies of all entities ordered by id.
func (c *Collection[E, D]) List() []*E {
	return c.table.All()
}

// Delete removes the entity stored under id from the index and the store.
func (c *Collection[E, D]) Delete(ctx context.Context, id uuid.UUID) error {
	c.write.Lock()
	defer c.write.Unlock()

	if !c.table.Delete(id) {
		return fmt.Errorf("%s %s: %w", c.kind, id, domain.ErrNotFound)
	}

	if c.remove != nil {
		if err := c.remove(ctx, id); err != nil {
			c.log.Warn("failed to delete entity from store",
				logger.String("kind", c.kind),
				logger.Stringer("id", id),
				logger.Error(err))
		}
	}
	return nil
}

// persist is best effort: the index stays authoritative and the next
// successful write brings the store back in line.
func (c *Collection[E, D]) persist(ctx context.Context, e *E) {
	if c.save == nil {
		return
	}
	if err := c.save(ctx, e); err != nil {
		c.log.Warn("failed to persist entity",
			logger.String("kind", c.kind),
			logger.Stringer("id", c.base(e).ID),
			logger.Error(err))
	}
}
