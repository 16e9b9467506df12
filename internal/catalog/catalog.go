// Package catalog is the entry point for reading and changing brokers, app
// endpoints and contract rules. It is the only caller of the entity factories.
package catalog

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/MrSnakeDoc/connector/internal/domain"
	"github.com/MrSnakeDoc/connector/internal/factory"
	"github.com/MrSnakeDoc/connector/internal/index"
	"github.com/MrSnakeDoc/connector/internal/logger"
	"github.com/MrSnakeDoc/connector/internal/policy"
)

// Store persists entities outside the process. Implemented by the Redis store.
type Store interface {
	SaveBroker(ctx context.Context, b *domain.Broker) error
	DeleteBroker(ctx context.Context, id uuid.UUID) error
	SaveEndpoint(ctx context.Context, e *domain.AppEndpoint) error
	DeleteEndpoint(ctx context.Context, id uuid.UUID) error
	SaveRule(ctx context.Context, r *domain.ContractRule) error
	DeleteRule(ctx context.Context, id uuid.UUID) error
}

type (
	Brokers   = Collection[domain.Broker, domain.BrokerDesc]
	Endpoints = Collection[domain.AppEndpoint, domain.AppEndpointDesc]
	Rules     = Collection[domain.ContractRule, domain.ContractRuleDesc]
)

// Catalog groups the three entity collections and the permission builder.
type Catalog struct {
	Brokers   *Brokers
	Endpoints *Endpoints
	Rules     *Rules

	permissions *policy.Builder
}

// Option customizes a Catalog.
type Option func(*options)

type options struct {
	now   func() time.Time
	newID func() uuid.UUID
}

// WithClock overrides the time source used for CreatedAt/UpdatedAt.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithIDGenerator overrides how ids are assigned to new entities.
func WithIDGenerator(newID func() uuid.UUID) Option {
	return func(o *options) { o.newID = newID }
}

// New creates a Catalog over idx. store may be nil, in which case entities
// only live in memory.
func New(idx *index.MemoryIndex, store Store, permissions *policy.Builder, log logger.Logger, opts ...Option) *Catalog {
	o := options{
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.New,
	}
	for _, opt := range opts {
		opt(&o)
	}
	log = log.Named("catalog")

	c := &Catalog{
		Brokers: &Brokers{
			kind:    "broker",
			factory: factory.NewBrokerFactory(),
			table:   idx.Brokers,
			base:    func(b *domain.Broker) *domain.Entity { return b.Base() },
		},
		Endpoints: &Endpoints{
			kind:    "endpoint",
			factory: factory.NewAppEndpointFactory(),
			table:   idx.Endpoints,
			base:    func(e *domain.AppEndpoint) *domain.Entity { return e.Base() },
		},
		Rules: &Rules{
			kind:    "rule",
			factory: factory.NewContractRuleFactory(),
			table:   idx.Rules,
			base:    func(r *domain.ContractRule) *domain.Entity { return r.Base() },
		},
		permissions: permissions,
	}

	if store != nil {
		c.Brokers.save, c.Brokers.remove = store.SaveBroker, store.DeleteBroker
		c.Endpoints.save, c.Endpoints.remove = store.SaveEndpoint, store.DeleteEndpoint
		c.Rules.save, c.Rules.remove = store.SaveRule, store.DeleteRule
	}
	c.Brokers.setup(o, log)
	c.Endpoints.setup(o, log)
	c.Rules.setup(o, log)
	return c
}

func (c *Collection[E, D]) setup(o options, log logger.Logger) {
	c.now, c.newID, c.log = o.now, o.newID, log
}

// Permission builds the IDS permission described by the rule stored under ruleID.
func (c *Catalog) Permission(ruleID uuid.UUID) (*policy.Permission, error) {
	rule, err := c.Rules.Get(ruleID)
	if err != nil {
		return nil, err
	}
	return c.permissions.Build(rule)
}

// OfferResource adds resourceID to the resources offered through a broker.
// It reports false when the broker already offered it.
func (c *Catalog) OfferResource(ctx context.Context, brokerID, resourceID uuid.UUID) (*domain.Broker, bool, error) {
	return c.changeOffers(ctx, brokerID, func(b *domain.Broker) bool {
		if slices.Contains(b.OfferedResources, resourceID) {
			return false
		}
		b.OfferedResources = append(b.OfferedResources, resourceID)
		return true
	})
}

// WithdrawResource removes resourceID from the resources offered through a broker.
// It reports false when the broker did not offer it.
func (c *Catalog) WithdrawResource(ctx context.Context, brokerID, resourceID uuid.UUID) (*domain.Broker, bool, error) {
	return c.changeOffers(ctx, brokerID, func(b *domain.Broker) bool {
		i := slices.Index(b.OfferedResources, resourceID)
		if i < 0 {
			return false
		}
		b.OfferedResources = slices.Delete(b.OfferedResources, i, i+1)
		return true
	})
}

func (c *Catalog) changeOffers(ctx context.Context, brokerID uuid.UUID, fn func(*domain.Broker) bool) (*domain.Broker, bool, error) {
	brokers := c.Brokers
	brokers.write.Lock()
	defer brokers.write.Unlock()

	b, changed, err := brokers.table.Update(brokerID, func(b *domain.Broker) (bool, error) {
		if !fn(b) {
			return false, nil
		}
		b.UpdatedAt = brokers.now()
		return true, nil
	})
	if err != nil {
		return nil, false, fmt.Errorf("broker %s: %w", brokerID, err)
	}
	if changed {
		brokers.persist(ctx, b)
	}
	return b, changed, nil
}

// Stats returns the number of entities per kind.
func (c *Catalog) Stats() map[string]int {
	return map[string]int{
		c.Brokers.kind:   c.Brokers.table.Len(),
		c.Endpoints.kind: c.Endpoints.table.Len(),
		c.Rules.kind:     c.Rules.table.Len(),
	}
}
