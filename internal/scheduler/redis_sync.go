package scheduler

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrSnakeDoc/connector/internal/domain"
	"github.com/MrSnakeDoc/connector/internal/index"
	"github.com/MrSnakeDoc/connector/internal/logger"
)

// Snapshot reads every persisted entity. Implemented by the Redis store.
type Snapshot interface {
	GetAllBrokers(ctx context.Context) ([]*domain.Broker, error)
	GetAllEndpoints(ctx context.Context) ([]*domain.AppEndpoint, error)
	GetAllRules(ctx context.Context) ([]*domain.ContractRule, error)
}

// RedisSyncer loads persisted entities into the memory index on startup
type RedisSyncer struct {
	store  Snapshot
	index  *index.MemoryIndex
	logger logger.Logger
}

// NewRedisSyncer creates a new Redis syncer
func NewRedisSyncer(store Snapshot, idx *index.MemoryIndex, log logger.Logger) *RedisSyncer {
	return &RedisSyncer{
		store:  store,
		index:  idx,
		logger: log.Named("redis-sync"),
	}
}

// Sync replaces the content of the memory index with what Redis holds.
// Nothing is replaced unless every kind could be read.
func (rs *RedisSyncer) Sync(ctx context.Context) error {
	rs.logger.Info("syncing entities from redis to memory")

	brokers, err := rs.store.GetAllBrokers(ctx)
	if err != nil {
		return fmt.Errorf("failed to load brokers: %w", err)
	}
	endpoints, err := rs.store.GetAllEndpoints(ctx)
	if err != nil {
		return fmt.Errorf("failed to load endpoints: %w", err)
	}
	rules, err := rs.store.GetAllRules(ctx)
	if err != nil {
		return fmt.Errorf("failed to load rules: %w", err)
	}

	rs.index.Brokers.Replace(byID(brokers, (*domain.Broker).Base))
	rs.index.Endpoints.Replace(byID(endpoints, (*domain.AppEndpoint).Base))
	rs.index.Rules.Replace(byID(rules, (*domain.ContractRule).Base))

	rs.logger.Info("synced entities from redis",
		logger.Int("brokers", len(brokers)),
		logger.Int("endpoints", len(endpoints)),
		logger.Int("rules", len(rules)))
	return nil
}

func byID[E any](items []*E, base func(*E) *domain.Entity) map[uuid.UUID]*E {
	m := make(map[uuid.UUID]*E, len(items))
	for _, e := range items {
		m[base(e).ID] = e
	}
	return m
}
