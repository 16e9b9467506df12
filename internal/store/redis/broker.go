package redis

import (
	"context"

	"github.com/google/uuid"

	"github.com/MrSnakeDoc/connector/internal/domain"
)

// SaveBroker stores a broker in Redis
func (s *Store) SaveBroker(ctx context.Context, b *domain.Broker) error {
	return save(ctx, s.client, KindBroker, b.ID, b)
}

// GetBroker retrieves a broker from Redis by ID
func (s *Store) GetBroker(ctx context.Context, id uuid.UUID) (*domain.Broker, error) {
	return get[domain.Broker](ctx, s.client, KindBroker, id)
}

// GetAllBrokers retrieves all brokers from Redis
func (s *Store) GetAllBrokers(ctx context.Context) ([]*domain.Broker, error) {
	return getAll[domain.Broker](ctx, s.client, KindBroker)
}

// DeleteBroker removes a broker from Redis
func (s *Store) DeleteBroker(ctx context.Context, id uuid.UUID) error {
	return remove(ctx, s.client, KindBroker, id)
}
