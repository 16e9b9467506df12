package redis

import (
	"context"

	"github.com/google/uuid"

	"github.com/MrSnakeDoc/connector/internal/domain"
)

// SaveEndpoint stores an app endpoint in Redis
func (s *Store) SaveEndpoint(ctx context.Context, e *domain.AppEndpoint) error {
	return save(ctx, s.client, KindEndpoint, e.ID, e)
}

// GetEndpoint retrieves an app endpoint from Redis by ID
func (s *Store) GetEndpoint(ctx context.Context, id uuid.UUID) (*domain.AppEndpoint, error) {
	return get[domain.AppEndpoint](ctx, s.client, KindEndpoint, id)
}

// GetAllEndpoints retrieves all app endpoints from Redis
func (s *Store) GetAllEndpoints(ctx context.Context) ([]*domain.AppEndpoint, error) {
	return getAll[domain.AppEndpoint](ctx, s.client, KindEndpoint)
}

// DeleteEndpoint removes an app endpoint from Redis
func (s *Store) DeleteEndpoint(ctx context.Context, id uuid.UUID) error {
	return remove(ctx, s.client, KindEndpoint, id)
}
