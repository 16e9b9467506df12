package redis

import (
	"context"

	"github.com/google/uuid"

	"github.com/MrSnakeDoc/connector/internal/domain"
)

// SaveRule stores a contract rule in Redis
func (s *Store) SaveRule(ctx context.Context, r *domain.ContractRule) error {
	return save(ctx, s.client, KindRule, r.ID, r)
}

// GetRule retrieves a contract rule from Redis by ID
func (s *Store) GetRule(ctx context.Context, id uuid.UUID) (*domain.ContractRule, error) {
	return get[domain.ContractRule](ctx, s.client, KindRule, id)
}

// GetAllRules retrieves all contract rules from Redis
func (s *Store) GetAllRules(ctx context.Context) ([]*domain.ContractRule, error) {
	return getAll[domain.ContractRule](ctx, s.client, KindRule)
}

// DeleteRule removes a contract rule from Redis
func (s *Store) DeleteRule(ctx context.Context, id uuid.UUID) error {
	return remove(ctx, s.client, KindRule, id)
}
