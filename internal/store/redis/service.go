package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/connector/internal/domain"
)

// Store persists catalog entities in Redis as JSON values, with one set of
// ids per kind. Entries do not expire.
type Store struct {
	client *redis.Client
}

// NewStore creates a new Redis store
func NewStore(client *redis.Client) *Store {
	return &Store{
		client: client,
	}
}

// Ping checks that Redis answers.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func save(ctx context.Context, c *redis.Client, kind Kind, id uuid.UUID, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", kind, err)
	}

	pipe := c.TxPipeline()
	pipe.Set(ctx, EntityKey(kind, id), data, 0)
	pipe.SAdd(ctx, AllKey(kind), id.String())
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save %s %s: %w", kind, id, err)
	}
	return nil
}

func get[E any](ctx context.Context, c *redis.Client, kind Kind, id uuid.UUID) (*E, error) {
	data, err := c.Get(ctx, EntityKey(kind, id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%s %s: %w", kind, id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get %s: %w", kind, err)
	}

	var e E
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s: %w", kind, err)
	}
	return &e, nil
}

func getAll[E any](ctx context.Context, c *redis.Client, kind Kind) ([]*E, error) {
	ids, err := c.SMembers(ctx, AllKey(kind)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get %s ids: %w", kind, err)
	}

	out := make([]*E, 0, len(ids))
	for _, raw := range ids {
		id, err := uuid.Parse(raw)
		if err != nil {
			// Skip foreign members of the set
			continue
		}
		e, err := get[E](ctx, c, kind, id)
		if err != nil {
			// Skip entries that couldn't be retrieved
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func remove(ctx context.Context, c *redis.Client, kind Kind, id uuid.UUID) error {
	pipe := c.TxPipeline()
	pipe.Del(ctx, EntityKey(kind, id))
	pipe.SRem(ctx, AllKey(kind), id.String())
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete %s %s: %w", kind, id, err)
	}
	return nil
}
