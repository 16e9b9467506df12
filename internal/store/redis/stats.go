package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Counts returns the number of persisted entities per kind.
func (s *Store) Counts(ctx context.Context) (map[Kind]int64, error) {
	kinds := []Kind{KindBroker, KindEndpoint, KindRule}

	pipe := s.client.Pipeline()
	cmds := make(map[Kind]*redis.IntCmd, len(kinds))
	for _, k := range kinds {
		cmds[k] = pipe.SCard(ctx, AllKey(k))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to count entities: %w", err)
	}

	stats := make(map[Kind]int64, len(kinds))
	for k, cmd := range cmds {
		stats[k] = cmd.Val()
	}
	return stats, nil
}
