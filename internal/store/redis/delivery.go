package redis

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// KeyPrefixDelivery prefixes the last-delivery record of a resource.
const KeyPrefixDelivery = KeyPrefix + "delivery:"

// Delivery is the last notification sent for a resource.
type Delivery struct {
	Resource   string    `json:"resource"`
	Outcome    string    `json:"outcome"`
	StatusCode int       `json:"statusCode,omitempty"`
	Error      string    `json:"error,omitempty"`
	SentAt     time.Time `json:"sentAt"`
}

// DeliveryKey hashes the resource URI so arbitrary URIs stay valid key suffixes.
func DeliveryKey(resource string) string {
	sum := sha1.Sum([]byte(resource))
	return KeyPrefixDelivery + hex.EncodeToString(sum[:])
}

// RecordDelivery stores the outcome of a notification for ttl.
func (s *Store) RecordDelivery(ctx context.Context, d Delivery, ttl time.Duration) error {
	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to marshal delivery: %w", err)
	}
	if err := s.client.Set(ctx, DeliveryKey(d.Resource), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to record delivery: %w", err)
	}
	return nil
}

// GetDelivery retrieves the last delivery of a resource. A miss returns nil, nil.
func (s *Store) GetDelivery(ctx context.Context, resource string) (*Delivery, error) {
	data, err := s.client.Get(ctx, DeliveryKey(resource)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get delivery: %w", err)
	}

	var d Delivery
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("failed to unmarshal delivery: %w", err)
	}
	return &d, nil
}
