package redis

import "github.com/google/uuid"

// Kind names a family of entities in Redis.
type Kind string

const (
	KindBroker   Kind = "broker"
	KindEndpoint Kind = "endpoint"
	KindRule     Kind = "rule"

	// KeyPrefix is shared by every key the connector writes.
	KeyPrefix = "connector:"
)

// EntityKey returns the Redis key for one entity, e.g. connector:broker:<id>.
func EntityKey(kind Kind, id uuid.UUID) string {
	return KeyPrefix + string(kind) + ":" + id.String()
}

// AllKey returns the key of the set holding all ids of kind,
// e.g. connector:broker:all.
func AllKey(kind Kind) string {
	return KeyPrefix + string(kind) + ":all"
}
