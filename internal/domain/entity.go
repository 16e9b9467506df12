package domain

import (
	"time"

	"github.com/google/uuid"
)

// Entity carries the identity and bookkeeping shared by all catalog entities.
// ID is assigned once when the entity is first stored and never changes.
type Entity struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Base returns the entity itself so that embedding types expose it.
func (e *Entity) Base() *Entity { return e }
