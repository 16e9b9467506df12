package domain

import (
	"net/url"

	"github.com/google/uuid"
)

// RegisterStatus is the registration state of the connector at a broker.
// The empty value means "not specified" in a description.
type RegisterStatus string

const (
	StatusRegistered   RegisterStatus = "REGISTERED"
	StatusUnregistered RegisterStatus = "UNREGISTERED"
)

// Valid reports whether s is one of the known statuses.
func (s RegisterStatus) Valid() bool {
	return s == StatusRegistered || s == StatusUnregistered
}

// Broker is an IDS broker the connector can register its resources at.
type Broker struct {
	Entity

	// ─────────────────────────────
	// Functional description
	// (overwritten by BrokerDesc updates)
	// ─────────────────────────────

	AccessURL *url.URL       `json:"-"`
	Title     string         `json:"title"`
	Status    RegisterStatus `json:"status"`

	// OfferedResources lists the resources registered at this broker.
	// Never nil on a created broker.
	OfferedResources []uuid.UUID `json:"offeredResources"`
}

// BrokerDesc is the desired state of a broker. All fields are optional.
type BrokerDesc struct {
	AccessURL *url.URL
	Title     string
	Status    RegisterStatus
}
