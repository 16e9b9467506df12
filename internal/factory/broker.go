package factory

import (
	"fmt"
	"net/url"

	"github.com/google/uuid"

	"github.com/MrSnakeDoc/connector/internal/domain"
)

const (
	// DefaultBrokerURL is the access url of a broker created without one.
	DefaultBrokerURL = "https://broker.com"
	// DefaultString is used for unspecified free-text fields.
	DefaultString = "unknown"
)

// BrokerFactory creates and updates brokers.
type BrokerFactory struct {
	fields []field[domain.Broker, domain.BrokerDesc]
}

var _ Factory[domain.Broker, domain.BrokerDesc] = (*BrokerFactory)(nil)

func NewBrokerFactory() *BrokerFactory {
	return &BrokerFactory{fields: []field[domain.Broker, domain.BrokerDesc]{
		uriField("accessUrl",
			func(b *domain.Broker) **url.URL { return &b.AccessURL },
			func(d *domain.BrokerDesc) *url.URL { return d.AccessURL }),
		stringField("title",
			func(b *domain.Broker) *string { return &b.Title },
			func(d *domain.BrokerDesc) string { return d.Title }),
		{name: "status", apply: func(b *domain.Broker, d *domain.BrokerDesc) bool {
			v, changed := UpdateComparable(b.Status, d.Status)
			b.Status = v
			return changed
		}},
	}}
}

// Create returns a broker with default values overridden by desc.
func (f *BrokerFactory) Create(desc *domain.BrokerDesc) (*domain.Broker, error) {
	if desc == nil {
		return nil, fmt.Errorf("broker description: %w", domain.ErrNullArgument)
	}

	broker := &domain.Broker{
		AccessURL:        mustParseURI(DefaultBrokerURL),
		Title:            DefaultString,
		Status:           domain.StatusUnregistered,
		OfferedResources: []uuid.UUID{},
	}

	if _, err := f.Update(broker, desc); err != nil {
		return nil, err
	}
	return broker, nil
}

// Update applies desc to broker.
func (f *BrokerFactory) Update(broker *domain.Broker, desc *domain.BrokerDesc) (bool, error) {
	changed, err := f.UpdateFields(broker, desc)
	return len(changed) > 0, err
}

// UpdateFields applies desc to broker and names the fields that changed.
func (f *BrokerFactory) UpdateFields(broker *domain.Broker, desc *domain.BrokerDesc) ([]string, error) {
	if broker == nil {
		return nil, fmt.Errorf("broker: %w", domain.ErrNullArgument)
	}
	if desc == nil {
		return nil, fmt.Errorf("broker description: %w", domain.ErrNullArgument)
	}
	return applyAll(broker, desc, f.fields), nil
}
