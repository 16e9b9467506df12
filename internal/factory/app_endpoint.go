package factory

import (
	"fmt"
	"net/url"

	"github.com/MrSnakeDoc/connector/internal/domain"
)

const (
	// DefaultAccessURL is the access url of an app endpoint created without one.
	DefaultAccessURL = "https://default"
	// DefaultLanguage is the language of an app endpoint created without one.
	DefaultLanguage = "EN"
)

// AppEndpointFactory creates and updates app endpoints.
type AppEndpointFactory struct {
	fields []field[domain.AppEndpoint, domain.AppEndpointDesc]
}

var _ Factory[domain.AppEndpoint, domain.AppEndpointDesc] = (*AppEndpointFactory)(nil)

func NewAppEndpointFactory() *AppEndpointFactory {
	return &AppEndpointFactory{fields: []field[domain.AppEndpoint, domain.AppEndpointDesc]{
		uriField("accessUrl",
			func(e *domain.AppEndpoint) **url.URL { return &e.AccessURL },
			func(d *domain.AppEndpointDesc) *url.URL { return d.AccessURL }),
		stringField("mediaType",
			func(e *domain.AppEndpoint) *string { return &e.MediaType },
			func(d *domain.AppEndpointDesc) string { return d.MediaType }),
		{name: "port", apply: func(e *domain.AppEndpoint, d *domain.AppEndpointDesc) bool {
			v, changed := UpdateOptional(e.Port, d.Port)
			e.Port = v
			return changed
		}},
		stringField("protocol",
			func(e *domain.AppEndpoint) *string { return &e.Protocol },
			func(d *domain.AppEndpointDesc) string { return d.Protocol }),
		stringField("language",
			func(e *domain.AppEndpoint) *string { return &e.Language },
			func(d *domain.AppEndpointDesc) string { return d.Language }),
	}}
}

// Create returns an app endpoint with default values overridden by desc.
func (f *AppEndpointFactory) Create(desc *domain.AppEndpointDesc) (*domain.AppEndpoint, error) {
	if desc == nil {
		return nil, fmt.Errorf("app endpoint description: %w", domain.ErrNullArgument)
	}

	endpoint := &domain.AppEndpoint{
		AccessURL: mustParseURI(DefaultAccessURL),
		MediaType: DefaultString,
		Protocol:  DefaultString,
		Language:  DefaultLanguage,
	}

	if _, err := f.Update(endpoint, desc); err != nil {
		return nil, err
	}
	return endpoint, nil
}

// Update applies desc to endpoint.
func (f *AppEndpointFactory) Update(endpoint *domain.AppEndpoint, desc *domain.AppEndpointDesc) (bool, error) {
	changed, err := f.UpdateFields(endpoint, desc)
	return len(changed) > 0, err
}

// UpdateFields applies desc to endpoint and names the fields that changed.
func (f *AppEndpointFactory) UpdateFields(endpoint *domain.AppEndpoint, desc *domain.AppEndpointDesc) ([]string, error) {
	if endpoint == nil {
		return nil, fmt.Errorf("app endpoint: %w", domain.ErrNullArgument)
	}
	if desc == nil {
		return nil, fmt.Errorf("app endpoint description: %w", domain.ErrNullArgument)
	}
	return applyAll(endpoint, desc, f.fields), nil
}
