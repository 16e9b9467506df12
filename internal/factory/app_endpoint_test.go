package factory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/connector/internal/domain"
)

func intPtr(v int) *int { return &v }

func TestAppEndpointFactory_NilArguments(t *testing.T) {
	f := NewAppEndpointFactory()

	_, err := f.Create(nil)
	assert.ErrorIs(t, err, domain.ErrNullArgument)

	_, err = f.Update(nil, &domain.AppEndpointDesc{})
	assert.ErrorIs(t, err, domain.ErrNullArgument)

	_, err = f.Update(&domain.AppEndpoint{}, nil)
	assert.ErrorIs(t, err, domain.ErrNullArgument)
}

func TestAppEndpointFactory_CreateDefaults(t *testing.T) {
	endpoint, err := NewAppEndpointFactory().Create(&domain.AppEndpointDesc{})
	require.NoError(t, err)

	assert.Equal(t, DefaultAccessURL, endpoint.AccessURL.String())
	assert.Equal(t, DefaultString, endpoint.MediaType)
	assert.Equal(t, DefaultString, endpoint.Protocol)
	assert.Equal(t, DefaultLanguage, endpoint.Language)
	assert.Zero(t, endpoint.Port)
}

func TestAppEndpointFactory_CreateFromDescription(t *testing.T) {
	endpoint, err := NewAppEndpointFactory().Create(&domain.AppEndpointDesc{
		AccessURL: mustURL(t, "https://apps.example.org/ocr"),
		MediaType: "application/json",
		Port:      intPtr(8443),
		Protocol:  "HTTPS",
		Language:  "DE",
	})
	require.NoError(t, err)

	assert.Equal(t, "https://apps.example.org/ocr", endpoint.AccessURL.String())
	assert.Equal(t, "application/json", endpoint.MediaType)
	assert.Equal(t, 8443, endpoint.Port)
	assert.Equal(t, "HTTPS", endpoint.Protocol)
	assert.Equal(t, "DE", endpoint.Language)
}

func TestAppEndpointFactory_UpdateOnlyGivenFields(t *testing.T) {
	f := NewAppEndpointFactory()
	endpoint, err := f.Create(&domain.AppEndpointDesc{
		MediaType: "application/json",
		Port:      intPtr(8443),
	})
	require.NoError(t, err)

	changed, err := f.Update(endpoint, &domain.AppEndpointDesc{Protocol: "MQTT"})
	require.NoError(t, err)
	assert.True(t, changed)

	assert.Equal(t, "MQTT", endpoint.Protocol)
	assert.Equal(t, "application/json", endpoint.MediaType)
	assert.Equal(t, 8443, endpoint.Port)
	assert.Equal(t, DefaultLanguage, endpoint.Language)
	assert.Equal(t, DefaultAccessURL, endpoint.AccessURL.String())
}

func TestAppEndpointFactory_PortIsOptional(t *testing.T) {
	f := NewAppEndpointFactory()
	endpoint, err := f.Create(&domain.AppEndpointDesc{Port: intPtr(8443)})
	require.NoError(t, err)

	changed, err := f.Update(endpoint, &domain.AppEndpointDesc{})
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, 8443, endpoint.Port)

	changed, err = f.Update(endpoint, &domain.AppEndpointDesc{Port: intPtr(0)})
	require.NoError(t, err)
	assert.True(t, changed, "an explicit port replaces the current one")
	assert.Zero(t, endpoint.Port)
}

func TestAppEndpointFactory_UpdateIsIdempotent(t *testing.T) {
	f := NewAppEndpointFactory()
	endpoint, err := f.Create(&domain.AppEndpointDesc{})
	require.NoError(t, err)

	desc := &domain.AppEndpointDesc{Language: "FR", Port: intPtr(9000)}

	changed, err := f.Update(endpoint, desc)
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = f.Update(endpoint, desc)
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestAppEndpointFactory_UpdateFieldsNamesChanges(t *testing.T) {
	f := NewAppEndpointFactory()
	endpoint, err := f.Create(&domain.AppEndpointDesc{})
	require.NoError(t, err)

	fields, err := f.UpdateFields(endpoint, &domain.AppEndpointDesc{Port: intPtr(8443), Language: "DE"})
	require.NoError(t, err)
	assert.Equal(t, []string{"port", "language"}, fields)
}
