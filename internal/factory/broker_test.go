package factory

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/connector/internal/domain"
)

func mustURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}

func TestBrokerFactory_NilArguments(t *testing.T) {
	f := NewBrokerFactory()

	_, err := f.Create(nil)
	assert.ErrorIs(t, err, domain.ErrNullArgument)

	_, err = f.Update(nil, &domain.BrokerDesc{})
	assert.ErrorIs(t, err, domain.ErrNullArgument)

	_, err = f.Update(&domain.Broker{}, nil)
	assert.ErrorIs(t, err, domain.ErrNullArgument)
}

func TestBrokerFactory_CreateDefaults(t *testing.T) {
	broker, err := NewBrokerFactory().Create(&domain.BrokerDesc{})
	require.NoError(t, err)

	assert.Equal(t, DefaultBrokerURL, broker.AccessURL.String())
	assert.Equal(t, DefaultString, broker.Title)
	assert.Equal(t, domain.StatusUnregistered, broker.Status)
	assert.NotNil(t, broker.OfferedResources)
	assert.Empty(t, broker.OfferedResources)
}

func TestBrokerFactory_CreateFromDescription(t *testing.T) {
	desc := &domain.BrokerDesc{
		AccessURL: mustURL(t, "https://broker.example.org"),
		Title:     "Main broker",
		Status:    domain.StatusRegistered,
	}

	broker, err := NewBrokerFactory().Create(desc)
	require.NoError(t, err)

	assert.Equal(t, "https://broker.example.org", broker.AccessURL.String())
	assert.Equal(t, "Main broker", broker.Title)
	assert.Equal(t, domain.StatusRegistered, broker.Status)
}

func TestBrokerFactory_UpdateEmptyDescriptionChangesNothing(t *testing.T) {
	f := NewBrokerFactory()
	broker, err := f.Create(&domain.BrokerDesc{Title: "kept"})
	require.NoError(t, err)
	before := *broker

	changed, err := f.Update(broker, &domain.BrokerDesc{})
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, before.AccessURL.String(), broker.AccessURL.String())
	assert.Equal(t, before.Title, broker.Title)
	assert.Equal(t, before.Status, broker.Status)
}

func TestBrokerFactory_UpdateSingleField(t *testing.T) {
	tests := []struct {
		name  string
		desc  domain.BrokerDesc
		check func(t *testing.T, b *domain.Broker)
	}{
		{
			name: "access url",
			desc: domain.BrokerDesc{AccessURL: mustURL(t, "https://other.example.org")},
			check: func(t *testing.T, b *domain.Broker) {
				assert.Equal(t, "https://other.example.org", b.AccessURL.String())
				assert.Equal(t, DefaultString, b.Title)
				assert.Equal(t, domain.StatusUnregistered, b.Status)
			},
		},
		{
			name: "title",
			desc: domain.BrokerDesc{Title: "renamed"},
			check: func(t *testing.T, b *domain.Broker) {
				assert.Equal(t, DefaultBrokerURL, b.AccessURL.String())
				assert.Equal(t, "renamed", b.Title)
				assert.Equal(t, domain.StatusUnregistered, b.Status)
			},
		},
		{
			name: "status",
			desc: domain.BrokerDesc{Status: domain.StatusRegistered},
			check: func(t *testing.T, b *domain.Broker) {
				assert.Equal(t, DefaultBrokerURL, b.AccessURL.String())
				assert.Equal(t, DefaultString, b.Title)
				assert.Equal(t, domain.StatusRegistered, b.Status)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewBrokerFactory()
			broker, err := f.Create(&domain.BrokerDesc{})
			require.NoError(t, err)

			changed, err := f.Update(broker, &tt.desc)
			require.NoError(t, err)
			assert.True(t, changed)
			tt.check(t, broker)
		})
	}
}

func TestBrokerFactory_UpdateIsIdempotent(t *testing.T) {
	f := NewBrokerFactory()
	broker, err := f.Create(&domain.BrokerDesc{})
	require.NoError(t, err)

	desc := &domain.BrokerDesc{
		AccessURL: mustURL(t, "https://broker.example.org"),
		Title:     "Main broker",
		Status:    domain.StatusRegistered,
	}

	changed, err := f.Update(broker, desc)
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = f.Update(broker, desc)
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestBrokerFactory_UpdateFieldsNamesChanges(t *testing.T) {
	f := NewBrokerFactory()
	broker, err := f.Create(&domain.BrokerDesc{})
	require.NoError(t, err)

	fields, err := f.UpdateFields(broker, &domain.BrokerDesc{Title: "Main", Status: domain.StatusRegistered})
	require.NoError(t, err)
	assert.Equal(t, []string{"title", "status"}, fields)

	fields, err = f.UpdateFields(broker, &domain.BrokerDesc{Title: "Main"})
	require.NoError(t, err)
	assert.Empty(t, fields)

	_, err = f.UpdateFields(nil, &domain.BrokerDesc{})
	assert.ErrorIs(t, err, domain.ErrNullArgument)
}
