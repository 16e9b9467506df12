package integration

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/connector/internal/catalog"
	"github.com/MrSnakeDoc/connector/internal/httpserver"
	"github.com/MrSnakeDoc/connector/internal/httpserver/deps"
	"github.com/MrSnakeDoc/connector/internal/httpserver/mw"
	"github.com/MrSnakeDoc/connector/internal/index"
	"github.com/MrSnakeDoc/connector/internal/logger"
	"github.com/MrSnakeDoc/connector/internal/notify"
	"github.com/MrSnakeDoc/connector/internal/policy"
	"github.com/MrSnakeDoc/connector/internal/scheduler"
	"github.com/MrSnakeDoc/connector/internal/sources/bootstrap"
)

const initialBootstrap = `
brokers:
  - name: main
    accessUrl: https://broker.example.org
    title: Main broker
    status: registered
endpoints:
  - name: weather
    accessUrl: https://data.example.org/weather
    mediaType: application/json
    port: 443
rules:
  - name: use-only
    title: Use only
    value:
      "@type": ids:Permission
      ids:action:
        - "@id": idsc:USE
`

const reducedBootstrap = `
brokers:
  - name: main
    accessUrl: https://broker.example.org
    title: Main broker (renamed)
    status: REGISTERED
rules:
  - name: use-only
    title: Use only
    value: '{"@type":"ids:Permission","ids:action":[{"@id":"idsc:USE"}]}'
`

// sink records every notification the connector pushes.
type sink struct {
	mu       sync.Mutex
	received []string
	apiKeys  []string
}

func (s *sink) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ID string `json:"id"`
	}
	data, _ := io.ReadAll(r.Body)
	_ = json.Unmarshal(data, &body)

	s.mu.Lock()
	s.received = append(s.received, body.ID)
	s.apiKeys = append(s.apiKeys, r.Header.Get(notify.APIKeyHeader))
	s.mu.Unlock()

	w.WriteHeader(http.StatusAccepted)
}

type connector struct {
	t        *testing.T
	handler  http.Handler
	reloader *scheduler.BootstrapReloader
	catalog  *catalog.Catalog
	file     string
}

func newConnector(t *testing.T, pushURL string) *connector {
	t.Helper()

	file := filepath.Join(t.TempDir(), "bootstrap.yaml")
	writeFile(t, file, initialBootstrap)

	builder, err := policy.NewBuilder(policy.DefaultBaseURI)
	require.NoError(t, err)

	log := logger.NewNop()
	idx := index.NewMemoryIndex()
	cat := catalog.New(idx, nil, builder, log)

	d := deps.Deps{
		Logger:          log,
		StartTime:       time.Now(),
		Catalog:         cat,
		MemoryIndex:     idx,
		Notifier:        notify.NewPseudoPush(notify.Options{URL: pushURL, APIKey: "secret"}, log),
		NotifyRateLimit: mw.RateLimitConfig{Burst: 10, RefillPerIPPerMin: 10},
		BootstrapFile:   file,
	}

	return &connector{
		t:        t,
		handler:  httpserver.NewRouter(d, 5*time.Second),
		reloader: scheduler.NewBootstrapReloader(file, cat, idx, log, 0, nil),
		catalog:  cat,
		file:     file,
	}
}

func (c *connector) do(method, path, body string) *httptest.ResponseRecorder {
	c.t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	rec := httptest.NewRecorder()
	c.handler.ServeHTTP(rec, req)
	return rec
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestBootstrapToPermission(t *testing.T) {
	c := newConnector(t, "")
	ctx := context.Background()

	assert.Equal(t, http.StatusServiceUnavailable, c.do(http.MethodGet, "/readyz", "").Code)

	report, err := c.reloader.Reload(ctx)
	require.NoError(t, err)
	assert.Equal(t, scheduler.ReloadReport{Created: 3}, report)
	assert.Equal(t, http.StatusOK, c.do(http.MethodGet, "/readyz", "").Code)

	ruleID := bootstrap.EntityID("rule", "use-only")
	rec := c.do(http.MethodGet, "/api/rules/"+ruleID.String()+"/permission", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var perm map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &perm))
	assert.Equal(t, "ids:Permission", perm["@type"])
	assert.Equal(t, policy.DefaultBaseURI+"/"+ruleID.String(), perm["@id"])
	assert.Contains(t, rec.Body.String(), "idsc:USE")

	brokerID := bootstrap.EntityID("broker", "main")
	rec = c.do(http.MethodGet, "/api/brokers/"+brokerID.String(), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"REGISTERED"`)
}

func TestReloadPrunesOnlyBootstrapEntities(t *testing.T) {
	c := newConnector(t, "")
	ctx := context.Background()

	_, err := c.reloader.Reload(ctx)
	require.NoError(t, err)

	rec := c.do(http.MethodPost, "/api/endpoints", `{"accessUrl":"https://api.example.org","port":8080}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	writeFile(t, c.file, reducedBootstrap)
	report, err := c.reloader.Reload(ctx)
	require.NoError(t, err)
	assert.Equal(t, scheduler.ReloadReport{Updated: 1, Unchanged: 1, Removed: 1}, report)

	endpointID := bootstrap.EntityID("endpoint", "weather")
	assert.Equal(t, http.StatusNotFound, c.do(http.MethodGet, "/api/endpoints/"+endpointID.String(), "").Code)

	endpoints := c.catalog.Endpoints.List()
	require.Len(t, endpoints, 1)
	assert.Equal(t, "https://api.example.org", endpoints[0].AccessURL.String())

	broker, err := c.catalog.Brokers.Get(bootstrap.EntityID("broker", "main"))
	require.NoError(t, err)
	assert.Equal(t, "Main broker (renamed)", broker.Title)
}

func TestNotificationReachesSink(t *testing.T) {
	s := &sink{}
	srv := httptest.NewServer(s)
	defer srv.Close()

	c := newConnector(t, srv.URL)
	resource := "https://connector.example.org/api/resources/7"

	rec := c.do(http.MethodPost, "/api/notifications", `{"id":"`+resource+`"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"outcome":"delivered"`)
	assert.Contains(t, rec.Body.String(), `"statusCode":202`)

	s.mu.Lock()
	defer s.mu.Unlock()
	assert.Equal(t, []string{resource}, s.received)
	assert.Equal(t, []string{"secret"}, s.apiKeys)
}

func TestNotificationWithoutSink(t *testing.T) {
	c := newConnector(t, "")

	rec := c.do(http.MethodPost, "/api/notifications", `{"id":"urn:resource:1"}`)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
