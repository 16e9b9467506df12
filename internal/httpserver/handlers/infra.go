package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/connector/internal/httpserver/deps"
)

type componentStatus struct {
	OK         bool           `json:"ok"`
	Entities   map[string]int `json:"entities,omitempty"`
	LastReload string         `json:"last_reload,omitempty"`
	Mode       string         `json:"mode,omitempty"`
	Impact     string         `json:"impact,omitempty"`
	Error      string         `json:"error,omitempty"`
}

type infraResponse struct {
	Mode       string                     `json:"mode"`
	Components map[string]componentStatus `json:"components"`
}

// Infra reports the state of every component the connector depends on.
func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		components := map[string]componentStatus{
			"catalog":    checkCatalog(d),
			"redis":      checkRedis(r.Context(), d),
			"pseudopush": checkPseudoPush(d),
		}
		writeJSON(w, http.StatusOK, infraResponse{
			Mode:       determineMode(components),
			Components: components,
		})
	}
}

// determineMode is "operational" when every component is OK. A missing
// bootstrap is critical; Redis or PseudoPush being unavailable only degrades.
func determineMode(components map[string]componentStatus) string {
	if c, ok := components["catalog"]; ok && !c.OK {
		return "critical"
	}
	for _, c := range components {
		if !c.OK {
			return "degraded"
		}
	}
	return "operational"
}

func checkCatalog(d deps.Deps) componentStatus {
	status := componentStatus{
		OK:         true,
		Entities:   d.Catalog.Stats(),
		LastReload: "never",
		Mode:       "api-only",
	}
	if last := d.MemoryIndex.GetLastReload(); !last.IsZero() {
		status.LastReload = last.UTC().Format(time.RFC3339)
	}
	if d.BootstrapFile != "" {
		status.Mode = "bootstrap"
		status.OK = status.LastReload != "never"
	}
	return status
}

func checkRedis(ctx context.Context, d deps.Deps) componentStatus {
	if d.Persistence == nil {
		return componentStatus{
			OK:     false,
			Mode:   "memory-only",
			Impact: "catalog-not-persisted",
			Error:  "client not initialized",
		}
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := d.Persistence.Ping(ctx); err != nil {
		return componentStatus{
			OK:     false,
			Mode:   "memory-only",
			Impact: "catalog-not-persisted",
			Error:  err.Error(),
		}
	}

	status := componentStatus{
		OK:     true,
		Mode:   "persistent",
		Impact: "none",
	}
	counts, err := d.Persistence.Counts(ctx)
	if err != nil {
		status.Error = err.Error()
		return status
	}
	status.Entities = make(map[string]int, len(counts))
	for kind, n := range counts {
		status.Entities[string(kind)] = int(n)
	}
	return status
}

func checkPseudoPush(d deps.Deps) componentStatus {
	if d.Notifier == nil || !d.Notifier.Configured() {
		return componentStatus{
			OK:     false,
			Mode:   "disabled",
			Impact: "notifications-rejected",
			Error:  "url not configured",
		}
	}
	return componentStatus{OK: true, Mode: "enabled"}
}
