package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/connector/internal/httpserver/deps"
)

type readyzResponse struct {
	Ready  bool   `json:"ready"`
	Reason string `json:"reason,omitempty"`
}

// Readyz answers 503 until the bootstrap file, when configured, has been applied.
// Redis is not required: the catalog keeps serving from memory without it.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if d.BootstrapFile != "" && d.MemoryIndex.GetLastReload().IsZero() {
			writeJSON(w, http.StatusServiceUnavailable, readyzResponse{Ready: false, Reason: "bootstrap file not loaded"})
			return
		}
		writeJSON(w, http.StatusOK, readyzResponse{Ready: true})
	}
}
