package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/connector/internal/httpserver/deps"
)

// Permission renders the IDS permission of rule {id} as JSON-LD.
func Permission(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}

		perm, err := d.Catalog.Permission(id)
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}

		data, err := perm.MarshalJSON()
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}
		w.Header().Set("Content-Type", "application/ld+json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
