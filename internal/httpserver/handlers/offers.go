package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/MrSnakeDoc/connector/internal/domain"
	"github.com/MrSnakeDoc/connector/internal/httpserver/deps"
)

type offerResponse struct {
	Changed bool           `json:"changed"`
	Broker  *domain.Broker `json:"broker"`
}

// OfferResource adds {resourceId} to the resources offered by broker {id}.
func OfferResource(d deps.Deps) http.HandlerFunc {
	return changeOffer(d, d.Catalog.OfferResource)
}

// WithdrawResource removes {resourceId} from the resources offered by broker {id}.
func WithdrawResource(d deps.Deps) http.HandlerFunc {
	return changeOffer(d, d.Catalog.WithdrawResource)
}

func changeOffer(d deps.Deps, fn func(context.Context, uuid.UUID, uuid.UUID) (*domain.Broker, bool, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		brokerID, err := pathID(r, "id")
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}
		resourceID, err := pathID(r, "resourceId")
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}

		b, changed, err := fn(r.Context(), brokerID, resourceID)
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusOK, offerResponse{Changed: changed, Broker: b})
	}
}
