package handlers

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/MrSnakeDoc/connector/internal/domain"
	"github.com/MrSnakeDoc/connector/internal/httpserver/deps"
	"github.com/MrSnakeDoc/connector/internal/logger"
	redisstore "github.com/MrSnakeDoc/connector/internal/store/redis"
)

type notificationResponse struct {
	ID         string `json:"id"`
	Outcome    string `json:"outcome"`
	StatusCode int    `json:"statusCode"`
}

// Notify forwards {"id": "<resource uri>"} to the PseudoPush sink. A 5xx
// answer from the sink is reported in the body, not as a failed request.
func Notify(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := decode[NotificationRequest](r)
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}
		resource, err := url.Parse(req.ID)
		if err != nil {
			writeError(w, d.Logger, fmt.Errorf("invalid resource id: %w", domain.ErrInvalidArgument))
			return
		}

		res, err := d.Notifier.Notify(r.Context(), resource)
		record(r, d, resource.String(), string(res.Outcome), res.StatusCode, err)
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}

		writeJSON(w, http.StatusOK, notificationResponse{
			ID:         resource.String(),
			Outcome:    string(res.Outcome),
			StatusCode: res.StatusCode,
		})
	}
}

// LastDelivery returns the last notification sent for ?id=<resource uri>.
func LastDelivery(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if d.Deliveries == nil {
			writeError(w, d.Logger, fmt.Errorf("delivery history needs redis: %w", domain.ErrInvalidConfiguration))
			return
		}
		resource := r.URL.Query().Get("id")
		if resource == "" {
			writeError(w, d.Logger, fmt.Errorf("query parameter id: %w", domain.ErrNullArgument))
			return
		}

		rec, err := d.Deliveries.GetDelivery(r.Context(), resource)
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}
		if rec == nil {
			writeError(w, d.Logger, fmt.Errorf("no delivery for %s: %w", resource, domain.ErrNotFound))
			return
		}
		writeJSON(w, http.StatusOK, rec)
	}
}

// record stores the outcome of a notification when a delivery log is
// configured. Configuration and argument errors are not deliveries.
func record(r *http.Request, d deps.Deps, resource, outcome string, status int, err error) {
	if d.Deliveries == nil {
		return
	}
	rec := redisstore.Delivery{
		Resource:   resource,
		Outcome:    outcome,
		StatusCode: status,
		SentAt:     d.Now().UTC(),
	}
	if err != nil {
		if code, _ := classify(err); code != http.StatusBadGateway {
			return
		}
		rec.Outcome = "failed"
		rec.Error = err.Error()
	}
	if err := d.Deliveries.RecordDelivery(r.Context(), rec, d.DeliveryTTL); err != nil {
		d.Logger.Warn("failed to record delivery",
			logger.String("resource", resource),
			logger.Error(err))
	}
}
