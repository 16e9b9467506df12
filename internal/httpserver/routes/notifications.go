package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/connector/internal/httpserver/deps"
	"github.com/MrSnakeDoc/connector/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/connector/internal/httpserver/mw"
)

func init() { RegisterAPI(registerNotifications) }

func registerNotifications(r chi.Router, d deps.Deps) {
	r.With(mw.RateLimit(d.NotifyRateLimit)).Post("/notifications", handlers.Notify(d))
	r.Get("/notifications", handlers.LastDelivery(d))
}
