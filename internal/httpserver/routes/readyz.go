package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/connector/internal/httpserver/deps"
	"github.com/MrSnakeDoc/connector/internal/httpserver/handlers"
)

func init() { Register(registerHealth) }

func registerHealth(r chi.Router, d deps.Deps) {
	r.Get("/healthz", handlers.Healthz(d))
	r.With(ops(d)).Get("/readyz", handlers.Readyz(d))
	r.With(ops(d)).Get("/infra", handlers.Infra(d))
}
