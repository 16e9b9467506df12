package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/connector/internal/domain"
	"github.com/MrSnakeDoc/connector/internal/httpserver/deps"
	"github.com/MrSnakeDoc/connector/internal/httpserver/handlers"
)

func init() {
	RegisterAPI(registerBrokers)
	RegisterAPI(registerEndpoints)
	RegisterAPI(registerRules)
}

type crud interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

func mountCRUD(r chi.Router, h crud) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}

func registerBrokers(r chi.Router, d deps.Deps) {
	h := handlers.NewEntities[domain.Broker, domain.BrokerDesc, handlers.BrokerRequest](d, d.Catalog.Brokers)
	r.Route("/brokers", func(r chi.Router) {
		mountCRUD(r, h)
		r.Put("/{id}/resources/{resourceId}", handlers.OfferResource(d))
		r.Delete("/{id}/resources/{resourceId}", handlers.WithdrawResource(d))
	})
}

func registerEndpoints(r chi.Router, d deps.Deps) {
	h := handlers.NewEntities[domain.AppEndpoint, domain.AppEndpointDesc, handlers.EndpointRequest](d, d.Catalog.Endpoints)
	r.Route("/endpoints", func(r chi.Router) {
		mountCRUD(r, h)
	})
}

func registerRules(r chi.Router, d deps.Deps) {
	h := handlers.NewEntities[domain.ContractRule, domain.ContractRuleDesc, handlers.RuleRequest](d, d.Catalog.Rules)
	r.Route("/rules", func(r chi.Router) {
		mountCRUD(r, h)
		r.Get("/{id}/permission", handlers.Permission(d))
	})
}
