package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/connector/internal/httpserver/deps"
	"github.com/MrSnakeDoc/connector/internal/httpserver/mw"
)

type (
	Registrar  func(r chi.Router, d deps.Deps)
	Middleware = func(http.Handler) http.Handler
)

type entry struct {
	reg Registrar
	mws []Middleware
}

var (
	root []entry // operational routes, mounted at /
	api  []entry // catalog routes, mounted at /api
)

// Register adds a registrar for operational routes with optional per-route middlewares.
func Register(reg Registrar, mws ...Middleware) {
	root = append(root, entry{reg: reg, mws: mws})
}

// RegisterAPI adds a registrar for routes below /api.
func RegisterAPI(reg Registrar, mws ...Middleware) {
	api = append(api, entry{reg: reg, mws: mws})
}

// RegisterAll mounts every registered route on r. Called once from server.New().
// /api routes go through Host enforcement and the given middlewares, e.g. CORS.
func RegisterAll(r chi.Router, d deps.Deps, apiMws ...Middleware) {
	mount(r, d, root)

	r.Route("/api", func(sub chi.Router) {
		sub.Use(mw.EnforceHost(d.AllowedHosts, d.Logger))
		sub.Use(apiMws...)
		mount(sub, d, api)
	})
}

func mount(r chi.Router, d deps.Deps, entries []entry) {
	for _, e := range entries {
		if len(e.mws) == 0 {
			e.reg(r, d)
			continue
		}
		e.reg(r.With(e.mws...), d)
	}
}

// ops restricts a route to the allowed CIDRs.
func ops(d deps.Deps) Middleware {
	return mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger)
}
