package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/connector/internal/catalog"
	"github.com/MrSnakeDoc/connector/internal/httpserver/deps"
)

// describer is a request body that converts into a description of type D.
type describer[D any] interface {
	Desc() (*D, error)
}

type updateResponse[E any] struct {
	Updated bool `json:"updated"`
	Entity  *E   `json:"entity"`
}

// Entities serves the CRUD routes of one catalog collection. R is the request
// body type; *R must convert into the collection's description.
type Entities[E, D, R any, PR interface {
	*R
	describer[D]
}] struct {
	d    deps.Deps
	coll *catalog.Collection[E, D]
}

// NewEntities creates the handlers for coll.
func NewEntities[E, D, R any, PR interface {
	*R
	describer[D]
}](d deps.Deps, coll *catalog.Collection[E, D]) *Entities[E, D, R, PR] {
	return &Entities[E, D, R, PR]{d: d, coll: coll}
}

func (h *Entities[E, D, R, PR]) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.coll.List())
}

func (h *Entities[E, D, R, PR]) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, h.d.Logger, err)
		return
	}
	e, err := h.coll.Get(id)
	if err != nil {
		writeError(w, h.d.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (h *Entities[E, D, R, PR]) Create(w http.ResponseWriter, r *http.Request) {
	desc, err := h.describe(r)
	if err != nil {
		writeError(w, h.d.Logger, err)
		return
	}
	e, err := h.coll.Create(r.Context(), desc)
	if err != nil {
		writeError(w, h.d.Logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

func (h *Entities[E, D, R, PR]) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, h.d.Logger, err)
		return
	}
	desc, err := h.describe(r)
	if err != nil {
		writeError(w, h.d.Logger, err)
		return
	}
	e, updated, err := h.coll.Update(r.Context(), id, desc)
	if err != nil {
		writeError(w, h.d.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, updateResponse[E]{Updated: updated, Entity: e})
}

func (h *Entities[E, D, R, PR]) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, h.d.Logger, err)
		return
	}
	if err := h.coll.Delete(r.Context(), id); err != nil {
		writeError(w, h.d.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Entities[E, D, R, PR]) describe(r *http.Request) (*D, error) {
	req, err := decode[R](r)
	if err != nil {
		return nil, err
	}
	return PR(req).Desc()
}
