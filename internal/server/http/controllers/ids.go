package controllers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/rzbill/flake/pkg/id"
)

// IDsController mints and decodes IDs.
type IDsController struct {
	gen      *id.Generator
	maxBatch int
}

// NewIDsController creates a controller that mints at most maxBatch IDs per
// request.
func NewIDsController(gen *id.Generator, maxBatch int) *IDsController {
	return &IDsController{gen: gen, maxBatch: maxBatch}
}

// RegisterRoutes registers the /v1/ids routes.
func (c *IDsController) RegisterRoutes(r chi.Router) {
	r.Post("/v1/ids", c.handleNext)
	r.Get("/v1/ids/stats", c.handleStats)
	r.Get("/v1/ids/{id}", c.handleDecompose)
}

type idsResponse struct {
	IDs []id.ID `json:"ids"`
}

type partsResponse struct {
	ID id.ID `json:"id"`
	id.Parts
	Time time.Time `json:"time"`
}

// handleNext mints ?count=N IDs (default 1) and returns them as decimal
// strings in issue order.
func (c *IDsController) handleNext(w http.ResponseWriter, r *http.Request) {
	n, ok := parseCount(r.URL.Query().Get("count"), c.maxBatch)
	if !ok {
		writeError(w, http.StatusBadRequest, "count must be an integer in [1, maxBatch]")
		return
	}
	ids, err := c.gen.NextN(r.Context(), n)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, idsResponse{IDs: ids})
}

// handleDecompose accepts a decimal or 0x-prefixed hex ID.
func (c *IDsController) handleDecompose(w http.ResponseWriter, r *http.Request) {
	v, err := id.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, partsResponse{ID: v, Parts: c.gen.Decompose(v), Time: c.gen.Time(v)})
}

func (c *IDsController) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, c.gen.Stats())
}
