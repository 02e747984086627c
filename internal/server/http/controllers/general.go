package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rzbill/flake/internal/runtime"
)

// GeneralController serves health and node information.
type GeneralController struct {
	rt *runtime.Runtime
}

// NewGeneralController creates a new general controller.
func NewGeneralController(rt *runtime.Runtime) *GeneralController {
	return &GeneralController{rt: rt}
}

// RegisterRoutes registers /v1/healthz and /v1/node.
func (c *GeneralController) RegisterRoutes(r chi.Router) {
	r.Get("/v1/healthz", c.handleHealth)
	r.Get("/v1/node", c.handleNode)
}

// handleHealth returns 200 {"status":"ok"} if healthy, 503 otherwise.
func (c *GeneralController) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := c.rt.CheckHealth(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, "not_serving")
		return
	}
	writeJSON(w, map[string]string{"status": "ok"})
}

// handleNode describes this node's place in the ID fleet.
func (c *GeneralController) handleNode(w http.ResponseWriter, r *http.Request) {
	gen := c.rt.Generator()
	layout := gen.Layout()
	writeJSON(w, map[string]any{
		"datacenterId":  gen.DatacenterID(),
		"machineId":     gen.MachineID(),
		"epoch":         gen.Epoch(),
		"layout":        layout,
		"idsValidUntil": gen.Epoch().Add(layout.Lifespan()),
	})
}
