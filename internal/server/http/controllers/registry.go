package controllers

import (
	"github.com/go-chi/chi/v5"

	"github.com/rzbill/flake/internal/runtime"
	"github.com/rzbill/flake/internal/services/registration"
)

// ControllerRegistry manages all HTTP controllers.
type ControllerRegistry struct {
	general *GeneralController
	ids     *IDsController
	users   *UsersController
}

// NewControllerRegistry creates the controllers for rt and reg.
func NewControllerRegistry(rt *runtime.Runtime, reg *registration.Service) *ControllerRegistry {
	return &ControllerRegistry{
		general: NewGeneralController(rt),
		ids:     NewIDsController(rt.Generator(), rt.Config().Server.MaxBatch),
		users:   NewUsersController(reg),
	}
}

// RegisterAllRoutes registers every controller's routes on r.
func (c *ControllerRegistry) RegisterAllRoutes(r chi.Router) {
	c.general.RegisterRoutes(r)
	c.ids.RegisterRoutes(r)
	c.users.RegisterRoutes(r)
}
